// Package goldgrab implements Goblin Gold Grab, a right-scrolling runner:
// jump between generated platforms, collect coins and stomp goblins.
package goldgrab

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/config"
	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/level"
	"github.com/vovakirdan/couch-arcade/internal/match"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/session"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// ID is the registry identifier.
const ID = "goldgrab"

func init() {
	registry.Register(ID, func() registry.Game { return session.New(New()) })
}

var modes = []match.Mode{
	{Name: "Solo", Players: 1},
}

// World is the runner level.
type World struct {
	cfg    config.GoldGrabConfig
	extent core.Extent
	integ  *physics.Integrator
	ids    physics.IDs
	gen    *level.Generator
	cam    *level.Camera

	player *physics.Actor
	bodies []*physics.Body
	dead   bool
}

// New creates a runner with default configuration.
func New() *World {
	return &World{cfg: config.DefaultGoldGrabConfig()}
}

func (w *World) ID() string          { return ID }
func (w *World) Title() string       { return "Goblin Gold Grab" }
func (w *World) Modes() []match.Mode { return modes }

// Setup loads and validates configuration.
func (w *World) Setup(configPath string, extent core.Extent) error {
	cfg, err := config.LoadGoldGrab(config.PathFor(configPath, ID))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	integ, err := physics.NewIntegrator(cfg.Gravity, map[physics.Kind]physics.Motion{
		physics.KindPlayer: cfg.Player.Motion,
	})
	if err != nil {
		return err
	}
	gen, err := level.NewGenerator(cfg.Generator, level.ScrollRight, physics.KindCoin, &w.ids)
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.integ = integ
	w.gen = gen
	w.extent = extent
	w.cam = level.NewCamera(extent, level.ScrollRight)
	w.player = nil
	w.bodies = nil
	return nil
}

// Input uses the solo bindings: jump on W, Up or Space, or a tap.
func (w *World) Input(mode match.Mode) control.Options {
	return control.DefaultOptions(mode.Players)
}

// Start lays the start platform under the runner and generates ahead.
func (w *World) Start(_ match.Mode, _ steer.Level, rng *rand.Rand) {
	w.ids.Reset()
	w.cam.Reset()
	w.dead = false
	w.bodies = w.bodies[:0]

	gc := w.cfg.Generator
	surface := w.extent.H - w.cfg.Start.Lift
	for i := 0; i < w.cfg.Start.Blocks; i++ {
		pos := core.V(w.cfg.Start.X+(float64(i)+0.5)*gc.BlockSize, surface+gc.Thickness/2)
		w.bodies = append(w.bodies, &physics.Body{
			ID:    w.ids.Next(),
			Kind:  physics.KindPlatform,
			Shape: physics.Rect{W: gc.BlockSize, H: gc.Thickness},
			Pos:   pos,
			Prev:  pos,
		})
	}

	pos := core.V(w.cfg.Player.X, surface-w.cfg.Player.H/2)
	w.player = &physics.Actor{
		Body: &physics.Body{
			ID:    w.ids.Next(),
			Kind:  physics.KindPlayer,
			Shape: physics.Rect{W: w.cfg.Player.W, H: w.cfg.Player.H},
			Mass:  1,
			Pos:   pos,
			Prev:  pos,
		},
		Player:   core.Player1,
		OnGround: true,
	}

	frontier := w.cfg.Start.X + float64(w.cfg.Start.Blocks)*gc.BlockSize
	w.gen.Reset(rng.Int63(), w.extent, frontier, surface)
	for i := 0; i < w.cfg.InitialBatches; i++ {
		w.bodies = append(w.bodies, w.gen.Emit()...)
	}
	w.bodies = append(w.bodies, w.gen.Fill(w.cam)...)
}

// Resize changes the view. The level keeps its layout; new content uses
// the new height bounds.
func (w *World) Resize(extent core.Extent) {
	w.extent = extent
	w.cam.Resize(extent)
	w.gen.Resize(extent)
}

// Update runs one tick: scroll, jump, fall, collect, then refill ahead.
func (w *World) Update(ctl [core.MaxPlayers]core.ControlSignal, _ time.Duration) session.Result {
	w.gen.Ramp()
	w.cam.Scroll(w.gen.Speed())

	p := w.player
	sig := ctl[core.Player1]
	if (sig.Jump || sig.Tapped) && p.OnGround {
		p.Vel.Y = w.cfg.Player.Jump
	}
	p.Pos.X = w.cam.Offset.X + w.cfg.Player.X
	p.Vel.X = 0
	w.integ.Step(p.Body, core.Vec2{})

	if w.enemies() {
		return w.over()
	}

	p.OnGround = false
	for _, b := range w.bodies {
		if b.Kind == physics.KindPlatform && physics.Land(p.Body, b) {
			p.OnGround = true
		}
	}

	physics.EachOverlap([]*physics.Body{p.Body}, w.bodies, func(_, b *physics.Body) {
		if b.Kind == physics.KindCoin {
			b.Kill()
			p.Score += w.cfg.CoinScore
		}
	})

	if p.Pos.Y > w.extent.H+w.cfg.FallMargin {
		return w.over()
	}

	w.bodies = append(w.bodies, w.gen.Fill(w.cam)...)
	w.bodies = level.Prune(w.bodies, w.cam, w.cfg.Generator.PruneMargin)
	return session.Result{}
}

// enemies stomps every goblin landed on from above and reports whether
// any other goblin touched the runner.
func (w *World) enemies() bool {
	p := w.player
	hit := false
	physics.EachOverlap([]*physics.Body{p.Body}, w.bodies, func(_, e *physics.Body) {
		if e.Kind != physics.KindEnemy {
			return
		}
		prevBottom := p.Prev.Y + p.Shape.Half().Y
		if p.Vel.Y > 0 && prevBottom <= e.Top()+p.Vel.Y {
			e.Kill()
			p.Score += w.cfg.StompScore
			p.Vel.Y = w.cfg.StompBounce
			p.Pos.Y = e.Top() - p.Shape.Half().Y
			return
		}
		hit = true
	})
	return hit
}

func (w *World) over() session.Result {
	w.dead = true
	return session.Result{Outcome: session.MatchOver}
}

// ResetRound is never scheduled: a run ends at the first fault.
func (w *World) ResetRound() {}

// Draw adds the level relative to the camera.
func (w *World) Draw(s *core.Snapshot) {
	if w.player == nil {
		return
	}
	s.Camera = w.cam.Offset
	for _, b := range w.bodies {
		switch b.Kind {
		case physics.KindPlatform:
			s.Bodies = append(s.Bodies, b.View(core.ColorGreen, '#'))
		case physics.KindCoin:
			s.Bodies = append(s.Bodies, b.View(core.ColorBrightYellow, '$'))
		case physics.KindEnemy:
			s.Bodies = append(s.Bodies, b.View(core.ColorMagenta, 'g'))
		}
	}
	s.Bodies = append(s.Bodies, w.player.View(core.PlayerColor(core.Player1), '@'))
	s.HUD = append(s.HUD, fmt.Sprintf("Gold %d   Speed %.1f", w.player.Score, w.gen.Speed()))
}

// Status reports the gold collected.
func (w *World) Status() session.Status {
	st := session.Status{}
	if w.player != nil {
		st.Score = w.player.Score
		st.Scores[core.Player1] = w.player.Score
	}
	if w.dead {
		st.Verdict = fmt.Sprintf("Game over! Gold %d", st.Score)
	}
	return st
}

// Player exposes the runner for tests and renderers.
func (w *World) Player() *physics.Actor {
	return w.player
}

// Bodies returns the live level bodies.
func (w *World) Bodies() []*physics.Body {
	return w.bodies
}

// Camera returns the scrolling camera.
func (w *World) Camera() *level.Camera {
	return w.cam
}
