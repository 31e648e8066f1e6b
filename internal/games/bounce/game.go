// Package bounce implements Build 'n' Bounce, an upward climber: the ball
// bounces on slabs the player places while lava rises from below.
package bounce

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/tanema/gween/ease"

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
const ID = "bounce"

func init() {
	registry.Register(ID, func() registry.Game { return session.New(New()) })
}

var modes = []match.Mode{
	{Name: "Solo", Players: 1},
}

// Start platform layout: at least this wide or this share of the canvas,
// with its top this far above the canvas bottom.
const (
	startMinWidth = 100
	startShare    = 0.6
	startLift     = 40
	spawnLift     = 100
)

// World is the climb.
type World struct {
	cfg    config.BounceConfig
	extent core.Extent
	integ  *physics.Integrator
	ids    physics.IDs
	gen    *level.Generator
	cam    *level.Camera

	player *physics.Actor
	dir    float64
	bodies []*physics.Body
	budget int
	lava   float64
	ticks  int
	dead   bool
}

// New creates a climber with default configuration.
func New() *World {
	return &World{cfg: config.DefaultBounceConfig()}
}

func (w *World) ID() string          { return ID }
func (w *World) Title() string       { return "Build 'n' Bounce" }
func (w *World) Modes() []match.Mode { return modes }

// Setup loads and validates configuration.
func (w *World) Setup(configPath string, extent core.Extent) error {
	cfg, err := config.LoadBounce(config.PathFor(configPath, ID))
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
	gen, err := level.NewGenerator(cfg.Generator, level.ScrollUp, physics.KindPickup, &w.ids)
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.integ = integ
	w.gen = gen
	w.extent = extent
	w.cam = level.NewCamera(extent, level.ScrollUp)
	w.player = nil
	w.bodies = nil
	return nil
}

// Input uses the solo bindings; a tap places a slab.
func (w *World) Input(mode match.Mode) control.Options {
	return control.DefaultOptions(mode.Players)
}

// Start lays the start platform and drops the ball above it.
func (w *World) Start(_ match.Mode, _ steer.Level, rng *rand.Rand) {
	w.ids.Reset()
	w.cam.Reset()
	w.bodies = w.bodies[:0]
	w.budget = w.cfg.Budget.Start
	w.lava = w.extent.H + w.cfg.LavaStart
	w.ticks = 0
	w.dead = false
	w.dir = 1

	sw := w.cfg.Slab.W
	n := int(math.Ceil(max(startMinWidth, startShare*w.extent.W) / sw))
	left := (w.extent.W - float64(n)*sw) / 2
	top := w.extent.H - startLift
	for i := 0; i < n; i++ {
		w.bodies = append(w.bodies, w.slab(core.V(left+float64(i)*sw, top)))
	}

	pos := core.V(w.extent.W/2, w.extent.H-spawnLift)
	w.player = &physics.Actor{
		Body: &physics.Body{
			ID:    w.ids.Next(),
			Kind:  physics.KindPlayer,
			Shape: physics.Circle{Radius: w.cfg.Player.Radius},
			Mass:  1,
			Pos:   pos,
			Prev:  pos,
			Vel:   core.V(w.cfg.Player.Speed, 0),
		},
		Player: core.Player1,
	}

	w.gen.Reset(rng.Int63(), w.extent, -top, w.extent.W/2-sw/2)
	w.bodies = append(w.bodies, w.gen.Fill(w.cam)...)
}

// slab creates a placed slab with its top-left corner at p.
func (w *World) slab(p core.Vec2) *physics.Body {
	pos := p.Add(core.V(w.cfg.Slab.W/2, w.cfg.Slab.H/2))
	return &physics.Body{
		ID:    w.ids.Next(),
		Kind:  physics.KindPlatform,
		Shape: physics.Rect{W: w.cfg.Slab.W, H: w.cfg.Slab.H},
		Pos:   pos,
		Prev:  pos,
	}
}

// Resize changes the view; the climb keeps its layout.
func (w *World) Resize(extent core.Extent) {
	w.extent = extent
	w.cam.Resize(extent)
	w.gen.Resize(extent)
}

// Update runs one tick: build, move, bounce, collect, then scroll.
func (w *World) Update(ctl [core.MaxPlayers]core.ControlSignal, dt time.Duration) session.Result {
	w.ticks++
	p := w.player
	sig := ctl[core.Player1]

	if sig.Fire {
		w.Place(p.Pos.Add(core.V(0, w.cfg.Slab.Drop)))
	}
	if sig.Tapped {
		w.Place(w.cam.ToWorld(sig.Tap))
	}

	if sig.Turn != 0 {
		w.dir = core.Sign(sig.Turn)
	}
	p.Vel.X = w.dir * w.cfg.Player.Speed
	w.integ.Step(p.Body, core.Vec2{})
	w.walls()

	for _, b := range w.bodies {
		if b.Kind == physics.KindPlatform && physics.Land(p.Body, b) {
			p.Vel.Y = w.cfg.Player.Bounce
			w.gain(w.cfg.Budget.PerBounce)
			break
		}
	}
	physics.EachOverlap([]*physics.Body{p.Body}, w.bodies, func(_, b *physics.Body) {
		if b.Kind == physics.KindPickup {
			b.Kill()
			w.gain(w.cfg.Budget.PerCrate)
		}
	})

	w.lava -= w.cfg.Lava.At(w.ticks)
	if p.Bottom() >= w.lava || p.Top() > w.cam.Offset.Y+w.extent.H {
		w.dead = true
		return session.Result{Outcome: session.MatchOver}
	}

	anchor := w.cfg.Follow.Anchor * w.extent.H
	w.cam.Chase(-(p.Pos.Y - anchor), w.cfg.Follow.Duration, ease.OutQuad)
	w.cam.Update(float32(dt.Seconds()))

	w.bodies = append(w.bodies, w.gen.Fill(w.cam)...)
	w.bodies = level.Prune(w.bodies, w.cam, w.cfg.Generator.PruneMargin)
	return session.Result{}
}

// walls reverses the drift at the canvas sides.
func (w *World) walls() {
	p := w.player
	r := w.cfg.Player.Radius
	switch {
	case p.Pos.X < r:
		p.Pos.X = r
		w.dir = 1
	case p.Pos.X > w.extent.W-r:
		p.Pos.X = w.extent.W - r
		w.dir = -1
	}
}

func (w *World) gain(n int) {
	w.budget = min(w.cfg.Budget.Max, w.budget+n)
}

// Place spends one slab at the grid cell containing the world point p.
// It reports false when the budget is empty or the cell would overlap a
// slab or the ball.
func (w *World) Place(p core.Vec2) bool {
	if w.budget <= 0 {
		return false
	}
	sw, sh := w.cfg.Slab.W, w.cfg.Slab.H
	cell := core.V(math.Floor(p.X/sw)*sw, math.Floor(p.Y/sh)*sh)
	if cell.X < 0 || cell.X+sw > w.extent.W {
		return false
	}
	s := w.slab(cell)
	if _, hit := physics.Overlap(s, w.player.Body); hit {
		return false
	}
	for _, b := range w.bodies {
		if b.Kind != physics.KindPlatform {
			continue
		}
		if _, hit := physics.Overlap(s, b); hit {
			return false
		}
	}
	w.bodies = append(w.bodies, s)
	w.budget--
	return true
}

// ResetRound is never scheduled: the climb ends at the first fault.
func (w *World) ResetRound() {}

// Height returns the score: camera travel divided by the score divisor.
func (w *World) Height() int {
	return int(w.cam.Progress() / w.cfg.ScoreDiv)
}

// Draw adds slabs, crates, lava and the ball relative to the camera.
func (w *World) Draw(s *core.Snapshot) {
	if w.player == nil {
		return
	}
	s.Camera = w.cam.Offset
	for _, b := range w.bodies {
		switch b.Kind {
		case physics.KindPlatform:
			s.Bodies = append(s.Bodies, b.View(core.ColorCyan, '='))
		case physics.KindPickup:
			s.Bodies = append(s.Bodies, b.View(core.ColorOrange, '+'))
		}
	}

	bottom := w.cam.Offset.Y + w.extent.H
	if depth := bottom - w.lava; depth > 0 {
		s.AddRect(core.V(w.extent.W/2, w.lava+depth/2), w.extent.W, depth, core.ColorRed, '~')
	}
	s.Bodies = append(s.Bodies, w.player.View(core.PlayerColor(core.Player1), 'O'))
	s.HUD = append(s.HUD, fmt.Sprintf("Height %d   Slabs %d", w.Height(), w.budget))
}

// Status reports the height reached.
func (w *World) Status() session.Status {
	st := session.Status{}
	if w.player != nil {
		st.Score = w.Height()
		st.Scores[core.Player1] = st.Score
	}
	if w.dead {
		st.Verdict = fmt.Sprintf("Game over! Height %d", st.Score)
	}
	return st
}

// Player exposes the ball for tests and renderers.
func (w *World) Player() *physics.Actor {
	return w.player
}

// Bodies returns the live slabs and crates.
func (w *World) Bodies() []*physics.Body {
	return w.bodies
}

// Budget returns how many slabs can still be placed.
func (w *World) Budget() int {
	return w.budget
}

// Camera returns the climbing camera.
func (w *World) Camera() *level.Camera {
	return w.cam
}
