// Package astro implements Astro Clash, a vertical shooter for one or two
// ships: asteroids fall from the top, large ones split when shot.
package astro

import (
	"fmt"
	"math"
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
const ID = "astro"

func init() {
	registry.Register(ID, func() registry.Game { return session.New(New()) })
}

var modes = []match.Mode{
	{Name: "Solo", Players: 1},
	{Name: "Co-op", Players: 2},
}

// shipLift is the distance from the canvas bottom to a ship's center.
const shipLift = 60

// World is the asteroid field.
type World struct {
	cfg     config.AstroConfig
	extent  core.Extent
	ids     physics.IDs
	spawner level.Spawner
	rng     *rand.Rand

	ships   []*physics.Actor
	bullets []*physics.Body
	rocks   []*physics.Body
	ticks   int
	hit     core.PlayerID
}

// New creates a shooter with default configuration.
func New() *World {
	return &World{cfg: config.DefaultAstroConfig()}
}

func (w *World) ID() string          { return ID }
func (w *World) Title() string       { return "Astro Clash" }
func (w *World) Modes() []match.Mode { return modes }

// Setup loads and validates configuration.
func (w *World) Setup(configPath string, extent core.Extent) error {
	cfg, err := config.LoadAstro(config.PathFor(configPath, ID))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.cfg = cfg
	w.extent = extent
	w.spawner = level.Spawner{
		Rate:    cfg.Asteroid.Rate,
		MaxRate: cfg.Asteroid.MaxRate,
		Ramp:    cfg.Asteroid.RateUp,
	}
	w.ships = nil
	return nil
}

// Input uses per-mode bindings with the configured fire cooldown.
func (w *World) Input(mode match.Mode) control.Options {
	opts := control.DefaultOptions(mode.Players)
	opts.FireCooldown = w.cfg.FireCooldown
	return opts
}

// Start launches one ship per player with full lives.
func (w *World) Start(mode match.Mode, _ steer.Level, rng *rand.Rand) {
	w.rng = rng
	w.ids.Reset()
	w.ticks = 0
	w.ships = w.ships[:0]
	for i := 0; i < mode.Players && i < core.MaxPlayers; i++ {
		w.ships = append(w.ships, &physics.Actor{
			Body: &physics.Body{
				ID:    w.ids.Next(),
				Kind:  physics.KindPlayer,
				Shape: physics.Rect{W: w.cfg.Ship.W, H: w.cfg.Ship.H},
				Owner: core.PlayerID(i),
			},
			Player: core.PlayerID(i),
			Lives:  w.cfg.Lives,
		})
	}
	w.ResetRound()
}

// ResetRound clears the field and puts surviving ships back on the
// launch line.
func (w *World) ResetRound() {
	w.bullets = w.bullets[:0]
	w.rocks = w.rocks[:0]
	w.spawner.Reset()
	w.place()
}

func (w *World) place() {
	n := float64(len(w.ships))
	for i, s := range w.ships {
		s.Pos = core.V(w.extent.W*float64(i+1)/(n+1), w.extent.H-shipLift)
		s.Prev = s.Pos
		s.Vel = core.Vec2{}
	}
}

// Resize keeps ships inside the new canvas.
func (w *World) Resize(extent core.Extent) {
	w.extent = extent
	for _, s := range w.ships {
		w.clamp(s.Body)
	}
}

// Update runs one tick: fly, shoot, spawn, then resolve hits.
func (w *World) Update(ctl [core.MaxPlayers]core.ControlSignal, dt time.Duration) session.Result {
	w.ticks++
	for _, s := range w.ships {
		if s.Dead {
			continue
		}
		sig := ctl[s.Player]
		s.Vel = core.V(sig.Turn, -sig.Accelerate).Scale(w.cfg.Ship.Speed)
		physics.Coast(s.Body)
		w.clamp(s.Body)
		if sig.Fire {
			w.fire(s)
		}
	}

	for _, b := range w.bullets {
		physics.Coast(b)
		if b.Bottom() < 0 {
			b.Kill()
		}
	}

	for n := w.spawner.Tick(dt); n > 0; n-- {
		w.spawn()
	}

	lost := false
	for _, r := range w.rocks {
		physics.Coast(r)
		if r.Top() > w.extent.H {
			r.Kill()
			if s := w.nearest(r.Pos.X); s != nil {
				lost = w.lose(s) || lost
			}
		}
	}

	physics.EachOverlap(w.bullets, w.rocks, func(b, r *physics.Body) {
		b.Kill()
		w.shatter(r, b.Owner)
	})

	for _, s := range w.ships {
		if s.Dead {
			continue
		}
		physics.EachOverlap([]*physics.Body{s.Body}, w.rocks, func(_, r *physics.Body) {
			r.Kill()
			lost = w.lose(s) || lost
		})
	}

	w.bullets = physics.Sweep(w.bullets)
	w.rocks = physics.Sweep(w.rocks)

	if lost {
		return session.Result{Outcome: session.RoundOver, Pause: w.cfg.LifePause, Final: w.out()}
	}
	return session.Result{}
}

// lose takes a life from s and reports whether one was taken. A ship out
// of lives leaves the field.
func (w *World) lose(s *physics.Actor) bool {
	if s.Dead {
		return false
	}
	s.Lives--
	w.hit = s.Player
	if s.Lives <= 0 {
		s.Kill()
	}
	return true
}

// out reports whether every ship has run out of lives.
func (w *World) out() bool {
	for _, s := range w.ships {
		if !s.Dead {
			return false
		}
	}
	return true
}

// nearest returns the surviving ship closest to x, which answers for an
// asteroid that got past.
func (w *World) nearest(x float64) *physics.Actor {
	var best *physics.Actor
	for _, s := range w.ships {
		if s.Dead {
			continue
		}
		if best == nil || math.Abs(s.Pos.X-x) < math.Abs(best.Pos.X-x) {
			best = s
		}
	}
	return best
}

func (w *World) clamp(b *physics.Body) {
	h := b.Shape.Half()
	b.Pos.X = core.ClampF(b.Pos.X, h.X, w.extent.W-h.X)
	b.Pos.Y = core.ClampF(b.Pos.Y, h.Y, w.extent.H-h.Y)
}

func (w *World) fire(s *physics.Actor) {
	pos := core.V(s.Pos.X, s.Top())
	w.bullets = append(w.bullets, &physics.Body{
		ID:    w.ids.Next(),
		Kind:  physics.KindProjectile,
		Shape: physics.Circle{Radius: w.cfg.Bullet.Radius},
		Owner: s.Player,
		Pos:   pos,
		Prev:  pos,
		Vel:   core.V(0, -w.cfg.Bullet.Speed),
	})
}

// spawn drops one asteroid from above the canvas at a random column.
func (w *World) spawn() {
	ac := w.cfg.Asteroid
	r := ac.Small
	if w.rng.Float64() < ac.LargeChance {
		r = ac.Large
	}
	x := r + w.rng.Float64()*max(0, w.extent.W-2*r)
	drift := (w.rng.Float64()*2 - 1) * ac.Drift
	w.rocks = append(w.rocks, w.rock(core.V(x, -r), core.V(drift, ac.Speed.At(w.ticks)), r))
}

func (w *World) rock(pos, vel core.Vec2, r float64) *physics.Body {
	return &physics.Body{
		ID:    w.ids.Next(),
		Kind:  physics.KindEnemy,
		Shape: physics.Circle{Radius: r},
		Pos:   pos,
		Prev:  pos,
		Vel:   vel,
	}
}

// shatter destroys a shot asteroid, splitting a large one into two small
// ones drifting apart, and credits the shooter.
func (w *World) shatter(r *physics.Body, by core.PlayerID) {
	r.Kill()
	ac := w.cfg.Asteroid
	points := ac.SmallScore
	if r.Radius() > ac.Small {
		points = ac.LargeScore
		spread := max(ac.Drift, 1)
		for _, dir := range []float64{-1, 1} {
			pos := r.Pos.Add(core.V(dir*ac.Small, 0))
			vel := core.V(dir*spread, r.Vel.Y)
			w.rocks = append(w.rocks, w.rock(pos, vel, ac.Small))
		}
	}
	for _, s := range w.ships {
		if s.Player == by {
			s.Score += points
		}
	}
}

// Draw adds ships, bullets and asteroids.
func (w *World) Draw(s *core.Snapshot) {
	for _, r := range w.rocks {
		s.Bodies = append(s.Bodies, r.View(core.ColorGray, '*'))
	}
	for _, b := range w.bullets {
		s.Bodies = append(s.Bodies, b.View(core.ColorBrightYellow, '|'))
	}
	hud := ""
	for _, sh := range w.ships {
		if !sh.Dead {
			s.Bodies = append(s.Bodies, sh.View(core.PlayerColor(sh.Player), 'A'))
		}
		if hud != "" {
			hud += "   "
		}
		hud += fmt.Sprintf("%s %d  lives %d", sh.Player, sh.Score, max(sh.Lives, 0))
	}
	s.HUD = append(s.HUD, hud)
}

// Status reports the combined score; co-op ships share one result.
func (w *World) Status() session.Status {
	st := session.Status{}
	for _, s := range w.ships {
		st.Scores[s.Player] = s.Score
		st.Score += s.Score
	}
	if len(w.ships) > 0 {
		st.Banner = fmt.Sprintf("%s lost a life", w.hit)
		if w.out() {
			st.Verdict = fmt.Sprintf("Game over! Score %d", st.Score)
		}
	}
	return st
}

// Ships exposes the player ships for tests and renderers.
func (w *World) Ships() []*physics.Actor {
	return w.ships
}

// Rocks returns the live asteroids.
func (w *World) Rocks() []*physics.Body {
	return w.rocks
}

// Bullets returns the live bullets.
func (w *World) Bullets() []*physics.Body {
	return w.bullets
}
