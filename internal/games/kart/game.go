// Package kart implements Kart Havoc: two karts racing laps around a
// rectangular circuit, either head to head or against the waypoint pilot.
package kart

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

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
const ID = "kart"

func init() {
	registry.Register(ID, func() registry.Game { return session.New(New()) })
}

var modes = []match.Mode{
	{Name: "Two Players", Players: 2},
	{Name: "Vs CPU", Players: 1, VsCPU: true},
}

// World is the kart race simulation.
type World struct {
	cfg    config.KartConfig
	course level.Course
	track  level.Track
	integ  *physics.Integrator

	ids    physics.IDs
	karts  []*physics.Actor
	pilot  *steer.Pilot
	mode   match.Mode
	level  steer.Level
	winner core.PlayerID
	done   bool
	logger *log.Logger
}

// New creates a kart world with default configuration.
func New() *World {
	return &World{cfg: config.DefaultKartConfig(), logger: log.New(io.Discard)}
}

// SetLogger routes pilot diagnostics to l.
func (w *World) SetLogger(l *log.Logger) {
	if l != nil {
		w.logger = l
	}
}

// ID returns the registry identifier.
func (w *World) ID() string { return ID }

// Title returns the display name.
func (w *World) Title() string { return "Kart Havoc" }

// Modes returns the selectable modes.
func (w *World) Modes() []match.Mode { return modes }

// Setup loads and validates configuration and builds the track.
func (w *World) Setup(configPath string, extent core.Extent) error {
	cfg, err := config.LoadKart(config.PathFor(configPath, ID))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	integ, err := physics.NewIntegrator(0, map[physics.Kind]physics.Motion{
		physics.KindKart: cfg.Motion,
	})
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.integ = integ
	w.track = w.course.Resize(extent)
	w.karts = nil
	w.pilot = nil
	return nil
}

// Input returns controller options for a mode.
func (w *World) Input(mode match.Mode) control.Options {
	return control.DefaultOptions(mode.Players)
}

// Start places both karts on the grid for a fresh race.
func (w *World) Start(mode match.Mode, lvl steer.Level, _ *rand.Rand) {
	w.mode = mode
	w.level = lvl
	w.winner = core.Player1
	w.done = false
	w.ids.Reset()

	w.karts = make([]*physics.Actor, core.MaxPlayers)
	for i := range w.karts {
		w.karts[i] = &physics.Actor{
			Body: &physics.Body{
				ID:    w.ids.Next(),
				Shape: physics.Circle{Radius: w.cfg.Kart.Radius},
				Mass:  w.cfg.Kart.Mass,
				Kind:  physics.KindKart,
				Owner: core.PlayerID(i),
			},
			Player: core.PlayerID(i),
		}
	}
	w.karts[core.Player2].AI = mode.VsCPU
	w.pilot = w.newPilot()
	w.place()
}

// newPilot builds the CPU driver. A pilot that cannot be built leaves the
// CPU kart on the grid and is logged as an error.
func (w *World) newPilot() *steer.Pilot {
	if !w.mode.VsCPU {
		return nil
	}
	p, err := w.buildPilot()
	if err != nil {
		w.logger.Error("cpu pilot unavailable", "level", w.level, "error", err)
		return nil
	}
	return p
}

func (w *World) buildPilot() (*steer.Pilot, error) {
	tier, err := w.cfg.AI.Tier(w.level)
	if err != nil {
		return nil, err
	}
	return steer.NewPilot(w.track.Waypoints, tier, w.cfg.AI.Deadband)
}

// place puts the karts on the start grid facing the finish line.
func (w *World) place() {
	for i, k := range w.karts {
		k.Pos = w.track.Starts[i]
		k.Prev = k.Pos
		k.Vel = core.Vec2{}
		k.Angle = w.track.Heading
		k.Speed = 0
		k.Checkpoint = false
		k.TargetWaypoint = 0
	}
	if w.pilot != nil {
		w.pilot.SetTarget(0)
	}
}

// Resize rebuilds the track for a new canvas and re-grids the karts.
// Lap counts survive.
func (w *World) Resize(extent core.Extent) {
	w.track = w.course.Resize(extent)
	if w.karts == nil {
		return
	}
	w.pilot = w.newPilot()
	w.place()
}

// Update runs one race tick.
func (w *World) Update(ctl [core.MaxPlayers]core.ControlSignal, _ time.Duration) session.Result {
	for i, k := range w.karts {
		if k.AI && w.pilot != nil {
			w.pilot.Drive(k)
			physics.Coast(k.Body)
		} else {
			w.drive(k, ctl[i])
		}
	}

	physics.ResolveAll(w.bodies(), w.cfg.BumpRestitution)

	for _, k := range w.karts {
		for _, wall := range w.track.Walls {
			physics.BounceWall(k.Body, wall, w.cfg.WallDamping)
		}
		if k.Pos.X > w.track.CheckpointX {
			k.Checkpoint = true
		}
		if !w.track.Crossed(k.Prev, k.Pos) || !k.Checkpoint {
			continue
		}
		k.Laps++
		k.Checkpoint = false
		if k.Laps >= w.cfg.Laps {
			w.winner = k.Player
			w.done = true
			return session.Result{Outcome: session.MatchOver}
		}
	}
	return session.Result{}
}

// drive applies one tick of player control: steering scaled by forward
// speed, grip pulling the velocity toward the heading, then thrust.
func (w *World) drive(k *physics.Actor, sig core.ControlSignal) {
	kc := w.cfg.Kart
	fwd := core.FromAngle(k.Angle)
	speed := k.Vel.Dot(fwd)

	k.Angle = steer.NormalizeAngle(k.Angle + sig.Turn*kc.TurnRate*speed/w.cfg.Motion.MaxX)
	fwd = core.FromAngle(k.Angle)

	along := fwd.Scale(k.Vel.Dot(fwd))
	k.Vel = k.Vel.Add(along.Sub(k.Vel).Scale(kc.Grip))

	thrust := sig.Accelerate * kc.Accel
	if sig.Accelerate < 0 {
		thrust = sig.Accelerate * kc.Reverse
	}
	w.integ.Step(k.Body, fwd.Scale(thrust))

	// Reverse is capped at half the forward top speed.
	k.Speed = k.Vel.Dot(fwd)
	if limit := -w.cfg.Motion.MaxX / 2; k.Speed < limit {
		k.Vel = k.Vel.Sub(fwd.Scale(k.Speed - limit))
		k.Speed = limit
	}
}

func (w *World) bodies() []*physics.Body {
	out := make([]*physics.Body, len(w.karts))
	for i, k := range w.karts {
		out[i] = k.Body
	}
	return out
}

// ResetRound re-grids the karts. Races have no rounds, so this only runs
// on a resume the machine never schedules.
func (w *World) ResetRound() {
	w.place()
}

// Draw adds the track, the finish line and both karts.
func (w *World) Draw(s *core.Snapshot) {
	for _, wall := range w.track.Walls {
		s.AddLine(wall.A, wall.B, core.ColorWhite, '#')
	}
	s.AddLine(w.track.Finish.A, w.track.Finish.B, core.ColorYellow, '=')

	for _, k := range w.karts {
		s.Bodies = append(s.Bodies, k.View(core.PlayerColor(k.Player), '@'))
	}

	if len(w.karts) == 0 {
		return
	}
	s.HUD = append(s.HUD, fmt.Sprintf("%s lap %d/%d   %s lap %d/%d",
		w.name(core.Player1), w.karts[core.Player1].Laps, w.cfg.Laps,
		w.name(core.Player2), w.karts[core.Player2].Laps, w.cfg.Laps))
}

func (w *World) name(p core.PlayerID) string {
	if p == core.Player2 && w.mode.VsCPU {
		return "CPU"
	}
	return p.String()
}

// Status reports laps as scores.
func (w *World) Status() session.Status {
	st := session.Status{Versus: true, Winner: w.winner}
	for i, k := range w.karts {
		st.Scores[i] = k.Laps
		st.Score = max(st.Score, k.Laps)
	}
	if w.done {
		st.Verdict = w.name(w.winner) + " wins!"
	}
	return st
}

// Karts exposes the actors for tests and renderers.
func (w *World) Karts() []*physics.Actor {
	return w.karts
}

// Track returns the cached circuit.
func (w *World) Track() level.Track {
	return w.track
}

// Builds returns how many times the track geometry was derived.
func (w *World) Builds() int {
	return w.course.Builds()
}
