// Package soccer implements Soccer Scramble: two jumping players knocking a
// bouncy ball into the opponent's goal.
package soccer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/config"
	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/match"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/session"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// ID is the registry identifier.
const ID = "soccer"

func init() {
	registry.Register(ID, func() registry.Game { return session.New(New()) })
}

var modes = []match.Mode{
	{Name: "Two Players", Players: 2},
}

// serve is the largest initial ball speed on each axis.
const serve = 2.5

// World is the soccer pitch.
type World struct {
	cfg    config.SoccerConfig
	extent core.Extent
	integ  *physics.Integrator
	rng    *rand.Rand

	ids     physics.IDs
	ground  *physics.Body
	players []*physics.Actor
	ball    *physics.Body

	scorer core.PlayerID
	winner core.PlayerID
	done   bool
}

// New creates a soccer world with default configuration.
func New() *World {
	return &World{cfg: config.DefaultSoccerConfig()}
}

func (w *World) ID() string          { return ID }
func (w *World) Title() string       { return "Soccer Scramble" }
func (w *World) Modes() []match.Mode { return modes }

// Setup loads and validates configuration.
func (w *World) Setup(configPath string, extent core.Extent) error {
	cfg, err := config.LoadSoccer(config.PathFor(configPath, ID))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	integ, err := physics.NewIntegrator(cfg.Gravity, map[physics.Kind]physics.Motion{
		physics.KindPlayer: cfg.Player.Motion,
		physics.KindBall:   cfg.Ball.Motion,
	})
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.integ = integ
	w.extent = extent
	w.players = nil
	w.ball = nil
	return nil
}

// Input returns two keyboard halves; touch splits the screen.
func (w *World) Input(mode match.Mode) control.Options {
	return control.DefaultOptions(mode.Players)
}

// Start zeroes the score and kicks off.
func (w *World) Start(_ match.Mode, _ steer.Level, rng *rand.Rand) {
	w.rng = rng
	w.done = false
	w.winner = core.Player1
	w.ids.Reset()

	w.ground = &physics.Body{ID: w.ids.Next(), Kind: physics.KindPlatform}
	w.players = make([]*physics.Actor, core.MaxPlayers)
	for i := range w.players {
		w.players[i] = &physics.Actor{
			Body: &physics.Body{
				ID:    w.ids.Next(),
				Shape: physics.Rect{W: w.cfg.Player.W, H: w.cfg.Player.H},
				Mass:  w.cfg.Player.Mass,
				Kind:  physics.KindPlayer,
				Owner: core.PlayerID(i),
			},
			Player: core.PlayerID(i),
		}
	}
	w.ball = &physics.Body{
		ID:    w.ids.Next(),
		Shape: physics.Circle{Radius: w.cfg.Ball.Radius},
		Mass:  w.cfg.Ball.Mass,
		Kind:  physics.KindBall,
	}
	w.place()
}

func (w *World) groundY() float64 {
	return w.extent.H - w.cfg.GroundOffset
}

// place lays out the ground and puts everyone at kickoff.
func (w *World) place() {
	gy := w.groundY()
	w.ground.Shape = physics.Rect{W: w.extent.W, H: w.cfg.GroundOffset}
	w.ground.Pos = core.V(w.extent.W/2, gy+w.cfg.GroundOffset/2)

	for i, p := range w.players {
		x := 0.25
		if i == int(core.Player2) {
			x = 0.75
		}
		p.Pos = core.V(x*w.extent.W, gy-100)
		p.Prev = p.Pos
		p.Vel = core.Vec2{}
		p.OnGround = false
	}

	w.ball.Pos = w.extent.Center()
	w.ball.Prev = w.ball.Pos
	w.ball.Vel = core.V((w.rng.Float64()*2-1)*serve, (w.rng.Float64()*2-1)*serve)
}

// Resize re-lays the pitch and restarts the point. Scores survive.
func (w *World) Resize(extent core.Extent) {
	w.extent = extent
	if w.players != nil {
		w.place()
	}
}

// Update runs one tick of play.
func (w *World) Update(ctl [core.MaxPlayers]core.ControlSignal, _ time.Duration) session.Result {
	for i, p := range w.players {
		w.move(p, ctl[i])
	}
	w.integ.Step(w.ball, core.Vec2{})

	for _, p := range w.players {
		physics.Resolve(p.Body, w.ball, w.cfg.Ball.Kick)
	}
	physics.Resolve(w.players[core.Player1].Body, w.players[core.Player2].Body, 0)
	for _, p := range w.players {
		w.keepOnPitch(p)
	}
	w.keepBallIn()

	scorer, ok := w.goal()
	if !ok {
		return session.Result{}
	}
	w.scorer = scorer
	w.players[scorer].Score++
	final := w.players[scorer].Score >= w.cfg.WinScore
	if final {
		w.winner = scorer
		w.done = true
	}
	return session.Result{Outcome: session.RoundOver, Pause: w.cfg.GoalPause, Final: final}
}

func (w *World) move(p *physics.Actor, sig core.ControlSignal) {
	if sig.Jump && p.OnGround {
		p.Vel.Y = w.cfg.Player.Jump
		p.OnGround = false
	}
	w.integ.StepDriven(p.Body, core.V(sig.Turn*w.cfg.Player.Accel, 0))
	p.OnGround = physics.Land(p.Body, w.ground) || w.settle(p.Body)
}

// settle catches a body that ended up below the ground line.
func (w *World) settle(b *physics.Body) bool {
	half := b.Shape.Half().Y
	if b.Pos.Y+half <= w.groundY() {
		return false
	}
	b.Pos.Y = w.groundY() - half
	b.Vel.Y = 0
	return true
}

func (w *World) keepOnPitch(p *physics.Actor) {
	half := p.Shape.Half()
	p.Pos.X = core.ClampF(p.Pos.X, half.X, w.extent.W-half.X)
	if w.settle(p.Body) {
		p.OnGround = true
	}
}

func (w *World) keepBallIn() {
	b := w.ball
	r := w.cfg.Ball.Radius
	switch {
	case b.Pos.X < r:
		b.Pos.X = r
		b.Vel.X *= -w.cfg.Ball.WallBounce
	case b.Pos.X > w.extent.W-r:
		b.Pos.X = w.extent.W - r
		b.Vel.X *= -w.cfg.Ball.WallBounce
	}
	if b.Pos.Y < r {
		b.Pos.Y = r
		b.Vel.Y *= -w.cfg.Ball.WallBounce
	}
	if b.Pos.Y > w.groundY()-r {
		b.Pos.Y = w.groundY() - r
		b.Vel.Y *= -w.cfg.Ball.GroundBounce
	}
}

// goal reports who scored when the ball sits wholly inside a goal mouth.
// The left goal belongs to P1, so a ball in it scores for P2.
func (w *World) goal() (core.PlayerID, bool) {
	b := w.ball
	if b.Top() < w.groundY()-w.cfg.Goal.H {
		return 0, false
	}
	switch {
	case b.Right() <= w.cfg.Goal.W:
		return core.Player2, true
	case b.Left() >= w.extent.W-w.cfg.Goal.W:
		return core.Player1, true
	}
	return 0, false
}

// ResetRound puts everyone back at kickoff after a goal.
func (w *World) ResetRound() {
	w.place()
}

// Draw adds the ground, both goals, the players and the ball.
func (w *World) Draw(s *core.Snapshot) {
	gy := w.groundY()
	s.AddLine(core.V(0, gy), core.V(w.extent.W, gy), core.ColorGreen, '=')

	top := gy - w.cfg.Goal.H
	for _, x := range []float64{w.cfg.Goal.W, w.extent.W - w.cfg.Goal.W} {
		edge := 0.0
		if x > w.extent.W/2 {
			edge = w.extent.W
		}
		s.AddLine(core.V(x, top), core.V(x, gy), core.ColorWhite, '|')
		s.AddLine(core.V(edge, top), core.V(x, top), core.ColorWhite, '-')
	}

	for _, p := range w.players {
		s.Bodies = append(s.Bodies, p.View(core.PlayerColor(p.Player), '#'))
	}
	if w.ball != nil {
		s.Bodies = append(s.Bodies, w.ball.View(core.ColorBrightWhite, 'o'))
	}

	if len(w.players) == 0 {
		return
	}
	s.HUD = append(s.HUD, fmt.Sprintf("P1 %d - %d P2",
		w.players[core.Player1].Score, w.players[core.Player2].Score))
}

// Status reports goals as scores.
func (w *World) Status() session.Status {
	st := session.Status{
		Versus: true,
		Winner: w.winner,
		Banner: fmt.Sprintf("GOAL! %s scores", w.scorer),
	}
	for i, p := range w.players {
		st.Scores[i] = p.Score
		st.Score = max(st.Score, p.Score)
	}
	if w.done {
		st.Verdict = w.winner.String() + " wins!"
	}
	return st
}

// Players exposes the actors for tests and renderers.
func (w *World) Players() []*physics.Actor {
	return w.players
}

// Ball returns the ball body.
func (w *World) Ball() *physics.Body {
	return w.ball
}
