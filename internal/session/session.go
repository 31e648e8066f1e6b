package session

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/match"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// Session adapts a World to the registry.Game interface.
type Session struct {
	world   World
	cfg     core.RuntimeConfig
	extent  core.Extent
	machine *match.Machine
	ctl     *control.Controller
	snap    core.Snapshot
	logger  *log.Logger

	ticks  int
	paused bool
	closed bool

	count int
	pulse *gween.Tween
	beat  float64
}

// New wraps a world. Reset must be called before Step.
func New(w World) *Session {
	return &Session{world: w, logger: log.New(io.Discard)}
}

// SetLogger routes state-transition logs to l. Worlds with their own
// SetLogger receive it too.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	s.logger = l
	if lw, ok := s.world.(interface{ SetLogger(*log.Logger) }); ok {
		lw.SetLogger(l)
	}
}

// ID returns the world's identifier.
func (s *Session) ID() string {
	return s.world.ID()
}

// Title returns the world's display name.
func (s *Session) Title() string {
	return s.world.Title()
}

// World returns the wrapped world.
func (s *Session) World() World {
	return s.world
}

// Machine returns the match state machine.
func (s *Session) Machine() *match.Machine {
	return s.machine
}

// ModeName returns the name of the selected mode, empty before Reset.
func (s *Session) ModeName() string {
	if s.machine == nil {
		return ""
	}
	return s.machine.Mode().Name
}

// Reset validates configuration and puts a fresh session at the menu.
func (s *Session) Reset(cfg core.RuntimeConfig) error {
	if s.machine != nil {
		s.machine.Close()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	s.cfg = cfg
	s.extent = cfg.Extent()

	if err := s.world.Setup(cfg.ConfigPath, s.extent); err != nil {
		return fmt.Errorf("session: %s: %w", s.world.ID(), err)
	}

	m, err := match.New(s.world.Modes(), match.Hooks{
		Start:      s.start,
		Resume:     s.resume,
		Transition: s.transition,
	})
	if err != nil {
		return fmt.Errorf("session: %s: %w", s.world.ID(), err)
	}
	if lvl, ok := steer.ParseLevel(cfg.Difficulty); ok {
		m.Prefer(lvl)
	}
	s.machine = m
	s.ctl = s.controller(s.world.Modes()[0])
	s.ticks = 0
	s.paused = false
	s.closed = false
	s.count = 0
	s.pulse = nil
	s.compose()
	return nil
}

func (s *Session) controller(mode match.Mode) *control.Controller {
	opts := s.world.Input(mode)
	opts.Touch = s.cfg.Touch
	opts.Hold = s.cfg.KeyHold
	return control.New(opts, s.extent)
}

func (s *Session) start(mode match.Mode, lvl steer.Level) {
	s.ctl = s.controller(mode)
	s.ticks = 0
	s.world.Start(mode, lvl, rand.New(rand.NewSource(s.cfg.Seed)))
	s.logger.Debug("match started", "game", s.world.ID(), "mode", mode.Name, "level", lvl, "seed", s.cfg.Seed)
}

func (s *Session) resume() {
	s.world.ResetRound()
	s.ctl.Reset()
}

func (s *Session) transition(from, to match.State) {
	s.logger.Debug("match state", "game", s.world.ID(), "from", from, "to", to)
}

// Resize accepts a new host surface size and re-runs placement.
func (s *Session) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.cfg.ScreenW, s.cfg.ScreenH = w, h
	s.extent = s.cfg.Extent()
	s.world.Resize(s.extent)
	if s.ctl != nil {
		s.ctl.Resize(s.extent)
	}
	s.compose()
}

// Handle forwards a raw event to the input controller.
func (s *Session) Handle(ev core.InputEvent) {
	if s.closed || s.ctl == nil {
		return
	}
	s.ctl.Handle(ev)
}

// Step advances one tick. A zero dt is treated as one nominal tick.
func (s *Session) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if s.closed || s.machine == nil || !s.machine.Alive() {
		return core.StepResult{State: s.State()}
	}
	if dt <= 0 {
		dt = time.Second / time.Duration(s.cfg.TickRate)
	}

	before := s.machine.State()
	if in.Has(core.ActionPause) && (before == match.Playing || before == match.Countdown) {
		s.paused = !s.paused
	}
	if s.paused {
		s.compose()
		return core.StepResult{State: s.State()}
	}

	s.machine.Handle(in)
	s.machine.Tick(dt)
	signals := s.ctl.Sample(dt)

	if s.machine.Running() {
		s.ticks++
		res := s.world.Update(signals, dt)
		switch res.Outcome {
		case RoundOver:
			s.machine.EndRound(res.Pause, res.Final)
		case MatchOver:
			s.machine.Finish()
		}
	}

	s.beatCountdown(dt)
	s.compose()

	after := s.machine.State()
	return core.StepResult{
		State: s.State(),
		Ended: after == match.Over && before != match.Over,
	}
}

// beatCountdown restarts the overlay pulse on every countdown step.
func (s *Session) beatCountdown(dt time.Duration) {
	n := s.machine.Count()
	if n != s.count {
		s.count = n
		s.pulse = nil
		if n > 0 {
			s.pulse = gween.New(1, 0, 1, ease.OutCubic)
			s.beat = 1
		}
		return
	}
	if s.pulse != nil {
		v, done := s.pulse.Update(float32(dt.Seconds()))
		s.beat = float64(v)
		if done {
			s.pulse = nil
		}
	}
}

// compose rebuilds the snapshot for the current state.
func (s *Session) compose() {
	s.snap.Reset()
	s.snap.Extent = s.extent
	if s.machine == nil {
		return
	}
	state := s.machine.State()
	s.snap.Phase = state.String()
	s.world.Draw(&s.snap)

	st := s.world.Status()
	switch state {
	case match.Menu:
		ov := &core.Overlay{Title: s.world.Title(), Subtitle: "Choose a mode", Selected: s.machine.Cursor()}
		for i, m := range s.machine.Modes() {
			ov.Options = append(ov.Options, fmt.Sprintf("%d  %s", i+1, m.Name))
		}
		s.snap.Overlay = ov
	case match.DifficultySelect:
		ov := &core.Overlay{Title: "Difficulty", Subtitle: s.machine.Mode().Name, Selected: s.machine.Cursor()}
		for i, l := range steer.Levels {
			ov.Options = append(ov.Options, fmt.Sprintf("%d  %s", i+1, l))
		}
		s.snap.Overlay = ov
	case match.Countdown:
		s.snap.Overlay = &core.Overlay{Title: fmt.Sprint(s.machine.Count()), Pulse: s.beat}
	case match.RoundPause:
		s.snap.Overlay = &core.Overlay{Title: st.Banner}
	case match.Over:
		s.snap.Overlay = &core.Overlay{Title: st.Verdict, Subtitle: "R restart  B menu"}
	}
	if s.paused {
		s.snap.Overlay = &core.Overlay{Title: "PAUSED", Subtitle: "P to resume"}
	}
}

// Snapshot returns the render state of the last tick.
func (s *Session) Snapshot() *core.Snapshot {
	return &s.snap
}

// Ticks returns the number of playing ticks in the current match.
func (s *Session) Ticks() int {
	return s.ticks
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	gs := core.GameState{Paused: s.paused}
	if s.machine == nil {
		return gs
	}
	st := s.world.Status()
	gs.Phase = s.machine.State().String()
	gs.Score = st.Score
	gs.Scores = st.Scores
	gs.Versus = st.Versus
	gs.Winner = st.Winner
	gs.GameOver = s.machine.State() == match.Over
	return gs
}

// Close stops the machine; later Step calls do nothing.
func (s *Session) Close() {
	s.closed = true
	if s.machine != nil {
		s.machine.Close()
	}
}
