package match

import (
	"errors"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// ErrNoModes is returned when a machine is built without any mode.
var ErrNoModes = errors.New("match: at least one mode is required")

// CountdownSteps is the number of one-second countdown steps before play.
const CountdownSteps = 3

// Hooks connect the machine to the world it orchestrates. All hooks run on
// the tick that caused them and may be nil.
type Hooks struct {
	// Start places every actor for a fresh match. It runs when the
	// countdown begins, both from the menu and on restart.
	Start func(mode Mode, level steer.Level)
	// Resume resets positions after a round pause.
	Resume func()
	// Transition observes every state change.
	Transition func(from, to State)
}

// Machine gates which simulation stages run. Exactly one exists per session.
type Machine struct {
	modes []Mode
	hooks Hooks

	state     State
	mode      int
	level     steer.Level
	cursor    int
	countdown int
	final     bool
	alive     bool

	sched Schedule
}

// New creates a machine in the Menu state.
func New(modes []Mode, hooks Hooks) (*Machine, error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}
	return &Machine{
		modes: append([]Mode(nil), modes...),
		hooks: hooks,
		state: Menu,
		level: steer.Medium,
		alive: true,
	}, nil
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Running reports whether physics and collision may tick.
func (m *Machine) Running() bool {
	return m.alive && m.state == Playing
}

// Alive reports whether the machine still accepts input and ticks.
func (m *Machine) Alive() bool {
	return m.alive
}

// Modes returns the selectable modes.
func (m *Machine) Modes() []Mode {
	return m.modes
}

// Mode returns the selected mode.
func (m *Machine) Mode() Mode {
	return m.modes[m.mode]
}

// Level returns the chosen difficulty tier.
func (m *Machine) Level() steer.Level {
	return m.level
}

// Cursor returns the highlighted menu or difficulty entry.
func (m *Machine) Cursor() int {
	return m.cursor
}

// Count returns the remaining countdown steps; zero outside Countdown.
func (m *Machine) Count() int {
	if m.state != Countdown {
		return 0
	}
	return m.countdown
}

// Final reports whether the current round pause ends the match.
func (m *Machine) Final() bool {
	return m.final
}

// Prefer pre-highlights a difficulty tier for the select screen.
func (m *Machine) Prefer(l steer.Level) {
	m.level = l
}

func (m *Machine) transition(to State) {
	if !m.alive {
		return
	}
	from := m.state
	m.sched.Cancel()
	m.state = to
	m.cursor = 0
	if to == DifficultySelect {
		m.cursor = levelIndex(m.level)
	}
	if m.hooks.Transition != nil {
		m.hooks.Transition(from, to)
	}
}

func levelIndex(l steer.Level) int {
	for i, v := range steer.Levels {
		if v == l {
			return i
		}
	}
	return 0
}

// SelectMode picks mode i from the menu.
func (m *Machine) SelectMode(i int) bool {
	if !m.alive || m.state != Menu || i < 0 || i >= len(m.modes) {
		return false
	}
	m.mode = i
	if m.modes[i].NeedsDifficulty() {
		m.transition(DifficultySelect)
		return true
	}
	m.startCountdown()
	return true
}

// SelectLevel picks the difficulty tier and starts the countdown.
func (m *Machine) SelectLevel(l steer.Level) bool {
	if !m.alive || m.state != DifficultySelect {
		return false
	}
	m.level = l
	m.startCountdown()
	return true
}

// Restart leaves Over straight into a new countdown with the same mode.
func (m *Machine) Restart() bool {
	if !m.alive || m.state != Over {
		return false
	}
	m.startCountdown()
	return true
}

// Back returns to the menu from DifficultySelect or Over.
func (m *Machine) Back() bool {
	if !m.alive || (m.state != Over && m.state != DifficultySelect) {
		return false
	}
	m.transition(Menu)
	return true
}

func (m *Machine) startCountdown() {
	m.transition(Countdown)
	m.final = false
	m.countdown = CountdownSteps
	if m.hooks.Start != nil {
		m.hooks.Start(m.Mode(), m.level)
	}
	m.sched.After(time.Second, m.countStep)
}

func (m *Machine) countStep() {
	m.countdown--
	if m.countdown > 0 {
		m.sched.After(time.Second, m.countStep)
		return
	}
	m.transition(Playing)
}

// EndRound enters RoundPause for d. When it elapses the match goes to Over
// if final is set; otherwise positions reset and play resumes.
func (m *Machine) EndRound(d time.Duration, final bool) bool {
	if !m.alive || m.state != Playing {
		return false
	}
	m.transition(RoundPause)
	m.final = final
	m.sched.After(d, func() {
		if m.final {
			m.transition(Over)
			return
		}
		if m.hooks.Resume != nil {
			m.hooks.Resume()
		}
		m.transition(Playing)
	})
	return true
}

// Finish ends the match immediately.
func (m *Machine) Finish() bool {
	if !m.alive || m.state != Playing {
		return false
	}
	m.transition(Over)
	return true
}

// Tick advances scheduled events by dt.
func (m *Machine) Tick(dt time.Duration) {
	if !m.alive {
		return
	}
	m.sched.Advance(dt)
}

// Handle applies shell actions valid in the current state.
func (m *Machine) Handle(in core.InputFrame) {
	if !m.alive {
		return
	}
	switch m.state {
	case Menu:
		switch {
		case in.Has(core.ActionOption1):
			m.SelectMode(0)
		case in.Has(core.ActionOption2):
			m.SelectMode(1)
		case in.Has(core.ActionPrev):
			m.cursor = (m.cursor + len(m.modes) - 1) % len(m.modes)
		case in.Has(core.ActionNext):
			m.cursor = (m.cursor + 1) % len(m.modes)
		case in.Has(core.ActionConfirm):
			m.SelectMode(m.cursor)
		}
	case DifficultySelect:
		n := len(steer.Levels)
		switch {
		case in.Has(core.ActionOption1):
			m.SelectLevel(steer.Easy)
		case in.Has(core.ActionOption2):
			m.SelectLevel(steer.Medium)
		case in.Has(core.ActionOption3):
			m.SelectLevel(steer.Hard)
		case in.Has(core.ActionPrev):
			m.cursor = (m.cursor + n - 1) % n
		case in.Has(core.ActionNext):
			m.cursor = (m.cursor + 1) % n
		case in.Has(core.ActionConfirm):
			m.SelectLevel(steer.Levels[m.cursor])
		case in.Has(core.ActionBack):
			m.Back()
		}
	case Over:
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionConfirm):
			m.Restart()
		case in.Has(core.ActionBack):
			m.Back()
		}
	}
}

// Close cancels pending events and stops all further mutation.
func (m *Machine) Close() {
	m.sched.Cancel()
	m.alive = false
}
