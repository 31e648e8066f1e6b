// Package match implements the per-session match state machine. Countdowns
// and round pauses are events on the machine's own schedule, advanced by
// the simulation tick and dropped on every transition.
package match

// State is a match phase.
type State int

const (
	Menu State = iota
	DifficultySelect
	Countdown
	Playing
	RoundPause
	Over
)

// String returns the state label shown to renderers.
func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case DifficultySelect:
		return "difficultySelect"
	case Countdown:
		return "countdown"
	case Playing:
		return "playing"
	case RoundPause:
		return "roundPause"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Mode is a selectable way to play a title.
type Mode struct {
	Name    string
	Players int  // local human actors
	VsCPU   bool // the second actor is an AI pilot
}

// NeedsDifficulty reports whether choosing this mode enters DifficultySelect.
func (m Mode) NeedsDifficulty() bool {
	return m.VsCPU
}
