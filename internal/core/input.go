package core

// Action is a discrete shell or menu intent, abstracted from physical keys.
// Continuous movement never travels as an Action; it flows through InputEvents
// into the input controller.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionOption1        // 1
	ActionOption2        // 2
	ActionOption3        // 3
	ActionPrev           // Left in menus
	ActionNext           // Right in menus
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionOption1:
		return "Option1"
	case ActionOption2:
		return "Option2"
	case ActionOption3:
		return "Option3"
	case ActionPrev:
		return "Prev"
	case ActionNext:
		return "Next"
	default:
		return "Unknown"
	}
}

// InputFrame holds the discrete actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// PlayerID identifies one of the local actors sharing the input surface.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
)

// MaxPlayers is the number of local actors a session supports.
const MaxPlayers = 2

// String returns the display name of the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "-"
	}
}

// EventKind classifies raw input events.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	TouchStart
	TouchMove
	TouchEnd
)

// InputEvent is a raw key or touch event surfaced by a host.
// Touch positions are canvas coordinates in world units.
type InputEvent struct {
	Kind    EventKind
	Key     string
	TouchID int
	Pos     Vec2
}

// ControlSignal is the normalized per-actor control output for one tick.
type ControlSignal struct {
	Turn       float64 // [-1, 1], negative is left
	Accelerate float64 // [-1, 1], positive is forward/up
	Jump       bool
	Fire       bool
	// Tap is a released touch point this tick, in canvas coordinates.
	Tap    Vec2
	Tapped bool
}
