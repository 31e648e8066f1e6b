package core

import "time"

// TouchMode is the touch mapping chosen by the host at session start.
// It is read once and never re-evaluated mid-match.
type TouchMode int

const (
	TouchOff      TouchMode = iota // keyboard only
	TouchJoystick                  // virtual joystick per screen half
	TouchZones                     // fire zone on top, drag zone below
)

// String returns the flag spelling of the mode.
func (m TouchMode) String() string {
	switch m {
	case TouchJoystick:
		return "joystick"
	case TouchZones:
		return "zones"
	default:
		return "off"
	}
}

// ParseTouchMode converts a flag value into a TouchMode.
func ParseTouchMode(s string) (TouchMode, bool) {
	switch s {
	case "off", "":
		return TouchOff, true
	case "joystick":
		return TouchJoystick, true
	case "zones":
		return TouchZones, true
	}
	return TouchOff, false
}

// RuntimeConfig contains configuration passed to games at session start.
type RuntimeConfig struct {
	ScreenW  int     // Host surface width (cells in a terminal, pixels in a window)
	ScreenH  int     // Host surface height
	UnitW    float64 // World units per host column
	UnitH    float64 // World units per host row
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
	Touch    TouchMode
	// KeyHold is how long a key counts as held after its last press, for
	// hosts that never report key releases. Zero disables auto-release.
	KeyHold time.Duration
	// Difficulty pre-highlights a tier in the difficulty select state.
	Difficulty string
	// ConfigPath overrides the configuration search: a YAML file, or a
	// directory holding <id>.yaml files.
	ConfigPath string
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		UnitW:    8,
		UnitH:    16,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Extent returns the canvas size in world units.
func (c RuntimeConfig) Extent() Extent {
	uw, uh := c.UnitW, c.UnitH
	if uw <= 0 {
		uw = 1
	}
	if uh <= 0 {
		uh = 1
	}
	return Extent{W: float64(c.ScreenW) * uw, H: float64(c.ScreenH) * uh}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Phase    string   // Match state label
	Score    int      // Solo score, or the leading score in versus titles
	Scores   [2]int   // Per-actor scores, laps or lives
	Winner   PlayerID // Valid only when GameOver and Versus
	Versus   bool     // Two competing actors
	GameOver bool     // Match reached the over state
	Paused   bool     // Shell-level pause
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Ended is true only on the tick the match entered the over state.
	Ended bool
}
