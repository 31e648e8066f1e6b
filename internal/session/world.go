// Package session runs one title as a registry.Game: it owns the match
// machine, the input controller and the render snapshot, and gates the
// title's World so bodies only move while the match is playing.
package session

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/match"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// Outcome is what a playing tick produced.
type Outcome int

const (
	Continue  Outcome = iota
	RoundOver         // a scoring event; play resumes after a pause
	MatchOver         // the win condition was met
)

// Result is returned by World.Update.
type Result struct {
	Outcome Outcome
	// Pause is how long RoundPause lasts.
	Pause time.Duration
	// Final makes the round pause end in Over instead of resuming.
	Final bool
}

// Status is the score-keeping view of a world.
type Status struct {
	Score  int
	Scores [core.MaxPlayers]int
	Versus bool
	Winner core.PlayerID
	// Banner is shown during a round pause, Verdict once the match is over.
	Banner  string
	Verdict string
}

// World is one title's simulation. The session calls it on a single
// goroutine, only ever from Reset, Resize and Step.
type World interface {
	ID() string
	Title() string
	Modes() []match.Mode

	// Setup loads and validates configuration and builds caches for the
	// canvas. It is the only place configuration errors surface.
	Setup(configPath string, extent core.Extent) error

	// Input returns controller options for a mode.
	Input(mode match.Mode) control.Options

	// Start places every actor for a fresh match. rng is seeded the same
	// way on every start so a replayed match begins identically.
	Start(mode match.Mode, level steer.Level, rng *rand.Rand)

	// Resize rebuilds canvas-relative geometry and re-places actors.
	Resize(extent core.Extent)

	// Update runs one playing tick.
	Update(ctl [core.MaxPlayers]core.ControlSignal, dt time.Duration) Result

	// ResetRound restores positions after a round pause.
	ResetRound()

	// Draw appends bodies, lines and HUD lines to the snapshot.
	Draw(s *core.Snapshot)

	Status() Status
}
