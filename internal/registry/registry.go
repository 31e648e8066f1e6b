// Package registry maps title IDs to game factories. Each title package
// registers itself from init, so shells only need a blank import to
// offer it.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// Game is what every shell drives. A game is pure simulation: shells feed
// it raw input and ticks, and draw its snapshots however they like.
type Game interface {
	// ID is the short name used on the command line and in the scoreboard.
	ID() string
	Title() string

	// Reset starts a fresh session at the menu. Configuration errors are
	// reported here, never from Step.
	Reset(cfg core.RuntimeConfig) error

	// Resize is the re-entry point for a new host surface size.
	Resize(w, h int)

	// Handle records a raw key or touch event. It never advances the simulation.
	Handle(ev core.InputEvent)

	// Step advances the session by one tick of dt.
	// Discrete shell actions (menu picks, restart, pause) arrive in the frame.
	Step(dt time.Duration, in core.InputFrame) core.StepResult

	// Snapshot returns the read-only render state of the last tick.
	Snapshot() *core.Snapshot

	State() core.GameState

	// Close stops the session. Later calls to Step are no-ops.
	Close()
}

// Logged is implemented by games that report diagnostics.
type Logged interface {
	SetLogger(l *log.Logger)
}

// Moded is implemented by games with selectable modes, so shells can
// label saved results.
type Moded interface {
	ModeName() string
}

// GameInfo names a registered title.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh, unreset game.
type Factory func() Game

type entry struct {
	title string
	build Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes a title available under id. Titles call it from init.
// The factory runs once here to read the display title. Registering an
// id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), build: f}
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e, ok
}

// List returns every registered title ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new game, or fails for an unknown id.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.build(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

// TitleOf returns the display title for id, or id itself when unknown.
func TitleOf(id string) string {
	if e, ok := lookup(id); ok {
		return e.title
	}
	return id
}
