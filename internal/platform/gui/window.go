// Package gui is the window shell for the arcade, built on Ebitengine. It
// reports real key releases and multi-touch, so the input controller runs
// without the terminal hold window.
package gui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/couch-arcade/internal/clock"
	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

// Window drives one title inside an Ebitengine window. It implements
// ebiten.Game.
type Window struct {
	game    registry.Game
	store   *storage.Store
	logger  *log.Logger
	cfg     core.RuntimeConfig
	clock   *clock.Clock
	frame   core.InputFrame
	result  core.StepResult
	touches *touchTracker
	keys    []ebiten.Key
	touchID []ebiten.TouchID

	now     time.Time // simulation time, one nominal tick per Update
	started time.Time
	w, h    int
	resized bool
	done    bool
}

// NewWindow creates a window shell for game. One world unit is one window
// pixel. A nil logger discards.
func NewWindow(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.UnitW, cfg.UnitH = 1, 1
	cfg.KeyHold = 0
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(logger)
	}

	w := &Window{
		game:    game,
		store:   store,
		logger:  logger,
		cfg:     cfg,
		frame:   core.NewInputFrame(),
		touches: newTouchTracker(),
		now:     time.Unix(0, 0),
		w:       cfg.ScreenW,
		h:       cfg.ScreenH,
	}
	w.clock = clock.New(w.step, nil, logger)
	return w
}

func (w *Window) step(dt time.Duration) {
	w.result.Ended = false
	w.result = w.game.Step(dt, w.frame)
	w.frame.Clear()
}

// Reset puts the game at its mode menu. Configuration errors surface here.
func (w *Window) Reset() error {
	return w.game.Reset(w.cfg)
}

// Update polls input and advances the simulation by one tick.
func (w *Window) Update() error {
	if w.resized {
		w.resized = false
		w.game.Resize(w.w, w.h)
	}

	w.pollKeys()
	if w.done {
		return ebiten.Termination
	}
	w.pollTouches()

	before := w.game.State().Phase
	w.now = w.now.Add(time.Second / time.Duration(w.cfg.TickRate))
	w.clock.Update(w.now)

	res := w.result
	if before != "countdown" && res.State.Phase == "countdown" {
		w.started = w.now
	}
	if res.Ended {
		w.record(res.State, w.now.Sub(w.started))
	}
	return nil
}

// pollKeys forwards key presses and releases, and queues shell actions.
// Back at the title's own menu closes the window.
func (w *Window) pollKeys() {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		name := keyName(k)
		if name == "" {
			continue
		}
		action, quit := control.ShellAction(name)
		if quit || (action == core.ActionBack && w.game.State().Phase == "menu") {
			w.done = true
			return
		}
		w.game.Handle(core.InputEvent{Kind: core.KeyDown, Key: name})
		if action != core.ActionNone {
			w.frame.Set(action)
		}
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if name := keyName(k); name != "" {
			w.game.Handle(core.InputEvent{Kind: core.KeyUp, Key: name})
		}
	}
}

// pollTouches forwards fingers and the left mouse button as touches.
func (w *Window) pollTouches() {
	down := make(map[int]core.Vec2)
	w.touchID = ebiten.AppendTouchIDs(w.touchID[:0])
	for _, id := range w.touchID {
		x, y := ebiten.TouchPosition(id)
		down[int(id)] = core.V(float64(x), float64(y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		down[mouseTouchID] = core.V(float64(x), float64(y))
	}
	for _, ev := range w.touches.diff(down) {
		w.game.Handle(ev)
	}
}

func (w *Window) record(st core.GameState, d time.Duration) {
	if w.store == nil {
		return
	}
	mode := ""
	if md, ok := w.game.(registry.Moded); ok {
		mode = md.ModeName()
	}
	if _, err := w.store.Record(w.game.ID(), mode, st, d); err != nil {
		w.logger.Warn("could not save result", "game", w.game.ID(), "error", err)
	}
}

// Draw renders the last snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, w.game.Snapshot())
}

// Layout keeps the logical screen equal to the window size. A new size is
// applied to the game on the next Update.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.w || outsideHeight != w.h {
		w.w, w.h = outsideWidth, outsideHeight
		w.resized = true
	}
	return outsideWidth, outsideHeight
}

// Run opens a window for game and blocks until it is closed.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	w := NewWindow(game, store, cfg, logger)
	defer game.Close()
	if err := w.Reset(); err != nil {
		return err
	}

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(w.w, w.h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.cfg.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
