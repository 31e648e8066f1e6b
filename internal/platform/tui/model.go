package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/clock"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

// stepper holds the per-tick state the clock callback writes. It lives
// behind a pointer because Bubble Tea models are copied on every update.
type stepper struct {
	game   registry.Game
	frame  core.InputFrame
	result core.StepResult
}

func (s *stepper) tick(dt time.Duration) {
	s.result.Ended = false
	s.result = s.game.Step(dt, s.frame)
	s.frame.Clear()
}

// GameModel is the Bubble Tea model for one title. B or Esc at the title's
// own mode menu leaves it.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	raster  Rasterizer
	store   *storage.Store
	config  core.RuntimeConfig
	keys    *KeyMapper
	logger  *log.Logger
	clock   *clock.Clock
	step    *stepper
	started time.Time

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game. A nil logger discards.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if l, ok := game.(registry.Logged); ok {
		l.SetLogger(logger)
	}

	st := &stepper{game: game, frame: core.NewInputFrame()}
	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		raster: Rasterizer{UnitW: cfg.UnitW, UnitH: cfg.UnitH},
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(cfg.UnitW, cfg.UnitH),
		logger: logger,
		clock:  clock.New(st.tick, nil, logger),
		step:   st,
	}
}

// Reset puts the game at its mode menu. Configuration errors surface here.
func (m GameModel) Reset() error {
	if err := m.game.Reset(m.config); err != nil {
		return err
	}
	m.logger.Debug("game reset", "game", m.game.ID(), "seed", m.config.Seed)
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keys.TouchEvent(msg); ok {
			m.game.Handle(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key for the input controller and maps it to a
// shell action for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	if KeyName(msg) == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if action == core.ActionBack && m.game.State().Phase == "menu" {
		m.backToMenu = true
		return m, nil
	}

	m.game.Handle(m.keys.KeyEvent(msg))
	if action != core.ActionNone {
		m.step.frame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation step and records finished matches.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	before := m.game.State().Phase
	m.clock.Update(now)
	res := m.step.result

	if before != "countdown" && res.State.Phase == "countdown" {
		m.started = now
	}
	if res.Ended {
		m.record(res.State, now.Sub(m.started))
	}
	return m, tickCmd(m.config.TickRate)
}

// record saves a finished match to the scoreboard.
func (m *GameModel) record(st core.GameState, d time.Duration) {
	if m.store == nil {
		return
	}
	mode := ""
	if md, ok := m.game.(registry.Moded); ok {
		mode = md.ModeName()
	}
	id, err := m.store.Record(m.game.ID(), mode, st, d)
	if err != nil {
		m.logger.Warn("could not save result", "game", m.game.ID(), "error", err)
		return
	}
	if id != "" {
		m.logger.Info("match saved", "game", m.game.ID(), "match", id, "winner", st.Winner)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.raster.Draw(m.screen, m.game.Snapshot())

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current snapshot.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.raster.Draw(m.screen, m.game.Snapshot())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the title.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one title full-screen until the player quits or leaves the
// title menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	defer game.Close()
	if err := model.Reset(); err != nil {
		return err
	}

	p := tea.NewProgram(
		gameProgram{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// gameProgram ends the program when the wrapped model leaves its title.
type gameProgram struct {
	GameModel
}

func (g gameProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := g.GameModel.Update(msg)
	g.GameModel = next.(GameModel)
	if g.BackToMenu() {
		return g, tea.Quit
	}
	return g, cmd
}
