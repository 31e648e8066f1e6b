package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

// SessionModel is one couch: the arcade menu, the title being played and
// the scoreboard one Tab away. It backs `arcade menu` and every SSH
// connection.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger

	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel

	err      string
	quitting bool
}

// NewSessionModel opens a session at the menu. store and logger may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(cfg, store, logger),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// toMenu rebuilds the menu so it shows fresh stats.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.gameModel, m.scoreboard = nil, nil
	m.menu = NewMenuModel(m.config, m.store, m.logger)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Update implements tea.Model. Window sizes are remembered so the next
// screen opens at the right size.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch {
	case m.gameModel != nil:
		next, cmd := m.gameModel.Update(msg)
		gm := next.(GameModel)
		m.gameModel = &gm
		switch {
		case gm.BackToMenu():
			gm.game.Close()
			return m.toMenu()
		case gm.IsQuitting():
			gm.game.Close()
			return m.quit()
		}
		return m, cmd

	case m.scoreboard != nil:
		next, cmd := m.scoreboard.Update(msg)
		sb := next.(ScoreboardModel)
		m.scoreboard = &sb
		switch {
		case sb.IsQuitting():
			return m.quit()
		case sb.IsGoingBack():
			return m.toMenu()
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.logger, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()
	case m.menu.Selected() != nil:
		return m.start(m.menu.Selected().GameID)
	}
	return m, cmd
}

// start creates and resets a title. Failures stay on the menu with the
// error shown under it.
func (m SessionModel) start(id string) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config, m.store, m.logger)
	game, err := registry.Create(id)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	gm := NewGameModel(game, m.store, m.config, m.logger)
	if err := gm.Reset(); err != nil {
		game.Close()
		m.logger.Error("cannot start game", "game", id, "error", err)
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	m.gameModel = &gm
	return m, gm.Init()
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	v := m.menu.View()
	if m.err != "" {
		v += "\n" + centerText(m.err, m.config.ScreenW)
	}
	return v
}

// RunSession runs a couch session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	_, err := tea.NewProgram(
		NewSessionModel(store, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run()
	return err
}
