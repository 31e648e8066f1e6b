package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

// MenuItem is one title on the arcade menu with what the scoreboard
// knows about it.
type MenuItem struct {
	GameID  string
	Title   string
	Best    int
	Matches int
}

// record is the short stats column next to a title.
func (it MenuItem) record() string {
	var parts []string
	if it.Best > 0 {
		parts = append(parts, fmt.Sprintf("best %d", it.Best))
	}
	if it.Matches > 0 {
		parts = append(parts, fmt.Sprintf("%d versus", it.Matches))
	}
	return strings.Join(parts, ", ")
}

// MenuModel picks the title a session plays next.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	width   int
	height  int
	keys    *KeyMapper
	help    help.Model
	players [core.MaxPlayers]PlayerKeyMap

	chosen     *MenuItem
	wantsBoard bool
	quitting   bool
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuStatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewMenuModel lists every registered title. Stats come from store when
// it is not nil. logger may be nil.
func NewMenuModel(cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) MenuModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var stats map[string]*storage.GameStats
	if store != nil {
		var err error
		if stats, err = store.GetAllGamesStats(); err != nil {
			logger.Debug("menu stats unavailable", "error", err)
		}
	}

	var items []MenuItem
	for _, g := range registry.List() {
		it := MenuItem{GameID: g.ID, Title: g.Title}
		if st := stats[g.ID]; st != nil {
			it.Best, it.Matches = st.HighScore, st.Matches
		}
		items = append(items, it)
	}

	m := MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		keys:   NewKeyMapper(cfg.UnitW, cfg.UnitH),
		help:   help.New(),
		players: [core.MaxPlayers]PlayerKeyMap{
			NewPlayerKeyMap("P1", control.WASD()),
			NewPlayerKeyMap("P2", control.Arrows()),
		},
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		n := len(m.items)
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if n > 0 {
				it := m.items[m.cursor]
				m.chosen = &it
			}
		case MenuActionScoreboard:
			m.wantsBoard = true
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	nameW := 0
	for _, it := range m.items {
		nameW = max(nameW, len(it.Title))
	}

	lines := []string{
		"",
		menuTitleStyle.Render("C O U C H   A R C A D E"),
		"",
		"two players, one screen",
		"",
	}
	for i, it := range m.items {
		row := fmt.Sprintf("%-*s  %s", nameW, it.Title, menuStatStyle.Render(fmt.Sprintf("%-18s", it.record())))
		if i == m.cursor {
			row = menuCursorStyle.Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "")
	for _, p := range m.players {
		lines = append(lines, menuHelpStyle.Render(m.help.View(p)))
	}
	lines = append(lines, menuHelpStyle.Render("enter play  |  tab scores  |  q quit"))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen title, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.chosen
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.wantsBoard
}

// centerText pads text so it sits in the middle of width cells.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
