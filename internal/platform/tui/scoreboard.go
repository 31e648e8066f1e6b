package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

const boardRows = 50

// boardPane selects which history the board lists for a title.
type boardPane int

const (
	paneSolo boardPane = iota
	paneVersus
)

func (p boardPane) String() string {
	if p == paneVersus {
		return "Versus"
	}
	return "Solo"
}

// boardKeys are the scoreboard bindings. Left/right walk the titles, the
// pane key flips between solo scores and versus results.
type boardKeys struct {
	Scroll key.Binding
	Title  key.Binding
	Pane   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Title, k.Pane, k.Scroll, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "scroll")),
		Title:  key.NewBinding(key.WithKeys("left", "right", "a", "d"), key.WithHelp("left/right", "title")),
		Pane:   key.NewBinding(key.WithKeys("tab", "v"), key.WithHelp("tab", "solo/versus")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// versusTally counts wins per side over a title's recorded matches.
type versusTally struct {
	P1, P2, Draws int
}

func tallyMatches(ms []storage.MatchResult) versusTally {
	var t versusTally
	for _, r := range ms {
		switch r.Winner {
		case "P1":
			t.P1++
		case "P2":
			t.P2++
		default:
			t.Draws++
		}
	}
	return t
}

// ScoreboardModel lists saved results for one registered title at a time.
type ScoreboardModel struct {
	titles []registry.GameInfo
	cur    int
	pane   boardPane

	store   *storage.Store
	logger  *log.Logger
	scores  []storage.ScoreEntry
	matches []storage.MatchResult
	stats   *storage.GameStats
	tally   versusTally

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewScoreboardModel opens the board on the first registered title. A nil
// store shows empty tables. Read errors go to logger at debug level.
func NewScoreboardModel(store *storage.Store, logger *log.Logger, width, height int) ScoreboardModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := ScoreboardModel{
		titles: registry.List(),
		store:  store,
		logger: logger,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	m.table = table.New(table.WithFocused(true), table.WithStyles(styles))

	m.load()
	return m
}

func (m *ScoreboardModel) gameID() string {
	if len(m.titles) == 0 {
		return ""
	}
	return m.titles[m.cur].ID
}

// load reads the current title's history from the store and opens the
// pane that has something to show.
func (m *ScoreboardModel) load() {
	m.scores, m.matches, m.stats = nil, nil, nil
	id := m.gameID()
	if m.store != nil && id != "" {
		var errs []error
		var err error
		if m.scores, err = m.store.TopScores(id, boardRows); err != nil {
			errs = append(errs, err)
		}
		if m.matches, err = m.store.RecentMatches(id, boardRows); err != nil {
			errs = append(errs, err)
		}
		if m.stats, err = m.store.GetGameStats(id); err != nil {
			errs = append(errs, err)
		}
		if err := errors.Join(errs...); err != nil {
			m.logger.Debug("scoreboard read failed", "game", id, "error", err)
		}
	}
	m.tally = tallyMatches(m.matches)
	if len(m.scores) == 0 && len(m.matches) > 0 {
		m.pane = paneVersus
	}
	m.fill()
}

// fill rebuilds the table for the current pane. Rows go first so no row
// is ever wider than the new header.
func (m *ScoreboardModel) fill() {
	m.table.SetRows(nil)
	m.table.SetHeight(max(3, m.height-10))

	var rows []table.Row
	if m.pane == paneVersus {
		m.table.SetColumns([]table.Column{
			{Title: "Result", Width: 7},
			{Title: "P1", Width: 4},
			{Title: "P2", Width: 4},
			{Title: "Mode", Width: 10},
			{Title: "Length", Width: 7},
			{Title: "Played", Width: 13},
		})
		for _, r := range m.matches {
			result := r.Winner
			if result == "" || result == "-" {
				result = "draw"
			}
			rows = append(rows, table.Row{
				result,
				fmt.Sprint(r.Score1),
				fmt.Sprint(r.Score2),
				r.Mode,
				r.Duration.Round(time.Second).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	} else {
		m.table.SetColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Played", Width: 13},
		})
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprint(i + 1),
				fmt.Sprint(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.titles); n > 0 {
		m.cur = (m.cur + delta + n) % n
		m.pane = paneSolo
		m.load()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch KeyName(msg) {
		case "left", "a":
			m.step(-1)
			return m, nil
		case "right", "d":
			m.step(1)
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Pane):
			m.pane = 1 - m.pane
			m.fill()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.fill()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// summary is the one-line digest above the table.
func (m ScoreboardModel) summary() string {
	if m.pane == paneVersus {
		return fmt.Sprintf("P1 %d  P2 %d  draws %d", m.tally.P1, m.tally.P2, m.tally.Draws)
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no solo runs yet"
	}
	return fmt.Sprintf("best %d  avg %.0f  runs %d", m.stats.HighScore, m.stats.AvgScore, m.stats.GamesCount)
}

func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.titles))
	for i, g := range m.titles {
		if i == m.cur {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-2 && len(m.titles) > 0 {
		line = "< " + m.titles[m.cur].Title + " >"
	}
	return line
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("S C O R E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.pane.String()+"  |  "+m.summary(), m.width))
	b.WriteString("\n")

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = boardDimStyle.Italic(true).Padding(1, 2).Render("Nothing recorded yet.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// IsGoingBack reports whether the player left the board for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
