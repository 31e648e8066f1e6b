package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/registry"
	"github.com/vovakirdan/couch-arcade/internal/storage"
)

func TestTallyMatches(t *testing.T) {
	got := tallyMatches([]storage.MatchResult{
		{Winner: "P1"}, {Winner: "P2"}, {Winner: "P1"}, {Winner: ""}, {Winner: "-"},
	})
	expected := versusTally{P1: 2, P2: 1, Draws: 2}
	if got != expected {
		t.Errorf("tallyMatches() = %+v, expected %+v", got, expected)
	}
}

func TestScoreboardPanes(t *testing.T) {
	registry.Register("zzz-board", func() registry.Game { return newStub() })

	store, err := storage.Open(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.MatchResult{
		{GameID: "zzz-board", Mode: "Duel", Score1: 3, Score2: 1, Winner: "P1", Duration: 90 * time.Second},
		{GameID: "zzz-board", Mode: "Duel", Score1: 2, Score2: 2, Duration: time.Minute},
	} {
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, nil, 100, 30)
	for m.gameID() != "zzz-board" {
		m.step(1)
	}

	if m.pane != paneVersus {
		t.Errorf("pane = %v, expected Versus for a title with only matches", m.pane)
	}
	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("len(Rows()) = %d, expected 2", got)
	}
	v := m.View()
	for _, want := range []string{"P1 1  P2 0  draws 1", "draw", "1m30s"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q:\n%s", want, v)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.pane != paneSolo {
		t.Errorf("pane = %v, expected Solo after tab", m.pane)
	}
	if !strings.Contains(m.View(), "Nothing recorded yet.") {
		t.Errorf("View() should show the empty solo table:\n%s", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() || cmd != nil {
		t.Error("Esc should leave the board without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 40, 20)
	if !strings.Contains(m.View(), "S C O R E S") {
		t.Errorf("View() should render without a store:\n%s", m.View())
	}
	next, cmd := m.Update(runeKey("q"))
	if !next.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestStoreReadErrorsAreLogged(t *testing.T) {
	if !registry.Exists("zzz-closed") {
		registry.Register("zzz-closed", func() registry.Game { return newStub() })
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	board := NewScoreboardModel(store, logger, 80, 24)
	if len(board.scores) != 0 || len(board.matches) != 0 {
		t.Error("board loaded rows from a closed store")
	}
	menu := NewMenuModel(core.DefaultConfig(), store, logger)
	if len(menu.items) == 0 {
		t.Error("menu should still list titles without stats")
	}

	for _, want := range []string{"scoreboard read failed", "menu stats unavailable"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}
