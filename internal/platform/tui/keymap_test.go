package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(8, 16)
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"2 picks second option", runeKey("2"), core.ActionOption2, false},
		{"left is prev", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionPrev, false},
		{"right is next", tea.KeyMsg{Type: tea.KeyRight}, core.ActionNext, false},
		{"w is player input only", runeKey("w"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestKeyEventUsesBindingNames(t *testing.T) {
	km := NewKeyMapper(8, 16)
	ev := km.KeyEvent(tea.KeyMsg{Type: tea.KeySpace})
	if ev.Kind != core.KeyDown || ev.Key != "space" {
		t.Errorf("KeyEvent(space) = %+v, expected KeyDown \"space\"", ev)
	}

	found := false
	for _, k := range control.WASD().Fire {
		if k == ev.Key {
			found = true
		}
	}
	if !found {
		t.Errorf("WASD fire keys %v do not include %q", control.WASD().Fire, ev.Key)
	}
}

func TestTouchEvent(t *testing.T) {
	km := NewKeyMapper(8, 16)

	if _, ok := km.TouchEvent(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}); ok {
		t.Error("motion without a held button should be ignored")
	}
	if _, ok := km.TouchEvent(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}); ok {
		t.Error("right button should be ignored")
	}

	steps := []struct {
		action tea.MouseAction
		x, y   int
		kind   core.EventKind
	}{
		{tea.MouseActionPress, 2, 3, core.TouchStart},
		{tea.MouseActionMotion, 4, 3, core.TouchMove},
		{tea.MouseActionRelease, 4, 3, core.TouchEnd},
	}
	for _, s := range steps {
		ev, ok := km.TouchEvent(tea.MouseMsg{X: s.x, Y: s.y, Action: s.action, Button: tea.MouseButtonLeft})
		if !ok || ev.Kind != s.kind {
			t.Fatalf("TouchEvent(%v) = (%+v, %v), expected kind %v", s.action, ev, ok, s.kind)
		}
		want := core.V(float64(s.x)*8+4, float64(s.y)*16+8)
		if ev.Pos != want {
			t.Errorf("TouchEvent(%v).Pos = %v, expected %v", s.action, ev.Pos, want)
		}
	}

	if _, ok := km.TouchEvent(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionMotion}); ok {
		t.Error("motion after release should be ignored")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(8, 16)
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("s"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("b"), MenuActionBack},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestPlayerKeyMapHelp(t *testing.T) {
	km := NewPlayerKeyMap("P2", control.Arrows())
	if !km.Move.Enabled() || len(km.Move.Keys()) != 4 {
		t.Errorf("Move keys = %v, expected the four arrows", km.Move.Keys())
	}
	if km.Move.Help().Key == "" || km.Fire.Help().Desc != "fire" {
		t.Errorf("help = %+v / %+v", km.Move.Help(), km.Fire.Help())
	}
}
