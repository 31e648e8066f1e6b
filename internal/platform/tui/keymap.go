package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/couch-arcade/internal/control"
	"github.com/vovakirdan/couch-arcade/internal/core"
)

// KeyMapper translates Bubble Tea messages to shell actions and raw input
// events. This centralizes key bindings and makes them testable.
type KeyMapper struct {
	unitW, unitH float64
	held         bool // a mouse button is down
}

// NewKeyMapper creates a key mapper for a surface of the given cell size
// in world units.
func NewKeyMapper(unitW, unitH float64) *KeyMapper {
	return &KeyMapper{unitW: unitW, unitH: unitH}
}

// KeyName returns the host spelling of a key, the one used by
// control.Bindings.
func KeyName(msg tea.KeyMsg) string {
	k := msg.String()
	if k == " " {
		return "space"
	}
	return k
}

// MapKey translates a key message to a shell action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	return control.ShellAction(KeyName(msg))
}

// KeyEvent returns the raw key-down event for the input controller.
// Terminals report no key releases; the controller's hold window expires
// keys instead.
func (km *KeyMapper) KeyEvent(msg tea.KeyMsg) core.InputEvent {
	return core.InputEvent{Kind: core.KeyDown, Key: KeyName(msg)}
}

// TouchEvent translates a left-button mouse message into a touch event at
// the center of the clicked cell, in world units. Other buttons and
// motion without a held button report false.
func (km *KeyMapper) TouchEvent(msg tea.MouseMsg) (core.InputEvent, bool) {
	pos := core.V((float64(msg.X)+0.5)*km.unitW, (float64(msg.Y)+0.5)*km.unitH)
	ev := core.InputEvent{Pos: pos}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		km.held = true
		ev.Kind = core.TouchStart
	case tea.MouseActionMotion:
		if !km.held {
			return ev, false
		}
		ev.Kind = core.TouchMove
	case tea.MouseActionRelease:
		if !km.held {
			return ev, false
		}
		km.held = false
		ev.Kind = core.TouchEnd
	default:
		return ev, false
	}
	return ev, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to an arcade menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch KeyName(msg) {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// PlayerKeyMap describes one actor's key set for the help line.
type PlayerKeyMap struct {
	Move key.Binding
	Fire key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Fire}
}

// FullHelp returns key bindings for the full help view.
func (k PlayerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// NewPlayerKeyMap builds help bindings from an actor's controls.
func NewPlayerKeyMap(name string, b control.Bindings) PlayerKeyMap {
	move := append(append(append(append([]string{}, b.Up...), b.Left...), b.Down...), b.Right...)
	return PlayerKeyMap{
		Move: key.NewBinding(
			key.WithKeys(move...),
			key.WithHelp(name+" "+strings.Join(move, "/"), "move"),
		),
		Fire: key.NewBinding(
			key.WithKeys(b.Fire...),
			key.WithHelp(strings.Join(b.Fire, "/"), "fire"),
		),
	}
}
