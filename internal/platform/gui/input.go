package gui

import (
	"maps"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// mouseTouchID is the touch ID reported for the left mouse button, so a
// desktop pointer drives the same joystick and zone paths as a finger.
const mouseTouchID = -1

// keyName returns the binding spelling of an ebiten key, the one used by
// control.Bindings, or "" for keys no binding uses.
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeySpace:
		return "space"
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return "enter"
	case ebiten.KeyEscape:
		return "esc"
	case ebiten.KeyTab:
		return "tab"
	case ebiten.KeyArrowLeft:
		return "left"
	case ebiten.KeyArrowRight:
		return "right"
	case ebiten.KeyArrowUp:
		return "up"
	case ebiten.KeyArrowDown:
		return "down"
	case ebiten.KeySlash:
		return "/"
	case ebiten.KeyDigit1, ebiten.KeyNumpad1:
		return "1"
	case ebiten.KeyDigit2, ebiten.KeyNumpad2:
		return "2"
	case ebiten.KeyDigit3, ebiten.KeyNumpad3:
		return "3"
	}
	if s := k.String(); len(s) == 1 {
		return strings.ToLower(s)
	}
	return ""
}

// touchTracker turns per-frame pointer positions into touch start, move
// and end events.
type touchTracker struct {
	live map[int]core.Vec2
}

func newTouchTracker() *touchTracker {
	return &touchTracker{live: make(map[int]core.Vec2)}
}

// diff compares the pointers down this frame against the previous frame.
// Events come out ordered by touch ID. A lifted pointer ends at its last
// known position.
func (t *touchTracker) diff(now map[int]core.Vec2) []core.InputEvent {
	var events []core.InputEvent
	for _, id := range slices.Sorted(maps.Keys(t.live)) {
		if _, ok := now[id]; !ok {
			events = append(events, core.InputEvent{Kind: core.TouchEnd, TouchID: id, Pos: t.live[id]})
			delete(t.live, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(now)) {
		p := now[id]
		last, ok := t.live[id]
		switch {
		case !ok:
			events = append(events, core.InputEvent{Kind: core.TouchStart, TouchID: id, Pos: p})
		case last != p:
			events = append(events, core.InputEvent{Kind: core.TouchMove, TouchID: id, Pos: p})
		}
		t.live[id] = p
	}
	return events
}
