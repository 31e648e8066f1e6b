package control

import (
	"testing"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

const frame = time.Second / 60

var canvas = core.Extent{W: 800, H: 600}

func key(k string) core.InputEvent { return core.InputEvent{Kind: core.KeyDown, Key: k} }
func keyUp(k string) core.InputEvent { return core.InputEvent{Kind: core.KeyUp, Key: k} }

func touchAt(kind core.EventKind, id int, x, y float64) core.InputEvent {
	return core.InputEvent{Kind: kind, TouchID: id, Pos: core.V(x, y)}
}

func TestTwoActorsIndependentKeys(t *testing.T) {
	c := New(DefaultOptions(2), canvas)
	c.Handle(key("a"))
	c.Handle(key("up"))

	sig := c.Sample(frame)
	if sig[core.Player1].Turn != -1 || sig[core.Player1].Accelerate != 0 {
		t.Errorf("P1 = %+v, expected turn -1 only", sig[core.Player1])
	}
	if sig[core.Player2].Accelerate != 1 || sig[core.Player2].Turn != 0 {
		t.Errorf("P2 = %+v, expected accelerate 1 only", sig[core.Player2])
	}

	c.Handle(keyUp("a"))
	sig = c.Sample(frame)
	if sig[core.Player1].Turn != 0 {
		t.Errorf("P1 Turn after release = %v, expected 0", sig[core.Player1].Turn)
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	c := New(DefaultOptions(1), canvas)
	c.Handle(key("left"))
	c.Handle(key("d"))

	sig := c.Sample(frame)
	if sig[core.Player1].Turn != 0 {
		t.Errorf("Turn = %v, expected 0", sig[core.Player1].Turn)
	}
}

func TestFireDebounce(t *testing.T) {
	opts := DefaultOptions(1)
	opts.FireCooldown = 250 * time.Millisecond
	c := New(opts, canvas)
	c.Handle(key("space"))

	fired := 0
	for i := 0; i < 60; i++ {
		if c.Sample(frame)[core.Player1].Fire {
			fired++
		}
	}
	if fired != 4 {
		t.Errorf("held fire for 1s fired %d times, expected 4", fired)
	}
}

func TestFireDebounceIgnoresRapidTaps(t *testing.T) {
	c := New(DefaultOptions(1), canvas)

	fired := 0
	for i := 0; i < 10; i++ {
		c.Handle(key("f"))
		if c.Sample(frame)[core.Player1].Fire {
			fired++
		}
		c.Handle(keyUp("f"))
		c.Sample(frame)
	}
	// 20 frames is ~333ms, so one cooldown boundary is crossed.
	if fired != 2 {
		t.Errorf("rapid taps fired %d times, expected 2", fired)
	}
}

func TestJumpDebounce(t *testing.T) {
	c := New(DefaultOptions(1), canvas)
	c.Handle(key("w"))

	jumped := 0
	for i := 0; i < 60; i++ {
		if c.Sample(frame)[core.Player1].Jump {
			jumped++
		}
	}
	if jumped != 6 {
		t.Errorf("held jump for 1s jumped %d times, expected 6", jumped)
	}
}

func TestHoldWindowReleasesKeys(t *testing.T) {
	opts := DefaultOptions(1)
	opts.Hold = 100 * time.Millisecond
	c := New(opts, canvas)
	c.Handle(key("left"))

	if c.Sample(frame)[core.Player1].Turn != -1 {
		t.Fatal("key should be held right after press")
	}
	for i := 0; i < 10; i++ {
		c.Sample(frame)
	}
	if got := c.Sample(frame)[core.Player1].Turn; got != 0 {
		t.Errorf("Turn after hold window = %v, expected 0", got)
	}
}

func TestJoystickClamp(t *testing.T) {
	j := Joystick{Radius: 50}
	if !j.Begin(1, core.V(100, 100)) {
		t.Fatal("Begin() = false")
	}
	if j.Begin(2, core.V(0, 0)) {
		t.Error("second Begin() should fail while active")
	}

	j.Move(1, core.V(300, 100))
	if got := j.Stick(); got != core.V(150, 100) {
		t.Errorf("Stick() = %v, expected (150,100)", got)
	}
	if v := j.Vector(); v != core.V(1, 0) {
		t.Errorf("Vector() = %v, expected (1,0)", v)
	}

	j.Move(2, core.V(0, 0))
	if got := j.Stick(); got != core.V(150, 100) {
		t.Errorf("foreign touch moved stick to %v", got)
	}

	j.End(1)
	if j.Active() || j.Vector() != (core.Vec2{}) {
		t.Error("End() should center and release the stick")
	}
}

func TestJoystickModeSplitsScreenHalves(t *testing.T) {
	opts := DefaultOptions(2)
	opts.Touch = core.TouchJoystick
	c := New(opts, canvas)

	c.Handle(touchAt(core.TouchStart, 1, 100, 300))
	c.Handle(touchAt(core.TouchMove, 1, 100, 250))
	c.Handle(touchAt(core.TouchStart, 2, 600, 300))
	c.Handle(touchAt(core.TouchMove, 2, 650, 300))

	sig := c.Sample(frame)
	if sig[core.Player1].Accelerate != 1 || sig[core.Player1].Turn != 0 {
		t.Errorf("P1 = %+v, expected full forward", sig[core.Player1])
	}
	if sig[core.Player2].Turn != 1 || sig[core.Player2].Accelerate != 0 {
		t.Errorf("P2 = %+v, expected full right", sig[core.Player2])
	}

	// A touch that drifts across the midline stays with its owner.
	c.Handle(touchAt(core.TouchMove, 1, 500, 300))
	sig = c.Sample(frame)
	if sig[core.Player1].Turn != 1 {
		t.Errorf("P1 Turn = %v, expected 1 after crossing midline", sig[core.Player1].Turn)
	}
}

func TestJoystickModeIgnoresKeys(t *testing.T) {
	opts := DefaultOptions(1)
	opts.Touch = core.TouchJoystick
	c := New(opts, canvas)
	c.Handle(key("left"))

	if got := c.Sample(frame)[core.Player1].Turn; got != 0 {
		t.Errorf("Turn = %v, expected keys ignored in joystick mode", got)
	}
}

func TestJoystickSecondTouchFires(t *testing.T) {
	opts := DefaultOptions(1)
	opts.Touch = core.TouchJoystick
	c := New(opts, canvas)

	c.Handle(touchAt(core.TouchStart, 1, 100, 500))
	c.Handle(touchAt(core.TouchStart, 2, 600, 200))

	if !c.Sample(frame)[core.Player1].Fire {
		t.Error("second touch should fire")
	}
}

func TestZonesFireStripAndDrag(t *testing.T) {
	opts := DefaultOptions(2)
	opts.Touch = core.TouchZones
	c := New(opts, canvas)

	// Top 20% of the right half fires for P2.
	c.Handle(touchAt(core.TouchStart, 1, 600, 50))
	// Drag on the left half steers P1.
	c.Handle(touchAt(core.TouchStart, 2, 200, 400))
	c.Handle(touchAt(core.TouchMove, 2, 170, 400))

	sig := c.Sample(frame)
	if !sig[core.Player2].Fire {
		t.Error("P2 should fire from the top strip")
	}
	if sig[core.Player1].Fire {
		t.Error("P1 should not fire from a drag")
	}
	if sig[core.Player1].Turn != -0.5 {
		t.Errorf("P1 Turn = %v, expected -0.5", sig[core.Player1].Turn)
	}

	c.Handle(touchAt(core.TouchEnd, 1, 600, 50))
	c.Sample(5 * frame * 60)
	if c.Sample(frame)[core.Player2].Fire {
		t.Error("P2 should stop firing after release")
	}
}

func TestTapsReachOwner(t *testing.T) {
	c := New(DefaultOptions(1), canvas)

	c.Handle(touchAt(core.TouchStart, 1, 300, 200))
	c.Handle(touchAt(core.TouchEnd, 1, 302, 201))

	sig := c.Sample(frame)
	if !sig[core.Player1].Tapped || sig[core.Player1].Tap != core.V(302, 201) {
		t.Errorf("tap = %+v, expected (302,201)", sig[core.Player1])
	}
	if c.Sample(frame)[core.Player1].Tapped {
		t.Error("tap should be delivered once")
	}

	// A long drag is not a tap.
	c.Handle(touchAt(core.TouchStart, 2, 300, 200))
	c.Handle(touchAt(core.TouchEnd, 2, 400, 200))
	if c.Sample(frame)[core.Player1].Tapped {
		t.Error("drag should not count as a tap")
	}
}

func TestReset(t *testing.T) {
	c := New(DefaultOptions(1), canvas)
	c.Handle(key("left"))
	c.Handle(key("space"))
	c.Sample(frame)

	c.Reset()
	sig := c.Sample(frame)
	if sig[core.Player1].Turn != 0 || sig[core.Player1].Fire {
		t.Errorf("after Reset() = %+v, expected neutral", sig[core.Player1])
	}
}

func TestShellAction(t *testing.T) {
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"enter", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"r", core.ActionRestart, false},
		{"3", core.ActionOption3, false},
		{"right", core.ActionNext, false},
		{"a", core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := ShellAction(tt.key)
		if action != tt.action || quit != tt.quit {
			t.Errorf("ShellAction(%q) = (%v, %v), expected (%v, %v)", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}
