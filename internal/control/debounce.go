package control

import "time"

// Debouncer lets an action through at most once per cooldown window.
// Presses during the window are dropped, not queued.
type Debouncer struct {
	Cooldown  time.Duration
	remaining time.Duration
}

// Advance counts the cooldown down by dt.
func (d *Debouncer) Advance(dt time.Duration) {
	if d.remaining > 0 {
		d.remaining -= dt
	}
}

// Trigger reports whether a press fires now and starts the cooldown if so.
func (d *Debouncer) Trigger(pressed bool) bool {
	if !pressed || d.remaining > 0 {
		return false
	}
	d.remaining = d.Cooldown
	return true
}

// Ready reports whether the next press would fire.
func (d *Debouncer) Ready() bool {
	return d.remaining <= 0
}

// Reset clears any running cooldown.
func (d *Debouncer) Reset() {
	d.remaining = 0
}
