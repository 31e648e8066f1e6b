package control

import "github.com/vovakirdan/couch-arcade/internal/core"

// Joystick is a virtual stick anchored where a touch began. The stick point
// follows the touch but never leaves Radius of the base.
type Joystick struct {
	Radius float64

	active  bool
	touchID int
	base    core.Vec2
	stick   core.Vec2
}

// Begin anchors the stick at p. It fails if another touch owns the stick.
func (j *Joystick) Begin(id int, p core.Vec2) bool {
	if j.active {
		return false
	}
	j.active = true
	j.touchID = id
	j.base = p
	j.stick = p
	return true
}

// Move drags the stick if id owns it.
func (j *Joystick) Move(id int, p core.Vec2) bool {
	if !j.active || id != j.touchID {
		return false
	}
	d := p.Sub(j.base)
	if l := d.Len(); l > j.Radius && l > 0 {
		d = d.Scale(j.Radius / l)
	}
	j.stick = j.base.Add(d)
	return true
}

// End releases the stick if id owns it.
func (j *Joystick) End(id int) bool {
	if !j.active || id != j.touchID {
		return false
	}
	j.active = false
	j.stick = j.base
	return true
}

// Owns reports whether touch id drives the stick.
func (j *Joystick) Owns(id int) bool {
	return j.active && id == j.touchID
}

// Active reports whether a touch holds the stick.
func (j *Joystick) Active() bool {
	return j.active
}

// Base returns the anchor point.
func (j *Joystick) Base() core.Vec2 {
	return j.base
}

// Stick returns the clamped stick point.
func (j *Joystick) Stick() core.Vec2 {
	return j.stick
}

// Vector returns the stick displacement normalized to [-1, 1] per axis.
func (j *Joystick) Vector() core.Vec2 {
	if !j.active || j.Radius <= 0 {
		return core.Vec2{}
	}
	return j.stick.Sub(j.base).Scale(1 / j.Radius)
}

// Reset drops any active touch.
func (j *Joystick) Reset() {
	j.active = false
	j.base = core.Vec2{}
	j.stick = core.Vec2{}
}
