package control

import "github.com/vovakirdan/couch-arcade/internal/core"

// Region is an axis-aligned area of the canvas.
type Region struct {
	Min, Max core.Vec2
}

// Contains reports whether p lies in the region. The max edge is exclusive.
func (r Region) Contains(p core.Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Height returns the region height.
func (r Region) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Zones splits one actor's region into a fire strip along the top and a
// drag area below it.
type Zones struct {
	Region       Region
	FireFraction float64 // share of the region height used by the fire strip
	DragRadius   float64 // drag distance that maps to full deflection

	fire     map[int]bool
	dragging bool
	dragID   int
	start    core.Vec2
	current  core.Vec2
}

func (z *Zones) fireLine() float64 {
	return z.Region.Min.Y + z.Region.Height()*z.FireFraction
}

// Begin routes a new touch into the fire strip or the drag area.
func (z *Zones) Begin(id int, p core.Vec2) {
	if p.Y < z.fireLine() {
		if z.fire == nil {
			z.fire = make(map[int]bool)
		}
		z.fire[id] = true
		return
	}
	if z.dragging {
		return
	}
	z.dragging = true
	z.dragID = id
	z.start = p
	z.current = p
}

// Move updates the drag if id owns it.
func (z *Zones) Move(id int, p core.Vec2) {
	if z.dragging && id == z.dragID {
		z.current = p
	}
}

// End releases whichever zone id was holding.
func (z *Zones) End(id int) {
	delete(z.fire, id)
	if z.dragging && id == z.dragID {
		z.dragging = false
	}
}

// Firing reports whether any touch holds the fire strip.
func (z *Zones) Firing() bool {
	return len(z.fire) > 0
}

// Drag returns the drag displacement normalized and clamped to [-1, 1].
func (z *Zones) Drag() core.Vec2 {
	if !z.dragging || z.DragRadius <= 0 {
		return core.Vec2{}
	}
	d := z.current.Sub(z.start).Scale(1 / z.DragRadius)
	return core.V(core.ClampF(d.X, -1, 1), core.ClampF(d.Y, -1, 1))
}

// Reset drops all touches.
func (z *Zones) Reset() {
	for id := range z.fire {
		delete(z.fire, id)
	}
	z.dragging = false
}
