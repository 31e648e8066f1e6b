package level

import (
	"math"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/physics"
)

// Track fractions of the canvas: the course is the lane between two
// concentric rectangles.
const (
	outerInset = 0.1
	innerInset = 0.3
)

// Track is the cached geometry of a rectangular circuit. Walls, finish
// line, checkpoint and waypoints all come from the same two rectangles.
type Track struct {
	Extent core.Extent
	Walls  []physics.Segment
	// Finish spans the left lane; a lap counts when crossed moving up.
	Finish physics.Segment
	// CheckpointX is the x past which a kart has reached the far lane.
	CheckpointX float64
	// Waypoints is the lane centerline, clockwise on screen from the finish.
	Waypoints []core.Vec2
	Starts    [core.MaxPlayers]core.Vec2
	Heading   float64
}

// BuildTrack derives the circuit for a canvas.
func BuildTrack(e core.Extent) Track {
	at := func(fx, fy float64) core.Vec2 { return core.V(fx*e.W, fy*e.H) }
	loop := func(inset float64) []physics.Segment {
		a, b := at(inset, inset), at(1-inset, inset)
		c, d := at(1-inset, 1-inset), at(inset, 1-inset)
		return []physics.Segment{{A: a, B: b}, {A: b, B: c}, {A: c, B: d}, {A: d, B: a}}
	}

	t := Track{Extent: e, Heading: -math.Pi / 2}
	t.Walls = append(loop(outerInset), loop(innerInset)...)

	mid := (outerInset + innerInset) / 2
	t.Finish = physics.Segment{A: at(outerInset, 0.5), B: at(innerInset, 0.5)}
	t.CheckpointX = (1 - innerInset) * e.W

	t.Waypoints = []core.Vec2{
		at(mid, 0.5),
		at(mid, mid),
		at(0.5, mid),
		at(1-mid, mid),
		at(1-mid, 0.5),
		at(1-mid, 1-mid),
		at(0.5, 1-mid),
		at(mid, 1-mid),
	}

	lane := (innerInset - outerInset) * e.W
	t.Starts[core.Player1] = core.V(outerInset*e.W+lane*0.3, 0.5*e.H+40)
	t.Starts[core.Player2] = core.V(outerInset*e.W+lane*0.7, 0.5*e.H+40)
	return t
}

// Crossed reports whether a move from prev to pos crossed the finish line
// going up, within the line's span.
func (t Track) Crossed(prev, pos core.Vec2) bool {
	y := t.Finish.A.Y
	if !(prev.Y > y && pos.Y <= y) {
		return false
	}
	return pos.X >= t.Finish.A.X && pos.X <= t.Finish.B.X
}

// Course caches a Track and rebuilds it only when the canvas changes.
type Course struct {
	track  Track
	built  bool
	builds int
}

// Resize returns the track for e, rebuilding only for a new extent.
func (c *Course) Resize(e core.Extent) Track {
	if !c.built || c.track.Extent != e {
		c.track = BuildTrack(e)
		c.built = true
		c.builds++
	}
	return c.track
}

// Track returns the cached track.
func (c *Course) Track() Track {
	return c.track
}

// Builds returns how many times geometry was derived.
func (c *Course) Builds() int {
	return c.builds
}
