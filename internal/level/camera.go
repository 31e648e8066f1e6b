// Package level holds the scrolling camera, the procedural generator that
// keeps content ahead of it, and cached course geometry.
package level

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// Direction is the axis and sense of travel of a scrolling level.
type Direction int

const (
	ScrollRight Direction = iota // travel toward +x
	ScrollUp                     // travel toward -y
)

// Camera maps world coordinates to the canvas. Progress along the travel
// direction only ever increases.
type Camera struct {
	Offset core.Vec2 // world position of the canvas top-left corner
	View   core.Extent
	Dir    Direction

	tween  *gween.Tween
	target float64
}

// NewCamera creates a camera at the world origin.
func NewCamera(view core.Extent, dir Direction) *Camera {
	return &Camera{View: view, Dir: dir}
}

// Progress returns how far the camera has traveled.
func (c *Camera) Progress() float64 {
	if c.Dir == ScrollUp {
		return -c.Offset.Y
	}
	return c.Offset.X
}

func (c *Camera) setProgress(p float64) {
	if p <= c.Progress() {
		return
	}
	if c.Dir == ScrollUp {
		c.Offset.Y = -p
	} else {
		c.Offset.X = p
	}
}

// ProgressOf returns the travel coordinate of a world point.
func (c *Camera) ProgressOf(p core.Vec2) float64 {
	if c.Dir == ScrollUp {
		return -p.Y
	}
	return p.X
}

// Leading returns the travel coordinate of the edge content scrolls in from.
func (c *Camera) Leading() float64 {
	if c.Dir == ScrollUp {
		return -c.Offset.Y
	}
	return c.Offset.X + c.View.W
}

// Trailing returns the travel coordinate of the edge content scrolls out of.
func (c *Camera) Trailing() float64 {
	if c.Dir == ScrollUp {
		return -(c.Offset.Y + c.View.H)
	}
	return c.Offset.X
}

// Scroll advances the camera by d along the travel direction.
func (c *Camera) Scroll(d float64) {
	if d > 0 {
		c.setProgress(c.Progress() + d)
	}
}

// Chase eases the camera toward a travel coordinate over duration seconds.
// Targets behind the camera are ignored.
func (c *Camera) Chase(progress float64, duration float32, fn ease.TweenFunc) {
	if progress <= c.Progress() {
		return
	}
	if c.tween != nil && progress == c.target {
		return
	}
	c.target = progress
	c.tween = gween.New(float32(c.Progress()), float32(progress), duration, fn)
}

// Update advances an active chase by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.tween == nil {
		return
	}
	v, done := c.tween.Update(dt)
	c.setProgress(float64(v))
	if done {
		c.tween = nil
	}
}

// ToCanvas converts a world point to canvas coordinates.
func (c *Camera) ToCanvas(p core.Vec2) core.Vec2 {
	return p.Sub(c.Offset)
}

// ToWorld converts a canvas point to world coordinates.
func (c *Camera) ToWorld(p core.Vec2) core.Vec2 {
	return p.Add(c.Offset)
}

// Resize changes the viewport without moving the camera.
func (c *Camera) Resize(view core.Extent) {
	c.View = view
}

// Reset puts the camera back at the origin and drops any chase.
func (c *Camera) Reset() {
	c.Offset = core.Vec2{}
	c.tween = nil
	c.target = 0
}
