// Package physics holds the simulated bodies of the arcade and the arcade-grade
// integrator and collision engine that move them.
package physics

import "github.com/vovakirdan/couch-arcade/internal/core"

// Kind classifies a body for integration limits and game rules.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindObstacle
	KindCoin
	KindKart
	KindBall
	KindPlatform
	KindPickup
)

var kindNames = [...]string{"player", "enemy", "projectile", "obstacle", "coin", "kart", "ball", "platform", "pickup"}

// String returns the config name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Shape is the tagged collision shape of a body: Circle or Rect.
type Shape interface {
	// Half returns the half width and half height of the shape.
	Half() core.Vec2
	shape()
}

// Circle is a round body of the given radius.
type Circle struct {
	Radius float64
}

func (c Circle) Half() core.Vec2 { return core.V(c.Radius, c.Radius) }

func (Circle) shape() {}

// Rect is an axis-aligned box centered on the body position.
type Rect struct {
	W, H float64
}

func (r Rect) Half() core.Vec2 { return core.V(r.W/2, r.H/2) }

func (Rect) shape() {}

// Body is a simulated shape. Pos is the center in world units.
type Body struct {
	ID    int
	Pos   core.Vec2
	Vel   core.Vec2
	Prev  core.Vec2 // Pos before the last integration step
	Angle float64
	Shape Shape
	Owner core.PlayerID
	Mass  float64 // <= 0 means immovable
	Kind  Kind
	Dead  bool
}

// Top returns the y of the top edge.
func (b *Body) Top() float64 { return b.Pos.Y - b.Shape.Half().Y }

// Bottom returns the y of the bottom edge.
func (b *Body) Bottom() float64 { return b.Pos.Y + b.Shape.Half().Y }

// Left returns the x of the left edge.
func (b *Body) Left() float64 { return b.Pos.X - b.Shape.Half().X }

// Right returns the x of the right edge.
func (b *Body) Right() float64 { return b.Pos.X + b.Shape.Half().X }

// Radius returns the circle radius, or the smaller half extent of a rect.
func (b *Body) Radius() float64 {
	switch s := b.Shape.(type) {
	case Circle:
		return s.Radius
	case Rect:
		return min(s.W, s.H) / 2
	}
	return 0
}

// InvMass returns 1/mass, zero for immovable bodies.
func (b *Body) InvMass() float64 {
	if b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Kill marks the body for removal at the end of the tick.
func (b *Body) Kill() { b.Dead = true }

// View returns a drawable copy of the body.
func (b *Body) View(c core.Color, glyph rune) core.BodyView {
	v := core.BodyView{Pos: b.Pos, Angle: b.Angle, Color: c, Glyph: glyph}
	switch s := b.Shape.(type) {
	case Circle:
		v.Shape = core.ShapeCircle
		v.Radius = s.Radius
	case Rect:
		v.Shape = core.ShapeRect
		v.W, v.H = s.W, s.H
	}
	return v
}

// Actor is a body driven by a player or the AI pilot.
type Actor struct {
	*Body
	Player   core.PlayerID
	AI       bool
	Lives    int
	Laps     int
	Score    int
	OnGround bool
	// Checkpoint is set once the actor passed the lap checkpoint since its last lap.
	Checkpoint bool
	// TargetWaypoint is the waypoint index an AI actor is pursuing.
	TargetWaypoint int
	// Speed is the signed forward speed for heading-steered actors.
	Speed float64
}

// IDs hands out body IDs for one session.
type IDs struct {
	next int
}

// Next returns a fresh ID.
func (s *IDs) Next() int {
	s.next++
	return s.next
}

// Reset restarts numbering so a replayed session gets the same IDs.
func (s *IDs) Reset() {
	s.next = 0
}

// Sweep drops dead bodies in place and returns the shortened slice.
func Sweep(bodies []*Body) []*Body {
	out := bodies[:0]
	for _, b := range bodies {
		if !b.Dead {
			out = append(out, b)
		}
	}
	for i := len(out); i < len(bodies); i++ {
		bodies[i] = nil
	}
	return out
}
