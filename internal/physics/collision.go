package physics

import (
	"math"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// separationSlop pushes resolved circles a hair past touching so that
// floating point error never leaves them overlapping.
const separationSlop = 1e-9

// fallbackNormal is used when two centers coincide.
var fallbackNormal = core.V(1, 0)

// Contact describes an overlap between two bodies.
// Normal points from the first body toward the second.
type Contact struct {
	Normal core.Vec2
	Depth  float64
}

// Overlap tests two bodies by shape pairing. It does not resolve anything.
func Overlap(a, b *Body) (Contact, bool) {
	switch sa := a.Shape.(type) {
	case Circle:
		switch sb := b.Shape.(type) {
		case Circle:
			return circleCircle(a.Pos, sa.Radius, b.Pos, sb.Radius)
		case Rect:
			return circleRect(a.Pos, sa.Radius, b.Pos, sb)
		}
	case Rect:
		switch sb := b.Shape.(type) {
		case Circle:
			c, ok := circleRect(b.Pos, sb.Radius, a.Pos, sa)
			c.Normal = c.Normal.Scale(-1)
			return c, ok
		case Rect:
			return rectRect(a.Pos, sa, b.Pos, sb)
		}
	}
	return Contact{}, false
}

func circleCircle(pa core.Vec2, ra float64, pb core.Vec2, rb float64) (Contact, bool) {
	d := pb.Sub(pa)
	dist := d.Len()
	sum := ra + rb
	if dist >= sum {
		return Contact{}, false
	}
	n := fallbackNormal
	if dist > 0 {
		n = d.Scale(1 / dist)
	}
	return Contact{Normal: n, Depth: sum - dist}, true
}

func circleRect(pc core.Vec2, r float64, pr core.Vec2, rect Rect) (Contact, bool) {
	h := rect.Half()
	closest := core.V(
		core.ClampF(pc.X, pr.X-h.X, pr.X+h.X),
		core.ClampF(pc.Y, pr.Y-h.Y, pr.Y+h.Y),
	)
	d := closest.Sub(pc)
	dist := d.Len()
	if dist > 0 {
		if dist >= r {
			return Contact{}, false
		}
		return Contact{Normal: d.Scale(1 / dist), Depth: r - dist}, true
	}
	// Center inside the rect: push out along the shallowest axis.
	dx := h.X - math.Abs(pc.X-pr.X)
	dy := h.Y - math.Abs(pc.Y-pr.Y)
	if dx < dy {
		n := core.V(1, 0)
		if pr.X < pc.X {
			n.X = -1
		}
		return Contact{Normal: n, Depth: dx + r}, true
	}
	n := core.V(0, 1)
	if pr.Y < pc.Y {
		n.Y = -1
	}
	return Contact{Normal: n, Depth: dy + r}, true
}

func rectRect(pa core.Vec2, ra Rect, pb core.Vec2, rb Rect) (Contact, bool) {
	ha, hb := ra.Half(), rb.Half()
	d := pb.Sub(pa)
	ox := ha.X + hb.X - math.Abs(d.X)
	oy := ha.Y + hb.Y - math.Abs(d.Y)
	if ox <= 0 || oy <= 0 {
		return Contact{}, false
	}
	if ox < oy {
		n := core.V(1, 0)
		if d.X < 0 {
			n.X = -1
		}
		return Contact{Normal: n, Depth: ox}, true
	}
	n := core.V(0, 1)
	if d.Y < 0 {
		n.Y = -1
	}
	return Contact{Normal: n, Depth: oy}, true
}

// ResolveCircles separates two overlapping circles in proportion to inverse
// mass and applies a restitution impulse along the contact normal. A
// restitution above 1 adds energy. It reports whether the bodies overlapped.
func ResolveCircles(a, b *Body, restitution float64) bool {
	ca, okA := a.Shape.(Circle)
	cb, okB := b.Shape.(Circle)
	if !okA || !okB {
		return false
	}
	c, hit := circleCircle(a.Pos, ca.Radius, b.Pos, cb.Radius)
	if !hit {
		return false
	}
	resolve(a, b, c, restitution)
	return true
}

// Resolve is ResolveCircles for any shape pairing, using the contact
// normal from Overlap.
func Resolve(a, b *Body, restitution float64) bool {
	c, hit := Overlap(a, b)
	if !hit {
		return false
	}
	resolve(a, b, c, restitution)
	return true
}

func resolve(a, b *Body, c Contact, restitution float64) {
	invA, invB := a.InvMass(), b.InvMass()
	total := invA + invB
	if total == 0 {
		return
	}

	push := c.Depth + separationSlop
	a.Pos = a.Pos.Sub(c.Normal.Scale(push * invA / total))
	b.Pos = b.Pos.Add(c.Normal.Scale(push * invB / total))

	into := b.Vel.Sub(a.Vel).Dot(c.Normal)
	if into >= 0 {
		return // already separating
	}
	j := -(1 + restitution) * into / total
	a.Vel = a.Vel.Sub(c.Normal.Scale(j * invA))
	b.Vel = b.Vel.Add(c.Normal.Scale(j * invB))
}

// Land snaps a falling body onto a platform top. The body must have been
// above the top before this tick and must now be inside the top band while
// moving down. The band grows with the tick's displacement so fast bodies
// cannot tunnel.
func Land(b, platform *Body) bool {
	if b.Vel.Y <= 0 {
		return false
	}
	if b.Right() <= platform.Left() || b.Left() >= platform.Right() {
		return false
	}
	half := b.Shape.Half().Y
	top := platform.Top()
	prevBottom := b.Prev.Y + half
	bottom := b.Pos.Y + half
	band := max(platform.Shape.Half().Y, bottom-prevBottom)
	if prevBottom > top || bottom < top || bottom > top+band {
		return false
	}
	b.Vel.Y = 0
	b.Pos.Y = top - half
	return true
}

// Segment is a wall between two points.
type Segment struct {
	A, B core.Vec2
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.A.Dist(s.B)
}

// Closest returns the closest point on the segment to p. A zero-length
// segment degrades to its single point.
func (s Segment) Closest(p core.Vec2) core.Vec2 {
	ab := s.B.Sub(s.A)
	l2 := ab.LenSq()
	if l2 == 0 {
		return s.A
	}
	t := core.ClampF(p.Sub(s.A).Dot(ab)/l2, 0, 1)
	return s.A.Add(ab.Scale(t))
}

// Distance returns the distance from p to the segment.
func (s Segment) Distance(p core.Vec2) float64 {
	return p.Dist(s.Closest(p))
}

// BounceWall checks a body against a wall. Within the body radius the
// velocity is inverted and scaled by damping, and the body is moved back to
// the wall surface. A body already moving away keeps its velocity.
func BounceWall(b *Body, wall Segment, damping float64) bool {
	r := b.Radius()
	closest := wall.Closest(b.Pos)
	d := b.Pos.Sub(closest)
	dist := d.Len()
	if dist >= r {
		return false
	}

	n := fallbackNormal
	switch {
	case dist > 0:
		n = d.Scale(1 / dist)
	case wall.Len() > 0:
		ab := wall.B.Sub(wall.A).Normalize()
		n = core.V(-ab.Y, ab.X)
	}

	if b.Vel.Dot(n) < 0 {
		b.Vel = b.Vel.Scale(-damping)
	}
	b.Pos = closest.Add(n.Scale(r))
	return true
}

// ResolveAll resolves every overlapping circle pair in discovery order.
// Each resolution sees positions already moved by earlier ones this tick.
func ResolveAll(bodies []*Body, restitution float64) int {
	hits := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Dead || bodies[j].Dead {
				continue
			}
			if ResolveCircles(bodies[i], bodies[j], restitution) {
				hits++
			}
		}
	}
	return hits
}

// EachOverlap calls fn for every overlapping pair between two groups,
// in discovery order. fn may kill bodies; dead bodies are skipped.
func EachOverlap(as, bs []*Body, fn func(a, b *Body)) {
	for _, a := range as {
		for _, b := range bs {
			if a.Dead || b.Dead {
				continue
			}
			if _, ok := Overlap(a, b); ok {
				fn(a, b)
			}
		}
	}
}
