package steer

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/physics"
)

func TestNewPilotRejectsEmptyChain(t *testing.T) {
	_, err := NewPilot(nil, Tier{Speed: 1, TurnRate: 0.1, ArrivalPrecision: 10}, 0.05)
	if !errors.Is(err, ErrEmptyChain) {
		t.Errorf("NewPilot() = %v, expected ErrEmptyChain", err)
	}
}

func TestNewPilotRejectsBadTier(t *testing.T) {
	_, err := NewPilot([]core.Vec2{{X: 1}}, Tier{Speed: 0, TurnRate: 0.1, ArrivalPrecision: 10}, 0.05)
	if !errors.Is(err, ErrTier) {
		t.Errorf("NewPilot() = %v, expected ErrTier", err)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}

	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v, outside (-pi, pi]", tc.in, got)
		}
	}
}

func TestArrivalAdvancesTarget(t *testing.T) {
	chain := []core.Vec2{{X: 100, Y: 0}, {X: 100, Y: 100}}
	p, err := NewPilot(chain, Tier{Speed: 5, TurnRate: 0.1, ArrivalPrecision: 75}, 0.01)
	if err != nil {
		t.Fatalf("NewPilot() failed: %v", err)
	}

	a := &physics.Actor{Body: &physics.Body{Shape: physics.Circle{Radius: 10}}}
	advancedAt := 0
	for tick := 1; tick <= 10 && advancedAt == 0; tick++ {
		dist := a.Pos.Dist(chain[0])
		p.Drive(a)
		if p.Target() == 1 {
			advancedAt = tick
			if dist >= 75 {
				t.Errorf("tick %d: advanced at distance %v, expected < 75", tick, dist)
			}
			break
		}
		if dist < 75 {
			t.Fatalf("tick %d: still on waypoint 0 at distance %v", tick, dist)
		}
		physics.Coast(a.Body)
	}
	// Cruising at 5 from 100 crosses the 75 radius after the fifth move.
	if advancedAt == 0 || advancedAt > 7 {
		t.Errorf("advanced at tick %d, expected within 7 steering passes", advancedAt)
	}
	if a.TargetWaypoint != 1 {
		t.Errorf("actor TargetWaypoint = %d, expected 1", a.TargetWaypoint)
	}
}

func TestTargetWrapsAround(t *testing.T) {
	chain := []core.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}
	p, err := NewPilot(chain, Tier{Speed: 1, TurnRate: 0.1, ArrivalPrecision: 100}, 0.01)
	if err != nil {
		t.Fatalf("NewPilot() failed: %v", err)
	}
	p.SetTarget(1)
	p.Steer(core.V(5, 0), 0)
	if p.Target() != 0 {
		t.Errorf("Target() = %d, expected wrap to 0", p.Target())
	}
}

func TestHeadingConvergesWithoutOvershoot(t *testing.T) {
	chain := []core.Vec2{{X: 0, Y: -1000}}
	tier := Tier{Speed: 2, TurnRate: 0.07, ArrivalPrecision: 10}
	p, err := NewPilot(chain, tier, 0.02)
	if err != nil {
		t.Fatalf("NewPilot() failed: %v", err)
	}

	for _, start := range []float64{0, math.Pi / 2, math.Pi, -2.5, 3.0} {
		heading := start
		pos := core.V(0, 0)
		prev := math.Abs(NormalizeAngle(chain[0].Sub(pos).Angle() - heading))
		for i := 0; i < 200 && prev > 0.02; i++ {
			heading, _ = p.Steer(pos, heading)
			delta := math.Abs(NormalizeAngle(chain[0].Sub(pos).Angle() - heading))
			if delta >= prev {
				t.Fatalf("start %v tick %d: delta %v did not shrink from %v", start, i, delta, prev)
			}
			if delta > math.Pi {
				t.Fatalf("start %v tick %d: delta %v exceeds pi", start, i, delta)
			}
			prev = delta
		}
		if prev > 0.02 {
			t.Errorf("start %v: heading never converged, delta %v", start, prev)
		}
	}
}

func TestDeadbandStopsCorrection(t *testing.T) {
	chain := []core.Vec2{{X: 1000, Y: 0}}
	p, err := NewPilot(chain, Tier{Speed: 3, TurnRate: 0.1, ArrivalPrecision: 10}, 0.05)
	if err != nil {
		t.Fatalf("NewPilot() failed: %v", err)
	}

	heading, speed := p.Steer(core.V(0, 0), 0.03)
	if heading != 0.03 {
		t.Errorf("heading = %v, expected unchanged inside deadband", heading)
	}
	if speed != 3 {
		t.Errorf("speed = %v, expected cruising speed 3", speed)
	}
}
