// Package steer drives computer-controlled actors around a closed waypoint
// chain with a fixed, reproducible pursuit rule.
package steer

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/physics"
)

var (
	// ErrEmptyChain is returned when a pilot gets no waypoints.
	ErrEmptyChain = errors.New("steer: waypoint chain is empty")
	// ErrTier is returned for tiers with non-positive parameters.
	ErrTier = errors.New("steer: invalid tier")
)

// Level names a difficulty tier.
type Level string

const (
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// Levels lists the tiers in menu order.
var Levels = []Level{Easy, Medium, Hard}

// ParseLevel accepts a tier name, returning Medium for unknown input.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return Medium, false
}

// Tier is the fixed parameter triple of a difficulty level.
type Tier struct {
	Speed            float64 `yaml:"speed"`
	TurnRate         float64 `yaml:"turn_rate"`         // radians per tick
	ArrivalPrecision float64 `yaml:"arrival_precision"` // world units
}

// Validate rejects tiers that could never reach a waypoint.
func (t Tier) Validate() error {
	if t.Speed <= 0 || t.TurnRate <= 0 || t.ArrivalPrecision <= 0 {
		return fmt.Errorf("%w: %+v", ErrTier, t)
	}
	return nil
}

// NormalizeAngle wraps a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Pilot pursues a closed waypoint chain.
type Pilot struct {
	waypoints []core.Vec2
	target    int
	tier      Tier
	deadband  float64
}

// NewPilot validates its inputs. The chain is copied.
func NewPilot(waypoints []core.Vec2, tier Tier, deadband float64) (*Pilot, error) {
	if len(waypoints) == 0 {
		return nil, ErrEmptyChain
	}
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	wp := make([]core.Vec2, len(waypoints))
	copy(wp, waypoints)
	return &Pilot{waypoints: wp, tier: tier, deadband: deadband}, nil
}

// Target returns the index of the waypoint being pursued.
func (p *Pilot) Target() int {
	return p.target
}

// SetTarget jumps to waypoint i, modulo the chain length.
func (p *Pilot) SetTarget(i int) {
	n := len(p.waypoints)
	p.target = ((i % n) + n) % n
}

// Tier returns the active tier.
func (p *Pilot) Tier() Tier {
	return p.tier
}

// Steer returns the heading and forward speed for one tick.
func (p *Pilot) Steer(pos core.Vec2, heading float64) (float64, float64) {
	to := p.waypoints[p.target].Sub(pos)
	if to.Len() < p.tier.ArrivalPrecision {
		p.target = (p.target + 1) % len(p.waypoints)
		to = p.waypoints[p.target].Sub(pos)
	}

	diff := NormalizeAngle(to.Angle() - heading)
	if math.Abs(diff) > p.deadband {
		step := min(p.tier.TurnRate, math.Abs(diff))
		heading = NormalizeAngle(heading + math.Copysign(step, diff))
	}
	return heading, p.tier.Speed
}

// Drive applies one steering tick to an actor: heading, cruising speed,
// velocity and target index. Moving the body is left to the caller.
func (p *Pilot) Drive(a *physics.Actor) {
	heading, speed := p.Steer(a.Pos, a.Angle)
	a.Angle = heading
	a.Speed = speed
	a.Vel = core.FromAngle(heading).Scale(speed)
	a.TargetWaypoint = p.target
}
