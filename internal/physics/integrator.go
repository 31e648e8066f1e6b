package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

var (
	// ErrFriction is returned for friction factors outside (0, 1).
	ErrFriction = errors.New("physics: friction must be in (0, 1)")
	// ErrMaxSpeed is returned for non-positive speed limits.
	ErrMaxSpeed = errors.New("physics: max speed must be positive")
)

// Motion holds per-kind integration parameters.
type Motion struct {
	Friction     float64 `yaml:"friction"`      // velocity multiplier per tick, in (0, 1)
	MaxX         float64 `yaml:"max_x"`         // clamp for |velocity.x|
	MaxY         float64 `yaml:"max_y"`         // clamp for |velocity.y|
	GravityScale float64 `yaml:"gravity_scale"` // 0 exempts the kind from gravity
}

// Validate rejects parameters that would freeze or run away.
func (m Motion) Validate() error {
	if math.IsNaN(m.Friction) || m.Friction <= 0 || m.Friction >= 1 {
		return fmt.Errorf("%w: got %v", ErrFriction, m.Friction)
	}
	if m.MaxX <= 0 || m.MaxY <= 0 {
		return fmt.Errorf("%w: got (%v, %v)", ErrMaxSpeed, m.MaxX, m.MaxY)
	}
	return nil
}

// Integrator advances bodies one tick at a time.
type Integrator struct {
	gravity float64
	motions map[Kind]Motion
}

// NewIntegrator validates every motion and returns an integrator.
func NewIntegrator(gravity float64, motions map[Kind]Motion) (*Integrator, error) {
	m := make(map[Kind]Motion, len(motions))
	for k, mo := range motions {
		if err := mo.Validate(); err != nil {
			return nil, fmt.Errorf("physics: kind %s: %w", k, err)
		}
		m[k] = mo
	}
	return &Integrator{gravity: gravity, motions: m}, nil
}

// Gravity returns the configured gravity constant.
func (in *Integrator) Gravity() float64 {
	return in.gravity
}

// Motion returns the parameters for a kind.
func (in *Integrator) Motion(k Kind) (Motion, bool) {
	m, ok := in.motions[k]
	return m, ok
}

// Step integrates one body. The order is fixed: acceleration and gravity,
// then friction, then position, then the speed clamp. Kinds without motion
// parameters are static and only have Prev updated.
func (in *Integrator) Step(b *Body, accel core.Vec2) {
	in.step(b, accel, false)
}

// StepDriven is Step for a body under player control: friction only acts on
// axes with no acceleration, so a held direction does not bleed speed.
func (in *Integrator) StepDriven(b *Body, accel core.Vec2) {
	in.step(b, accel, true)
}

func (in *Integrator) step(b *Body, accel core.Vec2, driven bool) {
	b.Prev = b.Pos
	m, ok := in.motions[b.Kind]
	if !ok {
		return
	}

	b.Vel = b.Vel.Add(accel)
	b.Vel.Y += in.gravity * m.GravityScale

	fx, fy := m.Friction, m.Friction
	if driven && accel.X != 0 {
		fx = 1
	}
	if driven && accel.Y != 0 {
		fy = 1
	}
	b.Vel.X *= fx
	b.Vel.Y *= fy

	b.Pos = b.Pos.Add(b.Vel)

	b.Vel.X = core.ClampF(b.Vel.X, -m.MaxX, m.MaxX)
	b.Vel.Y = core.ClampF(b.Vel.Y, -m.MaxY, m.MaxY)
}

// StepAll integrates every live body with zero external acceleration.
func (in *Integrator) StepAll(bodies []*Body) {
	for _, b := range bodies {
		if !b.Dead {
			in.Step(b, core.Vec2{})
		}
	}
}

// Coast moves a body by its velocity with no forces applied. Actors that
// hold a fixed cruising speed use it instead of Step.
func Coast(b *Body) {
	b.Prev = b.Pos
	b.Pos = b.Pos.Add(b.Vel)
}
