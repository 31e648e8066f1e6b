package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

func TestMotionValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Motion
		wantErr error
	}{
		{"valid", Motion{Friction: 0.9, MaxX: 5, MaxY: 5}, nil},
		{"zero friction", Motion{Friction: 0, MaxX: 5, MaxY: 5}, ErrFriction},
		{"friction one", Motion{Friction: 1, MaxX: 5, MaxY: 5}, ErrFriction},
		{"friction above one", Motion{Friction: 1.2, MaxX: 5, MaxY: 5}, ErrFriction},
		{"negative friction", Motion{Friction: -0.1, MaxX: 5, MaxY: 5}, ErrFriction},
		{"nan friction", Motion{Friction: math.NaN(), MaxX: 5, MaxY: 5}, ErrFriction},
		{"zero max", Motion{Friction: 0.9, MaxX: 0, MaxY: 5}, ErrMaxSpeed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if tc.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewIntegratorRejectsBadMotion(t *testing.T) {
	_, err := NewIntegrator(0.5, map[Kind]Motion{
		KindPlayer: {Friction: 0.9, MaxX: 5, MaxY: 5},
		KindBall:   {Friction: 1.0, MaxX: 5, MaxY: 5},
	})
	if !errors.Is(err, ErrFriction) {
		t.Fatalf("NewIntegrator() = %v, expected ErrFriction", err)
	}
}

func TestFrictionDecay(t *testing.T) {
	in, err := NewIntegrator(1, map[Kind]Motion{
		KindBall: {Friction: 0.9, MaxX: 100, MaxY: 100, GravityScale: 0},
	})
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}

	b := &Body{Kind: KindBall, Shape: Circle{Radius: 5}, Vel: core.V(10, 0)}
	ticks := 0
	for b.Vel.Len() >= 0.1 {
		in.Step(b, core.Vec2{})
		ticks++
		if ticks > 1000 {
			t.Fatal("velocity never decayed")
		}
	}
	if ticks != 44 {
		t.Errorf("ticks to decay = %d, expected 44", ticks)
	}
	if b.Vel.Y != 0 {
		t.Errorf("gravity-exempt body gained vertical velocity %v", b.Vel.Y)
	}
}

func TestStepOrder(t *testing.T) {
	in, err := NewIntegrator(0, map[Kind]Motion{
		KindPlayer: {Friction: 0.5, MaxX: 100, MaxY: 100},
	})
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}

	b := &Body{Kind: KindPlayer, Shape: Rect{W: 2, H: 2}}
	in.Step(b, core.V(10, 0))

	// Friction applies in the same tick as the impulse, before position.
	if b.Vel.X != 5 {
		t.Errorf("Vel.X = %v, expected 5", b.Vel.X)
	}
	if b.Pos.X != 5 {
		t.Errorf("Pos.X = %v, expected 5", b.Pos.X)
	}
	if b.Prev.X != 0 {
		t.Errorf("Prev.X = %v, expected 0", b.Prev.X)
	}
}

func TestStepDrivenSkipsHeldAxis(t *testing.T) {
	in, err := NewIntegrator(0, map[Kind]Motion{
		KindPlayer: {Friction: 0.9, MaxX: 7, MaxY: 15},
	})
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}

	b := &Body{Kind: KindPlayer, Shape: Rect{W: 1, H: 1}, Vel: core.V(0, 2)}
	in.StepDriven(b, core.V(1.2, 0))
	if b.Vel.X != 1.2 {
		t.Errorf("held Vel.X = %v, expected 1.2", b.Vel.X)
	}
	if b.Vel.Y != 2*0.9 {
		t.Errorf("idle Vel.Y = %v, expected %v", b.Vel.Y, 2*0.9)
	}

	in.StepDriven(b, core.Vec2{})
	held, friction := 1.2, 0.9
	if expected := held * friction; b.Vel.X != expected {
		t.Errorf("released Vel.X = %v, expected %v", b.Vel.X, expected)
	}
}

func TestGravityScale(t *testing.T) {
	in, err := NewIntegrator(0.6, map[Kind]Motion{
		KindPlayer: {Friction: 0.99, MaxX: 10, MaxY: 20, GravityScale: 1},
		KindBall:   {Friction: 0.99, MaxX: 10, MaxY: 20, GravityScale: 0.5},
	})
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}

	p := &Body{Kind: KindPlayer, Shape: Rect{W: 1, H: 1}}
	ball := &Body{Kind: KindBall, Shape: Circle{Radius: 1}}
	in.Step(p, core.Vec2{})
	in.Step(ball, core.Vec2{})

	if math.Abs(ball.Vel.Y*2-p.Vel.Y) > 1e-12 {
		t.Errorf("ball Vel.Y = %v, player Vel.Y = %v, expected half", ball.Vel.Y, p.Vel.Y)
	}
}

func TestClampInvariant(t *testing.T) {
	motion := Motion{Friction: 0.97, MaxX: 6, MaxY: 3}
	in, err := NewIntegrator(0.4, map[Kind]Motion{KindKart: motion})
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	b := &Body{Kind: KindKart, Shape: Circle{Radius: 10}}
	for i := 0; i < 5000; i++ {
		accel := core.V(rng.Float64()*40-20, rng.Float64()*40-20)
		in.Step(b, accel)
		if math.Abs(b.Vel.X) > motion.MaxX || math.Abs(b.Vel.Y) > motion.MaxY {
			t.Fatalf("tick %d: velocity %v exceeds (%v, %v)", i, b.Vel, motion.MaxX, motion.MaxY)
		}
	}
}

func TestStaticKindDoesNotMove(t *testing.T) {
	in, err := NewIntegrator(1, nil)
	if err != nil {
		t.Fatalf("NewIntegrator() failed: %v", err)
	}
	b := &Body{Kind: KindPlatform, Shape: Rect{W: 70, H: 20}, Pos: core.V(10, 10)}
	in.Step(b, core.V(5, 5))
	if b.Pos != core.V(10, 10) || b.Vel != (core.Vec2{}) {
		t.Errorf("static body moved to %v with %v", b.Pos, b.Vel)
	}
}
