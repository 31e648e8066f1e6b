package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/level"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

//go:embed defaults/kart.yaml
var defaultKartYAML []byte

//go:embed defaults/soccer.yaml
var defaultSoccerYAML []byte

//go:embed defaults/goldgrab.yaml
var defaultGoldGrabYAML []byte

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

//go:embed defaults/astro.yaml
var defaultAstroYAML []byte

// DefaultAIConfig returns the standard pilot tiers.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Deadband: 0.05,
		Tiers: map[string]steer.Tier{
			string(steer.Easy):   {Speed: 2.5, TurnRate: 0.04, ArrivalPrecision: 75},
			string(steer.Medium): {Speed: 3.5, TurnRate: 0.06, ArrivalPrecision: 60},
			string(steer.Hard):   {Speed: 4.5, TurnRate: 0.09, ArrivalPrecision: 45},
		},
	}
}

// DefaultKartConfig returns the default Kart Havoc configuration.
func DefaultKartConfig() KartConfig {
	return KartConfig{
		Laps: 3,
		Kart: KartBody{
			Radius:   10,
			Mass:     10,
			Accel:    0.3,
			Reverse:  0.2,
			TurnRate: 0.05,
			Grip:     0.2,
		},
		Motion: physics.Motion{
			Friction: 0.97,
			MaxX:     6,
			MaxY:     6,
		},
		WallDamping:     0.5,
		BumpRestitution: 0.8,
		AI:              DefaultAIConfig(),
	}
}

// DefaultSoccerConfig returns the default Soccer Scramble configuration.
func DefaultSoccerConfig() SoccerConfig {
	return SoccerConfig{
		Gravity:      0.6,
		GroundOffset: 40,
		WinScore:     3,
		GoalPause:    2 * time.Second,
		Player: SoccerPlayer{
			W:     40,
			H:     60,
			Mass:  10,
			Accel: 1.2,
			Jump:  -15,
			Motion: physics.Motion{
				Friction:     0.9,
				MaxX:         7,
				MaxY:         15,
				GravityScale: 1,
			},
		},
		Ball: SoccerBall{
			Radius:       20,
			Mass:         5,
			WallBounce:   0.8,
			GroundBounce: 0.6,
			Kick:         1.2,
			Motion: physics.Motion{
				Friction:     0.99,
				MaxX:         15,
				MaxY:         15,
				GravityScale: 0.5,
			},
		},
		Goal: SoccerGoal{W: 100, H: 250},
	}
}

// DefaultGoldGrabConfig returns the default Goblin Gold Grab configuration.
func DefaultGoldGrabConfig() GoldGrabConfig {
	return GoldGrabConfig{
		Gravity: 0.5,
		Player: RunnerPlayer{
			X:    150,
			W:    48,
			H:    55,
			Jump: -12,
			Motion: physics.Motion{
				Friction:     0.99,
				MaxX:         1,
				MaxY:         15,
				GravityScale: 1,
			},
		},
		Generator: level.GenConfig{
			Lookahead:      200,
			PruneMargin:    50,
			MinGap:         60,
			MaxGap:         140,
			MinBlocks:      2,
			MaxBlocks:      5,
			BlockSize:      70,
			Thickness:      35,
			Step:           60,
			CrossMin:       0.42,
			CrossMax:       0.75,
			PickupChance:   0.7,
			MaxPickups:     3,
			PickupSize:     30,
			PickupLift:     60,
			EnemyChance:    0.6,
			EnemyMinBlocks: 3,
			EnemyW:         40,
			EnemyH:         40,
			BaseSpeed:      3,
			SpeedRamp:      0.001,
			MaxSpeed:       6,
		},
		Start:          StartPlatform{Blocks: 4, X: 50, Lift: 100},
		InitialBatches: 15,
		FallMargin:     150,
		CoinScore:      10,
		StompScore:     25,
		StompBounce:    -8,
	}
}

// DefaultBounceConfig returns the default Build 'n' Bounce configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Gravity: 0.4,
		Player: BouncePlayer{
			Radius: 15,
			Bounce: -10,
			Speed:  2,
			Motion: physics.Motion{
				Friction:     0.995,
				MaxX:         4,
				MaxY:         12,
				GravityScale: 1,
			},
		},
		Slab:      SlabConfig{W: 80, H: 20, Drop: 60},
		Budget:    BudgetConfig{Start: 3, PerBounce: 3, PerCrate: 3, Max: 12},
		Follow:    FollowConfig{Anchor: 0.33, Duration: 0.4},
		Lava:      Ramp{Base: 0.5, PerTick: 0.0002, Max: 2},
		LavaStart: 200,
		Generator: level.GenConfig{
			Lookahead:    300,
			PruneMargin:  40,
			MinGap:       250,
			MaxGap:       400,
			MinBlocks:    1,
			MaxBlocks:    1,
			BlockSize:    80,
			Thickness:    20,
			Step:         200,
			CrossMin:     0.05,
			CrossMax:     0.95,
			PickupChance: 0.6,
			MaxPickups:   1,
			PickupSize:   24,
			PickupLift:   50,
		},
		ScoreDiv: 10,
	}
}

// DefaultAstroConfig returns the default Astro Clash configuration.
func DefaultAstroConfig() AstroConfig {
	return AstroConfig{
		Lives:        3,
		LifePause:    1500 * time.Millisecond,
		FireCooldown: 250 * time.Millisecond,
		Ship:         ShipConfig{W: 30, H: 30, Speed: 5},
		Bullet:       BulletConfig{Radius: 3, Speed: 5},
		Asteroid: AsteroidSet{
			Large:       30,
			Small:       15,
			LargeChance: 0.4,
			LargeScore:  10,
			SmallScore:  20,
			Drift:       1,
			Speed:       Ramp{Base: 1.5, PerTick: 0.0005, Max: 4},
			Rate:        0.8,
			MaxRate:     3,
			RateUp:      0.0003,
		},
	}
}
