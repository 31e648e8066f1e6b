// Package config provides YAML-based title configuration, the shared AI
// tier table and validation for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/couch-arcade/internal/level"
	"github.com/vovakirdan/couch-arcade/internal/physics"
	"github.com/vovakirdan/couch-arcade/internal/steer"
)

// ErrInvalid is wrapped by every validation failure in this package.
var ErrInvalid = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// AIConfig defines the difficulty tiers of the waypoint pilot.
type AIConfig struct {
	Deadband float64               `yaml:"deadband"` // radians
	Tiers    map[string]steer.Tier `yaml:"tiers"`
}

// Tier returns the parameters of a level.
func (a AIConfig) Tier(l steer.Level) (steer.Tier, error) {
	t, ok := a.Tiers[string(l)]
	if !ok {
		return steer.Tier{}, invalid("ai tier %q missing", l)
	}
	return t, nil
}

// Validate requires every level and a sane deadband.
func (a AIConfig) Validate() error {
	if a.Deadband < 0 {
		return invalid("ai deadband %v", a.Deadband)
	}
	for _, l := range steer.Levels {
		t, err := a.Tier(l)
		if err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("config: ai tier %s: %w", l, err)
		}
	}
	return nil
}

// KartConfig contains all configuration for Kart Havoc.
type KartConfig struct {
	Laps   int            `yaml:"laps"`
	Kart   KartBody       `yaml:"kart"`
	Motion physics.Motion `yaml:"motion"`
	// WallDamping scales the inverted velocity after a wall hit.
	WallDamping float64 `yaml:"wall_damping"`
	// BumpRestitution applies to kart-kart contacts.
	BumpRestitution float64  `yaml:"bump_restitution"`
	AI              AIConfig `yaml:"ai"`
}

// KartBody defines kart handling.
type KartBody struct {
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Accel    float64 `yaml:"accel"`
	Reverse  float64 `yaml:"reverse"`
	TurnRate float64 `yaml:"turn_rate"` // radians per tick at full speed
	Grip     float64 `yaml:"grip"`      // [0, 1], how fast sideways slide aligns with heading
}

// Validate checks the kart configuration.
func (c KartConfig) Validate() error {
	if err := c.Motion.Validate(); err != nil {
		return fmt.Errorf("config: kart motion: %w", err)
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	switch {
	case c.Laps < 1:
		return invalid("kart laps %d", c.Laps)
	case c.Kart.Radius <= 0 || c.Kart.Mass <= 0:
		return invalid("kart radius %v mass %v", c.Kart.Radius, c.Kart.Mass)
	case c.Kart.Grip < 0 || c.Kart.Grip > 1:
		return invalid("kart grip %v", c.Kart.Grip)
	case c.WallDamping <= 0 || c.WallDamping > 1:
		return invalid("kart wall damping %v", c.WallDamping)
	case c.BumpRestitution < 0:
		return invalid("kart bump restitution %v", c.BumpRestitution)
	}
	return nil
}

// SoccerConfig contains all configuration for Soccer Scramble.
type SoccerConfig struct {
	Gravity      float64       `yaml:"gravity"`
	GroundOffset float64       `yaml:"ground_offset"`
	WinScore     int           `yaml:"win_score"`
	GoalPause    time.Duration `yaml:"goal_pause"`
	Player       SoccerPlayer  `yaml:"player"`
	Ball         SoccerBall    `yaml:"ball"`
	Goal         SoccerGoal    `yaml:"goal"`
}

// SoccerPlayer defines player bodies.
type SoccerPlayer struct {
	W      float64        `yaml:"w"`
	H      float64        `yaml:"h"`
	Mass   float64        `yaml:"mass"`
	Accel  float64        `yaml:"accel"`
	Jump   float64        `yaml:"jump"`
	Motion physics.Motion `yaml:"motion"`
}

// SoccerBall defines the ball.
type SoccerBall struct {
	Radius       float64        `yaml:"radius"`
	Mass         float64        `yaml:"mass"`
	WallBounce   float64        `yaml:"wall_bounce"`
	GroundBounce float64        `yaml:"ground_bounce"`
	Kick         float64        `yaml:"kick"` // restitution of player-ball contacts, >1 kicks
	Motion       physics.Motion `yaml:"motion"`
}

// SoccerGoal defines the goal mouths at each side.
type SoccerGoal struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Validate checks the soccer configuration.
func (c SoccerConfig) Validate() error {
	if err := c.Player.Motion.Validate(); err != nil {
		return fmt.Errorf("config: soccer player motion: %w", err)
	}
	if err := c.Ball.Motion.Validate(); err != nil {
		return fmt.Errorf("config: soccer ball motion: %w", err)
	}
	switch {
	case c.WinScore < 1:
		return invalid("soccer win score %d", c.WinScore)
	case c.GoalPause <= 0:
		return invalid("soccer goal pause %v", c.GoalPause)
	case c.Player.W <= 0 || c.Player.H <= 0 || c.Player.Mass <= 0:
		return invalid("soccer player size %vx%v mass %v", c.Player.W, c.Player.H, c.Player.Mass)
	case c.Ball.Radius <= 0 || c.Ball.Mass <= 0:
		return invalid("soccer ball radius %v mass %v", c.Ball.Radius, c.Ball.Mass)
	case c.Goal.W <= 0 || c.Goal.H <= 0:
		return invalid("soccer goal %vx%v", c.Goal.W, c.Goal.H)
	case c.Ball.Kick < 0:
		return invalid("soccer kick restitution %v", c.Ball.Kick)
	}
	return nil
}

// GoldGrabConfig contains all configuration for Goblin Gold Grab.
type GoldGrabConfig struct {
	Gravity   float64         `yaml:"gravity"`
	Player    RunnerPlayer    `yaml:"player"`
	Generator level.GenConfig `yaml:"generator"`
	Start     StartPlatform   `yaml:"start"`
	// Batches emitted ahead of the first frame.
	InitialBatches int     `yaml:"initial_batches"`
	FallMargin     float64 `yaml:"fall_margin"`
	CoinScore      int     `yaml:"coin_score"`
	StompScore     int     `yaml:"stomp_score"`
	StompBounce    float64 `yaml:"stomp_bounce"`
}

// RunnerPlayer defines the runner body.
type RunnerPlayer struct {
	X      float64        `yaml:"x"` // canvas x the runner is pinned to
	W      float64        `yaml:"w"`
	H      float64        `yaml:"h"`
	Jump   float64        `yaml:"jump"`
	Motion physics.Motion `yaml:"motion"`
}

// StartPlatform defines the first run of blocks under the spawn point.
type StartPlatform struct {
	Blocks int     `yaml:"blocks"`
	X      float64 `yaml:"x"`
	Lift   float64 `yaml:"lift"` // distance of the surface above the canvas bottom
}

// Validate checks the runner configuration.
func (c GoldGrabConfig) Validate() error {
	if err := c.Player.Motion.Validate(); err != nil {
		return fmt.Errorf("config: goldgrab player motion: %w", err)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("config: goldgrab: %w", err)
	}
	switch {
	case c.Gravity <= 0:
		return invalid("goldgrab gravity %v", c.Gravity)
	case c.Player.W <= 0 || c.Player.H <= 0:
		return invalid("goldgrab player %vx%v", c.Player.W, c.Player.H)
	case c.Start.Blocks < 1:
		return invalid("goldgrab start blocks %d", c.Start.Blocks)
	case c.InitialBatches < 0:
		return invalid("goldgrab initial batches %d", c.InitialBatches)
	}
	return nil
}

// BounceConfig contains all configuration for Build 'n' Bounce.
type BounceConfig struct {
	Gravity   float64         `yaml:"gravity"`
	Player    BouncePlayer    `yaml:"player"`
	Slab      SlabConfig      `yaml:"slab"`
	Budget    BudgetConfig    `yaml:"budget"`
	Follow    FollowConfig    `yaml:"follow"`
	Lava      Ramp            `yaml:"lava"`
	LavaStart float64         `yaml:"lava_start"` // below the canvas bottom
	Generator level.GenConfig `yaml:"generator"`
	ScoreDiv  float64         `yaml:"score_div"`
}

// BouncePlayer defines the climber.
type BouncePlayer struct {
	Radius float64        `yaml:"radius"`
	Bounce float64        `yaml:"bounce"` // vertical velocity after landing
	Speed  float64        `yaml:"speed"`  // horizontal drift
	Motion physics.Motion `yaml:"motion"`
}

// SlabConfig sizes placed slabs.
type SlabConfig struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
	// Drop is how far under the player a fired slab is placed.
	Drop float64 `yaml:"drop"`
}

// BudgetConfig controls how many slabs can be placed.
type BudgetConfig struct {
	Start     int `yaml:"start"`
	PerBounce int `yaml:"per_bounce"`
	PerCrate  int `yaml:"per_crate"`
	Max       int `yaml:"max"`
}

// FollowConfig tunes the eased camera.
type FollowConfig struct {
	Anchor   float64 `yaml:"anchor"`   // fraction of the canvas height the player is kept at
	Duration float32 `yaml:"duration"` // seconds per chase
}

// Validate checks the climber configuration.
func (c BounceConfig) Validate() error {
	if err := c.Player.Motion.Validate(); err != nil {
		return fmt.Errorf("config: bounce player motion: %w", err)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("config: bounce: %w", err)
	}
	if err := c.Lava.Validate(); err != nil {
		return fmt.Errorf("config: bounce lava: %w", err)
	}
	switch {
	case c.Player.Radius <= 0:
		return invalid("bounce player radius %v", c.Player.Radius)
	case c.Slab.W <= 0 || c.Slab.H <= 0:
		return invalid("bounce slab %vx%v", c.Slab.W, c.Slab.H)
	case c.Budget.Start < 0 || c.Budget.Max < c.Budget.Start:
		return invalid("bounce budget %d..%d", c.Budget.Start, c.Budget.Max)
	case c.Follow.Anchor <= 0 || c.Follow.Anchor >= 1 || c.Follow.Duration <= 0:
		return invalid("bounce follow %+v", c.Follow)
	case c.ScoreDiv <= 0:
		return invalid("bounce score divisor %v", c.ScoreDiv)
	}
	return nil
}

// AstroConfig contains all configuration for Astro Clash.
type AstroConfig struct {
	Lives        int           `yaml:"lives"`
	LifePause    time.Duration `yaml:"life_pause"`
	FireCooldown time.Duration `yaml:"fire_cooldown"`
	Ship         ShipConfig    `yaml:"ship"`
	Bullet       BulletConfig  `yaml:"bullet"`
	Asteroid     AsteroidSet   `yaml:"asteroid"`
}

// ShipConfig defines player ships.
type ShipConfig struct {
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Speed float64 `yaml:"speed"`
}

// BulletConfig defines projectiles.
type BulletConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

// AsteroidSet defines asteroid sizes, speeds and spawning.
type AsteroidSet struct {
	Large       float64 `yaml:"large"`
	Small       float64 `yaml:"small"`
	LargeChance float64 `yaml:"large_chance"`
	LargeScore  int     `yaml:"large_score"`
	SmallScore  int     `yaml:"small_score"`
	Drift       float64 `yaml:"drift"` // max horizontal speed
	// Speed is the fall speed, ramping with elapsed ticks.
	Speed Ramp `yaml:"speed"`
	// Rate is spawns per second, ramping to MaxRate.
	Rate    float64 `yaml:"rate"`
	MaxRate float64 `yaml:"max_rate"`
	RateUp  float64 `yaml:"rate_up"`
}

// Validate checks the shooter configuration.
func (c AstroConfig) Validate() error {
	if err := c.Asteroid.Speed.Validate(); err != nil {
		return fmt.Errorf("config: astro asteroid speed: %w", err)
	}
	switch {
	case c.Lives < 1:
		return invalid("astro lives %d", c.Lives)
	case c.LifePause <= 0 || c.FireCooldown < 0:
		return invalid("astro pause %v cooldown %v", c.LifePause, c.FireCooldown)
	case c.Ship.W <= 0 || c.Ship.H <= 0 || c.Ship.Speed <= 0:
		return invalid("astro ship %+v", c.Ship)
	case c.Bullet.Radius <= 0 || c.Bullet.Speed <= 0:
		return invalid("astro bullet %+v", c.Bullet)
	case c.Asteroid.Small <= 0 || c.Asteroid.Large < c.Asteroid.Small:
		return invalid("astro asteroid sizes %v/%v", c.Asteroid.Small, c.Asteroid.Large)
	case c.Asteroid.LargeChance < 0 || c.Asteroid.LargeChance > 1:
		return invalid("astro large chance %v", c.Asteroid.LargeChance)
	case c.Asteroid.Rate <= 0 || c.Asteroid.MaxRate < c.Asteroid.Rate || c.Asteroid.RateUp < 0:
		return invalid("astro spawn rate %v..%v", c.Asteroid.Rate, c.Asteroid.MaxRate)
	}
	return nil
}
