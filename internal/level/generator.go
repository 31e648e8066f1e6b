package level

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/couch-arcade/internal/core"
	"github.com/vovakirdan/couch-arcade/internal/physics"
)

// ErrGenerator is wrapped by every generator configuration fault.
var ErrGenerator = errors.New("level: invalid generator config")

// GenConfig bounds what the generator may emit. Cross-axis bounds are
// fractions of the canvas so the same config works at any size.
type GenConfig struct {
	Lookahead   float64 `yaml:"lookahead"`
	PruneMargin float64 `yaml:"prune_margin"`
	MinGap      float64 `yaml:"min_gap"`
	MaxGap      float64 `yaml:"max_gap"`
	MinBlocks   int     `yaml:"min_blocks"`
	MaxBlocks   int     `yaml:"max_blocks"`
	BlockSize   float64 `yaml:"block_size"`
	Thickness   float64 `yaml:"thickness"`
	Step        float64 `yaml:"step"`
	CrossMin    float64 `yaml:"cross_min"`
	CrossMax    float64 `yaml:"cross_max"`

	PickupChance float64 `yaml:"pickup_chance"`
	MaxPickups   int     `yaml:"max_pickups"`
	PickupSize   float64 `yaml:"pickup_size"`
	PickupLift   float64 `yaml:"pickup_lift"`

	EnemyChance    float64 `yaml:"enemy_chance"`
	EnemyMinBlocks int     `yaml:"enemy_min_blocks"`
	EnemyW         float64 `yaml:"enemy_w"`
	EnemyH         float64 `yaml:"enemy_h"`

	BaseSpeed float64 `yaml:"base_speed"`
	SpeedRamp float64 `yaml:"speed_ramp"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// Validate rejects bounds the generator cannot honor.
func (c GenConfig) Validate() error {
	switch {
	case c.Lookahead <= 0:
		return fmt.Errorf("%w: lookahead must be positive", ErrGenerator)
	case c.MinGap < 0 || c.MinGap > c.MaxGap:
		return fmt.Errorf("%w: gap bounds [%v, %v]", ErrGenerator, c.MinGap, c.MaxGap)
	case c.MinBlocks < 1 || c.MinBlocks > c.MaxBlocks:
		return fmt.Errorf("%w: block bounds [%d, %d]", ErrGenerator, c.MinBlocks, c.MaxBlocks)
	case c.BlockSize <= 0 || c.Thickness <= 0:
		return fmt.Errorf("%w: block size and thickness must be positive", ErrGenerator)
	case c.CrossMin < 0 || c.CrossMin > c.CrossMax || c.CrossMax > 1:
		return fmt.Errorf("%w: cross bounds [%v, %v]", ErrGenerator, c.CrossMin, c.CrossMax)
	case c.PickupChance < 0 || c.PickupChance > 1 || c.EnemyChance < 0 || c.EnemyChance > 1:
		return fmt.Errorf("%w: chances must be in [0, 1]", ErrGenerator)
	case c.PickupChance > 0 && c.MaxPickups < 1:
		return fmt.Errorf("%w: max_pickups must be at least 1", ErrGenerator)
	case c.BaseSpeed < 0 || c.SpeedRamp < 0 || c.MaxSpeed < c.BaseSpeed:
		return fmt.Errorf("%w: speed ramp %v -> %v", ErrGenerator, c.BaseSpeed, c.MaxSpeed)
	}
	return nil
}

// Generator emits platform runs ahead of a camera. Its frontier only moves
// forward, so nothing is ever placed behind content already generated.
type Generator struct {
	cfg      GenConfig
	dir      Direction
	pickup   physics.Kind
	ids      *physics.IDs
	rng      *rand.Rand
	extent   core.Extent
	frontier float64
	cross    float64
	speed    float64
}

// NewGenerator validates cfg. Pickups are created with the given kind.
func NewGenerator(cfg GenConfig, dir Direction, pickup physics.Kind, ids *physics.IDs) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:    cfg,
		dir:    dir,
		pickup: pickup,
		ids:    ids,
		rng:    rand.New(rand.NewSource(1)),
		speed:  cfg.BaseSpeed,
	}, nil
}

// Reset reseeds the generator and places the frontier. cross is the
// cross-axis coordinate of the previous run (platform top or slab left).
func (g *Generator) Reset(seed int64, extent core.Extent, frontier, cross float64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.extent = extent
	g.frontier = frontier
	g.cross = cross
	g.speed = g.cfg.BaseSpeed
}

// Resize updates the canvas used for cross-axis bounds.
func (g *Generator) Resize(extent core.Extent) {
	g.extent = extent
}

// Frontier returns the travel coordinate of the furthest generated content.
func (g *Generator) Frontier() float64 {
	return g.frontier
}

// Speed returns the ramped scroll speed.
func (g *Generator) Speed() float64 {
	return g.speed
}

// Level returns ramp progress in [0, 1].
func (g *Generator) Level() float64 {
	span := g.cfg.MaxSpeed - g.cfg.BaseSpeed
	if span <= 0 {
		return 1
	}
	return (g.speed - g.cfg.BaseSpeed) / span
}

// Ramp raises the speed scalar by one tick's worth, up to the cap.
func (g *Generator) Ramp() {
	g.speed = min(g.cfg.MaxSpeed, g.speed+g.cfg.SpeedRamp)
}

// Fill emits batches until the frontier is at least Lookahead past the
// camera's leading edge.
func (g *Generator) Fill(cam *Camera) []*physics.Body {
	var out []*physics.Body
	for g.frontier-cam.Leading() < g.cfg.Lookahead {
		out = append(out, g.Emit()...)
	}
	return out
}

// Emit places one run plus its pickups and enemy.
func (g *Generator) Emit() []*physics.Body {
	gap := g.cfg.MinGap + g.rng.Float64()*(g.cfg.MaxGap-g.cfg.MinGap)
	blocks := g.cfg.MinBlocks + g.rng.Intn(g.cfg.MaxBlocks-g.cfg.MinBlocks+1)
	runLen := float64(blocks) * g.cfg.BlockSize
	start := g.frontier + gap

	lo, hi := g.crossBounds(runLen)
	g.cross = core.ClampF(g.cross+(g.rng.Float64()*2-1)*g.cfg.Step, lo, hi)

	out := make([]*physics.Body, 0, blocks+g.cfg.MaxPickups+1)
	for i := 0; i < blocks; i++ {
		out = append(out, g.block(start, i))
	}

	if g.cfg.PickupChance > 0 && g.rng.Float64() < g.cfg.PickupChance {
		n := 1 + g.rng.Intn(g.cfg.MaxPickups)
		for j := 0; j < n; j++ {
			t := (float64(j) + 0.5) / float64(n)
			out = append(out, g.pickupAt(start, runLen, t))
		}
	}

	if blocks >= g.cfg.EnemyMinBlocks && g.cfg.EnemyChance > 0 && g.rng.Float64() < g.cfg.EnemyChance*g.Level() {
		out = append(out, g.enemyAt(start, runLen))
	}

	if g.dir == ScrollUp {
		g.frontier = start + g.cfg.Thickness
	} else {
		g.frontier = start + runLen
	}
	return out
}

// crossBounds returns the allowed cross-axis range for a run of runLen.
func (g *Generator) crossBounds(runLen float64) (float64, float64) {
	if g.dir == ScrollUp {
		lo := g.cfg.CrossMin * g.extent.W
		hi := g.cfg.CrossMax*g.extent.W - runLen
		if hi < lo {
			hi = lo
		}
		return lo, hi
	}
	lo := g.cfg.CrossMin * g.extent.H
	hi := g.cfg.CrossMax * g.extent.H
	return lo, hi
}

func (g *Generator) block(start float64, i int) *physics.Body {
	b := &physics.Body{
		ID:    g.ids.Next(),
		Kind:  physics.KindPlatform,
		Shape: physics.Rect{W: g.cfg.BlockSize, H: g.cfg.Thickness},
	}
	offset := float64(i)*g.cfg.BlockSize + g.cfg.BlockSize/2
	if g.dir == ScrollUp {
		b.Pos = core.V(g.cross+offset, -start-g.cfg.Thickness/2)
	} else {
		b.Pos = core.V(start+offset, g.cross+g.cfg.Thickness/2)
	}
	b.Prev = b.Pos
	return b
}

func (g *Generator) surface(start, along float64) core.Vec2 {
	if g.dir == ScrollUp {
		return core.V(g.cross+along, -start-g.cfg.Thickness)
	}
	return core.V(start+along, g.cross)
}

func (g *Generator) pickupAt(start, runLen, t float64) *physics.Body {
	p := g.surface(start, runLen*t)
	p.Y -= g.cfg.PickupLift
	return &physics.Body{
		ID:    g.ids.Next(),
		Kind:  g.pickup,
		Shape: physics.Circle{Radius: g.cfg.PickupSize / 2},
		Pos:   p,
		Prev:  p,
	}
}

func (g *Generator) enemyAt(start, runLen float64) *physics.Body {
	p := g.surface(start, runLen*0.6)
	p.Y -= g.cfg.EnemyH / 2
	return &physics.Body{
		ID:    g.ids.Next(),
		Kind:  physics.KindEnemy,
		Shape: physics.Rect{W: g.cfg.EnemyW, H: g.cfg.EnemyH},
		Pos:   p,
		Prev:  p,
	}
}

// Prune drops bodies that are more than margin behind the camera's
// trailing edge and returns the shortened slice.
func Prune(bodies []*physics.Body, cam *Camera, margin float64) []*physics.Body {
	limit := cam.Trailing() - margin
	for _, b := range bodies {
		var front float64
		if cam.Dir == ScrollUp {
			front = -b.Top()
		} else {
			front = b.Right()
		}
		if front < limit {
			b.Kill()
		}
	}
	return physics.Sweep(bodies)
}
