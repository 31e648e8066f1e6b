package config

// Ramp is a value that climbs linearly with elapsed ticks up to a cap.
type Ramp struct {
	Base    float64 `yaml:"base"`
	PerTick float64 `yaml:"per_tick"`
	Max     float64 `yaml:"max"`
}

// At returns the ramped value after ticks.
func (r Ramp) At(ticks int) float64 {
	return clampF(r.Base+float64(ticks)*r.PerTick, r.Base, r.Max)
}

// Level returns ramp progress in [0, 1] after ticks.
func (r Ramp) Level(ticks int) float64 {
	span := r.Max - r.Base
	if span <= 0 {
		return 1
	}
	return (r.At(ticks) - r.Base) / span
}

// Validate rejects a ramp that would fall or start above its cap.
func (r Ramp) Validate() error {
	if r.PerTick < 0 || r.Max < r.Base {
		return invalid("ramp %v +%v/tick up to %v", r.Base, r.PerTick, r.Max)
	}
	return nil
}

// clampF restricts a float64 to [min, max].
func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
