package level

import "time"

// Spawner releases spawns at a rate that climbs every tick up to a cap.
type Spawner struct {
	Rate    float64 // spawns per second at start
	MaxRate float64
	Ramp    float64 // rate increase per tick

	rate float64
	acc  float64
}

// Reset restores the starting rate.
func (s *Spawner) Reset() {
	s.rate = s.Rate
	s.acc = 0
}

// CurrentRate returns the ramped spawn rate.
func (s *Spawner) CurrentRate() float64 {
	return s.rate
}

// Tick ramps the rate and returns how many spawns are due after dt.
func (s *Spawner) Tick(dt time.Duration) int {
	s.rate = min(s.MaxRate, s.rate+s.Ramp)
	s.acc += s.rate * dt.Seconds()
	n := int(s.acc)
	s.acc -= float64(n)
	return n
}
