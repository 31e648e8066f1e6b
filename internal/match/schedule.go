package match

import "time"

type event struct {
	at time.Duration
	fn func()
}

// Schedule is a queue of callbacks keyed to simulated time. It has no
// goroutines or wall-clock timers: events fire only from Advance.
type Schedule struct {
	now    time.Duration
	events []event
	gen    uint64

	// base is the due time of the running event, so chained events do
	// not drift by the tick granularity.
	base   time.Duration
	firing bool
}

// After queues fn to run once d of simulated time has passed.
func (s *Schedule) After(d time.Duration, fn func()) {
	start := s.now
	if s.firing {
		start = s.base
	}
	s.events = append(s.events, event{at: start + d, fn: fn})
}

// Advance moves simulated time forward and runs due events in the order
// they were queued. An event that cancels the schedule stops the batch.
func (s *Schedule) Advance(dt time.Duration) {
	s.now += dt
	gen := s.gen
	for len(s.events) > 0 {
		i := s.due()
		if i < 0 {
			return
		}
		ev := s.events[i]
		s.events = append(s.events[:i], s.events[i+1:]...)
		s.base, s.firing = ev.at, true
		ev.fn()
		s.firing = false
		if s.gen != gen {
			return
		}
	}
}

func (s *Schedule) due() int {
	for i, ev := range s.events {
		if ev.at <= s.now {
			return i
		}
	}
	return -1
}

// Cancel drops every pending event.
func (s *Schedule) Cancel() {
	s.events = s.events[:0]
	s.gen++
}

// Pending returns the number of queued events.
func (s *Schedule) Pending() int {
	return len(s.events)
}
