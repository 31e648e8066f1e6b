// Package clock drives a simulation at a fixed cadence. Each tick computes
// the elapsed time, runs update and then render, and recovers from panics
// in either so one bad frame never stops the loop.
package clock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// MaxDelta caps the elapsed time reported for one tick, so a suspended
// host does not replay seconds of simulation in a single step.
const MaxDelta = 250 * time.Millisecond

// Clock calls Update then Render once per tick.
type Clock struct {
	update func(dt time.Duration)
	render func()
	logger *log.Logger

	last     time.Time
	ticks    uint64
	recovers uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a clock. render may be nil for headless runs.
func New(update func(dt time.Duration), render func(), logger *log.Logger) *Clock {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Clock{update: update, render: render, logger: logger}
}

// Delta returns the time since the previous tick, zero on the first one.
func (c *Clock) Delta(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	return min(dt, MaxDelta)
}

// Update computes the delta and runs the update callback.
func (c *Clock) Update(now time.Time) time.Duration {
	dt := c.Delta(now)
	c.ticks++
	if c.update != nil {
		c.guard("update", func() { c.update(dt) })
	}
	return dt
}

// Render runs the render callback.
func (c *Clock) Render() {
	if c.render != nil {
		c.guard("render", c.render)
	}
}

// Tick is one full frame: Update then Render.
func (c *Clock) Tick(now time.Time) {
	c.Update(now)
	c.Render()
}

func (c *Clock) guard(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.recovers++
			c.logger.Error("tick panicked", "stage", stage, "tick", c.ticks, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Ticks returns the number of ticks run.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Recovered returns the number of panics caught inside ticks.
func (c *Clock) Recovered() uint64 {
	return c.recovers
}

// Run ticks every interval until ctx is done or Stop is called. The next
// tick is always scheduled, whatever happened in the previous one.
func (c *Clock) Run(ctx context.Context, interval time.Duration) error {
	ctx, err := c.prepare(ctx, interval)
	if err != nil {
		return err
	}
	c.loop(ctx, interval)
	return nil
}

// Start runs the clock on its own goroutine. Stop waits for it.
func (c *Clock) Start(ctx context.Context, interval time.Duration) error {
	ctx, err := c.prepare(ctx, interval)
	if err != nil {
		return err
	}
	go c.loop(ctx, interval)
	return nil
}

func (c *Clock) prepare(ctx context.Context, interval time.Duration) (context.Context, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("clock: interval must be positive, got %v", interval)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return nil, errors.New("clock: already running")
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	return ctx, nil
}

func (c *Clock) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer func() {
		ticker.Stop()
		c.mu.Lock()
		c.cancel()
		close(c.done)
		c.cancel, c.done = nil, nil
		c.mu.Unlock()
	}()

	for {
		select {
		case now := <-ticker.C:
			c.Tick(now)
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels a running loop and waits for it to exit. It is safe to
// call more than once and on a clock that never ran.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
