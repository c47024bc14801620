package anim

import (
	"math"
	"time"
)

// CounterStep is the per-frame interval a Counter assumes.
const CounterStep = 16 * time.Millisecond

// Counter ramps a displayed integer from 0 to Target over Duration in
// fixed CounterStep increments.
type Counter struct {
	Target   int
	Duration time.Duration

	current float64
	done    bool
}

func NewCounter(target int, duration time.Duration) *Counter {
	return &Counter{Target: target, Duration: duration}
}

// Step advances one frame and returns the value to display.
func (c *Counter) Step() (value int, done bool) {
	if c.done {
		return c.Target, true
	}
	steps := float64(c.Duration) / float64(CounterStep)
	if steps < 1 {
		steps = 1
	}
	c.current += float64(c.Target) / steps
	if c.current < float64(c.Target) {
		return int(math.Floor(c.current)), false
	}
	c.done = true
	return c.Target, true
}

// Retarget restarts the ramp from zero toward a new target.
func (c *Counter) Retarget(target int) {
	if target == c.Target {
		return
	}
	c.Target = target
	c.current = 0
	c.done = false
}

func (c *Counter) Done() bool { return c.done }
