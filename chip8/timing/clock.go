package timing

import "time"

// Clock turns elapsed host time into an ordered stream of instruction steps
// and timer ticks. Both streams are derived from the same timeline so the
// instruction rate and the timer rate stay independent of each other and of
// how often Advance is called.
//
// The k-th step (k >= 1) is due at k/stepHz seconds and the k-th tick at
// k/tickHz seconds. When a step and a tick are due at the same instant the
// step runs first.
type Clock struct {
	stepHz int64
	tickHz int64

	now   time.Duration // position on the timeline, relative to the last rebase
	steps int64         // steps fired since the last rebase
	ticks int64         // ticks fired since the last rebase
}

// NewClock creates a clock that steps at stepHz and ticks at tickHz.
// A rate of zero or less disables that stream.
func NewClock(stepHz, tickHz int) *Clock {
	return &Clock{
		stepHz: int64(max(stepHz, 0)),
		tickHz: int64(max(tickHz, 0)),
	}
}

// Advance moves the clock forward by elapsed, invoking onStep and onTick for
// every event that falls inside the window, in timeline order. It stops at the
// first step error and returns it; the clock stays positioned at the failing
// step so no time is consumed past it.
func (c *Clock) Advance(elapsed time.Duration, onStep func() error, onTick func()) error {
	if elapsed <= 0 {
		return nil
	}
	target := c.now + elapsed

	for {
		stepAt, stepOK := c.nextStep()
		tickAt, tickOK := c.nextTick()

		switch {
		case stepOK && stepAt <= target && (!tickOK || stepAt <= tickAt):
			c.now = stepAt
			c.steps++
			if err := onStep(); err != nil {
				c.rebase()
				return err
			}
		case tickOK && tickAt <= target:
			c.now = tickAt
			c.ticks++
			onTick()
		default:
			c.now = target
			c.rebase()
			return nil
		}
	}
}

// Reset discards any partially elapsed period.
func (c *Clock) Reset() {
	c.now = 0
	c.steps = 0
	c.ticks = 0
}

func (c *Clock) nextStep() (time.Duration, bool) {
	if c.stepHz == 0 {
		return 0, false
	}
	return eventTime(c.steps+1, c.stepHz), true
}

func (c *Clock) nextTick() (time.Duration, bool) {
	if c.tickHz == 0 {
		return 0, false
	}
	return eventTime(c.ticks+1, c.tickHz), true
}

// eventTime returns when the n-th event of a hz stream is due.
func eventTime(n, hz int64) time.Duration {
	return time.Duration(n * int64(time.Second) / hz)
}

// rebase folds whole seconds out of the counters so they never grow without
// bound. After exactly one second both streams have fired exactly hz events.
func (c *Clock) rebase() {
	for c.now >= time.Second && c.steps >= c.stepHz && c.ticks >= c.tickHz {
		c.now -= time.Second
		c.steps -= c.stepHz
		c.ticks -= c.tickHz
	}
}

// FrameSlicer hands out frame durations for a given frame rate. Durations are
// cut at whole-nanosecond boundaries of the exact timeline, so every hz
// consecutive frames add up to exactly one second.
type FrameSlicer struct {
	hz int64
	n  int64
}

// NewFrameSlicer creates a slicer for hz frames per second.
func NewFrameSlicer(hz int) *FrameSlicer {
	return &FrameSlicer{hz: int64(max(hz, 1))}
}

// Next returns the duration of the next frame.
func (f *FrameSlicer) Next() time.Duration {
	d := eventTime(f.n+1, f.hz) - eventTime(f.n, f.hz)
	f.n = (f.n + 1) % f.hz
	return d
}

// Reset restarts slicing at the beginning of a second.
func (f *FrameSlicer) Reset() {
	f.n = 0
}
