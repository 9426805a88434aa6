package simulation

import "time"

const (
	// DefaultTickRate is the simulation rate in ticks per second
	DefaultTickRate = 30
	// MaxCatchUp bounds how many ticks one Advance may return after a stall
	MaxCatchUp = 5
)

// Clock converts wall time into a whole number of fixed simulation ticks
type Clock struct {
	Step    time.Duration
	pending time.Duration
	Dropped uint64
}

// NewClock returns a clock running at rate ticks per second
func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Clock{Step: time.Second / time.Duration(rate)}
}

// Advance accounts for elapsed wall time and returns how many ticks are due.
// Backlog beyond MaxCatchUp is discarded.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	c.pending += elapsed
	n := int(c.pending / c.Step)
	c.pending -= time.Duration(n) * c.Step
	if n > MaxCatchUp {
		c.Dropped += uint64(n - MaxCatchUp)
		n = MaxCatchUp
	}
	return n
}
