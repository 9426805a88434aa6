package simulation

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(30)
	step := time.Second / 30

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"less than a step", step / 2, 0},
		{"remainder carries", step - step/2, 1},
		{"exact steps", 3 * step, 3},
		{"negative ignored", -time.Second, 0},
		{"stall is capped", time.Second, MaxCatchUp},
	}
	for _, tc := range tests {
		if got := c.Advance(tc.elapsed); got != tc.want {
			t.Errorf("%s: Advance(%v) = %d, want %d", tc.name, tc.elapsed, got, tc.want)
		}
	}
	if c.Dropped != 30-MaxCatchUp {
		t.Errorf("dropped = %d, want %d", c.Dropped, 30-MaxCatchUp)
	}
}

func TestNewClockDefaultRate(t *testing.T) {
	if c := NewClock(0); c.Step != time.Second/DefaultTickRate {
		t.Errorf("step = %v", c.Step)
	}
}
