package world

import (
	"testing"
	"time"
)

func TestTicksForFloorsFractions(t *testing.T) {
	c := DefaultClock()
	cases := []struct {
		elapsed time.Duration
		want    int64
	}{
		{0, 0},
		{-5 * time.Second, 0},
		{14 * time.Second, 0},
		{15 * time.Second, 1},
		{29 * time.Second, 1},
		{30 * time.Second, 2},
		{24 * time.Hour, 5760},
	}
	for _, tc := range cases {
		if got := c.TicksFor(tc.elapsed); got != tc.want {
			t.Fatalf("TicksFor(%s) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestTicksBetweenDoesNotDrift(t *testing.T) {
	c := DefaultClock()
	start := time.Unix(1_700_000_000, 0)

	// Re-deriving from the same stored anchor at increasing now values must
	// floor consistently: one big window equals the sum of its pieces when
	// the anchor advances by whole ticks each time.
	anchor := start
	var sum int64
	now := start
	for i := 0; i < 50; i++ {
		now = now.Add(37 * time.Second)
		ticks := c.TicksBetween(anchor, now)
		sum += ticks
		anchor = anchor.Add(time.Duration(ticks) * c.TickDuration)
	}
	if whole := c.TicksBetween(start, now); whole != sum {
		t.Fatalf("accumulated %d ticks, whole window has %d", sum, whole)
	}
}

func TestCapBoundsCatchup(t *testing.T) {
	c := NewTickClock(15*time.Second, 1000)
	if got := c.Cap(999); got != 999 {
		t.Fatalf("Cap(999) = %d", got)
	}
	if got := c.Cap(5_000_000); got != 1000 {
		t.Fatalf("Cap(5000000) = %d, want 1000", got)
	}
}

func TestDefaultsApplied(t *testing.T) {
	c := NewTickClock(0, 0)
	if c.TickDuration != DefaultTickDuration {
		t.Fatalf("tick duration = %s", c.TickDuration)
	}
	if c.MaxCatchupTicks != DefaultMaxCatchupTicks {
		t.Fatalf("max catchup ticks = %d", c.MaxCatchupTicks)
	}
}
