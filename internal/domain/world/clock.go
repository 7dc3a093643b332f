package world

import "time"

const (
	// DefaultTickDuration is the fixed wall-clock length of one simulation
	// tick. Every elapsed-time conversion uses this exact constant.
	DefaultTickDuration = 15 * time.Second

	// DefaultMaxCatchupTicks bounds one catch-up call; one week of ticks.
	DefaultMaxCatchupTicks = 7 * 24 * 3600 / 15
)

// TickClock converts wall-clock time into whole ticks. Fractional remainders
// are dropped; callers re-derive ticks from a stored last-tick time, and the
// consistent flooring here keeps repeated calls drift-free.
type TickClock struct {
	TickDuration    time.Duration
	MaxCatchupTicks int64
}

func NewTickClock(tickDuration time.Duration, maxCatchupTicks int64) TickClock {
	if tickDuration <= 0 {
		tickDuration = DefaultTickDuration
	}
	if maxCatchupTicks <= 0 {
		maxCatchupTicks = DefaultMaxCatchupTicks
	}
	return TickClock{TickDuration: tickDuration, MaxCatchupTicks: maxCatchupTicks}
}

func DefaultClock() TickClock {
	return NewTickClock(0, 0)
}

func (c TickClock) TicksFor(elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	return int64(elapsed / c.TickDuration)
}

func (c TickClock) TicksBetween(from, to time.Time) int64 {
	return c.TicksFor(to.Sub(from))
}

// Cap clamps a tick count to the offline allowance.
func (c TickClock) Cap(ticks int64) int64 {
	if ticks > c.MaxCatchupTicks {
		return c.MaxCatchupTicks
	}
	return ticks
}
