package pet

import "errors"

type StatKind string

const (
	StatSatiety   StatKind = "satiety"
	StatHydration StatKind = "hydration"
	StatHappiness StatKind = "happiness"
)

var ErrStatAlreadyFull = errors.New("stat already full")

// AdvanceStat depletes a ticks-remaining counter by elapsed ticks, flooring
// at zero. Linear, so it is directly invertible for phase splitting.
func AdvanceStat(ticksRemaining, elapsedTicks int64) int64 {
	if elapsedTicks >= ticksRemaining {
		return 0
	}
	return ticksRemaining - elapsedTicks
}

// DisplayValue converts ticks-remaining into the 0-100 scale shown to
// callers: floor(ticks/multiplier) clamped into [0, DisplayMax].
func DisplayValue(ticksRemaining, multiplier int64) int {
	if ticksRemaining <= 0 || multiplier <= 0 {
		return 0
	}
	v := ticksRemaining / multiplier
	if v > DisplayMax {
		return DisplayMax
	}
	return int(v)
}

// ApplyCareGain adds ticks to a stat up to its cap. It rejects with
// ErrStatAlreadyFull before mutating when the display value is already 100,
// so callers can surface a distinct "not hungry" style refusal.
func ApplyCareGain(ticksRemaining, addTicks, capTicks, multiplier int64) (int64, error) {
	if DisplayValue(ticksRemaining, multiplier) >= DisplayMax {
		return ticksRemaining, ErrStatAlreadyFull
	}
	next := ticksRemaining + addTicks
	if next > capTicks {
		next = capTicks
	}
	return next, nil
}

func (d DepletableStats) Get(stat StatKind) int64 {
	switch stat {
	case StatSatiety:
		return d.SatietyTicks
	case StatHydration:
		return d.HydrationTicks
	case StatHappiness:
		return d.HappinessTicks
	default:
		return 0
	}
}

func (d DepletableStats) With(stat StatKind, ticks int64) DepletableStats {
	switch stat {
	case StatSatiety:
		d.SatietyTicks = ticks
	case StatHydration:
		d.HydrationTicks = ticks
	case StatHappiness:
		d.HappinessTicks = ticks
	}
	return d
}

func (d DepletableStats) Advance(elapsedTicks int64) DepletableStats {
	d.SatietyTicks = AdvanceStat(d.SatietyTicks, elapsedTicks)
	d.HydrationTicks = AdvanceStat(d.HydrationTicks, elapsedTicks)
	d.HappinessTicks = AdvanceStat(d.HappinessTicks, elapsedTicks)
	return d
}
