package pet

const (
	MaxLife    = 1_000_000
	EnergyMax  = 100
	DisplayMax = 100

	PlayEnergyCost    = 10
	DefaultSleepTicks = 480

	NewbornLife = 500_000
)

// Tuning carries every decay and countdown constant as supplied
// configuration. The three depletable stats deliberately use different
// multipliers, so they deplete at different wall-clock rates.
type Tuning struct {
	SatietyMultiplier   int64
	HydrationMultiplier int64
	HappinessMultiplier int64

	SatietyCapTicks   int64
	HydrationCapTicks int64
	HappinessCapTicks int64

	BaseLifeDrain      int64
	EmptyStatLifeDrain int64
	SickLifeDrain      int64

	PoopIntervalTicks  int64
	SicknessGraceTicks int64

	SleepEnergyPerTick int

	// GrowthThresholds are cumulative lifetime ticks, strictly increasing.
	// Crossing thresholds[stage] advances the stage.
	GrowthThresholds []int64
}

func DefaultTuning() Tuning {
	return Tuning{
		SatietyMultiplier:   16,
		HydrationMultiplier: 10,
		HappinessMultiplier: 24,

		SatietyCapTicks:   1600,
		HydrationCapTicks: 1000,
		HappinessCapTicks: 2400,

		BaseLifeDrain:      1,
		EmptyStatLifeDrain: 4,
		SickLifeDrain:      6,

		PoopIntervalTicks:  960,
		SicknessGraceTicks: 480,

		SleepEnergyPerTick: 1,

		GrowthThresholds: []int64{5760, 23040, 80640},
	}
}

// MultiplierFor returns the display multiplier of one depletable stat.
func (t Tuning) MultiplierFor(stat StatKind) int64 {
	switch stat {
	case StatSatiety:
		return t.SatietyMultiplier
	case StatHydration:
		return t.HydrationMultiplier
	case StatHappiness:
		return t.HappinessMultiplier
	default:
		return 1
	}
}

func (t Tuning) CapFor(stat StatKind) int64 {
	switch stat {
	case StatSatiety:
		return t.SatietyCapTicks
	case StatHydration:
		return t.HydrationCapTicks
	case StatHappiness:
		return t.HappinessCapTicks
	default:
		return 0
	}
}

// LifeDrainPerTick is the per-tick life loss given how many depletable stats
// are empty and whether the creature is sick. Constant within a catch-up
// phase, which is what makes the closed-form walk possible.
func (t Tuning) LifeDrainPerTick(emptyStats int, sick bool) int64 {
	drain := t.BaseLifeDrain + t.EmptyStatLifeDrain*int64(emptyStats)
	if sick {
		drain += t.SickLifeDrain
	}
	return drain
}
