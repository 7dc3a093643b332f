package stateview

import "petverse/internal/domain/pet"

// LifeDrainEstimate is the forward-looking view of life loss shown to the
// owner. It mirrors the exact per-tick drain the simulation applies, so the
// displayed ticks-to-death is the true count absent intervention.
type LifeDrainEstimate struct {
	DrainPerTick int64    `json:"drain_per_tick"`
	TicksToDeath int64    `json:"ticks_to_death"`
	Causes       []string `json:"causes,omitempty"`
}

func EstimateLifeDrain(c pet.Creature, tun pet.Tuning) LifeDrainEstimate {
	if c.Dead {
		return LifeDrainEstimate{}
	}

	empty := c.Stats.EmptyCount()
	sick := c.Health == pet.HealthSick
	drain := tun.LifeDrainPerTick(empty, sick)
	if drain <= 0 {
		// A tuning with no base drain can legitimately produce a zero rate;
		// the creature is simply not losing life.
		return LifeDrainEstimate{}
	}

	causes := make([]string, 0, 4)
	if c.Stats.SatietyTicks == 0 {
		causes = append(causes, "EMPTY_SATIETY_DRAIN")
	}
	if c.Stats.HydrationTicks == 0 {
		causes = append(causes, "EMPTY_HYDRATION_DRAIN")
	}
	if c.Stats.HappinessTicks == 0 {
		causes = append(causes, "EMPTY_HAPPINESS_DRAIN")
	}
	if sick {
		causes = append(causes, "SICKNESS_DRAIN")
	}

	ticksToDeath := c.Life / drain
	if c.Life%drain != 0 {
		ticksToDeath++
	}
	return LifeDrainEstimate{
		DrainPerTick: drain,
		TicksToDeath: ticksToDeath,
		Causes:       causes,
	}
}
