package stateview

import "petverse/internal/domain/pet"

// DisplayStats are the 0..100 need values shown to owners; the raw
// ticks-remaining counters never leave the server.
type DisplayStats struct {
	Satiety   int `json:"satiety"`
	Hydration int `json:"hydration"`
	Happiness int `json:"happiness"`
}

type CreatureView struct {
	Name          string              `json:"name"`
	Species       string              `json:"species"`
	Stats         DisplayStats        `json:"stats"`
	Energy        int                 `json:"energy"`
	Life          int64               `json:"life"`
	Health        pet.HealthState     `json:"health"`
	Stage         int                 `json:"stage"`
	LifetimeTicks int64               `json:"lifetime_ticks"`
	NeedsCleaning bool                `json:"needs_cleaning"`
	Activity      pet.OngoingActivity `json:"activity"`
	Dead          bool                `json:"dead"`
	Drain         LifeDrainEstimate   `json:"drain"`
}

func DeriveCreatureView(c pet.Creature, tun pet.Tuning) CreatureView {
	return CreatureView{
		Name:    c.Name,
		Species: c.Species,
		Stats: DisplayStats{
			Satiety:   pet.DisplayValue(c.Stats.SatietyTicks, tun.SatietyMultiplier),
			Hydration: pet.DisplayValue(c.Stats.HydrationTicks, tun.HydrationMultiplier),
			Happiness: pet.DisplayValue(c.Stats.HappinessTicks, tun.HappinessMultiplier),
		},
		Energy:        c.Energy,
		Life:          c.Life,
		Health:        c.Health,
		Stage:         c.Stage,
		LifetimeTicks: c.LifetimeTicks,
		NeedsCleaning: c.NeedsCleaning,
		Activity:      c.Activity,
		Dead:          c.Dead,
		Drain:         EstimateLifeDrain(c, tun),
	}
}
