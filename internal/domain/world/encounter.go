package world

import "math/rand"

// EncounterOutcome reports the result of one encounter roll. Triggered false
// means no encounter; that is a normal outcome, never an error.
type EncounterOutcome struct {
	Triggered bool   `json:"triggered"`
	Species   string `json:"species,omitempty"`
	Level     int    `json:"level,omitempty"`
}

// EncounterResolver performs weighted-random selection over a location's
// encounter table. The rand source is injected so rolls are reproducible
// under test.
type EncounterResolver struct {
	rng *rand.Rand
}

func NewEncounterResolver(rng *rand.Rand) *EncounterResolver {
	return &EncounterResolver{rng: rng}
}

// Roll gates on baseChance, filters the table by activity and growth stage,
// then draws a weighted entry and computes the spawned level. A location
// without eligible entries yields no encounter even when the gate passes.
func (r *EncounterResolver) Roll(loc Location, approxLevel, stage int, activityID string, baseChance float64) EncounterOutcome {
	if baseChance <= 0 || len(loc.Encounters) == 0 {
		return EncounterOutcome{}
	}
	if baseChance < 1 && r.rng.Float64() >= baseChance {
		return EncounterOutcome{}
	}

	eligible := make([]EncounterEntry, 0, len(loc.Encounters))
	total := 0
	for _, e := range loc.Encounters {
		if e.Weight <= 0 || len(e.Species) == 0 {
			continue
		}
		if stage < e.MinStage || !e.AllowsActivity(activityID) {
			continue
		}
		eligible = append(eligible, e)
		total += e.Weight
	}
	if total == 0 {
		return EncounterOutcome{}
	}

	pick := r.rng.Intn(total)
	var entry EncounterEntry
	for _, e := range eligible {
		if pick < e.Weight {
			entry = e
			break
		}
		pick -= e.Weight
	}

	species := entry.Species[r.rng.Intn(len(entry.Species))]
	return EncounterOutcome{
		Triggered: true,
		Species:   species,
		Level:     r.spawnLevel(loc, approxLevel, entry),
	}
}

// spawnLevel scales the location's level range by the creature's approximate
// level with bounded randomness, applies the entry offset, then clamps back
// into the location bounds.
func (r *EncounterResolver) spawnLevel(loc Location, approxLevel int, entry EncounterEntry) int {
	base := clampInt(approxLevel+r.rng.Intn(3)-1, loc.MinLevel, loc.MaxLevel)
	offset := entry.LevelOffsetMin
	if span := entry.LevelOffsetMax - entry.LevelOffsetMin; span > 0 {
		offset += r.rng.Intn(span + 1)
	}
	return clampInt(base+offset, loc.MinLevel, loc.MaxLevel)
}

// ApproximateLevel derives a scaling level from the six-axis battle stat
// block: average, halved, floored, never below 1.
func ApproximateLevel(strength, endurance, agility, precision, fortitude, cunning int) int {
	avg := (strength + endurance + agility + precision + fortitude + cunning) / 6
	lvl := avg / 2
	if lvl < 1 {
		lvl = 1
	}
	return lvl
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
