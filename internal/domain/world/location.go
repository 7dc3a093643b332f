package world

// EncounterEntry is one weighted row of a location's encounter table. An
// empty ActivityIDs set means the entry applies to any activity.
type EncounterEntry struct {
	Weight         int      `json:"weight"`
	Species        []string `json:"species"`
	LevelOffsetMin int      `json:"level_offset_min"`
	LevelOffsetMax int      `json:"level_offset_max"`
	ActivityIDs    []string `json:"activity_ids,omitempty"`
	MinStage       int      `json:"min_stage,omitempty"`
}

func (e EncounterEntry) AllowsActivity(activityID string) bool {
	if len(e.ActivityIDs) == 0 {
		return true
	}
	for _, id := range e.ActivityIDs {
		if id == activityID {
			return true
		}
	}
	return false
}

// DropEntry is one weighted row of a drop table.
type DropEntry struct {
	Weight   int    `json:"weight"`
	ItemID   string `json:"item_id"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
}

type DropTable struct {
	ID      string      `json:"id"`
	Rolls   int         `json:"rolls"`
	Entries []DropEntry `json:"entries"`
}

// ActivityDef describes a timed activity offered at a location.
type ActivityDef struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationTicks   int64    `json:"duration_ticks"`
	EnergyCost      int      `json:"energy_cost"`
	MinStage        int      `json:"min_stage,omitempty"`
	RequiredQuests  []string `json:"required_quests,omitempty"`
	DropTableID     string   `json:"drop_table_id,omitempty"`
	EncounterChance float64  `json:"encounter_chance,omitempty"`
}

type Location struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	MinLevel    int              `json:"min_level"`
	MaxLevel    int              `json:"max_level"`
	TravelTicks int64            `json:"travel_ticks"`
	TravelCost  int              `json:"travel_cost"`
	Encounters  []EncounterEntry `json:"encounters,omitempty"`
	Activities  []ActivityDef    `json:"activities,omitempty"`
}

func (l Location) Activity(id string) (ActivityDef, bool) {
	for _, a := range l.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return ActivityDef{}, false
}
