package pet

import "time"

type HealthState string

const (
	HealthHealthy HealthState = "healthy"
	HealthInjured HealthState = "injured"
	HealthSick    HealthState = "sick"
)

type ActivityKind string

const (
	ActivityTraveling ActivityKind = "traveling"
	ActivityExploring ActivityKind = "exploring"
	ActivitySleeping  ActivityKind = "sleeping"
	ActivityInBattle  ActivityKind = "in_battle"
)

// DepletableStats holds the three need counters as ticks-remaining-until-empty.
// Display values are derived through per-stat multipliers, see DisplayValue.
type DepletableStats struct {
	SatietyTicks   int64 `json:"satiety_ticks"`
	HydrationTicks int64 `json:"hydration_ticks"`
	HappinessTicks int64 `json:"happiness_ticks"`
}

func (d DepletableStats) EmptyCount() int {
	n := 0
	if d.SatietyTicks == 0 {
		n++
	}
	if d.HydrationTicks == 0 {
		n++
	}
	if d.HappinessTicks == 0 {
		n++
	}
	return n
}

// StatBlock is the six-axis battle stat spread carried on the creature and
// projected into a combatant when a battle starts.
type StatBlock struct {
	Strength  int `json:"strength"`
	Endurance int `json:"endurance"`
	Agility   int `json:"agility"`
	Precision int `json:"precision"`
	Fortitude int `json:"fortitude"`
	Cunning   int `json:"cunning"`
}

// OngoingActivity is the single non-idle occupation of a creature. A zero
// Kind means idle.
type OngoingActivity struct {
	Kind          ActivityKind `json:"kind,omitempty"`
	LocationID    string       `json:"location_id,omitempty"`
	ActivityID    string       `json:"activity_id,omitempty"`
	Destination   string       `json:"destination,omitempty"`
	DurationTicks int64        `json:"duration_ticks,omitempty"`
	TicksLeft     int64        `json:"ticks_left,omitempty"`
	EnergyCost    int          `json:"energy_cost,omitempty"`
}

func (a OngoingActivity) Idle() bool { return a.Kind == "" }

type Creature struct {
	Name          string          `json:"name"`
	Species       string          `json:"species"`
	Stats         DepletableStats `json:"stats"`
	Energy        int             `json:"energy"`
	Life          int64           `json:"life"`
	Health        HealthState     `json:"health"`
	Stage         int             `json:"stage"`
	LifetimeTicks int64           `json:"lifetime_ticks"`
	PoopTicks     int64           `json:"poop_ticks"`
	NeedsCleaning bool            `json:"needs_cleaning"`
	SicknessTicks int64           `json:"sickness_ticks"`
	Battle        StatBlock       `json:"battle"`
	MoveIDs       []string        `json:"move_ids"`
	Activity      OngoingActivity `json:"activity"`
	Dead          bool            `json:"dead"`
}

// PetSnapshot is the versioned aggregate the core consumes and produces. The
// caller owns transport and storage of it.
type PetSnapshot struct {
	OwnerID         string         `json:"owner_id"`
	Creature        Creature       `json:"creature"`
	Inventory       map[string]int `json:"inventory"`
	Coins           int            `json:"coins"`
	LocationID      string         `json:"location_id"`
	CompletedQuests []string       `json:"completed_quests"`
	TotalTicks      int64          `json:"total_ticks"`
	LastTickAt      time.Time      `json:"last_tick_at"`
	Version         int64          `json:"version"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (s PetSnapshot) HasItem(item string, amount int) bool {
	return amount > 0 && s.Inventory[item] >= amount
}

func (s PetSnapshot) HasCompletedQuests(required []string) bool {
	if len(required) == 0 {
		return true
	}
	done := make(map[string]struct{}, len(s.CompletedQuests))
	for _, q := range s.CompletedQuests {
		done[q] = struct{}{}
	}
	for _, q := range required {
		if _, ok := done[q]; !ok {
			return false
		}
	}
	return true
}

// WithItem returns a copy of the snapshot with the inventory delta applied.
// Non-positive resulting counts remove the entry.
func (s PetSnapshot) WithItem(item string, delta int) PetSnapshot {
	s.Inventory = withItem(s.Inventory, item, delta)
	return s
}

// withItem returns a copy of the inventory with the delta applied. Snapshots
// are value types; the map must never be shared between input and output.
func withItem(inv map[string]int, item string, delta int) map[string]int {
	out := make(map[string]int, len(inv)+1)
	for k, v := range inv {
		out[k] = v
	}
	out[item] += delta
	if out[item] <= 0 {
		delete(out, item)
	}
	return out
}

// Event vocabulary shared with external quest/progression listeners. The
// identifiers are emitted verbatim.
const (
	EventItemObtained      = "item_obtained"
	EventLocationVisited   = "location_visited"
	EventBattleWon         = "battle_won"
	EventLevelUp           = "level_up"
	EventActivityCompleted = "activity_completed"
	EventPetDied           = "pet_died"
	EventPetPooped         = "pet_pooped"
	EventPetSick           = "pet_sick"
)

// MajorEvent is a caller-visible state transition detected during tick
// processing. Tick is the 1-based offset inside the processed window.
type MajorEvent struct {
	Type    string         `json:"type"`
	Tick    int64          `json:"tick"`
	Payload map[string]any `json:"payload,omitempty"`
}

type CatchupResult struct {
	UpdatedState   PetSnapshot  `json:"updated_state"`
	Events         []MajorEvent `json:"events"`
	ProcessedTicks int64        `json:"processed_ticks"`
}
