package pet

import "errors"

var (
	ErrCreatureDead       = errors.New("creature is dead")
	ErrUnknownItem        = errors.New("unknown item")
	ErrItemNotOwned       = errors.New("item not in inventory")
	ErrNotSick            = errors.New("creature is not sick")
	ErrNothingToClean     = errors.New("nothing to clean")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrNotSleeping        = errors.New("creature is not sleeping")
	ErrEnergyFull         = errors.New("energy already full")
	ErrBusy               = errors.New("creature is busy")
)

// CareItem describes a consumable. Items either refill one depletable stat
// or cure sickness; the two shapes never mix.
type CareItem struct {
	Stat          StatKind
	GainTicks     int64
	CuresSickness bool
}

var careItemDefs = map[string]CareItem{
	"ration":      {Stat: StatSatiety, GainTicks: 480},
	"berry":       {Stat: StatSatiety, GainTicks: 160},
	"water_flask": {Stat: StatHydration, GainTicks: 300},
	"spring_dew":  {Stat: StatHydration, GainTicks: 600},
	"chew_toy":    {Stat: StatHappiness, GainTicks: 480},
	"tonic":       {CuresSickness: true},
}

func CareItemDef(itemID string) (CareItem, bool) {
	def, ok := careItemDefs[itemID]
	return def, ok
}

// UseItem consumes one inventory item and applies its care effect. Stat
// items fail with ErrStatAlreadyFull before consuming anything, so callers
// can surface a "not hungry" style refusal.
func UseItem(s PetSnapshot, itemID string, tun Tuning) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	def, ok := careItemDefs[itemID]
	if !ok {
		return s, ErrUnknownItem
	}
	if !s.HasItem(itemID, 1) {
		return s, ErrItemNotOwned
	}

	if def.CuresSickness {
		if s.Creature.Health != HealthSick {
			return s, ErrNotSick
		}
		s.Creature.Health = HealthHealthy
		s.Inventory = withItem(s.Inventory, itemID, -1)
		return s, nil
	}

	next, err := ApplyCareGain(
		s.Creature.Stats.Get(def.Stat),
		def.GainTicks,
		tun.CapFor(def.Stat),
		tun.MultiplierFor(def.Stat),
	)
	if err != nil {
		return s, err
	}
	s.Creature.Stats = s.Creature.Stats.With(def.Stat, next)
	s.Inventory = withItem(s.Inventory, itemID, -1)
	return s, nil
}

// Play spends energy to refill happiness. No item required.
func Play(s PetSnapshot, tun Tuning) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	switch s.Creature.Activity.Kind {
	case ActivitySleeping, ActivityInBattle:
		return s, ErrBusy
	}
	if s.Creature.Energy < PlayEnergyCost {
		return s, ErrInsufficientEnergy
	}
	next, err := ApplyCareGain(
		s.Creature.Stats.HappinessTicks,
		tun.HappinessMultiplier*20,
		tun.HappinessCapTicks,
		tun.HappinessMultiplier,
	)
	if err != nil {
		return s, err
	}
	s.Creature.Stats.HappinessTicks = next
	s.Creature.Energy -= PlayEnergyCost
	return s, nil
}

// Clean resets the waste countdown and aborts a pending sickness countdown.
// It never reverts an already-sick creature; that takes a tonic.
func Clean(s PetSnapshot, tun Tuning) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	if !s.Creature.NeedsCleaning {
		return s, ErrNothingToClean
	}
	s.Creature.NeedsCleaning = false
	s.Creature.PoopTicks = tun.PoopIntervalTicks
	s.Creature.SicknessTicks = 0
	return s, nil
}

// Sleep puts an idle creature to rest for durationTicks (default applied
// when zero). Sleep ends early once energy is full.
func Sleep(s PetSnapshot, durationTicks int64) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	if !s.Creature.Activity.Idle() {
		return s, ErrBusy
	}
	if s.Creature.Energy >= EnergyMax {
		return s, ErrEnergyFull
	}
	if durationTicks <= 0 {
		durationTicks = DefaultSleepTicks
	}
	s.Creature.Activity = OngoingActivity{
		Kind:          ActivitySleeping,
		DurationTicks: durationTicks,
		TicksLeft:     durationTicks,
	}
	return s, nil
}

func Wake(s PetSnapshot) (PetSnapshot, error) {
	if s.Creature.Activity.Kind != ActivitySleeping {
		return s, ErrNotSleeping
	}
	s.Creature.Activity = OngoingActivity{}
	return s, nil
}
