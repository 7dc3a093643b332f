package pet

import "errors"

var (
	ErrNotIdle             = errors.New("creature is not idle")
	ErrNoActiveActivity    = errors.New("no active activity to cancel")
	ErrActivityNotEligible = errors.New("activity not eligible")
	ErrAlreadyThere        = errors.New("already at destination")
)

// ExplorationParams carries everything the engine needs to validate and
// start a timed activity. Eligibility data comes from the caller's activity
// definition; the engine has no table access of its own.
type ExplorationParams struct {
	LocationID     string
	ActivityID     string
	DurationTicks  int64
	EnergyCost     int
	MinStage       int
	RequiredQuests []string
}

// StartExploration validates idleness, energy, growth stage and quest
// requirements, then deducts energy and records the countdown. Completion is
// driven by the same tick advance as catch-up.
func StartExploration(s PetSnapshot, p ExplorationParams) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	if !s.Creature.Activity.Idle() {
		return s, ErrNotIdle
	}
	if p.DurationTicks <= 0 {
		return s, ErrActivityNotEligible
	}
	if s.Creature.Stage < p.MinStage || !s.HasCompletedQuests(p.RequiredQuests) {
		return s, ErrActivityNotEligible
	}
	if s.Creature.Energy < p.EnergyCost {
		return s, ErrInsufficientEnergy
	}
	s.Creature.Energy -= p.EnergyCost
	s.Creature.Activity = OngoingActivity{
		Kind:          ActivityExploring,
		LocationID:    p.LocationID,
		ActivityID:    p.ActivityID,
		DurationTicks: p.DurationTicks,
		TicksLeft:     p.DurationTicks,
		EnergyCost:    p.EnergyCost,
	}
	return s, nil
}

// StartTravel begins a timed move to another location. Arrival is applied
// when the countdown completes.
func StartTravel(s PetSnapshot, destination string, durationTicks int64, energyCost int) (PetSnapshot, error) {
	if s.Creature.Dead {
		return s, ErrCreatureDead
	}
	if !s.Creature.Activity.Idle() {
		return s, ErrNotIdle
	}
	if destination == "" || durationTicks <= 0 {
		return s, ErrActivityNotEligible
	}
	if destination == s.LocationID {
		return s, ErrAlreadyThere
	}
	if s.Creature.Energy < energyCost {
		return s, ErrInsufficientEnergy
	}
	s.Creature.Energy -= energyCost
	s.Creature.Activity = OngoingActivity{
		Kind:          ActivityTraveling,
		Destination:   destination,
		DurationTicks: durationTicks,
		TicksLeft:     durationTicks,
		EnergyCost:    energyCost,
	}
	return s, nil
}

// CancelActivity aborts a pending exploration or travel and refunds the full
// energy cost; cancellation is lossless to the player. Sleep is ended via
// Wake and battles resolve through the battle session, never here.
func CancelActivity(s PetSnapshot) (PetSnapshot, error) {
	switch s.Creature.Activity.Kind {
	case ActivityExploring, ActivityTraveling:
		s.Creature.Energy += s.Creature.Activity.EnergyCost
		s.Creature.Activity = OngoingActivity{}
		return s, nil
	default:
		return s, ErrNoActiveActivity
	}
}
