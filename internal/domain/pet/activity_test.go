package pet

import (
	"errors"
	"testing"
)

func exploreParams() ExplorationParams {
	return ExplorationParams{
		LocationID:    "meadow",
		ActivityID:    "forage",
		DurationTicks: 240,
		EnergyCost:    15,
	}
}

func TestStartExplorationRequiresIdle(t *testing.T) {
	s := newTestSnapshot()
	s.Creature.Activity = OngoingActivity{Kind: ActivityTraveling, TicksLeft: 5}
	if _, err := StartExploration(s, exploreParams()); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("expected ErrNotIdle, got %v", err)
	}
}

func TestStartExplorationChecksEnergyAndEligibility(t *testing.T) {
	s := newTestSnapshot()
	s.Creature.Energy = 5
	if _, err := StartExploration(s, exploreParams()); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected ErrInsufficientEnergy, got %v", err)
	}

	s = newTestSnapshot()
	p := exploreParams()
	p.MinStage = 2
	if _, err := StartExploration(s, p); !errors.Is(err, ErrActivityNotEligible) {
		t.Fatalf("expected stage rejection, got %v", err)
	}

	p = exploreParams()
	p.RequiredQuests = []string{"first-steps"}
	if _, err := StartExploration(s, p); !errors.Is(err, ErrActivityNotEligible) {
		t.Fatalf("expected quest rejection, got %v", err)
	}

	s.CompletedQuests = []string{"first-steps"}
	out, err := StartExploration(s, p)
	if err != nil {
		t.Fatalf("start exploration: %v", err)
	}
	if out.Creature.Activity.Kind != ActivityExploring {
		t.Fatalf("unexpected activity: %+v", out.Creature.Activity)
	}
	if out.Creature.Energy != s.Creature.Energy-p.EnergyCost {
		t.Fatalf("energy = %d", out.Creature.Energy)
	}
}

func TestCancelRefundsEnergyExactly(t *testing.T) {
	s := newTestSnapshot()
	before := s.Creature.Energy

	started, err := StartExploration(s, exploreParams())
	if err != nil {
		t.Fatalf("start exploration: %v", err)
	}
	cancelled, err := CancelActivity(started)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Creature.Energy != before {
		t.Fatalf("energy = %d, want pre-start %d", cancelled.Creature.Energy, before)
	}
	if !cancelled.Creature.Activity.Idle() {
		t.Fatalf("expected idle after cancel")
	}
}

func TestCancelRequiresActiveActivity(t *testing.T) {
	s := newTestSnapshot()
	if _, err := CancelActivity(s); !errors.Is(err, ErrNoActiveActivity) {
		t.Fatalf("expected ErrNoActiveActivity, got %v", err)
	}
	s.Creature.Activity = OngoingActivity{Kind: ActivityInBattle}
	if _, err := CancelActivity(s); !errors.Is(err, ErrNoActiveActivity) {
		t.Fatalf("battles must not be cancellable here, got %v", err)
	}
}

func TestStartTravelValidatesDestination(t *testing.T) {
	s := newTestSnapshot()
	if _, err := StartTravel(s, "meadow", 100, 10); !errors.Is(err, ErrAlreadyThere) {
		t.Fatalf("expected ErrAlreadyThere, got %v", err)
	}

	out, err := StartTravel(s, "riverbank", 100, 10)
	if err != nil {
		t.Fatalf("start travel: %v", err)
	}
	a := out.Creature.Activity
	if a.Kind != ActivityTraveling || a.Destination != "riverbank" || a.TicksLeft != 100 {
		t.Fatalf("unexpected activity: %+v", a)
	}
}
