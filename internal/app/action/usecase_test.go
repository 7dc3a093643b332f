package action

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"petverse/internal/adapter/repo/memory"
	"petverse/internal/app/shared/settle"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"
)

type fakeTables struct {
	locations map[string]world.Location
	drops     map[string]world.DropTable
}

func (f fakeTables) Location(id string) (world.Location, bool) {
	loc, ok := f.locations[id]
	return loc, ok
}

func (f fakeTables) DropTable(id string) (world.DropTable, bool) {
	t, ok := f.drops[id]
	return t, ok
}

func (f fakeTables) Locations() []world.Location {
	out := make([]world.Location, 0, len(f.locations))
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out
}

type fakeMetrics struct {
	successes []string
	conflicts int
	failures  int
}

func (m *fakeMetrics) RecordSuccess(action string) { m.successes = append(m.successes, action) }
func (m *fakeMetrics) RecordConflict()             { m.conflicts++ }
func (m *fakeMetrics) RecordFailure()              { m.failures++ }

func testTables() fakeTables {
	return fakeTables{
		locations: map[string]world.Location{
			"meadow": {
				ID:          "meadow",
				MinLevel:    1,
				MaxLevel:    5,
				TravelTicks: 40,
				TravelCost:  5,
				Activities: []world.ActivityDef{
					{ID: "forage", DurationTicks: 20, EnergyCost: 10},
				},
			},
			"cavern": {
				ID:          "cavern",
				MinLevel:    3,
				MaxLevel:    8,
				TravelTicks: 80,
				TravelCost:  10,
			},
		},
		drops: map[string]world.DropTable{},
	}
}

func fixedNow() time.Time {
	return time.Unix(1_700_000_000, 0)
}

func seedSnapshot(lastTick time.Time) pet.PetSnapshot {
	return pet.PetSnapshot{
		OwnerID: "owner-1",
		Creature: pet.Creature{
			Name:      "Mossy",
			Species:   "mossling",
			Stats:     pet.DepletableStats{SatietyTicks: 800, HydrationTicks: 800, HappinessTicks: 800},
			Energy:    80,
			Life:      500_000,
			Health:    pet.HealthHealthy,
			PoopTicks: 100_000,
			Battle:    pet.StatBlock{Strength: 10, Endurance: 10, Agility: 10, Precision: 10, Fortitude: 10, Cunning: 10},
		},
		Inventory:  map[string]int{"ration": 2},
		LocationID: "meadow",
		LastTickAt: lastTick,
		Version:    1,
	}
}

func newTestUseCase(store *memory.Store, metrics *fakeMetrics) UseCase {
	return UseCase{
		TxManager:  memory.NewTxManager(store),
		StateRepo:  memory.NewPetStateRepo(store),
		ActionRepo: memory.NewActionExecutionRepo(store),
		EventRepo:  memory.NewEventRepo(store),
		Tables:     testTables(),
		Settle: settle.Service{
			Clock:  world.DefaultClock(),
			Tuning: pet.DefaultTuning(),
			Tables: testTables(),
			Rng:    rand.New(rand.NewSource(1)),
		},
		Metrics: metrics,
		Now:     fixedNow,
	}
}

func TestExecuteSettlesThenAppliesIntent(t *testing.T) {
	store := memory.NewStore()
	store.SeedState(seedSnapshot(fixedNow().Add(-100 * 15 * time.Second)))
	metrics := &fakeMetrics{}
	uc := newTestUseCase(store, metrics)

	resp, err := uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-1",
		Intent:         Intent{Type: IntentUseItem, ItemID: "ration"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// 100 ticks settled before the feed: satiety decayed to 700, then the
	// ration added 480.
	if got := resp.State.Creature.Stats.SatietyTicks; got != 1180 {
		t.Fatalf("satiety = %d, want 1180", got)
	}
	if resp.State.TotalTicks != 100 {
		t.Fatalf("total ticks = %d, want 100", resp.State.TotalTicks)
	}
	if resp.State.Inventory["ration"] != 1 {
		t.Fatalf("inventory = %+v, want 1 ration left", resp.State.Inventory)
	}
	if resp.State.Version != 2 {
		t.Fatalf("version = %d, want 2", resp.State.Version)
	}
	if len(metrics.successes) != 1 || metrics.successes[0] != "use_item" {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestExecuteReplaysIdempotentResult(t *testing.T) {
	store := memory.NewStore()
	store.SeedState(seedSnapshot(fixedNow()))
	uc := newTestUseCase(store, &fakeMetrics{})

	req := Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-1",
		Intent:         Intent{Type: IntentUseItem, ItemID: "ration"},
	}
	first, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("replay Execute: %v", err)
	}
	if !reflect.DeepEqual(first.State, second.State) {
		t.Fatalf("replay diverged:\n%+v\n%+v", first.State, second.State)
	}
	// The item was consumed exactly once.
	if second.State.Inventory["ration"] != 1 {
		t.Fatalf("inventory = %+v after replay", second.State.Inventory)
	}
}

func TestExecuteRejectedIntentPersistsNothing(t *testing.T) {
	store := memory.NewStore()
	store.SeedState(seedSnapshot(fixedNow()))
	metrics := &fakeMetrics{}
	uc := newTestUseCase(store, metrics)

	_, err := uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-1",
		Intent:         Intent{Type: IntentUseItem, ItemID: "golden_apple"},
	})
	if !errors.Is(err, pet.ErrUnknownItem) {
		t.Fatalf("err = %v, want ErrUnknownItem", err)
	}

	state, err := memory.NewPetStateRepo(store).GetByOwnerID(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	if state.Version != 1 {
		t.Fatalf("failed action bumped version to %d", state.Version)
	}
	if metrics.failures != 1 {
		t.Fatalf("failure metric = %d, want 1", metrics.failures)
	}
	// The key stays free for a corrected retry.
	if _, err := memory.NewActionExecutionRepo(store).GetByIdempotencyKey(context.Background(), "owner-1", "key-1"); err == nil {
		t.Fatalf("rejected action left an execution record")
	}
}

func TestExecuteStartExplorationUsesActivityTable(t *testing.T) {
	store := memory.NewStore()
	store.SeedState(seedSnapshot(fixedNow()))
	uc := newTestUseCase(store, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-1",
		Intent:         Intent{Type: IntentStartExploration, ActivityID: "forage"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	act := resp.State.Creature.Activity
	if act.Kind != pet.ActivityExploring || act.ActivityID != "forage" || act.TicksLeft != 20 {
		t.Fatalf("activity = %+v", act)
	}
	if resp.State.Creature.Energy != 70 {
		t.Fatalf("energy = %d, want 70 after cost 10", resp.State.Creature.Energy)
	}

	_, err = uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-2",
		Intent:         Intent{Type: IntentStartExploration, ActivityID: "spelunk"},
	})
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("unknown activity err = %v", err)
	}
}

func TestExecuteStartTravelUsesDestinationTable(t *testing.T) {
	store := memory.NewStore()
	store.SeedState(seedSnapshot(fixedNow()))
	uc := newTestUseCase(store, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-1",
		Intent:         Intent{Type: IntentStartTravel, Destination: "cavern"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	act := resp.State.Creature.Activity
	if act.Kind != pet.ActivityTraveling || act.Destination != "cavern" || act.TicksLeft != 80 {
		t.Fatalf("activity = %+v", act)
	}

	_, err = uc.Execute(context.Background(), Request{
		OwnerID:        "owner-1",
		IdempotencyKey: "key-2",
		Intent:         Intent{Type: IntentStartTravel, Destination: "atlantis"},
	})
	if !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("unknown location err = %v", err)
	}
}

func TestExecuteValidatesRequestShape(t *testing.T) {
	uc := newTestUseCase(memory.NewStore(), &fakeMetrics{})
	cases := []Request{
		{OwnerID: "", IdempotencyKey: "k", Intent: Intent{Type: IntentPlay}},
		{OwnerID: "o", IdempotencyKey: "", Intent: Intent{Type: IntentPlay}},
		{OwnerID: "o", IdempotencyKey: "k", Intent: Intent{Type: "juggle"}},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}
