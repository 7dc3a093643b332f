package main

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	statictables "petverse/internal/adapter/tables/static"
	"petverse/internal/app/shared/settle"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"
)

func TestResolveWorldRoot_UsesEnv(t *testing.T) {
	t.Setenv("PETVERSE_WORLD_DIR", "/tmp/custom-world")
	if got := resolveWorldRoot(); got != "/tmp/custom-world" {
		t.Fatalf("resolveWorldRoot()=%q want %q", got, "/tmp/custom-world")
	}
}

func TestResolveWorldRoot_UsesLocalDirWhenPresent(t *testing.T) {
	t.Setenv("PETVERSE_WORLD_DIR", "")

	dir := t.TempDir()
	worldDir := filepath.Join(dir, "world")
	if err := os.MkdirAll(worldDir, 0o755); err != nil {
		t.Fatalf("mkdir world: %v", err)
	}
	if err := os.WriteFile(filepath.Join(worldDir, "locations.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write locations: %v", err)
	}

	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer func() {
		_ = os.Chdir(prevWD)
	}()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	if got := resolveWorldRoot(); got != "./world" {
		t.Fatalf("resolveWorldRoot()=%q want %q", got, "./world")
	}
}

func TestResolveWorldRoot_EmptyMeansBuiltIn(t *testing.T) {
	t.Setenv("PETVERSE_WORLD_DIR", "")

	dir := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer func() {
		_ = os.Chdir(prevWD)
	}()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	if got := resolveWorldRoot(); got != "" {
		t.Fatalf("resolveWorldRoot()=%q want empty", got)
	}
}

func TestIntEnv(t *testing.T) {
	t.Setenv("PETVERSE_TEST_INT", "42")
	if got := intEnv("PETVERSE_TEST_INT", 7); got != 42 {
		t.Fatalf("intEnv=%d want 42", got)
	}
	t.Setenv("PETVERSE_TEST_INT", "not-a-number")
	if got := intEnv("PETVERSE_TEST_INT", 7); got != 7 {
		t.Fatalf("intEnv=%d want fallback 7", got)
	}
	t.Setenv("PETVERSE_TEST_INT", "")
	if got := intEnv("PETVERSE_TEST_INT", 7); got != 7 {
		t.Fatalf("intEnv=%d want fallback 7", got)
	}
}

// Exercises the server rng from many goroutines through the settle path that
// rolls drops and encounters, the way request handlers and the catch-up sweep
// share it. Run with -race.
func TestServerRngSupportsConcurrentSettles(t *testing.T) {
	svc := settle.Service{
		Clock:  world.DefaultClock(),
		Tuning: pet.DefaultTuning(),
		Tables: statictables.NewProvider(),
		Rng:    newServerRng(),
	}
	t0 := time.Unix(1_700_000_000, 0)
	now := t0.Add(20 * world.DefaultTickDuration)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res, err := svc.SettleTo(foragingSnapshot("owner", t0), now)
				if err != nil {
					t.Errorf("settle: %v", err)
					return
				}
				if !res.State.Creature.Activity.Idle() {
					t.Errorf("activity not completed: %+v", res.State.Creature.Activity)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func foragingSnapshot(ownerID string, anchor time.Time) pet.PetSnapshot {
	tun := pet.DefaultTuning()
	return pet.PetSnapshot{
		OwnerID: ownerID,
		Creature: pet.Creature{
			Name:    "Mossy",
			Species: "thornrat",
			Stats: pet.DepletableStats{
				SatietyTicks:   tun.SatietyCapTicks,
				HydrationTicks: tun.HydrationCapTicks,
				HappinessTicks: tun.HappinessCapTicks,
			},
			Energy:    60,
			Life:      pet.NewbornLife,
			Health:    pet.HealthHealthy,
			PoopTicks: tun.PoopIntervalTicks,
			Battle: pet.StatBlock{
				Strength: 10, Endurance: 10, Agility: 10,
				Precision: 10, Fortitude: 10, Cunning: 10,
			},
			MoveIDs: []string{"tackle"},
			Activity: pet.OngoingActivity{
				Kind:          pet.ActivityExploring,
				LocationID:    "meadow",
				ActivityID:    "forage",
				DurationTicks: 10,
				TicksLeft:     10,
			},
		},
		LocationID: "meadow",
		LastTickAt: anchor,
		Version:    1,
	}
}

func TestNewbornSnapshotStartsHealthyAndAnchored(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newbornSnapshot("demo-owner", now)

	tun := pet.DefaultTuning()
	if s.Creature.Stats.SatietyTicks != tun.SatietyCapTicks {
		t.Fatalf("expected full satiety, got %d", s.Creature.Stats.SatietyTicks)
	}
	if s.Creature.Life != pet.NewbornLife || s.Creature.Energy != pet.EnergyMax {
		t.Fatalf("unexpected vitals: life=%d energy=%d", s.Creature.Life, s.Creature.Energy)
	}
	if !s.LastTickAt.Equal(now) {
		t.Fatalf("expected anchor at seed time, got %v", s.LastTickAt)
	}
	if s.Version != 1 {
		t.Fatalf("expected version 1, got %d", s.Version)
	}
	if s.LocationID != "meadow" {
		t.Fatalf("expected meadow start, got %s", s.LocationID)
	}
}
