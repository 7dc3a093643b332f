package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("PETVERSE_DB_DSN")
	if dsn == "" {
		t.Skip("PETVERSE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestPetStateRepo_RoundTripAndConflict(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ownerID := "it-state-roundtrip"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM pet_states WHERE owner_id = ?", ownerID).Error

	repo := NewPetStateRepo(db)
	seed := pet.PetSnapshot{
		OwnerID: ownerID,
		Creature: pet.Creature{
			Name:    "Mossy",
			Species: "thornrat",
			Stats:   pet.DepletableStats{SatietyTicks: 800, HydrationTicks: 500, HappinessTicks: 1200},
			Energy:  80,
			Life:    1000,
			Health:  pet.HealthHealthy,
			Stage:   1,
			MoveIDs: []string{"tackle", "bite"},
		},
		Inventory:  map[string]int{"ration": 3, "berry": 1},
		Coins:      25,
		LocationID: "meadow",
		LastTickAt: time.Unix(1000, 0).UTC(),
		Version:    1,
		UpdatedAt:  time.Unix(1000, 0).UTC(),
	}
	if err := repo.SaveWithVersion(ctx, seed, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Creature.Name != "Mossy" || got.Creature.Species != "thornrat" {
		t.Fatalf("unexpected creature: %+v", got.Creature)
	}
	if got.Inventory["ration"] != 3 {
		t.Fatalf("expected ration=3, got %d", got.Inventory["ration"])
	}
	if got.Coins != 25 || got.LocationID != "meadow" {
		t.Fatalf("expected coins/location 25/meadow, got %d/%s", got.Coins, got.LocationID)
	}
	if got.Version != 1 {
		t.Fatalf("expected version 1, got %d", got.Version)
	}

	got.Coins = 30
	got.Version = 2
	if err := repo.SaveWithVersion(ctx, got, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	stale := got
	stale.Version = 3
	if err := repo.SaveWithVersion(ctx, stale, 1); err != ports.ErrConflict {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}

	ids, err := repo.ListOwnerIDs(ctx)
	if err != nil {
		t.Fatalf("list owner ids: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == ownerID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s in owner list, got %v", ownerID, ids)
	}
}

func TestEventRepo_AppendAndListByOwnerID(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-event-repo"
	_ = db.Exec("DELETE FROM domain_events WHERE owner_id = ?", ownerID).Error

	repo := NewEventRepo(db)
	if err := repo.Append(ctx, ownerID, []ports.EventRecord{
		{Type: "pet_pooped", OccurredAt: time.Unix(100, 0), Payload: map[string]any{"count": float64(1)}},
		{Type: "item_obtained", OccurredAt: time.Unix(200, 0), Payload: map[string]any{"item": "berry"}},
	}); err != nil {
		t.Fatalf("append events: %v", err)
	}

	list, err := repo.ListByOwnerID(ctx, ownerID, 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(list) != 1 || list[0].Type != "item_obtained" {
		t.Fatalf("expected only latest event, got=%+v", list)
	}
	all, err := repo.ListByOwnerID(ctx, ownerID, 0)
	if err != nil {
		t.Fatalf("list all events: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	empty, err := repo.ListByOwnerID(ctx, ownerID+"-missing", 0)
	if err != nil {
		t.Fatalf("list missing owner: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty history, got %d events", len(empty))
	}
}

func TestActionExecutionRepo_SaveAndGetRoundTrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-action-exec"
	_ = db.Exec("DELETE FROM action_executions WHERE owner_id = ?", ownerID).Error

	repo := NewActionExecutionRepo(db)
	rec := ports.ActionExecutionRecord{
		OwnerID:        ownerID,
		IdempotencyKey: "key-1",
		IntentType:     "use_item",
		Result: ports.ActionResult{
			UpdatedState: pet.PetSnapshot{
				OwnerID:   ownerID,
				Creature:  pet.Creature{Name: "Mossy", Energy: 70},
				Inventory: map[string]int{"ration": 2},
				Version:   2,
			},
			Events: []ports.EventRecord{
				{Type: "item_obtained", OccurredAt: time.Unix(10, 0), Payload: map[string]any{"item": "ration"}},
			},
		},
		AppliedAt: time.Unix(20, 0),
	}
	if err := repo.SaveExecution(ctx, rec); err != nil {
		t.Fatalf("save execution: %v", err)
	}
	got, err := repo.GetByIdempotencyKey(ctx, ownerID, "key-1")
	if err != nil {
		t.Fatalf("get execution: %v", err)
	}
	if got.Result.UpdatedState.Version != 2 {
		t.Fatalf("expected version 2, got %d", got.Result.UpdatedState.Version)
	}
	if len(got.Result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got.Result.Events))
	}
	if _, err := repo.GetByIdempotencyKey(ctx, ownerID, "missing"); err != ports.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
}

func TestBattleRepo_SaveGetDeleteLifecycle(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-battle-repo"
	_ = db.Exec("DELETE FROM battle_states WHERE owner_id = ?", ownerID).Error

	repo := NewBattleRepo(db)
	if _, err := repo.GetByOwnerID(ctx, ownerID); err != ports.ErrNotFound {
		t.Fatalf("expected not found before save, got %v", err)
	}

	opponent, ok := battle.NewWildCombatant("thornrat", 4)
	if !ok {
		t.Fatalf("expected thornrat species")
	}
	player := battle.NewCombatant(ownerID, "Mossy", true, 5, 80, battle.StatBlock{
		Strength: 10, Agility: 10, Endurance: 10, Precision: 10, Cunning: 10, Fortitude: 10,
	}, []string{"tackle", "bite"})
	b := battle.NewBattle(player, opponent)
	b.Turn = 3
	if err := repo.Save(ctx, ownerID, b); err != nil {
		t.Fatalf("save battle: %v", err)
	}
	got, err := repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		t.Fatalf("get battle: %v", err)
	}
	if got.Turn != 3 || got.Opponent.Name != opponent.Name {
		t.Fatalf("unexpected battle: turn=%d opponent=%s", got.Turn, got.Opponent.Name)
	}

	got.Turn = 4
	if err := repo.Save(ctx, ownerID, got); err != nil {
		t.Fatalf("upsert battle: %v", err)
	}
	again, err := repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		t.Fatalf("get upserted battle: %v", err)
	}
	if again.Turn != 4 {
		t.Fatalf("expected turn 4 after upsert, got %d", again.Turn)
	}

	if err := repo.Delete(ctx, ownerID); err != nil {
		t.Fatalf("delete battle: %v", err)
	}
	if _, err := repo.GetByOwnerID(ctx, ownerID); err != ports.ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestTxManager_RunInTxCommitAndRollback(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-tx-manager"
	_ = db.Exec("DELETE FROM pet_states WHERE owner_id IN (?, ?)", ownerID, ownerID+"-rb").Error

	txManager := NewTxManager(db)
	stateRepo := NewPetStateRepo(db)

	commitErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return stateRepo.SaveWithVersion(txCtx, pet.PetSnapshot{
			OwnerID:  ownerID,
			Creature: pet.Creature{Name: "Mossy", Life: 1000},
			Version:  1,
		}, 0)
	})
	if commitErr != nil {
		t.Fatalf("commit tx failed: %v", commitErr)
	}
	if _, err := stateRepo.GetByOwnerID(ctx, ownerID); err != nil {
		t.Fatalf("expected committed state exists, got err=%v", err)
	}

	rollbackErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := stateRepo.SaveWithVersion(txCtx, pet.PetSnapshot{
			OwnerID:  ownerID + "-rb",
			Creature: pet.Creature{Name: "Mossy", Life: 1000},
			Version:  1,
		}, 0); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if rollbackErr == nil {
		t.Fatalf("expected rollback error")
	}
	if _, err := stateRepo.GetByOwnerID(ctx, ownerID+"-rb"); err != ports.ErrNotFound {
		t.Fatalf("expected rollback to remove state, got err=%v", err)
	}
}
