package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	httpadapter "petverse/internal/adapter/http"
	metricsinmem "petverse/internal/adapter/metrics/inmemory"
	gormrepo "petverse/internal/adapter/repo/gorm"
	statictables "petverse/internal/adapter/tables/static"
	"petverse/internal/app/action"
	battleapp "petverse/internal/app/battle"
	"petverse/internal/app/catchup"
	"petverse/internal/app/ports"
	"petverse/internal/app/replay"
	"petverse/internal/app/shared/settle"
	"petverse/internal/app/status"
	battledom "petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const demoOwnerID = "demo-owner"

func main() {
	stateRepo, actionRepo, eventRepo, battleRepo, txManager := mustBuildRepos()
	tables := mustBuildWorldTables()
	kpiRecorder := metricsinmem.NewRecorder()

	clock := world.NewTickClock(
		time.Duration(intEnv("TICK_SECONDS", 15))*time.Second,
		int64(intEnv("MAX_CATCHUP_TICKS", world.DefaultMaxCatchupTicks)),
	)
	rng := newServerRng()
	settleSvc := settle.Service{
		Clock:  clock,
		Tuning: pet.DefaultTuning(),
		Tables: tables,
		Rng:    rng,
	}

	syncUC := catchup.UseCase{
		TxManager: txManager,
		StateRepo: stateRepo,
		EventRepo: eventRepo,
		Settle:    settleSvc,
		Metrics:   kpiRecorder,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		StatusUC: status.UseCase{StateRepo: stateRepo, Settle: settleSvc, Now: time.Now},
		SyncUC:   syncUC,
		ActionUC: action.UseCase{
			TxManager:  txManager,
			StateRepo:  stateRepo,
			ActionRepo: actionRepo,
			EventRepo:  eventRepo,
			Tables:     tables,
			Settle:     settleSvc,
			Metrics:    kpiRecorder,
			Now:        time.Now,
		},
		BattleUC: battleapp.UseCase{
			TxManager:  txManager,
			StateRepo:  stateRepo,
			BattleRepo: battleRepo,
			EventRepo:  eventRepo,
			Tables:     tables,
			Settle:     settleSvc,
			Encounters: world.NewEncounterResolver(rng),
			Resolver:   battledom.NewResolver(rng),
			Metrics:    kpiRecorder,
			Now:        time.Now,
		},
		ReplayUC: replay.UseCase{Events: eventRepo},
		KPI:      kpiRecorder,
	}

	if sweepSeconds := intEnv("CATCHUP_SWEEP_SECONDS", 60); sweepSeconds > 0 {
		scheduler := catchup.NewScheduler(syncUC, stateRepo, time.Duration(sweepSeconds)*time.Second, log.Default())
		scheduler.Start()
		defer scheduler.Stop()
	}

	addr := strings.TrimSpace(os.Getenv("PETVERSE_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("petverse server listening on %s (demo owner: %s)", addr, demoOwnerID)
	s.Spin()
}

func mustBuildRepos() (ports.PetStateRepository, ports.ActionExecutionRepository, ports.EventRepository, ports.BattleRepository, ports.TxManager) {
	dsn := os.Getenv("PETVERSE_DB_DSN")
	if dsn == "" {
		log.Fatal("PETVERSE_DB_DSN is required")
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	migrationsDir := strings.TrimSpace(os.Getenv("PETVERSE_MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = "./internal/adapter/repo/gorm/migrations"
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	stateRepo := gormrepo.NewPetStateRepo(db)
	_, err = stateRepo.GetByOwnerID(context.Background(), demoOwnerID)
	if err != nil && errors.Is(err, ports.ErrNotFound) {
		if saveErr := stateRepo.SaveWithVersion(context.Background(), newbornSnapshot(demoOwnerID, time.Now()), 0); saveErr != nil {
			log.Fatalf("seed demo owner: %v", saveErr)
		}
	} else if err != nil {
		log.Fatalf("load demo owner: %v", err)
	}

	return stateRepo, gormrepo.NewActionExecutionRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewBattleRepo(db), gormrepo.NewTxManager(db)
}

func mustBuildWorldTables() ports.WorldTables {
	root := resolveWorldRoot()
	if root == "" {
		return statictables.NewProvider()
	}
	tables, err := statictables.NewProviderFromDir(root)
	if err != nil {
		log.Fatalf("load world tables from %s: %v", root, err)
	}
	return tables
}

func resolveWorldRoot() string {
	if root := strings.TrimSpace(os.Getenv("PETVERSE_WORLD_DIR")); root != "" {
		return root
	}
	if _, err := os.Stat("./world/locations.json"); err == nil {
		return "./world"
	}
	return ""
}

func newbornSnapshot(ownerID string, now time.Time) pet.PetSnapshot {
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
			Energy:    pet.EnergyMax,
			Life:      pet.NewbornLife,
			Health:    pet.HealthHealthy,
			PoopTicks: tun.PoopIntervalTicks,
			Battle: pet.StatBlock{
				Strength: 10, Endurance: 10, Agility: 10,
				Precision: 10, Fortitude: 10, Cunning: 10,
			},
			MoveIDs: []string{"tackle", "quick_jab"},
		},
		Inventory:  map[string]int{"ration": 3, "water_flask": 2, "berry": 2},
		LocationID: "meadow",
		LastTickAt: now,
		Version:    1,
		UpdatedAt:  now,
	}
}

// lockedSource serializes draws so one seeded stream can be shared between
// the request goroutines and the catch-up sweep. A bare *rand.Rand is not
// safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

func newServerRng() *rand.Rand {
	src := rand.NewSource(time.Now().UnixNano()).(rand.Source64)
	return rand.New(&lockedSource{src: src})
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
