package ports

import (
	"context"
	"time"

	"petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"
)

// EventRecord is a persisted major event. OccurredAt is the wall-clock time
// of the tick that produced the event, not the time it was stored.
type EventRecord struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type ActionResult struct {
	UpdatedState pet.PetSnapshot
	Events       []EventRecord
}

type ActionExecutionRecord struct {
	OwnerID        string
	IdempotencyKey string
	IntentType     string
	Result         ActionResult
	AppliedAt      time.Time
}

type PetStateRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (pet.PetSnapshot, error)
	SaveWithVersion(ctx context.Context, state pet.PetSnapshot, expectedVersion int64) error
	ListOwnerIDs(ctx context.Context) ([]string, error)
}

type EventRepository interface {
	Append(ctx context.Context, ownerID string, events []EventRecord) error
	ListByOwnerID(ctx context.Context, ownerID string, limit int) ([]EventRecord, error)
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, ownerID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

// BattleRepository holds at most one open battle per owner.
type BattleRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (battle.Battle, error)
	Save(ctx context.Context, ownerID string, b battle.Battle) error
	Delete(ctx context.Context, ownerID string) error
}

// WorldTables is the read-only static world content: locations with their
// encounter tables and activities, plus the drop tables they reference.
type WorldTables interface {
	Location(id string) (world.Location, bool)
	DropTable(id string) (world.DropTable, bool)
	Locations() []world.Location
}
