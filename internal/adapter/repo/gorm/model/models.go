package model

import "time"

// PetState stores the full versioned snapshot as a jsonb document. The
// version column is duplicated out of the document so optimistic locking can
// run as a plain UPDATE ... WHERE version = ?.
type PetState struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	Snapshot  []byte    `gorm:"column:snapshot;type:jsonb;not null"`
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PetState) TableName() string { return "pet_states" }

type DomainEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID    string    `gorm:"column:owner_id;index"`
	Type       string    `gorm:"column:type"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }

// BattleState holds the single open battle session per owner.
type BattleState struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	Battle    []byte    `gorm:"column:battle;type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (BattleState) TableName() string { return "battle_states" }

type ActionExecution struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID        string    `gorm:"column:owner_id;uniqueIndex:idx_owner_idem"`
	IdempotencyKey string    `gorm:"column:idempotency_key;uniqueIndex:idx_owner_idem"`
	IntentType     string    `gorm:"column:intent_type"`
	UpdatedState   []byte    `gorm:"column:updated_state;type:jsonb"`
	Events         []byte    `gorm:"column:events;type:jsonb"`
	AppliedAt      time.Time `gorm:"column:applied_at"`
}

func (ActionExecution) TableName() string { return "action_executions" }
