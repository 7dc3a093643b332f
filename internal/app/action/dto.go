package action

import (
	"petverse/internal/app/ports"
	"petverse/internal/app/shared/stateview"
	"petverse/internal/domain/pet"
)

type IntentType string

const (
	IntentUseItem          IntentType = "use_item"
	IntentPlay             IntentType = "play"
	IntentClean            IntentType = "clean"
	IntentSleep            IntentType = "sleep"
	IntentWake             IntentType = "wake"
	IntentStartExploration IntentType = "start_exploration"
	IntentStartTravel      IntentType = "start_travel"
	IntentCancelActivity   IntentType = "cancel_activity"
)

// Intent is the owner's requested care or activity action. Only the fields
// relevant to the type are read.
type Intent struct {
	Type          IntentType `json:"type"`
	ItemID        string     `json:"item_id,omitempty"`
	ActivityID    string     `json:"activity_id,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	DurationTicks int64      `json:"duration_ticks,omitempty"`
}

type Request struct {
	OwnerID        string `json:"owner_id"`
	IdempotencyKey string `json:"idempotency_key"`
	Intent         Intent `json:"intent"`
}

type Response struct {
	State    pet.PetSnapshot        `json:"state"`
	Creature stateview.CreatureView `json:"creature"`
	Events   []ports.EventRecord    `json:"events"`
}
