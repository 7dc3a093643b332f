package status

import (
	"petverse/internal/app/shared/stateview"
	"petverse/internal/domain/pet"
)

type Request struct {
	OwnerID string
}

type Response struct {
	State          pet.PetSnapshot        `json:"state"`
	Creature       stateview.CreatureView `json:"creature"`
	PendingTicks   int64                  `json:"pending_ticks"`
	TickSeconds    int64                  `json:"tick_seconds"`
	MaxCatchupTick int64                  `json:"max_catchup_ticks"`
}
