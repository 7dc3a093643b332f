package catchup

import (
	"petverse/internal/app/ports"
	"petverse/internal/app/shared/stateview"
	"petverse/internal/domain/pet"
)

type Request struct {
	OwnerID string
}

type Response struct {
	State          pet.PetSnapshot        `json:"state"`
	Creature       stateview.CreatureView `json:"creature"`
	Events         []ports.EventRecord    `json:"events"`
	ProcessedTicks int64                  `json:"processed_ticks"`
	DroppedTicks   int64                  `json:"dropped_ticks"`
}
