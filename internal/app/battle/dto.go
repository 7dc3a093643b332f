package battle

import (
	"petverse/internal/app/ports"
	battledom "petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
)

type StartRequest struct {
	OwnerID string `json:"owner_id"`
}

type StartResponse struct {
	Battle battledom.Battle `json:"battle"`
	State  pet.PetSnapshot  `json:"state"`
}

type ActRequest struct {
	OwnerID string           `json:"owner_id"`
	Action  battledom.Action `json:"action"`
}

type ActResponse struct {
	Battle     battledom.Battle      `json:"battle"`
	TurnEvents []battledom.TurnEvent `json:"turn_events"`
	State      pet.PetSnapshot       `json:"state"`
	Events     []ports.EventRecord   `json:"events"`
}
