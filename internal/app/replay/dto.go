package replay

import "petverse/internal/app/ports"

type Request struct {
	OwnerID      string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events []ports.EventRecord `json:"events"`
	Counts map[string]int      `json:"counts"`
}
