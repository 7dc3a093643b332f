package memory

import (
	"sync"

	"petverse/internal/app/ports"
	"petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
)

// Store backs the in-memory repositories used by tests and local runs. The
// single mutex doubles as the transaction boundary, see TxManager.
type Store struct {
	mu        sync.Mutex
	state     map[string]pet.PetSnapshot
	battles   map[string]battle.Battle
	execution map[string]ports.ActionExecutionRecord
	events    map[string][]ports.EventRecord
}

func NewStore() *Store {
	return &Store{
		state:     make(map[string]pet.PetSnapshot),
		battles:   make(map[string]battle.Battle),
		execution: make(map[string]ports.ActionExecutionRecord),
		events:    make(map[string][]ports.EventRecord),
	}
}

func execKey(ownerID, key string) string {
	return ownerID + "::" + key
}

func (s *Store) SeedState(state pet.PetSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.OwnerID] = state
}
