package memory

import (
	"context"
	"sort"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

type PetStateRepo struct {
	store *Store
}

func NewPetStateRepo(store *Store) PetStateRepo {
	return PetStateRepo{store: store}
}

func (r PetStateRepo) GetByOwnerID(_ context.Context, ownerID string) (pet.PetSnapshot, error) {
	state, ok := r.store.state[ownerID]
	if !ok {
		return pet.PetSnapshot{}, ports.ErrNotFound
	}
	return state, nil
}

func (r PetStateRepo) SaveWithVersion(_ context.Context, state pet.PetSnapshot, expectedVersion int64) error {
	current, ok := r.store.state[state.OwnerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.state[state.OwnerID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.state[state.OwnerID] = state
	return nil
}

func (r PetStateRepo) ListOwnerIDs(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(r.store.state))
	for id := range r.store.state {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
