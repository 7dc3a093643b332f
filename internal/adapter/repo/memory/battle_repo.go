package memory

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/battle"
)

type BattleRepo struct {
	store *Store
}

func NewBattleRepo(store *Store) BattleRepo {
	return BattleRepo{store: store}
}

func (r BattleRepo) GetByOwnerID(_ context.Context, ownerID string) (battle.Battle, error) {
	b, ok := r.store.battles[ownerID]
	if !ok {
		return battle.Battle{}, ports.ErrNotFound
	}
	return b, nil
}

func (r BattleRepo) Save(_ context.Context, ownerID string, b battle.Battle) error {
	r.store.battles[ownerID] = b
	return nil
}

func (r BattleRepo) Delete(_ context.Context, ownerID string) error {
	delete(r.store.battles, ownerID)
	return nil
}
