package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"

	"gorm.io/gorm"
)

type PetStateRepo struct {
	db *gorm.DB
}

func NewPetStateRepo(db *gorm.DB) PetStateRepo {
	return PetStateRepo{db: db}
}

func (r PetStateRepo) GetByOwnerID(ctx context.Context, ownerID string) (pet.PetSnapshot, error) {
	var m model.PetState
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.PetSnapshot{}, ports.ErrNotFound
		}
		return pet.PetSnapshot{}, err
	}
	var snap pet.PetSnapshot
	if err := json.Unmarshal(m.Snapshot, &snap); err != nil {
		return pet.PetSnapshot{}, fmt.Errorf("decode pet state %s: %w", ownerID, err)
	}
	snap.OwnerID = m.OwnerID
	snap.Version = m.Version
	return snap, nil
}

func (r PetStateRepo) SaveWithVersion(ctx context.Context, state pet.PetSnapshot, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode pet state %s: %w", state.OwnerID, err)
	}

	if expectedVersion == 0 {
		m := model.PetState{
			OwnerID:   state.OwnerID,
			Snapshot:  b,
			Version:   state.Version,
			UpdatedAt: state.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.PetState{}).
		Where("owner_id = ? AND version = ?", state.OwnerID, expectedVersion).
		Updates(map[string]any{
			"snapshot":   b,
			"version":    state.Version,
			"updated_at": state.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PetStateRepo) ListOwnerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := getDBFromCtx(ctx, r.db).
		Model(&model.PetState{}).
		Order("owner_id").
		Pluck("owner_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
