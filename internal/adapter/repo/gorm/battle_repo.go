package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/battle"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BattleRepo struct {
	db *gorm.DB
}

func NewBattleRepo(db *gorm.DB) BattleRepo {
	return BattleRepo{db: db}
}

func (r BattleRepo) GetByOwnerID(ctx context.Context, ownerID string) (battle.Battle, error) {
	var m model.BattleState
	if err := getDBFromCtx(ctx, r.db).Where("owner_id = ?", ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return battle.Battle{}, ports.ErrNotFound
		}
		return battle.Battle{}, err
	}
	var b battle.Battle
	if err := json.Unmarshal(m.Battle, &b); err != nil {
		return battle.Battle{}, fmt.Errorf("decode battle %s: %w", ownerID, err)
	}
	return b, nil
}

func (r BattleRepo) Save(ctx context.Context, ownerID string, b battle.Battle) error {
	blob, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode battle %s: %w", ownerID, err)
	}
	m := model.BattleState{OwnerID: ownerID, Battle: blob, UpdatedAt: time.Now()}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"battle", "updated_at"}),
		}).
		Create(&m).Error
}

func (r BattleRepo) Delete(ctx context.Context, ownerID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Delete(&model.BattleState{}).Error
}
