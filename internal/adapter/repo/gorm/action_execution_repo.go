package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"petverse/internal/adapter/repo/gorm/model"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, ownerID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ActionExecution{OwnerID: ownerID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &ports.ActionExecutionRecord{
		OwnerID:        m.OwnerID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result:         decodeResult(m),
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	stateJSON, _ := json.Marshal(execution.Result.UpdatedState)
	eventsJSON, _ := json.Marshal(execution.Result.Events)
	m := model.ActionExecution{
		OwnerID:        execution.OwnerID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		UpdatedState:   stateJSON,
		Events:         eventsJSON,
		AppliedAt:      execution.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func decodeResult(m model.ActionExecution) ports.ActionResult {
	var state pet.PetSnapshot
	var events []ports.EventRecord
	_ = json.Unmarshal(m.UpdatedState, &state)
	_ = json.Unmarshal(m.Events, &events)
	return ports.ActionResult{
		UpdatedState: state,
		Events:       events,
	}
}
