package action

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/settle"
	"petverse/internal/app/shared/stateview"
	"petverse/internal/domain/pet"
)

var (
	ErrInvalidRequest  = errors.New("invalid action request")
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownActivity = errors.New("unknown activity")
)

// UseCase executes one care or activity intent. The pet is settled to the
// current wall clock first, so the intent is validated against up-to-date
// state; both the settlement and the intent's mutation commit atomically.
// Replays of the same idempotency key return the recorded result.
type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.PetStateRepository
	ActionRepo ports.ActionExecutionRepository
	EventRepo  ports.EventRepository
	Tables     ports.WorldTables
	Settle     settle.Service
	Metrics    ports.ActionMetrics
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent.Type = IntentType(strings.TrimSpace(string(req.Intent.Type)))
	if req.OwnerID == "" || req.IdempotencyKey == "" || !isSupportedIntent(req.Intent.Type) {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.ActionRepo.GetByIdempotencyKey(txCtx, req.OwnerID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{
				State:    exec.Result.UpdatedState,
				Creature: stateview.DeriveCreatureView(exec.Result.UpdatedState.Creature, u.Settle.Tuning),
				Events:   exec.Result.Events,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		state, err := u.StateRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			return err
		}

		settled, err := u.Settle.SettleTo(state, nowFn())
		if err != nil {
			return err
		}

		next, err := u.applyIntent(settled.State, req.Intent)
		if err != nil {
			return err
		}

		next.Version = state.Version + 1
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}

		execution := ports.ActionExecutionRecord{
			OwnerID:        req.OwnerID,
			IdempotencyKey: req.IdempotencyKey,
			IntentType:     string(req.Intent.Type),
			Result: ports.ActionResult{
				UpdatedState: next,
				Events:       settled.Events,
			},
			AppliedAt: nowFn(),
		}
		if err := u.ActionRepo.SaveExecution(txCtx, execution); err != nil {
			return err
		}
		if err := u.EventRepo.Append(txCtx, req.OwnerID, settled.Events); err != nil {
			return err
		}

		out = Response{
			State:    next,
			Creature: stateview.DeriveCreatureView(next.Creature, u.Settle.Tuning),
			Events:   settled.Events,
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(string(req.Intent.Type))
	}
	return out, nil
}

func (u UseCase) applyIntent(state pet.PetSnapshot, intent Intent) (pet.PetSnapshot, error) {
	switch intent.Type {
	case IntentUseItem:
		return pet.UseItem(state, intent.ItemID, u.Settle.Tuning)
	case IntentPlay:
		return pet.Play(state, u.Settle.Tuning)
	case IntentClean:
		return pet.Clean(state, u.Settle.Tuning)
	case IntentSleep:
		return pet.Sleep(state, intent.DurationTicks)
	case IntentWake:
		return pet.Wake(state)
	case IntentStartExploration:
		loc, ok := u.Tables.Location(state.LocationID)
		if !ok {
			return state, ErrUnknownLocation
		}
		activity, ok := loc.Activity(intent.ActivityID)
		if !ok {
			return state, ErrUnknownActivity
		}
		return pet.StartExploration(state, pet.ExplorationParams{
			LocationID:     loc.ID,
			ActivityID:     activity.ID,
			DurationTicks:  activity.DurationTicks,
			EnergyCost:     activity.EnergyCost,
			MinStage:       activity.MinStage,
			RequiredQuests: activity.RequiredQuests,
		})
	case IntentStartTravel:
		dest, ok := u.Tables.Location(intent.Destination)
		if !ok {
			return state, ErrUnknownLocation
		}
		return pet.StartTravel(state, dest.ID, dest.TravelTicks, dest.TravelCost)
	case IntentCancelActivity:
		return pet.CancelActivity(state)
	default:
		return state, ErrInvalidRequest
	}
}

func isSupportedIntent(t IntentType) bool {
	switch t {
	case IntentUseItem, IntentPlay, IntentClean, IntentSleep, IntentWake:
		return true
	case IntentStartExploration, IntentStartTravel, IntentCancelActivity:
		return true
	default:
		return false
	}
}
