package catchup

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/settle"
	"petverse/internal/app/shared/stateview"
)

var ErrInvalidRequest = errors.New("invalid sync request")

// UseCase settles a pet to the current wall clock and persists the result.
// It is the explicit sync path; the same settle service also runs implicitly
// in front of every action.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PetStateRepository
	EventRepo ports.EventRepository
	Settle    settle.Service
	Metrics   ports.ActionMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			return err
		}

		res, err := u.Settle.SettleTo(state, nowFn())
		if err != nil {
			return err
		}

		if res.ProcessedTicks > 0 {
			next := res.State
			next.Version = state.Version + 1
			if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
				return err
			}
			if err := u.EventRepo.Append(txCtx, req.OwnerID, res.Events); err != nil {
				return err
			}
			res.State = next
		}

		out = Response{
			State:          res.State,
			Creature:       stateview.DeriveCreatureView(res.State.Creature, u.Settle.Tuning),
			Events:         res.Events,
			ProcessedTicks: res.ProcessedTicks,
			DroppedTicks:   res.DroppedTicks,
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
		u.Metrics.RecordSuccess("sync")
	}
	return out, nil
}
