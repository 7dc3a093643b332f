package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/settle"
	"petverse/internal/app/shared/stateview"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase returns the owner's current view of the pet. The snapshot is
// settled in memory to the current wall clock but never persisted; status is
// a pure read and leaves the stored version untouched.
type UseCase struct {
	StateRepo ports.PetStateRepository
	Settle    settle.Service
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

	state, err := u.StateRepo.GetByOwnerID(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}

	res, err := u.Settle.SettleTo(state, nowFn())
	if err != nil {
		return Response{}, err
	}
	preview := res.State
	preview.Version = state.Version

	return Response{
		State:          preview,
		Creature:       stateview.DeriveCreatureView(preview.Creature, u.Settle.Tuning),
		PendingTicks:   res.ProcessedTicks,
		TickSeconds:    int64(u.Settle.Clock.TickDuration / time.Second),
		MaxCatchupTick: u.Settle.Clock.MaxCatchupTicks,
	}, nil
}
