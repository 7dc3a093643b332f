package replay

import (
	"context"
	"errors"
	"strings"

	"petverse/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

// UseCase returns the owner's event history, newest first, optionally
// windowed by unix timestamps. The per-type counts let quest and progression
// consumers check thresholds without walking the list again.
type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByOwnerID(ctx, req.OwnerID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)

	counts := make(map[string]int, 8)
	for _, evt := range events {
		counts[evt.Type]++
	}
	return Response{Events: events, Counts: counts}, nil
}

func filterByTimeWindow(events []ports.EventRecord, from, to int64) []ports.EventRecord {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]ports.EventRecord, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}
