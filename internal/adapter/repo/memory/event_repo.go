package memory

import (
	"context"

	"petverse/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, ownerID string, events []ports.EventRecord) error {
	r.store.events[ownerID] = append(r.store.events[ownerID], events...)
	return nil
}

// ListByOwnerID returns the newest events first, capped at limit when
// positive.
func (r EventRepo) ListByOwnerID(_ context.Context, ownerID string, limit int) ([]ports.EventRecord, error) {
	stored := r.store.events[ownerID]
	out := make([]ports.EventRecord, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
