package settle

import (
	"math/rand"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"
)

// Service applies offline catch-up to a snapshot and converts the resulting
// tick-offset events into timestamped records. Activity completions are
// enriched here: drop-table rewards are rolled and granted, and the
// activity's encounter chance is evaluated so the caller can offer a battle.
//
// Every write path settles through this service before applying its own
// mutation, so stored state is always current to the moment of the write.
type Service struct {
	Clock   world.TickClock
	Tuning  pet.Tuning
	Tables  ports.WorldTables
	Rng     *rand.Rand
	Catchup pet.CatchupService
}

type Result struct {
	State          pet.PetSnapshot
	Events         []ports.EventRecord
	ProcessedTicks int64
	DroppedTicks   int64
}

// SettleTo advances the snapshot to now. The last-tick anchor always moves by
// the full elapsed whole ticks; ticks beyond the catch-up cap are dropped,
// never deferred, so a long-dormant pet does not replay weeks of simulation
// across subsequent calls.
func (s Service) SettleTo(snap pet.PetSnapshot, now time.Time) (Result, error) {
	anchor := snap.LastTickAt
	if anchor.IsZero() {
		// Unanchored snapshots start their timeline at the first settle.
		anchor = now
	}
	elapsed := s.Clock.TicksBetween(anchor, now)
	capped := s.Clock.Cap(elapsed)

	res, err := s.Catchup.CatchUp(snap, capped, s.Tuning)
	if err != nil {
		return Result{}, err
	}

	state := res.UpdatedState
	state.LastTickAt = anchor.Add(time.Duration(elapsed) * s.Clock.TickDuration)
	state.UpdatedAt = now

	records := make([]ports.EventRecord, 0, len(res.Events))
	for _, evt := range res.Events {
		rec := ports.EventRecord{
			Type:       evt.Type,
			OccurredAt: anchor.Add(time.Duration(evt.Tick) * s.Clock.TickDuration),
			Payload:    clonePayload(evt.Payload),
		}
		if evt.Type == pet.EventActivityCompleted {
			var rewards []ports.EventRecord
			state, rec, rewards = s.grantActivityRewards(state, rec)
			records = append(records, rec)
			records = append(records, rewards...)
			continue
		}
		records = append(records, rec)
	}

	return Result{
		State:          state,
		Events:         records,
		ProcessedTicks: res.ProcessedTicks,
		DroppedTicks:   elapsed - capped,
	}, nil
}

// grantActivityRewards rolls the completed activity's drop table into the
// inventory and emits one item_obtained record per distinct item. When the
// activity carries an encounter chance and the roll triggers, the completion
// record is annotated so the client can start the battle.
func (s Service) grantActivityRewards(state pet.PetSnapshot, rec ports.EventRecord) (pet.PetSnapshot, ports.EventRecord, []ports.EventRecord) {
	if s.Tables == nil {
		return state, rec, nil
	}
	locID, _ := rec.Payload["location_id"].(string)
	actID, _ := rec.Payload["activity_id"].(string)
	loc, ok := s.Tables.Location(locID)
	if !ok {
		return state, rec, nil
	}
	activity, ok := loc.Activity(actID)
	if !ok {
		return state, rec, nil
	}

	var rewards []ports.EventRecord
	if table, ok := s.Tables.DropTable(activity.DropTableID); ok {
		for _, drop := range world.RollDrops(s.Rng, table) {
			state = state.WithItem(drop.ItemID, drop.Count)
			rewards = append(rewards, ports.EventRecord{
				Type:       pet.EventItemObtained,
				OccurredAt: rec.OccurredAt,
				Payload: map[string]any{
					"item_id":     drop.ItemID,
					"count":       drop.Count,
					"location_id": locID,
					"activity_id": actID,
				},
			})
		}
	}

	if activity.EncounterChance > 0 {
		c := state.Creature
		approx := world.ApproximateLevel(
			c.Battle.Strength, c.Battle.Endurance, c.Battle.Agility,
			c.Battle.Precision, c.Battle.Fortitude, c.Battle.Cunning,
		)
		resolver := world.NewEncounterResolver(s.Rng)
		if out := resolver.Roll(loc, approx, c.Stage, actID, activity.EncounterChance); out.Triggered {
			rec.Payload = clonePayload(rec.Payload)
			rec.Payload["encounter_species"] = out.Species
			rec.Payload["encounter_level"] = out.Level
		}
	}
	return state, rec, rewards
}

func clonePayload(p map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
