package pet

import (
	"errors"
	"sort"
)

var ErrInvalidTickDelta = errors.New("invalid tick delta")

// CatchupService reconciles an elapsed tick count into the equivalent end
// state without iterating per tick. Cost is proportional to the number of
// phase transitions inside the window, never to the window length.
type CatchupService struct{}

// eventOrder mirrors the step order inside a single tick so that events
// from the same tick sort exactly as StepOnce would emit them.
var eventOrder = map[string]int{
	EventPetPooped:         1,
	EventPetSick:           2,
	EventPetDied:           3,
	EventLevelUp:           4,
	EventLocationVisited:   5,
	EventActivityCompleted: 5,
}

// CatchUp advances the snapshot by elapsedTicks. The result is bit-identical
// to applying StepOnce elapsedTicks times, including the ordered event list.
// elapsedTicks must already be capped by the caller; a negative value is a
// programmer error and rejected.
func (CatchupService) CatchUp(s PetSnapshot, elapsedTicks int64, tun Tuning) (CatchupResult, error) {
	if elapsedTicks < 0 {
		return CatchupResult{}, ErrInvalidTickDelta
	}
	if elapsedTicks == 0 || s.Creature.Dead {
		return CatchupResult{UpdatedState: s}, nil
	}

	c := s.Creature
	e := elapsedTicks
	var events []MajorEvent

	// Tick offsets (1-based) at which each depletable stat is empty during
	// the life-drain evaluation of that tick. A stat with t ticks remaining
	// is decremented to zero during tick t.
	emptyFrom := make([]int64, 0, 3)
	for _, t0 := range []int64{c.Stats.SatietyTicks, c.Stats.HydrationTicks, c.Stats.HappinessTicks} {
		from := t0
		if from < 1 {
			from = 1
		}
		emptyFrom = append(emptyFrom, from)
	}

	// Offset at which the sick life-drain bonus starts applying, or 0 when
	// it never does inside this window. The sickness countdown only starts
	// ticking the tick after the waste counter expires.
	var sickFrom int64
	var poopAt int64
	switch {
	case c.Health == HealthSick:
		sickFrom = 1
	case c.NeedsCleaning && c.SicknessTicks > 0:
		sickFrom = c.SicknessTicks
	case !c.NeedsCleaning && c.PoopTicks > 0:
		poopAt = c.PoopTicks
		if tun.SicknessGraceTicks > 0 {
			sickFrom = poopAt + tun.SicknessGraceTicks
		}
	}

	// Phase walk over the life-drain rate, which is constant between
	// breakpoints. Death inside a phase resolves to an exact tick offset.
	breakpoints := map[int64]struct{}{1: {}}
	for _, from := range emptyFrom {
		if from <= e {
			breakpoints[from] = struct{}{}
		}
	}
	if sickFrom > 0 && sickFrom <= e {
		breakpoints[sickFrom] = struct{}{}
	}
	starts := make([]int64, 0, len(breakpoints))
	for b := range breakpoints {
		starts = append(starts, b)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	life := c.Life
	var deathAt int64
	for i, start := range starts {
		end := e
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		empty := 0
		for _, from := range emptyFrom {
			if from <= start {
				empty++
			}
		}
		sick := sickFrom > 0 && sickFrom <= start
		rate := tun.LifeDrainPerTick(empty, sick)
		if rate <= 0 {
			continue
		}
		phaseLen := end - start + 1
		if life <= rate*phaseLen {
			ticksToDeath := maxInt64(ceilDiv(life, rate), 1)
			deathAt = start + ticksToDeath - 1
			life = 0
			break
		}
		life -= rate * phaseLen
	}

	// processed covers steps that run before the death check in the death
	// tick; post covers steps that run after it.
	processed := e
	post := e
	if deathAt > 0 {
		processed = deathAt
		post = deathAt - 1
		c.Dead = true
		events = append(events, MajorEvent{Type: EventPetDied, Tick: deathAt})
	}
	c.Life = life

	c.Stats = c.Stats.Advance(processed)

	// Waste and sickness countdowns, with zero crossings reported as events
	// even when the state has since moved on.
	if !c.NeedsCleaning {
		if c.PoopTicks > 0 {
			if poopAt > processed {
				c.PoopTicks -= processed
			} else {
				c.PoopTicks = 0
				c.NeedsCleaning = true
				events = append(events, MajorEvent{Type: EventPetPooped, Tick: poopAt})
				if c.Health != HealthSick && tun.SicknessGraceTicks > 0 {
					ticked := processed - poopAt
					if ticked >= tun.SicknessGraceTicks {
						c.SicknessTicks = 0
						c.Health = HealthSick
						events = append(events, MajorEvent{Type: EventPetSick, Tick: poopAt + tun.SicknessGraceTicks})
					} else {
						c.SicknessTicks = tun.SicknessGraceTicks - ticked
					}
				} else {
					c.SicknessTicks = tun.SicknessGraceTicks
				}
			}
		}
	} else if c.Health != HealthSick && c.SicknessTicks > 0 {
		if c.SicknessTicks > processed {
			c.SicknessTicks -= processed
		} else {
			sickAt := c.SicknessTicks
			c.SicknessTicks = 0
			c.Health = HealthSick
			events = append(events, MajorEvent{Type: EventPetSick, Tick: sickAt})
		}
	}

	// Growth stage thresholds are monotonic lifetime countdowns; each one
	// crossed inside the window is a major event at an exact offset.
	if post > 0 {
		startLifetime := c.LifetimeTicks
		c.LifetimeTicks += post
		s.TotalTicks += post
		for c.Stage < len(tun.GrowthThresholds) && tun.GrowthThresholds[c.Stage] <= c.LifetimeTicks {
			at := tun.GrowthThresholds[c.Stage] - startLifetime
			if at < 1 {
				at = 1
			}
			c.Stage++
			events = append(events, MajorEvent{
				Type:    EventLevelUp,
				Tick:    at,
				Payload: map[string]any{"stage": c.Stage},
			})
		}

		switch c.Activity.Kind {
		case ActivitySleeping:
			endAt := maxInt64(c.Activity.TicksLeft, 1)
			if tun.SleepEnergyPerTick > 0 {
				ticksToFull := maxInt64(ceilDiv(int64(EnergyMax-c.Energy), int64(tun.SleepEnergyPerTick)), 1)
				if ticksToFull < endAt {
					endAt = ticksToFull
				}
			}
			slept := post
			if endAt < slept {
				slept = endAt
			}
			c.Energy += tun.SleepEnergyPerTick * int(slept)
			if c.Energy > EnergyMax {
				c.Energy = EnergyMax
			}
			if endAt <= post {
				c.Activity = OngoingActivity{}
			} else {
				c.Activity.TicksLeft -= post
			}
		case ActivityTraveling:
			doneAt := maxInt64(c.Activity.TicksLeft, 1)
			if doneAt <= post {
				s.LocationID = c.Activity.Destination
				events = append(events, MajorEvent{
					Type:    EventLocationVisited,
					Tick:    doneAt,
					Payload: map[string]any{"location_id": c.Activity.Destination},
				})
				c.Activity = OngoingActivity{}
			} else {
				c.Activity.TicksLeft -= post
			}
		case ActivityExploring:
			doneAt := maxInt64(c.Activity.TicksLeft, 1)
			if doneAt <= post {
				events = append(events, MajorEvent{
					Type: EventActivityCompleted,
					Tick: doneAt,
					Payload: map[string]any{
						"location_id": c.Activity.LocationID,
						"activity_id": c.Activity.ActivityID,
					},
				})
				c.Activity = OngoingActivity{}
			} else {
				c.Activity.TicksLeft -= post
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		return eventOrder[events[i].Type] < eventOrder[events[j].Type]
	})

	s.Creature = c
	return CatchupResult{
		UpdatedState:   s,
		Events:         events,
		ProcessedTicks: processed,
	}, nil
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
