package pet

// StepOnce advances a snapshot by exactly one tick. The catch-up processor
// must stay bit-identical to repeated application of this function; it is
// the reference semantics for one tick and the test oracle for CatchUp.
//
// Order inside a tick:
//  1. depletable stats decay
//  2. waste countdown, then (on later ticks) sickness countdown
//  3. life drain, death check
//  4. lifetime/growth
//  5. activity countdown and completion
//
// Death stops the tick: growth and activities do not advance on the tick
// the creature dies.
func StepOnce(s PetSnapshot, tun Tuning, tick int64) (PetSnapshot, []MajorEvent) {
	if s.Creature.Dead {
		return s, nil
	}
	c := s.Creature
	var events []MajorEvent

	c.Stats = c.Stats.Advance(1)

	if !c.NeedsCleaning {
		if c.PoopTicks > 0 {
			c.PoopTicks--
			if c.PoopTicks == 0 {
				c.NeedsCleaning = true
				c.SicknessTicks = tun.SicknessGraceTicks
				events = append(events, MajorEvent{Type: EventPetPooped, Tick: tick})
			}
		}
	} else if c.Health != HealthSick && c.SicknessTicks > 0 {
		c.SicknessTicks--
		if c.SicknessTicks == 0 {
			c.Health = HealthSick
			events = append(events, MajorEvent{Type: EventPetSick, Tick: tick})
		}
	}

	drain := tun.LifeDrainPerTick(c.Stats.EmptyCount(), c.Health == HealthSick)
	if drain >= c.Life {
		c.Life = 0
		c.Dead = true
		events = append(events, MajorEvent{Type: EventPetDied, Tick: tick})
		s.Creature = c
		return s, events
	}
	c.Life -= drain

	c.LifetimeTicks++
	s.TotalTicks++
	for c.Stage < len(tun.GrowthThresholds) && c.LifetimeTicks >= tun.GrowthThresholds[c.Stage] {
		c.Stage++
		events = append(events, MajorEvent{
			Type:    EventLevelUp,
			Tick:    tick,
			Payload: map[string]any{"stage": c.Stage},
		})
	}

	switch c.Activity.Kind {
	case ActivitySleeping:
		if c.Energy < EnergyMax {
			c.Energy += tun.SleepEnergyPerTick
			if c.Energy > EnergyMax {
				c.Energy = EnergyMax
			}
		}
		c.Activity.TicksLeft--
		if c.Activity.TicksLeft <= 0 || c.Energy >= EnergyMax {
			c.Activity = OngoingActivity{}
		}
	case ActivityTraveling:
		c.Activity.TicksLeft--
		if c.Activity.TicksLeft <= 0 {
			s.LocationID = c.Activity.Destination
			events = append(events, MajorEvent{
				Type:    EventLocationVisited,
				Tick:    tick,
				Payload: map[string]any{"location_id": c.Activity.Destination},
			})
			c.Activity = OngoingActivity{}
		}
	case ActivityExploring:
		c.Activity.TicksLeft--
		if c.Activity.TicksLeft <= 0 {
			events = append(events, MajorEvent{
				Type: EventActivityCompleted,
				Tick: tick,
				Payload: map[string]any{
					"location_id": c.Activity.LocationID,
					"activity_id": c.Activity.ActivityID,
				},
			})
			c.Activity = OngoingActivity{}
		}
	}

	s.Creature = c
	return s, events
}
