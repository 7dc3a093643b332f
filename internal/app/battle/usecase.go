package battle

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/app/shared/settle"
	battledom "petverse/internal/domain/battle"
	"petverse/internal/domain/pet"
	"petverse/internal/domain/world"
)

var (
	ErrInvalidRequest   = errors.New("invalid battle request")
	ErrUnknownLocation  = errors.New("unknown location")
	ErrNoEncounter      = errors.New("no encounter found")
	ErrBattleInProgress = errors.New("battle already in progress")
)

// coinsPerLevel scales the victory purse by the defeated opponent's level.
const coinsPerLevel = 5

// UseCase runs the battle session lifecycle. A battle is a persisted side
// structure keyed by owner; the creature snapshot only records that it is
// occupied, and rejoins the regular simulation when the session ends.
type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.PetStateRepository
	BattleRepo ports.BattleRepository
	EventRepo  ports.EventRepository
	Tables     ports.WorldTables
	Settle     settle.Service
	Encounters *world.EncounterResolver
	Resolver   *battledom.Resolver
	Metrics    ports.ActionMetrics
	Now        func() time.Time
}

// Start settles the pet, rolls an encounter at its current location and
// opens the session. The creature must be idle and alive.
func (u UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return StartResponse{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out StartResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.BattleRepo.GetByOwnerID(txCtx, req.OwnerID); err == nil {
			return ErrBattleInProgress
		} else if !errors.Is(err, ports.ErrNotFound) {
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
		next := settled.State

		if next.Creature.Dead {
			return pet.ErrCreatureDead
		}
		if !next.Creature.Activity.Idle() {
			return pet.ErrBusy
		}

		loc, ok := u.Tables.Location(next.LocationID)
		if !ok {
			return ErrUnknownLocation
		}

		c := next.Creature
		approx := world.ApproximateLevel(
			c.Battle.Strength, c.Battle.Endurance, c.Battle.Agility,
			c.Battle.Precision, c.Battle.Fortitude, c.Battle.Cunning,
		)
		outcome := u.Encounters.Roll(loc, approx, c.Stage, "", 1.0)
		if !outcome.Triggered {
			return ErrNoEncounter
		}
		opponent, ok := battledom.NewWildCombatant(outcome.Species, outcome.Level)
		if !ok {
			return ErrNoEncounter
		}

		player := battledom.NewCombatant(
			next.OwnerID, c.Name, true, approx, c.Energy,
			toBattleStats(c.Battle), c.MoveIDs,
		)
		b := battledom.NewBattle(player, opponent)
		if err := u.BattleRepo.Save(txCtx, req.OwnerID, b); err != nil {
			return err
		}

		next.Creature.Activity = pet.OngoingActivity{Kind: pet.ActivityInBattle}
		next.Version = state.Version + 1
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		if err := u.EventRepo.Append(txCtx, req.OwnerID, settled.Events); err != nil {
			return err
		}

		out = StartResponse{Battle: b, State: next}
		return nil
	})
	if err != nil {
		u.recordError(err)
		return StartResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("battle_start")
	}
	return out, nil
}

// Act plays one turn of the open session. A decided session is closed here:
// victory pays out coins and spoils, defeat leaves the creature injured, and
// a successful flight simply releases it.
func (u UseCase) Act(ctx context.Context, req ActRequest) (ActResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return ActResponse{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out ActResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := u.BattleRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			return err
		}

		state, err := u.StateRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			return err
		}
		now := nowFn()
		settled, err := u.Settle.SettleTo(state, now)
		if err != nil {
			return err
		}
		next := settled.State

		played, turnEvents, err := u.Resolver.PlayTurn(b, req.Action)
		if err != nil {
			return err
		}

		// Energy spent on moves comes off the creature itself.
		next.Creature.Energy = played.Player.Energy

		records := settled.Events
		if played.Over() {
			if err := u.BattleRepo.Delete(txCtx, req.OwnerID); err != nil {
				return err
			}
			next.Creature.Activity = pet.OngoingActivity{}
			switch played.Outcome {
			case battledom.OutcomePlayerWon:
				next, records = u.grantVictory(next, played, records, now)
			case battledom.OutcomeOpponentWon:
				if next.Creature.Health == pet.HealthHealthy {
					next.Creature.Health = pet.HealthInjured
				}
			}
		} else {
			if err := u.BattleRepo.Save(txCtx, req.OwnerID, played); err != nil {
				return err
			}
		}

		next.Version = state.Version + 1
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		if err := u.EventRepo.Append(txCtx, req.OwnerID, records); err != nil {
			return err
		}

		out = ActResponse{Battle: played, TurnEvents: turnEvents, State: next, Events: records}
		return nil
	})
	if err != nil {
		u.recordError(err)
		return ActResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("battle_act")
	}
	return out, nil
}

// grantVictory pays the coin purse, rolls the species' spoils table when one
// exists and records the battle_won event.
func (u UseCase) grantVictory(state pet.PetSnapshot, b battledom.Battle, records []ports.EventRecord, now time.Time) (pet.PetSnapshot, []ports.EventRecord) {
	coins := coinsPerLevel * b.Opponent.Level
	state.Coins += coins

	records = append(records, ports.EventRecord{
		Type:       pet.EventBattleWon,
		OccurredAt: now,
		Payload: map[string]any{
			"opponent": b.Opponent.Name,
			"level":    b.Opponent.Level,
			"coins":    coins,
			"turns":    b.Turn,
		},
	})

	species := strings.TrimPrefix(b.Opponent.ID, "wild-")
	if table, ok := u.Tables.DropTable("spoils_" + species); ok {
		for _, drop := range world.RollDrops(u.Settle.Rng, table) {
			state = state.WithItem(drop.ItemID, drop.Count)
			records = append(records, ports.EventRecord{
				Type:       pet.EventItemObtained,
				OccurredAt: now,
				Payload:    map[string]any{"item_id": drop.ItemID, "count": drop.Count, "source": "battle"},
			})
		}
	}
	return state, records
}

func (u UseCase) recordError(err error) {
	if u.Metrics == nil {
		return
	}
	if errors.Is(err, ports.ErrConflict) {
		u.Metrics.RecordConflict()
		return
	}
	u.Metrics.RecordFailure()
}

func toBattleStats(s pet.StatBlock) battledom.StatBlock {
	return battledom.StatBlock{
		Strength:  s.Strength,
		Endurance: s.Endurance,
		Agility:   s.Agility,
		Precision: s.Precision,
		Fortitude: s.Fortitude,
		Cunning:   s.Cunning,
	}
}
