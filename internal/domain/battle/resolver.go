package battle

import (
	"errors"
	"math/rand"
	"sort"
)

var (
	ErrBattleOver         = errors.New("battle already decided")
	ErrInvalidAction      = errors.New("invalid battle action")
	ErrInsufficientEnergy = errors.New("not enough energy for move")
)

const (
	critDenominator  = 16
	fleeChance       = 0.5
	maxActiveEffects = 3
)

// Resolver advances battles one full turn at a time. All randomness flows
// through the injected source so identical seeds replay identical turns.
type Resolver struct {
	rng *rand.Rand
}

func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// PlayTurn resolves one turn: the player's chosen action plus the opponent's
// move, ordered by priority descending, then effective speed descending,
// then player first. End-of-turn effect damage and expiry apply only while
// the battle is still undecided.
func (r *Resolver) PlayTurn(b Battle, action Action) (Battle, []TurnEvent, error) {
	if b.Over() {
		return b, nil, ErrBattleOver
	}

	// The input battle stays the caller's; effect slices are the only shared
	// backing arrays, so detach them before any in-place turn processing.
	b.Player.Effects = cloneEffects(b.Player.Effects)
	b.Opponent.Effects = cloneEffects(b.Opponent.Effects)

	var events []TurnEvent

	if action.Kind == ActionFlee {
		if r.rng.Float64() < fleeChance {
			b.Outcome = OutcomeFled
			b.Turn++
			events = append(events, TurnEvent{Kind: "fled", Actor: b.Player.ID})
			return b, events, nil
		}
		// Failed escape consumes the player's action; the opponent still acts.
		events = append(events, TurnEvent{Kind: "flee_failed", Actor: b.Player.ID})
	}

	type queued struct {
		player bool
		move   Move
	}
	var queue []queued

	if action.Kind == ActionMove {
		if action.MoveIndex < 0 || action.MoveIndex >= len(b.Player.Moves) {
			return b, nil, ErrInvalidAction
		}
		move := b.Player.Moves[action.MoveIndex]
		if b.Player.Energy < move.EnergyCost {
			return b, nil, ErrInsufficientEnergy
		}
		queue = append(queue, queued{player: true, move: move})
	} else if action.Kind != ActionFlee {
		return b, nil, ErrInvalidAction
	}
	queue = append(queue, queued{player: false, move: r.chooseOpponentMove(b.Opponent)})

	sort.SliceStable(queue, func(i, j int) bool {
		qi, qj := queue[i], queue[j]
		if qi.move.Priority != qj.move.Priority {
			return qi.move.Priority > qj.move.Priority
		}
		si, sj := r.speedOf(b, qi.player), r.speedOf(b, qj.player)
		if si != sj {
			return si > sj
		}
		return qi.player
	})

	for _, q := range queue {
		if b.Over() {
			break
		}
		attacker, defender := r.pair(&b, q.player)
		if attacker.Fainted() {
			continue
		}
		events = r.executeMove(&b, attacker, defender, q.move, events)
	}

	if !b.Over() {
		events = r.endTurn(&b, events)
	}
	b.Turn++
	return b, events, nil
}

func (r *Resolver) pair(b *Battle, player bool) (attacker, defender *Combatant) {
	if player {
		return &b.Player, &b.Opponent
	}
	return &b.Opponent, &b.Player
}

func (r *Resolver) speedOf(b Battle, player bool) int {
	if player {
		return b.Player.effectiveSpeed()
	}
	return b.Opponent.effectiveSpeed()
}

// chooseOpponentMove draws uniformly from the moves the opponent can still
// afford, falling back to struggle.
func (r *Resolver) chooseOpponentMove(c Combatant) Move {
	affordable := make([]Move, 0, len(c.Moves))
	for _, m := range c.Moves {
		if c.Energy >= m.EnergyCost {
			affordable = append(affordable, m)
		}
	}
	if len(affordable) == 0 {
		return struggleMove
	}
	return affordable[r.rng.Intn(len(affordable))]
}

func (r *Resolver) executeMove(b *Battle, attacker, defender *Combatant, move Move, events []TurnEvent) []TurnEvent {
	attacker.Energy -= move.EnergyCost
	if attacker.Energy < 0 {
		attacker.Energy = 0
	}

	if r.rng.Float64() >= r.hitChance(*attacker, *defender, move) {
		return append(events, TurnEvent{Kind: "move_missed", Actor: attacker.ID, Target: defender.ID, Move: move.ID})
	}

	dmg := 0
	crit := false
	if move.Power > 0 {
		dmg = move.Power*attacker.effectiveAttack()/defender.effectiveDefense()/2 + 2
		if r.rollCrit() {
			dmg = dmg * 3 / 2
			crit = true
		}
		defender.HP -= dmg
		if defender.HP < 0 {
			defender.HP = 0
		}
	}
	events = append(events, TurnEvent{Kind: "move_hit", Actor: attacker.ID, Target: defender.ID, Move: move.ID, Damage: dmg, Critical: crit})

	if defender.Fainted() {
		events = append(events, TurnEvent{Kind: "fainted", Actor: defender.ID})
		if defender.PlayerOwned {
			b.Outcome = OutcomeOpponentWon
		} else {
			b.Outcome = OutcomePlayerWon
		}
		return events
	}

	for _, fx := range move.Effects {
		if len(defender.Effects) >= maxActiveEffects {
			break
		}
		if fx.Probability < 1 && r.rng.Float64() >= fx.Probability {
			continue
		}
		def, ok := effectDefs[fx.Kind]
		if !ok {
			continue
		}
		defender.Effects = append(defender.Effects, def)
		events = append(events, TurnEvent{Kind: "effect_applied", Actor: attacker.ID, Target: defender.ID, Effect: string(fx.Kind)})
	}
	return events
}

// hitChance scales the move's base accuracy by the accuracy-vs-evasion
// matchup; an even matchup leaves the base unchanged.
func (r *Resolver) hitChance(attacker, defender Combatant, move Move) float64 {
	acc := float64(maxInt(attacker.Stats.Accuracy(), 1))
	eva := float64(maxInt(defender.Stats.Evasion(), 1))
	chance := move.Accuracy * (2 * acc / (acc + eva))
	if chance > 1 {
		chance = 1
	}
	if chance < 0.1 {
		chance = 0.1
	}
	return chance
}

func (r *Resolver) rollCrit() bool {
	return r.rng.Intn(critDenominator) == 0
}

// endTurn applies residual effect damage to the player first, then the
// opponent, then ages effects. A faint during residual damage decides the
// battle immediately.
func (r *Resolver) endTurn(b *Battle, events []TurnEvent) []TurnEvent {
	for _, c := range []*Combatant{&b.Player, &b.Opponent} {
		if b.Over() || c.Fainted() {
			continue
		}
		for _, e := range c.Effects {
			if e.TickDamage <= 0 {
				continue
			}
			c.HP -= e.TickDamage
			if c.HP < 0 {
				c.HP = 0
			}
			events = append(events, TurnEvent{Kind: "effect_damage", Target: c.ID, Effect: string(e.Kind), Damage: e.TickDamage})
			if c.Fainted() {
				events = append(events, TurnEvent{Kind: "fainted", Actor: c.ID})
				if c.PlayerOwned {
					b.Outcome = OutcomeOpponentWon
				} else {
					b.Outcome = OutcomePlayerWon
				}
				break
			}
		}
	}

	for _, c := range []*Combatant{&b.Player, &b.Opponent} {
		kept := make([]StatusEffect, 0, len(c.Effects))
		for _, e := range c.Effects {
			e.TurnsLeft--
			if e.TurnsLeft > 0 {
				kept = append(kept, e)
				continue
			}
			events = append(events, TurnEvent{Kind: "effect_expired", Target: c.ID, Effect: string(e.Kind)})
		}
		c.Effects = kept
	}
	return events
}

func cloneEffects(effects []StatusEffect) []StatusEffect {
	if len(effects) == 0 {
		return effects
	}
	out := make([]StatusEffect, len(effects))
	copy(out, effects)
	return out
}
