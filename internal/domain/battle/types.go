package battle

// StatBlock is the six-axis spread every combatant carries. Derived combat
// stats are computed from it, never stored.
type StatBlock struct {
	Strength  int `json:"strength"`
	Endurance int `json:"endurance"`
	Agility   int `json:"agility"`
	Precision int `json:"precision"`
	Fortitude int `json:"fortitude"`
	Cunning   int `json:"cunning"`
}

func (b StatBlock) Attack() int   { return b.Strength + b.Cunning/2 }
func (b StatBlock) Defense() int  { return b.Endurance + b.Fortitude/2 }
func (b StatBlock) Speed() int    { return b.Agility }
func (b StatBlock) Accuracy() int { return b.Precision }
func (b StatBlock) Evasion() int  { return b.Agility/2 + b.Cunning/4 }

type EffectKind string

const (
	EffectPoison EffectKind = "poison"
	EffectBurn   EffectKind = "burn"
	EffectDaze   EffectKind = "daze"
	EffectWeaken EffectKind = "weaken"
)

// StatusEffect is one active effect instance on a combatant. TurnsLeft
// decrements once per end-of-turn; the effect is removed at zero.
type StatusEffect struct {
	Kind       EffectKind `json:"kind"`
	TurnsLeft  int        `json:"turns_left"`
	TickDamage int        `json:"tick_damage,omitempty"`
	AttackMod  int        `json:"attack_mod,omitempty"`
	DefenseMod int        `json:"defense_mod,omitempty"`
	SpeedMod   int        `json:"speed_mod,omitempty"`
}

var effectDefs = map[EffectKind]StatusEffect{
	EffectPoison: {Kind: EffectPoison, TurnsLeft: 4, TickDamage: 3},
	EffectBurn:   {Kind: EffectBurn, TurnsLeft: 3, TickDamage: 2, AttackMod: -2},
	EffectDaze:   {Kind: EffectDaze, TurnsLeft: 2, SpeedMod: -4},
	EffectWeaken: {Kind: EffectWeaken, TurnsLeft: 3, DefenseMod: -3},
}

// MoveEffect is a chance to inflict one status effect on hit.
type MoveEffect struct {
	Kind        EffectKind `json:"kind"`
	Probability float64    `json:"probability"`
}

type Move struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Power      int          `json:"power"`
	Accuracy   float64      `json:"accuracy"`
	Priority   int          `json:"priority"`
	EnergyCost int          `json:"energy_cost"`
	Effects    []MoveEffect `json:"effects,omitempty"`
}

// struggleMove is the zero-cost fallback when a combatant can afford no
// listed move; battles can never stall for lack of energy.
var struggleMove = Move{ID: "struggle", Name: "Struggle", Power: 10, Accuracy: 1.0}

var moveDefs = map[string]Move{
	"tackle":     {ID: "tackle", Name: "Tackle", Power: 16, Accuracy: 0.95, EnergyCost: 2},
	"bite":       {ID: "bite", Name: "Bite", Power: 24, Accuracy: 0.85, EnergyCost: 4},
	"quick_jab":  {ID: "quick_jab", Name: "Quick Jab", Power: 12, Accuracy: 0.95, Priority: 1, EnergyCost: 3},
	"venom_spit": {ID: "venom_spit", Name: "Venom Spit", Power: 10, Accuracy: 0.9, EnergyCost: 5, Effects: []MoveEffect{{Kind: EffectPoison, Probability: 0.4}}},
	"ember":      {ID: "ember", Name: "Ember", Power: 18, Accuracy: 0.9, EnergyCost: 5, Effects: []MoveEffect{{Kind: EffectBurn, Probability: 0.25}}},
	"screech":    {ID: "screech", Name: "Screech", Power: 0, Accuracy: 1.0, EnergyCost: 3, Effects: []MoveEffect{{Kind: EffectWeaken, Probability: 1.0}}},
	"dust_whirl": {ID: "dust_whirl", Name: "Dust Whirl", Power: 8, Accuracy: 0.9, EnergyCost: 3, Effects: []MoveEffect{{Kind: EffectDaze, Probability: 0.3}}},
}

func MoveByID(id string) (Move, bool) {
	m, ok := moveDefs[id]
	return m, ok
}

// MovesByIDs resolves known move ids, falling back to struggle when none
// resolve.
func MovesByIDs(ids []string) []Move {
	out := make([]Move, 0, len(ids))
	for _, id := range ids {
		if m, ok := moveDefs[id]; ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = append(out, struggleMove)
	}
	return out
}

type Combatant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	PlayerOwned bool           `json:"player_owned"`
	Level       int            `json:"level"`
	MaxHP       int            `json:"max_hp"`
	HP          int            `json:"hp"`
	Energy      int            `json:"energy"`
	Stats       StatBlock      `json:"stats"`
	Moves       []Move         `json:"moves"`
	Effects     []StatusEffect `json:"effects,omitempty"`
}

func (c Combatant) Fainted() bool { return c.HP <= 0 }

func (c Combatant) effectiveAttack() int {
	v := c.Stats.Attack()
	for _, e := range c.Effects {
		v += e.AttackMod
	}
	return maxInt(v, 1)
}

func (c Combatant) effectiveDefense() int {
	v := c.Stats.Defense()
	for _, e := range c.Effects {
		v += e.DefenseMod
	}
	return maxInt(v, 1)
}

func (c Combatant) effectiveSpeed() int {
	v := c.Stats.Speed()
	for _, e := range c.Effects {
		v += e.SpeedMod
	}
	return maxInt(v, 0)
}

func maxHPFor(level int, stats StatBlock) int {
	return 12 + level*3 + stats.Fortitude*2
}

// NewCombatant builds a battle-scoped projection from externally supplied
// stats; the persistent creature snapshot is never referenced again once
// the battle starts.
func NewCombatant(id, name string, playerOwned bool, level, energy int, stats StatBlock, moveIDs []string) Combatant {
	hp := maxHPFor(level, stats)
	return Combatant{
		ID:          id,
		Name:        name,
		PlayerOwned: playerOwned,
		Level:       level,
		MaxHP:       hp,
		HP:          hp,
		Energy:      energy,
		Stats:       stats,
		Moves:       MovesByIDs(moveIDs),
	}
}

type speciesDef struct {
	Name    string
	Stats   StatBlock
	MoveIDs []string
}

var speciesDefs = map[string]speciesDef{
	"thornrat":   {Name: "Thornrat", Stats: StatBlock{Strength: 8, Endurance: 6, Agility: 9, Precision: 7, Fortitude: 5, Cunning: 6}, MoveIDs: []string{"tackle", "quick_jab"}},
	"duskmoth":   {Name: "Duskmoth", Stats: StatBlock{Strength: 5, Endurance: 5, Agility: 11, Precision: 9, Fortitude: 4, Cunning: 9}, MoveIDs: []string{"dust_whirl", "screech"}},
	"gravel_imp": {Name: "Gravel Imp", Stats: StatBlock{Strength: 9, Endurance: 9, Agility: 5, Precision: 6, Fortitude: 9, Cunning: 4}, MoveIDs: []string{"tackle", "bite"}},
	"cliff_wyrm": {Name: "Cliff Wyrm", Stats: StatBlock{Strength: 12, Endurance: 10, Agility: 7, Precision: 8, Fortitude: 11, Cunning: 7}, MoveIDs: []string{"bite", "ember"}},
	"marsh_newt": {Name: "Marsh Newt", Stats: StatBlock{Strength: 6, Endurance: 7, Agility: 8, Precision: 8, Fortitude: 6, Cunning: 8}, MoveIDs: []string{"tackle", "venom_spit"}},
}

// NewWildCombatant instantiates an NPC-owned opponent of the given species
// scaled to the spawned level.
func NewWildCombatant(species string, level int) (Combatant, bool) {
	def, ok := speciesDefs[species]
	if !ok {
		return Combatant{}, false
	}
	if level < 1 {
		level = 1
	}
	stats := def.Stats
	stats.Strength += level / 2
	stats.Endurance += level / 2
	stats.Agility += level / 2
	stats.Precision += level / 2
	stats.Fortitude += level / 2
	stats.Cunning += level / 2
	c := NewCombatant("wild-"+species, def.Name, false, level, 100, stats, def.MoveIDs)
	return c, true
}

type Outcome string

const (
	OutcomeOngoing     Outcome = "ongoing"
	OutcomePlayerWon   Outcome = "player_won"
	OutcomeOpponentWon Outcome = "opponent_won"
	OutcomeFled        Outcome = "fled"
)

type Battle struct {
	Player   Combatant `json:"player"`
	Opponent Combatant `json:"opponent"`
	Turn     int       `json:"turn"`
	Outcome  Outcome   `json:"outcome"`
}

func NewBattle(player, opponent Combatant) Battle {
	return Battle{Player: player, Opponent: opponent, Outcome: OutcomeOngoing}
}

func (b Battle) Over() bool { return b.Outcome != OutcomeOngoing }

type ActionKind string

const (
	ActionMove ActionKind = "move"
	ActionFlee ActionKind = "flee"
)

type Action struct {
	Kind      ActionKind `json:"kind"`
	MoveIndex int        `json:"move_index"`
}

// TurnEvent is one observable step of a resolved turn, in execution order.
type TurnEvent struct {
	Kind     string `json:"kind"`
	Actor    string `json:"actor,omitempty"`
	Target   string `json:"target,omitempty"`
	Move     string `json:"move,omitempty"`
	Damage   int    `json:"damage,omitempty"`
	Critical bool   `json:"critical,omitempty"`
	Effect   string `json:"effect,omitempty"`
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
