package statictables

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"petverse/internal/domain/world"
)

const (
	locationsFile  = "locations.json"
	dropTablesFile = "drop_tables.json"
)

var ErrNoLocations = errors.New("world tables define no locations")

// Provider serves location and drop table definitions. It starts from the
// built-in world and can be overridden from a directory of JSON files.
type Provider struct {
	locations  map[string]world.Location
	order      []string
	dropTables map[string]world.DropTable
}

func NewProvider() *Provider {
	p := &Provider{
		locations:  map[string]world.Location{},
		dropTables: map[string]world.DropTable{},
	}
	p.setLocations(defaultLocations())
	for _, t := range defaultDropTables() {
		p.dropTables[t.ID] = t
	}
	return p
}

// NewProviderFromDir loads world content from root, replacing the built-in
// set wholesale per file. A missing file keeps the built-in content for
// that concern.
func NewProviderFromDir(root string) (*Provider, error) {
	p := NewProvider()

	var locs []world.Location
	ok, err := readJSONFile(filepath.Join(root, locationsFile), &locs)
	if err != nil {
		return nil, err
	}
	if ok {
		if len(locs) == 0 {
			return nil, ErrNoLocations
		}
		p.setLocations(locs)
	}

	var tables []world.DropTable
	ok, err = readJSONFile(filepath.Join(root, dropTablesFile), &tables)
	if err != nil {
		return nil, err
	}
	if ok {
		p.dropTables = map[string]world.DropTable{}
		for _, t := range tables {
			p.dropTables[t.ID] = t
		}
	}
	return p, nil
}

func (p *Provider) Location(id string) (world.Location, bool) {
	loc, ok := p.locations[id]
	return loc, ok
}

func (p *Provider) DropTable(id string) (world.DropTable, bool) {
	t, ok := p.dropTables[id]
	return t, ok
}

func (p *Provider) Locations() []world.Location {
	out := make([]world.Location, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.locations[id])
	}
	return out
}

func (p *Provider) setLocations(locs []world.Location) {
	p.locations = map[string]world.Location{}
	p.order = p.order[:0]
	for _, loc := range locs {
		if _, seen := p.locations[loc.ID]; !seen {
			p.order = append(p.order, loc.ID)
		}
		p.locations[loc.ID] = loc
	}
}

func readJSONFile(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func defaultLocations() []world.Location {
	return []world.Location{
		{
			ID:          "meadow",
			Name:        "Sunny Meadow",
			MinLevel:    1,
			MaxLevel:    4,
			TravelTicks: 40,
			TravelCost:  10,
			Encounters: []world.EncounterEntry{
				{Weight: 6, Species: []string{"thornrat"}, LevelOffsetMin: -1, LevelOffsetMax: 1},
				{Weight: 3, Species: []string{"duskmoth"}, LevelOffsetMin: 0, LevelOffsetMax: 2},
			},
			Activities: []world.ActivityDef{
				{
					ID:              "forage",
					Name:            "Forage for food",
					DurationTicks:   40,
					EnergyCost:      10,
					DropTableID:     "forage_meadow",
					EncounterChance: 0.25,
				},
				{
					ID:            "gather_dew",
					Name:          "Gather morning dew",
					DurationTicks: 80,
					EnergyCost:    15,
					DropTableID:   "dew_meadow",
				},
			},
		},
		{
			ID:          "cavern",
			Name:        "Echoing Cavern",
			MinLevel:    3,
			MaxLevel:    7,
			TravelTicks: 80,
			TravelCost:  20,
			Encounters: []world.EncounterEntry{
				{Weight: 5, Species: []string{"gravel_imp"}, LevelOffsetMin: 0, LevelOffsetMax: 2},
				{Weight: 2, Species: []string{"thornrat"}, LevelOffsetMin: 1, LevelOffsetMax: 3},
			},
			Activities: []world.ActivityDef{
				{
					ID:              "spelunk",
					Name:            "Spelunk the lower tunnels",
					DurationTicks:   120,
					EnergyCost:      25,
					MinStage:        1,
					DropTableID:     "cavern_minerals",
					EncounterChance: 0.4,
				},
			},
		},
		{
			ID:          "marsh",
			Name:        "Reedgrass Marsh",
			MinLevel:    4,
			MaxLevel:    9,
			TravelTicks: 120,
			TravelCost:  25,
			Encounters: []world.EncounterEntry{
				{Weight: 5, Species: []string{"marsh_newt"}, LevelOffsetMin: 0, LevelOffsetMax: 2},
				{Weight: 2, Species: []string{"duskmoth"}, LevelOffsetMin: 1, LevelOffsetMax: 2, ActivityIDs: []string{"bog_fishing"}},
			},
			Activities: []world.ActivityDef{
				{
					ID:              "bog_fishing",
					Name:            "Fish the bog pools",
					DurationTicks:   100,
					EnergyCost:      20,
					MinStage:        1,
					DropTableID:     "marsh_catch",
					EncounterChance: 0.3,
				},
			},
		},
		{
			ID:          "cliffs",
			Name:        "Windward Cliffs",
			MinLevel:    7,
			MaxLevel:    12,
			TravelTicks: 160,
			TravelCost:  35,
			Encounters: []world.EncounterEntry{
				{Weight: 4, Species: []string{"cliff_wyrm"}, LevelOffsetMin: 0, LevelOffsetMax: 3, MinStage: 2},
				{Weight: 3, Species: []string{"gravel_imp"}, LevelOffsetMin: 1, LevelOffsetMax: 2},
			},
			Activities: []world.ActivityDef{
				{
					ID:              "wyrm_watch",
					Name:            "Watch the wyrm roosts",
					DurationTicks:   200,
					EnergyCost:      30,
					MinStage:        2,
					RequiredQuests:  []string{"marsh_charter"},
					DropTableID:     "cliff_scraps",
					EncounterChance: 0.5,
				},
			},
		},
	}
}

func defaultDropTables() []world.DropTable {
	return []world.DropTable{
		{
			ID:    "forage_meadow",
			Rolls: 2,
			Entries: []world.DropEntry{
				{Weight: 6, ItemID: "berry", MinCount: 1, MaxCount: 2},
				{Weight: 3, ItemID: "ration", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "chew_toy", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "dew_meadow",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 4, ItemID: "water_flask", MinCount: 1, MaxCount: 1},
				{Weight: 2, ItemID: "spring_dew", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "cavern_minerals",
			Rolls: 2,
			Entries: []world.DropEntry{
				{Weight: 3, ItemID: "water_flask", MinCount: 1, MaxCount: 2},
				{Weight: 2, ItemID: "imp_shard", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "tonic", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "marsh_catch",
			Rolls: 2,
			Entries: []world.DropEntry{
				{Weight: 4, ItemID: "ration", MinCount: 1, MaxCount: 2},
				{Weight: 2, ItemID: "marsh_reed", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "cliff_scraps",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 2, ItemID: "tonic", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "wyrm_scale", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "spoils_thornrat",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 3, ItemID: "thorn_pelt", MinCount: 1, MaxCount: 1},
				{Weight: 2, ItemID: "berry", MinCount: 1, MaxCount: 2},
			},
		},
		{
			ID:    "spoils_duskmoth",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 3, ItemID: "moth_dust", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "chew_toy", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "spoils_gravel_imp",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 3, ItemID: "imp_shard", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "ration", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "spoils_marsh_newt",
			Rolls: 1,
			Entries: []world.DropEntry{
				{Weight: 3, ItemID: "marsh_reed", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "spring_dew", MinCount: 1, MaxCount: 1},
			},
		},
		{
			ID:    "spoils_cliff_wyrm",
			Rolls: 2,
			Entries: []world.DropEntry{
				{Weight: 2, ItemID: "wyrm_scale", MinCount: 1, MaxCount: 1},
				{Weight: 1, ItemID: "tonic", MinCount: 1, MaxCount: 1},
			},
		},
	}
}
