package world

import "math/rand"

type ItemDrop struct {
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

// RollDrops draws table.Rolls weighted entries (one when Rolls is zero) and
// merges drops of the same item. An empty table drops nothing.
func RollDrops(rng *rand.Rand, table DropTable) []ItemDrop {
	total := 0
	for _, e := range table.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return nil
	}

	rolls := table.Rolls
	if rolls <= 0 {
		rolls = 1
	}

	counts := map[string]int{}
	order := make([]string, 0, rolls)
	for i := 0; i < rolls; i++ {
		pick := rng.Intn(total)
		for _, e := range table.Entries {
			if e.Weight <= 0 {
				continue
			}
			if pick >= e.Weight {
				pick -= e.Weight
				continue
			}
			n := e.MinCount
			if span := e.MaxCount - e.MinCount; span > 0 {
				n += rng.Intn(span + 1)
			}
			if n <= 0 || e.ItemID == "" {
				break
			}
			if _, seen := counts[e.ItemID]; !seen {
				order = append(order, e.ItemID)
			}
			counts[e.ItemID] += n
			break
		}
	}

	out := make([]ItemDrop, 0, len(order))
	for _, id := range order {
		out = append(out, ItemDrop{ItemID: id, Count: counts[id]})
	}
	return out
}
