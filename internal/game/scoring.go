package game

// PointValues is the score table.
type PointValues struct {
	Dot   int `yaml:"dot"`
	Power int `yaml:"power"`
	// ChainTiers is indexed by the number of agents already caught since the
	// last power pickup. The last tier repeats once the chain runs past it.
	ChainTiers []int          `yaml:"chain_tiers"`
	Fruit      map[string]int `yaml:"fruit"`
}

// DefaultPointValues returns the stock score table.
func DefaultPointValues() PointValues {
	return PointValues{
		Dot:        10,
		Power:      50,
		ChainTiers: []int{200, 400, 800, 1600},
		Fruit: map[string]int{
			"cherry":     100,
			"strawberry": 300,
			"orange":     500,
			"apple":      700,
			"melon":      1000,
			"flagship":   2000,
			"bell":       3000,
			"key":        5000,
		},
	}
}

// ChainPoints returns the award for catching an agent when chain agents have
// already been caught since the last power pickup.
func (pv PointValues) ChainPoints(chain int) int {
	if len(pv.ChainTiers) == 0 {
		return 0
	}
	return pv.ChainTiers[min(max(chain, 0), len(pv.ChainTiers)-1)]
}

// Collectible is a live pickup. Despawning removes the entity; the tile underneath is never mutated.
type Collectible struct {
	Kind   TileKind
	Cell   Cell
	Pos    Vec
	Points int
}

// countsTowardWin reports whether the round is won only once this kind is cleared.
func (c *Collectible) countsTowardWin() bool {
	return c.Kind == TileDot || c.Kind == TilePower
}
