package game

// Den describes the enclosed agent home below the gate.
type Den struct {
	GateRow  int
	GateCols []int
	CenterX  float64
	// Threshold is the waypoint directly above the gate. Released agents
	// start here and the return route aims for it before descending.
	Threshold Vec
	// Target is the interior coordinate a returning agent must reach.
	Target Vec

	cellSize float64
}

// denDepth is how many rows below the gate the den target sits.
const denDepth = 2

func newDen(g *Grid, gate []Cell) (*Den, error) {
	row := gate[0].Row
	if row-1 < 0 || row+denDepth >= g.Height() {
		return nil, ErrDenOutOfBounds
	}

	cols := make([]int, len(gate))
	for i, c := range gate {
		cols[i] = c.Col
	}
	centerX := midpoint(g, gate).X

	return &Den{
		GateRow:   row,
		GateCols:  cols,
		CenterX:   centerX,
		Threshold: Vec{X: centerX, Y: g.ToWorld(row-1, gate[0].Col).Y},
		Target:    Vec{X: centerX, Y: g.ToWorld(row+denDepth, gate[0].Col).Y},
		cellSize:  g.CellSize(),
	}, nil
}

// Slot returns a home position inside the den, offset whole cells from the center.
func (d *Den) Slot(offsetCells int) Vec {
	return Vec{X: d.CenterX + float64(offsetCells)*d.cellSize, Y: d.Target.Y}
}

// inShaft reports whether p is in the vertical corridor between the den
// target and the threshold, i.e. in the gate column below the threshold.
func (d *Den) inShaft(p Vec) bool {
	return p.X == d.CenterX && p.Y < d.Threshold.Y && p.Y >= d.Target.Y
}
