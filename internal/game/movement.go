package game

import "math"

// CanMove reports whether an entity at p may take one step of speed in
// direction d right now. The entity must sit on the grid line perpendicular
// to d, and the cell it would enter must exist and be passable. An off-board
// destination is never legal.
func CanMove(g *Grid, p Vec, d Direction, speed float64) bool {
	if d == DirNone || speed <= 0 {
		return false
	}
	if d.Vertical() {
		if !g.CenteredX(p) {
			return false
		}
	} else if !g.CenteredY(p) {
		return false
	}

	c := enteredCell(g, p, d, speed)
	tile, ok := g.TileAt(c.Row, c.Col)
	return ok && tile.Passable()
}

// LegalMoves evaluates CanMove for all four directions.
func LegalMoves(g *Grid, p Vec, speed float64) map[Direction]bool {
	moves := make(map[Direction]bool, len(searchOrder))
	for _, d := range searchOrder {
		moves[d] = CanMove(g, p, d, speed)
	}
	return moves
}

// enteredCell returns the cell the entity occupies after stepping. The stepped
// coordinate is rounded toward the direction of travel, so a step that leaves
// a grid line already counts as entering the next cell.
func enteredCell(g *Grid, p Vec, d Direction, speed float64) Cell {
	next := g.Step(p, d, speed)
	u := (next.X - g.offset) / g.cellSize
	v := (next.Y - g.offset) / g.cellSize

	var col, up int
	switch d {
	case DirRight:
		col, up = int(math.Ceil(u)), int(math.Floor(v))
	case DirLeft:
		col, up = int(math.Floor(u)), int(math.Floor(v))
	case DirUp:
		col, up = int(math.Floor(u)), int(math.Ceil(v))
	default:
		col, up = int(math.Floor(u)), int(math.Floor(v))
	}
	return Cell{Row: g.height - 1 - up, Col: col}
}
