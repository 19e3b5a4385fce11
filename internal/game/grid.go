package game

import (
	"encoding/json"
	"fmt"
	"math"
)

// TileKind is the static content of a single board cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileWall
	TileDot
	TilePower
	TileFruit
	TileGate
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileDot:
		return "dot"
	case TilePower:
		return "power"
	case TileFruit:
		return "fruit"
	case TileGate:
		return "gate"
	default:
		return "unknown"
	}
}

// Passable reports whether ordinary movement may enter a tile of this kind.
// The gate is only crossed by the den routines, never by CanMove.
func (k TileKind) Passable() bool {
	return k != TileWall && k != TileGate
}

// Direction is one of the four cardinal directions of travel.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// searchOrder is the fixed Up, Right, Down, Left priority used wherever a
// deterministic direction order matters.
var searchOrder = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection converts a wire name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "", "none":
		return DirNone, nil
	default:
		return DirNone, fmt.Errorf("unknown direction %q", s)
	}
}

// MarshalJSON serializes Direction as a string.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON deserializes Direction from a string.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirNone
	}
}

// Vertical reports whether d moves along the y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// directionBetween returns the direction of a single axis-aligned step from a to b.
func directionBetween(a, b Vec) Direction {
	switch {
	case b.Y > a.Y:
		return DirUp
	case b.X > a.X:
		return DirRight
	case b.Y < a.Y:
		return DirDown
	case b.X < a.X:
		return DirLeft
	default:
		return DirNone
	}
}

// Vec is a continuous world coordinate. The y axis grows upward.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cell is a discrete board index. Row 0 is the top of the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is the read-only tile matrix plus its world transform.
type Grid struct {
	tiles    [][]TileKind
	width    int
	height   int
	cellSize float64
	offset   float64
}

// NewGrid copies tiles into a new Grid. All rows must have the same length.
func NewGrid(tiles [][]TileKind, cellSize, offset float64) *Grid {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		panic("game: grid must have at least one cell")
	}
	width := len(tiles[0])
	copied := make([][]TileKind, len(tiles))
	for i, row := range tiles {
		if len(row) != width {
			panic(fmt.Sprintf("game: grid row %d has %d cells, want %d", i, len(row), width))
		}
		copied[i] = append([]TileKind(nil), row...)
	}
	return &Grid{
		tiles:    copied,
		width:    width,
		height:   len(tiles),
		cellSize: cellSize,
		offset:   offset,
	}
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Offset() float64 { return g.offset }
func (g *Grid) Contains(c Cell) bool { return g.valid(c.Row, c.Col) }

func (g *Grid) valid(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// TileAt returns the tile at (row, col), or false when the index is off the board.
func (g *Grid) TileAt(row, col int) (TileKind, bool) {
	if !g.valid(row, col) {
		return TileEmpty, false
	}
	return g.tiles[row][col], true
}

// MustTileAt is TileAt for callers that treat an off-board index as a bug.
func (g *Grid) MustTileAt(row, col int) TileKind {
	g.mustBeValid(row, col)
	return g.tiles[row][col]
}

func (g *Grid) mustBeValid(row, col int) {
	if !g.valid(row, col) {
		panic(fmt.Sprintf("game: grid index (%d, %d) out of range %dx%d", row, col, g.height, g.width))
	}
}

// ToWorld maps a cell to the world coordinate of its grid-line intersection.
func (g *Grid) ToWorld(row, col int) Vec {
	g.mustBeValid(row, col)
	return Vec{
		X: float64(col)*g.cellSize + g.offset,
		Y: float64(g.height-row-1)*g.cellSize + g.offset,
	}
}

// ToGrid is the floor-division inverse of ToWorld. The result may lie off the
// board; check it with Contains.
func (g *Grid) ToGrid(p Vec) Cell {
	col := int(math.Floor((p.X - g.offset) / g.cellSize))
	v := int(math.Floor((p.Y - g.offset) / g.cellSize))
	return Cell{Row: g.height - 1 - v, Col: col}
}

// Step offsets p by distance in direction d. No bounds checks.
func (g *Grid) Step(p Vec, d Direction, distance float64) Vec {
	dx, dy := d.delta()
	return Vec{X: p.X + dx*distance, Y: p.Y + dy*distance}
}

// CenteredX reports whether p lies exactly on a vertical grid line.
func (g *Grid) CenteredX(p Vec) bool {
	return math.Mod(p.X-g.offset, g.cellSize) == 0
}

// CenteredY reports whether p lies exactly on a horizontal grid line.
func (g *Grid) CenteredY(p Vec) bool {
	return math.Mod(p.Y-g.offset, g.cellSize) == 0
}

// Centered reports whether p sits on a cell center on both axes.
func (g *Grid) Centered(p Vec) bool {
	return g.CenteredX(p) && g.CenteredY(p)
}
