package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyLayout    = errors.New("layout is empty")
	ErrUnknownTile    = errors.New("unknown layout character")
	ErrNoPlayerSpawn  = errors.New("layout has no player spawn")
	ErrBadPlayerSpawn = errors.New("player spawn must be one cell or two adjacent cells")
	ErrBadGate        = errors.New("gate must be one contiguous horizontal run")
	ErrDenOutOfBounds = errors.New("den does not fit below the gate")
)

// Layout characters.
const (
	charWall   = '#'
	charDot    = '.'
	charPower  = 'o'
	charFruit  = 'f'
	charGate   = '-'
	charEmpty  = ' '
	charBlank  = '_'
	charPlayer = 'P'
)

// Level is a parsed board plus the fixed positions derived from it.
type Level struct {
	Grid        *Grid
	PlayerSpawn Vec
	// Den is nil when the layout has no gate.
	Den *Den
}

// ParseLevel builds a Level from layout rows separated by newlines. Leading
// and trailing newlines are ignored and short rows are padded with empty
// cells, so layouts can be written as raw string literals. Use '_' for rows
// that are entirely empty.
func ParseLevel(layout string, cellSize, offset float64) (*Level, error) {
	lines := strings.Split(strings.Trim(layout, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, ErrEmptyLayout
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	tiles := make([][]TileKind, len(lines))
	var spawn []Cell
	var gate []Cell

	for row, line := range lines {
		tiles[row] = make([]TileKind, width)
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case charWall:
				tiles[row][col] = TileWall
			case charDot:
				tiles[row][col] = TileDot
			case charPower:
				tiles[row][col] = TilePower
			case charFruit:
				tiles[row][col] = TileFruit
			case charGate:
				tiles[row][col] = TileGate
				gate = append(gate, Cell{Row: row, Col: col})
			case charEmpty, charBlank:
				tiles[row][col] = TileEmpty
			case charPlayer:
				tiles[row][col] = TileEmpty
				spawn = append(spawn, Cell{Row: row, Col: col})
			default:
				return nil, fmt.Errorf("row %d col %d %q: %w", row, col, line[col], ErrUnknownTile)
			}
		}
	}

	grid := NewGrid(tiles, cellSize, offset)
	lvl := &Level{Grid: grid}

	switch {
	case len(spawn) == 0:
		return nil, ErrNoPlayerSpawn
	case !horizontalRun(spawn) || len(spawn) > 2:
		return nil, ErrBadPlayerSpawn
	}
	lvl.PlayerSpawn = midpoint(grid, spawn)

	if len(gate) > 0 {
		if !horizontalRun(gate) {
			return nil, ErrBadGate
		}
		den, err := newDen(grid, gate)
		if err != nil {
			return nil, err
		}
		lvl.Den = den
	}

	return lvl, nil
}

// MustParseLevel is ParseLevel for compile-time layouts.
func MustParseLevel(layout string, cellSize, offset float64) *Level {
	lvl, err := ParseLevel(layout, cellSize, offset)
	if err != nil {
		panic(fmt.Sprintf("game: parse level: %v", err))
	}
	return lvl
}

// horizontalRun reports whether cells (in scan order) form one contiguous run on a single row.
func horizontalRun(cells []Cell) bool {
	for i := 1; i < len(cells); i++ {
		if cells[i].Row != cells[0].Row || cells[i].Col != cells[i-1].Col+1 {
			return false
		}
	}
	return true
}

func midpoint(g *Grid, cells []Cell) Vec {
	first := g.ToWorld(cells[0].Row, cells[0].Col)
	last := g.ToWorld(cells[len(cells)-1].Row, cells[len(cells)-1].Col)
	return Vec{X: (first.X + last.X) / 2, Y: first.Y}
}

// DefaultLayout is the stock 28x33 board. The top and bottom rows are left
// empty for the score and message overlays.
const DefaultLayout = `
____________________________
############################
#............##............#
#o####.#####.##.#####.####o#
#.#  #.#   #.##.#   #.#  #.#
#.####.#####.##.#####.####.#
#..........................#
#.####.##.########.##.####.#
#.####.##.########.##.####.#
#......##....##....##......#
######.#####.##.#####.######
     #.#####.##.#####.#
     #.##..........##.#
     #.##.###--###.##.#
######.##.#      #.##.######
..........#      #..........
######.##.#      #.##.######
     #.##.########.##.#
     #.##....f.....##.#
     #.##.########.##.#
######.##.########.##.######
#............##............#
#.####.#####.##.#####.####.#
#o####.#####.##.#####.####o#
#...##.......PP.......##...#
###.##.##.########.##.##.###
###.##.##.########.##.##.###
#......##....##....##......#
#.##########.##.##########.#
#.##########.##.##########.#
#..........................#
############################
____________________________
`

// Rows renders the static walls and gate of the board, one string per row.
// Collectibles are not included.
func (l *Level) Rows() []string {
	g := l.Grid
	rows := make([]string, g.Height())
	for row := range rows {
		b := make([]byte, g.Width())
		for col := range b {
			switch g.MustTileAt(row, col) {
			case TileWall:
				b[col] = charWall
			case TileGate:
				b[col] = charGate
			default:
				b[col] = charEmpty
			}
		}
		rows[row] = string(b)
	}
	return rows
}
