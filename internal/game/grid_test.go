package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() *Grid {
	return NewGrid([][]TileKind{
		{TileWall, TileDot, TileWall},
		{TileEmpty, TilePower, TileGate},
	}, CellSize, BoardOffset)
}

func TestGrid_ToWorld(t *testing.T) {
	g := testGrid()

	tests := []struct {
		row, col int
		want     Vec
	}{
		{0, 0, Vec{X: 16, Y: 48}},
		{0, 2, Vec{X: 80, Y: 48}},
		{1, 0, Vec{X: 16, Y: 16}},
		{1, 2, Vec{X: 80, Y: 16}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.ToWorld(tt.row, tt.col), "cell (%d, %d)", tt.row, tt.col)
	}
}

func TestGrid_ToGridInvertsToWorld(t *testing.T) {
	g := MustParseLevel(DefaultLayout, CellSize, BoardOffset).Grid
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			require.Equal(t, Cell{Row: row, Col: col}, g.ToGrid(g.ToWorld(row, col)))
		}
	}
}

func TestGrid_ToGridFloors(t *testing.T) {
	g := testGrid()
	assert.Equal(t, Cell{Row: 0, Col: 0}, g.ToGrid(Vec{X: 47.9, Y: 79.9}))
	assert.Equal(t, Cell{Row: 1, Col: 1}, g.ToGrid(Vec{X: 48, Y: 16}))
	assert.False(t, g.Contains(g.ToGrid(Vec{X: 0, Y: 16})), "left of the board")
}

func TestGrid_OutOfRange(t *testing.T) {
	g := testGrid()

	_, ok := g.TileAt(-1, 0)
	assert.False(t, ok)
	_, ok = g.TileAt(0, 3)
	assert.False(t, ok)

	kind, ok := g.TileAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, TilePower, kind)

	assert.Panics(t, func() { g.ToWorld(2, 0) })
	assert.Panics(t, func() { g.MustTileAt(0, -1) })
}

func TestNewGrid_RejectsRaggedRows(t *testing.T) {
	assert.Panics(t, func() {
		NewGrid([][]TileKind{{TileEmpty, TileEmpty}, {TileEmpty}}, CellSize, BoardOffset)
	})
	assert.Panics(t, func() { NewGrid(nil, CellSize, BoardOffset) })
}

func TestGrid_Centered(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name   string
		p      Vec
		wantX  bool
		wantY  bool
		wantXY bool
	}{
		{"cell center", Vec{X: 48, Y: 16}, true, true, true},
		{"between columns", Vec{X: 52, Y: 16}, false, true, false},
		{"between rows", Vec{X: 48, Y: 30}, true, false, false},
		{"half cell", Vec{X: 64, Y: 32}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantX, g.CenteredX(tt.p))
			assert.Equal(t, tt.wantY, g.CenteredY(tt.p))
			assert.Equal(t, tt.wantXY, g.Centered(tt.p))
		})
	}
}

func TestGrid_Step(t *testing.T) {
	g := testGrid()
	p := Vec{X: 48, Y: 48}

	assert.Equal(t, Vec{X: 48, Y: 52}, g.Step(p, DirUp, 4))
	assert.Equal(t, Vec{X: 52, Y: 48}, g.Step(p, DirRight, 4))
	assert.Equal(t, Vec{X: 48, Y: 44}, g.Step(p, DirDown, 4))
	assert.Equal(t, Vec{X: 44, Y: 48}, g.Step(p, DirLeft, 4))
	assert.Equal(t, p, g.Step(p, DirNone, 4))
	assert.Equal(t, Vec{X: -1000, Y: 48}, g.Step(p, DirLeft, 1048), "no bounds checks")
}

func TestTileKind_Passable(t *testing.T) {
	passable := map[TileKind]bool{
		TileEmpty: true,
		TileWall:  false,
		TileDot:   true,
		TilePower: true,
		TileFruit: true,
		TileGate:  false,
	}
	for kind, want := range passable {
		assert.Equal(t, want, kind.Passable(), kind.String())
	}
}

func TestDirection(t *testing.T) {
	for _, d := range searchOrder {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
	}

	_, err := ParseDirection("north")
	assert.Error(t, err)

	data, err := json.Marshal(struct {
		Dir Direction `json:"dir"`
	}{DirLeft})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dir":"left"}`, string(data))

	var d Direction
	require.NoError(t, json.Unmarshal([]byte(`"down"`), &d))
	assert.Equal(t, DirDown, d)
	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
}

func TestDirectionBetween(t *testing.T) {
	a := Vec{X: 10, Y: 10}
	assert.Equal(t, DirUp, directionBetween(a, Vec{X: 10, Y: 12}))
	assert.Equal(t, DirRight, directionBetween(a, Vec{X: 12, Y: 10}))
	assert.Equal(t, DirDown, directionBetween(a, Vec{X: 10, Y: 8}))
	assert.Equal(t, DirLeft, directionBetween(a, Vec{X: 8, Y: 10}))
	assert.Equal(t, DirNone, directionBetween(a, a))
}
