package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   error
	}{
		{"empty", "", ErrEmptyLayout},
		{"only newlines", "\n\n", ErrEmptyLayout},
		{"unknown character", "#x#\n#P#", ErrUnknownTile},
		{"no spawn", "###\n#.#", ErrNoPlayerSpawn},
		{"split spawn", "P.P", ErrBadPlayerSpawn},
		{"wide spawn", "PPP", ErrBadPlayerSpawn},
		{"stacked spawn", "P\nP", ErrBadPlayerSpawn},
		{"split gate", "#-.-#\n#.P.#\n#...#\n#...#", ErrBadGate},
		{"gate on top row", "--\nP.\n..\n..", ErrDenOutOfBounds},
		{"den below board", "P.\n--\n..", ErrDenOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel(tt.layout, CellSize, BoardOffset)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseLevel_PadsShortRows(t *testing.T) {
	lvl, err := ParseLevel("\n#####\n#P\n_\n", CellSize, BoardOffset)
	require.NoError(t, err)

	g := lvl.Grid
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, TileEmpty, g.MustTileAt(1, 4))
	assert.Equal(t, TileEmpty, g.MustTileAt(2, 0))
	assert.Nil(t, lvl.Den)
}

func TestParseLevel_SingleCellSpawn(t *testing.T) {
	lvl, err := ParseLevel("###\n#P#\n###", CellSize, BoardOffset)
	require.NoError(t, err)
	assert.Equal(t, lvl.Grid.ToWorld(1, 1), lvl.PlayerSpawn)
	assert.Equal(t, TileEmpty, lvl.Grid.MustTileAt(1, 1), "spawn cell is empty floor")
}

func TestDefaultLayout(t *testing.T) {
	lvl, err := ParseLevel(DefaultLayout, CellSize, BoardOffset)
	require.NoError(t, err)

	g := lvl.Grid
	assert.Equal(t, 28, g.Width())
	assert.Equal(t, 33, g.Height())

	// The spawn straddles two cells, so it sits on a half cell horizontally.
	assert.Equal(t, Vec{X: 448, Y: 272}, lvl.PlayerSpawn)
	assert.False(t, g.CenteredX(lvl.PlayerSpawn))
	assert.True(t, g.CenteredY(lvl.PlayerSpawn))

	require.NotNil(t, lvl.Den)
	den := lvl.Den
	assert.Equal(t, 13, den.GateRow)
	assert.Equal(t, []int{13, 14}, den.GateCols)
	assert.Equal(t, 448.0, den.CenterX)
	assert.Equal(t, Vec{X: 448, Y: 656}, den.Threshold)
	assert.Equal(t, Vec{X: 448, Y: 560}, den.Target)
	assert.Equal(t, Vec{X: 384, Y: 560}, den.Slot(-2))
	assert.Equal(t, Vec{X: 512, Y: 560}, den.Slot(2))

	var fruit, power int
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			switch g.MustTileAt(row, col) {
			case TileFruit:
				fruit++
			case TilePower:
				power++
			}
		}
	}
	assert.Equal(t, 1, fruit)
	assert.Equal(t, 4, power)
}

func TestDen_InShaft(t *testing.T) {
	den := MustParseLevel(DefaultLayout, CellSize, BoardOffset).Den

	assert.True(t, den.inShaft(den.Target))
	assert.True(t, den.inShaft(Vec{X: 448, Y: 600}))
	assert.False(t, den.inShaft(den.Threshold), "the threshold is above the shaft")
	assert.False(t, den.inShaft(Vec{X: 446, Y: 600}))
	assert.False(t, den.inShaft(Vec{X: 448, Y: 558}))
}

func TestLevel_Rows(t *testing.T) {
	lvl := MustParseLevel("#####\n#P.o#\n#--f#\n#...#\n#####", CellSize, BoardOffset)
	assert.Equal(t, []string{"#####", "#   #", "#-- #", "#   #", "#####"}, lvl.Rows())
}

func TestMustParseLevel_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseLevel("###", CellSize, BoardOffset) })
}
