package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	origin := Vec{X: 100, Y: 100}

	tests := []struct {
		name  string
		b     Vec
		exact bool
		near  bool
	}{
		{"same point", origin, true, true},
		{"one unit right", Vec{X: 101, Y: 100}, false, true},
		{"one cell up", Vec{X: 100, Y: 132}, false, true},
		{"one cell left", Vec{X: 68, Y: 100}, false, true},
		{"just over a cell", Vec{X: 133, Y: 100}, false, false},
		{"diagonal", Vec{X: 101, Y: 101}, false, false},
		{"far away", Vec{X: 500, Y: 500}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exact, Collide(origin, tt.b, CellSize, CollisionExact))
			assert.Equal(t, tt.near, Collide(origin, tt.b, CellSize, CollisionApproximate))
			assert.Equal(t, tt.near, Collide(tt.b, origin, CellSize, CollisionApproximate), "symmetric")
		})
	}
}

func TestCollisionKind_String(t *testing.T) {
	assert.Equal(t, "exact", CollisionExact.String())
	assert.Equal(t, "approximate", CollisionApproximate.String())
}
