package game

import "math"

// CollisionKind selects how strictly two positions must coincide.
type CollisionKind int

const (
	// CollisionExact requires both coordinates to match. Path search and den
	// arrival use it so they never stop one cell short.
	CollisionExact CollisionKind = iota
	// CollisionApproximate matches entities on the same row or column that are
	// within one cell of each other. Gameplay contact uses it because two
	// continuously moving entities can pass through each other between ticks.
	CollisionApproximate
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionExact:
		return "exact"
	case CollisionApproximate:
		return "approximate"
	default:
		return "unknown"
	}
}

// Collide classifies the spatial coincidence of a and b.
func Collide(a, b Vec, cellSize float64, kind CollisionKind) bool {
	switch kind {
	case CollisionApproximate:
		return (a.X == b.X && math.Abs(a.Y-b.Y) <= cellSize) ||
			(a.Y == b.Y && math.Abs(a.X-b.X) <= cellSize)
	default:
		return a.X == b.X && a.Y == b.Y
	}
}
