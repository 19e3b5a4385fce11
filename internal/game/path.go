package game

import (
	"log/slog"
	"math"
)

// Path is a FIFO queue of world waypoints owned by a single agent.
type Path struct {
	points []Vec
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

func (p *Path) Push(v Vec) {
	p.points = append(p.points, v)
}

// Pop removes and returns the next waypoint.
func (p *Path) Pop() (Vec, bool) {
	if len(p.points) == 0 {
		return Vec{}, false
	}
	v := p.points[0]
	p.points = p.points[1:]
	return v, true
}

func (p *Path) Len() int { return len(p.points) }
func (p *Path) Empty() bool { return len(p.points) == 0 }
func (p *Path) Clear() { p.points = nil }

// Last returns the final waypoint without removing it.
func (p *Path) Last() (Vec, bool) {
	if len(p.points) == 0 {
		return Vec{}, false
	}
	return p.points[len(p.points)-1], true
}

// Waypoints returns a copy of the remaining waypoints.
func (p *Path) Waypoints() []Vec {
	return append([]Vec(nil), p.points...)
}

// PursuitPath walks greedily from start toward target in steps of step and
// returns the waypoints taken. It is not a shortest path: at every position
// it takes the first legal, unvisited direction that closes on the target,
// in Up, Right, Down, Left order, and otherwise the first legal unvisited
// direction at all. The walk stops on an exact hit or a dead end, in which
// case the partial path is returned.
func PursuitPath(g *Grid, start, target Vec, step float64) *Path {
	path, _, _ := walk(g, start, target, step)
	return path
}

// DenReturnPath routes from start to the den threshold, then straight down
// through the gate to the den target. The descent bypasses CanMove; the
// gate stays impassable to every other route. If the threshold cannot be
// reached the partial walk is returned and the caller retries once it is
// consumed.
func DenReturnPath(g *Grid, den *Den, start Vec, step float64) *Path {
	if den.inShaft(start) {
		path := NewPath()
		descend(path, start, den.Target.Y, step)
		return path
	}

	path, end, reached := walk(g, start, den.Threshold, step)
	if reached {
		descend(path, end, den.Target.Y, step)
	}
	return path
}

func descend(path *Path, from Vec, floorY, step float64) {
	cur := from
	for cur.Y > floorY {
		cur.Y = math.Max(cur.Y-step, floorY)
		path.Push(cur)
	}
}

// stepCap bounds a walk by the number of lattice points lying on grid lines.
// Each step visits a new point, so a walk can only exceed it on a board the
// lattice does not fit.
func stepCap(g *Grid, step float64) int {
	perCell := int(math.Ceil(g.cellSize / step))
	return 2 * g.width * g.height * perCell
}

func walk(g *Grid, start, target Vec, step float64) (*Path, Vec, bool) {
	path := NewPath()
	if step <= 0 {
		return path, start, false
	}

	visited := make(map[Vec]struct{})
	limit := stepCap(g, step)
	cur := start

	for n := 0; ; n++ {
		if Collide(cur, target, g.cellSize, CollisionExact) {
			return path, cur, true
		}
		if n > limit {
			slog.Warn("path search exceeded step cap", "start", start, "target", target, "cap", limit)
			return NewPath(), start, false
		}

		d := chooseDirection(g, cur, target, step, visited)
		if d == DirNone {
			return path, cur, false
		}

		cur = g.Step(cur, d, step)
		path.Push(cur)
		visited[cur] = struct{}{}
	}
}

func chooseDirection(g *Grid, cur, target Vec, step float64, visited map[Vec]struct{}) Direction {
	toward := map[Direction]bool{
		DirUp:    cur.Y < target.Y,
		DirRight: cur.X < target.X,
		DirDown:  cur.Y > target.Y,
		DirLeft:  cur.X > target.X,
	}

	fallback := DirNone
	for _, d := range searchOrder {
		if !CanMove(g, cur, d, step) {
			continue
		}
		if _, seen := visited[g.Step(cur, d, step)]; seen {
			continue
		}
		if toward[d] {
			return d
		}
		if fallback == DirNone {
			fallback = d
		}
	}
	return fallback
}
