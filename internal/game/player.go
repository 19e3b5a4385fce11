package game

import "github.com/google/uuid"

// Player is the user-controlled actor.
type Player struct {
	ID       string    `json:"id"`
	Nickname string    `json:"nickname"`
	Pos      Vec       `json:"pos"`
	Dir      Direction `json:"direction"`
	// Pending holds intent that could not be applied yet because the player
	// was off the perpendicular grid line or the way was blocked.
	Pending Direction `json:"-"`
	Moving  bool      `json:"moving"`
	Speed   float64   `json:"-"`
}

func NewPlayer(nickname string) *Player {
	return &Player{
		ID:       uuid.New().String(),
		Nickname: nickname,
		Dir:      PlayerStartDirection,
		Speed:    PlayerSpeed,
	}
}

// Spawn places the player at rest at pos.
func (p *Player) Spawn(pos Vec, speed float64) {
	p.Pos = pos
	p.Speed = speed
	p.Dir = PlayerStartDirection
	p.Pending = DirNone
	p.Moving = false
}

// steer applies pending intent if it is legal now. It reports whether the
// facing direction changed.
func (p *Player) steer(g *Grid, intent Direction) bool {
	if intent != DirNone {
		p.Pending = intent
	}
	if p.Pending == DirNone || !CanMove(g, p.Pos, p.Pending, p.Speed) {
		return false
	}

	changed := p.Pending != p.Dir
	p.Dir = p.Pending
	p.Pending = DirNone
	p.Moving = true
	return changed
}

// advance moves one step in the current direction, stopping at walls.
func (p *Player) advance(g *Grid) {
	if !p.Moving {
		return
	}
	if !CanMove(g, p.Pos, p.Dir, p.Speed) {
		p.Moving = false
		return
	}
	p.Pos = g.Step(p.Pos, p.Dir, p.Speed)
}
