package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrNoDen            = errors.New("level has agents but no den gate")
	ErrCellSizeMismatch = errors.New("level cell size differs from tuning")
)

// Simulation owns all mutable round state. Every system reads and writes
// through it; nothing is global.
type Simulation struct {
	level  *Level
	grid   *Grid
	tuning Tuning

	player       *Player
	agents       []*Agent
	collectibles map[Cell]*Collectible
	remaining    int

	score      int
	chain      int
	scareTimer time.Duration

	events  EventQueue
	tick    int
	outcome Outcome
}

// NewSimulation spawns the player, agents and collectibles of level.
func NewSimulation(level *Level, tuning Tuning) (*Simulation, error) {
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	if level.Grid.CellSize() != tuning.CellSize || level.Grid.Offset() != tuning.Offset {
		return nil, ErrCellSizeMismatch
	}
	if len(tuning.Roster) > 0 && level.Den == nil {
		return nil, ErrNoDen
	}

	s := &Simulation{
		level:        level,
		grid:         level.Grid,
		tuning:       tuning,
		collectibles: make(map[Cell]*Collectible),
	}

	s.player = NewPlayer("")
	s.player.Spawn(level.PlayerSpawn, tuning.PlayerSpeed)

	for _, role := range tuning.Roster {
		s.agents = append(s.agents, newAgent(role, level.Den, tuning))
	}

	s.spawnCollectibles()
	return s, nil
}

func (s *Simulation) spawnCollectibles() {
	g := s.grid
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			kind := g.MustTileAt(row, col)
			var points int
			switch kind {
			case TileDot:
				points = s.tuning.Points.Dot
			case TilePower:
				points = s.tuning.Points.Power
			case TileFruit:
				points = s.tuning.Points.Fruit[s.tuning.Fruit]
			default:
				continue
			}
			c := &Collectible{
				Kind:   kind,
				Cell:   Cell{Row: row, Col: col},
				Pos:    g.ToWorld(row, col),
				Points: points,
			}
			s.collectibles[c.Cell] = c
			if c.countsTowardWin() {
				s.remaining++
			}
		}
	}
}

// Step advances the round by one tick and returns the events it produced.
// Systems run in a fixed order: intent, player movement, collisions, state
// timers, agent movement. Collisions therefore see the post-move player and
// agents move on post-collision state. Once the round has ended Step does nothing.
func (s *Simulation) Step(dt time.Duration, intent Direction) []Event {
	if s.outcome != OutcomeNone {
		return nil
	}
	s.tick++

	if s.player.steer(s.grid, intent) {
		s.events.Push(Event{Kind: EventDirectionChanged, Direction: s.player.Dir})
	}
	s.player.advance(s.grid)

	s.collect()
	s.resolveContacts()
	if s.outcome == OutcomeNone && s.remaining == 0 {
		s.end(OutcomeWin)
	}

	if s.outcome == OutcomeNone {
		s.updateThreat(dt)
		s.updateContainment(dt)
		s.moveAgents()
	}

	return s.events.Drain()
}

// collect despawns the collectible under a fully centered player.
func (s *Simulation) collect() {
	if !s.grid.Centered(s.player.Pos) {
		return
	}
	cell := s.grid.ToGrid(s.player.Pos)
	c, ok := s.collectibles[cell]
	if !ok {
		return
	}

	delete(s.collectibles, cell)
	if c.countsTowardWin() {
		s.remaining--
	}
	s.score += c.Points

	switch c.Kind {
	case TileDot:
		s.events.Push(Event{Kind: EventDotEaten, Points: c.Points})
	case TileFruit:
		s.events.Push(Event{Kind: EventFruitEaten, Points: c.Points})
	case TilePower:
		s.frighten()
		s.events.Push(Event{Kind: EventPowerConsumed, Points: c.Points})
	}
}

// frighten resets the chain and turns every eligible agent Vulnerable.
func (s *Simulation) frighten() {
	s.chain = 0
	s.scareTimer = 0
	for _, a := range s.agents {
		a.scare()
	}
}

func (s *Simulation) resolveContacts() {
	for _, a := range s.agents {
		if a.IsReturning() {
			continue
		}
		if !Collide(s.player.Pos, a.Pos, s.grid.CellSize(), CollisionApproximate) {
			continue
		}

		if a.Threat == Threatening {
			slog.Debug("player caught", "agent", a.ID, "tick", s.tick)
			s.end(OutcomeLose)
			return
		}

		points := s.tuning.Points.ChainPoints(s.chain)
		s.chain++
		s.score += points
		a.catch()
		s.events.Push(Event{Kind: EventAgentCaught, AgentID: a.ID, Points: points})
		slog.Debug("agent caught", "agent", a.ID, "points", points, "chain", s.chain)
	}
}

func (s *Simulation) end(outcome Outcome) {
	s.outcome = outcome
	s.events.Push(Event{Kind: EventRoundEnded, Outcome: outcome})
}

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// Chain returns the number of agents caught since the last power pickup.
func (s *Simulation) Chain() int { return s.chain }

func (s *Simulation) Tick() int { return s.tick }
func (s *Simulation) Outcome() Outcome { return s.outcome }
func (s *Simulation) Player() *Player { return s.player }
func (s *Simulation) Agents() []*Agent { return s.agents }
func (s *Simulation) Level() *Level { return s.level }
func (s *Simulation) Tuning() Tuning { return s.tuning }

// Remaining returns how many win-gating collectibles are still live.
func (s *Simulation) Remaining() int { return s.remaining }

// Collectibles returns the live collectibles in row-major order.
func (s *Simulation) Collectibles() []*Collectible {
	out := make([]*Collectible, 0, len(s.collectibles))
	for row := 0; row < s.grid.Height(); row++ {
		for col := 0; col < s.grid.Width(); col++ {
			if c, ok := s.collectibles[Cell{Row: row, Col: col}]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// Agent looks up an agent by ID.
func (s *Simulation) Agent(id string) *Agent {
	for _, a := range s.agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}
