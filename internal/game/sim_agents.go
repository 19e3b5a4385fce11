package game

import (
	"log/slog"
	"math"
	"time"
)

// updateThreat advances the shared scare timer. It only runs while some
// agent is Vulnerable and reverts all of them together when it expires.
func (s *Simulation) updateThreat(dt time.Duration) {
	scared := false
	for _, a := range s.agents {
		if a.IsVulnerable() {
			scared = true
			break
		}
	}
	if !scared {
		s.scareTimer = 0
		return
	}

	s.scareTimer += dt
	if s.scareTimer < s.tuning.ScareDuration {
		return
	}
	for _, a := range s.agents {
		if a.IsVulnerable() {
			a.Threat = Threatening
		}
	}
	s.scareTimer = 0
	slog.Debug("scare expired", "tick", s.tick)
}

// updateContainment runs the cage timers, promotes at most one caged agent
// to Releasing and cages agents that made it home.
func (s *Simulation) updateContainment(dt time.Duration) {
	releasing := false
	for _, a := range s.agents {
		switch a.Containment {
		case Caged:
			a.cageTimer += dt
		case Releasing:
			releasing = true
		case Returning:
			if a.Path.Empty() && Collide(a.Pos, s.level.Den.Target, s.grid.CellSize(), CollisionExact) {
				a.cage(s.tuning.RespawnDelay)
				slog.Debug("agent home", "agent", a.ID, "tick", s.tick)
			}
		}
	}
	if releasing {
		return
	}

	for _, a := range s.agents {
		if a.Containment == Caged && a.cageTimer >= a.releaseAfter {
			a.Containment = Releasing
			slog.Debug("agent releasing", "agent", a.ID, "tick", s.tick)
			return
		}
	}
}

func (s *Simulation) moveAgents() {
	for _, a := range s.agents {
		switch a.Containment {
		case Releasing:
			s.ascend(a)
		case Released:
			s.pursue(a)
		case Returning:
			s.returnHome(a)
		}
	}
}

// ascend walks a releasing agent to the den's center column, then up to the
// threshold above the gate.
func (s *Simulation) ascend(a *Agent) {
	den := s.level.Den
	switch {
	case a.Pos.X != den.CenterX:
		dx := den.CenterX - a.Pos.X
		a.moveTo(Vec{X: a.Pos.X + math.Copysign(math.Min(a.Speed, math.Abs(dx)), dx), Y: a.Pos.Y})
	case a.Pos.Y < den.Threshold.Y:
		a.moveTo(Vec{X: a.Pos.X, Y: math.Min(a.Pos.Y+a.Speed, den.Threshold.Y)})
	}

	if a.Pos == den.Threshold {
		a.Containment = Released
		a.Dir = DirLeft
		a.Path.Clear()
		slog.Debug("agent released", "agent", a.ID, "tick", s.tick)
	}
}

func (s *Simulation) pursue(a *Agent) {
	if a.Path.Empty() {
		a.Path = PursuitPath(s.grid, a.Pos, s.player.Pos, a.Speed)
	}
	if next, ok := a.Path.Pop(); ok {
		a.moveTo(next)
	}
}

func (s *Simulation) returnHome(a *Agent) {
	if a.Path.Empty() {
		if a.Pos == s.level.Den.Target {
			return
		}
		a.Path = DenReturnPath(s.grid, s.level.Den, a.Pos, a.Speed)
	}
	for i := 0; i < a.returnStride; i++ {
		next, ok := a.Path.Pop()
		if !ok {
			return
		}
		a.moveTo(next)
	}
}
