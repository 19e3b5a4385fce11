package game

// Snapshot is a read-only copy of the round state for presentation.
type Snapshot struct {
	Tick         int               `json:"tick"`
	Score        int               `json:"score"`
	Chain        int               `json:"chain"`
	Remaining    int               `json:"remaining"`
	Outcome      Outcome           `json:"outcome"`
	Player       PlayerView        `json:"player"`
	Agents       []AgentView       `json:"agents"`
	Collectibles []CollectibleView `json:"collectibles"`
}

type PlayerView struct {
	ID        string    `json:"id"`
	Pos       Vec       `json:"pos"`
	Direction Direction `json:"direction"`
	Moving    bool      `json:"moving"`
}

type AgentView struct {
	ID          string           `json:"id"`
	VisualKey   string           `json:"visual_key"`
	Pos         Vec              `json:"pos"`
	Direction   Direction        `json:"direction"`
	Threat      ThreatState      `json:"threat"`
	Containment ContainmentState `json:"containment"`
}

type CollectibleView struct {
	Kind string `json:"kind"`
	Cell Cell   `json:"cell"`
}

// Snapshot copies the current round state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Score:     s.score,
		Chain:     s.chain,
		Remaining: s.remaining,
		Outcome:   s.outcome,
		Player: PlayerView{
			ID:        s.player.ID,
			Pos:       s.player.Pos,
			Direction: s.player.Dir,
			Moving:    s.player.Moving,
		},
		Agents: make([]AgentView, 0, len(s.agents)),
	}
	for _, a := range s.agents {
		snap.Agents = append(snap.Agents, AgentView{
			ID:          a.ID,
			VisualKey:   a.Role.Profile().VisualKey,
			Pos:         a.Pos,
			Direction:   a.Dir,
			Threat:      a.Threat,
			Containment: a.Containment,
		})
	}
	for _, c := range s.Collectibles() {
		snap.Collectibles = append(snap.Collectibles, CollectibleView{Kind: c.Kind.String(), Cell: c.Cell})
	}
	return snap
}
