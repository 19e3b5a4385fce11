package room

import "github.com/ugaemi/mazechase-server/internal/game"

// RoomInfo is the room_info payload.
type RoomInfo struct {
	Code       string `json:"code"`
	State      string `json:"state"`
	HasPlayer  bool   `json:"has_player"`
	Nickname   string `json:"nickname,omitempty"`
	Spectators int    `json:"spectators"`
}

type GameStartMessage struct {
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	CellSize     float64            `json:"cell_size"`
	Offset       float64            `json:"offset"`
	Rows         []string           `json:"rows"`
	TickRate     int                `json:"tick_rate"`
	Collectibles []CollectibleEntry `json:"collectibles"`
	State        GameStateMessage   `json:"state"`
}

type CollectibleEntry struct {
	Kind string `json:"kind"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type GameStateMessage struct {
	Tick      int               `json:"tick"`
	Score     int               `json:"score"`
	Chain     int               `json:"chain"`
	Remaining int               `json:"remaining"`
	Player    PlayerStateEntry  `json:"player"`
	Agents    []AgentStateEntry `json:"agents"`
}

type PlayerStateEntry struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction string  `json:"direction"`
	Moving    bool    `json:"moving"`
}

type AgentStateEntry struct {
	ID          string  `json:"id"`
	Visual      string  `json:"visual"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Direction   string  `json:"direction"`
	Threat      string  `json:"threat"`
	Containment string  `json:"containment"`
}

type GameEventMessage struct {
	Kind      string `json:"kind"`
	Direction string `json:"direction,omitempty"`
	AgentID   string `json:"agent_id,omitempty"`
	Points    int    `json:"points,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

type GameOverMessage struct {
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}

func newGameState(snap game.Snapshot) GameStateMessage {
	msg := GameStateMessage{
		Tick:      snap.Tick,
		Score:     snap.Score,
		Chain:     snap.Chain,
		Remaining: snap.Remaining,
		Player: PlayerStateEntry{
			ID:        snap.Player.ID,
			X:         snap.Player.Pos.X,
			Y:         snap.Player.Pos.Y,
			Direction: snap.Player.Direction.String(),
			Moving:    snap.Player.Moving,
		},
		Agents: make([]AgentStateEntry, 0, len(snap.Agents)),
	}
	for _, a := range snap.Agents {
		msg.Agents = append(msg.Agents, AgentStateEntry{
			ID:          a.ID,
			Visual:      a.VisualKey,
			X:           a.Pos.X,
			Y:           a.Pos.Y,
			Direction:   a.Direction.String(),
			Threat:      a.Threat.String(),
			Containment: a.Containment.String(),
		})
	}
	return msg
}

func newGameEvent(e game.Event) GameEventMessage {
	msg := GameEventMessage{
		Kind:    e.Kind.String(),
		AgentID: e.AgentID,
		Points:  e.Points,
	}
	if e.Direction != game.DirNone {
		msg.Direction = e.Direction.String()
	}
	if e.Outcome != game.OutcomeNone {
		msg.Outcome = e.Outcome.String()
	}
	return msg
}
