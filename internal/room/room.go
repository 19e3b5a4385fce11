package room

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

var (
	ErrNotWaiting = errors.New("room is not waiting for a game")
	ErrNotEnded   = errors.New("room has no finished game to restart")
)

// Room hosts one Simulation. A single client controls the player; any other
// clients watch.
type Room struct {
	Code  string         `json:"code"`
	State game.RoomState `json:"state"`

	level    *game.Level
	tuning   game.Tuning
	interval time.Duration
	sim      *game.Simulation

	// playerID is the client ID of the controlling client, empty if none.
	playerID string
	nickname string
	// Client mapping: client ID -> ws client, player and spectators alike
	clients map[string]*ws.Client

	// intent is the latest player input, consumed by the next tick.
	intent game.Direction

	// Game loop control
	stopCh chan struct{}

	mu sync.RWMutex
}

// NewRoom creates a waiting room with a fresh simulation of level.
func NewRoom(code string, level *game.Level, tuning game.Tuning, tickRate int) (*Room, error) {
	sim, err := game.NewSimulation(level, tuning)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", code, err)
	}
	if tickRate <= 0 {
		tickRate = game.TickRate
	}
	return &Room{
		Code:     code,
		State:    game.StateWaiting,
		level:    level,
		tuning:   tuning,
		interval: time.Second / time.Duration(tickRate),
		sim:      sim,
		clients:  make(map[string]*ws.Client),
	}, nil
}

// AddPlayer makes client the controlling player. Returns false if the room
// already has one.
func (r *Room) AddPlayer(client *ws.Client, nickname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.playerID != "" {
		return false
	}
	r.playerID = client.ID
	r.nickname = nickname
	r.sim.Player().Nickname = nickname
	r.clients[client.ID] = client
	return true
}

// AddSpectator adds a watch-only client.
func (r *Room) AddSpectator(client *ws.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID] = client
}

// RemoveClient drops a client. It reports whether that client was the player.
func (r *Room) RemoveClient(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, clientID)
	if r.playerID != clientID {
		return false
	}
	r.playerID = ""
	r.intent = game.DirNone
	return true
}

// IsPlayer reports whether clientID controls the player.
func (r *Room) IsPlayer(clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clientID != "" && r.playerID == clientID
}

// HasClient reports whether clientID is in the room.
func (r *Room) HasClient(clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[clientID]
	return ok
}

// ClientCount returns the number of connected clients.
func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// IsEmpty returns true if the room has no clients.
func (r *Room) IsEmpty() bool {
	return r.ClientCount() == 0
}

// CurrentState returns the room state.
func (r *Room) CurrentState() game.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// SetIntent records the player's latest direction. Only the most recent
// intent before a tick is used.
func (r *Room) SetIntent(dir game.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State == game.StatePlaying {
		r.intent = dir
	}
}

// BroadcastMessage sends a message to all clients in the room.
func (r *Room) BroadcastMessage(msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendMessage(msg)
	}
}

// SendToClient sends a message to a specific client.
func (r *Room) SendToClient(clientID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[clientID]; ok {
		client.SendMessage(msg)
	}
}

// Info describes the room for lobby messages.
func (r *Room) Info() RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomInfo{
		Code:       r.Code,
		State:      r.State.String(),
		HasPlayer:  r.playerID != "",
		Nickname:   r.nickname,
		Spectators: r.spectatorCount(),
	}
}

// spectatorCount must be called with r.mu held.
func (r *Room) spectatorCount() int {
	if r.playerID != "" {
		return len(r.clients) - 1
	}
	return len(r.clients)
}

// GameStart describes the static board for a starting round.
func (r *Room) GameStart() GameStartMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := r.level.Grid
	snap := r.sim.Snapshot()
	msg := GameStartMessage{
		Width:        g.Width(),
		Height:       g.Height(),
		CellSize:     g.CellSize(),
		Offset:       g.Offset(),
		Rows:         r.level.Rows(),
		TickRate:     int(time.Second / r.interval),
		Collectibles: make([]CollectibleEntry, 0, len(snap.Collectibles)),
		State:        newGameState(snap),
	}
	for _, c := range snap.Collectibles {
		msg.Collectibles = append(msg.Collectibles, CollectibleEntry{Kind: c.Kind, Row: c.Cell.Row, Col: c.Cell.Col})
	}
	return msg
}

// Snapshot returns the current game state DTO.
func (r *Room) Snapshot() GameStateMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newGameState(r.sim.Snapshot())
}

// Score returns the score of the current round.
func (r *Room) Score() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sim.Score()
}

// StartGame moves a waiting room to playing, broadcasts game_start and
// starts the tick loop.
func (r *Room) StartGame() error {
	r.mu.Lock()
	if r.State != game.StateWaiting {
		r.mu.Unlock()
		return ErrNotWaiting
	}
	r.State = game.StatePlaying
	r.intent = game.DirNone
	stopCh := make(chan struct{})
	r.stopCh = stopCh
	r.mu.Unlock()

	// Clients get the board before the first game_state
	start, _ := ws.NewMessage(ws.TypeGameStart, r.GameStart())
	r.BroadcastMessage(start)

	slog.Info("game started", "room", r.Code, "agents", len(r.tuning.Roster))
	go r.gameLoop(stopCh)
	return nil
}

// StopGame stops the game loop and transitions to ended state.
func (r *Room) StopGame(outcome game.Outcome) {
	r.mu.Lock()

	if r.State != game.StatePlaying {
		r.mu.Unlock()
		return
	}

	r.State = game.StateEnded

	// Signal the game loop to stop
	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}

	score := r.sim.Score()
	r.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeGameOver, GameOverMessage{
		Outcome: outcome.String(),
		Score:   score,
	})
	r.BroadcastMessage(msg)

	slog.Info("game ended", "room", r.Code, "outcome", outcome.String(), "score", score)
}

// Reset replaces a finished round with a fresh one, keeping the clients.
func (r *Room) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != game.StateEnded {
		return ErrNotEnded
	}
	sim, err := game.NewSimulation(r.level, r.tuning)
	if err != nil {
		return err
	}
	sim.Player().Nickname = r.nickname
	r.sim = sim
	r.intent = game.DirNone
	r.State = game.StateWaiting
	return nil
}

// step advances the simulation by one tick. It returns the snapshot and
// events to broadcast, and the outcome if the round just ended. ok is false
// when stopCh was closed before the lock was taken.
func (r *Room) step(stopCh <-chan struct{}) (state GameStateMessage, events []game.Event, outcome game.Outcome, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-stopCh:
		return GameStateMessage{}, nil, game.OutcomeNone, false
	default:
	}

	intent := r.intent
	r.intent = game.DirNone
	events = r.sim.Step(r.interval, intent)
	return newGameState(r.sim.Snapshot()), events, r.sim.Outcome(), true
}

// Close drops every client and returns them, so the caller can notify them
// first. The room is unusable afterwards.
func (r *Room) Close() []*ws.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]*ws.Client, 0, len(r.clients))
	for id, c := range r.clients {
		clients = append(clients, c)
		delete(r.clients, id)
	}
	r.playerID = ""
	r.intent = game.DirNone
	return clients
}

// gameLoop runs the simulation at the room's tick rate until stopCh, the
// channel of the round it was started for, is closed.
func (r *Room) gameLoop(stopCh <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			state, events, outcome, ok := r.step(stopCh)
			if !ok {
				return
			}

			msg, _ := ws.NewMessage(ws.TypeGameState, state)
			r.BroadcastMessage(msg)
			for _, e := range events {
				msg, _ := ws.NewMessage(ws.TypeGameEvent, newGameEvent(e))
				r.BroadcastMessage(msg)
			}

			if outcome != game.OutcomeNone {
				r.StopGame(outcome)
				return
			}
		}
	}
}
