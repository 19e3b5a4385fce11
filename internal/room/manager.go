package room

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/mazechase-server/internal/game"
)

// Manager manages all active rooms. Every room plays the same level and tuning.
type Manager struct {
	rooms map[string]*Room // code -> room
	mu    sync.RWMutex

	level    *game.Level
	tuning   game.Tuning
	tickRate int
}

// NewManager creates a new room manager.
func NewManager(level *game.Level, tuning game.Tuning, tickRate int) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		level:    level,
		tuning:   tuning,
		tickRate: tickRate,
	}
}

// CreateRoom creates a new room and returns it.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, err := GenerateCode(func(code string) bool {
		_, ok := m.rooms[code]
		return ok
	})
	if err != nil {
		return nil, err
	}
	room, err := NewRoom(code, m.level, m.tuning, m.tickRate)
	if err != nil {
		return nil, err
	}
	m.rooms[code] = room

	slog.Info("room created", "code", code)
	return room, nil
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom removes a room by its code.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
	slog.Info("room removed", "code", code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// FindRoomByClientID finds the room a client is playing or watching in.
func (m *Manager) FindRoomByClientID(clientID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		if room.HasClient(clientID) {
			return room
		}
	}
	return nil
}

// StopAll ends every round in progress. The server calls it before closing
// client connections so no room broadcasts to a closed client.
func (m *Manager) StopAll() {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	for _, r := range rooms {
		r.StopGame(game.OutcomeNone)
	}
	slog.Info("all rooms stopped", "rooms", len(rooms))
}
