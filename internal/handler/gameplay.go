package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	rm *room.Manager
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager) *GameplayHandler {
	return &GameplayHandler{rm: rm}
}

type playerInputRequest struct {
	Direction game.Direction `json:"direction"`
}

// HandlePlayerInput records the player's steering intent for the next tick.
func (h *GameplayHandler) HandlePlayerInput(client *ws.Client, msg ws.Message) {
	var req playerInputRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Direction == game.DirNone {
		client.SendMessage(ws.NewErrorMessage("invalid direction"))
		return
	}

	r := h.rm.FindRoomByClientID(client.ID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}
	if !r.IsPlayer(client.ID) {
		client.SendMessage(ws.NewErrorMessage("spectators cannot control the game"))
		return
	}
	if r.CurrentState() != game.StatePlaying {
		client.SendMessage(ws.NewErrorMessage("game is not in progress"))
		return
	}

	r.SetIntent(req.Direction)

	slog.Debug("player input", "room", r.Code, "direction", req.Direction.String())
}
