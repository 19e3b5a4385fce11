package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

// LobbyHandler handles room lifecycle messages.
type LobbyHandler struct {
	rm *room.Manager
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager) *LobbyHandler {
	return &LobbyHandler{rm: rm}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
}

type createRoomResponse struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
}

// HandleCreateRoom creates a room with the client as its player.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if h.rm.FindRoomByClientID(client.ID) != nil {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r, err := h.rm.CreateRoom()
	if err != nil {
		slog.Error("failed to create room", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("failed to create room"))
		return
	}
	r.AddPlayer(client, req.Nickname)

	resp, _ := ws.NewMessage(ws.TypeCreateRoom, createRoomResponse{
		Code:     r.Code,
		PlayerID: r.Snapshot().Player.ID,
	})
	client.SendMessage(resp)

	slog.Info("player created room", "player", req.Nickname, "room", r.Code)
}

type spectateRequest struct {
	Code string `json:"code"`
}

// HandleSpectate adds the client to a room as a watcher.
func (h *LobbyHandler) HandleSpectate(client *ws.Client, msg ws.Message) {
	var req spectateRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}

	r := h.rm.GetRoom(req.Code)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}
	if h.rm.FindRoomByClientID(client.ID) != nil {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r.AddSpectator(client)
	if r.CurrentState() == game.StatePlaying {
		start, _ := ws.NewMessage(ws.TypeGameStart, r.GameStart())
		client.SendMessage(start)
	}
	h.broadcastRoomInfo(r)

	slog.Info("spectator joined room", "client", client.ID, "room", r.Code)
}

// HandleStartGame starts the round. Only the player may start it.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	r := h.playerRoom(client)
	if r == nil {
		return
	}

	if err := r.StartGame(); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	slog.Info("game starting", "room", r.Code)
}

// HandleRestart resets a finished room so a new round can start.
func (h *LobbyHandler) HandleRestart(client *ws.Client, _ ws.Message) {
	r := h.playerRoom(client)
	if r == nil {
		return
	}

	if err := r.Reset(); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.broadcastRoomInfo(r)

	slog.Info("room reset", "room", r.Code)
}

// HandleLeaveRoom handles a client leaving its room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

// playerRoom returns the room client controls, replying with an error otherwise.
func (h *LobbyHandler) playerRoom(client *ws.Client) *room.Room {
	r := h.rm.FindRoomByClientID(client.ID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return nil
	}
	if !r.IsPlayer(client.ID) {
		client.SendMessage(ws.NewErrorMessage("spectators cannot control the game"))
		return nil
	}
	return r
}

func (h *LobbyHandler) removeClient(client *ws.Client) {
	r := h.rm.FindRoomByClientID(client.ID)
	if r == nil {
		return
	}

	wasPlayer := r.RemoveClient(client.ID)
	slog.Info("client left", "client", client.ID, "room", r.Code, "player", wasPlayer)

	switch {
	case wasPlayer:
		h.closeRoom(r, "player left")
	case r.IsEmpty():
		r.StopGame(game.OutcomeNone)
		h.rm.RemoveRoom(r.Code)
	default:
		h.broadcastRoomInfo(r)
	}
}

type roomClosedMessage struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// closeRoom ends the round, tells the remaining spectators why and removes
// the room. Spectators cannot take over the player slot.
func (h *LobbyHandler) closeRoom(r *room.Room, reason string) {
	r.StopGame(game.OutcomeNone)
	msg, _ := ws.NewMessage(ws.TypeRoomClosed, roomClosedMessage{Code: r.Code, Reason: reason})
	for _, c := range r.Close() {
		c.SendMessage(msg)
	}
	h.rm.RemoveRoom(r.Code)
}

func (h *LobbyHandler) broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, r.Info())
	r.BroadcastMessage(resp)
}
