package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

const testLayout = `
#######
#P....#
#######
`

type sentMessage struct {
	Type string
	Data json.RawMessage
}

func newTestManager(t *testing.T) *room.Manager {
	t.Helper()
	tuning := game.DefaultTuning()
	tuning.Roster = nil
	level, err := game.ParseLevel(testLayout, tuning.CellSize, tuning.Offset)
	require.NoError(t, err)
	return room.NewManager(level, tuning, game.TickRate)
}

// newTestClient returns a client plus a channel of the JSON messages sent to it.
func newTestClient(id string) (*ws.Client, chan sentMessage) {
	client := &ws.Client{
		ID:       id,
		Send:     make(chan []byte, 256),
		Encoding: ws.EncodingJSON,
	}
	ch := make(chan sentMessage, 256)
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()
	return client, ch
}

func send(t *testing.T, router *Router, client *ws.Client, msgType string, payload any) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

func setupGameplayTest(t *testing.T) (*Router, *room.Room, *ws.Client, chan sentMessage) {
	t.Helper()
	rm := newTestManager(t)
	router := NewRouter(rm)

	client, ch := newTestClient("test-client")
	send(t, router, client, ws.TypeCreateRoom, createRoomRequest{Nickname: "Runner"})
	resp := readResponseWithTimeout(t, ch, 500*time.Millisecond)
	require.Equal(t, ws.TypeCreateRoom, resp.Type)

	r := rm.FindRoomByClientID(client.ID)
	require.NotNil(t, r)
	return router, r, client, ch
}

func TestHandlePlayerInput_SteersPlayer(t *testing.T) {
	router, r, client, ch := setupGameplayTest(t)
	send(t, router, client, ws.TypeStartGame, nil)
	defer r.StopGame(game.OutcomeNone)

	drainCh(ch)
	send(t, router, client, ws.TypePlayerInput, map[string]string{"direction": "right"})

	require.Eventually(t, func() bool {
		return r.Snapshot().Player.Moving
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "right", r.Snapshot().Player.Direction)
}

func TestHandlePlayerInput_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"unknown direction", map[string]string{"direction": "sideways"}},
		{"missing direction", map[string]string{}},
		{"wrong type", map[string]int{"direction": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, r, client, ch := setupGameplayTest(t)
			send(t, router, client, ws.TypeStartGame, nil)
			defer r.StopGame(game.OutcomeNone)

			drainCh(ch)
			send(t, router, client, ws.TypePlayerInput, tt.payload)

			resp := readResponseWithTimeout(t, ch, 500*time.Millisecond)
			for resp.Type != ws.TypeError {
				resp = readResponseWithTimeout(t, ch, 500*time.Millisecond)
			}
			var errMsg ws.ErrorMessage
			json.Unmarshal(resp.Data, &errMsg)
			assert.Equal(t, "invalid direction", errMsg.Message)
		})
	}
}

func TestHandlePlayerInput_NotPlaying(t *testing.T) {
	router, _, client, ch := setupGameplayTest(t)

	drainCh(ch)

	// Room is in waiting state - should reject input
	send(t, router, client, ws.TypePlayerInput, map[string]string{"direction": "up"})

	resp := readResponseWithTimeout(t, ch, 500*time.Millisecond)
	assert.Equal(t, ws.TypeError, resp.Type)

	var errMsg ws.ErrorMessage
	json.Unmarshal(resp.Data, &errMsg)
	assert.Equal(t, "game is not in progress", errMsg.Message)
}

func TestHandlePlayerInput_SpectatorRejected(t *testing.T) {
	router, r, _, _ := setupGameplayTest(t)

	watcher, wch := newTestClient("watcher")
	send(t, router, watcher, ws.TypeSpectate, spectateRequest{Code: r.Code})
	drainCh(wch)

	send(t, router, watcher, ws.TypePlayerInput, map[string]string{"direction": "up"})

	resp := readResponseWithTimeout(t, wch, 500*time.Millisecond)
	for resp.Type != ws.TypeError {
		resp = readResponseWithTimeout(t, wch, 500*time.Millisecond)
	}
	var errMsg ws.ErrorMessage
	json.Unmarshal(resp.Data, &errMsg)
	assert.Equal(t, "spectators cannot control the game", errMsg.Message)
}

func TestHandlePlayerInput_NotInRoom(t *testing.T) {
	router := NewRouter(newTestManager(t))
	client, ch := newTestClient("loner")

	send(t, router, client, ws.TypePlayerInput, map[string]string{"direction": "up"})

	resp := readResponseWithTimeout(t, ch, 500*time.Millisecond)
	assert.Equal(t, ws.TypeError, resp.Type)
}

func drainCh(ch chan sentMessage) {
	// Let the forwarding goroutine catch up.
	time.Sleep(10 * time.Millisecond)
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func readResponseWithTimeout(t *testing.T, ch chan sentMessage, timeout time.Duration) sentMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatal("timeout waiting for response")
		return sentMessage{}
	}
}
