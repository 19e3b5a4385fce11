package ws

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`

	// payload is the typed value Data was marshaled from. Binary clients
	// receive it msgpack-encoded instead of the JSON bytes.
	payload any
}

// Message types - Lobby
const (
	TypeCreateRoom = "create_room"
	TypeSpectate   = "spectate"
	TypeLeaveRoom  = "leave_room"
	TypeStartGame  = "start_game"
	TypeRestart    = "restart"
)

// Message types - Gameplay
const (
	TypePlayerInput = "player_input"
	TypeGameStart   = "game_start"
	TypeGameState   = "game_state"
	TypeGameEvent   = "game_event"
	TypeGameOver    = "game_over"
)

// Message types - System
const (
	TypeError      = "error"
	TypeRoomInfo   = "room_info"
	TypeRoomClosed = "room_closed"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	payload := ErrorMessage{Message: msg}
	data, _ := json.Marshal(payload)
	return Message{Type: TypeError, Data: data, payload: payload}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data, payload: payload}, nil
}

type binaryEnvelope struct {
	Type string `msgpack:"type"`
	Data any    `msgpack:"data,omitempty"`
}

// Encode serializes msg for a client using enc.
func (m Message) Encode(enc Encoding) ([]byte, error) {
	if enc != EncodingMsgpack {
		return json.Marshal(m)
	}

	var buf bytes.Buffer
	e := msgpack.NewEncoder(&buf)
	e.SetCustomStructTag("json")
	if err := e.Encode(binaryEnvelope{Type: m.Type, Data: m.payload}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMsgpack reads a binary frame produced by Encode. The payload is
// returned as generic maps and slices.
func DecodeMsgpack(data []byte) (string, any, error) {
	var env binaryEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return "", nil, err
	}
	return env.Type, env.Data, nil
}
