package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/room"
	"github.com/ugaemi/mazechase-server/internal/ws"
)

func TestAwaitShutdown_Idle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, awaitShutdown(ctx, &http.Server{}, time.Second))
}

func TestAwaitShutdown_ReportsTimeout(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
	})}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)

	go http.Get("http://" + ln.Addr().String())
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("request never reached the handler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = awaitShutdown(ctx, srv, 20*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandleHealth(t *testing.T) {
	level := game.MustParseLevel(game.DefaultLayout, game.CellSize, game.BoardOffset)
	rm := room.NewManager(level, game.DefaultTuning(), game.TickRate)
	_, err := rm.CreateRoom()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handleHealth(ws.NewHub(), rm, rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, healthResponse{Status: "ok", Clients: 0, Rooms: 1}, body)
}
