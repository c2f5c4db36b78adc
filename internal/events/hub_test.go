package events_test

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/events"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

func startHub(t *testing.T) (*events.Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := events.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler(nil))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastsChanges(t *testing.T) {
	hub, srv, _ := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	hub.StateChanged(context.Background(), service.Change{Kind: service.ChangeStepAdded, TripID: "t1", StepID: "s1"})

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg events.Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "step.added", msg.Type)
		assert.Equal(t, "t1", msg.TripID)
		assert.Equal(t, "s1", msg.StepID)
		assert.False(t, msg.Timestamp.IsZero())
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub, srv, _ := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, srv, cancel := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var ne net.Error
	assert.False(t, errors.As(err, &ne) && ne.Timeout(), "expected close, got %v", err)
	assert.Zero(t, hub.Clients())
}

func TestHub_StateChangedDoesNotBlockWithoutRun(t *testing.T) {
	hub := events.NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.StateChanged(context.Background(), service.Change{Kind: service.ChangeTripCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StateChanged blocked")
	}
}
