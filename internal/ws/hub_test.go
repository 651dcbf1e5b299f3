package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zaptest.NewLogger(t))
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, []string{"http://localhost:5173"}, zaptest.NewLogger(t)))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
}

func TestHub_PublishReachesClients(t *testing.T) {
	hub, srv := startHub(t)

	conn, _, err := dial(t, srv, "http://localhost:5173")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("application_submitted", map[string]any{"role_id": "r-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, "application_submitted", evt.Type)
	assert.Equal(t, "r-1", evt.Payload["role_id"])
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)

	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsUnknownOrigin(t *testing.T) {
	_, srv := startHub(t)

	_, res, err := dial(t, srv, "https://evil.example.com")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	h.Publish("x", nil)
	h.Broadcast([]byte("x"))
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_RegisterAfterShutdownClosesClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := &Client{hub: hub, send: make(chan []byte, sendBuffer)}
	hub.Register(c)
	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())

	hub.Unregister(c)
}
