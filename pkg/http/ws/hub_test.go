package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipe returns a server side Connection with its WritePump running and the
// client end of the socket.
func pipe(t *testing.T) (*Connection, *websocket.Conn) {
	t.Helper()
	serverSide := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var up websocket.Upgrader
		conn, err := up.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		serverSide <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	conn := NewConnection(<-serverSide, zerolog.Nop())
	go conn.WritePump()
	return conn, client
}

func read(t *testing.T, client *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	return msg
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeError, ErrorPayload{Code: "x", Message: "y"})
	require.NoError(t, err)
	assert.Equal(t, TypeError, msg.Type)
	assert.JSONEq(t, `{"code":"x","message":"y"}`, string(msg.Payload))

	msg, err = NewMessage(TypeSessionState, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	_, err = NewMessage(TypeSessionState, func() {})
	assert.Error(t, err)
}

func TestHub_BroadcastToWatchers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	session := uuid.New()

	connA, clientA := pipe(t)
	connB, clientB := pipe(t)
	idA, idB := uuid.New(), uuid.New()
	hub.Register(idA, connA)
	hub.Register(idB, connB)
	hub.Watch(session, idA)
	hub.Watch(session, idB)
	assert.Equal(t, 2, hub.Watchers(session))

	msg, err := NewMessage(TypeSessionState, map[string]int{"index": 1})
	require.NoError(t, err)
	require.NoError(t, hub.BroadcastToSession(session, msg))

	for _, client := range []*websocket.Conn{clientA, clientB} {
		got := read(t, client)
		assert.Equal(t, TypeSessionState, got.Type)
		var payload map[string]int
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, 1, payload["index"])
	}

	hub.Unwatch(session, idB)
	assert.Equal(t, 1, hub.Watchers(session))
}

func TestHub_UnregisterReportsOrphans(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	shared, solo := uuid.New(), uuid.New()

	connA, _ := pipe(t)
	connB, _ := pipe(t)
	idA, idB := uuid.New(), uuid.New()
	hub.Register(idA, connA)
	hub.Register(idB, connB)
	hub.Watch(shared, idA)
	hub.Watch(shared, idB)
	hub.Watch(solo, idA)

	orphaned := hub.Unregister(idA)
	assert.Equal(t, []uuid.UUID{solo}, orphaned)
	assert.Equal(t, 1, hub.Watchers(shared))

	assert.ErrorIs(t, hub.Send(idA, Message{Type: TypeError}), ErrConnectionNotFound)
	assert.ErrorIs(t, connA.Send(Message{Type: TypeError}), ErrConnectionClosed)
}

func TestConnection_CloseIsIdempotent(t *testing.T) {
	conn, client := pipe(t)

	conn.Close()
	conn.Close()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := client.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived), "got %v", err)
}
