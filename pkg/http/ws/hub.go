package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// Hub tracks live connections and which sessions each one is watching.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*Connection            // conn_id -> connection
	sessions    map[uuid.UUID]map[uuid.UUID]struct{} // session_id -> conn_ids
	logger      zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*Connection),
		sessions:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
		logger:      logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a connection, closing any previous one with the same id.
func (h *Hub) Register(connID uuid.UUID, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[connID]; exists {
		old.Close()
	}
	h.connections[connID] = conn
	h.logger.Debug().Str("conn_id", connID.String()).Msg("connection registered")
}

// Unregister closes and removes a connection and detaches it from every
// session. It returns the sessions that no longer have any watcher.
func (h *Hub) Unregister(connID uuid.UUID) []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[connID]; exists {
		conn.Close()
		delete(h.connections, connID)
		h.logger.Debug().Str("conn_id", connID.String()).Msg("connection unregistered")
	}

	var orphaned []uuid.UUID
	for sessionID, watchers := range h.sessions {
		if _, ok := watchers[connID]; !ok {
			continue
		}
		delete(watchers, connID)
		if len(watchers) == 0 {
			delete(h.sessions, sessionID)
			orphaned = append(orphaned, sessionID)
		}
	}
	return orphaned
}

// Watch subscribes a connection to updates of a session.
func (h *Hub) Watch(sessionID, connID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers, ok := h.sessions[sessionID]
	if !ok {
		watchers = make(map[uuid.UUID]struct{})
		h.sessions[sessionID] = watchers
	}
	watchers[connID] = struct{}{}
}

// Unwatch removes a connection from a session.
func (h *Hub) Unwatch(sessionID, connID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers := h.sessions[sessionID]
	delete(watchers, connID)
	if len(watchers) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Watchers returns how many connections watch a session.
func (h *Hub) Watchers(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// BroadcastToSession sends a message to every watcher of a session.
func (h *Hub) BroadcastToSession(sessionID uuid.UUID, msg Message) error {
	h.mu.RLock()
	targets := make([]uuid.UUID, 0, len(h.sessions[sessionID]))
	for connID := range h.sessions[sessionID] {
		targets = append(targets, connID)
	}
	h.mu.RUnlock()

	var firstErr error
	for _, connID := range targets {
		if err := h.Send(connID, msg); err != nil && firstErr == nil {
			firstErr = err
			h.logger.Warn().Err(err).Str("conn_id", connID.String()).Msg("session broadcast failed")
		}
	}
	return firstErr
}

// Send delivers a message to one connection.
func (h *Hub) Send(connID uuid.UUID, msg Message) error {
	h.mu.RLock()
	conn, exists := h.connections[connID]
	h.mu.RUnlock()

	if !exists {
		return ErrConnectionNotFound
	}
	return conn.Send(msg)
}

// Connection represents a WebSocket connection with send queue.
type Connection struct {
	conn   *websocket.Conn
	sendCh chan Message
	mu     sync.Mutex
	closed bool
	logger zerolog.Logger
}

// NewConnection wraps a WebSocket connection.
func NewConnection(conn *websocket.Conn, logger zerolog.Logger) *Connection {
	return &Connection{
		conn:   conn,
		sendCh: make(chan Message, sendBuffer),
		logger: logger,
	}
}

// Send queues a message for delivery.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close shuts down the send queue; WritePump then closes the socket.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
}

// WritePump drains the send queue and keeps the peer alive with pings.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Warn().Err(err).Msg("write error")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump receives messages and calls the handler until the peer goes away.
func (c *Connection) ReadPump(handler func(Message) error) {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("read error")
			}
			return
		}

		if err := handler(msg); err != nil {
			c.logger.Warn().Err(err).Msg("message handler error")
		}
	}
}

var (
	ErrConnectionNotFound = &Error{Code: "connection_not_found", Message: "Connection not found"}
	ErrConnectionClosed   = &Error{Code: "connection_closed", Message: "Connection is closed"}
	ErrSendQueueFull      = &Error{Code: "send_queue_full", Message: "Send queue is full"}
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
