package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mathquest/internal/question"
	httperrors "github.com/gokatarajesh/mathquest/pkg/http/errors"
	ws "github.com/gokatarajesh/mathquest/pkg/http/ws"
)

const autoAdvanceTimeout = 5 * time.Second

// AnswerResultPayload is sent after every answer message.
type AnswerResultPayload struct {
	Outcome     Outcome     `json:"outcome"`
	Session     SessionView `json:"session"`
	AutoAdvance bool        `json:"auto_advance"`
}

// RoundCompletePayload is sent when a round ends.
type RoundCompletePayload struct {
	SessionID uuid.UUID `json:"session_id"`
	Result    *Result   `json:"result"`
}

// WSHandler drives sessions over a WebSocket. Correct answers advance on
// their own after the pacer delay; wrong answers wait for a next message.
type WSHandler struct {
	service  *Service
	hub      *ws.Hub
	pacer    *Pacer
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewWSHandler creates the play handler.
func NewWSHandler(service *Service, hub *ws.Hub, pacer *Pacer, upgrader websocket.Upgrader, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		service:  service,
		hub:      hub,
		pacer:    pacer,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "game_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and serves the play protocol.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	h.HandleConnection(conn)
}

// HandleConnection serves one connection until it closes.
func (h *WSHandler) HandleConnection(conn *websocket.Conn) {
	connID := uuid.New()
	logger := h.logger.With().Str("conn_id", connID.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	h.hub.Register(connID, wsConn)

	go wsConn.WritePump()

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(context.Background(), connID, msg)
	})

	// Leaving stops any pending auto-advance of sessions nobody watches.
	for _, sessionID := range h.hub.Unregister(connID) {
		h.pacer.Cancel(sessionID)
	}
}

func (h *WSHandler) handleMessage(ctx context.Context, connID uuid.UUID, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeStart:
		return h.handleStart(ctx, connID, msg.Payload)
	case ws.TypeResume:
		return h.handleResume(ctx, connID, msg.Payload)
	case ws.TypeAnswer:
		return h.handleAnswer(ctx, connID, msg.Payload)
	case ws.TypeNext:
		return h.handleSessionCommand(ctx, connID, msg.Payload, h.service.Advance)
	case ws.TypeContinue:
		return h.handleSessionCommand(ctx, connID, msg.Payload, h.service.Continue)
	case ws.TypeRestart:
		return h.handleSessionCommand(ctx, connID, msg.Payload, h.service.Restart)
	case ws.TypeLeave:
		return h.handleLeave(connID, msg.Payload)
	default:
		return h.sendError(connID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *WSHandler) handleStart(ctx context.Context, connID uuid.UUID, payload json.RawMessage) error {
	var req ws.StartPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return h.sendError(connID, httperrors.ErrCodeInvalidPayload, "Invalid start payload")
		}
	}

	session, err := h.service.StartSession(ctx, StartRequest{Category: question.Category(req.Category)})
	if err != nil {
		return h.sendServiceError(connID, err)
	}
	h.hub.Watch(session.ID, connID)
	return h.send(connID, ws.TypeSessionState, NewSessionView(session))
}

func (h *WSHandler) handleResume(ctx context.Context, connID uuid.UUID, payload json.RawMessage) error {
	id, ok, err := h.parseSession(connID, payload)
	if !ok {
		return err
	}
	session, err := h.service.Get(ctx, id)
	if err != nil {
		return h.sendServiceError(connID, err)
	}
	h.hub.Watch(session.ID, connID)
	return h.send(connID, ws.TypeSessionState, NewSessionView(session))
}

func (h *WSHandler) handleAnswer(ctx context.Context, connID uuid.UUID, payload json.RawMessage) error {
	var req ws.AnswerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return h.sendError(connID, httperrors.ErrCodeInvalidPayload, "Invalid answer payload")
	}
	if req.Index == nil {
		return h.sendError(connID, httperrors.ErrCodeInvalidPayload, "index is required")
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		return h.sendError(connID, httperrors.ErrCodeInvalidSessionID, "Invalid session ID")
	}

	outcome, session, err := h.service.SubmitAnswer(ctx, id, *req.Index)
	if err != nil {
		return h.sendServiceError(connID, err)
	}

	h.hub.Watch(id, connID)
	autoAdvance := outcome.Accepted && outcome.Correct
	err = h.hub.BroadcastToSession(id, h.message(ws.TypeAnswerResult, AnswerResultPayload{
		Outcome:     outcome,
		Session:     NewSessionView(session),
		AutoAdvance: autoAdvance,
	}))
	if autoAdvance {
		h.scheduleAdvance(id, outcome.Position)
	}
	return err
}

// scheduleAdvance moves the session on after the pacer delay, unless the
// round has already left pos by then.
func (h *WSHandler) scheduleAdvance(id uuid.UUID, pos Position) {
	h.pacer.Schedule(id, func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoAdvanceTimeout)
		defer cancel()

		session, advanced, err := h.service.AdvanceFrom(ctx, id, pos)
		if err != nil {
			h.logger.Warn().Err(err).Str("session_id", id.String()).Msg("auto advance failed")
			return
		}
		if advanced {
			h.publishState(session)
		}
	})
}

type sessionCommand func(ctx context.Context, id uuid.UUID) (*Session, error)

func (h *WSHandler) handleSessionCommand(ctx context.Context, connID uuid.UUID, payload json.RawMessage, fn sessionCommand) error {
	id, ok, err := h.parseSession(connID, payload)
	if !ok {
		return err
	}
	// A manual command supersedes a pending auto-advance.
	h.pacer.Cancel(id)

	session, err := fn(ctx, id)
	if err != nil {
		return h.sendServiceError(connID, err)
	}
	h.hub.Watch(id, connID)
	h.publishState(session)
	return nil
}

func (h *WSHandler) handleLeave(connID uuid.UUID, payload json.RawMessage) error {
	id, ok, err := h.parseSession(connID, payload)
	if !ok {
		return err
	}
	h.hub.Unwatch(id, connID)
	if h.hub.Watchers(id) == 0 {
		h.pacer.Cancel(id)
	}
	return nil
}

// publishState sends the session to its watchers, followed by the result
// when the round has just completed.
func (h *WSHandler) publishState(session *Session) {
	if err := h.hub.BroadcastToSession(session.ID, h.message(ws.TypeSessionState, NewSessionView(session))); err != nil {
		h.logger.Debug().Err(err).Str("session_id", session.ID.String()).Msg("state broadcast incomplete")
	}
	if session.Complete {
		msg := h.message(ws.TypeRoundComplete, RoundCompletePayload{SessionID: session.ID, Result: session.Result})
		if err := h.hub.BroadcastToSession(session.ID, msg); err != nil {
			h.logger.Debug().Err(err).Str("session_id", session.ID.String()).Msg("result broadcast incomplete")
		}
	}
}

func (h *WSHandler) parseSession(connID uuid.UUID, payload json.RawMessage) (uuid.UUID, bool, error) {
	var req ws.SessionPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return uuid.Nil, false, h.sendError(connID, httperrors.ErrCodeInvalidPayload, "Invalid session payload")
	}
	if req.SessionID == "" {
		return uuid.Nil, false, h.sendError(connID, httperrors.ErrCodeNoActiveSession, "session_id is required")
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		return uuid.Nil, false, h.sendError(connID, httperrors.ErrCodeInvalidSessionID, "Invalid session ID")
	}
	return id, true, nil
}

func (h *WSHandler) message(msgType string, payload any) ws.Message {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msgType).Msg("encode message failed")
		msg, _ = ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: httperrors.ErrCodeInternalError, Message: "Internal error"})
	}
	return msg
}

func (h *WSHandler) send(connID uuid.UUID, msgType string, payload any) error {
	return h.hub.Send(connID, h.message(msgType, payload))
}

func (h *WSHandler) sendServiceError(connID uuid.UUID, err error) error {
	_, code, message := errorStatus(err)
	if !IsClientError(err) && !errors.Is(err, ErrSessionBusy) {
		h.logger.Error().Err(err).Str("conn_id", connID.String()).Msg("session command failed")
	}
	return h.sendError(connID, code, message)
}

func (h *WSHandler) sendError(connID uuid.UUID, code, message string) error {
	return h.send(connID, ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
}
