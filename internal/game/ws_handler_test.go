package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/mathquest/pkg/http/errors"
	ws "github.com/gokatarajesh/mathquest/pkg/http/ws"
)

func dialPlay(t *testing.T, perRound int) *websocket.Conn {
	t.Helper()
	svc := NewService(&stubSource{}, NewMemoryStore(time.Hour), ServiceOptions{
		QuestionsPerRound: perRound,
		Clock:             func() time.Time { return testNow },
	}, zerolog.Nop())
	pacer := NewPacer(10 * time.Millisecond)
	t.Cleanup(pacer.Stop)
	handler := NewWSHandler(svc, ws.NewHub(zerolog.Nop()), pacer, websocket.Upgrader{}, zerolog.Nop())

	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func answerAt(sessionID string, index int) ws.AnswerPayload {
	return ws.AnswerPayload{SessionID: sessionID, Index: &index}
}

// expectMsg reads the next message, requires its type and decodes the payload.
func expectMsg[T any](t *testing.T, conn *websocket.Conn, msgType string) T {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, msgType, msg.Type, string(msg.Payload))
	var payload T
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	return payload
}

func TestWS_CorrectAnswerAutoAdvances(t *testing.T) {
	conn := dialPlay(t, 5)

	sendMsg(t, conn, ws.TypeStart, ws.StartPayload{})
	state := expectMsg[SessionView](t, conn, ws.TypeSessionState)
	require.NotNil(t, state.Current)
	assert.Equal(t, 0, state.Index)

	// Fixture question 0 has its answer at option 0.
	sendMsg(t, conn, ws.TypeAnswer, answerAt(state.ID.String(), 0))
	answer := expectMsg[AnswerResultPayload](t, conn, ws.TypeAnswerResult)
	assert.True(t, answer.Outcome.Correct)
	assert.True(t, answer.AutoAdvance)
	assert.True(t, answer.Session.Pending)

	state = expectMsg[SessionView](t, conn, ws.TypeSessionState)
	assert.Equal(t, 1, state.Index)
	assert.False(t, state.Pending)
}

func TestWS_WrongAnswerWaitsForNext(t *testing.T) {
	conn := dialPlay(t, 5)

	sendMsg(t, conn, ws.TypeStart, nil)
	state := expectMsg[SessionView](t, conn, ws.TypeSessionState)
	id := state.ID.String()

	sendMsg(t, conn, ws.TypeAnswer, answerAt(id, 2))
	answer := expectMsg[AnswerResultPayload](t, conn, ws.TypeAnswerResult)
	assert.False(t, answer.Outcome.Correct)
	assert.False(t, answer.AutoAdvance)

	sendMsg(t, conn, ws.TypeNext, ws.SessionPayload{SessionID: id})
	state = expectMsg[SessionView](t, conn, ws.TypeSessionState)
	assert.Equal(t, 1, state.Index)
}

func TestWS_RoundCompletes(t *testing.T) {
	conn := dialPlay(t, 3)

	sendMsg(t, conn, ws.TypeStart, nil)
	state := expectMsg[SessionView](t, conn, ws.TypeSessionState)
	id := state.ID.String()

	for i := 0; i < 3; i++ {
		// Fixture question i has its answer at option i%3.
		sendMsg(t, conn, ws.TypeAnswer, answerAt(id, i%3))
		expectMsg[AnswerResultPayload](t, conn, ws.TypeAnswerResult)
		state = expectMsg[SessionView](t, conn, ws.TypeSessionState)
	}
	assert.Equal(t, StatusComplete, state.Status)

	done := expectMsg[RoundCompletePayload](t, conn, ws.TypeRoundComplete)
	require.NotNil(t, done.Result)
	assert.Equal(t, 3, done.Result.Score)
	assert.Equal(t, 3, done.Result.Stars)

	sendMsg(t, conn, ws.TypeContinue, ws.SessionPayload{SessionID: id})
	state = expectMsg[SessionView](t, conn, ws.TypeSessionState)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, StatusInProgress, state.Status)
}

func TestWS_Errors(t *testing.T) {
	conn := dialPlay(t, 5)

	sendMsg(t, conn, "dance", nil)
	e := expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeUnknownMessageType, e.Code)

	sendMsg(t, conn, ws.TypeResume, ws.SessionPayload{SessionID: "nope"})
	e = expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeInvalidSessionID, e.Code)

	sendMsg(t, conn, ws.TypeNext, ws.SessionPayload{})
	e = expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeNoActiveSession, e.Code)

	sendMsg(t, conn, ws.TypeResume, ws.SessionPayload{SessionID: "6f1c2a52-8f0e-4d8b-9a55-3c1f0f6f1a11"})
	e = expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeSessionNotFound, e.Code)

	sendMsg(t, conn, ws.TypeStart, ws.StartPayload{Category: "algebra"})
	e = expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeUnknownCategory, e.Code)
}

func TestWS_AnswerWithoutIndexIsRejected(t *testing.T) {
	conn := dialPlay(t, 5)

	sendMsg(t, conn, ws.TypeStart, nil)
	state := expectMsg[SessionView](t, conn, ws.TypeSessionState)
	id := state.ID.String()

	sendMsg(t, conn, ws.TypeAnswer, ws.SessionPayload{SessionID: id})
	e := expectMsg[ws.ErrorPayload](t, conn, ws.TypeError)
	assert.Equal(t, httperrors.ErrCodeInvalidPayload, e.Code)

	sendMsg(t, conn, ws.TypeResume, ws.SessionPayload{SessionID: id})
	state = expectMsg[SessionView](t, conn, ws.TypeSessionState)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, 0, state.Score)
	assert.False(t, state.Pending, "nothing was recorded for the question")
}
