package ws

import "encoding/json"

// MessageType constants for the play protocol.
const (
	// Client -> Server
	TypeStart    = "start"
	TypeResume   = "resume"
	TypeAnswer   = "answer"
	TypeNext     = "next"
	TypeContinue = "continue"
	TypeRestart  = "restart"
	TypeLeave    = "leave"

	// Server -> Client
	TypeSessionState  = "session_state"
	TypeAnswerResult  = "answer_result"
	TypeRoundComplete = "round_complete"
	TypeError         = "error"
)

// Message wraps all WebSocket payloads with their type.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = data
	return msg, nil
}

// Client Messages (incoming)

type StartPayload struct {
	Category string `json:"category,omitempty"`
}

// SessionPayload addresses an existing session (resume, next, continue,
// restart, leave).
type SessionPayload struct {
	SessionID string `json:"session_id"`
}

// AnswerPayload selects an option. Index is required; a nil Index is
// rejected rather than read as option 0.
type AnswerPayload struct {
	SessionID string `json:"session_id"`
	Index     *int   `json:"index"`
}

// Server Messages (outgoing)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
