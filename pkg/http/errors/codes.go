package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeUnknownCategory  = "unknown_category"
	ErrCodeInvalidSessionID = "invalid_session_id"

	// Resource errors
	ErrCodeSessionNotFound = "session_not_found"

	// Game errors
	ErrCodeSessionBusy      = "session_busy"
	ErrCodeRoundNotComplete = "round_not_complete"
	ErrCodeNoQuestions      = "no_questions"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeNoActiveSession    = "no_active_session"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
