package game

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionBusy      = errors.New("session is locked by another request")
	ErrRoundNotComplete = errors.New("round is not complete")
	ErrNoQuestions      = errors.New("no questions available")
)
