package game

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mathquest/internal/question"
	httperrors "github.com/gokatarajesh/mathquest/pkg/http/errors"
)

const maxSampleCount = 50

// Catalog is the read side of the question bank used by the HTTP surface.
type Catalog interface {
	QuestionSource
	Statistics() question.Statistics
}

// HTTPHandlers provides REST endpoints for sessions and the question bank.
type HTTPHandlers struct {
	service *Service
	catalog Catalog
	pacer   *Pacer
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for game endpoints. Commands sent
// over HTTP supersede any auto-advance pending in pacer.
func NewHTTPHandlers(service *Service, catalog Catalog, pacer *Pacer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		catalog: catalog,
		pacer:   pacer,
		logger:  logger.With().Str("component", "game_http").Logger(),
	}
}

// Register mounts the routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/sessions", h.StartSession)
	mux.HandleFunc("GET /v1/sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /v1/sessions/{id}", h.EndSession)
	mux.HandleFunc("POST /v1/sessions/{id}/answers", h.SubmitAnswer)
	mux.HandleFunc("POST /v1/sessions/{id}/advance", h.Advance)
	mux.HandleFunc("POST /v1/sessions/{id}/continue", h.Continue)
	mux.HandleFunc("POST /v1/sessions/{id}/restart", h.Restart)
	mux.HandleFunc("GET /v1/sessions/{id}/result", h.GetResult)
	mux.HandleFunc("GET /v1/questions", h.SampleQuestions)
	mux.HandleFunc("GET /v1/categories", h.ListCategories)
}

// StartSession handles POST /v1/sessions
func (h *HTTPHandlers) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	session, err := h.service.StartSession(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, NewSessionView(session))
}

// GetSession handles GET /v1/sessions/{id}
func (h *HTTPHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	session, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, NewSessionView(session))
}

// EndSession handles DELETE /v1/sessions/{id}
func (h *HTTPHandlers) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.pacer.Cancel(id)
	if err := h.service.End(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitAnswerRequest struct {
	Index *int `json:"index"`
}

type submitAnswerResponse struct {
	Outcome Outcome     `json:"outcome"`
	Session SessionView `json:"session"`
}

// SubmitAnswer handles POST /v1/sessions/{id}/answers
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Index == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "index is required", "index")
		return
	}

	outcome, session, err := h.service.SubmitAnswer(r.Context(), id, *req.Index)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, submitAnswerResponse{Outcome: outcome, Session: NewSessionView(session)})
}

// Advance handles POST /v1/sessions/{id}/advance
func (h *HTTPHandlers) Advance(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Advance)
}

// Continue handles POST /v1/sessions/{id}/continue
func (h *HTTPHandlers) Continue(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Continue)
}

// Restart handles POST /v1/sessions/{id}/restart
func (h *HTTPHandlers) Restart(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Restart)
}

type transitionFunc func(ctx context.Context, id uuid.UUID) (*Session, error)

func (h *HTTPHandlers) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.pacer.Cancel(id)
	session, err := fn(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, NewSessionView(session))
}

// GetResult handles GET /v1/sessions/{id}/result
func (h *HTTPHandlers) GetResult(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	result, err := h.service.Result(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// SampleQuestions handles GET /v1/questions?count=&category=
func (h *HTTPHandlers) SampleQuestions(w http.ResponseWriter, r *http.Request) {
	count := h.service.QuestionsPerRound()
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxSampleCount {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "count must be between 1 and 50", "count")
			return
		}
		count = n
	}

	var questions []question.Question
	if category := question.Category(r.URL.Query().Get("category")); category != "" {
		if !category.Valid() {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownCategory, "unknown category: "+string(category))
			return
		}
		questions = h.catalog.ByCategory(category, count)
	} else {
		questions = h.catalog.Sample(count)
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(questions),
		"questions": questions,
	})
}

type categoryResponse struct {
	Category question.Category `json:"category"`
	Name     string            `json:"name"`
	Count    int               `json:"count"`
}

// ListCategories handles GET /v1/categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	stats := h.catalog.Statistics()
	out := make([]categoryResponse, 0, len(question.Categories))
	for _, category := range question.Categories {
		out = append(out, categoryResponse{
			Category: category,
			Name:     category.DisplayName(),
			Count:    stats[category],
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (h *HTTPHandlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSessionID, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	status, code, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}
	httperrors.RespondError(w, status, code, message)
}

// errorStatus maps service errors onto HTTP status and error code.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, httperrors.ErrCodeSessionNotFound, "Session not found"
	case errors.Is(err, ErrSessionBusy):
		return http.StatusConflict, httperrors.ErrCodeSessionBusy, "Session is busy, retry"
	case errors.Is(err, ErrRoundNotComplete):
		return http.StatusConflict, httperrors.ErrCodeRoundNotComplete, "Round is not complete"
	case errors.Is(err, question.ErrUnknownCategory):
		return http.StatusBadRequest, httperrors.ErrCodeUnknownCategory, err.Error()
	case errors.Is(err, ErrNoQuestions):
		return http.StatusServiceUnavailable, httperrors.ErrCodeNoQuestions, "No questions available"
	default:
		return http.StatusInternalServerError, httperrors.ErrCodeInternalError, "Internal error"
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response failed")
	}
}
