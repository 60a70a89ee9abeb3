// Package httphandler is the HTTP driving adapter: it translates the REST
// API onto the application services and maps service errors to status codes.
// Caller identity always comes from the identity middleware; client-supplied
// owner identifiers are never accepted.
package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jleuth/future-search/internal/application"
	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// fallbackAnswer is returned in place of provider output whenever answer
// generation fails. Provider error detail stays in the server logs.
const fallbackAnswer = "I'm sorry, I couldn't generate an answer at this time. Please try again later."

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	history *application.HistoryService
	keys    *application.KeyService
	answers *application.AnswerService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	history *application.HistoryService,
	keys *application.KeyService,
	answers *application.AnswerService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		history: history,
		keys:    keys,
		answers: answers,
		logger:  logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with identity, logging, and recovery middleware.
func NewServeMux(h *Handler, identity driven.IdentityProvider, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/answer", h.GenerateAnswer)
	mux.HandleFunc("GET /api/v1/history", h.ListHistory)
	mux.HandleFunc("POST /api/v1/history", h.CreateHistory)
	mux.HandleFunc("POST /api/v1/history/{id}/preserve", h.TogglePreservation)
	mux.HandleFunc("DELETE /api/v1/history/{id}", h.DeleteHistory)
	mux.HandleFunc("GET /api/v1/key", h.KeyStatus)
	mux.HandleFunc("POST /api/v1/key", h.SaveKey)
	mux.HandleFunc("DELETE /api/v1/key", h.DeleteKey)
	mux.HandleFunc("GET /api/v1/suggestions", h.Suggestions)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = identityMiddleware(identity, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// GenerateAnswer proxies one query to the answer provider and, on success,
// records it in the caller's history.
func (h *Handler) GenerateAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.answers.Generate(r.Context(), user.ID, req.Query, model.SearchMode(req.Mode))
	if err != nil {
		h.writeAnswerError(w, err)
		return
	}

	// Record the search after a successful answer. The HTTP request context
	// is about to end, so the save runs on a background context.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := h.history.Create(ctx, user, req.Query, model.SearchMode(req.Mode)); err != nil {
			h.logger.Error("failed to record search", "error", err)
		}
	}()

	writeJSON(w, http.StatusOK, toAnswerResponse(*answer))
}

// writeAnswerError maps answer generation failures onto responses that never
// expose provider or credential internals.
func (h *Handler) writeAnswerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		writeError(w, http.StatusBadRequest, "query must not be empty and mode must be a known search mode")
	case errors.Is(err, driven.ErrCredentialMissing):
		writeError(w, http.StatusNotFound, "no API key saved; add your provider API key in settings")
	case errors.Is(err, application.ErrCredentialCorrupt):
		writeError(w, http.StatusInternalServerError, "your saved API key could not be read; please re-enter it")
	default:
		writeError(w, http.StatusInternalServerError, fallbackAnswer)
	}
}

// ListHistory returns the caller's search history, newest first. Expired
// records are reaped before the listing.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	records, err := h.history.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now().UTC()
	resp := make([]SearchRecordResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toSearchRecordResponse(record, now))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateHistory records a search without generating an answer. For an
// unauthenticated caller this succeeds without saving anything.
func (h *Handler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req CreateSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.history.Create(r.Context(), userFrom(r), req.Query, model.SearchMode(req.Mode))
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			writeError(w, http.StatusBadRequest, "query must not be empty and mode must be a known search mode")
			return
		}
		h.logger.Error("failed to create history record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if record == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, toSearchRecordResponse(*record, time.Now().UTC()))
}

// TogglePreservation flips a record's preservation flag and returns the
// updated record.
func (h *Handler) TogglePreservation(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	record, err := h.history.TogglePreservation(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, driven.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "history record not found")
			return
		}
		h.logger.Error("failed to toggle preservation", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toSearchRecordResponse(*record, time.Now().UTC()))
}

// DeleteHistory removes a record. Deleting an id that does not exist is a
// success: the end state is identical.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.history.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil && !errors.Is(err, driven.ErrRecordNotFound) {
		h.logger.Error("failed to delete history record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// KeyStatus reports whether the caller has a provider API key on file. The
// key itself is never returned.
func (h *Handler) KeyStatus(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	exists, err := h.keys.Exists(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to check key status", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, KeyStatusResponse{Exists: exists})
}

// SaveKey encrypts and stores the caller's provider API key, replacing any
// previous one.
func (h *Handler) SaveKey(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SaveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.keys.Save(r.Context(), user.ID, req.APIKey); err != nil {
		if errors.Is(err, application.ErrValidation) {
			writeError(w, http.StatusBadRequest, "api_key must not be empty")
			return
		}
		h.logger.Error("failed to save api key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, KeyStatusResponse{Exists: true})
}

// DeleteKey removes the caller's provider API key.
func (h *Handler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.keys.Delete(r.Context(), user.ID); err != nil {
		h.logger.Error("failed to delete api key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Suggestions returns refinement suggestions for the q query parameter.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: application.Suggestions(r.URL.Query().Get("q")),
	})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
