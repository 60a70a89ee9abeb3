package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jleuth/future-search/internal/application"
	"github.com/jleuth/future-search/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// SearchRecordResponse is the JSON representation of a search history record.
type SearchRecordResponse struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	IsComplex         bool     `json:"is_complex"`
	Categories        []string `json:"categories"`
	SearchMode        string   `json:"search_mode"`
	ManuallyPreserved bool     `json:"manually_preserved"`
	DeleteAt          *string  `json:"delete_at"`
	ExpiresIn         string   `json:"expires_in"`
	CreatedAt         string   `json:"created_at"`
}

// AnswerRequest is the JSON body for the answer endpoint.
type AnswerRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// AnswerResponse is the JSON representation of a generated answer.
type AnswerResponse struct {
	Text       string           `json:"text"`
	HTML       string           `json:"html"`
	Sources    []SourceResponse `json:"sources"`
	Categories []string         `json:"categories"`
}

// SourceResponse is a single citation backing an answer.
type SourceResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// CreateSearchRequest is the JSON body for recording a search.
type CreateSearchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// SaveKeyRequest is the JSON body for saving the provider API key. The key
// travels request-to-vault and is never echoed back.
type SaveKeyRequest struct {
	APIKey string `json:"api_key"`
}

// KeyStatusResponse reports whether a provider API key is on file.
type KeyStatusResponse struct {
	Exists bool `json:"exists"`
}

// SuggestionsResponse carries query refinement suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toSearchRecordResponse converts a domain SearchRecord to its JSON
// representation, rendering the retention countdown relative to now.
func toSearchRecordResponse(record model.SearchRecord, now time.Time) SearchRecordResponse {
	categories := record.Categories
	if categories == nil {
		categories = []string{}
	}

	var deleteAt *string
	if record.DeleteAt != nil {
		formatted := record.DeleteAt.UTC().Format(time.RFC3339)
		deleteAt = &formatted
	}

	return SearchRecordResponse{
		ID:                record.ID,
		Text:              record.Text,
		IsComplex:         record.IsComplex,
		Categories:        categories,
		SearchMode:        string(record.SearchMode),
		ManuallyPreserved: record.ManuallyPreserved,
		DeleteAt:          deleteAt,
		ExpiresIn:         application.FormatTimeRemaining(record.TimeUntilDeletion(now)),
		CreatedAt:         record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toAnswerResponse converts a domain Answer to its JSON representation.
func toAnswerResponse(answer model.Answer) AnswerResponse {
	sources := make([]SourceResponse, 0, len(answer.Sources))
	for _, s := range answer.Sources {
		sources = append(sources, SourceResponse{URL: s.URL, Title: s.Title, Snippet: s.Snippet})
	}

	categories := answer.Categories
	if categories == nil {
		categories = []string{}
	}

	return AnswerResponse{
		Text:       answer.Text,
		HTML:       answer.HTML,
		Sources:    sources,
		Categories: categories,
	}
}
