// Package perplexity implements the AnswerProvider port against the
// Perplexity chat-completions API.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AnswerProvider = (*Client)(nil)

// Client implements the driven.AnswerProvider port over the provider's
// JSON HTTP API. The caller's API key travels with each request; the client
// itself holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against the given API endpoint with the given
// request timeout. Timeouts are the only time-bound control; there are no
// automatic retries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type searchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations     []string       `json:"citations"`
	SearchResults []searchResult `json:"search_results"`
}

// Generate submits one chat-completions call and maps the response to the
// provider-neutral result shape.
func (c *Client) Generate(ctx context.Context, req driven.ProviderRequest) (*driven.ProviderResult, error) {
	body, err := json.Marshal(chatRequest{
		Model: string(req.Mode),
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal provider request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call answer provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount so the connection can be reused, but never
		// surface provider error bodies past this summary.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("answer provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("answer provider returned no choices")
	}

	return &driven.ProviderResult{
		Text:    parsed.Choices[0].Message.Content,
		Sources: normalizeSources(parsed),
	}, nil
}

// normalizeSources prefers the richer search_results field and falls back
// to the bare citation URL list.
func normalizeSources(resp chatResponse) []model.Source {
	sources := []model.Source{}

	if len(resp.SearchResults) > 0 {
		for _, sr := range resp.SearchResults {
			if sr.URL == "" {
				continue
			}
			sources = append(sources, model.Source{URL: sr.URL, Title: sr.Title})
		}
		return sources
	}

	for _, url := range resp.Citations {
		if url == "" {
			continue
		}
		sources = append(sources, model.Source{URL: url})
	}
	return sources
}
