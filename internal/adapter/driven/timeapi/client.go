// Package timeapi implements the TimeSource port against a timeapi.io-style
// wall-clock endpoint. The service is optional; callers fall back to the
// local system clock when it is unreachable.
package timeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TimeSource = (*Client)(nil)

// Client implements the driven.TimeSource port. Responses pass through an
// in-memory caching transport so repeated lookups within a cacheable window
// do not re-hit the service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client against the given endpoint with the given
// request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: httpcache.NewMemoryCacheTransport(),
		},
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL, for injecting an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type timeResponse struct {
	DateTime string `json:"dateTime"`
}

// CurrentTime fetches the current UTC wall-clock time as an ISO-8601 string.
func (c *Client) CurrentTime(ctx context.Context) (string, error) {
	url := c.baseURL + "/api/time/current/zone?timeZone=UTC"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build time request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch current time: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("time source returned status %d", resp.StatusCode)
	}

	var parsed timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode time response: %w", err)
	}
	if parsed.DateTime == "" {
		return "", fmt.Errorf("time source returned empty dateTime")
	}

	return parsed.DateTime, nil
}
