package driven

import (
	"context"

	"github.com/jleuth/future-search/internal/domain/model"
)

// ProviderRequest carries one answer-generation call to the external provider.
// APIKey is the caller's decrypted credential; it must not outlive the call.
type ProviderRequest struct {
	APIKey string
	Prompt string
	System string
	Mode   model.SearchMode
}

// ProviderResult is the provider's raw response before domain normalization.
type ProviderResult struct {
	Text    string
	Sources []model.Source
}

// AnswerProvider defines the driven port for the external answer-generation
// API. Implementations are treated as untrusted and possibly slow; callers
// bound each call with a context deadline and never retry automatically.
type AnswerProvider interface {
	Generate(ctx context.Context, req ProviderRequest) (*ProviderResult, error)
}
