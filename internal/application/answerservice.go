package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// systemPrompt frames every provider call. The current date and time is
// appended so the provider can anchor "latest"-style questions.
const systemPrompt = "You are an AI web search assistant, helping users with tech-focused and general knowledge questions. The current time and date is "

// searchPromptHeader is the instruction block prepended to every query.
const searchPromptHeader = `You are an expert technology researcher and developer. Your task is to provide comprehensive, accurate, and up-to-date information about technology topics, with a focus on:

1. Programming and Development
   - Programming languages, frameworks, and tools
   - Best practices and design patterns
   - Code examples and implementation details
   - Performance optimization and debugging

2. System Architecture and Infrastructure
   - Cloud computing and distributed systems
   - Microservices and containerization
   - Database design and optimization
   - System security and reliability

3. Emerging Technologies
   - Artificial Intelligence and Machine Learning
   - Blockchain and Web3
   - IoT and embedded systems
   - Mobile and cross-platform development

For each response:
1. Start with a clear, concise answer
2. Include relevant code examples when applicable
3. Provide practical implementation details
4. Reference official documentation and best practices
5. Include performance considerations and trade-offs
6. Add security considerations where relevant

Format your response with:
- Clear headings and sections
- Code blocks with language specification
- Bullet points for key takeaways
- Links to official documentation
- Version-specific information when relevant`

// AnswerService is the proxy between an authenticated caller and the
// external answer provider. Per request it resolves the caller's credential,
// stamps the prompt with the current wall-clock time, makes exactly one
// provider call, and normalizes the result. Nothing is retried; a failed
// request requires a new user-initiated submission.
type AnswerService struct {
	keys       *KeyService
	provider   driven.AnswerProvider
	timeSource driven.TimeSource
	logger     *slog.Logger

	now func() time.Time
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(keys *KeyService, provider driven.AnswerProvider, timeSource driven.TimeSource, logger *slog.Logger) *AnswerService {
	return &AnswerService{
		keys:       keys,
		provider:   provider,
		timeSource: timeSource,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Generate produces an answer for the owner's query. Error kinds:
// driven.ErrCredentialMissing (no key saved), ErrCredentialCorrupt (key
// fails to decrypt), ErrProviderUnavailable (provider timeout or failure),
// ErrValidation (empty query or unknown mode).
func (s *AnswerService) Generate(ctx context.Context, ownerID, query string, mode model.SearchMode) (*model.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrValidation
	}

	if mode == "" {
		mode = model.SearchModeFast
	}
	if !mode.Valid() {
		return nil, ErrValidation
	}

	apiKey, err := s.keys.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result, err := s.provider.Generate(ctx, driven.ProviderRequest{
		APIKey: apiKey,
		Prompt: buildSearchPrompt(query, mode),
		System: systemPrompt + s.currentTime(ctx),
		Mode:   mode,
	})
	if err != nil {
		// Log the real cause; callers only ever see the safe sentinel.
		s.logger.Error("answer provider call failed", "error", err)
		return nil, ErrProviderUnavailable
	}

	sources := result.Sources
	if sources == nil {
		sources = []model.Source{}
	}

	// Display categories are computed from the query and the generated
	// answer together. The categories stored with the history record come
	// from the query alone; the two may differ and that is intentional.
	return &model.Answer{
		Text:       result.Text,
		HTML:       RenderMarkdown(result.Text),
		Sources:    sources,
		Categories: CategorizeAnswer(query, result.Text),
	}, nil
}

// currentTime asks the external time source for the wall-clock time and
// falls back to the local system clock on any failure. The timestamp only
// feeds the outbound prompt, so precision is not load-bearing.
func (s *AnswerService) currentTime(ctx context.Context) string {
	dateTime, err := s.timeSource.CurrentTime(ctx)
	if err != nil {
		s.logger.Warn("time source unavailable, using local clock", "error", err)
		return s.now().Format(time.RFC3339)
	}
	return dateTime
}

// buildSearchPrompt assembles the full prompt with the mode-dependent
// closing instruction.
func buildSearchPrompt(query string, mode model.SearchMode) string {
	closing := "Please provide a concise, direct answer."
	if mode == model.SearchModeDetailed {
		closing = "Please provide detailed reasoning steps and implementation details."
	}

	return fmt.Sprintf("%s\n\nQuery: %s\n\n%s", searchPromptHeader, query, closing)
}
