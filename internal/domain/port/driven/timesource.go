package driven

import "context"

// TimeSource defines the driven port for the external wall-clock service.
// The returned string is an ISO-8601 timestamp used verbatim in the outbound
// provider prompt. Failures are non-fatal; callers fall back to the local
// system clock.
type TimeSource interface {
	CurrentTime(ctx context.Context) (string, error)
}
