package application

import (
	"fmt"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
)

// RetentionWindow is how long a simple (non-complex) query stays in history
// before it becomes eligible for reaping.
const RetentionWindow = 24 * time.Hour

// InitialExpiry computes a new record's expiry. Complex queries never expire;
// simple queries expire one retention window after creation.
func InitialExpiry(isComplex bool, createdAt time.Time) *time.Time {
	if isComplex {
		return nil
	}
	expiry := createdAt.Add(RetentionWindow)
	return &expiry
}

// ExpiryAfterToggle computes the expiry that applies after flipping a record's
// preservation flag. Newly preserved records never expire. Un-preserving
// restores the original schedule, recomputed from the record's creation time
// rather than from the current clock.
func ExpiryAfterToggle(record model.SearchRecord, preserved bool) *time.Time {
	if preserved {
		return nil
	}
	return InitialExpiry(record.IsComplex, record.CreatedAt)
}

// FormatTimeRemaining renders a countdown for display. A nil duration means
// the record never expires. The output uses the largest nonzero unit pair:
// "2h 5m", "3m 10s", or "45s".
func FormatTimeRemaining(d *time.Duration) string {
	if d == nil {
		return "Never"
	}
	if *d <= 0 {
		return "Imminent"
	}

	seconds := int(d.Seconds())
	minutes := seconds / 60
	hours := minutes / 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
