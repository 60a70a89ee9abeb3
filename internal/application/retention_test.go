package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jleuth/future-search/internal/domain/model"
)

func TestInitialExpiry(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("complex query never expires", func(t *testing.T) {
		assert.Nil(t, InitialExpiry(true, createdAt))
	})

	t.Run("simple query expires after the retention window", func(t *testing.T) {
		got := InitialExpiry(false, createdAt)
		require.NotNil(t, got)
		assert.Equal(t, createdAt.Add(24*time.Hour), *got)
	})
}

func TestExpiryAfterToggle(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("preserving clears the expiry", func(t *testing.T) {
		record := model.SearchRecord{IsComplex: false, CreatedAt: createdAt}
		assert.Nil(t, ExpiryAfterToggle(record, true))
	})

	t.Run("un-preserving a simple record restores the original schedule", func(t *testing.T) {
		record := model.SearchRecord{IsComplex: false, CreatedAt: createdAt}
		got := ExpiryAfterToggle(record, false)
		require.NotNil(t, got)
		// Recomputed from CreatedAt, not from the current clock.
		assert.Equal(t, createdAt.Add(24*time.Hour), *got)
	})

	t.Run("un-preserving a complex record keeps it permanent", func(t *testing.T) {
		record := model.SearchRecord{IsComplex: true, CreatedAt: createdAt}
		assert.Nil(t, ExpiryAfterToggle(record, false))
	})
}

func TestTimeUntilDeletion(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("nil for permanent records", func(t *testing.T) {
		record := model.SearchRecord{DeleteAt: nil}
		assert.Nil(t, record.TimeUntilDeletion(now))
	})

	t.Run("nil for preserved records even with an expiry set", func(t *testing.T) {
		deleteAt := now.Add(time.Hour)
		record := model.SearchRecord{DeleteAt: &deleteAt, ManuallyPreserved: true}
		assert.Nil(t, record.TimeUntilDeletion(now))
	})

	t.Run("remaining duration before expiry", func(t *testing.T) {
		deleteAt := now.Add(90 * time.Minute)
		record := model.SearchRecord{DeleteAt: &deleteAt}
		got := record.TimeUntilDeletion(now)
		require.NotNil(t, got)
		assert.Equal(t, 90*time.Minute, *got)
	})

	t.Run("floored at zero after expiry", func(t *testing.T) {
		deleteAt := now.Add(-time.Minute)
		record := model.SearchRecord{DeleteAt: &deleteAt}
		got := record.TimeUntilDeletion(now)
		require.NotNil(t, got)
		assert.Equal(t, time.Duration(0), *got)
	})
}

func TestFormatTimeRemaining(t *testing.T) {
	dur := func(d time.Duration) *time.Duration { return &d }

	tests := []struct {
		name string
		in   *time.Duration
		want string
	}{
		{"nil means never", nil, "Never"},
		{"zero is imminent", dur(0), "Imminent"},
		{"negative is imminent", dur(-time.Second), "Imminent"},
		{"seconds only", dur(45 * time.Second), "45s"},
		{"minutes and seconds", dur(3*time.Minute + 10*time.Second), "3m 10s"},
		{"hours and minutes", dur(2*time.Hour + 5*time.Minute), "2h 5m"},
		{"hours drop seconds", dur(2*time.Hour + 5*time.Minute + 59*time.Second), "2h 5m"},
		{"full day", dur(24 * time.Hour), "24h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeRemaining(tt.in))
		})
	}
}
