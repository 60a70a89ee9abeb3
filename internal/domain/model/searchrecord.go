package model

import "time"

// SearchRecord represents one entry in a user's search history. All fields
// except ManuallyPreserved and DeleteAt are immutable after creation.
type SearchRecord struct {
	ID                string
	OwnerID           string
	Text              string
	IsComplex         bool
	Categories        []string
	SearchMode        SearchMode
	ManuallyPreserved bool
	DeleteAt          *time.Time // nil means the record never auto-expires.
	CreatedAt         time.Time
}

// TimeUntilDeletion returns the remaining time before the record becomes
// eligible for reaping, floored at zero. Returns nil for records that never
// expire (complex or manually preserved).
func (r SearchRecord) TimeUntilDeletion(now time.Time) *time.Duration {
	if r.DeleteAt == nil || r.ManuallyPreserved {
		return nil
	}

	remaining := r.DeleteAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// Expired reports whether the record is eligible for reaping at the given
// instant. Preserved records never expire regardless of DeleteAt.
func (r SearchRecord) Expired(now time.Time) bool {
	if r.DeleteAt == nil || r.ManuallyPreserved {
		return false
	}
	return !r.DeleteAt.After(now)
}
