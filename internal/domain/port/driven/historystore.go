package driven

import (
	"context"
	"errors"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
)

// ErrRecordNotFound is returned when no search record exists with the given
// id for the given owner. An id belonging to another owner is indistinguishable
// from an absent one.
var ErrRecordNotFound = errors.New("search record not found")

// HistoryStore defines the driven port for search history persistence.
// Every operation is scoped to a single owner id.
type HistoryStore interface {
	Insert(ctx context.Context, record model.SearchRecord) error

	// ListByOwner returns the owner's records ordered by creation time descending.
	ListByOwner(ctx context.Context, ownerID string) ([]model.SearchRecord, error)

	// GetByID returns the record with the given id scoped to the owner.
	// Returns ErrRecordNotFound if absent.
	GetByID(ctx context.Context, ownerID, id string) (*model.SearchRecord, error)

	// SetPreservation updates the preservation flag and expiry in one write.
	// Returns ErrRecordNotFound if absent.
	SetPreservation(ctx context.Context, ownerID, id string, preserved bool, deleteAt *time.Time) error

	// Delete removes the record. Returns ErrRecordNotFound if absent.
	Delete(ctx context.Context, ownerID, id string) error

	// DeleteExpired removes every non-preserved record of the owner whose
	// expiry is at or before now, returning the number deleted.
	DeleteExpired(ctx context.Context, ownerID string, now time.Time) (int64, error)
}
