package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// HistoryService owns the search history lifecycle: classification and
// retention metadata at creation, owner-scoped reads and mutations, and the
// opportunistic reap before listing.
type HistoryService struct {
	store  driven.HistoryStore
	logger *slog.Logger

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(store driven.HistoryStore, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

// Create classifies the query, computes its retention schedule, and persists
// the record. An unauthenticated caller is a deliberate silent no-op: no
// record is created and no error is surfaced. Returns the created record,
// or nil for the unauthenticated case.
func (s *HistoryService) Create(ctx context.Context, user *model.User, text string, mode model.SearchMode) (*model.SearchRecord, error) {
	if user == nil {
		s.logger.Debug("skipping history save for unauthenticated caller")
		return nil, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	if mode == "" {
		mode = model.SearchModeFast
	}
	if !mode.Valid() {
		return nil, ErrValidation
	}

	createdAt := s.now()
	isComplex := AnalyzeComplexity(text)

	record := model.SearchRecord{
		ID:         s.newID(),
		OwnerID:    user.ID,
		Text:       text,
		IsComplex:  isComplex,
		Categories: CategorizeQuery(text),
		SearchMode: mode,
		DeleteAt:   InitialExpiry(isComplex, createdAt),
		CreatedAt:  createdAt,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	return &record, nil
}

// List reaps the owner's expired records and returns the remainder, newest
// first. A failed reap is logged but does not block the listing.
func (s *HistoryService) List(ctx context.Context, ownerID string) ([]model.SearchRecord, error) {
	if deleted, err := s.store.DeleteExpired(ctx, ownerID, s.now()); err != nil {
		s.logger.Warn("history reap failed", "error", err)
	} else if deleted > 0 {
		s.logger.Info("reaped expired history records", "count", deleted)
	}

	return s.store.ListByOwner(ctx, ownerID)
}

// TogglePreservation flips the record's preservation flag and recomputes its
// expiry. Un-preserving restores the schedule derived from the record's
// original creation time.
func (s *HistoryService) TogglePreservation(ctx context.Context, ownerID, id string) (*model.SearchRecord, error) {
	record, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	preserved := !record.ManuallyPreserved
	deleteAt := ExpiryAfterToggle(*record, preserved)

	if err := s.store.SetPreservation(ctx, ownerID, id, preserved, deleteAt); err != nil {
		return nil, err
	}

	record.ManuallyPreserved = preserved
	record.DeleteAt = deleteAt
	return record, nil
}

// Delete removes the record. A repeat delete of the same id reports
// ErrRecordNotFound; callers treat that as success-equivalent.
func (s *HistoryService) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, id)
}

// Reap removes the owner's expired, non-preserved records and returns the
// count deleted.
func (s *HistoryService) Reap(ctx context.Context, ownerID string) (int64, error) {
	return s.store.DeleteExpired(ctx, ownerID, s.now())
}
