package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the SQLite implementation of the HistoryStore port interface.
// Every query filters on owner_id; a record is invisible to any other caller.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Insert persists a new search record.
func (r *HistoryRepo) Insert(ctx context.Context, record model.SearchRecord) error {
	const query = `INSERT INTO search_history
		(id, owner_id, text, is_complex, categories, search_mode, manually_preserved, delete_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	categories, err := json.Marshal(record.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		record.ID,
		record.OwnerID,
		record.Text,
		record.IsComplex,
		string(categories),
		string(record.SearchMode),
		record.ManuallyPreserved,
		formatNullableTime(record.DeleteAt),
		record.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert search record %s: %w", record.ID, err)
	}

	return nil
}

// ListByOwner returns the owner's records ordered by creation time descending.
func (r *HistoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.SearchRecord, error) {
	const query = `SELECT id, owner_id, text, is_complex, categories, search_mode, manually_preserved, delete_at, created_at
		FROM search_history WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer rows.Close()

	records := []model.SearchRecord{}
	for rows.Next() {
		record, err := scanSearchRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search history: %w", err)
	}

	return records, nil
}

// GetByID returns the record with the given id scoped to the owner.
func (r *HistoryRepo) GetByID(ctx context.Context, ownerID, id string) (*model.SearchRecord, error) {
	const query = `SELECT id, owner_id, text, is_complex, categories, search_mode, manually_preserved, delete_at, created_at
		FROM search_history WHERE owner_id = ? AND id = ?`

	record, err := scanSearchRecord(r.db.Reader.QueryRowContext(ctx, query, ownerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get search record %s: %w", id, driven.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get search record %s: %w", id, err)
	}

	return record, nil
}

// SetPreservation updates the preservation flag and expiry in a single write.
func (r *HistoryRepo) SetPreservation(ctx context.Context, ownerID, id string, preserved bool, deleteAt *time.Time) error {
	const query = `UPDATE search_history SET manually_preserved = ?, delete_at = ? WHERE owner_id = ? AND id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, preserved, formatNullableTime(deleteAt), ownerID, id)
	if err != nil {
		return fmt.Errorf("update preservation for %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update preservation for %s: %w", id, driven.ErrRecordNotFound)
	}

	return nil
}

// Delete removes the record scoped to the owner.
func (r *HistoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM search_history WHERE owner_id = ? AND id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete search record %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete search record %s: %w", id, driven.ErrRecordNotFound)
	}

	return nil
}

// DeleteExpired removes every non-preserved record of the owner whose expiry
// has passed. Running it again with the same clock deletes nothing further.
func (r *HistoryRepo) DeleteExpired(ctx context.Context, ownerID string, now time.Time) (int64, error) {
	const query = `DELETE FROM search_history
		WHERE owner_id = ? AND delete_at IS NOT NULL AND delete_at <= ? AND manually_preserved = 0`

	result, err := r.db.Writer.ExecContext(ctx, query, ownerID, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("delete expired search records: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSearchRecord(s scanner) (*model.SearchRecord, error) {
	var record model.SearchRecord
	var categories string
	var mode string
	var deleteAt sql.NullString
	var createdAt string

	err := s.Scan(
		&record.ID,
		&record.OwnerID,
		&record.Text,
		&record.IsComplex,
		&categories,
		&mode,
		&record.ManuallyPreserved,
		&deleteAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categories), &record.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	record.SearchMode = model.SearchMode(mode)

	record.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	if deleteAt.Valid {
		t, err := parseTime(deleteAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse delete_at: %w", err)
		}
		record.DeleteAt = &t
	}

	return &record, nil
}

// formatNullableTime converts an optional timestamp to its stored form.
func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
