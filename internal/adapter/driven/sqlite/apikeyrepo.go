package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*APIKeyRepo)(nil)

// APIKeyRepo is the SQLite implementation of the CredentialStore port
// interface. It stores only sealed bytes; the vault owns encryption.
type APIKeyRepo struct {
	db *DB
}

// NewAPIKeyRepo creates a new APIKeyRepo backed by the given DB.
func NewAPIKeyRepo(db *DB) *APIKeyRepo {
	return &APIKeyRepo{db: db}
}

// Upsert stores or replaces the owner's credential. Ciphertext, nonce, and
// tag are written together so a reader never sees a mixed generation.
func (r *APIKeyRepo) Upsert(ctx context.Context, ownerID string, secret model.EncryptedSecret) error {
	const query = `INSERT INTO api_keys (owner_id, ciphertext, nonce, tag, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			ciphertext = excluded.ciphertext,
			nonce = excluded.nonce,
			tag = excluded.tag,
			updated_at = excluded.updated_at`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Writer.ExecContext(ctx, query, ownerID, secret.Ciphertext, secret.Nonce, secret.Tag, now, now)
	if err != nil {
		return fmt.Errorf("upsert api key: %w", err)
	}

	return nil
}

// Get returns the owner's encrypted credential.
func (r *APIKeyRepo) Get(ctx context.Context, ownerID string) (*model.APICredential, error) {
	const query = `SELECT owner_id, ciphertext, nonce, tag, created_at, updated_at FROM api_keys WHERE owner_id = ?`

	var cred model.APICredential
	var createdAt, updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, ownerID).Scan(
		&cred.OwnerID,
		&cred.Secret.Ciphertext,
		&cred.Secret.Nonce,
		&cred.Secret.Tag,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get api key: %w", driven.ErrCredentialMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("get api key: %w", err)
	}

	if cred.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if cred.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &cred, nil
}

// Exists reports whether the owner has a saved credential.
func (r *APIKeyRepo) Exists(ctx context.Context, ownerID string) (bool, error) {
	const query = `SELECT 1 FROM api_keys WHERE owner_id = ?`

	var one int
	err := r.db.Reader.QueryRowContext(ctx, query, ownerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check api key: %w", err)
	}

	return true, nil
}

// Delete removes the owner's credential. Deleting an absent row is a no-op.
func (r *APIKeyRepo) Delete(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM api_keys WHERE owner_id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}
