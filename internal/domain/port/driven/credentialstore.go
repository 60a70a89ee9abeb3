package driven

import (
	"context"
	"errors"

	"github.com/jleuth/future-search/internal/domain/model"
)

// ErrCredentialMissing is returned when the owner has not saved an API
// credential yet.
var ErrCredentialMissing = errors.New("api credential not found")

// CredentialStore defines the driven port for encrypted credential
// persistence. It operates strictly on ciphertext; encryption and decryption
// happen in the vault, never in the store.
type CredentialStore interface {
	// Upsert stores or replaces the owner's credential. Ciphertext, nonce,
	// and tag are replaced together in a single write.
	Upsert(ctx context.Context, ownerID string, secret model.EncryptedSecret) error

	// Get returns the owner's encrypted credential.
	// Returns ErrCredentialMissing if none has been saved.
	Get(ctx context.Context, ownerID string) (*model.APICredential, error)

	// Exists reports whether the owner has a saved credential.
	Exists(ctx context.Context, ownerID string) (bool, error)

	// Delete removes the owner's credential. Deleting an absent credential
	// is not an error.
	Delete(ctx context.Context, ownerID string) error
}
