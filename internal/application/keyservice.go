package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jleuth/future-search/internal/adapter/driven/vault"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// KeyService manages the user's answer-provider credential. Plaintext exists
// only transiently: on save it goes straight into the vault, and on resolve
// it is handed to the answer proxy and discarded. It is never logged, never
// cached, and never returned to a client.
type KeyService struct {
	store  driven.CredentialStore
	vault  *vault.Vault
	logger *slog.Logger
}

// NewKeyService creates a KeyService.
func NewKeyService(store driven.CredentialStore, v *vault.Vault, logger *slog.Logger) *KeyService {
	return &KeyService{
		store:  store,
		vault:  v,
		logger: logger,
	}
}

// Save encrypts and stores the credential, replacing any previous one.
// Rejects empty input before any side effect.
func (s *KeyService) Save(ctx context.Context, ownerID, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return ErrValidation
	}

	secret, err := s.vault.Encrypt(apiKey)
	if err != nil {
		return err
	}

	return s.store.Upsert(ctx, ownerID, secret)
}

// Exists reports whether the owner has a saved credential.
func (s *KeyService) Exists(ctx context.Context, ownerID string) (bool, error) {
	return s.store.Exists(ctx, ownerID)
}

// Delete removes the owner's credential.
func (s *KeyService) Delete(ctx context.Context, ownerID string) error {
	return s.store.Delete(ctx, ownerID)
}

// Resolve loads and decrypts the owner's credential for one outbound call.
// Returns driven.ErrCredentialMissing when none is saved and
// ErrCredentialCorrupt when the stored bytes fail authentication; corruption
// is never retried.
func (s *KeyService) Resolve(ctx context.Context, ownerID string) (string, error) {
	cred, err := s.store.Get(ctx, ownerID)
	if err != nil {
		return "", err
	}

	plaintext, err := s.vault.Decrypt(cred.Secret)
	if err != nil {
		s.logger.Error("stored api credential failed to decrypt", "error", err)
		return "", ErrCredentialCorrupt
	}

	return plaintext, nil
}
