package application

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jleuth/future-search/internal/adapter/driven/vault"
	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

type mockCredentialStore struct {
	saved  map[string]model.EncryptedSecret
	getErr error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{saved: make(map[string]model.EncryptedSecret)}
}

func (m *mockCredentialStore) Upsert(_ context.Context, ownerID string, secret model.EncryptedSecret) error {
	m.saved[ownerID] = secret
	return nil
}

func (m *mockCredentialStore) Get(_ context.Context, ownerID string) (*model.APICredential, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	secret, ok := m.saved[ownerID]
	if !ok {
		return nil, driven.ErrCredentialMissing
	}
	return &model.APICredential{OwnerID: ownerID, Secret: secret, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *mockCredentialStore) Exists(_ context.Context, ownerID string) (bool, error) {
	_, ok := m.saved[ownerID]
	return ok, nil
}

func (m *mockCredentialStore) Delete(_ context.Context, ownerID string) error {
	delete(m.saved, ownerID)
	return nil
}

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	key := bytes.Repeat([]byte{0x42}, vault.KeySize)
	v, err := vault.New(key)
	require.NoError(t, err)
	return v
}

func TestKeyService_SaveAndResolve(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-abc123"))

	// The stored form must not contain the plaintext.
	secret := store.saved["user-1"]
	assert.NotContains(t, secret.Ciphertext, "pk-abc123")

	plaintext, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "pk-abc123", plaintext)
}

func TestKeyService_SaveRejectsEmpty(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	err := svc.Save(context.Background(), "user-1", "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.saved)
}

func TestKeyService_SaveReplacesPrevious(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-old"))
	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-new"))

	plaintext, err := svc.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "pk-new", plaintext)
}

func TestKeyService_ResolveMissing(t *testing.T) {
	svc := NewKeyService(newMockCredentialStore(), newTestVault(t), slog.Default())

	_, err := svc.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, driven.ErrCredentialMissing)
}

func TestKeyService_ResolveCorrupt(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-abc123"))

	// Corrupt the stored ciphertext out of band.
	secret := store.saved["user-1"]
	secret.Tag = secret.Nonce
	store.saved["user-1"] = secret

	_, err := svc.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrCredentialCorrupt)
}

func TestKeyService_Exists(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	exists, err := svc.Exists(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-abc123"))

	exists, err = svc.Exists(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestKeyService_Delete(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewKeyService(store, newTestVault(t), slog.Default())

	require.NoError(t, svc.Save(context.Background(), "user-1", "pk-abc123"))
	require.NoError(t, svc.Delete(context.Background(), "user-1"))

	_, err := svc.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, driven.ErrCredentialMissing)
}
