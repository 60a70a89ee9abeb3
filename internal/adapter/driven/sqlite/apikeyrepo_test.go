package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

func testSecret(suffix string) model.EncryptedSecret {
	return model.EncryptedSecret{
		Ciphertext: "Y2lwaGVy" + suffix,
		Nonce:      "bm9uY2U" + suffix,
		Tag:        "dGFn" + suffix,
	}
}

func TestAPIKeyRepo_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)
	ctx := context.Background()

	secret := testSecret("1")
	require.NoError(t, repo.Upsert(ctx, "user-1", secret))

	cred, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cred.OwnerID)
	assert.Equal(t, secret, cred.Secret)
	assert.False(t, cred.CreatedAt.IsZero())
}

func TestAPIKeyRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, driven.ErrCredentialMissing)
}

func TestAPIKeyRepo_UpsertReplacesAllFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", testSecret("old")))
	require.NoError(t, repo.Upsert(ctx, "user-1", testSecret("new")))

	cred, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, testSecret("new"), cred.Secret)
}

func TestAPIKeyRepo_ScopedPerOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", testSecret("a")))

	_, err := repo.Get(ctx, "user-2")
	assert.ErrorIs(t, err, driven.ErrCredentialMissing)
}

func TestAPIKeyRepo_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Upsert(ctx, "user-1", testSecret("a")))

	exists, err = repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAPIKeyRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAPIKeyRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", testSecret("a")))
	require.NoError(t, repo.Delete(ctx, "user-1"))

	exists, err := repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is not an error.
	assert.NoError(t, repo.Delete(ctx, "user-1"))
}
