package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	apperrors "swapmeet/errors"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTokenRepository_RoundTrip(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepository(openTestDB(t))

	req.NoError(repo.Save("opaque-bearer-token"))

	token, err := repo.Load()
	req.NoError(err)
	req.Equal("opaque-bearer-token", token)
}

func TestTokenRepository_LoadMissing(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepository(openTestDB(t))

	_, err := repo.Load()

	req.ErrorIs(err, apperrors.ErrTokenMissing)
}

func TestTokenRepository_ClearIsIdempotent(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepository(openTestDB(t))

	req.NoError(repo.Save("opaque-bearer-token"))
	req.NoError(repo.Clear())
	req.NoError(repo.Clear())

	_, err := repo.Load()
	req.ErrorIs(err, apperrors.ErrTokenMissing)
}
