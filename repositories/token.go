//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=../mocks/mock_token_repository.go -package=mocks
package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	apperrors "swapmeet/errors"
)

// tokenKey is the single fixed storage key this core persists. Nothing else
// belongs in local storage.
const tokenKey = "session:token"

type ITokenRepository interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

type TokenRepository struct {
	db *badger.DB
}

func NewTokenRepository(db *badger.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

// Save persists the opaque bearer token so a later process start can restore
// the session without re-entering credentials.
func (r *TokenRepository) Save(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), []byte(token))
	})
}

func (r *TokenRepository) Load() (string, error) {
	var token string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", apperrors.ErrTokenMissing
	}
	if err != nil {
		return "", fmt.Errorf("token load failed: %w", err)
	}
	return token, nil
}

// Clear is idempotent: deleting an absent key is not an error.
func (r *TokenRepository) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenKey))
	})
}
