package session

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

var (
	keyAccessToken      = []byte("accessToken")
	keyRefreshToken     = []byte("refreshToken")
	keyAccessExpiresAt  = []byte("accessExpiresAt")
	keyRefreshExpiresAt = []byte("refreshExpiresAt")
)

// BoltStorage persists credentials in a local bbolt file, so a session
// survives process restarts the way browser cookies survive reloads.
type BoltStorage struct {
	db *bbolt.DB
}

func NewBoltStorage(path string) (*BoltStorage, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(sessionBucket)
		return createErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create session bucket: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Close() error {
	return b.db.Close()
}

func (b *BoltStorage) SaveTokens(
	accessToken, refreshToken string,
	accessExpiresAt, refreshExpiresAt time.Time,
) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)

		err := bucket.Put(keyAccessToken, []byte(accessToken))
		if err != nil {
			return err
		}

		err = bucket.Put(keyRefreshToken, []byte(refreshToken))
		if err != nil {
			return err
		}

		err = bucket.Put(keyAccessExpiresAt, []byte(accessExpiresAt.UTC().Format(time.RFC3339)))
		if err != nil {
			return err
		}

		return bucket.Put(keyRefreshExpiresAt, []byte(refreshExpiresAt.UTC().Format(time.RFC3339)))
	})
}

func (b *BoltStorage) AccessToken() (string, error) {
	return b.readToken(keyAccessToken, keyAccessExpiresAt)
}

func (b *BoltStorage) RefreshToken() (string, error) {
	return b.readToken(keyRefreshToken, keyRefreshExpiresAt)
}

func (b *BoltStorage) readToken(tokenKey, expiryKey []byte) (string, error) {
	var token string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)

		rawToken := bucket.Get(tokenKey)
		if rawToken == nil {
			return nil
		}

		rawExpiry := bucket.Get(expiryKey)
		if rawExpiry != nil {
			expiresAt, parseErr := time.Parse(time.RFC3339, string(rawExpiry))
			if parseErr == nil && time.Now().After(expiresAt) {
				return nil
			}
		}

		token = string(rawToken)
		return nil
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (b *BoltStorage) Clear() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		err := tx.DeleteBucket(sessionBucket)
		if err != nil {
			return err
		}

		_, err = tx.CreateBucket(sessionBucket)
		return err
	})
}
