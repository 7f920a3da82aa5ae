package session

import (
	"sync"
	"time"
)

// MemoryStorage keeps credentials for the lifetime of the process.
// Mainly useful in tests and short-lived tools.
type MemoryStorage struct {
	mu               sync.RWMutex
	accessToken      string
	refreshToken     string
	accessExpiresAt  time.Time
	refreshExpiresAt time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) SaveTokens(
	accessToken, refreshToken string,
	accessExpiresAt, refreshExpiresAt time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = accessToken
	m.refreshToken = refreshToken
	m.accessExpiresAt = accessExpiresAt
	m.refreshExpiresAt = refreshExpiresAt
	return nil
}

func (m *MemoryStorage) AccessToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.accessToken == "" || time.Now().After(m.accessExpiresAt) {
		return "", nil
	}

	return m.accessToken, nil
}

func (m *MemoryStorage) RefreshToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.refreshToken == "" || time.Now().After(m.refreshExpiresAt) {
		return "", nil
	}

	return m.refreshToken, nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = ""
	m.refreshToken = ""
	m.accessExpiresAt = time.Time{}
	m.refreshExpiresAt = time.Time{}
	return nil
}
