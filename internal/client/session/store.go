package session

import (
	"sync"
	"time"
)

// CredentialStorage is the durable persistence adapter behind the store,
// the cookie/localStorage analogue. Expired tokens read back as absent.
type CredentialStorage interface {
	SaveTokens(accessToken, refreshToken string, accessExpiresAt, refreshExpiresAt time.Time) error
	AccessToken() (string, error)
	RefreshToken() (string, error)
	Clear() error
}

// User is the authenticated-user snapshot held next to the tokens.
type User struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Store holds the current session. It is an explicit object with injected
// persistence, never a package-level singleton, so tests can instantiate
// isolated stores. Token reads always go through durable storage rather
// than potentially-stale in-memory state.
type Store struct {
	mu      sync.RWMutex
	storage CredentialStorage
	user    *User
}

func NewStore(storage CredentialStorage) *Store {
	return &Store{
		storage: storage,
	}
}

// SetCredentials persists a fresh token pair. Expiries arrive in seconds,
// the unit the token endpoints report.
func (s *Store) SetCredentials(accessToken, refreshToken string, expiresIn, refreshExpiresIn int64) error {
	now := time.Now()
	return s.storage.SaveTokens(
		accessToken,
		refreshToken,
		now.Add(time.Duration(expiresIn)*time.Second),
		now.Add(time.Duration(refreshExpiresIn)*time.Second),
	)
}

// RemoveCredentials clears tokens and the user snapshot. Used on logout
// and on irrecoverable 401.
func (s *Store) RemoveCredentials() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	return s.storage.Clear()
}

func (s *Store) AccessToken() string {
	accessToken, err := s.storage.AccessToken()
	if err != nil {
		return ""
	}

	return accessToken
}

func (s *Store) RefreshToken() string {
	refreshToken, err := s.storage.RefreshToken()
	if err != nil {
		return ""
	}

	return refreshToken
}

func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
}
