package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	verificationTokenBytes = 32
	verificationTokenTtl   = 24 * time.Hour
)

// generateVerificationToken issues an unguessable single-use token for
// email verification with a fixed 24 hour validity window.
func generateVerificationToken() (string, time.Time, error) {
	tokenBytes := make([]byte, verificationTokenBytes)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(verificationTokenTtl)
	return hex.EncodeToString(tokenBytes), expiresAt, nil
}
