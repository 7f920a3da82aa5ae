package api

import (
	"fmt"

	"course-api/internal/client/session"
)

type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// APIError carries the server's error envelope. Message is surfaced to
// the user verbatim; the client never fabricates its own wording except
// when the response is not envelope shaped.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type RegisterResponse struct {
	User    *session.User `json:"user"`
	Message string        `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	ExpiresIn        int64         `json:"expiresIn"`
	RefreshExpiresIn int64         `json:"refreshExpiresIn"`
	User             *session.User `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
