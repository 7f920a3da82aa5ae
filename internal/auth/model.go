package auth

import (
	"course-api/internal/user"
)

type RegisterPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"omitempty,max=100"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ResendVerificationPayload struct {
	Email string `json:"email" validate:"required,email"`
}

// UserSummary is the minimal projection returned next to a token pair.
type UserSummary struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// SessionTokens is the login/refresh response body. Expiries are reported
// in seconds.
type SessionTokens struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int64        `json:"expiresIn"`
	RefreshExpiresIn int64        `json:"refreshExpiresIn"`
	User             *UserSummary `json:"user"`
}

type RegisterResult struct {
	User    *user.Profile `json:"user"`
	Message string        `json:"message"`
}

type MessageResult struct {
	Message string `json:"message"`
}
