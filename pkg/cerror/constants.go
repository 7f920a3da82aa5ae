package cerror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeEmailAlreadyExists  = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailNotVerified    = "EMAIL_NOT_VERIFIED"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeInvalidToken        = "INVALID_VERIFICATION_TOKEN"
	CodeAlreadyVerified     = "EMAIL_ALREADY_VERIFIED"
	CodeTokenExpired        = "VERIFICATION_TOKEN_EXPIRED"
	CodeEmailNotFound       = "EMAIL_NOT_FOUND"
	CodeEmailDeliveryFailed = "EMAIL_DELIVERY_FAILED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
)

var (
	ErrorEmailAlreadyExists = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Code:           CodeEmailAlreadyExists,
		Message:        "Email already exists",
		LogMessage:     "registration attempt with existing email",
		LogSeverity:    zapcore.WarnLevel,
	}

	// ErrorInvalidCredentials covers both unknown email and wrong password,
	// so responses cannot be used for account enumeration.
	ErrorInvalidCredentials = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Code:           CodeInvalidCredentials,
		Message:        "Invalid credentials",
		LogMessage:     "login attempt with invalid credentials",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorEmailNotVerified = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Code:           CodeEmailNotVerified,
		Message:        "Email not verified. Please check your email and verify your account.",
		LogMessage:     "login attempt with unverified email",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidRefreshToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Code:           CodeInvalidRefreshToken,
		Message:        "Invalid refresh token",
		LogMessage:     "refresh attempt with invalid refresh token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidVerificationToken = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Code:           CodeInvalidToken,
		Message:        "Invalid or expired verification token",
		LogMessage:     "email verification attempt with unknown token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorAlreadyVerified = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Code:           CodeAlreadyVerified,
		Message:        "Email has already been verified. You can now log in.",
		LogMessage:     "email verification attempt for verified account",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorVerificationTokenExpired = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Code:           CodeTokenExpired,
		Message:        "Verification token has expired. Please request a new verification email.",
		LogMessage:     "email verification attempt with expired token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorEmailNotFound = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Code:           CodeEmailNotFound,
		Message:        "Email not found",
		LogMessage:     "resend verification attempt for unknown email",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorEmailDeliveryFailed = &CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Code:           CodeEmailDeliveryFailed,
		Message:        "Unable to send email. Please try again later.",
		LogMessage:     "error occurred while send verification email",
		LogSeverity:    zapcore.ErrorLevel,
	}

	ErrorUnauthorized = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Code:           CodeUnauthorized,
		Message:        "Invalid or missing token",
		LogMessage:     "request with missing or invalid bearer token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorForbidden = &CustomError{
		HttpStatusCode: fiber.StatusForbidden,
		Code:           CodeForbidden,
		Message:        "You do not have permission to access this resource",
		LogMessage:     "request rejected by role guard",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUserNotFound = &CustomError{
		HttpStatusCode: fiber.StatusNotFound,
		Message:        "User not found",
		LogMessage:     "user not found",
		LogSeverity:    zapcore.WarnLevel,
	}
)
