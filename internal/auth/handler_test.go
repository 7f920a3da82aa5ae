//go:build unit

package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-api/internal/user"
	"course-api/pkg/cerror"
	"course-api/pkg/config"
	"course-api/pkg/jwt_generator"
	"course-api/pkg/server"

	"github.com/gofiber/fiber/v2"
)

const TestRefreshToken = "abcd.abcd.abcd"

func testApp(t *testing.T, authService Service) *fiber.App {
	t.Helper()

	jwtGenerator, err := jwt_generator.NewJwtGenerator(config.JwtConfig{
		AccessSecret:     []byte("access-secret-key"),
		RefreshSecret:    []byte("refresh-secret-key"),
		ExpiresIn:        "1d",
		RefreshExpiresIn: "7d",
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: cerror.Middleware,
	})

	authHandler := NewHandler(authService, jwtGenerator)
	authHandler.RegisterRoutes(app)

	return app
}

func TestNewHandler(t *testing.T) {
	authHandler := NewHandler(nil, nil)

	assert.Implements(t, (*server.Handler)(nil), authHandler)
}

func TestHandler_Register(t *testing.T) {
	TestPayload := RegisterPayload{
		Email:    TestEmail,
		Password: TestPassword,
		FullName: TestUserFullName,
	}

	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Register(gomock.Any(), &TestPayload).
			Return(&RegisterResult{
				User: &user.Profile{
					Id:    TestUserId,
					Email: TestEmail,
				},
				Message: "Registration successful! Please check your email to verify your account.",
			}, nil)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&TestPayload)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), `"success":true`)
		assert.Contains(t, string(respBody), TestEmail)
	})

	t.Run("when body cant parsing should return error", func(t *testing.T) {
		app := testApp(t, nil)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", strings.NewReader(`"invalid":"body"`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("when payload is invalid should return validation details", func(t *testing.T) {
		app := testApp(t, nil)

		reqBody, err := json.Marshal(&RegisterPayload{
			Email:    "invalid-mail.com",
			Password: "123",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errorResponse cerror.ErrorResponse
		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(respBody, &errorResponse))

		assert.False(t, errorResponse.Success)
		assert.Equal(t, "Validation failed", errorResponse.Error.Message)
		assert.Equal(t, "must be an email", errorResponse.Error.Details["email"])
		assert.Equal(t, "must be at least 6 characters", errorResponse.Error.Details["password"])
	})

	t.Run("when email already exists should return error", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Register(gomock.Any(), &TestPayload).
			Return(nil, cerror.ErrorEmailAlreadyExists)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&TestPayload)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), "Email already exists")
	})
}

func TestHandler_Login(t *testing.T) {
	TestPayload := LoginPayload{
		Email:    TestEmail,
		Password: TestPassword,
	}

	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Login(gomock.Any(), &TestPayload).
			Return(&SessionTokens{
				AccessToken:  "access.token",
				RefreshToken: "refresh.token",
				ExpiresIn:    86400,
			}, nil)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&TestPayload)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/login", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when email is not verified should return error", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Login(gomock.Any(), &TestPayload).
			Return(nil, cerror.ErrorEmailNotVerified)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&TestPayload)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/login", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), "Email not verified")
	})
}

func TestHandler_Refresh(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Refresh(gomock.Any(), TestRefreshToken).
			Return(&SessionTokens{
				AccessToken:  "access.token",
				RefreshToken: "refresh.token",
			}, nil)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&RefreshPayload{RefreshToken: TestRefreshToken})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/refresh", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when refresh token is invalid should return error", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			Refresh(gomock.Any(), TestRefreshToken).
			Return(nil, cerror.ErrorInvalidRefreshToken)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&RefreshPayload{RefreshToken: TestRefreshToken})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/refresh", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("when refresh token is missing should return validation error", func(t *testing.T) {
		app := testApp(t, nil)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_VerifyEmail(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			VerifyEmail(gomock.Any(), TestVerificationToken).
			Return(&MessageResult{
				Message: "Email verified successfully! You can now log in.",
			}, nil)

		app := testApp(t, mockAuthService)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/verify-email?token="+TestVerificationToken, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when token is missing should return validation error", func(t *testing.T) {
		app := testApp(t, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/verify-email", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), "token")
	})

	t.Run("when token is expired should return error", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			VerifyEmail(gomock.Any(), TestVerificationToken).
			Return(nil, cerror.ErrorVerificationTokenExpired)

		app := testApp(t, mockAuthService)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/verify-email?token="+TestVerificationToken, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_ResendVerification(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			ResendVerification(gomock.Any(), TestEmail).
			Return(&MessageResult{
				Message: "Verification email has been resent. Please check your inbox.",
			}, nil)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&ResendVerificationPayload{Email: TestEmail})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/resend-verification", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when delivery fails should return error", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			ResendVerification(gomock.Any(), TestEmail).
			Return(nil, cerror.ErrorEmailDeliveryFailed)

		app := testApp(t, mockAuthService)

		reqBody, err := json.Marshal(&ResendVerificationPayload{Email: TestEmail})
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/auth/resend-verification", bytes.NewReader(reqBody))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_Me(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	jwtGenerator, err := jwt_generator.NewJwtGenerator(config.JwtConfig{
		AccessSecret:     []byte("access-secret-key"),
		RefreshSecret:    []byte("refresh-secret-key"),
		ExpiresIn:        "1d",
		RefreshExpiresIn: "7d",
	})
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		mockAuthService := NewMockService(mockController)
		mockAuthService.
			EXPECT().
			GetProfile(gomock.Any(), TestUserId).
			Return(&user.Profile{
				Id:            TestUserId,
				Email:         TestEmail,
				EmailVerified: true,
			}, nil)

		app := testApp(t, mockAuthService)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestEmail, TestUserId)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), TestEmail)
	})

	t.Run("when authorization header is missing should return unauthorized", func(t *testing.T) {
		app := testApp(t, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("when access token is invalid should return unauthorized", func(t *testing.T) {
		app := testApp(t, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
