//go:build unit

package user

import (
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-api/pkg/cerror"
	"course-api/pkg/config"
	"course-api/pkg/jwt_generator"
	"course-api/pkg/response"
	"course-api/pkg/server"

	"github.com/gofiber/fiber/v2"
)

func testJwtGenerator(t *testing.T) jwt_generator.JwtGenerator {
	t.Helper()

	jwtGenerator, err := jwt_generator.NewJwtGenerator(config.JwtConfig{
		AccessSecret:     []byte("access-secret-key"),
		RefreshSecret:    []byte("refresh-secret-key"),
		ExpiresIn:        "1d",
		RefreshExpiresIn: "7d",
	})
	require.NoError(t, err)

	return jwtGenerator
}

func TestNewHandler(t *testing.T) {
	userHandler := NewHandler(nil, nil)

	assert.Implements(t, (*server.Handler)(nil), userHandler)
}

func TestHandler_ListUsers(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	jwtGenerator := testJwtGenerator(t)

	newApp := func(userService Service) *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler: cerror.Middleware,
		})

		userHandler := NewHandler(userService, jwtGenerator)
		userHandler.RegisterRoutes(app)

		return app
	}

	t.Run("happy path", func(t *testing.T) {
		mockUserService := NewMockService(mockController)
		mockUserService.
			EXPECT().
			GetUserRole(gomock.Any(), TestUserId).
			Return(RoleAdmin, nil)
		mockUserService.
			EXPECT().
			ListUsers(gomock.Any(), int64(1), int64(10)).
			Return([]Profile{
				{Id: TestUserId, Email: TestEmail, Role: RoleUser},
			}, &response.Pagination{
				Page:       1,
				Limit:      10,
				TotalItems: 1,
				TotalPages: 1,
			}, nil)

		app := newApp(mockUserService)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestEmail, TestUserId)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/api/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when limit is out of range defaults should apply", func(t *testing.T) {
		mockUserService := NewMockService(mockController)
		mockUserService.
			EXPECT().
			GetUserRole(gomock.Any(), TestUserId).
			Return(RoleAdmin, nil)
		mockUserService.
			EXPECT().
			ListUsers(gomock.Any(), int64(1), int64(10)).
			Return([]Profile{}, &response.Pagination{Page: 1, Limit: 10}, nil)

		app := newApp(mockUserService)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestEmail, TestUserId)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/api/users?page=0&limit=1000", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("when caller is not admin should return forbidden", func(t *testing.T) {
		mockUserService := NewMockService(mockController)
		mockUserService.
			EXPECT().
			GetUserRole(gomock.Any(), TestUserId).
			Return(RoleUser, nil)

		app := newApp(mockUserService)

		accessToken, err := jwtGenerator.GenerateAccessToken(TestEmail, TestUserId)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/api/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("when authorization header is missing should return unauthorized", func(t *testing.T) {
		app := newApp(nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/users", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
