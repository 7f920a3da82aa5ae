//go:build unit

package cerror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppWithRoute(routeHandler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: Middleware,
	})
	app.Get("/test", routeHandler)

	return app
}

func TestMiddleware(t *testing.T) {
	t.Run("when handler returns custom error should respond with error envelope", func(t *testing.T) {
		app := testAppWithRoute(func(ctx *fiber.Ctx) error {
			return ErrorInvalidCredentials
		})

		req := httptest.NewRequest(fiber.MethodGet, "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var errorResponse ErrorResponse
		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(respBody, &errorResponse))

		assert.False(t, errorResponse.Success)
		assert.Equal(t, "Invalid credentials", errorResponse.Error.Message)
	})

	t.Run("when custom error has no client message should respond generic", func(t *testing.T) {
		app := testAppWithRoute(func(ctx *fiber.Ctx) error {
			return NewError(fiber.StatusInternalServerError, "database exploded")
		})

		req := httptest.NewRequest(fiber.MethodGet, "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), "Internal server error")
		assert.NotContains(t, string(respBody), "database exploded")
	})

	t.Run("when handler returns plain error should respond generic", func(t *testing.T) {
		app := testAppWithRoute(func(ctx *fiber.Ctx) error {
			return errors.New("something went wrong")
		})

		req := httptest.NewRequest(fiber.MethodGet, "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(respBody), "Internal server error")
		assert.NotContains(t, string(respBody), "something went wrong")
	})

	t.Run("validation error should carry code and details", func(t *testing.T) {
		app := testAppWithRoute(func(ctx *fiber.Ctx) error {
			return NewValidationError(map[string]string{
				"email": "must be an email",
			})
		})

		req := httptest.NewRequest(fiber.MethodGet, "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errorResponse ErrorResponse
		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(respBody, &errorResponse))

		assert.Equal(t, CodeValidationFailed, errorResponse.Error.Code)
		assert.Equal(t, "must be an email", errorResponse.Error.Details["email"])
	})
}
