package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-api/pkg/cerror"
	"course-api/pkg/jwt_generator"
)

const (
	UserIdKey    = "userId"
	UserEmailKey = "userEmail"

	bearerPrefix = "Bearer "
)

// RoleLookup resolves the current role of an account. Roles are checked
// against the store rather than token claims, so a role change takes
// effect without waiting for token expiry.
type RoleLookup func(ctx context.Context, userId string) (string, error)

// Authenticate verifies the bearer access token and stores the subject
// and email in request locals.
func Authenticate(jwtGenerator jwt_generator.JwtGenerator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return cerror.ErrorUnauthorized
		}

		rawJwtToken := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtGenerator.VerifyAccessToken(rawJwtToken)
		if err != nil {
			return cerror.ErrorUnauthorized.WithFields(zap.Error(err))
		}

		ctx.Locals(UserIdKey, claims.Subject)
		ctx.Locals(UserEmailKey, claims.Email)
		return ctx.Next()
	}
}

// RequireRole gates a route on a declared role set. The required roles are
// plain route configuration; the capability check is injected. Must run
// after Authenticate.
func RequireRole(lookup RoleLookup, roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, _ := ctx.Locals(UserIdKey).(string)
		if userId == "" {
			return cerror.ErrorUnauthorized
		}

		role, err := lookup(ctx.Context(), userId)
		if err != nil {
			return err
		}

		for _, requiredRole := range roles {
			if role == requiredRole {
				return ctx.Next()
			}
		}

		return cerror.ErrorForbidden.WithFields(
			zap.String("userId", userId),
			zap.String("role", role),
		)
	}
}
