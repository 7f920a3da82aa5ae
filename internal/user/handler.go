package user

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-api/pkg/jwt_generator"
	"course-api/pkg/logger"
	"course-api/pkg/middleware"
	"course-api/pkg/response"
	"course-api/pkg/server"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type handler struct {
	userService  Service
	jwtGenerator jwt_generator.JwtGenerator
}

func NewHandler(userService Service, jwtGenerator jwt_generator.JwtGenerator) server.Handler {
	return &handler{
		userService:  userService,
		jwtGenerator: jwtGenerator,
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/users",
		middleware.Authenticate(h.jwtGenerator),
		middleware.RequireRole(h.userService.GetUserRole, RoleAdmin),
		h.ListUsers,
	)
}

func (h *handler) ListUsers(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "listUsers"))
	ctx.Locals(logger.ContextKey, log)

	page := int64(ctx.QueryInt("page", defaultPage))
	if page < 1 {
		page = defaultPage
	}

	limit := int64(ctx.QueryInt("limit", defaultLimit))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	profiles, pagination, err := h.userService.ListUsers(ctx.Context(), page, limit)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Paginated(profiles, pagination))
}
