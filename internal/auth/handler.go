package auth

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-api/pkg/cerror"
	"course-api/pkg/jwt_generator"
	"course-api/pkg/logger"
	"course-api/pkg/middleware"
	"course-api/pkg/response"
	"course-api/pkg/server"
)

type handler struct {
	authService  Service
	jwtGenerator jwt_generator.JwtGenerator
	validate     *validator.Validate
}

func NewHandler(authService Service, jwtGenerator jwt_generator.JwtGenerator) server.Handler {
	return &handler{
		authService:  authService,
		jwtGenerator: jwtGenerator,
		validate:     validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/refresh", h.Refresh)
	api.Get("/auth/verify-email", h.VerifyEmail)
	api.Post("/auth/resend-verification", h.ResendVerification)
	api.Get("/auth/me", middleware.Authenticate(h.jwtGenerator), h.Me)
}

func (h *handler) Register(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "registerWithEmail"))
	ctx.Locals(logger.ContextKey, log)

	var payload RegisterPayload
	err := h.parseAndValidate(ctx, &payload)
	if err != nil {
		return err
	}

	registerResult, err := h.authService.Register(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusCreated).
		JSON(response.Success(registerResult))
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "loginWithEmail"))
	ctx.Locals(logger.ContextKey, log)

	var payload LoginPayload
	err := h.parseAndValidate(ctx, &payload)
	if err != nil {
		return err
	}

	sessionTokens, err := h.authService.Login(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Success(sessionTokens))
}

func (h *handler) Refresh(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "refreshSession"))
	ctx.Locals(logger.ContextKey, log)

	var payload RefreshPayload
	err := h.parseAndValidate(ctx, &payload)
	if err != nil {
		return err
	}

	sessionTokens, err := h.authService.Refresh(ctx.Context(), payload.RefreshToken)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Success(sessionTokens))
}

func (h *handler) VerifyEmail(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "verifyEmail"))
	ctx.Locals(logger.ContextKey, log)

	token := ctx.Query("token")
	if token == "" {
		return cerror.NewValidationError(map[string]string{
			"token": "is required",
		})
	}

	messageResult, err := h.authService.VerifyEmail(ctx.Context(), token)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Success(messageResult))
}

func (h *handler) ResendVerification(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "resendVerification"))
	ctx.Locals(logger.ContextKey, log)

	var payload ResendVerificationPayload
	err := h.parseAndValidate(ctx, &payload)
	if err != nil {
		return err
	}

	messageResult, err := h.authService.ResendVerification(ctx.Context(), payload.Email)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Success(messageResult))
}

func (h *handler) Me(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "getProfile"))
	ctx.Locals(logger.ContextKey, log)

	userId, _ := ctx.Locals(middleware.UserIdKey).(string)
	if userId == "" {
		return cerror.ErrorUnauthorized
	}

	profile, err := h.authService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(response.Success(profile))
}

func (h *handler) parseAndValidate(ctx *fiber.Ctx, payload interface{}) error {
	err := ctx.BodyParser(payload)
	if err != nil {
		return cerror.NewError(
			fiber.StatusBadRequest,
			"malformed request body",
			zap.Error(err),
		).SetSeverity(zap.WarnLevel)
	}

	err = h.validate.Struct(payload)
	if err != nil {
		validationErrors, isValidationErrors := err.(validator.ValidationErrors)
		if !isValidationErrors {
			return cerror.NewError(
				fiber.StatusBadRequest,
				"malformed request body",
				zap.Error(err),
			).SetSeverity(zap.WarnLevel)
		}

		return cerror.NewValidationError(formatValidationErrors(validationErrors))
	}

	return nil
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldName := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]

		switch fieldError.Tag() {
		case "required":
			details[fieldName] = "is required"
		case "email":
			details[fieldName] = "must be an email"
		case "min":
			details[fieldName] = fmt.Sprintf("must be at least %s characters", fieldError.Param())
		case "max":
			details[fieldName] = fmt.Sprintf("must be at most %s characters", fieldError.Param())
		default:
			details[fieldName] = fmt.Sprintf("failed on the %s rule", fieldError.Tag())
		}
	}

	return details
}
