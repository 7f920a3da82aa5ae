package cerror

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-api/pkg/logger"
)

// Middleware is the fiber error handler. Handlers and services raise
// CustomError values and never format error bodies themselves; this is the
// single place domain failures become the uniform error envelope.
func Middleware(ctx *fiber.Ctx, err error) error {
	log := logger.FromContext(ctx.Context())

	var cerr *CustomError
	isCerror := errors.As(err, &cerr)
	if !isCerror {
		log.Desugar().Error("unhandled error", zap.Error(err))
		return ctx.
			Status(http.StatusInternalServerError).
			JSON(ErrorResponse{
				Success: false,
				Error: ErrorBody{
					Message: "Internal server error",
				},
			})
	}

	logWithFields := log.Desugar()
	if len(cerr.LogFields) > 0 {
		logWithFields = logWithFields.With(cerr.LogFields...)
	}
	logWithFields.Log(cerr.LogSeverity, cerr.LogMessage)

	message := cerr.Message
	if message == "" {
		// Internal failure raised through NewError; never leak details.
		message = "Internal server error"
	}

	return ctx.
		Status(cerr.HttpStatusCode).
		JSON(ErrorResponse{
			Success: false,
			Error: ErrorBody{
				Message: message,
				Code:    cerr.Code,
				Details: cerr.Details,
			},
		})
}
