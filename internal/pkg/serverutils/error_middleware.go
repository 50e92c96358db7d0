package serverutils

import (
	"errors"

	"iomd-notebook-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates the service error taxonomy into HTTP
// statuses. Corrupt state is logged loud before being surfaced as a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var notFound *NotFoundError
		var permission *PermissionError
		var validation *ValidationError
		var corrupt *CorruptStateError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &notFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: notFound.Error()})
		case errors.As(err, &permission):
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse{Message: permission.Error()})
		case errors.As(err, &validation):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: validation.Error()})
		case errors.As(err, &corrupt):
			if log != nil {
				log.Error("serverutils", "corrupt stored state detected", map[string]interface{}{
					"error": corrupt.Error(),
					"path":  ctx.Path(),
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: corrupt.Error()})
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		default:
			if log != nil {
				log.Error("serverutils", "unhandled error", map[string]interface{}{
					"error": err.Error(),
					"path":  ctx.Path(),
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "internal server error"})
		}
	}
}
