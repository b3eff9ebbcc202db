package serverutils

import (
	"errors"
	"fmt"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

// StatusForFailure maps a failure kind to an HTTP status. Guidance failures are
// ordinary answers and keep 200.
func StatusForFailure(kind assistant.FailureKind) int {
	switch kind {
	case assistant.KindValidation:
		return fiber.StatusBadRequest
	case assistant.KindIrrelevant, assistant.KindNoActiveDocument,
		assistant.KindInvalidIntent, assistant.KindMissingDraftKeyword, assistant.KindDocumentTooLarge:
		return fiber.StatusOK
	case assistant.KindNotFound:
		return fiber.StatusNotFound
	case assistant.KindUnsupportedFile:
		return fiber.StatusUnsupportedMediaType
	case assistant.KindClassification, assistant.KindLLM:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the fiber.Config error handler. Internal causes are logged, never returned.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		f := assistant.AsFailure(err)
		status := StatusForFailure(f.Kind)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  string(f.Kind),
				"error": err.Error(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(status, f.Message))
	}
}

// ErrorHandlerMiddleware turns panics into internal failures so one bad request never takes the process down.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("HTTP", "Recovered from panic", map[string]interface{}{
					"path":  ctx.Path(),
					"panic": fmt.Sprint(r),
				})
				err = assistant.Fail(assistant.KindInternal, assistant.MessageInternal, fmt.Errorf("panic: %v", r))
			}
		}()
		return ctx.Next()
	}
}
