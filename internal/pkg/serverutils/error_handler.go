package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorStatus maps a sentinel error (matched with errors.Is) to a status code.
type ErrorStatus struct {
	Err  error
	Code int
}

// ErrorHandlerMiddleware turns errors returned by later handlers into the
// JSON envelope. Unknown errors become 500 without leaking their text.
func ErrorHandlerMiddleware(statuses ...ErrorStatus) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err, statuses...)
	}
}

func WriteError(ctx *fiber.Ctx, err error, statuses ...ErrorStatus) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Error(), validationErr.Fields))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message, nil))
	}

	for _, s := range statuses {
		if errors.Is(err, s.Err) {
			return ctx.Status(s.Code).JSON(ErrorResponse(s.Code, err.Error(), nil))
		}
	}

	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error", nil))
}
