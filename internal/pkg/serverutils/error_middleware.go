package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and turns unhandled fiber errors
// into the uniform envelope so the front end never sees a bare stack trace.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, fmt.Sprintf("internal error: %v", r)))
			}
		}()

		if err := ctx.Next(); err != nil {
			code := fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				code = fiberErr.Code
			}
			return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
		}
		return nil
	}
}
