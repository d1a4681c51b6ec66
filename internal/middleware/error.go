package middleware

import (
	"net/http"

	"github.com/clearledger/blogen/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders unhandled errors as JSON in a consistent shape
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
