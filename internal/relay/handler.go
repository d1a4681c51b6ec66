package relay

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clearledger/blogen/internal/logger"
)

var allowedMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"PATCH":  true,
	"DELETE": true,
}

// Handler exposes the forwarder as a same-origin endpoint. Non-success
// upstream statuses pass through with their body text so the caller
// can surface the real error.
func Handler(f *Forwarder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ProxyRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body: " + err.Error(),
			})
		}

		if !allowedMethods[req.Method] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported method: " + req.Method,
			})
		}

		status, body, err := f.Forward(c.Context(), req, c.Get("Authorization"))
		if err != nil {
			logger.Get().Error().Err(err).Str("path", req.Path).Msg("Relay error")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Set("Content-Type", "application/json")
		return c.Status(status).Send(body)
	}
}
