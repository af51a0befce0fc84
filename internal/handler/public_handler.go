package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// PublicHandler serves the endpoints that require no authentication.
type PublicHandler struct{}

// NewPublicHandler creates a new public handler.
func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// Register sets up the public routes.
func (h *PublicHandler) Register(app *fiber.App) {
	app.Get("/api/public", h.Public)
	app.Get("/api/health", h.Health)
}

// Public returns a static acknowledgment. Always succeeds.
func (h *PublicHandler) Public(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "This is a public route",
	})
}

// Health reports liveness with the current server time. Independent of
// database and identity-provider availability.
func (h *PublicHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Server is up and running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
