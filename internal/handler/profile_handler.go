package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/middleware"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/service"
)

// ProfileHandler serves the token-protected user endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Register sets up the protected routes on a router that already carries the
// auth middleware.
func (h *ProfileHandler) Register(api fiber.Router) {
	api.Get("/protected", h.Protected)
	api.Get("/profile", h.Profile)
	api.Get("/user-data", h.UserData)
}

// Protected echoes the verified claim set back to the caller.
func (h *ProfileHandler) Protected(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "This is a protected route",
		"user":    middleware.GetClaims(c),
	})
}

// Profile records the login (insert on first sight, last_login touch after)
// and returns the claims alongside the stored row.
func (h *ProfileHandler) Profile(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	user, err := h.profiles.TouchProfile(c.Context(), claims)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":  claims,
		"userData": user,
	})
}

// UserData returns the stored row merged with all preferences, or an empty
// object when the subject has no row yet. Performs no upsert: a subject that
// has never called /api/profile gets {} even with a valid token.
func (h *ProfileHandler) UserData(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	data, err := h.profiles.UserData(c.Context(), claims.Subject)
	if err != nil {
		return storeError(c, err)
	}
	if data == nil {
		return c.JSON(struct{}{})
	}

	return c.JSON(data)
}

// storeError logs the raw failure and answers with a stable message. The
// underlying error text never reaches the caller.
func storeError(c fiber.Ctx, err error) error {
	slog.Error("store operation failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
