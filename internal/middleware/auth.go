package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/port"
)

const claimsLocalsKey = "claims"

// Auth creates a Fiber middleware that validates the bearer token and
// injects the verified claim set into the request context. Any validation
// failure short-circuits with 401 before the handler body runs.
func Auth(verifier port.TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractBearer(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": port.ErrMissingToken.Error(),
			})
		}

		claims, err := verifier.Verify(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": authErrorMessage(err),
			})
		}

		c.Locals(claimsLocalsKey, claims)
		return c.Next()
	}
}

// GetClaims extracts the verified claims from Fiber locals. Nil when the
// route was not behind Auth.
func GetClaims(c fiber.Ctx) *domain.Claims {
	claims, ok := c.Locals(claimsLocalsKey).(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearer(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// authErrorMessage keeps 401 bodies to the sentinel text; verifier detail
// (key ids, issuer URLs) stays in server logs only.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, port.ErrTokenExpired):
		return port.ErrTokenExpired.Error()
	default:
		return port.ErrTokenInvalid.Error()
	}
}
