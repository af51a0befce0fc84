package port

import (
	"context"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
)

// TokenVerifier validates a raw bearer token against the identity provider's
// published signing keys and the configured audience and issuer. On success
// it returns the decoded claim set; any failure returns ErrTokenExpired or
// ErrTokenInvalid.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Claims, error)
}
