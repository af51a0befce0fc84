// Package auth validates bearer tokens against an OIDC identity provider.
// Signature verification, JWKS retrieval and caching are delegated to
// go-oidc; this adapter only maps results onto the domain.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/port"
)

// OIDCVerifier implements port.TokenVerifier on top of an oidc.IDTokenVerifier.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ port.TokenVerifier = (*OIDCVerifier)(nil)

// NewOIDCVerifier discovers the provider's configuration from the issuer
// base URL and verifies RS256 tokens against its published key set,
// requiring the configured audience.
func NewOIDCVerifier(ctx context.Context, issuerBaseURL, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerBaseURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
	}, nil
}

// NewOIDCVerifierWithKeySet builds a verifier from an explicit JWKS endpoint,
// skipping discovery. Used when the key set URL is known up front and in tests.
func NewOIDCVerifierWithKeySet(ctx context.Context, issuer, jwksURL, audience string) *OIDCVerifier {
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			ClientID:             audience,
			SupportedSigningAlgs: []string{oidc.RS256},
		}),
	}
}

// Verify checks signature, issuer, audience and expiry, and returns the
// decoded claim set. Failures map to port sentinels so callers never branch
// on provider-library error types.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*domain.Claims, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, fmt.Errorf("%w: %v", port.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", port.ErrTokenInvalid, err)
	}

	var raw map[string]any
	if err := token.Claims(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", port.ErrTokenInvalid, err)
	}

	return domain.ClaimsFromMap(raw), nil
}
