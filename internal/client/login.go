package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/pkg/config"
)

// callbackResult carries the provider redirect parameters from the loopback
// listener back to the login flow.
type callbackResult struct {
	code  string
	state string
	err   string
}

// Login drives the hosted login flow: it discovers the provider endpoints,
// opens an authorization-code + PKCE exchange with a loopback redirect, and
// verifies the returned ID token before handing back a cacheable session
// token. The authorization URL is written to out for the user to open.
func Login(ctx context.Context, cfg *config.ClientConfig, out io.Writer) (*CachedToken, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("discover provider: %w", err)
	}

	redirectURL := "http://127.0.0.1:" + cfg.CallbackPort + "/callback"
	oauthCfg := &oauth2.Config{
		ClientID:    cfg.Auth0ClientID,
		RedirectURL: redirectURL,
		Endpoint:    provider.Endpoint(),
		Scopes:      []string{oidc.ScopeOpenID, "profile", "email"},
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	authURL := oauthCfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("audience", cfg.Auth0Audience),
	)

	results := make(chan callbackResult, 1)
	server, err := startCallbackServer(cfg.CallbackPort, results)
	if err != nil {
		return nil, err
	}
	defer server.Shutdown(context.Background())

	fmt.Fprintf(out, "Open the following URL in your browser to sign in:\n\n  %s\n\n", authURL)

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.err != "" {
		return nil, fmt.Errorf("provider returned error: %s", result.err)
	}
	if result.state != state {
		return nil, errors.New("state mismatch in provider redirect")
	}

	token, err := oauthCfg.Exchange(ctx, result.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("provider response missing id_token")
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: cfg.Auth0ClientID}).Verify(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("read id token claims: %w", err)
	}

	return &CachedToken{
		AccessToken: token.AccessToken,
		IDToken:     rawID,
		Expiry:      token.Expiry,
		Identity: domain.Identity{
			Subject: idToken.Subject,
			Name:    claims.Name,
			Email:   claims.Email,
			Picture: claims.Picture,
		},
	}, nil
}

// startCallbackServer listens on the loopback redirect target and forwards
// the first callback it receives.
func startCallbackServer(port string, results chan<- callbackResult) (*http.Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on callback port: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		select {
		case results <- callbackResult{
			code:  q.Get("code"),
			state: q.Get("state"),
			err:   q.Get("error"),
		}:
		default:
		}
		fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)

	return server, nil
}
