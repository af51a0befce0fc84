// Package client implements the native counterpart of the original
// single-page application: the hosted login flow, a persistent token cache,
// and the post-login data fetches against the API service.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
)

// State is the client session state.
type State int

const (
	// Unauthenticated means no usable token is cached.
	Unauthenticated State = iota
	// Authenticating means an interactive login is in flight.
	Authenticating
	// Authenticated means a cached, unexpired token is available.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// CachedToken is the on-disk session record. It lives only on the client
// side; the server never stores tokens.
type CachedToken struct {
	AccessToken string          `json:"access_token"`
	IDToken     string          `json:"id_token"`
	Expiry      time.Time       `json:"expiry"`
	Identity    domain.Identity `json:"identity"`
}

// Expired reports whether the token is past its expiry.
func (t *CachedToken) Expired() bool {
	return !t.Expiry.IsZero() && time.Now().After(t.Expiry)
}

// Session holds the client-side authentication state backed by a token
// cache file, so the session survives process restarts until an explicit
// sign-out.
type Session struct {
	path  string
	state State
	token *CachedToken
}

// LoadSession reads the token cache at path. A missing or expired cache
// yields an unauthenticated session, never an error.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path, state: Unauthenticated}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var token CachedToken
	if err := json.Unmarshal(data, &token); err != nil {
		// A corrupt cache is treated as signed out.
		return s, nil
	}
	if token.Expired() {
		return s, nil
	}

	s.token = &token
	s.state = Authenticated
	return s, nil
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Token returns the cached token, or nil when unauthenticated.
func (s *Session) Token() *CachedToken {
	if s.state != Authenticated {
		return nil
	}
	return s.token
}

// BeginLogin marks the interactive redirect as in flight.
func (s *Session) BeginLogin() {
	s.state = Authenticating
}

// Complete persists the token obtained from the provider and moves the
// session to Authenticated.
func (s *Session) Complete(token *CachedToken) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	s.token = token
	s.state = Authenticated
	return nil
}

// SignOut removes the token cache and returns the session to
// Unauthenticated. Removing an absent cache is not an error.
func (s *Session) SignOut() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	s.token = nil
	s.state = Unauthenticated
	return nil
}

// LogoutURL builds the provider's logout URL, which clears the hosted
// session and sends the user back to returnTo.
func LogoutURL(auth0Domain, clientID, returnTo string) string {
	params := url.Values{
		"client_id": {clientID},
		"returnTo":  {returnTo},
	}
	return "https://" + auth0Domain + "/v2/logout?" + params.Encode()
}
