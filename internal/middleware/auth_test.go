package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/port"
)

// fakeVerifier is a test fake implementing port.TokenVerifier.
type fakeVerifier struct {
	claims *domain.Claims
	err    error

	called    bool
	lastToken string
}

func (f *fakeVerifier) Verify(_ context.Context, rawToken string) (*domain.Claims, error) {
	f.called = true
	f.lastToken = rawToken
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newAuthApp(verifier port.TokenVerifier) (*fiber.App, *bool) {
	handlerRan := false
	app := fiber.New()
	app.Get("/secure", Auth(verifier), func(c fiber.Ctx) error {
		handlerRan = true
		return c.JSON(GetClaims(c))
	})
	return app, &handlerRan
}

func TestAuth_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{claims: &domain.Claims{Subject: "auth0|abc123", Email: "jane@example.com"}}
	app, handlerRan := newAuthApp(verifier)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !*handlerRan {
		t.Error("handler should run for a valid token")
	}
	if verifier.lastToken != "good-token" {
		t.Errorf("verifier received %q", verifier.lastToken)
	}

	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if claims["sub"] != "auth0|abc123" {
		t.Errorf("claims in locals = %v", claims)
	}
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifyErr  error
		wantError  string
		wantVerify bool
	}{
		{
			name:      "missing header",
			wantError: port.ErrMissingToken.Error(),
		},
		{
			name:       "not a bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantError:  port.ErrMissingToken.Error(),
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			verifyErr:  port.ErrTokenInvalid,
			wantError:  port.ErrTokenInvalid.Error(),
			wantVerify: true,
		},
		{
			name:       "expired token",
			authHeader: "Bearer old",
			verifyErr:  port.ErrTokenExpired,
			wantError:  port.ErrTokenExpired.Error(),
			wantVerify: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: test.verifyErr}
			app, handlerRan := newAuthApp(verifier)

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if test.authHeader != "" {
				req.Header.Set("Authorization", test.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("test request: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			if *handlerRan {
				t.Error("handler must not run when auth fails")
			}
			if verifier.called != test.wantVerify {
				t.Errorf("verifier called = %v, want %v", verifier.called, test.wantVerify)
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != test.wantError {
				t.Errorf("error = %q, want %q", body["error"], test.wantError)
			}
		})
	}
}

func TestGetClaims_OutsideAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c fiber.Ctx) error {
		if GetClaims(c) != nil {
			t.Error("claims should be nil outside Auth")
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
