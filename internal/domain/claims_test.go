package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestClaimsFromMap_SplitsKnownAndExtra(t *testing.T) {
	raw := map[string]any{
		"sub":     "auth0|abc123",
		"email":   "jane@example.com",
		"name":    "Jane Doe",
		"picture": "https://cdn.example.com/jane.png",
		"iss":     "https://tenant.auth0.com/",
		"aud":     "https://api.example.com",
		"iat":     float64(1700000000),
		"exp":     float64(1700003600),
		"scope":   "openid profile email",
		"org_id":  "org_42",
	}

	c := ClaimsFromMap(raw)

	if c.Subject != "auth0|abc123" {
		t.Errorf("Subject = %q, want auth0|abc123", c.Subject)
	}
	if c.Email != "jane@example.com" {
		t.Errorf("Email = %q", c.Email)
	}
	if c.Issuer != "https://tenant.auth0.com/" {
		t.Errorf("Issuer = %q", c.Issuer)
	}
	if len(c.Audience) != 1 || c.Audience[0] != "https://api.example.com" {
		t.Errorf("Audience = %v", c.Audience)
	}
	if got := c.Expiry.Unix(); got != 1700003600 {
		t.Errorf("Expiry = %d, want 1700003600", got)
	}

	if len(c.Extra) != 2 {
		t.Fatalf("Extra = %v, want 2 entries", c.Extra)
	}
	if c.Extra["scope"] != "openid profile email" {
		t.Errorf("Extra[scope] = %v", c.Extra["scope"])
	}
	if _, ok := c.Extra["sub"]; ok {
		t.Error("known claim sub leaked into Extra")
	}
}

func TestClaimsFromMap_AudienceList(t *testing.T) {
	c := ClaimsFromMap(map[string]any{
		"sub": "auth0|abc123",
		"aud": []any{"https://api.example.com", "https://tenant.auth0.com/userinfo"},
	})

	if len(c.Audience) != 2 {
		t.Fatalf("Audience = %v, want 2 entries", c.Audience)
	}
}

func TestClaims_MarshalJSON_EchoesFullClaimSet(t *testing.T) {
	c := &Claims{
		Subject:  "auth0|abc123",
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Issuer:   "https://tenant.auth0.com/",
		Audience: []string{"https://api.example.com"},
		IssuedAt: time.Unix(1700000000, 0),
		Expiry:   time.Unix(1700003600, 0),
		Extra:    map[string]any{"scope": "openid"},
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out["sub"] != "auth0|abc123" {
		t.Errorf("sub = %v", out["sub"])
	}
	if out["aud"] != "https://api.example.com" {
		t.Errorf("single audience should flatten to a string, got %v", out["aud"])
	}
	if out["exp"] != float64(1700003600) {
		t.Errorf("exp = %v", out["exp"])
	}
	if out["scope"] != "openid" {
		t.Errorf("extra claim scope = %v", out["scope"])
	}
}

func TestClaims_MarshalJSON_OmitsAbsentOptionalClaims(t *testing.T) {
	data, err := json.Marshal(&Claims{Subject: "auth0|abc123", Issuer: "https://tenant.auth0.com/"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"email", "name", "picture", "iat", "exp", "aud"} {
		if _, ok := out[key]; ok {
			t.Errorf("absent claim %q should not be serialized", key)
		}
	}
}
