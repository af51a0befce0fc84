package domain

import (
	"encoding/json"
	"time"
)

// Claims is the verified token claim set. The fields the application relies
// on are typed; anything else the provider asserts is preserved in Extra so
// the claim set can be echoed back in full.
type Claims struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	Issuer   string
	Audience []string
	IssuedAt time.Time
	Expiry   time.Time

	// Extra holds provider-asserted claims the service does not interpret.
	Extra map[string]any
}

// knownClaimKeys are the claim names mapped onto typed fields.
var knownClaimKeys = map[string]bool{
	"sub": true, "email": true, "name": true, "picture": true,
	"iss": true, "aud": true, "iat": true, "exp": true,
}

// ClaimsFromMap builds a Claims from a raw decoded claim map, splitting
// known fields from the open extension set.
func ClaimsFromMap(raw map[string]any) *Claims {
	c := &Claims{}

	if v, ok := raw["sub"].(string); ok {
		c.Subject = v
	}
	if v, ok := raw["email"].(string); ok {
		c.Email = v
	}
	if v, ok := raw["name"].(string); ok {
		c.Name = v
	}
	if v, ok := raw["picture"].(string); ok {
		c.Picture = v
	}
	if v, ok := raw["iss"].(string); ok {
		c.Issuer = v
	}

	switch aud := raw["aud"].(type) {
	case string:
		c.Audience = []string{aud}
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				c.Audience = append(c.Audience, s)
			}
		}
	}

	if v, ok := numericDate(raw["iat"]); ok {
		c.IssuedAt = v
	}
	if v, ok := numericDate(raw["exp"]); ok {
		c.Expiry = v
	}

	for k, v := range raw {
		if knownClaimKeys[k] {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[k] = v
	}

	return c
}

// MarshalJSON flattens the typed fields and Extra into a single object so
// responses carry exactly the claim set the token encoded.
func (c *Claims) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+8)
	for k, v := range c.Extra {
		out[k] = v
	}

	out["sub"] = c.Subject
	out["iss"] = c.Issuer
	if c.Email != "" {
		out["email"] = c.Email
	}
	if c.Name != "" {
		out["name"] = c.Name
	}
	if c.Picture != "" {
		out["picture"] = c.Picture
	}
	if len(c.Audience) == 1 {
		out["aud"] = c.Audience[0]
	} else if len(c.Audience) > 1 {
		out["aud"] = c.Audience
	}
	if !c.IssuedAt.IsZero() {
		out["iat"] = c.IssuedAt.Unix()
	}
	if !c.Expiry.IsZero() {
		out["exp"] = c.Expiry.Unix()
	}

	return json.Marshal(out)
}

// Identity is the provider-asserted identity rendered by the client once
// authenticated, independent of any backend fetch.
type Identity struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func numericDate(v any) (time.Time, bool) {
	switch n := v.(type) {
	case float64:
		return time.Unix(int64(n), 0), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(i, 0), true
	default:
		return time.Time{}, false
	}
}
