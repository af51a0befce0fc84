package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the API service configuration loaded from environment
// variables. Loaded once at startup and treated as immutable.
type Config struct {
	// Server
	Port    string
	AppName string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Identity provider
	Auth0Audience      string
	Auth0IssuerBaseURL string

	// Rate limiting
	RateLimitPerMinute int

	// CORS
	CORSAllowedOrigin string
}

// Load reads the service configuration from environment variables. The
// identity-provider settings are required; everything else has defaults.
// DATABASE_URL wins over the discrete DB_* variables when both are set.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    envOrDefault("PORT", "3001"),
		AppName: envOrDefault("APP_NAME", "auth0-fullstack-go"),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrateOnStart: envOrDefaultBool("MIGRATE_ON_START", true),

		Auth0Audience:      os.Getenv("AUTH0_AUDIENCE"),
		Auth0IssuerBaseURL: os.Getenv("AUTH0_ISSUER_BASE_URL"),

		RateLimitPerMinute: envOrDefaultInt("RATE_LIMIT_PER_MINUTE", 120),

		CORSAllowedOrigin: envOrDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts()
	}

	var missing []string
	if cfg.Auth0Audience == "" {
		missing = append(missing, "AUTH0_AUDIENCE")
	}
	if cfg.Auth0IssuerBaseURL == "" {
		missing = append(missing, "AUTH0_ISSUER_BASE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	return cfg, nil
}

// ClientConfig holds the web client configuration.
type ClientConfig struct {
	Auth0Domain   string
	Auth0ClientID string
	Auth0Audience string

	APIBaseURL   string
	CallbackPort string
	TokenCache   string
}

// LoadClient reads the web client configuration from environment variables.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		Auth0ClientID: os.Getenv("AUTH0_CLIENT_ID"),
		Auth0Audience: os.Getenv("AUTH0_AUDIENCE"),

		APIBaseURL:   envOrDefault("API_BASE_URL", "http://localhost:3001"),
		CallbackPort: envOrDefault("CALLBACK_PORT", "8123"),
		TokenCache:   os.Getenv("TOKEN_CACHE"),
	}

	var missing []string
	if cfg.Auth0Domain == "" {
		missing = append(missing, "AUTH0_DOMAIN")
	}
	if cfg.Auth0ClientID == "" {
		missing = append(missing, "AUTH0_CLIENT_ID")
	}
	if cfg.Auth0Audience == "" {
		missing = append(missing, "AUTH0_AUDIENCE")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	if cfg.TokenCache == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.TokenCache = filepath.Join(dir, "auth0-fullstack-go", "token.json")
	}

	return cfg, nil
}

// IssuerURL returns the OIDC issuer URL for the configured Auth0 domain.
// Auth0 issuers carry a trailing slash.
func (c *ClientConfig) IssuerURL() string {
	return "https://" + c.Auth0Domain + "/"
}

// databaseURLFromParts composes a postgres URL from the discrete DB_*
// variables.
func databaseURLFromParts() string {
	user := envOrDefault("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	host := envOrDefault("DB_HOST", "localhost")
	port := envOrDefault("DB_PORT", "5432")
	name := envOrDefault("DB_NAME", "appdb")
	sslmode := envOrDefault("DB_SSLMODE", "disable")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + sslmode,
	}
	if password == "" {
		u.User = url.User(user)
	}
	return u.String()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}

func envOrDefaultBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
