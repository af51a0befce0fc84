package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/port"
)

// ProfileService owns the only write path to the user record and the
// aggregated preference reads.
type ProfileService struct {
	store port.UserStore
}

// NewProfileService creates a new profile service.
func NewProfileService(store port.UserStore) *ProfileService {
	return &ProfileService{store: store}
}

// TouchProfile records the login for the authenticated subject and returns
// the stored row. First sight inserts the row; every later call only touches
// last_login. Idempotent per subject and safe under concurrent calls because
// the store expresses it as one atomic statement.
func (s *ProfileService) TouchProfile(ctx context.Context, claims *domain.Claims) (*domain.User, error) {
	user, err := s.store.UpsertLogin(ctx, claims.Subject, claims.Email, claims.Name)
	if err != nil {
		return nil, fmt.Errorf("touch profile: %w", err)
	}

	slog.Info("profile touched",
		"subject", claims.Subject,
		"created_at", user.CreatedAt,
		"last_login", user.LastLogin,
	)
	return user, nil
}

// UserData returns the stored row merged with all preferences, or (nil, nil)
// when the subject has never hit the profile endpoint. This read performs no
// upsert on purpose: the row only comes into existence through TouchProfile,
// so calling order between the two endpoints is observable.
func (s *ProfileService) UserData(ctx context.Context, subject string) (*domain.UserData, error) {
	data, err := s.store.GetUserData(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("user data: %w", err)
	}
	return data, nil
}
