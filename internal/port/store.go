package port

import (
	"context"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
)

// UserStore is the persistence boundary for user records and preferences.
type UserStore interface {
	// UpsertLogin inserts the user on first sight and touches last_login on
	// every subsequent call, as a single atomic statement keyed by auth0_id.
	UpsertLogin(ctx context.Context, auth0ID, email, name string) (*domain.User, error)

	// GetByAuthID returns the stored row, or (nil, nil) when absent.
	GetByAuthID(ctx context.Context, auth0ID string) (*domain.User, error)

	// GetUserData returns the user row merged with all preferences ordered
	// by creation time, or (nil, nil) when no row exists for the subject.
	GetUserData(ctx context.Context, auth0ID string) (*domain.UserData, error)
}
