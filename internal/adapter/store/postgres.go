package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/port"
)

// PostgresStore handles all relational database operations. The handle is
// constructed once and passed to whoever needs it; the pooled *sql.DB is the
// only shared mutable resource in the service.
type PostgresStore struct {
	db *sql.DB
}

var _ port.UserStore = (*PostgresStore)(nil)

// NewPostgresStore opens a pooled connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// UpsertLogin inserts a user on first sight and touches last_login on every
// subsequent call. A single atomic statement keyed by auth0_id, so
// concurrent calls for the same subject cannot race a read-then-write.
// created_at is never modified after the initial insert.
func (s *PostgresStore) UpsertLogin(ctx context.Context, auth0ID, email, name string) (*domain.User, error) {
	query := `
		INSERT INTO users (auth0_id, email, name, created_at, last_login)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (auth0_id) DO UPDATE SET last_login = NOW()
		RETURNING id, auth0_id, email, name, created_at, last_login`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, auth0ID, email, name).Scan(
		&user.ID, &user.Auth0ID, &user.Email, &user.Name,
		&user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert login: %w", err)
	}
	return &user, nil
}

// GetByAuthID retrieves a user by subject id. Returns (nil, nil) when the
// row does not exist; absence is not an error here.
func (s *PostgresStore) GetByAuthID(ctx context.Context, auth0ID string) (*domain.User, error) {
	query := `SELECT id, auth0_id, email, name, created_at, last_login
	          FROM users WHERE auth0_id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, auth0ID).Scan(
		&user.ID, &user.Auth0ID, &user.Email, &user.Name,
		&user.CreatedAt, &user.LastLogin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserData retrieves the user row merged with all preference rows ordered
// by creation time. Returns (nil, nil) when the user has no stored row;
// Preferences is always non-nil on a hit.
func (s *PostgresStore) GetUserData(ctx context.Context, auth0ID string) (*domain.UserData, error) {
	user, err := s.GetByAuthID(ctx, auth0ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	query := `SELECT id, user_id, key, value, created_at
	          FROM user_preferences WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	prefs := []domain.Preference{}
	for rows.Next() {
		var p domain.Preference
		if err := rows.Scan(&p.ID, &p.UserID, &p.Key, &p.Value, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}

	return &domain.UserData{User: *user, Preferences: prefs}, nil
}
