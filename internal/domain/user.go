package domain

import "time"

// User represents the stored user record, keyed by the identity provider's
// subject id. The API service owns all writes; the row is created on the
// first authenticated profile request and only last_login changes afterwards.
type User struct {
	ID        string    `json:"id"         db:"id"`
	Auth0ID   string    `json:"auth0_id"   db:"auth0_id"`
	Email     string    `json:"email"      db:"email"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	LastLogin time.Time `json:"last_login" db:"last_login"`
}

// Preference is a single application preference row owned by a user.
// Preferences are read-only from this system; their lifecycle is managed
// elsewhere.
type Preference struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Key       string    `json:"key"        db:"key"`
	Value     string    `json:"value"      db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserData is the user row merged with all associated preferences.
// Preferences is always non-nil: a user with no preferences serializes
// with an empty array, never null.
type UserData struct {
	User
	Preferences []Preference `json:"preferences"`
}
