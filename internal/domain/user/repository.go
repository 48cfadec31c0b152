package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

// Repository persists users.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new user repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

const userColumns = `id, phone, name, auth_state, login, created_at, last_seen`

// Upsert creates the user on first contact or refreshes last_seen. A blank
// name never overwrites a stored one.
func (r *Repository) Upsert(ctx context.Context, phone, name string) (*User, error) {
	query := `
		INSERT INTO users (id, phone, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE users.name END,
			last_seen = now()
		RETURNING ` + userColumns

	var u User
	err := r.db.QueryRow(ctx, query, uuid.New(), phone, name).Scan(
		&u.ID, &u.Phone, &u.Name, &u.AuthState, &u.Login, &u.CreatedAt, &u.LastSeen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &u, nil
}

// GetByPhone returns db.ErrNotFound when the phone never wrote to the bot.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`

	var u User
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&u.ID, &u.Phone, &u.Name, &u.AuthState, &u.Login, &u.CreatedAt, &u.LastSeen,
	)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &u, nil
}

// SetAuthState stores the login state machine position, creating the row if
// the user has not been registered yet.
func (r *Repository) SetAuthState(ctx context.Context, phone, state, login string) error {
	query := `
		INSERT INTO users (id, phone, auth_state, login)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE SET
			auth_state = EXCLUDED.auth_state,
			login = EXCLUDED.login`

	if _, err := r.db.Exec(ctx, query, uuid.New(), phone, state, login); err != nil {
		return fmt.Errorf("failed to set auth state: %w", err)
	}
	return nil
}
