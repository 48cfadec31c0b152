package categorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

const uniqueViolation = "23505"

// Repository handles database operations for categories
type Repository struct {
	db db.Querier
}

// NewRepository creates a new categorization repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// ListByUser returns the user's categories, expenses first, by name.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	query := `
		SELECT id, user_id, name, type
		FROM categories
		WHERE user_id = $1
		ORDER BY type, name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var kind string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Kind = Kind(kind)
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Create inserts a category. A duplicate (user, name, kind) returns
// ErrCategoryExists.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, name string, kind Kind) (*Category, error) {
	c := &Category{ID: uuid.New(), UserID: userID, Name: name, Kind: kind}

	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, user_id, name, type) VALUES ($1, $2, $3, $4)`,
		c.ID, userID, name, string(kind),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// CreateMissing inserts categories that do not exist yet.
func (r *Repository) CreateMissing(ctx context.Context, userID uuid.UUID, categories []Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, name, type) DO NOTHING
	`
	for _, c := range categories {
		if _, err := r.db.Exec(ctx, query, uuid.New(), userID, c.Name, string(c.Kind)); err != nil {
			return fmt.Errorf("failed to create default category %q: %w", c.Name, err)
		}
	}
	return nil
}

// Delete removes a category owned by the user.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
