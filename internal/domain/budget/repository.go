package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

// SpentRow is a budget joined with the expense total of a date range.
type SpentRow struct {
	Budget
	SpentMinor int64
}

// Repository persists budgets.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new budget repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Upsert sets the monthly budget of a category, replacing any previous value.
func (r *Repository) Upsert(ctx context.Context, userID, categoryID uuid.UUID, amountMinor int64) (*Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount_minor, period)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category_id, period)
		DO UPDATE SET amount_minor = EXCLUDED.amount_minor, updated_at = now()
		RETURNING id, updated_at
	`
	b := &Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		AmountMinor: amountMinor,
		Period:      PeriodMonthly,
	}
	err := r.db.QueryRow(ctx, query, uuid.New(), userID, categoryID, amountMinor, PeriodMonthly).
		Scan(&b.ID, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	return b, nil
}

// ListWithSpent returns every budget of the user with the expenses of its
// category in [from, to), ordered by category name.
func (r *Repository) ListWithSpent(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SpentRow, error) {
	query := `
		SELECT b.id, b.category_id, c.name, b.amount_minor, b.period, b.updated_at,
		       COALESCE(SUM(t.amount_minor), 0)::BIGINT
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		LEFT JOIN transactions t
		       ON t.category_id = b.category_id
		      AND t.user_id = b.user_id
		      AND t.type = 'expense'
		      AND t.occurred_at >= $2 AND t.occurred_at < $3
		WHERE b.user_id = $1
		GROUP BY b.id, b.category_id, c.name, b.amount_minor, b.period, b.updated_at
		ORDER BY c.name
	`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var out []SpentRow
	for rows.Next() {
		row := SpentRow{Budget: Budget{UserID: userID}}
		if err := rows.Scan(&row.ID, &row.CategoryID, &row.CategoryName, &row.AmountMinor, &row.Period, &row.UpdatedAt, &row.SpentMinor); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return out, nil
}

// DeleteByCategory removes the budget of a category.
func (r *Repository) DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
