package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

// Totals holds all-time sums per direction in minor units.
type Totals struct {
	IncomeMinor  int64
	ExpenseMinor int64
}

// Repository handles balance queries
type Repository struct {
	db db.Querier
}

// NewRepository creates a new balance repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// GetTotals sums every transaction the user ever recorded.
func (r *Repository) GetTotals(ctx context.Context, userID uuid.UUID) (Totals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_minor) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount_minor) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var t Totals
	if err := r.db.QueryRow(ctx, query, userID).Scan(&t.IncomeMinor, &t.ExpenseMinor); err != nil {
		return Totals{}, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return t, nil
}
