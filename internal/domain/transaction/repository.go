package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

// Repository persists transactions and answers aggregate queries.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new transaction repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Create inserts tx. ID is assigned when empty.
func (r *Repository) Create(ctx context.Context, tx *Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	query := `
		INSERT INTO transactions (id, user_id, category_id, type, amount_minor, currency_code, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		tx.ID, tx.UserID, tx.CategoryID, string(tx.Kind), tx.AmountMinor, tx.CurrencyCode, tx.Description, tx.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListBetween returns transactions in [from, to), newest first.
func (r *Repository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, filter Filter) ([]Transaction, error) {
	query := `
		SELECT t.id, t.type, t.amount_minor, t.currency_code, t.description, t.occurred_at, COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND t.occurred_at >= $2 AND t.occurred_at < $3
		  AND ($4 = '' OR t.type = $4)
		  AND ($5 = '' OR c.name ILIKE $5)
		ORDER BY t.occurred_at DESC
	`
	return r.list(ctx, userID, query, userID, from, to, string(filter.Kind), filter.Category)
}

// Search finds transactions whose description or category contains term.
func (r *Repository) Search(ctx context.Context, userID uuid.UUID, term string, limit int) ([]Transaction, error) {
	query := `
		SELECT t.id, t.type, t.amount_minor, t.currency_code, t.description, t.occurred_at, COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND (t.description ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%')
		ORDER BY t.occurred_at DESC
		LIMIT $3
	`
	return r.list(ctx, userID, query, userID, term, limit)
}

func (r *Repository) list(ctx context.Context, userID uuid.UUID, query string, args ...any) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		tx := Transaction{UserID: userID}
		var kind string
		if err := rows.Scan(&tx.ID, &kind, &tx.AmountMinor, &tx.CurrencyCode, &tx.Description, &tx.OccurredAt, &tx.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = nlp.TransactionKind(kind)
		out = append(out, tx)
	}
	return out, rows.Err()
}

// CategoryTotals sums one kind in [from, to) by category name, falling back to
// the description for uncategorized rows. Largest first.
func (r *Repository) CategoryTotals(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, from, to time.Time) ([]CategoryTotal, error) {
	query := `
		SELECT COALESCE(c.name, t.description) AS name, SUM(t.amount_minor)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = $2
		  AND t.occurred_at >= $3 AND t.occurred_at < $4
		GROUP BY 1
		ORDER BY 2 DESC, 1
	`
	rows, err := r.db.Query(ctx, query, userID, string(kind), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.AmountMinor); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// DailyTotals returns per-day income and expense in [from, to), in the given
// location's calendar.
func (r *Repository) DailyTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTotal, error) {
	query := `
		SELECT date_trunc('day', t.occurred_at AT TIME ZONE $4) AS day,
		       COALESCE(SUM(t.amount_minor) FILTER (WHERE t.type = 'income'), 0),
		       COALESCE(SUM(t.amount_minor) FILTER (WHERE t.type = 'expense'), 0)
		FROM transactions t
		WHERE t.user_id = $1 AND t.occurred_at >= $2 AND t.occurred_at < $3
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.Query(ctx, query, userID, from, to, from.Location().String())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	var out []DailyTotal
	for rows.Next() {
		var d DailyTotal
		if err := rows.Scan(&d.Day, &d.IncomeMinor, &d.ExpenseMinor); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MonthlyTotals returns per-month income and expense in [from, to).
func (r *Repository) MonthlyTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]MonthlyTotal, error) {
	query := `
		SELECT date_trunc('month', t.occurred_at AT TIME ZONE $4) AS month,
		       COALESCE(SUM(t.amount_minor) FILTER (WHERE t.type = 'income'), 0),
		       COALESCE(SUM(t.amount_minor) FILTER (WHERE t.type = 'expense'), 0)
		FROM transactions t
		WHERE t.user_id = $1 AND t.occurred_at >= $2 AND t.occurred_at < $3
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.Query(ctx, query, userID, from, to, from.Location().String())
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var out []MonthlyTotal
	for rows.Next() {
		var m MonthlyTotal
		if err := rows.Scan(&m.Month, &m.IncomeMinor, &m.ExpenseMinor); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
