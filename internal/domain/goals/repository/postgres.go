package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

const goalColumns = `id, user_id, name, status, target_amount_minor, currency_code, current_amount_minor, start_at, end_at, created_at, updated_at`

// PostgresGoalRepository implements GoalRepository using PostgreSQL
type PostgresGoalRepository struct {
	pool db.Querier
}

// NewPostgresGoalRepository creates a new PostgreSQL goal repository
func NewPostgresGoalRepository(pool db.Querier) *PostgresGoalRepository {
	return &PostgresGoalRepository{pool: pool}
}

// Create inserts a new goal
func (r *PostgresGoalRepository) Create(ctx context.Context, goal *Goal) error {
	query := `
		INSERT INTO goals (id, user_id, name, status, target_amount_minor, currency_code, current_amount_minor, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		string(goal.Status),
		goal.TargetAmountMinor,
		goal.CurrencyCode,
		goal.CurrentAmountMinor,
		goal.StartAt,
		goal.EndAt,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID retrieves one of the user's goals
func (r *PostgresGoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE id = $1 AND user_id = $2`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress stores the goal's current amount and status
func (r *PostgresGoalRepository) UpdateProgress(ctx context.Context, goal *Goal) error {
	query := `
		UPDATE goals
		SET current_amount_minor = $3, status = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.CurrentAmountMinor,
		string(goal.Status),
	).Scan(&goal.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// Delete removes a goal
func (r *PostgresGoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListByUserID retrieves the user's goals ordered by target date
func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID uuid.UUID, statusFilter *GoalStatus) ([]*Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1`

	args := []any{userID}
	if statusFilter != nil {
		query += ` AND status = $2`
		args = append(args, string(*statusFilter))
	}
	query += ` ORDER BY end_at ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func scanGoal(row pgx.Row) (*Goal, error) {
	goal := &Goal{}
	var status string
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&status,
		&goal.TargetAmountMinor,
		&goal.CurrencyCode,
		&goal.CurrentAmountMinor,
		&goal.StartAt,
		&goal.EndAt,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	goal.Status = GoalStatus(status)
	return goal, nil
}
