package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
)

const reminderColumns = `r.id, r.user_id, r.description, r.amount_minor, r.due_date, r.recurring, r.frequency, r.status`

// Repository persists reminders.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new reminders repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

// Create inserts r. ID is assigned when empty.
func (r *Repository) Create(ctx context.Context, rem *Reminder) error {
	if rem.ID == uuid.Nil {
		rem.ID = uuid.New()
	}
	if rem.Status == "" {
		rem.Status = StatusPending
	}

	query := `
		INSERT INTO reminders (id, user_id, description, amount_minor, due_date, recurring, frequency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		rem.ID, rem.UserID, rem.Description, rem.AmountMinor, rem.DueDate, rem.Recurring, string(rem.Frequency), rem.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

// ListPending returns the user's pending reminders due on or before until,
// soonest first.
func (r *Repository) ListPending(ctx context.Context, userID uuid.UUID, until time.Time) ([]Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders r
		WHERE r.user_id = $1 AND r.status = 'pending' AND r.due_date <= $2
		ORDER BY r.due_date, r.created_at
	`
	rows, err := r.db.Query(ctx, query, userID, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return out, nil
}

// MarkCompleted closes a pending reminder.
func (r *Repository) MarkCompleted(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reminders SET status = 'completed' WHERE id = $1 AND user_id = $2 AND status = 'pending'`,
		id, userID)
	if err != nil {
		return fmt.Errorf("failed to complete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DueOn returns every pending reminder due on day, grouped by user phone.
func (r *Repository) DueOn(ctx context.Context, day time.Time) ([]UserReminders, error) {
	query := `
		SELECT ` + reminderColumns + `, u.phone
		FROM reminders r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = 'pending' AND r.due_date = $1
		ORDER BY u.phone, r.created_at
	`
	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	var out []UserReminders
	for rows.Next() {
		var (
			rem       Reminder
			frequency string
			phone     string
		)
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Description, &rem.AmountMinor, &rem.DueDate,
			&rem.Recurring, &frequency, &rem.Status, &phone); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		rem.Frequency = Frequency(frequency)

		if n := len(out); n == 0 || out[n-1].Phone != phone {
			out = append(out, UserReminders{UserID: rem.UserID, Phone: phone})
		}
		last := &out[len(out)-1]
		last.Reminders = append(last.Reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(row scanner) (Reminder, error) {
	var (
		rem       Reminder
		frequency string
	)
	if err := row.Scan(&rem.ID, &rem.UserID, &rem.Description, &rem.AmountMinor, &rem.DueDate,
		&rem.Recurring, &frequency, &rem.Status); err != nil {
		return Reminder{}, fmt.Errorf("failed to scan reminder: %w", err)
	}
	rem.Frequency = Frequency(frequency)
	return rem, nil
}
