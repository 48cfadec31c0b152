package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

type repository interface {
	Create(ctx context.Context, rem *Reminder) error
	ListPending(ctx context.Context, userID uuid.UUID, until time.Time) ([]Reminder, error)
	MarkCompleted(ctx context.Context, userID, id uuid.UUID) error
	DueOn(ctx context.Context, day time.Time) ([]UserReminders, error)
}

type recorder interface {
	RecordTransaction(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (uuid.UUID, error)
}

// Completion describes what finishing a reminder did.
type Completion struct {
	Reminder      Reminder
	TransactionID uuid.UUID
	Next          *Reminder
}

// Service manages reminders. "Today" is the calendar day in loc.
type Service struct {
	repo      repository
	recorder  recorder
	currency  string
	lookAhead int
	loc       *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

// NewService creates a reminders service.
func NewService(repo repository, recorder recorder, currency string, lookAheadDays int, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if lookAheadDays <= 0 {
		lookAheadDays = LookAheadDays
	}
	return &Service{
		repo:      repo,
		recorder:  recorder,
		currency:  currency,
		lookAhead: lookAheadDays,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current calendar day.
func (s *Service) Today() time.Time {
	return civilDate(s.now().In(s.loc))
}

// Create stores a one-off reminder.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, description string, due time.Time, amount decimal.Decimal) (*Reminder, error) {
	return s.create(ctx, userID, description, civilDate(due), amount, FrequencyNone)
}

// CreateRecurring stores a reminder on the next occurrence of dayOfMonth,
// clamped to short months, repeating at freq.
func (s *Service) CreateRecurring(ctx context.Context, userID uuid.UUID, description string, amount decimal.Decimal, dayOfMonth int, freq Frequency) (*Reminder, error) {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, ErrInvalidDay
	}
	if !freq.Valid() {
		return nil, ErrInvalidFrequency
	}
	return s.create(ctx, userID, description, nextDayOfMonth(s.Today(), dayOfMonth), amount, freq)
}

func (s *Service) create(ctx context.Context, userID uuid.UUID, description string, due time.Time, amount decimal.Decimal, freq Frequency) (*Reminder, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrInvalidDescription
	}
	minor, err := money.MinorUnits(amount, s.currency)
	if err != nil || minor < 0 {
		return nil, ErrInvalidAmount
	}

	rem := &Reminder{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		AmountMinor: minor,
		DueDate:     due,
		Recurring:   freq != FrequencyNone,
		Frequency:   freq,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, rem); err != nil {
		return nil, err
	}

	s.logger.Info("reminder created",
		slog.String("user_id", userID.String()),
		slog.String("due", due.Format(time.DateOnly)),
		slog.String("frequency", string(freq)),
	)
	return rem, nil
}

// Pending lists open reminders up to the look-ahead window, overdue ones
// included.
func (s *Service) Pending(ctx context.Context, userID uuid.UUID) ([]Pending, error) {
	today := s.Today()
	list, err := s.repo.ListPending(ctx, userID, today.AddDate(0, 0, s.lookAhead))
	if err != nil {
		return nil, err
	}

	out := make([]Pending, 0, len(list))
	for _, rem := range list {
		days := int(civilDate(rem.DueDate).Sub(today).Hours() / 24)
		label := LabelUpcoming
		switch {
		case days < 0:
			label = LabelOverdue
		case days == 0:
			label = LabelToday
		}
		out = append(out, Pending{Reminder: rem, DaysLeft: days, Label: label})
	}
	return out, nil
}

// Complete closes the reminder at the 1-based position of the pending list.
// A reminder with an amount records the matching transaction, and a
// recurring one is rescheduled.
func (s *Service) Complete(ctx context.Context, userID uuid.UUID, position int) (*Completion, error) {
	pending, err := s.Pending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > len(pending) {
		return nil, ErrReminderNotFound
	}
	rem := pending[position-1].Reminder

	if err := s.repo.MarkCompleted(ctx, userID, rem.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	rem.Status = StatusCompleted
	done := &Completion{Reminder: rem}

	if rem.AmountMinor > 0 {
		kind := nlp.KindExpense
		if rem.IsIncome() {
			kind = nlp.KindIncome
		}
		amount := money.New(rem.AmountMinor, s.currency).ToDecimal()
		id, err := s.recorder.RecordTransaction(ctx, userID, kind, amount, rem.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to record reminder transaction: %w", err)
		}
		done.TransactionID = id
	}

	if next, ok := rem.Frequency.Next(civilDate(rem.DueDate)); ok && rem.Recurring {
		following := rem
		following.ID = uuid.New()
		following.DueDate = next
		following.Status = StatusPending
		if err := s.repo.Create(ctx, &following); err != nil {
			return nil, fmt.Errorf("failed to schedule next reminder: %w", err)
		}
		done.Next = &following
	}

	s.logger.Info("reminder completed",
		slog.String("user_id", userID.String()),
		slog.String("reminder_id", rem.ID.String()),
		slog.Bool("rescheduled", done.Next != nil),
	)
	return done, nil
}

// DueToday returns today's pending reminders grouped by user.
func (s *Service) DueToday(ctx context.Context) ([]UserReminders, error) {
	return s.repo.DueOn(ctx, s.Today())
}

// nextDayOfMonth returns the first date on or after from whose day is day,
// clamped to the month length.
func nextDayOfMonth(from time.Time, day int) time.Time {
	candidate := clampDay(from.Year(), from.Month(), day)
	if candidate.Before(from) {
		next := from.AddDate(0, 0, -from.Day()+1).AddDate(0, 1, 0)
		candidate = clampDay(next.Year(), next.Month(), day)
	}
	return candidate
}

func clampDay(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
