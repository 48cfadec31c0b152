// Package reminders schedules bill and income reminders and reports the ones
// that are due.
package reminders

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
)

// LookAheadDays is the default pending window.
const LookAheadDays = 7

var (
	ErrInvalidDescription = errors.New("reminder description is required")
	ErrInvalidAmount      = errors.New("reminder amount cannot be negative")
	ErrInvalidDay         = errors.New("day of month must be between 1 and 31")
	ErrInvalidFrequency   = errors.New("unknown frequency")
	ErrReminderNotFound   = errors.New("reminder not found")
)

// Frequency is how often a recurring reminder repeats.
type Frequency string

const (
	FrequencyNone    Frequency = ""
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var frequencyWords = map[string]Frequency{
	"diario": FrequencyDaily, "diaria": FrequencyDaily, "daily": FrequencyDaily,
	"semanal": FrequencyWeekly, "weekly": FrequencyWeekly,
	"mensal": FrequencyMonthly, "monthly": FrequencyMonthly,
	"anual": FrequencyYearly, "yearly": FrequencyYearly,
}

// ParseFrequency accepts Portuguese and English names. Empty input means
// monthly.
func ParseFrequency(s string) (Frequency, error) {
	s = categorization.Fold(s)
	if s == "" {
		return FrequencyMonthly, nil
	}
	if f, ok := frequencyWords[s]; ok {
		return f, nil
	}
	return FrequencyNone, ErrInvalidFrequency
}

// Valid reports whether f is a repeating frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the due date after d.
func (f Frequency) Next(d time.Time) (time.Time, bool) {
	switch f {
	case FrequencyDaily:
		return d.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return d.AddDate(0, 0, 7), true
	case FrequencyMonthly:
		return addMonthsClamped(d, 1), true
	case FrequencyYearly:
		return addMonthsClamped(d, 12), true
	default:
		return time.Time{}, false
	}
}

// Label is the Portuguese adjective shown to users.
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "diário"
	case FrequencyWeekly:
		return "semanal"
	case FrequencyMonthly:
		return "mensal"
	case FrequencyYearly:
		return "anual"
	default:
		return ""
	}
}

// Reminder statuses as stored.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Reminder is a dated note, optionally with an amount.
type Reminder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	AmountMinor int64
	DueDate     time.Time
	Recurring   bool
	Frequency   Frequency
	Status      string
}

// IsIncome reports whether completing the reminder means receiving money.
func (r Reminder) IsIncome() bool {
	d := categorization.Fold(r.Description)
	return strings.Contains(d, "receb") || strings.Contains(d, "receita")
}

// Due labels.
const (
	LabelOverdue  = "atrasado"
	LabelToday    = "hoje"
	LabelUpcoming = "próximo"
)

// Pending is a reminder placed relative to today.
type Pending struct {
	Reminder
	DaysLeft int
	Label    string
}

// UserReminders groups the reminders due today for one user.
type UserReminders struct {
	UserID    uuid.UUID
	Phone     string
	Reminders []Reminder
}

// civilDate keeps the calendar day of t at UTC midnight, the way DATE
// columns are read back.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped adds months and clamps to the last day of the target
// month, so Jan 31 + 1 month is Feb 28.
func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, months, 0)
	day := d.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
