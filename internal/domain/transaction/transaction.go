package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDescription = errors.New("description is required")
	ErrInvalidKind        = errors.New("unknown transaction kind")
)

// Transaction is a recorded income or expense.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   *uuid.UUID
	CategoryName string
	Kind         nlp.TransactionKind
	AmountMinor  int64
	CurrencyCode string
	Description  string
	OccurredAt   time.Time
}

// Amount returns the value as Money.
func (t Transaction) Amount() *money.Money {
	return money.New(t.AmountMinor, t.CurrencyCode)
}

// Filter narrows a month listing. Empty fields match everything.
type Filter struct {
	Kind     nlp.TransactionKind
	Category string
}

// CategoryTotal is the sum of one category (or of one description when the
// transactions have no category).
type CategoryTotal struct {
	Name        string
	AmountMinor int64
}

// DailyTotal aggregates one calendar day.
type DailyTotal struct {
	Day          time.Time
	IncomeMinor  int64
	ExpenseMinor int64
}

// MonthlyTotal aggregates one calendar month.
type MonthlyTotal struct {
	Month        time.Time
	IncomeMinor  int64
	ExpenseMinor int64
}

// ExportRow is one CSV line of /exportar.
type ExportRow struct {
	Date        string `csv:"data"`
	Kind        string `csv:"tipo"`
	Category    string `csv:"categoria"`
	Description string `csv:"descricao"`
	Amount      string `csv:"valor"`
}
