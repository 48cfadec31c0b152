package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/balance"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/budget"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	goalsrepo "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/repository"
	goals "github.com/FACorreiaa/finance-chat-assistant/internal/domain/goals/service"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/reminders"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
)

// BalanceReader reads the running balance.
type BalanceReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*balance.BalanceResult, error)
}

// Ledger records and aggregates transactions.
type Ledger interface {
	Record(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (*transaction.Transaction, error)
	Month(ctx context.Context, userID uuid.UUID, year int, month time.Month, filter transaction.Filter) ([]transaction.Transaction, error)
	CategoryTotals(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, year int, month time.Month) ([]transaction.CategoryTotal, error)
	DailyTotals(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]transaction.DailyTotal, error)
	MonthTotal(ctx context.Context, userID uuid.UUID, year int, month time.Month) (transaction.MonthlyTotal, error)
	LastMonths(ctx context.Context, userID uuid.UUID, n int) ([]transaction.MonthlyTotal, error)
	CategoryTotalsLastMonths(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, n int) ([]transaction.CategoryTotal, error)
	Search(ctx context.Context, userID uuid.UUID, term string) ([]transaction.Transaction, error)
	ExportCSV(ctx context.Context, userID uuid.UUID, year int, month time.Month) (string, int, error)
}

// Categories manages the user's categories.
type Categories interface {
	List(ctx context.Context, userID uuid.UUID) ([]categorization.Category, error)
	Add(ctx context.Context, userID uuid.UUID, name string, kind categorization.Kind) (*categorization.Category, error)
	Remove(ctx context.Context, userID uuid.UUID, name string) (*categorization.Category, error)
}

// Budgets manages monthly category budgets.
type Budgets interface {
	Set(ctx context.Context, userID uuid.UUID, categoryName string, amount decimal.Decimal) (*budget.Budget, error)
	Progress(ctx context.Context, userID uuid.UUID) ([]budget.Progress, error)
	Remove(ctx context.Context, userID uuid.UUID, categoryName string) (*categorization.Category, error)
}

// Goals manages savings goals addressed by list position.
type Goals interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, name string, targetMinor int64, due time.Time) (*goalsrepo.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*goals.GoalProgress, error)
	ContributeToGoal(ctx context.Context, userID uuid.UUID, position int, amountMinor int64) (*goals.GoalProgress, *goals.MilestoneReached, error)
	DeleteGoal(ctx context.Context, userID uuid.UUID, position int) (*goalsrepo.Goal, error)
}

// Reminders manages bill reminders addressed by list position.
type Reminders interface {
	Create(ctx context.Context, userID uuid.UUID, description string, due time.Time, amount decimal.Decimal) (*reminders.Reminder, error)
	CreateRecurring(ctx context.Context, userID uuid.UUID, description string, amount decimal.Decimal, dayOfMonth int, freq reminders.Frequency) (*reminders.Reminder, error)
	Pending(ctx context.Context, userID uuid.UUID) ([]reminders.Pending, error)
	Complete(ctx context.Context, userID uuid.UUID, position int) (*reminders.Completion, error)
}

// Sessions ends a chat login.
type Sessions interface {
	Logout(ctx context.Context, senderID string) error
}

// Deps are the services commands run against.
type Deps struct {
	Balance    BalanceReader
	Ledger     Ledger
	Categories Categories
	Budgets    Budgets
	Goals      Goals
	Reminders  Reminders
	Sessions   Sessions
	Currency   string
	Location   *time.Location
}
