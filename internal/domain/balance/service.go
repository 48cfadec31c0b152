package balance

import (
	"context"

	"github.com/google/uuid"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

type totalsReader interface {
	GetTotals(ctx context.Context, userID uuid.UUID) (Totals, error)
}

// Service handles balance business logic
type Service struct {
	repo     totalsReader
	currency string
}

// NewService creates a new balance service
func NewService(repo totalsReader, currency string) *Service {
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return &Service{repo: repo, currency: currency}
}

// BalanceResult is income minus expense over the user's whole history. It
// may be negative.
type BalanceResult struct {
	IncomeMinor  int64
	ExpenseMinor int64
	BalanceMinor int64
	CurrencyCode string
}

// Balance returns the net value as Money.
func (b *BalanceResult) Balance() *money.Money {
	return money.New(b.BalanceMinor, b.CurrencyCode)
}

// GetBalance computes the user's current balance
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResult, error) {
	totals, err := s.repo.GetTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &BalanceResult{
		IncomeMinor:  totals.IncomeMinor,
		ExpenseMinor: totals.ExpenseMinor,
		BalanceMinor: totals.IncomeMinor - totals.ExpenseMinor,
		CurrencyCode: s.currency,
	}, nil
}
