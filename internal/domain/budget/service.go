package budget

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/db"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

type repository interface {
	Upsert(ctx context.Context, userID, categoryID uuid.UUID, amountMinor int64) (*Budget, error)
	ListWithSpent(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SpentRow, error)
	DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

type categoryResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, name string, kind categorization.Kind) (*categorization.Category, error)
}

// Service sets budgets and measures them against the current month.
type Service struct {
	repo       repository
	categories categoryResolver
	currency   string
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

// NewService creates a budget service. The current month follows loc.
func NewService(repo repository, categories categoryResolver, currency string, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		categories: categories,
		currency:   currency,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Set defines the monthly budget for the expense category the user named.
func (s *Service) Set(ctx context.Context, userID uuid.UUID, categoryName string, amount decimal.Decimal) (*Budget, error) {
	minor, err := money.MinorUnits(amount, s.currency)
	if err != nil || minor <= 0 {
		return nil, ErrInvalidAmount
	}

	category, err := s.categories.Resolve(ctx, userID, categoryName, categorization.KindExpense)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.Upsert(ctx, userID, category.ID, minor)
	if err != nil {
		return nil, err
	}
	b.CategoryName = category.Name

	s.logger.Info("budget set",
		slog.String("user_id", userID.String()),
		slog.String("category", category.Name),
		slog.Int64("amount_minor", b.AmountMinor),
	)
	return b, nil
}

// Progress returns every budget with the current month's spending, highest
// percentage first.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID) ([]Progress, error) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	rows, err := s.repo.ListWithSpent(ctx, userID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	out := make([]Progress, 0, len(rows))
	for _, r := range rows {
		out = append(out, newProgress(r.Budget, r.SpentMinor))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out, nil
}

// Remove deletes the budget of the named expense category.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, categoryName string) (*categorization.Category, error) {
	category, err := s.categories.Resolve(ctx, userID, categoryName, categorization.KindExpense)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteByCategory(ctx, userID, category.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNoBudget
		}
		return nil, err
	}
	return category, nil
}
