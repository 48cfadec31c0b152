package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/categorization"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

// SearchLimit caps /buscar results.
const SearchLimit = 10

type repository interface {
	Create(ctx context.Context, tx *Transaction) error
	ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, filter Filter) ([]Transaction, error)
	Search(ctx context.Context, userID uuid.UUID, term string, limit int) ([]Transaction, error)
	CategoryTotals(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, from, to time.Time) ([]CategoryTotal, error)
	DailyTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTotal, error)
	MonthlyTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]MonthlyTotal, error)
}

type categorizer interface {
	Suggest(ctx context.Context, userID uuid.UUID, kind categorization.Kind, description string) (*categorization.Category, error)
}

// Service records transactions and reads the ledger by calendar month.
type Service struct {
	repo        repository
	categorizer categorizer
	currency    string
	loc         *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

// NewService creates a transaction service. Month boundaries follow loc.
func NewService(repo repository, categorizer categorizer, currency string, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return &Service{
		repo:        repo,
		categorizer: categorizer,
		currency:    currency,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordTransaction stores a transaction and returns its ID.
func (s *Service) RecordTransaction(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (uuid.UUID, error) {
	tx, err := s.Record(ctx, userID, kind, amount, description)
	if err != nil {
		return uuid.Nil, err
	}
	return tx.ID, nil
}

// Record stores a transaction, choosing its category from the description.
// Categorization failures leave the transaction uncategorized.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, amount decimal.Decimal, description string) (*Transaction, error) {
	if kind != nlp.KindExpense && kind != nlp.KindIncome {
		return nil, ErrInvalidKind
	}
	minor, err := money.MinorUnits(amount, s.currency)
	if err != nil || minor <= 0 {
		return nil, ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrInvalidDescription
	}

	tx := &Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Kind:         kind,
		AmountMinor:  minor,
		CurrencyCode: s.currency,
		Description:  description,
		OccurredAt:   s.now(),
	}

	category, err := s.categorizer.Suggest(ctx, userID, categorization.Kind(kind), description)
	if err != nil {
		s.logger.Warn("categorization failed, storing uncategorized",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	} else if category != nil {
		tx.CategoryID = &category.ID
		tx.CategoryName = category.Name
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("transaction recorded",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)),
		slog.Int64("amount_minor", tx.AmountMinor),
		slog.String("category", tx.CategoryName),
	)
	return tx, nil
}

// MonthRange returns [first day of month, first day of next month) in the
// service location.
func (s *Service) MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 1, 0)
}

// Month lists a calendar month, newest first.
func (s *Service) Month(ctx context.Context, userID uuid.UUID, year int, month time.Month, filter Filter) ([]Transaction, error) {
	from, to := s.MonthRange(year, month)
	return s.repo.ListBetween(ctx, userID, from, to, filter)
}

// CategoryTotals sums a month by category.
func (s *Service) CategoryTotals(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, year int, month time.Month) ([]CategoryTotal, error) {
	from, to := s.MonthRange(year, month)
	return s.repo.CategoryTotals(ctx, userID, kind, from, to)
}

// DailyTotals returns the per-day movement of a month.
func (s *Service) DailyTotals(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]DailyTotal, error) {
	from, to := s.MonthRange(year, month)
	return s.repo.DailyTotals(ctx, userID, from, to)
}

// LastMonths returns totals for the n months ending with the current one,
// oldest first. Months without movement are present with zero totals.
func (s *Service) LastMonths(ctx context.Context, userID uuid.UUID, n int) ([]MonthlyTotal, error) {
	if n < 1 {
		n = 1
	}
	now := s.now().In(s.loc)
	_, to := s.MonthRange(now.Year(), now.Month())
	from := to.AddDate(0, -n, 0)

	totals, err := s.repo.MonthlyTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]MonthlyTotal, len(totals))
	for _, t := range totals {
		byMonth[t.Month.Format("2006-01")] = t
	}

	out := make([]MonthlyTotal, 0, n)
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		t := byMonth[m.Format("2006-01")]
		t.Month = m
		out = append(out, t)
	}
	return out, nil
}

// CategoryTotalsLastMonths sums kind by category over the n months ending
// with the current one.
func (s *Service) CategoryTotalsLastMonths(ctx context.Context, userID uuid.UUID, kind nlp.TransactionKind, n int) ([]CategoryTotal, error) {
	if n < 1 {
		n = 1
	}
	now := s.now().In(s.loc)
	_, to := s.MonthRange(now.Year(), now.Month())
	return s.repo.CategoryTotals(ctx, userID, kind, to.AddDate(0, -n, 0), to)
}

// MonthTotal returns the totals of one month.
func (s *Service) MonthTotal(ctx context.Context, userID uuid.UUID, year int, month time.Month) (MonthlyTotal, error) {
	from, to := s.MonthRange(year, month)
	totals, err := s.repo.MonthlyTotals(ctx, userID, from, to)
	if err != nil {
		return MonthlyTotal{}, err
	}

	out := MonthlyTotal{Month: from}
	for _, t := range totals {
		out.IncomeMinor += t.IncomeMinor
		out.ExpenseMinor += t.ExpenseMinor
	}
	return out, nil
}

// Search returns matches for term, closest descriptions first.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, term string) ([]Transaction, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	found, err := s.repo.Search(ctx, userID, term, SearchLimit)
	if err != nil {
		return nil, err
	}

	rank := func(tx Transaction) int {
		r := fuzzy.RankMatchNormalizedFold(term, tx.Description)
		if r < 0 {
			return len(tx.Description) + 1
		}
		return r
	}
	sort.SliceStable(found, func(i, j int) bool {
		return rank(found[i]) < rank(found[j])
	})
	return found, nil
}

// ExportCSV renders a month as CSV text.
func (s *Service) ExportCSV(ctx context.Context, userID uuid.UUID, year int, month time.Month) (string, int, error) {
	txs, err := s.Month(ctx, userID, year, month, Filter{})
	if err != nil {
		return "", 0, err
	}

	rows := make([]ExportRow, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		kind := "despesa"
		if tx.Kind == nlp.KindIncome {
			kind = "receita"
		}
		rows = append(rows, ExportRow{
			Date:        tx.OccurredAt.In(s.loc).Format("02/01/2006"),
			Kind:        kind,
			Category:    tx.CategoryName,
			Description: tx.Description,
			Amount:      tx.Amount().String(),
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode csv: %w", err)
	}
	return out, len(rows), nil
}
