package nlp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

// DefaultIncomeDescription is recorded when an income message names no source.
const DefaultIncomeDescription = "Receita não especificada"

var (
	ErrNotTransactional = errors.New("intent does not describe a transaction")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrEmptyDescription = errors.New("description is empty")
)

// TransactionKind is the direction of money for an extracted transaction.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// ExtractedTransaction is a validated amount and description.
type ExtractedTransaction struct {
	Kind        TransactionKind
	Amount      decimal.Decimal
	Description string
}

// ExtractionError reports why a transactional message could not be turned into
// a transaction. Callers answer it with guidance text instead of failing.
type ExtractionError struct {
	Intent Intent
	Rule   string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (rule %s): %v", e.Intent, e.Rule, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractTransaction reads the amount and description captured by the matched
// rule, using the rule's declared capture roles.
func ExtractTransaction(res ClassificationResult) (ExtractedTransaction, error) {
	if !res.Intent.IsTransactional() || res.Rule == nil {
		return ExtractedTransaction{}, &ExtractionError{Intent: res.Intent, Rule: res.RuleName(), Err: ErrNotTransactional}
	}

	fail := func(err error) (ExtractedTransaction, error) {
		return ExtractedTransaction{}, &ExtractionError{Intent: res.Intent, Rule: res.Rule.Name, Err: err}
	}

	token, ok := res.Rule.group(RoleAmount, res.Groups)
	if !ok {
		return fail(ErrInvalidAmount)
	}
	amount, err := ParseAmount(token)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrInvalidAmount, err))
	}
	// positivity is judged on the stored cents, so "0,001" is rejected too
	minor, err := money.MinorUnits(amount, money.DefaultCurrency)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrInvalidAmount, err))
	}
	if minor <= 0 {
		return fail(fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String()))
	}

	desc, _ := res.Rule.group(RoleDescription, res.Groups)
	desc = strings.TrimSpace(desc)

	kind := KindExpense
	if res.Intent == Income {
		kind = KindIncome
		if desc == "" {
			desc = DefaultIncomeDescription
		}
	}
	if desc == "" {
		return fail(ErrEmptyDescription)
	}

	return ExtractedTransaction{
		Kind:        kind,
		Amount:      amount,
		Description: desc,
	}, nil
}

// IsExtractionFailure reports whether err came from ExtractTransaction.
func IsExtractionFailure(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
