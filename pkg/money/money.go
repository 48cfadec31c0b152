// Package money provides currency-safe arithmetic over integer minor units.
// Amounts are stored as cents and only converted to decimal for display and
// ratio calculations.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency codes (ISO-4217) used by the assistant.
const (
	BRL = "BRL" // Brazilian Real
	USD = "USD"
	EUR = "EUR"
)

// DefaultCurrency is used when a value carries no currency.
const DefaultCurrency = BRL

// Money represents a monetary value with currency.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units (cents).
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: money.New(amountCents, currencyCode)}
}

// MaxMinorUnits bounds every stored amount. Sums of many such amounts still
// fit in an int64.
const MaxMinorUnits int64 = 1_000_000_000_000_000

// ErrOutOfRange is returned when an amount does not fit in MaxMinorUnits.
var ErrOutOfRange = errors.New("amount out of range")

var maxMinor = decimal.NewFromInt(MaxMinorUnits)

func currencyOrDefault(code string) *money.Currency {
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// MinorUnits converts a major-unit amount to minor units, rounding half away
// from zero. Amounts whose magnitude exceeds MaxMinorUnits are rejected.
func MinorUnits(amount decimal.Decimal, currencyCode string) (int64, error) {
	currency := currencyOrDefault(currencyCode)
	cents := amount.Mul(decimal.New(1, int32(currency.Fraction))).Round(0)
	if cents.Abs().GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, amount.String())
	}
	return cents.IntPart(), nil
}

// NewFromDecimal creates Money from a decimal value, rounding half away from
// zero to the currency's minor unit.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) (*Money, error) {
	currency := currencyOrDefault(currencyCode)
	cents, err := MinorUnits(amount, currency.Code)
	if err != nil {
		return nil, err
	}
	return New(cents, currency.Code), nil
}

// Zero returns a zero value for the currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// Amount returns the amount in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

func (m *Money) IsPositive() bool {
	return m != nil && m.m != nil && m.m.IsPositive()
}

func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Add returns m + other. Currencies must match.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}

	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// Subtract returns m - other. Currencies must match.
func (m *Money) Subtract(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		if other == nil || other.m == nil {
			return Zero(DefaultCurrency), nil
		}
		return &Money{m: other.m.Negative()}, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}

	result, err := m.m.Subtract(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// Equals reports whether both values hold the same amount and currency.
func (m *Money) Equals(other *Money) bool {
	if m == nil || m.m == nil {
		return other == nil || other.m == nil || other.IsZero()
	}
	if other == nil || other.m == nil {
		return m.IsZero()
	}
	eq, _ := m.m.Equals(other.m)
	return eq
}

// ToDecimal converts to major units.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	currency := m.m.Currency()
	d := decimal.NewFromInt(m.m.Amount())
	return d.Div(decimal.New(1, int32(currency.Fraction)))
}

// ToFloat64 converts to float64 for chart scaling only.
func (m *Money) ToFloat64() float64 {
	return m.ToDecimal().InexactFloat64()
}

// String returns the plain decimal amount, e.g. "1234.56".
func (m *Money) String() string {
	if m == nil || m.m == nil {
		return "0.00"
	}
	return m.ToDecimal().StringFixed(2)
}

// Format renders the value the way Brazilian users read it: "R$ 1.234,56".
func (m *Money) Format() string {
	return FormatDecimal(m.ToDecimal())
}

// DivideInt splits the value into n parts and returns one part, rounded to the
// minor unit.
func (m *Money) DivideInt(n int64) (*Money, error) {
	if n <= 0 {
		return nil, errors.New("divisor must be positive")
	}
	if m == nil || m.m == nil {
		return Zero(DefaultCurrency), nil
	}
	return NewFromDecimal(m.ToDecimal().Div(decimal.NewFromInt(n)), m.Currency())
}

// PercentageOf returns what percentage m is of total (25.5 for 25.5%).
func (m *Money) PercentageOf(total *Money) decimal.Decimal {
	if m == nil || m.m == nil || total == nil || total.m == nil || total.IsZero() {
		return decimal.Zero
	}
	return m.ToDecimal().Div(total.ToDecimal()).Mul(decimal.NewFromInt(100))
}

// FormatDecimal renders a major-unit amount as "R$ 1.234,56". Negative values
// are prefixed with a minus sign before the symbol.
func FormatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return sign + "R$ " + b.String() + "," + frac
}

// FormatCents renders minor units of the default currency.
func FormatCents(cents int64) string {
	return New(cents, DefaultCurrency).Format()
}
