package nlp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrParseAmount is returned when a token cannot be read as a number.
var ErrParseAmount = errors.New("invalid amount")

var amountShape = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d*)?$`)

// ParseAmount reads a locale-formatted number. A comma is the decimal separator;
// thousands separators and exponents are not supported. Zero and negative
// values parse successfully and are rejected by callers that need a positive
// amount.
func ParseAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty token", ErrParseAmount)
	}

	if !amountShape.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrParseAmount, token)
	}

	s = strings.Replace(s, ",", ".", 1)
	// "10," is accepted as 10
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrParseAmount, token)
	}
	return d, nil
}
