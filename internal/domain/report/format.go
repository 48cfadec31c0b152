// Package report renders chat-sized financial reports and text charts.
// Everything here is a pure function of its inputs.
package report

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/transaction"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the lower-case Portuguese month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthTitle returns the capitalized Portuguese month name.
func MonthTitle(m time.Month) string {
	name := MonthName(m)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseMonth accepts a month number (1-12) or a Portuguese month name.
func ParseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	for i, name := range monthNames {
		if s == name || (name == "março" && s == "marco") {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func brl(minor int64) string {
	return money.FormatCents(minor)
}

// signed prefixes non-negative amounts with "+".
func signed(minor int64) string {
	if minor >= 0 {
		return "+" + brl(minor)
	}
	return brl(minor)
}

// percent renders one decimal with a comma: 12,5.
func percent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		p = 0
	}
	return strings.Replace(strconv.FormatFloat(p, 'f', 1, 64), ".", ",", 1)
}

func signedPercent(p float64) string {
	if p >= 0 {
		return "+" + percent(p)
	}
	return percent(p)
}

func share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// sortedTotals copies totals ordered by amount, largest first.
func sortedTotals(totals []transaction.CategoryTotal) []transaction.CategoryTotal {
	out := append([]transaction.CategoryTotal(nil), totals...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AmountMinor > out[j].AmountMinor })
	return out
}
