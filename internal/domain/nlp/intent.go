// Package nlp classifies free-text Portuguese chat messages into financial intents
// and extracts transaction data from them. Everything in this package is pure: the
// pattern table is built once at init and never mutated.
package nlp

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a message.
type Intent int

const (
	Unrecognized Intent = iota
	BalanceQuery
	AnalysisQuery
	GoalsQuery
	BudgetQuery
	RemindersQuery
	ChartRequest
	Expense
	Income
	ReportQuery
	HelpRequest
)

var intentNames = map[Intent]string{
	Unrecognized:   "unrecognized",
	BalanceQuery:   "balance",
	AnalysisQuery:  "analysis",
	GoalsQuery:     "goals",
	BudgetQuery:    "budget",
	RemindersQuery: "reminders",
	ChartRequest:   "chart",
	Expense:        "expense",
	Income:         "income",
	ReportQuery:    "report",
	HelpRequest:    "help",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// IsTransactional reports whether the intent carries an amount to record.
func (i Intent) IsTransactional() bool {
	return i == Expense || i == Income
}

// Priority is the fixed evaluation order across intents. Unrecognized is the
// fallback and never appears here.
var Priority = []Intent{
	BalanceQuery,
	AnalysisQuery,
	GoalsQuery,
	BudgetQuery,
	RemindersQuery,
	ChartRequest,
	Expense,
	Income,
	ReportQuery,
	HelpRequest,
}

// CaptureRole is the meaning of one capture group inside a PatternRule.
type CaptureRole int

const (
	RoleIgnore CaptureRole = iota
	RoleAmount
	RoleDescription
	RoleChartType
)

func (r CaptureRole) String() string {
	switch r {
	case RoleAmount:
		return "amount"
	case RoleDescription:
		return "description"
	case RoleChartType:
		return "chart_type"
	default:
		return "ignore"
	}
}

// PatternRule pairs a matcher with the roles of its capture groups.
// Roles[i] describes capture group i+1.
type PatternRule struct {
	Name    string
	Intent  Intent
	Pattern *regexp.Regexp
	Roles   []CaptureRole
}

// group returns the submatch holding role, or false when the rule declares no
// such group or the group did not participate in the match.
func (r *PatternRule) group(role CaptureRole, groups []string) (string, bool) {
	for i, rr := range r.Roles {
		if rr != role {
			continue
		}
		idx := i + 1
		if idx < len(groups) && groups[idx] != "" {
			return groups[idx], true
		}
		return "", false
	}
	return "", false
}

// ClassificationResult is the output of Classify.
type ClassificationResult struct {
	Intent Intent
	// Rule is nil when Intent is Unrecognized.
	Rule *PatternRule
	// Groups holds the full match at index 0 followed by every capture group.
	Groups    []string
	ChartType string
	Text      string
}

// RuleName returns the matched rule name or an empty string.
func (c ClassificationResult) RuleName() string {
	if c.Rule == nil {
		return ""
	}
	return c.Rule.Name
}

// Normalize trims and lower-cases raw message text before classification.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
