package nlp

import (
	"fmt"
	"strings"
)

// Library is an ordered, read-only table of pattern rules grouped by intent.
// A Library is safe for concurrent use; it is never modified after NewLibrary.
type Library struct {
	Version string
	rules   map[Intent][]PatternRule
}

// NewLibrary groups rules by intent, keeping declaration order within each group.
// It panics if a rule is malformed, since rule tables are static program data.
func NewLibrary(version string, rules []PatternRule) *Library {
	lib := &Library{
		Version: version,
		rules:   make(map[Intent][]PatternRule),
	}
	for _, r := range rules {
		if r.Pattern == nil {
			panic(fmt.Sprintf("nlp: rule %q has no pattern", r.Name))
		}
		if r.Intent == Unrecognized {
			panic(fmt.Sprintf("nlp: rule %q targets the fallback intent", r.Name))
		}
		if n := r.Pattern.NumSubexp(); n != len(r.Roles) {
			panic(fmt.Sprintf("nlp: rule %q has %d groups but %d roles", r.Name, n, len(r.Roles)))
		}
		lib.rules[r.Intent] = append(lib.rules[r.Intent], r)
	}
	return lib
}

// Rules returns a copy of the rules registered for intent, in evaluation order.
func (l *Library) Rules(intent Intent) []PatternRule {
	src := l.rules[intent]
	out := make([]PatternRule, len(src))
	copy(out, src)
	return out
}

// Len returns the total number of rules.
func (l *Library) Len() int {
	n := 0
	for _, rs := range l.rules {
		n += len(rs)
	}
	return n
}

// Classify returns the first rule match across intents in Priority order.
// It never fails: text that matches nothing is Unrecognized.
func (l *Library) Classify(text string) ClassificationResult {
	if text == "" {
		return ClassificationResult{Intent: Unrecognized}
	}

	for _, intent := range Priority {
		rules := l.rules[intent]
		for i := range rules {
			r := &rules[i]
			groups := r.Pattern.FindStringSubmatch(text)
			if groups == nil {
				continue
			}

			res := ClassificationResult{
				Intent: intent,
				Rule:   r,
				Groups: groups,
				Text:   text,
			}
			if chart, ok := r.group(RoleChartType, groups); ok {
				res.ChartType = strings.ToLower(chart)
			}
			return res
		}
	}

	return ClassificationResult{Intent: Unrecognized, Text: text}
}

// Classify runs the default library over already normalized text.
func Classify(text string) ClassificationResult {
	return defaultLibrary.Classify(text)
}
