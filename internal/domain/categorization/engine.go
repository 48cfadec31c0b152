package categorization

import (
	"sync"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
)

// KeywordRule assigns a category name to descriptions containing Keyword.
type KeywordRule struct {
	Keyword  string
	Category string
	Kind     Kind
}

// MatchResult is the winning keyword for a description.
type MatchResult struct {
	Keyword  string
	Category string
	Kind     Kind
}

type keywordEntry struct {
	rule  KeywordRule
	order int
}

// Engine matches every keyword in a single pass with Aho-Corasick. Keywords
// match at word starts; keywords of three runes or fewer must match whole
// words so "ir" does not fire inside "tirar".
type Engine struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	metadata [][]keywordEntry
	mu       sync.RWMutex
}

// NewEngine creates an engine from keyword rules.
func NewEngine(rules []KeywordRule) *Engine {
	e := &Engine{}
	e.Build(rules)
	return e
}

// Build replaces the keyword set. Rules sharing a keyword are grouped under
// one dictionary entry.
func (e *Engine) Build(rules []KeywordRule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	patternToIndex := make(map[string]int)
	patterns := make([]string, 0, len(rules))
	metadata := make([][]keywordEntry, 0, len(rules))

	for i, rule := range rules {
		pattern := keywordPattern(rule.Keyword)
		if pattern == "" {
			continue
		}

		entry := keywordEntry{rule: rule, order: i}
		if idx, exists := patternToIndex[pattern]; exists {
			metadata[idx] = append(metadata[idx], entry)
			continue
		}
		patternToIndex[pattern] = len(patterns)
		patterns = append(patterns, pattern)
		metadata = append(metadata, []keywordEntry{entry})
	}

	e.patterns = patterns
	e.metadata = metadata
	e.matcher = nil

	if len(patterns) > 0 {
		bytePatterns := make([][]byte, len(patterns))
		for i, p := range patterns {
			bytePatterns[i] = []byte(p)
		}
		e.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
}

func keywordPattern(keyword string) string {
	folded := tokenize(keyword)
	// tokenize pads both ends; drop the trailing pad unless the word is short.
	inner := folded[1 : len(folded)-1]
	for len(inner) > 0 && inner[0] == ' ' {
		inner = inner[1:]
	}
	for len(inner) > 0 && inner[len(inner)-1] == ' ' {
		inner = inner[:len(inner)-1]
	}
	if inner == "" {
		return ""
	}
	if utf8.RuneCountInString(inner) <= 3 {
		return " " + inner + " "
	}
	return " " + inner
}

// Match returns the longest keyword of the given kind found in description.
// Equal lengths resolve to the rule declared first. Nil means no keyword
// matched.
func (e *Engine) Match(kind Kind, description string) *MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return nil
	}

	hits := e.matcher.Match([]byte(tokenize(description)))
	if len(hits) == 0 {
		return nil
	}

	var best *keywordEntry
	bestLen := 0
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.metadata) {
			continue
		}
		length := len(e.patterns[idx])
		for i := range e.metadata[idx] {
			entry := &e.metadata[idx][i]
			if entry.rule.Kind != kind {
				continue
			}
			if best == nil || length > bestLen || (length == bestLen && entry.order < best.order) {
				best = entry
				bestLen = length
			}
		}
	}

	if best == nil {
		return nil
	}
	return &MatchResult{Keyword: best.rule.Keyword, Category: best.rule.Category, Kind: best.rule.Kind}
}

// PatternCount returns the number of distinct keywords loaded.
func (e *Engine) PatternCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}
