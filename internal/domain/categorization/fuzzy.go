package categorization

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultFuzzyThreshold is the minimum score accepted when resolving a typed
// category name.
const DefaultFuzzyThreshold = 70

// FuzzyMatchResult is a candidate category with its similarity score.
type FuzzyMatchResult struct {
	Category Category
	Score    int // 0-100, higher is closer
	Distance int // Levenshtein distance on folded names
}

// FuzzyMatcher resolves user-typed category names ("alimentacao", "transp")
// against the stored ones, ignoring case and accents.
type FuzzyMatcher struct {
	threshold int
}

// NewFuzzyMatcher creates a matcher. Non-positive thresholds use the default.
func NewFuzzyMatcher(threshold int) *FuzzyMatcher {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &FuzzyMatcher{threshold: threshold}
}

// Match returns the closest category at or above the threshold, or nil.
func (fm *FuzzyMatcher) Match(query string, candidates []Category) *FuzzyMatchResult {
	ranked := fm.Rank(query, candidates, 1)
	if len(ranked) == 0 || ranked[0].Score < fm.threshold {
		return nil
	}
	return &ranked[0]
}

// Rank scores every candidate and returns the best first. Ties keep the
// candidate order.
func (fm *FuzzyMatcher) Rank(query string, candidates []Category, limit int) []FuzzyMatchResult {
	q := Fold(query)
	if q == "" || len(candidates) == 0 {
		return nil
	}

	results := make([]FuzzyMatchResult, 0, len(candidates))
	for _, c := range candidates {
		name := Fold(c.Name)
		results = append(results, FuzzyMatchResult{
			Category: c,
			Score:    fuzzyScore(q, name),
			Distance: fuzzy.LevenshteinDistance(q, name),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// fuzzyScore combines containment, edit distance and subsequence rank into a
// 0-100 score.
func fuzzyScore(query, target string) int {
	if query == target {
		return 100
	}

	qLen := utf8.RuneCountInString(query)
	tLen := utf8.RuneCountInString(target)

	if strings.Contains(target, query) {
		return 75 + (25 * qLen / tLen)
	}
	if strings.Contains(query, target) {
		return 75 + (25 * tLen / qLen)
	}

	maxLen := max(qLen, tLen)
	if maxLen == 0 {
		return 0
	}
	levenshteinScore := 100 * (maxLen - fuzzy.LevenshteinDistance(query, target)) / maxLen

	subsequenceScore := 0
	if rank := fuzzy.RankMatch(query, target); rank >= 0 && tLen > 0 {
		subsequenceScore = 60 - (rank * 40 / tLen)
	}

	return max(levenshteinScore, subsequenceScore)
}
