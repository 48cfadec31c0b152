package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyMatcher_Match(t *testing.T) {
	fm := NewFuzzyMatcher(0)

	tests := []struct {
		name  string
		query string
		want  string
		score int
	}{
		{"folded exact", "alimentacao", "Alimentação", 100},
		{"upper case", "LAZER", "Lazer", 100},
		{"prefix", "transp", "Transporte", 90},
		{"typo", "lazr", "Lazer", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fm.Match(tt.query, DefaultCategories)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Category.Name)
			assert.Equal(t, tt.score, result.Score)
		})
	}
}

func TestFuzzyMatcher_BelowThreshold(t *testing.T) {
	fm := NewFuzzyMatcher(DefaultFuzzyThreshold)
	assert.Nil(t, fm.Match("xyzw", DefaultCategories))
	assert.Nil(t, fm.Match("", DefaultCategories))
	assert.Nil(t, fm.Match("lazer", nil))
}

func TestFuzzyMatcher_Rank(t *testing.T) {
	fm := NewFuzzyMatcher(0)
	candidates := []Category{{Name: "Saúde"}, {Name: "Salário"}, {Name: "Serviços"}}

	ranked := fm.Rank("saude", candidates, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Saúde", ranked[0].Category.Name)
	assert.Equal(t, 0, ranked[0].Distance)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "educacao", Fold("  Educação "))
	assert.Equal(t, "onibus", Fold("ÔNIBUS"))
	assert.Equal(t, " pao  na padaria  ", tokenize("Pão, na padaria!"))
}
