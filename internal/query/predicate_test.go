package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExprSerialization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pred     Predicate
		expected string
	}{
		{
			name:     "equals",
			pred:     Equals("Family", "Accipitridae"),
			expected: "$[`Family` = \"Accipitridae\"]",
		},
		{
			name:     "not equals",
			pred:     NotEquals("Scientific_name", "Aquila chrysaetos"),
			expected: "$[`Scientific_name` != \"Aquila chrysaetos\"]",
		},
		{
			name:     "contains lowercases the literal",
			pred:     ContainsFold("Range", "North AMERICA"),
			expected: "$[($exists(`Range`) and $contains($lowercase(`Range`), \"north america\"))]",
		},
		{
			name:     "in set",
			pred:     InSet("IUCN_Red_List_Category", []any{"EN", "CR"}),
			expected: "$[`IUCN_Red_List_Category` in [\"EN\", \"CR\"]]",
		},
		{
			name:     "in set of numbers",
			pred:     InSet("Sequence", []any{1, 5}),
			expected: "$[`Sequence` in [1, 5]]",
		},
		{
			name:     "non empty",
			pred:     NonEmpty("Extinct_or_possibly_extinct"),
			expected: "$[($exists(`Extinct_or_possibly_extinct`) and `Extinct_or_possibly_extinct` != \"\")]",
		},
		{
			name:     "conjunction",
			pred:     And(Equals("Family", "Accipitridae"), Equals("Rank", "species")),
			expected: "$[(`Family` = \"Accipitridae\" and `Rank` = \"species\")]",
		},
		{
			name:     "disjunction",
			pred:     Or(Equals("Rank", "species"), Equals("Rank", "ssp")),
			expected: "$[(`Rank` = \"species\" or `Rank` = \"ssp\")]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := FilterExpr(tt.pred)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr)
		})
	}
}

func TestFilterExprEmptyPredicateMatchesEverything(t *testing.T) {
	t.Parallel()

	for _, pred := range []Predicate{nil, And(), Or()} {
		expr, err := FilterExpr(pred)
		require.NoError(t, err)
		assert.Equal(t, "$", expr)
	}
}

// Hostile literals must stay literals: quoting metacharacters in a value may
// not rewrite the expression.
func TestFilterExprEscapesHostileLiterals(t *testing.T) {
	t.Parallel()

	expr, err := FilterExpr(Equals("Family", `x" or $boolean(1) or "`))
	require.NoError(t, err)
	assert.Equal(t, "$[`Family` = \"x\\\" or $boolean(1) or \\\"\"]", expr)
}

func TestValidateFieldName(t *testing.T) {
	t.Parallel()

	valid := []string{"Family", "IUCN_Red_List_Category", "_private", "f2"}
	for _, field := range valid {
		assert.NoError(t, ValidateFieldName(field), field)
	}

	invalid := []string{"", "2field", "a-b", "a b", "a.b", "a`b", "Família"}
	for _, field := range invalid {
		assert.Error(t, ValidateFieldName(field), field)
	}
}

func TestFilterExprRejectsInvalidFieldNames(t *testing.T) {
	t.Parallel()

	_, err := FilterExpr(Equals("Family`] $", "x"))
	require.Error(t, err)

	_, err = DistinctValuesExpr("bad field")
	require.Error(t, err)
}

func TestDistinctValuesExpr(t *testing.T) {
	t.Parallel()

	expr, err := DistinctValuesExpr("Family")
	require.NoError(t, err)
	assert.Equal(t, "$distinct([$[($exists(`Family`) and `Family` != \"\")].`Family`])", expr)
}
