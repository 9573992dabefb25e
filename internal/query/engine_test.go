package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birddex-go/internal/errors"
)

func testData() []any {
	return []any{
		map[string]any{"Scientific_name": "Aquila chrysaetos", "Family": "Accipitridae", "IUCN_Red_List_Category": "LC", "Sequence": 1.0},
		map[string]any{"Scientific_name": "Aquila nipalensis", "Family": "Accipitridae", "IUCN_Red_List_Category": "EN", "Sequence": 2.0},
		map[string]any{"Scientific_name": "Passer domesticus", "Family": "Passeridae", "IUCN_Red_List_Category": "LC", "Sequence": 3.0},
	}
}

func TestEngineEvalFilter(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	result, err := engine.Eval(context.Background(), `$[Family = "Accipitridae"]`, testData())
	require.NoError(t, err)

	records := Normalize(result)
	require.Len(t, records, 2)
}

// A filter with exactly one match collapses to a bare object; Normalize is
// what restores the list shape.
func TestEngineEvalSingletonCollapse(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	result, err := engine.Eval(context.Background(), `$[IUCN_Red_List_Category = "EN"]`, testData())
	require.NoError(t, err)

	_, isSlice := result.([]any)
	assert.False(t, isSlice)

	records := Normalize(result)
	require.Len(t, records, 1)
	rec, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Aquila nipalensis", rec["Scientific_name"])
}

func TestEngineEvalNoMatchesIsNilNotError(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	result, err := engine.Eval(context.Background(), `$[Family = "Tyrannidae"]`, testData())
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, Normalize(result))
}

func TestEngineEvalScalar(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	result, err := engine.Eval(context.Background(), `$count($)`, testData())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, result, 0.001)
}

func TestEngineDistinctExtension(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	result, err := engine.Eval(context.Background(), "$distinct([$.`IUCN_Red_List_Category`])", testData())
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"LC", "EN"}, Normalize(result))
}

func TestEngineCompileErrorIsSyntaxCategory(t *testing.T) {
	t.Parallel()
	engine := NewEngine(5 * time.Second)

	_, err := engine.Eval(context.Background(), `$[Family = `, testData())
	require.Error(t, err)
	assert.Equal(t, errors.CategoryQuerySyntax, errors.CategoryOf(err))
}

func TestEngineTimeout(t *testing.T) {
	t.Parallel()

	// A deadline in the past against a dataset large enough that evaluation
	// cannot win the race.
	large := make([]any, 0, 50000)
	for i := range 50000 {
		large = append(large, map[string]any{"Sequence": float64(i), "Family": fmt.Sprintf("family-%d", i%100)})
	}

	engine := NewEngine(time.Nanosecond)
	_, err := engine.Eval(context.Background(), `$[Family = "family-7"]`, large)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryTimeout, errors.CategoryOf(err))
}
