package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("nil becomes empty slice", func(t *testing.T) {
		t.Parallel()
		result := Normalize(nil)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("single object becomes singleton", func(t *testing.T) {
		t.Parallel()
		record := map[string]any{"Scientific_name": "Aquila chrysaetos"}
		assert.Equal(t, []any{record}, Normalize(record))
	})

	t.Run("slice is unchanged", func(t *testing.T) {
		t.Parallel()
		records := []any{
			map[string]any{"Sequence": 1.0},
			map[string]any{"Sequence": 2.0},
		}
		assert.Equal(t, records, Normalize(records))
	})

	t.Run("scalar becomes singleton", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []any{"LC"}, Normalize("LC"))
	})
}
