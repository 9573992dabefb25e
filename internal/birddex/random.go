package birddex

import (
	"context"
	"math/rand/v2"

	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/query"
)

// MaxRandomSample is the hard cap on the random sample size.
const MaxRandomSample = 100

// RandomSample draws min(count, datasetSize) records uniformly at random
// without replacement, by picking distinct 1-based sequence identifiers and
// filtering on membership. Counts above MaxRandomSample are clamped.
func (s *Service) RandomSample(ctx context.Context, count int) ([]any, error) {
	if count < 0 {
		count = 0
	}
	if count > MaxRandomSample {
		count = MaxRandomSample
	}
	if count > s.store.Count() {
		count = s.store.Count()
	}
	if count == 0 {
		return []any{}, nil
	}

	indices := rand.Perm(s.store.Count())[:count]
	sequences := make([]any, count)
	for i, idx := range indices {
		sequences[i] = idx + 1 // sequence identifiers are 1-based
	}

	return s.filter(ctx, query.InSet(dataset.FieldSequence, sequences))
}
