package birddex

import (
	"context"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/query"
)

// maxRelatedInFamily caps the number of same-family birds in a report.
const maxRelatedInFamily = 5

// conservationStatusNames expands IUCN Red List category codes.
var conservationStatusNames = map[string]string{
	"EX": "Extinct",
	"EW": "Extinct in the Wild",
	"CR": "Critically Endangered",
	"EN": "Endangered",
	"VU": "Vulnerable",
	"NT": "Near Threatened",
	"LC": "Least Concern",
	"DD": "Data Deficient",
	"NE": "Not assessed",
}

// Report is the detail view for one bird.
type Report struct {
	Bird               dataset.Record `json:"bird"`
	ConservationStatus string         `json:"conservationStatus"`
	RelatedInFamily    []any          `json:"relatedInFamily"`
	HasImage           bool           `json:"hasImage"`
	HasAudio           bool           `json:"hasAudio"`
	HasRangeMap        bool           `json:"hasRangeMap"`
}

// BirdReport builds the detail view for the first record matching the exact
// scientific name. Unknown names are a not-found failure.
func (s *Service) BirdReport(ctx context.Context, scientificName string) (*Report, error) {
	cacheKey := "report:" + scientificName
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*Report), nil
	}

	matches, err := s.filter(ctx, query.Equals(dataset.FieldScientificName, scientificName))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.Newf("no bird found with scientific name %q", scientificName).
			Component("birddex").
			Category(errors.CategoryNotFound).
			Context("scientific_name", scientificName).
			Build()
	}

	bird := asRecord(matches[0])

	related := []any{}
	if family := bird.String(dataset.FieldFamily); family != "" {
		sameFamily, err := s.filter(ctx, query.And(
			query.Equals(dataset.FieldFamily, family),
			query.NotEquals(dataset.FieldScientificName, scientificName),
		))
		if err != nil {
			return nil, err
		}
		if len(sameFamily) > maxRelatedInFamily {
			sameFamily = sameFamily[:maxRelatedInFamily]
		}
		related = sameFamily
	}

	report := &Report{
		Bird:               bird,
		ConservationStatus: conservationStatus(bird.String(dataset.FieldIUCNCategory)),
		RelatedInFamily:    related,
		HasImage:           bird.Has(dataset.FieldImageURL),
		HasAudio:           bird.Has(dataset.FieldAudioURL),
		HasRangeMap:        bird.Has(dataset.FieldRangeMapURL),
	}

	s.cache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

// conservationStatus maps an IUCN code to its display name. Empty means the
// bird was never assessed; unknown codes pass through unchanged.
func conservationStatus(code string) string {
	if code == "" {
		return "Not assessed"
	}
	if name, ok := conservationStatusNames[code]; ok {
		return name
	}
	return code
}

// asRecord views an evaluator result item as a dataset record.
func asRecord(item any) dataset.Record {
	if rec, ok := item.(map[string]any); ok {
		return dataset.Record(rec)
	}
	return dataset.Record{}
}
