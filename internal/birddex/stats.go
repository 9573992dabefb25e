package birddex

import (
	"context"
	"fmt"
	"sort"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/query"
)

// Stats summarizes the whole dataset.
type Stats struct {
	TotalRecords   int      `json:"totalRecords"`
	OrderCount     int      `json:"orderCount"`
	FamilyCount    int      `json:"familyCount"`
	SpeciesCount   int      `json:"speciesCount"`
	ExtinctCount   int      `json:"extinctCount"`
	IUCNCategories []string `json:"iucnCategories"`
}

const statsCacheKey = "stats"

// statsExpr computes every statistic in one evaluator pass. The expression is
// static text over known field names; no user input reaches it.
func statsExpr() string {
	distinctNonEmpty := func(field string) string {
		return fmt.Sprintf("$distinct([$[($exists(`%[1]s`) and `%[1]s` != \"\")].`%[1]s`])", field)
	}
	return fmt.Sprintf(`{
		"totalRecords": $count($),
		"orderCount": $count(%s),
		"familyCount": $count(%s),
		"speciesCount": $count([$[`+"`%s`"+` = "species"]]),
		"extinctCount": $count([$[($exists(`+"`%[4]s`"+`) and `+"`%[4]s`"+` != "")]]),
		"iucnCategories": %s
	}`,
		distinctNonEmpty(dataset.FieldOrder),
		distinctNonEmpty(dataset.FieldFamily),
		dataset.FieldRank,
		dataset.FieldExtinct,
		distinctNonEmpty(dataset.FieldIUCNCategory),
	)
}

// Stats computes (or returns the cached) dataset statistics.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached, found := s.cache.Get(statsCacheKey); found {
		return cached.(*Stats), nil
	}

	result, err := s.engine.Eval(ctx, statsExpr(), s.store.Data())
	if err != nil {
		return nil, err
	}

	obj, ok := result.(map[string]any)
	if !ok {
		return nil, errors.Newf("unexpected statistics result type %T", result).
			Component("birddex").
			Category(errors.CategoryQueryEval).
			Build()
	}

	categories := make([]string, 0)
	for _, v := range query.Normalize(obj["iucnCategories"]) {
		if code, ok := v.(string); ok {
			categories = append(categories, code)
		}
	}
	sort.Strings(categories)

	stats := &Stats{
		TotalRecords:   intField(obj, "totalRecords"),
		OrderCount:     intField(obj, "orderCount"),
		FamilyCount:    intField(obj, "familyCount"),
		SpeciesCount:   intField(obj, "speciesCount"),
		ExtinctCount:   intField(obj, "extinctCount"),
		IUCNCategories: categories,
	}

	if s.logger != nil {
		s.logger.Debug("Dataset statistics recomputed", "totalRecords", stats.TotalRecords)
	}
	s.cache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}

// intField reads a numeric evaluator result as an int, defaulting to 0 for
// absent values.
func intField(obj map[string]any, key string) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
