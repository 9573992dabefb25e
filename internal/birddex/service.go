// Package birddex implements the read operations of the bird dataset API:
// name search, attribute filters, unique values, custom multi-field filters,
// raw queries, random sampling, per-bird reports and dataset statistics.
package birddex

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
	"github.com/tphakala/birddex-go/internal/query"
)

// taxonomyFields is the allow-list of taxonomy levels exposed by the API,
// keyed by the lowercased level name.
var taxonomyFields = map[string]string{
	"rank":   dataset.FieldRank,
	"order":  dataset.FieldOrder,
	"family": dataset.FieldFamily,
}

// Wildcard is the marker custom filters use for substring matching.
const Wildcard = "*"

// Service answers queries against the loaded dataset. It is safe for
// concurrent use; the dataset is immutable and the cache is concurrency-safe.
type Service struct {
	store  *dataset.Store
	engine *query.Engine
	cache  *cache.Cache
	logger *slog.Logger
}

// New creates a service over an already-loaded dataset.
func New(store *dataset.Store, engine *query.Engine) *Service {
	return &Service{
		store:  store,
		engine: engine,
		cache:  cache.New(10*time.Minute, 30*time.Minute),
		logger: logging.ForService("birddex"),
	}
}

// Count returns the dataset size.
func (s *Service) Count() int {
	return s.store.Count()
}

// filter serializes a predicate, evaluates it and normalizes the result to a
// list of records.
func (s *Service) filter(ctx context.Context, p query.Predicate) ([]any, error) {
	expr, err := query.FilterExpr(p)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Eval(ctx, expr, s.store.Data())
	if err != nil {
		return nil, err
	}
	return query.Normalize(result), nil
}

// SearchByName matches q against the scientific name and every common-name
// variant. The default match is a case-insensitive substring; exact requires
// full equality on one of the name fields.
func (s *Service) SearchByName(ctx context.Context, q string, exact bool) ([]any, error) {
	preds := make([]query.Predicate, 0, len(dataset.NameFields))
	for _, field := range dataset.NameFields {
		if exact {
			preds = append(preds, query.Equals(field, q))
		} else {
			preds = append(preds, query.ContainsFold(field, q))
		}
	}
	return s.filter(ctx, query.Or(preds...))
}

// ByTaxonomy filters on one taxonomy level. Levels outside the allow-list
// fail validation before any expression is built.
func (s *Service) ByTaxonomy(ctx context.Context, level, value string) ([]any, error) {
	field, ok := taxonomyFields[strings.ToLower(level)]
	if !ok {
		return nil, errors.Newf("invalid taxonomy level %q, must be one of Rank, Order, Family", level).
			Component("birddex").
			Category(errors.CategoryValidation).
			Context("level", level).
			Build()
	}
	return s.filter(ctx, query.Equals(field, value))
}

// ByConservationCategory filters on the IUCN Red List category code.
func (s *Service) ByConservationCategory(ctx context.Context, category string) ([]any, error) {
	return s.filter(ctx, query.Equals(dataset.FieldIUCNCategory, strings.ToUpper(category)))
}

// Extinct returns records carrying a non-empty extinction marker.
func (s *Service) Extinct(ctx context.Context) ([]any, error) {
	return s.filter(ctx, query.NonEmpty(dataset.FieldExtinct))
}

// ByRange matches region as a case-insensitive substring of the geographic
// range description.
func (s *Service) ByRange(ctx context.Context, region string) ([]any, error) {
	return s.filter(ctx, query.ContainsFold(dataset.FieldRange, region))
}

// ByAuthority matches name as a case-insensitive substring of the naming
// authority text.
func (s *Service) ByAuthority(ctx context.Context, name string) ([]any, error) {
	return s.filter(ctx, query.ContainsFold(dataset.FieldAuthority, name))
}

// UniqueValues returns the distinct non-empty values of a caller-supplied
// field.
func (s *Service) UniqueValues(ctx context.Context, field string) ([]any, error) {
	expr, err := query.DistinctValuesExpr(field)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Eval(ctx, expr, s.store.Data())
	if err != nil {
		return nil, err
	}
	return query.Normalize(result), nil
}

// CustomFilter conjoins one condition per entry: list values become
// set-membership tests, strings containing the wildcard marker become
// case-insensitive substring matches, everything else is exact equality. An
// empty filter map matches the whole dataset.
func (s *Service) CustomFilter(ctx context.Context, filters map[string]any) ([]any, error) {
	// Deterministic expression text regardless of map iteration order.
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	preds := make([]query.Predicate, 0, len(fields))
	for _, field := range fields {
		if err := query.ValidateFieldName(field); err != nil {
			return nil, err
		}
		switch value := filters[field].(type) {
		case []any:
			preds = append(preds, query.InSet(field, value))
		case string:
			if strings.Contains(value, Wildcard) {
				preds = append(preds, query.ContainsFold(field, strings.ReplaceAll(value, Wildcard, "")))
			} else {
				preds = append(preds, query.Equals(field, value))
			}
		default:
			preds = append(preds, query.Equals(field, value))
		}
	}
	return s.filter(ctx, query.And(preds...))
}

// RawQuery evaluates a fully-formed caller-supplied expression with no
// alteration. The result is returned as the evaluator produced it; only the
// API layer decides whether it is a paginatable list.
func (s *Service) RawQuery(ctx context.Context, expression string) (any, error) {
	if s.logger != nil {
		s.logger.Debug("Evaluating raw query", "expression", expression)
	}
	return s.engine.Eval(ctx, expression, s.store.Data())
}
