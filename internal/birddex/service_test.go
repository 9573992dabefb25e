package birddex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/query"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := dataset.Load(filepath.Join("testdata", "birds.json"))
	require.NoError(t, err)

	return New(store, query.NewEngine(5*time.Second))
}

func scientificNames(t *testing.T, records []any) []string {
	t.Helper()

	names := make([]string, 0, len(records))
	for _, item := range records {
		rec, ok := item.(map[string]any)
		require.True(t, ok)
		name, _ := rec[dataset.FieldScientificName].(string)
		names = append(names, name)
	}
	return names
}

func TestSearchByNameExact(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.SearchByName(context.Background(), "Aquila chrysaetos", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquila chrysaetos"}, scientificNames(t, results))
}

func TestSearchByNamePartialIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.SearchByName(context.Background(), "eagle", false)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"Aquila chrysaetos", "Aquila nipalensis", "Haliaeetus leucocephalus"},
		scientificNames(t, results))
}

func TestSearchByNameHostileInputMatchesNothing(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.SearchByName(context.Background(), `x" or $boolean(1) or "`, false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestByTaxonomy(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	family, err := s.ByTaxonomy(context.Background(), "Family", "Accipitridae")
	require.NoError(t, err)
	assert.Len(t, family, 4)

	// Level names are matched case-insensitively.
	order, err := s.ByTaxonomy(context.Background(), "order", "Passeriformes")
	require.NoError(t, err)
	assert.Len(t, order, 3)

	rank, err := s.ByTaxonomy(context.Background(), "Rank", "ssp")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquila chrysaetos canadensis"}, scientificNames(t, rank))
}

func TestByTaxonomyRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.ByTaxonomy(context.Background(), "Genus", "Aquila")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))
}

func TestByConservationCategory(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.ByConservationCategory(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquila nipalensis"}, scientificNames(t, results))
}

func TestExtinct(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.Extinct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pinguinus impennis"}, scientificNames(t, results))
}

func TestByRange(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.ByRange(context.Background(), "NORTH america")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"Aquila chrysaetos", "Haliaeetus leucocephalus", "Turdus migratorius", "Aquila chrysaetos canadensis"},
		scientificNames(t, results))
}

func TestByAuthority(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.ByAuthority(context.Background(), "hodgson")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquila nipalensis"}, scientificNames(t, results))
}

func TestUniqueValues(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	families, err := s.UniqueValues(context.Background(), "Family")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]any{"Accipitridae", "Passeridae", "Alcidae", "Turdidae", "Corvidae"},
		families)

	// The empty IUCN value of the subspecies record is excluded.
	categories, err := s.UniqueValues(context.Background(), "IUCN_Red_List_Category")
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"LC", "EN", "EX", "EW"}, categories)
}

func TestUniqueValuesRejectsBadFieldName(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.UniqueValues(context.Background(), "Family`]!")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))
}

func TestCustomFilterEmptyMatchesEverything(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.CustomFilter(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Len(t, results, s.Count())
}

func TestCustomFilterConjunction(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.CustomFilter(context.Background(), map[string]any{
		"Family": "Accipitridae",
		"Rank":   "species",
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestCustomFilterSetMembership(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.CustomFilter(context.Background(), map[string]any{
		"IUCN_Red_List_Category": []any{"EN", "EX"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"Aquila nipalensis", "Pinguinus impennis"},
		scientificNames(t, results))
}

func TestCustomFilterWildcard(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.CustomFilter(context.Background(), map[string]any{
		"English_name_IOC": "*eagle*",
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRandomSample(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.RandomSample(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Every sampled record is a genuine dataset member and no two share a
	// sequence identifier.
	seen := map[float64]bool{}
	for _, item := range results {
		rec, ok := item.(map[string]any)
		require.True(t, ok)
		seq, ok := rec[dataset.FieldSequence].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, seq, 1.0)
		assert.LessOrEqual(t, seq, 8.0)
		assert.False(t, seen[seq], "duplicate sequence %v", seq)
		seen[seq] = true
	}
}

func TestRandomSampleClampedToDatasetSize(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	results, err := s.RandomSample(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, results, s.Count())

	empty, err := s.RandomSample(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBirdReport(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	report, err := s.BirdReport(context.Background(), "Aquila chrysaetos")
	require.NoError(t, err)

	assert.Equal(t, "Aquila chrysaetos", report.Bird.String(dataset.FieldScientificName))
	assert.Equal(t, "Least Concern", report.ConservationStatus)
	assert.True(t, report.HasImage)
	assert.True(t, report.HasAudio)
	assert.True(t, report.HasRangeMap)

	require.LessOrEqual(t, len(report.RelatedInFamily), 5)
	for _, item := range report.RelatedInFamily {
		rec, ok := item.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Accipitridae", rec[dataset.FieldFamily])
		assert.NotEqual(t, "Aquila chrysaetos", rec[dataset.FieldScientificName])
	}
	assert.Len(t, report.RelatedInFamily, 3)
}

func TestBirdReportNotAssessed(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	report, err := s.BirdReport(context.Background(), "Aquila chrysaetos canadensis")
	require.NoError(t, err)
	assert.Equal(t, "Not assessed", report.ConservationStatus)
	assert.False(t, report.HasImage)
}

func TestBirdReportUnknownName(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.BirdReport(context.Background(), "Aquila imaginaria")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNotFound, errors.CategoryOf(err))
}

func TestStats(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalRecords)
	assert.Equal(t, 3, stats.OrderCount)
	assert.Equal(t, 5, stats.FamilyCount)
	assert.Equal(t, 7, stats.SpeciesCount)
	assert.Equal(t, 1, stats.ExtinctCount)
	assert.Equal(t, []string{"EN", "EW", "EX", "LC"}, stats.IUCNCategories)

	// Second call is served from cache and stays identical.
	again, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestRawQuery(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	result, err := s.RawQuery(context.Background(), `$count($)`)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result, 0.001)

	list, err := s.RawQuery(context.Background(), `$[Order = "Passeriformes"]`)
	require.NoError(t, err)
	records, ok := list.([]any)
	require.True(t, ok)
	assert.Len(t, records, 3)
}

func TestRawQuerySyntaxError(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.RawQuery(context.Background(), `$[Order = `)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryQuerySyntax, errors.CategoryOf(err))
}

// The worked example from the endpoint contract: a two-record dataset where
// filtering by IUCN category EN returns exactly the second record.
func TestTwoRecordExample(t *testing.T) {
	t.Parallel()

	store := storeFromJSON(t, `[
		{"Scientific_name": "Aquila chrysaetos", "Family": "Accipitridae", "IUCN_Red_List_Category": "LC", "Sequence": 1},
		{"Scientific_name": "Aquila nipalensis", "Family": "Accipitridae", "IUCN_Red_List_Category": "EN", "Sequence": 2}
	]`)
	s := New(store, query.NewEngine(5*time.Second))

	en, err := s.ByConservationCategory(context.Background(), "EN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquila nipalensis"}, scientificNames(t, en))

	both, err := s.ByTaxonomy(context.Background(), "Family", "Accipitridae")
	require.NoError(t, err)
	assert.Len(t, both, 2)

	page, meta := query.Paginate(both, 1, 50)
	assert.Len(t, page, 2)
	assert.Equal(t, 2, meta.TotalItems)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func storeFromJSON(t *testing.T, raw string) *dataset.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "birds.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	store, err := dataset.Load(path)
	require.NoError(t, err)
	return store
}
