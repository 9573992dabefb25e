// Package dataset loads the bird record dataset into memory at startup and
// exposes it read-only for the lifetime of the process.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
)

// Field names of the bird record schema. No field is guaranteed present;
// absent and empty string both mean "no value".
const (
	FieldSequence        = "Sequence"
	FieldScientificName  = "Scientific_name"
	FieldEnglishIOC      = "English_name_IOC"
	FieldEnglishClements = "English_name_Clements"
	FieldOrder           = "Order"
	FieldFamily          = "Family"
	FieldRank            = "Rank"
	FieldIUCNCategory    = "IUCN_Red_List_Category"
	FieldRange           = "Range"
	FieldAuthority       = "Authority"
	FieldExtinct         = "Extinct_or_possibly_extinct"
	FieldImageURL        = "Image_URL"
	FieldAudioURL        = "Audio_URL"
	FieldRangeMapURL     = "Range_map_URL"
)

// NameFields lists the fields a name search matches against: the scientific
// name plus the common-name variants from each naming authority.
var NameFields = []string{FieldScientificName, FieldEnglishIOC, FieldEnglishClements}

// Record is one bird's attribute mapping as loaded from the dataset file.
type Record map[string]any

// String returns the value of a string field, with absent fields and
// non-string values reported as the empty string.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// Has reports whether the field carries a non-empty string value.
func (r Record) Has(field string) bool {
	return r.String(field) != ""
}

// Store holds the loaded dataset. Immutable after Load; concurrent reads
// need no synchronization.
type Store struct {
	records []Record
	data    []any // evaluator view of the same records
}

// Load reads a JSON array of bird records from path. Any failure here is
// fatal for the process: the server must not start without its dataset.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("dataset").
			Category(errors.CategoryDatasetLoad).
			Context("path", path).
			Build()
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Newf("dataset is not a JSON array of records: %w", err).
			Component("dataset").
			Category(errors.CategoryDatasetLoad).
			Context("path", path).
			Build()
	}

	data := make([]any, len(records))
	for i, rec := range records {
		data[i] = map[string]any(rec)
	}

	logging.Info("Dataset loaded", "path", path, "records", len(records))

	return &Store{records: records, data: data}, nil
}

// Records returns the loaded records in dataset order. Callers must not
// modify the returned slice.
func (s *Store) Records() []Record {
	return s.records
}

// Count returns the number of records in the dataset.
func (s *Store) Count() int {
	return len(s.records)
}

// Data returns the dataset in the shape the query evaluator consumes.
func (s *Store) Data() any {
	return s.data
}
