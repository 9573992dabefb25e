// Package query builds JSONata expressions from typed predicates and runs
// them against the in-memory dataset.
//
// Handlers never interpolate user input into expression text directly: they
// assemble a predicate tree and the tree is serialized here, with every
// literal escaped and every field name validated. A value containing JSONata
// quoting or metacharacters therefore stays a literal instead of rewriting
// the expression.
package query

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tphakala/birddex-go/internal/errors"
)

// fieldNamePattern is the allow-list for caller-supplied field names. The
// serializer additionally backtick-quotes every field step, so names that
// collide with JSONata keywords remain plain path steps.
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Predicate is one node of a filter condition tree.
type Predicate interface {
	serialize(sb *strings.Builder) error
}

type equalsPred struct {
	field string
	value any
}

type notEqualsPred struct {
	field string
	value any
}

type containsPred struct {
	field  string
	substr string
}

type inSetPred struct {
	field  string
	values []any
}

type nonEmptyPred struct {
	field string
}

type andPred struct {
	preds []Predicate
}

type orPred struct {
	preds []Predicate
}

// Equals matches records whose field equals value exactly.
func Equals(field string, value any) Predicate {
	return &equalsPred{field: field, value: value}
}

// NotEquals matches records whose field differs from value. Records missing
// the field do not match.
func NotEquals(field string, value any) Predicate {
	return &notEqualsPred{field: field, value: value}
}

// ContainsFold matches records whose field contains substr, case-insensitive
// and unanchored.
func ContainsFold(field, substr string) Predicate {
	return &containsPred{field: field, substr: strings.ToLower(substr)}
}

// InSet matches records whose field equals any of the given values.
func InSet(field string, values []any) Predicate {
	return &inSetPred{field: field, values: values}
}

// NonEmpty matches records whose field is present and not the empty string.
func NonEmpty(field string) Predicate {
	return &nonEmptyPred{field: field}
}

// And conjoins predicates. And() with no arguments matches every record.
func And(preds ...Predicate) Predicate {
	return &andPred{preds: preds}
}

// Or disjoins predicates. Or() with no arguments matches every record.
func Or(preds ...Predicate) Predicate {
	return &orPred{preds: preds}
}

// ValidateFieldName rejects caller-supplied field names that are not plain
// identifiers.
func ValidateFieldName(field string) error {
	if !fieldNamePattern.MatchString(field) {
		return errors.Newf("invalid field name %q", field).
			Component("query").
			Category(errors.CategoryValidation).
			Context("field", field).
			Build()
	}
	return nil
}

// FilterExpr serializes a predicate tree into a JSONata filter over the
// dataset array. A nil or empty predicate degenerates to the whole dataset.
func FilterExpr(p Predicate) (string, error) {
	if isEmptyPredicate(p) {
		return "$", nil
	}

	var sb strings.Builder
	sb.WriteString("$[")
	if err := p.serialize(&sb); err != nil {
		return "", err
	}
	sb.WriteString("]")
	return sb.String(), nil
}

// DistinctValuesExpr builds the expression returning the distinct non-empty
// values of one field. The array constructor around the inner filter keeps
// the argument an array even for zero or one matches.
func DistinctValuesExpr(field string) (string, error) {
	if err := ValidateFieldName(field); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("$distinct([$[")
	writeNonEmptyCond(&sb, field)
	sb.WriteString("].")
	writeField(&sb, field)
	sb.WriteString("])")
	return sb.String(), nil
}

func isEmptyPredicate(p Predicate) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *andPred:
		return len(v.preds) == 0
	case *orPred:
		return len(v.preds) == 0
	default:
		return false
	}
}

// writeField emits a backtick-quoted path step.
func writeField(sb *strings.Builder, field string) {
	sb.WriteString("`")
	sb.WriteString(field)
	sb.WriteString("`")
}

// writeLiteral emits a value as a JSON literal, which is valid JSONata and
// escapes all string metacharacters.
func writeLiteral(sb *strings.Builder, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.New(err).
			Component("query").
			Category(errors.CategoryValidation).
			Build()
	}
	sb.Write(raw)
	return nil
}

func writeNonEmptyCond(sb *strings.Builder, field string) {
	sb.WriteString("($exists(")
	writeField(sb, field)
	sb.WriteString(") and ")
	writeField(sb, field)
	sb.WriteString(` != "")`)
}

func (p *equalsPred) serialize(sb *strings.Builder) error {
	if err := ValidateFieldName(p.field); err != nil {
		return err
	}
	writeField(sb, p.field)
	sb.WriteString(" = ")
	return writeLiteral(sb, p.value)
}

func (p *notEqualsPred) serialize(sb *strings.Builder) error {
	if err := ValidateFieldName(p.field); err != nil {
		return err
	}
	writeField(sb, p.field)
	sb.WriteString(" != ")
	return writeLiteral(sb, p.value)
}

func (p *containsPred) serialize(sb *strings.Builder) error {
	if err := ValidateFieldName(p.field); err != nil {
		return err
	}
	sb.WriteString("($exists(")
	writeField(sb, p.field)
	sb.WriteString(") and $contains($lowercase(")
	writeField(sb, p.field)
	sb.WriteString("), ")
	if err := writeLiteral(sb, p.substr); err != nil {
		return err
	}
	sb.WriteString("))")
	return nil
}

func (p *inSetPred) serialize(sb *strings.Builder) error {
	if err := ValidateFieldName(p.field); err != nil {
		return err
	}
	writeField(sb, p.field)
	sb.WriteString(" in [")
	for i, v := range p.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeLiteral(sb, v); err != nil {
			return err
		}
	}
	sb.WriteString("]")
	return nil
}

func (p *nonEmptyPred) serialize(sb *strings.Builder) error {
	if err := ValidateFieldName(p.field); err != nil {
		return err
	}
	writeNonEmptyCond(sb, p.field)
	return nil
}

func (p *andPred) serialize(sb *strings.Builder) error {
	return serializeJoin(sb, p.preds, " and ")
}

func (p *orPred) serialize(sb *strings.Builder) error {
	return serializeJoin(sb, p.preds, " or ")
}

func serializeJoin(sb *strings.Builder, preds []Predicate, sep string) error {
	sb.WriteString("(")
	for i, p := range preds {
		if i > 0 {
			sb.WriteString(sep)
		}
		if err := p.serialize(sb); err != nil {
			return err
		}
	}
	sb.WriteString(")")
	return nil
}
