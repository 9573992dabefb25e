package query

// Normalize coerces an evaluator result into a slice. The evaluator collapses
// singleton results to a bare value and reports empty results as nil, so
// callers that expect "a list of records" go through here after every
// evaluation.
func Normalize(result any) []any {
	switch v := result.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	default:
		return []any{v}
	}
}
