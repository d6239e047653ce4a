package searchcore

import "fmt"

// Filter is the parsed shape of a query's filter, per spec §4.7: either a
// single opaque expression string handed to the index's own filter grammar,
// or a conjunction of clauses, where each clause is itself either a single
// expression (an implicit AND term) or a disjunction of expressions (an OR
// group).
type Filter struct {
	// Clauses is nil when the filter was a bare string (Expression holds it)
	// or absent altogether.
	Clauses []FilterClause
	// Expression holds a bare string filter. Only meaningful when Clauses is
	// nil and the filter was present.
	Expression string
	// Present distinguishes "no filter was supplied" from a filter that
	// happens to parse to the zero value.
	Present bool
}

// FilterClause is one element of a filter array: either a single expression
// (conjunctive) or a group of expressions to be disjoined.
type FilterClause struct {
	// Or holds the clause's expressions. A single-expression clause has
	// len(Or) == 1.
	Or []string
}

// ParseFilter parses a query's raw filter value (as decoded from JSON) per
// spec §4.7. v may be nil (no filter), a string, or a []any of strings and
// nested []any-of-strings. Anything else is ErrBadFilter.
func ParseFilter(v any) (Filter, error) {
	if v == nil {
		return Filter{}, nil
	}

	switch val := v.(type) {
	case string:
		return Filter{Expression: val, Present: true}, nil
	case []any:
		clauses, err := parseFilterArray(val)
		if err != nil {
			return Filter{}, err
		}

		return Filter{Clauses: clauses, Present: true}, nil
	default:
		return Filter{}, fmt.Errorf("%w: expected a string or array, got %T", ErrBadFilter, v)
	}
}

// parseFilterArray parses the top-level filter array: each element is
// either a string (atomic clause) or a nested array of strings
// (disjunction).
func parseFilterArray(elems []any) ([]FilterClause, error) {
	clauses := make([]FilterClause, 0, len(elems))

	for _, elem := range elems {
		switch e := elem.(type) {
		case string:
			clauses = append(clauses, FilterClause{Or: []string{e}})
		case []any:
			or, err := parseStringArray(e)
			if err != nil {
				return nil, err
			}

			clauses = append(clauses, FilterClause{Or: or})
		default:
			return nil, fmt.Errorf("%w: expected a string or an array of strings, got %T", ErrBadFilter, elem)
		}
	}

	return clauses, nil
}

// parseStringArray requires every element of elems to be a string.
func parseStringArray(elems []any) ([]string, error) {
	out := make([]string, 0, len(elems))

	for _, elem := range elems {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected a string in disjunction, got %T", ErrBadFilter, elem)
		}

		out = append(out, s)
	}

	return out, nil
}
