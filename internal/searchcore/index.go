package searchcore

import "context"

// SearchOutcome is what the Index external collaborator returns for one
// query execution: the ranked page of document ids, a Matcher scoped to
// that query, and the full candidate set (pre-pagination) used to compute
// nb_hits and drive facet distribution.
type SearchOutcome struct {
	Matcher     Matcher
	DocumentIDs []string
	Candidates  []string
}

// Index is the external collaborator this core depends on: the storage-
// level search primitive, document retrieval by id, and facet aggregation.
// Spec §9 / Design notes describe these as interfaces the core consumes
// without depending on any concrete engine; pkg/repo/search.BleveEngine is
// the concrete implementation backing it.
type Index interface {
	// Search executes q with the given pagination, filter and sort, and
	// returns the page of results plus the full candidate set.
	Search(ctx context.Context, q string, offset, limit int, filter Filter, sort []string) (SearchOutcome, error)
	// Documents fetches the raw stored record for each id, in the given
	// order, preserving each record's own field insertion order.
	Documents(ctx context.Context, ids []string) ([]*OrderedDoc, error)
	// FacetsDistribution computes, for each of fields (or every facet field
	// when fields contains "*"), the count of each distinct value among
	// candidates.
	FacetsDistribution(ctx context.Context, candidates []string, fields []string) (map[string]map[string]int, error)
	// FieldsIDsMap returns the query-scoped field name <-> FieldID mapping.
	FieldsIDsMap() FieldsIDsMap
	// DisplayedFieldIDs returns the set of fields a client may receive.
	DisplayedFieldIDs() IDSet
}
