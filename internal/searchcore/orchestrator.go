package searchcore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// nowFunc is overridable in tests so ProcessingTimeMs assertions are
// deterministic.
var nowFunc = time.Now

// Orchestrator translates a SearchQuery into calls against an Index and
// assembles the resulting SearchResult, per spec §4.4.
type Orchestrator struct {
	Index     Index
	Formatter *Formatter
	Analyzer  Analyzer
}

// NewOrchestrator builds an Orchestrator backed by idx. Its Formatter is
// left nil, so Search builds one per query from that query's highlight tags
// and crop marker (falling back to the wire defaults).
func NewOrchestrator(idx Index) *Orchestrator {
	return &Orchestrator{
		Index:    idx,
		Analyzer: DefaultAnalyzer{},
	}
}

// Search implements spec §4.4 steps 1-8.
func (o *Orchestrator) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	start := nowFunc()

	offset, limit := ClampPagination(q.resolvedOffset(), q.resolvedLimit())

	filter, err := ParseFilter(q.Filter)
	if err != nil {
		return nil, err
	}

	outcome, err := o.Index.Search(ctx, q.queryText(), offset, limit, filter, q.Sort)
	if err != nil {
		if errors.Is(err, ErrBadSort) || errors.Is(err, ErrBadFilter) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrIndexFailure, err)
	}

	fields := o.Index.FieldsIDsMap()
	displayed := o.Index.DisplayedFieldIDs()
	toRetrieve := resolveToRetrieve(q.AttributesToRetrieve, displayed, fields)

	plan := BuildFormatPlan(q.AttributesToHighlight, q.AttributesToCrop, q.resolvedCropLength(), toRetrieve, displayed, fields)

	docs, err := o.Index.Documents(ctx, outcome.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexFailure, err)
	}

	formatter := o.Formatter
	if formatter == nil {
		formatter = NewFormatter(q.tags())
	}

	analyzer := o.Analyzer
	if analyzer == nil {
		analyzer = DefaultAnalyzer{}
	}

	hits := make([]SearchHit, 0, len(docs))

	for _, doc := range docs {
		projected := projectDocument(doc, toRetrieve, displayed, fields)

		if err := InsertGeoDistance(projected, q.Sort); err != nil {
			return nil, err
		}

		hit := SearchHit{Document: projected}

		if q.Matches {
			hit.MatchesInfo = ComputeMatches(projected, outcome.Matcher, analyzer)
		}

		if len(plan) > 0 {
			hit.Formatted = ApplyPlan(projected, plan, fields, outcome.Matcher, formatter)
		}

		hits = append(hits, hit)
	}

	result := &SearchResult{
		Query:            q.queryText(),
		Hits:             hits,
		NbHits:           len(outcome.Candidates),
		Offset:           offset,
		Limit:            limit,
		ExhaustiveNbHits: false,
		ProcessingTimeMs: nowFunc().Sub(start).Milliseconds(),
	}

	if len(q.FacetsDistribution) > 0 {
		dist, err := o.Index.FacetsDistribution(ctx, outcome.Candidates, q.FacetsDistribution)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIndexFailure, err)
		}

		result.FacetsDistribution = dist
		exhaustive := false
		result.ExhaustiveFacetsCount = &exhaustive
	}

	return result, nil
}

// resolveToRetrieve implements spec §4.4 step 3's attributesToRetrieve
// resolution: nil or "*" means every displayed field; otherwise names are
// resolved to ids and intersected with displayed.
func resolveToRetrieve(requested []string, displayed IDSet, fields FieldsIDsMap) IDSet {
	if len(requested) == 0 {
		return cloneIDSet(displayed)
	}

	for _, name := range requested {
		if name == "*" {
			return cloneIDSet(displayed)
		}
	}

	out := make(IDSet, len(requested))

	for _, name := range requested {
		id := fields.ID(name)
		if displayed.Has(id) {
			out.Add(id)
		}
	}

	return out
}

func cloneIDSet(s IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out.Add(id)
	}

	return out
}

// projectDocument builds the retrieved-document projection: a copy of doc
// containing only fields that are both in toRetrieve and displayed,
// preserving doc's own field order.
func projectDocument(doc *OrderedDoc, toRetrieve, displayed IDSet, fields FieldsIDsMap) *OrderedDoc {
	out := NewOrderedDoc()

	for _, key := range doc.Keys() {
		id := fields.ID(key)

		if !toRetrieve.Has(id) || !displayed.Has(id) {
			continue
		}

		value, _ := doc.Get(key)
		out.Set(key, value)
	}

	return out
}
