// Package search provides full-text search functionality for documentation.
package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	bleveSearch "github.com/blevesearch/bleve/v2/search"
	"github.com/findexhq/findex/internal/searchcore"
	"github.com/findexhq/findex/pkg/core"
)

// searchDocument is the internal representation of a document stored in the Bleve index.
type searchDocument struct {
	ID          string   `json:"id"`
	Repo        string   `json:"repo"`
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ContentType string   `json:"content_type,omitempty"`
	GeoLat      *float64 `json:"geo_lat,omitempty"`
	GeoLng      *float64 `json:"geo_lng,omitempty"`
}

// BleveEngine implements full-text search using Bleve embedded search library.
type BleveEngine struct {
	index           bleve.Index
	fieldsMap       *searchcore.MemFieldsIDsMap
	displayedFields searchcore.IDSet
}

// NewBleve creates a new Bleve search engine. It opens an existing index at indexPath,
// or creates a new one if it does not exist.
func NewBleve(indexPath string) (*BleveEngine, error) {
	index, err := bleve.Open(indexPath)
	if err != nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create bleve index: %w", err)
		}
	}

	fieldsMap := searchcore.NewMemFieldsIDsMap()
	displayed := make(searchcore.IDSet)

	for _, name := range []string{"id", "repo", "path", "title", "content", "content_type", "_geo"} {
		displayed.Add(fieldsMap.ID(name))
	}

	return &BleveEngine{index: index, fieldsMap: fieldsMap, displayedFields: displayed}, nil
}

// Index adds or updates a document in the search index.
func (e *BleveEngine) Index(_ context.Context, doc core.Document, plainText string) error { //nolint:gocritic // Document is passed by value for immutability
	searchDoc := searchDocument{
		ID:          doc.ID,
		Repo:        doc.Repo,
		Path:        doc.Path,
		Title:       doc.Title,
		Content:     plainText,
		ContentType: string(doc.ContentType),
	}

	if doc.Geo != nil {
		searchDoc.GeoLat = &doc.Geo.Lat
		searchDoc.GeoLng = &doc.Geo.Lng
	}

	if err := e.index.Index(doc.ID, searchDoc); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.ID, err)
	}

	return nil
}

// Remove deletes a document from the search index.
func (e *BleveEngine) Remove(_ context.Context, docID string) error {
	if err := e.index.Delete(docID); err != nil {
		return fmt.Errorf("failed to remove document %s from index: %w", docID, err)
	}

	return nil
}

// Search performs a full-text search query and returns matching results with highlighted fragments.
func (e *BleveEngine) Search(_ context.Context, query string, opts core.SearchOpts) (*core.SearchResults, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	q := buildSearchQuery(query)
	req := bleve.NewSearchRequestOptions(q, opts.Limit, opts.Offset, false)
	req.Highlight = bleve.NewHighlight()
	req.Fields = []string{"repo", "path", "title"}

	result, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]core.SearchResult, 0, len(result.Hits))

	for _, hit := range result.Hits {
		sr := core.SearchResult{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: extractFragments(hit.Fragments),
		}

		if repo, ok := hit.Fields["repo"].(string); ok {
			sr.Repo = repo
		}

		if path, ok := hit.Fields["path"].(string); ok {
			sr.Path = path
		}

		if title, ok := hit.Fields["title"].(string); ok {
			sr.Title = title
		}

		hits = append(hits, sr)
	}

	return &core.SearchResults{
		Hits:     hits,
		Total:    result.Total,
		Duration: result.Took,
	}, nil
}

// listByRepoPageSize bounds a single ListByRepo page; repos with more
// documents than this are paged through automatically.
const listByRepoPageSize = 10000

// ListByRepo returns the ids of every document indexed under repo.
func (e *BleveEngine) ListByRepo(ctx context.Context, repo string) ([]string, error) {
	tq := bleve.NewTermQuery(repo)
	tq.SetField("repo")

	var ids []string

	from := 0

	for {
		req := bleve.NewSearchRequestOptions(tq, listByRepoPageSize, from, false)

		result, err := e.index.SearchInContext(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("list documents for repo %s: %w", repo, err)
		}

		for _, hit := range result.Hits {
			ids = append(ids, hit.ID)
		}

		from += len(result.Hits)
		if len(result.Hits) < listByRepoPageSize || uint64(from) >= result.Total {
			break
		}
	}

	return ids, nil
}

// Close closes the Bleve index.
func (e *BleveEngine) Close() error {
	if err := e.index.Close(); err != nil {
		return fmt.Errorf("failed to close bleve index: %w", err)
	}

	return nil
}

// DocCount returns the number of documents in the index.
func (e *BleveEngine) DocCount() (uint64, error) {
	count, err := e.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return count, nil
}

// minFuzzyTermLength is the minimum term length required to apply fuzzy matching.
// Shorter terms produce too many false-positive matches.
const minFuzzyTermLength = 4

// longTermThreshold is the term length at which fuzzy matching uses a higher edit distance.
const longTermThreshold = 7

// queryTerm represents a single parsed search term.
type queryTerm struct {
	text   string
	phrase bool // true when the term was enclosed in double quotes
}

// splitQueryTerms parses user input into individual search terms.
// Double-quoted substrings are treated as phrase terms; unquoted words are split on whitespace.
func splitQueryTerms(input string) []queryTerm {
	var terms []queryTerm

	input = strings.TrimSpace(input)
	if input == "" {
		return terms
	}

	i := 0
	for i < len(input) {
		// Skip whitespace.
		if input[i] == ' ' || input[i] == '\t' {
			i++
			continue
		}

		// Handle quoted phrase.
		if input[i] == '"' {
			end := strings.IndexByte(input[i+1:], '"')
			if end == -1 {
				// No closing quote -- treat the rest as a single phrase.
				phrase := strings.TrimSpace(input[i+1:])
				if phrase != "" {
					terms = append(terms, queryTerm{text: phrase, phrase: true})
				}

				break
			}

			phrase := strings.TrimSpace(input[i+1 : i+1+end])
			if phrase != "" {
				terms = append(terms, queryTerm{text: phrase, phrase: true})
			}

			i += end + 2 // skip past closing quote

			continue
		}

		// Handle unquoted word.
		end := strings.IndexAny(input[i:], " \t")
		if end == -1 {
			terms = append(terms, queryTerm{text: input[i:]})

			break
		}

		terms = append(terms, queryTerm{text: input[i : i+end]})
		i += end
	}

	return terms
}

// buildSearchQuery constructs a hybrid Bleve query from user input.
// For each term it creates a disjunction of match, prefix, and fuzzy queries
// targeting both title and content fields with appropriate boost values.
// Multiple terms are combined with a conjunction so all terms must match.
func buildSearchQuery(userQuery string) bleveQuery.Query {
	terms := splitQueryTerms(userQuery)
	if len(terms) == 0 {
		return bleve.NewMatchNoneQuery()
	}

	termQueries := make([]bleveQuery.Query, 0, len(terms))

	for _, term := range terms {
		var disj bleveQuery.Query
		if term.phrase {
			disj = buildPhraseQueries(term.text)
		} else {
			disj = buildTermQueries(term.text)
		}

		termQueries = append(termQueries, disj)
	}

	if len(termQueries) == 1 {
		return termQueries[0]
	}

	return bleve.NewConjunctionQuery(termQueries...)
}

// buildPhraseQueries creates a disjunction of MatchPhraseQuery for title and content fields.
func buildPhraseQueries(phrase string) bleveQuery.Query {
	titleQ := bleve.NewMatchPhraseQuery(phrase)
	titleQ.SetField("title")
	titleQ.SetBoost(10.0)

	contentQ := bleve.NewMatchPhraseQuery(phrase)
	contentQ.SetField("content")
	contentQ.SetBoost(5.0)

	return bleve.NewDisjunctionQuery(titleQ, contentQ)
}

// buildTermQueries creates a disjunction of match, prefix, and fuzzy queries
// for a single non-phrase term, targeting both title and content fields.
func buildTermQueries(term string) bleveQuery.Query {
	subQueries := make([]bleveQuery.Query, 0, 6) //nolint:mnd // up to 6 sub-queries: match, prefix, fuzzy for title and content

	// Exact/analyzed match -- highest priority.
	titleMatch := bleve.NewMatchQuery(term)
	titleMatch.SetField("title")
	titleMatch.SetBoost(6.0)

	contentMatch := bleve.NewMatchQuery(term)
	contentMatch.SetField("content")
	contentMatch.SetBoost(3.0)

	subQueries = append(subQueries, titleMatch, contentMatch)

	// Prefix match -- medium priority.
	lowered := strings.ToLower(term)

	titlePrefix := bleve.NewPrefixQuery(lowered)
	titlePrefix.SetField("title")
	titlePrefix.SetBoost(3.0)

	contentPrefix := bleve.NewPrefixQuery(lowered)
	contentPrefix.SetField("content")
	contentPrefix.SetBoost(1.5)

	subQueries = append(subQueries, titlePrefix, contentPrefix)

	// Fuzzy match -- lowest priority (only for terms long enough to avoid noise).
	if len(term) >= minFuzzyTermLength {
		fuzziness := 1
		if len(term) >= longTermThreshold {
			fuzziness = 2
		}

		titleFuzzy := bleve.NewFuzzyQuery(lowered)
		titleFuzzy.SetField("title")
		titleFuzzy.SetFuzziness(fuzziness)
		titleFuzzy.SetBoost(1.0)

		contentFuzzy := bleve.NewFuzzyQuery(lowered)
		contentFuzzy.SetField("content")
		contentFuzzy.SetFuzziness(fuzziness)
		contentFuzzy.SetBoost(0.5)

		subQueries = append(subQueries, titleFuzzy, contentFuzzy)
	}

	return bleve.NewDisjunctionQuery(subQueries...)
}

func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.IncludeTermVectors = true

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	keywordFieldMapping.Store = true

	numericFieldMapping := bleve.NewNumericFieldMapping()
	numericFieldMapping.Store = true

	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("repo", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("path", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("content_type", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("geo_lat", numericFieldMapping)
	docMapping.AddFieldMappingsAt("geo_lng", numericFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func extractFragments(fragments bleveSearch.FieldFragmentMap) []string {
	result := make([]string, 0, len(fragments))

	for _, frags := range fragments {
		result = append(result, frags...)
	}

	return result
}

// searchCoreCandidateCap bounds how many matching documents the structured
// JSON search API considers as candidates for one query, before pagination,
// facet distribution and geo sorting are applied.
const searchCoreCandidateCap = 1000

// NewSearchCoreIndex adapts engine to the searchcore.Index contract consumed
// by the structured JSON search API's Orchestrator, reusing the same
// query-building logic as the HTML portal's Search method.
func NewSearchCoreIndex(engine *BleveEngine) searchcore.Index {
	return &searchCoreAdapter{engine: engine}
}

type searchCoreAdapter struct {
	engine *BleveEngine
}

// Search implements searchcore.Index.
func (a *searchCoreAdapter) Search(
	ctx context.Context, q string, offset, limit int, filter searchcore.Filter, sortBy []string,
) (searchcore.SearchOutcome, error) {
	bq := buildSearchQuery(q)

	if fq := buildFilterQuery(filter); fq != nil {
		bq = bleve.NewConjunctionQuery(bq, fq)
	}

	req := bleve.NewSearchRequestOptions(bq, searchCoreCandidateCap, 0, false)
	req.Fields = []string{"repo", "path", "geo_lat", "geo_lng"}
	req.IncludeLocations = true

	result, err := a.engine.index.SearchInContext(ctx, req)
	if err != nil {
		return searchcore.SearchOutcome{}, fmt.Errorf("search failed: %w", err)
	}

	terms := make(map[string]int)
	geoByID := make(map[string]searchcore.GeoPoint, len(result.Hits))
	candidates := make([]string, 0, len(result.Hits))

	for _, hit := range result.Hits {
		candidates = append(candidates, hit.ID)
		collectMatchTerms(hit, terms)

		if point, ok := geoFromFields(hit.Fields); ok {
			geoByID[hit.ID] = point
		}
	}

	if point, ok, geoErr := searchcore.FindGeoSort(sortBy); geoErr == nil && ok {
		sortCandidatesByGeo(candidates, geoByID, point, geoSortDescending(sortBy))
	}

	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}

	var page []string
	if offset < len(candidates) {
		page = candidates[offset:end]
	}

	return searchcore.SearchOutcome{
		Matcher:     searchcore.NewBleveMatcher(terms),
		DocumentIDs: page,
		Candidates:  candidates,
	}, nil
}

// Documents implements searchcore.Index, fetching the stored record for
// each id and preserving the requested order.
func (a *searchCoreAdapter) Documents(ctx context.Context, ids []string) ([]*searchcore.OrderedDoc, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery(ids), len(ids), 0, false)
	req.Fields = []string{"id", "repo", "path", "title", "content", "content_type", "geo_lat", "geo_lng"}

	result, err := a.engine.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch documents failed: %w", err)
	}

	byID := make(map[string]*bleveSearch.DocumentMatch, len(result.Hits))
	for _, hit := range result.Hits {
		byID[hit.ID] = hit
	}

	docs := make([]*searchcore.OrderedDoc, 0, len(ids))

	for _, id := range ids {
		hit, ok := byID[id]
		if !ok {
			continue
		}

		doc := searchcore.NewOrderedDoc()
		doc.Set("id", id)

		if v, ok := hit.Fields["repo"].(string); ok {
			doc.Set("repo", v)
		}

		if v, ok := hit.Fields["path"].(string); ok {
			doc.Set("path", v)
		}

		if v, ok := hit.Fields["title"].(string); ok {
			doc.Set("title", v)
		}

		if v, ok := hit.Fields["content"].(string); ok {
			doc.Set("content", v)
		}

		if v, ok := hit.Fields["content_type"].(string); ok && v != "" {
			doc.Set("content_type", v)
		}

		if point, ok := geoFromFields(hit.Fields); ok {
			doc.Set("_geo", map[string]any{"lat": point.Lat, "lng": point.Lng})
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// facetableFields are the only fields this index tracks distinct-value
// counts for.
var facetableFields = []string{"repo", "content_type"}

// FacetsDistribution implements searchcore.Index.
func (a *searchCoreAdapter) FacetsDistribution(
	ctx context.Context, candidates []string, fields []string,
) (map[string]map[string]int, error) {
	wantAll := false

	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == "*" {
			wantAll = true
		}

		want[f] = true
	}

	docs, err := a.Documents(ctx, candidates)
	if err != nil {
		return nil, err
	}

	dist := make(map[string]map[string]int)

	for _, name := range facetableFields {
		if !wantAll && !want[name] {
			continue
		}

		counts := make(map[string]int)

		for _, doc := range docs {
			v, ok := doc.Get(name)
			if !ok {
				continue
			}

			s, ok := v.(string)
			if !ok || s == "" {
				continue
			}

			counts[s]++
		}

		dist[name] = counts
	}

	return dist, nil
}

// FieldsIDsMap implements searchcore.Index.
func (a *searchCoreAdapter) FieldsIDsMap() searchcore.FieldsIDsMap {
	return a.engine.fieldsMap
}

// DisplayedFieldIDs implements searchcore.Index.
func (a *searchCoreAdapter) DisplayedFieldIDs() searchcore.IDSet {
	return a.engine.displayedFields
}

// collectMatchTerms records, for every term bleve matched in hit, the
// matched term's own byte length -- the whole term is considered matched
// wherever it appears as a token's normalized text.
func collectMatchTerms(hit *bleveSearch.DocumentMatch, terms map[string]int) {
	for _, fieldLocs := range hit.Locations {
		for term, locs := range fieldLocs {
			if len(locs) == 0 {
				continue
			}

			if _, ok := terms[term]; !ok {
				terms[term] = len(term)
			}
		}
	}
}

func geoFromFields(fields map[string]any) (searchcore.GeoPoint, bool) {
	lat, ok := fields["geo_lat"].(float64)
	if !ok {
		return searchcore.GeoPoint{}, false
	}

	lng, ok := fields["geo_lng"].(float64)
	if !ok {
		return searchcore.GeoPoint{}, false
	}

	return searchcore.GeoPoint{Lat: lat, Lng: lng}, true
}

// geoSortDescending reports whether the first "_geoPoint" sort entry asks
// for descending (farthest-first) order.
func geoSortDescending(sortBy []string) bool {
	for _, entry := range sortBy {
		if strings.Contains(entry, "_geoPoint") {
			return strings.HasSuffix(entry, ":desc")
		}
	}

	return false
}

// sortCandidatesByGeo reorders ids in place by great-circle distance from
// origin, ascending unless desc is set. ids without a known geo point sort
// last, in their original relative order.
func sortCandidatesByGeo(ids []string, geoByID map[string]searchcore.GeoPoint, origin searchcore.GeoPoint, desc bool) {
	distance := func(id string) (float64, bool) {
		point, ok := geoByID[id]
		if !ok {
			return 0, false
		}

		return searchcore.HaversineMeters(point, origin), true
	}

	sort.SliceStable(ids, func(i, j int) bool {
		di, oki := distance(ids[i])
		dj, okj := distance(ids[j])

		switch {
		case !oki && !okj:
			return false
		case !oki:
			return false
		case !okj:
			return true
		case desc:
			return di > dj
		default:
			return di < dj
		}
	})
}

// filterExprRE matches a single equality clause of the form `field = value`
// or `field = "value"`, the only filter operator this index supports.
var filterExprRE = regexp.MustCompile(`^\s*(\w+)\s*=\s*"?([^"]*)"?\s*$`)

// buildFilterQuery translates a parsed searchcore.Filter into a Bleve query,
// ANDing clauses together and ORing each clause's alternatives, per the
// filter grammar.
func buildFilterQuery(filter searchcore.Filter) bleveQuery.Query {
	if !filter.Present {
		return nil
	}

	if filter.Clauses == nil {
		return buildFilterExpression(filter.Expression)
	}

	clauseQueries := make([]bleveQuery.Query, 0, len(filter.Clauses))

	for _, clause := range filter.Clauses {
		orQueries := make([]bleveQuery.Query, 0, len(clause.Or))

		for _, expr := range clause.Or {
			orQueries = append(orQueries, buildFilterExpression(expr))
		}

		switch len(orQueries) {
		case 0:
			continue
		case 1:
			clauseQueries = append(clauseQueries, orQueries[0])
		default:
			clauseQueries = append(clauseQueries, bleve.NewDisjunctionQuery(orQueries...))
		}
	}

	switch len(clauseQueries) {
	case 0:
		return nil
	case 1:
		return clauseQueries[0]
	default:
		return bleve.NewConjunctionQuery(clauseQueries...)
	}
}

// buildFilterExpression parses a single filter expression and builds the
// equality query it describes. Unrecognized fields or malformed expressions
// match nothing, rather than being silently ignored.
func buildFilterExpression(expr string) bleveQuery.Query {
	m := filterExprRE.FindStringSubmatch(expr)
	if m == nil {
		return bleve.NewMatchNoneQuery()
	}

	field, value := m[1], m[2]

	switch field {
	case "repo", "path", "id", "content_type":
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)

		return tq
	default:
		return bleve.NewMatchNoneQuery()
	}
}
