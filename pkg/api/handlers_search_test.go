//go:build !compile

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/findexhq/findex/internal/searchcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearchIndex is a hand-written test double for searchcore.Index,
// matching the in-package fakeIndex used by the orchestrator's own tests.
type fakeSearchIndex struct {
	fields    *searchcore.MemFieldsIDsMap
	displayed searchcore.IDSet
	docs      map[string]*searchcore.OrderedDoc
	ids       []string
}

func newFakeSearchIndex() *fakeSearchIndex {
	return &fakeSearchIndex{
		fields: searchcore.NewMemFieldsIDsMap(),
		docs:   make(map[string]*searchcore.OrderedDoc),
	}
}

func (f *fakeSearchIndex) Search(
	context.Context, string, int, int, searchcore.Filter, []string,
) (searchcore.SearchOutcome, error) {
	return searchcore.SearchOutcome{DocumentIDs: f.ids, Candidates: f.ids}, nil
}

func (f *fakeSearchIndex) Documents(_ context.Context, ids []string) ([]*searchcore.OrderedDoc, error) {
	out := make([]*searchcore.OrderedDoc, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.docs[id])
	}

	return out, nil
}

func (f *fakeSearchIndex) FacetsDistribution(
	context.Context, []string, []string,
) (map[string]map[string]int, error) {
	return nil, nil
}

func (f *fakeSearchIndex) FieldsIDsMap() searchcore.FieldsIDsMap { return f.fields }

func (f *fakeSearchIndex) DisplayedFieldIDs() searchcore.IDSet { return f.displayed }

func TestSearchAPI_Success(t *testing.T) {
	idx := newFakeSearchIndex()

	title := idx.fields.ID("title")
	idx.displayed = searchcore.NewIDSet(title)

	doc := searchcore.NewOrderedDoc()
	doc.Set("title", "Getting Started")
	idx.docs["1"] = doc
	idx.ids = []string{"1"}

	a := &API{orchestrator: searchcore.NewOrchestrator(idx)}

	q := "getting"
	body, err := json.Marshal(searchcore.SearchQuery{Q: &q})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.searchAPI(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result searchcore.SearchResult

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.Hits, 1)
}

func TestSearchAPI_NotWired(t *testing.T) {
	a := &API{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	a.searchAPI(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchAPI_InvalidJSON(t *testing.T) {
	a := &API{orchestrator: searchcore.NewOrchestrator(newFakeSearchIndex())}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", strings.NewReader("{invalid"))
	rec := httptest.NewRecorder()

	a.searchAPI(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAPI_UnknownField(t *testing.T) {
	a := &API{orchestrator: searchcore.NewOrchestrator(newFakeSearchIndex())}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", strings.NewReader(`{"bogus": true}`))
	rec := httptest.NewRecorder()

	a.searchAPI(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAPI_BadFilter(t *testing.T) {
	a := &API{orchestrator: searchcore.NewOrchestrator(newFakeSearchIndex())}

	body, err := json.Marshal(map[string]any{"filter": 42})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.searchAPI(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
