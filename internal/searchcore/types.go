package searchcore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// FieldID is a stable integer identifier for a field name, scoped to one
// query. It is handed out by a FieldsIDsMap.
type FieldID int

// FieldsIDsMap is a bijection between field names and FieldIDs, supplied by
// the index for the duration of one query. Looking up an unknown name with
// ID adds it to the mapping.
type FieldsIDsMap interface {
	// ID returns the FieldID for name, allocating one if it does not yet exist.
	ID(name string) FieldID
	// Name returns the field name for id, or "" and false if unknown.
	Name(id FieldID) (string, bool)
}

// IDSet is a small set of FieldIDs.
type IDSet map[FieldID]struct{}

// NewIDSet builds an IDSet from the given ids.
func NewIDSet(ids ...FieldID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// Has reports whether id is a member of the set.
func (s IDSet) Has(id FieldID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id FieldID) {
	s[id] = struct{}{}
}

// FormatOptions is the per-field formatting directive resolved from a query's
// attributesToHighlight/attributesToCrop lists.
type FormatOptions struct {
	// Crop is the word budget for cropping, or nil when cropping is disabled
	// for this field.
	Crop *int
	// Highlight enables prefix-highlight wrapping for matched words.
	Highlight bool
}

// Merge combines two FormatOptions per the spec's merge law: Highlight is
// the logical OR of both sides; Crop is first-set-wins (a's crop is kept
// unless a has none, in which case b's is used).
func (a FormatOptions) Merge(b FormatOptions) FormatOptions {
	out := FormatOptions{
		Highlight: a.Highlight || b.Highlight,
		Crop:      a.Crop,
	}

	if out.Crop == nil {
		out.Crop = b.Crop
	}

	return out
}

// MatchInfo is a single match location inside a string leaf, in bytes,
// relative to the original (unformatted) string.
type MatchInfo struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// MatchesInfo maps a field name to the ordered list of matches found within
// it. Only fields with at least one match appear. Field names are kept in
// sorted order on output (see MarshalJSON).
type MatchesInfo map[string][]MatchInfo

// MarshalJSON renders MatchesInfo with fields in sorted key order, as the
// spec's "MatchesInfo enumerates fields in sorted name order" requires.
func (m MatchesInfo) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal matches-info key %q: %w", k, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(m[k])
		if err != nil {
			return nil, fmt.Errorf("marshal matches-info value for %q: %w", k, err)
		}

		buf.Write(valJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// FormatPlan maps a FieldID to the FormatOptions that govern it. An empty
// plan means no field is formatted and _formatted is omitted entirely.
type FormatPlan map[FieldID]FormatOptions

// OrderedDoc is a field-name-to-value mapping that preserves the order in
// which keys were first inserted, matching the spec's requirement that
// Document output preserve insertion order.
type OrderedDoc struct {
	values map[string]any
	keys   []string
}

// NewOrderedDoc returns an empty OrderedDoc.
func NewOrderedDoc() *OrderedDoc {
	return &OrderedDoc{values: make(map[string]any)}
}

// Set inserts or overwrites key with value. Overwriting an existing key does
// not change its position in iteration order.
func (d *OrderedDoc) Set(key string, value any) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}

	d.values[key] = value
}

// Get returns the value stored at key, and whether it was present.
func (d *OrderedDoc) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Delete removes key from the document, if present.
func (d *OrderedDoc) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}

	delete(d.values, key)

	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
func (d *OrderedDoc) Keys() []string {
	return d.keys
}

// Len returns the number of fields.
func (d *OrderedDoc) Len() int {
	return len(d.keys)
}

// Clone returns a shallow copy of d; the two documents share no key slice or
// value map storage, but nested values (maps/slices) are not deep-copied.
func (d *OrderedDoc) Clone() *OrderedDoc {
	out := &OrderedDoc{
		values: make(map[string]any, len(d.values)),
		keys:   make([]string, len(d.keys)),
	}

	copy(out.keys, d.keys)

	for k, v := range d.values {
		out.values[k] = v
	}

	return out
}

// MarshalJSON renders the document as a JSON object with keys in insertion
// order.
func (d *OrderedDoc) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal document key %q: %w", k, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal document value for %q: %w", k, err)
		}

		buf.Write(valJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// SearchHit is a single result row: the retrieved document projection, its
// formatted fields (omitted when empty), and its per-field match offsets
// (present iff the query asked for matches).
type SearchHit struct {
	Document    *OrderedDoc
	Formatted   *OrderedDoc
	MatchesInfo MatchesInfo
}

// MarshalJSON flattens the document fields to the top level alongside
// _formatted and _matchesInfo, matching the wire contract in spec §6.
func (h SearchHit) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true

	writeField := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("marshal hit key %q: %w", key, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal hit value for %q: %w", key, err)
		}

		buf.Write(valJSON)

		return nil
	}

	if h.Document != nil {
		for _, k := range h.Document.Keys() {
			v, _ := h.Document.Get(k)
			if err := writeField(k, v); err != nil {
				return nil, err
			}
		}
	}

	if h.Formatted != nil && h.Formatted.Len() > 0 {
		if err := writeField("_formatted", h.Formatted); err != nil {
			return nil, err
		}
	}

	if h.MatchesInfo != nil {
		if err := writeField("_matchesInfo", h.MatchesInfo); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// SearchResult is the top-level response of a search query.
type SearchResult struct {
	FacetsDistribution    map[string]map[string]int `json:"facetsDistribution,omitempty"`
	ExhaustiveFacetsCount *bool                      `json:"exhaustiveFacetsCount,omitempty"`
	Query                 string                     `json:"query"`
	Hits                  []SearchHit                `json:"hits"`
	NbHits                int                        `json:"nbHits"`
	Offset                int                        `json:"offset"`
	Limit                 int                        `json:"limit"`
	ProcessingTimeMs      int64                      `json:"processingTimeMs"`
	ExhaustiveNbHits      bool                       `json:"exhaustiveNbHits"`
}
