package searchcore

// SearchQuery is the wire-level request shape of spec §6. It decodes with
// json.Decoder.DisallowUnknownFields so that unrecognized fields are
// rejected as BadRequest by the caller (pkg/api), rather than silently
// ignored.
type SearchQuery struct {
	Q                     *string  `json:"q,omitempty"`
	Offset                *uint    `json:"offset,omitempty"`
	Limit                 *uint    `json:"limit,omitempty"`
	AttributesToRetrieve  []string `json:"attributesToRetrieve,omitempty"`
	AttributesToCrop      []string `json:"attributesToCrop,omitempty"`
	CropLength            *uint    `json:"cropLength,omitempty"`
	AttributesToHighlight []string `json:"attributesToHighlight,omitempty"`
	Matches               bool     `json:"matches,omitempty"`
	Filter                any      `json:"filter,omitempty"`
	Sort                  []string `json:"sort,omitempty"`
	FacetsDistribution    []string `json:"facetsDistribution,omitempty"`
	HighlightPreTag       string   `json:"highlightPreTag,omitempty"`
	HighlightPostTag      string   `json:"highlightPostTag,omitempty"`
	CropMarker            string   `json:"cropMarker,omitempty"`
}

const (
	defaultLimit      = 20
	defaultCropLength = 10
)

// queryText returns q.Q, or "" when unset.
func (q SearchQuery) queryText() string {
	if q.Q == nil {
		return ""
	}

	return *q.Q
}

// resolvedOffset returns the requested offset, or 0 when unset.
func (q SearchQuery) resolvedOffset() int {
	if q.Offset == nil {
		return 0
	}

	return int(*q.Offset)
}

// resolvedLimit returns the requested limit, defaulting to 20 when unset.
func (q SearchQuery) resolvedLimit() int {
	if q.Limit == nil {
		return defaultLimit
	}

	return int(*q.Limit)
}

// resolvedCropLength returns the default crop budget, defaulting to 10.
func (q SearchQuery) resolvedCropLength() int {
	if q.CropLength == nil {
		return defaultCropLength
	}

	return int(*q.CropLength)
}

// tags resolves the query's highlight/crop tag overrides against the wire
// defaults.
func (q SearchQuery) tags() Tags {
	t := Tags{
		HighlightPreTag:  q.HighlightPreTag,
		HighlightPostTag: q.HighlightPostTag,
		CropMarker:       q.CropMarker,
	}

	d := DefaultTags()

	if t.HighlightPreTag == "" {
		t.HighlightPreTag = d.HighlightPreTag
	}

	if t.HighlightPostTag == "" {
		t.HighlightPostTag = d.HighlightPostTag
	}

	if t.CropMarker == "" {
		t.CropMarker = d.CropMarker
	}

	return t
}

// ClampPagination applies spec §4.4 step 1: offset is clamped to
// HARD_RESULT_LIMIT, and limit is clamped so offset+limit never exceeds it.
func ClampPagination(offset, limit int) (clampedOffset, clampedLimit int) {
	if offset < 0 {
		offset = 0
	}

	if offset > HARD_RESULT_LIMIT {
		offset = HARD_RESULT_LIMIT
	}

	remaining := HARD_RESULT_LIMIT - offset
	if limit < 0 {
		limit = 0
	}

	if limit > remaining {
		limit = remaining
	}

	return offset, limit
}
