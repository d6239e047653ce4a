package searchcore

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// defaultHighlightPreTag and defaultHighlightPostTag are the wire-level
// default highlight tags (spec §6).
const (
	defaultHighlightPreTag  = "<em>"
	defaultHighlightPostTag = "</em>"
	defaultCropMarker       = "…" // …
)

// Tags bundles the configurable highlight tags and crop marker a query may
// override.
type Tags struct {
	HighlightPreTag  string
	HighlightPostTag string
	CropMarker       string
}

// DefaultTags returns the spec's wire-level defaults.
func DefaultTags() Tags {
	return Tags{
		HighlightPreTag:  defaultHighlightPreTag,
		HighlightPostTag: defaultHighlightPostTag,
		CropMarker:       defaultCropMarker,
	}
}

func (t Tags) withDefaults() Tags {
	if t.HighlightPreTag == "" && t.HighlightPostTag == "" && t.CropMarker == "" {
		return DefaultTags()
	}

	if t.CropMarker == "" {
		t.CropMarker = defaultCropMarker
	}

	return t
}

// Formatter turns document values into their highlighted/cropped
// presentation form, per spec §4.2.
type Formatter struct {
	Analyzer Analyzer
	Tags     Tags
}

// NewFormatter returns a Formatter using the DefaultAnalyzer and the given
// tags (zero-value Tags resolves to the wire defaults).
func NewFormatter(tags Tags) *Formatter {
	return &Formatter{Analyzer: DefaultAnalyzer{}, Tags: tags.withDefaults()}
}

// FormatValue formats value per spec §4.2: strings are tokenized, cropped
// and highlighted; numbers are stringified to their canonical decimal form
// and treated as strings; arrays and objects recurse with Crop cleared
// (Highlight still propagates); everything else passes through unchanged.
func (f *Formatter) FormatValue(value any, matcher Matcher, opts FormatOptions) any {
	switch v := value.(type) {
	case string:
		return f.FormatString(v, matcher, opts)
	case float64:
		return f.FormatString(formatNumber(v), matcher, opts)
	case int:
		return f.FormatString(strconv.Itoa(v), matcher, opts)
	case int64:
		return f.FormatString(strconv.FormatInt(v, 10), matcher, opts)
	case []any:
		inner := opts
		inner.Crop = nil

		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = f.FormatValue(elem, matcher, inner)
		}

		return out
	case map[string]any:
		inner := opts
		inner.Crop = nil

		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = f.FormatValue(val, matcher, inner)
		}

		return out
	case *OrderedDoc:
		inner := opts
		inner.Crop = nil

		out := NewOrderedDoc()
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			out.Set(k, f.FormatValue(val, matcher, inner))
		}

		return out
	default:
		return value
	}
}

// FormatString formats a single string value: tokenizes it with the
// formatter's Analyzer and applies FormatTokens.
func (f *Formatter) FormatString(s string, matcher Matcher, opts FormatOptions) string {
	tokens := f.Analyzer.Analyze(s)
	return FormatTokens(tokens, matcher, opts, f.Tags)
}

// FormatTokens implements the crop-then-highlight algorithm of spec §4.2
// directly over an already-tokenized stream, so tests can exercise exact
// token sequences (e.g. hand-built tokens covering a multi-byte emoji)
// without depending on a particular Analyzer's tokenization choices.
func FormatTokens(tokens []Token, matcher Matcher, opts FormatOptions, tags Tags) string {
	tags = tags.withDefaults()

	if len(tokens) == 0 {
		return ""
	}

	interval := selectInterval(tokens, matcher, opts.Crop)

	var b strings.Builder

	if interval.markerBefore {
		b.WriteString(tags.CropMarker)
	}

	for i := interval.start; i <= interval.end; i++ {
		tok := tokens[i]

		if opts.Highlight && tok.Kind == TokenWord {
			b.WriteString(highlightWord(tok, matcher, tags))
		} else {
			b.WriteString(tok.Source)
		}
	}

	if interval.markerAfter {
		b.WriteString(tags.CropMarker)
	}

	return b.String()
}

// highlightWord applies the highlight policy of spec §4.2 to a single word
// token: no match emits it verbatim; a full-length or boundary-invalid match
// wraps the whole word; otherwise the matched prefix is wrapped and the
// remainder is appended unwrapped.
func highlightWord(tok Token, matcher Matcher, tags Tags) string {
	k, ok := matcher.Match(tok)
	if !ok {
		return tok.Source
	}

	if k == len(tok.Source) || !validSplitBoundary(tok.Source, k) {
		return tags.HighlightPreTag + tok.Source + tags.HighlightPostTag
	}

	return tags.HighlightPreTag + tok.Source[:k] + tags.HighlightPostTag + tok.Source[k:]
}

// validSplitBoundary reports whether byte offset k in s falls on a valid
// UTF-8 rune boundary, so splitting there can never sever a multi-byte
// sequence (a combining character, an emoji) in two.
func validSplitBoundary(s string, k int) bool {
	if k < 0 || k > len(s) {
		return false
	}

	if k == len(s) {
		return true
	}

	return utf8.RuneStart(s[k])
}

// cropInterval is the closed [start, end] range of token indices selected
// by the crop algorithm, plus whether a crop marker belongs before/after it.
type cropInterval struct {
	start        int
	end          int
	markerBefore bool
	markerAfter  bool
}

// selectInterval implements the crop budget selection of spec §4.2. A nil
// or zero crop disables cropping: the whole token stream is the interval.
func selectInterval(tokens []Token, matcher Matcher, crop *int) cropInterval {
	full := cropInterval{start: 0, end: len(tokens) - 1}

	if crop == nil || *crop <= 0 {
		return full
	}

	budget := *crop

	matchIdx := firstMatchIndex(tokens, matcher)
	if matchIdx < 0 {
		return cropNoMatch(tokens, budget)
	}

	return cropAroundMatch(tokens, budget, matchIdx)
}

// firstMatchIndex returns the index of the first word token the matcher
// matches, or -1 if no token in the stream matches.
func firstMatchIndex(tokens []Token, matcher Matcher) int {
	for i, tok := range tokens {
		if tok.Kind != TokenWord {
			continue
		}

		if _, ok := matcher.Match(tok); ok {
			return i
		}
	}

	return -1
}

// cropNoMatch implements the no-match crop branch: emit tokens until
// word_count reaches budget; append a trailing marker iff tokens remain.
func cropNoMatch(tokens []Token, budget int) cropInterval {
	words := 0
	end := len(tokens) - 1

	for i, tok := range tokens {
		if tok.Kind == TokenWord {
			words++
		}

		if words >= budget {
			end = i
			break
		}
	}

	return cropInterval{
		start:       0,
		end:         end,
		markerAfter: end < len(tokens)-1,
	}
}

// cropAroundMatch implements the match-centered crop branch of spec §4.2.
func cropAroundMatch(tokens []Token, budget, matchIdx int) cropInterval {
	beforeBudget := budget / 2

	totalBefore := wordCount(tokens[:matchIdx])
	markerBefore := totalBefore > beforeBudget

	start := matchIdx
	kept := 0

	for start > 0 && kept < beforeBudget {
		start--

		if tokens[start].Kind == TokenWord {
			kept++
		}
	}

	var afterBudget int
	if markerBefore {
		afterBudget = budget - beforeBudget - 1
	} else {
		afterBudget = budget - totalBefore - 1
	}

	if afterBudget < 0 {
		afterBudget = 0
	}

	end := matchIdx
	taken := 0

	for i := matchIdx + 1; i < len(tokens); i++ {
		if taken >= afterBudget {
			break
		}

		end = i

		if tokens[i].Kind == TokenWord {
			taken++
		}
	}

	return cropInterval{
		start:        start,
		end:          end,
		markerBefore: markerBefore,
		markerAfter:  end < len(tokens)-1,
	}
}

// wordCount returns the number of word-classified tokens in tokens.
func wordCount(tokens []Token) int {
	n := 0

	for _, tok := range tokens {
		if tok.Kind == TokenWord {
			n++
		}
	}

	return n
}

// formatNumber stringifies a JSON number (float64) to its canonical decimal
// form: integral values print without a trailing ".0" or exponent.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
