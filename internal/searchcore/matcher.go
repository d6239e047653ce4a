package searchcore

// Matcher answers, for a single word token, how many leading bytes of its
// source slice form a match. Returning ok=false means the token is not
// highlighted and contributes no MatchInfo. Returning (k, true) with
// 0 <= k <= len(token.Source) means the first k bytes of the source slice
// are matched. The formatter and match-info computer never consult a
// Matcher for separator tokens.
type Matcher interface {
	Match(token Token) (length int, ok bool)
}

// TestMatcher is a deterministic, map-backed Matcher keyed by a token's
// normalized text, for use in tests and fixtures. It mirrors the reference
// implementation's map-of-normalized-text-to-optional-length matcher.
type TestMatcher struct {
	matches map[string]int
}

// NewTestMatcher builds a TestMatcher from a normalized-text -> matched-byte
// -length mapping. A key absent from m means "no match" for that token.
func NewTestMatcher(m map[string]int) TestMatcher {
	cp := make(map[string]int, len(m))
	for k, v := range m {
		cp[k] = v
	}

	return TestMatcher{matches: cp}
}

// Match implements Matcher.
func (t TestMatcher) Match(token Token) (int, bool) {
	if token.Kind != TokenWord {
		return 0, false
	}

	k, ok := t.matches[token.Normalized]

	return k, ok
}

// BleveMatcher adapts a set of matched query terms (as surfaced by the
// underlying index's matching-words structure) into the Matcher contract.
// Each entry maps a normalized term to the prefix-byte-length that should be
// considered matched wherever that term appears as a token's normalized
// text. This plays the role the spec calls IndexMatcher: bleve.v2's
// search.DocumentMatch.Locations give per-hit, per-field byte spans of the
// matched terms, which the index adapter (pkg/repo/search) condenses into
// this normalized-term -> length map before handing it to the formatter.
type BleveMatcher struct {
	terms map[string]int
}

// NewBleveMatcher builds a BleveMatcher from a normalized-term -> matched
// -byte-length map, as produced by the bleve index adapter from a hit's
// locations and the query terms that produced them.
func NewBleveMatcher(terms map[string]int) *BleveMatcher {
	cp := make(map[string]int, len(terms))
	for k, v := range terms {
		cp[k] = v
	}

	return &BleveMatcher{terms: cp}
}

// Match implements Matcher.
func (b *BleveMatcher) Match(token Token) (int, bool) {
	if token.Kind != TokenWord || b == nil {
		return 0, false
	}

	k, ok := b.terms[token.Normalized]

	return k, ok
}
