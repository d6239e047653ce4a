package searchcore

// ComputeMatches walks doc and reports, per field, the byte offsets and
// lengths of every match within its string (and stringified-number) leaves,
// per spec §4.3. Fields with no matches are omitted from the result.
func ComputeMatches(doc *OrderedDoc, matcher Matcher, analyzer Analyzer) MatchesInfo {
	if analyzer == nil {
		analyzer = DefaultAnalyzer{}
	}

	out := make(MatchesInfo)

	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)

		matches := computeValueMatches(value, matcher, analyzer)
		if len(matches) > 0 {
			out[key] = matches
		}
	}

	return out
}

// computeValueMatches dispatches on the value's shape: string/number leaves
// are scanned directly; arrays recurse per-element (each element gets its
// own fresh byte cursor, since the analyzer receives a fresh string each
// time); objects recurse per-value; everything else contributes nothing.
func computeValueMatches(value any, matcher Matcher, analyzer Analyzer) []MatchInfo {
	switch v := value.(type) {
	case string:
		return computeStringMatches(v, matcher, analyzer)
	case float64:
		return computeStringMatches(formatNumber(v), matcher, analyzer)
	case int:
		return computeStringMatches(formatNumber(float64(v)), matcher, analyzer)
	case int64:
		return computeStringMatches(formatNumber(float64(v)), matcher, analyzer)
	case []any:
		var out []MatchInfo
		for _, elem := range v {
			out = append(out, computeValueMatches(elem, matcher, analyzer)...)
		}

		return out
	case map[string]any:
		var out []MatchInfo
		for _, elem := range v {
			out = append(out, computeValueMatches(elem, matcher, analyzer)...)
		}

		return out
	case *OrderedDoc:
		var out []MatchInfo
		for _, key := range v.Keys() {
			elem, _ := v.Get(key)
			out = append(out, computeValueMatches(elem, matcher, analyzer)...)
		}

		return out
	default:
		return nil
	}
}

// computeStringMatches scans a single string leaf, maintaining a running
// byte cursor advanced by every token's source length (word or separator),
// recording a MatchInfo for each word token the matcher matches.
func computeStringMatches(s string, matcher Matcher, analyzer Analyzer) []MatchInfo {
	tokens := analyzer.Analyze(s)

	var out []MatchInfo

	start := 0

	for _, tok := range tokens {
		if tok.Kind == TokenWord {
			if length, ok := matcher.Match(tok); ok {
				out = append(out, MatchInfo{Start: start, Length: length})
			}
		}

		start += len(tok.Source)
	}

	return out
}
