package searchcore

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TokenKind classifies a Token as either a word (candidate for matching and
// highlighting) or a separator (punctuation, whitespace; never matched).
type TokenKind int

const (
	// TokenWord is a run of letters/digits eligible for matching.
	TokenWord TokenKind = iota
	// TokenSeparator is everything else: whitespace, punctuation, symbols.
	TokenSeparator
)

// Token is one element of the stream an Analyzer produces for a string. It
// carries both the source slice (verbatim bytes from the original string)
// and the normalized text used for match lookup; the two may differ in byte
// length (accent stripping, case folding), which is exactly the mismatch the
// formatter's character-boundary guard exists to handle.
type Token struct {
	Source     string
	Normalized string
	Kind       TokenKind
}

// Analyzer produces the (source_slice, token) pairs covering a string
// exactly, in order. Implementations are free to classify runs of
// characters however they like; the only contract is that concatenating
// every Source in order reproduces the input exactly.
type Analyzer interface {
	Analyze(s string) []Token
}

// DefaultAnalyzer is a simple Unicode-aware analyzer: it splits a string
// into runs of letters/digits (words) and everything else (separators), and
// normalizes word text by NFKD decomposition, combining-mark stripping, and
// case folding. It stands in for the real analyzer the underlying index
// uses; callers that want byte-exact behavior against that index's own
// tokenization should supply their own Analyzer.
type DefaultAnalyzer struct{}

// Analyze implements Analyzer.
func (DefaultAnalyzer) Analyze(s string) []Token {
	if s == "" {
		return nil
	}

	var tokens []Token

	runes := []rune(s)
	i := 0

	for i < len(runes) {
		start := i
		isWord := isWordRune(runes[i])

		for i < len(runes) && isWordRune(runes[i]) == isWord {
			i++
		}

		source := string(runes[start:i])

		kind := TokenSeparator
		normalized := source

		if isWord {
			kind = TokenWord
			normalized = normalizeWord(source)
		}

		tokens = append(tokens, Token{Source: source, Normalized: normalized, Kind: kind})
	}

	return tokens
}

// isWordRune reports whether r should be treated as part of a word token.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normalizeWord lowercases and NFKD-decomposes s, then strips combining
// marks, so that accented variants of the same word match the same
// normalized text (e.g. "café" -> "cafe"). Grounded on the NFKD-based
// normalization in the keyword-matching reference examples.
func normalizeWord(s string) string {
	folded := strings.ToLower(s)
	decomposed := norm.NFKD.String(folded)

	var b strings.Builder

	b.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
