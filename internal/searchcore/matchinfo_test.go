package searchcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMatches_Offsets(t *testing.T) {
	const text = "Call me Ishmael. Some years ago—never mind how long precisely—having " +
		"little or no money in my purse, and nothing particular to interest me " +
		"on shore, I thought I would sail about a little and see the watery " +
		"part of the world."

	doc := NewOrderedDoc()
	doc.Set("body", text)

	matcher := NewTestMatcher(map[string]int{
		"ishmael":    3,
		"little":     6,
		"particular": 1,
	})

	matches := ComputeMatches(doc, matcher, DefaultAnalyzer{})

	body, ok := matches["body"]
	require.True(t, ok)
	require.Len(t, body, 4)

	var got []string
	for _, m := range body {
		require.LessOrEqual(t, m.Start+m.Length, len(text))
		got = append(got, text[m.Start:m.Start+m.Length])
	}

	assert.Equal(t, []string{"Ish", "little", "p", "little"}, got)

	// Offset monotonicity.
	for i := 1; i < len(body); i++ {
		assert.Greater(t, body[i].Start, body[i-1].Start)
	}
}

func TestComputeMatches_OmitsFieldsWithNoMatches(t *testing.T) {
	doc := NewOrderedDoc()
	doc.Set("title", "nothing interesting")
	doc.Set("author", "Herman Melville")

	matcher := NewTestMatcher(map[string]int{"melville": 8})

	matches := ComputeMatches(doc, matcher, DefaultAnalyzer{})

	_, hasTitle := matches["title"]
	assert.False(t, hasTitle)

	author, hasAuthor := matches["author"]
	require.True(t, hasAuthor)
	assert.Len(t, author, 1)
}

func TestComputeMatches_NumberLeaf(t *testing.T) {
	doc := NewOrderedDoc()
	doc.Set("publication_year", float64(1937))

	matcher := NewTestMatcher(map[string]int{"1937": 4})

	matches := ComputeMatches(doc, matcher, DefaultAnalyzer{})

	year, ok := matches["publication_year"]
	require.True(t, ok)
	require.Len(t, year, 1)
	assert.Equal(t, MatchInfo{Start: 0, Length: 4}, year[0])
}

func TestComputeMatches_Array(t *testing.T) {
	doc := NewOrderedDoc()
	doc.Set("tags", []any{"fantasy", "hobbit tale"})

	matcher := NewTestMatcher(map[string]int{"hobbit": 6})

	matches := ComputeMatches(doc, matcher, DefaultAnalyzer{})

	tags, ok := matches["tags"]
	require.True(t, ok)
	require.Len(t, tags, 1)
	assert.Equal(t, 0, tags[0].Start)
}
