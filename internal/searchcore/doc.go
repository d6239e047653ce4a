// Package searchcore implements the field-formatting core that sits on top of
// a full-text index: byte-exact match offsets, prefix-only highlight tags,
// word-budgeted cropping, format-plan resolution, geo distance, and filter
// parsing. It has no dependency on Bleve or any other concrete index — the
// Index and Matcher interfaces in this package are what a concrete engine
// (see pkg/repo/search) implements.
package searchcore

// HARD_RESULT_LIMIT is the maximum number of hits a single query may return,
// regardless of the requested offset/limit. Mirrors the original engine's
// pagination clamp.
//
//nolint:revive,stylecheck // named to match the spec's own constant name
const HARD_RESULT_LIMIT = 1000
