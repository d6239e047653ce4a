package searchcore

import "errors"

// Sentinel errors for the error kinds of spec §7. Call sites wrap these
// with fmt.Errorf("...: %w", err) to attach context, and check them with
// errors.Is, the same pattern pkg/api/handlers_portal.go uses for
// docstore.ErrNotFound.
var (
	// ErrBadSort means one of the query's sort strings could not be parsed.
	ErrBadSort = errors.New("searchcore: invalid sort expression")
	// ErrBadFilter means the filter expression's grammar was rejected, or its
	// array shape violated spec §4.7.
	ErrBadFilter = errors.New("searchcore: invalid filter expression")
	// ErrBadRequest means the query itself was malformed (unknown fields).
	ErrBadRequest = errors.New("searchcore: invalid search query")
	// ErrIndexFailure wraps an opaque error returned by the underlying index.
	ErrIndexFailure = errors.New("searchcore: index failure")
	// ErrInternal marks a condition the spec considers a bug to surface,
	// such as geo-regex captures that fail to parse as floats despite the
	// regex having matched.
	ErrInternal = errors.New("searchcore: internal error")
)
