package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The provider clients return
// these (optionally wrapped) so callers can branch with errors.Is.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: the upstream registry has no record for the query
// - ErrUnavailable: an upstream registry is unreachable or short-circuited
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
