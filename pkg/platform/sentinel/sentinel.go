package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and loaders return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store (e.g. no rule row for a code)
// - ErrStale: cached snapshot is past its TTL
// - ErrUnavailable: backing service temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrStale       = errors.New("stale")
	ErrUnavailable = errors.New("unavailable")
)
