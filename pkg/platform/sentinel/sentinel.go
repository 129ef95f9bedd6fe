package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Storage backends return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: key does not exist in the backend
//   - ErrConflict: write lost a race with another writer
//   - ErrUnavailable: no backend is reachable in this environment
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
