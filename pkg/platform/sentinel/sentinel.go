package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and dataset sources
// return these (optionally wrapped) so services can translate them into domain
// errors:
//   - ErrNotFound: the key, dataset or row does not exist
//   - ErrUnavailable: a backing service cannot be reached
//   - ErrCorrupt: stored bytes could not be decoded
//
// For bad input use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrCorrupt     = errors.New("corrupt payload")
)
