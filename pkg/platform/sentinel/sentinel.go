package sentinel

import "errors"

// Sentinel errors for lifecycle facts. Primitives return these (optionally
// wrapped) so owners can tell a deliberate teardown from a real failure.
//
// - ErrCancelled: a pending deferred invocation was cancelled or superseded
// - ErrDisposed: the owning form or session has been torn down
var (
	ErrCancelled = errors.New("cancelled")
	ErrDisposed  = errors.New("disposed")
)
