package domain

import "context"

// LockOperationRepository is the abstraction for any kind of database
// intended to persist the continuation state of asset-lock operations. At
// most one operation is stored per kind at any time.
type LockOperationRepository interface {
	// GetOrCreateOperation returns the operation stored for the given kind,
	// or stores and returns a new empty one if none is found.
	GetOrCreateOperation(ctx context.Context, kind OperationKind) (*LockOperation, error)
	// GetOperation returns the operation stored for the given kind, or
	// ErrOperationNotFound.
	GetOperation(ctx context.Context, kind OperationKind) (*LockOperation, error)
	// UpdateOperation allows to commit multiple changes to the operation of
	// the given kind in a transactional way.
	UpdateOperation(
		ctx context.Context,
		kind OperationKind,
		updateFn func(o *LockOperation) (*LockOperation, error),
	) error
	// DeleteOperation removes the whole slot for the given kind. Deletion is
	// all-or-nothing, an operation is never partially cleared.
	DeleteOperation(ctx context.Context, kind OperationKind) error
}
