package inmemory

import (
	"context"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

type lockOperationRepositoryImpl struct {
	store *operationInmemoryStore
}

// NewLockOperationRepositoryImpl returns a new inmemory LockOperationRepository
// implementation.
func NewLockOperationRepositoryImpl(
	store *operationInmemoryStore,
) domain.LockOperationRepository {
	return &lockOperationRepositoryImpl{store}
}

func (r lockOperationRepositoryImpl) GetOrCreateOperation(
	_ context.Context, kind domain.OperationKind,
) (*domain.LockOperation, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getOrCreateOperation(kind)
}

func (r lockOperationRepositoryImpl) GetOperation(
	_ context.Context, kind domain.OperationKind,
) (*domain.LockOperation, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if !kind.IsValid() {
		return nil, domain.ErrOperationInvalidKind
	}
	operation, ok := r.store.operations[kind]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	return copyOperation(operation), nil
}

func (r lockOperationRepositoryImpl) UpdateOperation(
	_ context.Context,
	kind domain.OperationKind,
	updateFn func(o *domain.LockOperation) (*domain.LockOperation, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentOperation, err := r.getOrCreateOperation(kind)
	if err != nil {
		return err
	}

	updatedOperation, err := updateFn(currentOperation)
	if err != nil {
		return err
	}

	r.store.operations[kind] = copyOperation(updatedOperation)
	return nil
}

func (r lockOperationRepositoryImpl) DeleteOperation(
	_ context.Context, kind domain.OperationKind,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if !kind.IsValid() {
		return domain.ErrOperationInvalidKind
	}
	delete(r.store.operations, kind)
	return nil
}

func (r lockOperationRepositoryImpl) getOrCreateOperation(
	kind domain.OperationKind,
) (*domain.LockOperation, error) {
	if !kind.IsValid() {
		return nil, domain.ErrOperationInvalidKind
	}

	operation, ok := r.store.operations[kind]
	if !ok {
		operation = domain.NewLockOperation(kind)
		r.store.operations[kind] = operation
	}
	return copyOperation(operation), nil
}

func copyOperation(o *domain.LockOperation) *domain.LockOperation {
	operation := *o
	operation.Transaction = append([]byte(nil), o.Transaction...)
	operation.OneTimeKey = append([]byte(nil), o.OneTimeKey...)
	if o.Proof != nil {
		proof := *o.Proof
		operation.Proof = &proof
	}
	if o.Payload != nil {
		payload := *o.Payload
		operation.Payload = &payload
	}
	return &operation
}
