package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

type lockOperationRepositoryImpl struct {
	db *DbManager
}

// NewLockOperationRepositoryImpl returns a badger implementation of the
// domain.LockOperationRepository interface. Operations are keyed by their
// kind, which enforces the one-slot-per-kind invariant at the storage level.
func NewLockOperationRepositoryImpl(db *DbManager) domain.LockOperationRepository {
	return lockOperationRepositoryImpl{db}
}

func (l lockOperationRepositoryImpl) GetOrCreateOperation(
	ctx context.Context, kind domain.OperationKind,
) (*domain.LockOperation, error) {
	if !kind.IsValid() {
		return nil, domain.ErrOperationInvalidKind
	}

	operation, err := l.GetOperation(ctx, kind)
	if err != nil {
		if err != domain.ErrOperationNotFound {
			return nil, err
		}
		operation = domain.NewLockOperation(kind)
		if err := l.insertOperation(operation); err != nil {
			return nil, err
		}
	}

	return operation, nil
}

func (l lockOperationRepositoryImpl) GetOperation(
	_ context.Context, kind domain.OperationKind,
) (*domain.LockOperation, error) {
	if !kind.IsValid() {
		return nil, domain.ErrOperationInvalidKind
	}

	var operation domain.LockOperation
	if err := l.db.Store.Get(string(kind), &operation); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOperationNotFound
		}
		return nil, err
	}

	return &operation, nil
}

func (l lockOperationRepositoryImpl) UpdateOperation(
	ctx context.Context,
	kind domain.OperationKind,
	updateFn func(o *domain.LockOperation) (*domain.LockOperation, error),
) error {
	currentOperation, err := l.GetOrCreateOperation(ctx, kind)
	if err != nil {
		return err
	}

	updatedOperation, err := updateFn(currentOperation)
	if err != nil {
		return err
	}

	return l.db.Store.Update(string(updatedOperation.Kind), updatedOperation)
}

func (l lockOperationRepositoryImpl) DeleteOperation(
	_ context.Context, kind domain.OperationKind,
) error {
	if !kind.IsValid() {
		return domain.ErrOperationInvalidKind
	}

	err := l.db.Store.Delete(string(kind), domain.LockOperation{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	return err
}

func (l lockOperationRepositoryImpl) insertOperation(
	operation *domain.LockOperation,
) error {
	err := l.db.Store.Insert(string(operation.Kind), operation)
	if err != nil && err != badgerhold.ErrKeyExists {
		return err
	}
	return nil
}
