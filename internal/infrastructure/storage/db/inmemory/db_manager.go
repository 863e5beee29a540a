package inmemory

import (
	"sync"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
)

type walletInmemoryStore struct {
	wallet *domain.Wallet
	locker *sync.Mutex
}

type operationInmemoryStore struct {
	operations map[domain.OperationKind]*domain.LockOperation
	locker     *sync.Mutex
}

// DbManager is the in-memory implementation of ports.DbManager, used for
// testing and for ephemeral setups that do not need to survive a restart.
type DbManager struct {
	walletRepository    domain.WalletRepository
	operationRepository domain.LockOperationRepository
}

func NewDbManager() ports.DbManager {
	walletStore := &walletInmemoryStore{
		locker: &sync.Mutex{},
	}
	operationStore := &operationInmemoryStore{
		operations: map[domain.OperationKind]*domain.LockOperation{},
		locker:     &sync.Mutex{},
	}

	return &DbManager{
		walletRepository:    NewWalletRepositoryImpl(walletStore),
		operationRepository: NewLockOperationRepositoryImpl(operationStore),
	}
}

func (d *DbManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *DbManager) LockOperationRepository() domain.LockOperationRepository {
	return d.operationRepository
}

func (d *DbManager) Close() {}
