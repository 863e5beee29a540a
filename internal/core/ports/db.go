package ports

import (
	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

// DbManager interface defines the access points to the repositories and the
// lifecycle of the underlying store.
type DbManager interface {
	WalletRepository() domain.WalletRepository
	LockOperationRepository() domain.LockOperationRepository

	Close()
}
