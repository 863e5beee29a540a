package domain

import "context"

// WalletRepository is the abstraction for any kind of database intended to
// persist the daemon's single-key Wallet.
type WalletRepository interface {
	// GetWallet returns the stored wallet, or ErrWalletNotFound if none has
	// been created yet.
	GetWallet(ctx context.Context) (*Wallet, error)
	// InsertWallet stores a new wallet. It fails with ErrWalletAlreadyExists
	// if a wallet is already stored.
	InsertWallet(ctx context.Context, wallet *Wallet) error
	// UpdateWallet allows to commit multiple changes to the wallet in a
	// transactional way.
	UpdateWallet(
		ctx context.Context,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
}
