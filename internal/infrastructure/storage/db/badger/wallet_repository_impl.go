package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

// The daemon owns a single wallet, stored under a fixed key.
const walletKey = "wallet"

type walletRepositoryImpl struct {
	db *DbManager
}

// NewWalletRepositoryImpl returns a badger implementation of the
// domain.WalletRepository interface.
func NewWalletRepositoryImpl(db *DbManager) domain.WalletRepository {
	return walletRepositoryImpl{db}
}

func (w walletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := w.db.WalletStore.Get(walletKey, &wallet); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (w walletRepositoryImpl) InsertWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	if err := w.db.WalletStore.Insert(walletKey, wallet); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (w walletRepositoryImpl) UpdateWallet(
	ctx context.Context,
	updateFn func(wallet *domain.Wallet) (*domain.Wallet, error),
) error {
	currentWallet, err := w.GetWallet(ctx)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(currentWallet)
	if err != nil {
		return err
	}

	return w.db.WalletStore.Update(walletKey, updatedWallet)
}
