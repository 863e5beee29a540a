package inmemory

import (
	"context"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

type walletRepositoryImpl struct {
	store *walletInmemoryStore
}

// NewWalletRepositoryImpl returns a new inmemory WalletRepository implementation.
func NewWalletRepositoryImpl(store *walletInmemoryStore) domain.WalletRepository {
	return &walletRepositoryImpl{store}
}

func (r walletRepositoryImpl) GetWallet(_ context.Context) (*domain.Wallet, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if r.store.wallet == nil {
		return nil, domain.ErrWalletNotFound
	}
	return copyWallet(r.store.wallet), nil
}

func (r walletRepositoryImpl) InsertWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if r.store.wallet != nil {
		return domain.ErrWalletAlreadyExists
	}
	r.store.wallet = copyWallet(wallet)
	return nil
}

func (r walletRepositoryImpl) UpdateWallet(
	_ context.Context,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if r.store.wallet == nil {
		return domain.ErrWalletNotFound
	}

	// The update runs on a copy so that a failing updateFn leaves the stored
	// wallet untouched.
	updatedWallet, err := updateFn(copyWallet(r.store.wallet))
	if err != nil {
		return err
	}

	r.store.wallet = copyWallet(updatedWallet)
	return nil
}

func copyWallet(w *domain.Wallet) *domain.Wallet {
	wallet := *w
	wallet.PrivateKey = append([]byte(nil), w.PrivateKey...)
	wallet.PublicKey = append([]byte(nil), w.PublicKey...)
	wallet.Unspents = append([]domain.Unspent(nil), w.Unspents...)
	return &wallet
}
