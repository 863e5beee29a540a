package domain_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

func newTestWallet(t *testing.T, values ...uint64) *domain.Wallet {
	t.Helper()

	prvkey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	wallet, err := domain.NewWallet(prvkey, &chaincfg.RegressionNetParams)
	require.NoError(t, err)

	unspents := make([]domain.Unspent, 0, len(values))
	for i, v := range values {
		unspents = append(unspents, domain.Unspent{
			TxID:         "0000000000000000000000000000000000000000000000000000000000000001",
			VOut:         uint32(i),
			Value:        v,
			ScriptPubKey: []byte{0x76, 0xa9},
			Address:      wallet.Address,
			Confirmed:    true,
		})
	}
	wallet.Refresh(unspents)
	return wallet
}

func TestNewWallet(t *testing.T) {
	t.Parallel()

	prvkey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	wallet, err := domain.NewWallet(prvkey, &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	require.Len(t, wallet.PrivateKey, 32)
	require.Len(t, wallet.PublicKey, 33)
	require.NotEmpty(t, wallet.Address)
	require.Empty(t, wallet.Unspents)
}

func TestNewWalletFromKeyString(t *testing.T) {
	t.Parallel()

	hexKey := "1111111111111111111111111111111111111111111111111111111111111111"
	wallet, err := domain.NewWalletFromKeyString(hexKey, &chaincfg.RegressionNetParams)
	require.NoError(t, err)
	require.NotEmpty(t, wallet.Address)

	_, err = domain.NewWalletFromKeyString("not a key", &chaincfg.RegressionNetParams)
	require.EqualError(t, err, domain.ErrMalformedPrivateKey.Error())
}

func TestWalletBalance(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 50, 70)
	require.Equal(t, uint64(120), wallet.Balance())
	require.Equal(t, "0.00000120", wallet.BalanceFormatted())
}

func TestSelectFor(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 50, 70)

	selected, change, err := wallet.SelectFor(100)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, uint64(20), change)
	require.Empty(t, wallet.Unspents)
}

func TestSelectForKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 30, 10, 100)

	selected, change, err := wallet.SelectFor(35)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, uint64(30), selected[0].Value)
	require.Equal(t, uint64(10), selected[1].Value)
	require.Equal(t, uint64(5), change)
	require.Len(t, wallet.Unspents, 1)
	require.Equal(t, uint64(100), wallet.Unspents[0].Value)
}

func TestSelectForNoOverlap(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 10, 10, 10, 10)

	first, _, err := wallet.SelectFor(15)
	require.NoError(t, err)
	second, _, err := wallet.SelectFor(15)
	require.NoError(t, err)

	for _, a := range first {
		for _, b := range second {
			require.False(t, a.IsKeyEqual(b.Key()))
		}
	}
	require.Empty(t, wallet.Unspents)
}

func TestFailingSelectForLeavesWalletUntouched(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 50, 70)

	_, _, err := wallet.SelectFor(121)
	require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
	require.Len(t, wallet.Unspents, 2)
	require.Equal(t, uint64(120), wallet.Balance())
}

func TestRefreshReplacesUnspents(t *testing.T) {
	t.Parallel()

	wallet := newTestWallet(t, 50, 70)
	wallet.Refresh([]domain.Unspent{{
		TxID:  "0000000000000000000000000000000000000000000000000000000000000002",
		Value: 33,
	}})

	require.Len(t, wallet.Unspents, 1)
	require.Equal(t, uint64(33), wallet.Balance())
}
