package domain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/shopspring/decimal"
)

// Balance returns the sum of the values of all unspents held by the wallet.
func (w *Wallet) Balance() uint64 {
	var total uint64
	for i := range w.Unspents {
		total += w.Unspents[i].Value
	}
	return total
}

// BalanceFormatted returns the wallet balance expressed in whole coins with
// 8 decimal digits, for display purposes only. Value arithmetic always
// happens on integer smallest units.
func (w *Wallet) BalanceFormatted() string {
	return decimal.NewFromInt(int64(w.Balance())).
		Div(decimal.NewFromInt(100000000)).
		StringFixed(8)
}

// SelectFor accumulates unspents in ledger insertion order until their total
// covers the given amount and returns them along with the change, ie. the
// difference between the total and the amount. The selected unspents are
// removed from the wallet as part of the same call so that no two selections
// can ever return overlapping coins. If the whole set cannot cover the amount
// the wallet is left untouched and ErrInsufficientFunds is returned.
func (w *Wallet) SelectFor(amount uint64) ([]Unspent, uint64, error) {
	var total uint64
	numSelected := 0
	for i := range w.Unspents {
		if total >= amount {
			break
		}
		total += w.Unspents[i].Value
		numSelected++
	}

	if total < amount {
		return nil, 0, ErrInsufficientFunds
	}

	selected := make([]Unspent, numSelected)
	copy(selected, w.Unspents[:numSelected])
	w.Unspents = append(w.Unspents[:0:0], w.Unspents[numSelected:]...)

	return selected, total - amount, nil
}

// Refresh replaces the whole unspent set with the one fetched from an
// external source. Full replacement, not merge: the source is authoritative
// for what is currently unspent.
func (w *Wallet) Refresh(unspents []Unspent) {
	w.Unspents = append([]Unspent(nil), unspents...)
}

// SigningKey returns the wallet key pair used to sign the inputs of
// asset-lock transactions.
func (w *Wallet) SigningKey() (*btcec.PrivateKey, *btcec.PublicKey) {
	return btcec.PrivKeyFromBytes(w.PrivateKey)
}
