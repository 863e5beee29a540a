package domain

// IsKeyEqual returns whether the provided UnspentKey matches that of the
// current unspent.
func (u *Unspent) IsKeyEqual(key UnspentKey) bool {
	return u.TxID == key.TxID && u.VOut == key.VOut
}

// IsConfirmed returns whether the unspent is already confirmed.
func (u *Unspent) IsConfirmed() bool {
	return u.Confirmed
}

// Key returns the UnspentKey of the current unspent.
func (u *Unspent) Key() UnspentKey {
	return UnspentKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}
