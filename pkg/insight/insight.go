package insight

import "errors"

var (
	// ErrTxAlreadyBroadcast is returned by BroadcastTransaction when the node
	// reports that the exact transaction is already in the mempool or in a
	// block. Callers rely on this sentinel instead of matching the node's
	// human-readable error messages themselves.
	ErrTxAlreadyBroadcast = errors.New("transaction already broadcast")
	// ErrTxNotFound ...
	ErrTxNotFound = errors.New("transaction not found")
)

// Utxo represents an unspent output as reported by the insight REST API.
type Utxo struct {
	TxID          string `json:"txid"`
	VOut          uint32 `json:"vout"`
	Value         uint64 `json:"satoshis"`
	ScriptPubKey  string `json:"scriptPubKey"`
	Address       string `json:"address"`
	Confirmations int64  `json:"confirmations"`
}

// IsConfirmed returns whether the utxo is included in a block.
func (u Utxo) IsConfirmed() bool {
	return u.Confirmations > 0
}

// Service is the representation of an insight-style block explorer that
// allows to fetch the unspents of an address, to consult the chain status
// and to broadcast raw transactions.
type Service interface {
	// GetUnspents fetches the utxos currently owned by the given address.
	GetUnspents(addr string) ([]Utxo, error)
	// GetBestBlockHash returns the hash of the current chain tip.
	GetBestBlockHash() (string, error)
	// GetTransactionBlockHash returns the hash of the block including the
	// transaction identified by its hash.
	GetTransactionBlockHash(txid string) (string, error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash. A duplicate submission fails with
	// ErrTxAlreadyBroadcast.
	BroadcastTransaction(txHex string) (string, error)
}
