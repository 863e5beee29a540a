package ports

import (
	"context"
	"errors"
)

// ErrTxAlreadyBroadcast is returned by ChainService.Broadcast when the exact
// transaction was already submitted to the network, typically by an earlier
// interrupted run of the same operation. It is the implementation's job to
// classify the underlying network response, callers only ever check this
// sentinel.
var ErrTxAlreadyBroadcast = errors.New("transaction already broadcast")

// ChainService is the interface to consult the status of the base chain and
// to submit raw transactions to it.
type ChainService interface {
	// Tip returns the hash of the current best block.
	Tip(ctx context.Context) (string, error)
	// TransactionBlock returns the hash of the block confirming the
	// transaction with the given id.
	TransactionBlock(ctx context.Context, txid string) (string, error)
	// Broadcast submits the given raw transaction to the network and returns
	// its id. A duplicate submission fails with ErrTxAlreadyBroadcast.
	Broadcast(ctx context.Context, rawTx []byte) (string, error)
}
