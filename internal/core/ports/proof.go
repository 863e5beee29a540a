package ports

import (
	"context"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

// ProofEvent is a single attestation observed on the subscription stream.
type ProofEvent struct {
	TxID  string
	Proof domain.AssetLockProof
}

// ProofSubscription is a live stream of lock attestations. It must be closed
// by the consumer once done.
type ProofSubscription interface {
	// Events returns the channel emitting attestations. The channel is closed
	// when the subscription terminates, in which case Err reports the cause.
	Events() <-chan ProofEvent
	// Err returns the error that terminated the stream, if any.
	Err() error
	// Close tears down the subscription.
	Close()
}

// ProofService is the interface to subscribe to the lock-attestation stream
// of the base network.
type ProofService interface {
	// Subscribe opens a stream of attestations for the given recipient
	// address, anchored at the given block hash. Anchoring at an already
	// confirmed block replays the attestations occurred since that block.
	Subscribe(ctx context.Context, anchorBlock, address string) (ProofSubscription, error)
}
