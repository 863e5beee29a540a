package ports

import (
	"context"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

// PlatformService is the interface to the platform layer that redeems lock
// proofs into credits. Its transaction and proof verification internals are
// opaque to this daemon, which only produces its inputs.
type PlatformService interface {
	// RegisterIdentity mints a new identity funded by the given lock proof.
	RegisterIdentity(
		ctx context.Context,
		rawTx []byte,
		proof domain.AssetLockProof,
		oneTimeKey []byte,
		payload domain.RegistrationPayload,
	) error
	// TopUpIdentity adds credits to an existing identity.
	TopUpIdentity(
		ctx context.Context,
		identity string,
		rawTx []byte,
		proof domain.AssetLockProof,
		oneTimeKey []byte,
	) error
}
