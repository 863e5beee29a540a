package ports

import (
	"context"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

// UtxoSource is the interface to fetch the authoritative set of unspents of
// an address from an external block-explorer-style service.
type UtxoSource interface {
	Fetch(ctx context.Context, address string) ([]domain.Unspent, error)
}
