package blockchain

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
	"github.com/assetlock-network/lockbridge-daemon/pkg/insight"
)

type utxoSource struct {
	insightSvc insight.Service
}

// NewUtxoSource returns a ports.UtxoSource backed by an insight-style block
// explorer.
func NewUtxoSource(insightSvc insight.Service) ports.UtxoSource {
	return &utxoSource{insightSvc}
}

func (u *utxoSource) Fetch(
	_ context.Context, address string,
) ([]domain.Unspent, error) {
	utxos, err := u.insightSvc.GetUnspents(address)
	if err != nil {
		return nil, err
	}

	unspents := make([]domain.Unspent, 0, len(utxos))
	for _, utxo := range utxos {
		script, err := hex.DecodeString(utxo.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf(
				"invalid scriptPubKey format for utxo %s:%d", utxo.TxID, utxo.VOut,
			)
		}
		unspents = append(unspents, domain.Unspent{
			TxID:         utxo.TxID,
			VOut:         utxo.VOut,
			Value:        utxo.Value,
			ScriptPubKey: script,
			Address:      utxo.Address,
			Confirmed:    utxo.IsConfirmed(),
		})
	}

	return unspents, nil
}
