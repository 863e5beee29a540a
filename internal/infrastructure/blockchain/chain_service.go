package blockchain

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
	"github.com/assetlock-network/lockbridge-daemon/pkg/insight"
)

type chainService struct {
	insightSvc insight.Service
}

// NewChainService returns a ports.ChainService backed by an insight-style
// block explorer.
func NewChainService(insightSvc insight.Service) ports.ChainService {
	return &chainService{insightSvc}
}

func (c *chainService) Tip(_ context.Context) (string, error) {
	return c.insightSvc.GetBestBlockHash()
}

func (c *chainService) TransactionBlock(
	_ context.Context, txid string,
) (string, error) {
	return c.insightSvc.GetTransactionBlockHash(txid)
}

func (c *chainService) Broadcast(
	_ context.Context, rawTx []byte,
) (string, error) {
	txid, err := c.insightSvc.BroadcastTransaction(hex.EncodeToString(rawTx))
	if err != nil {
		if errors.Is(err, insight.ErrTxAlreadyBroadcast) {
			return "", ports.ErrTxAlreadyBroadcast
		}
		return "", err
	}
	return txid, nil
}
