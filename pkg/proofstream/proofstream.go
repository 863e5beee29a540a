package proofstream

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a single lock attestation emitted by the stream: the proof that
// the lock output of the transaction identified by TxID is guaranteed by the
// network.
type Event struct {
	TxID      string `json:"txid"`
	OutIndex  uint32 `json:"outIndex"`
	BlockHash string `json:"blockHash"`
	Signature []byte `json:"signature"`
}

type subscribeRequest struct {
	AnchorBlock string `json:"anchorBlock"`
	Address     string `json:"address"`
}

// Service is the representation of the attestation endpoint of the base
// network, allowing to subscribe to the lock attestations addressed to a
// recipient.
type Service interface {
	// Subscribe opens a websocket stream of attestations for the given
	// address, anchored at the given block hash. Anchoring at an old block
	// replays attestations occurred since that block, which is how an
	// interrupted operation catches up with a proof emitted while it was
	// down.
	Subscribe(ctx context.Context, anchorBlock, address string) (*Subscription, error)
}

type proofStream struct {
	wsURL  string
	dialer *websocket.Dialer
}

// NewService returns an attestation stream client for the given ws:// or
// wss:// endpoint.
func NewService(wsURL string) Service {
	return &proofStream{
		wsURL: wsURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 30 * time.Second,
		},
	}
}

func (p *proofStream) Subscribe(
	ctx context.Context, anchorBlock, address string,
) (*Subscription, error) {
	conn, _, err := p.dialer.DialContext(ctx, p.wsURL, nil)
	if err != nil {
		return nil, err
	}

	if err := conn.WriteJSON(subscribeRequest{
		AnchorBlock: anchorBlock,
		Address:     address,
	}); err != nil {
		conn.Close()
		return nil, err
	}

	sub := newSubscription(conn)
	go sub.readLoop()

	return sub, nil
}
