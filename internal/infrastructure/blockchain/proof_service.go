package blockchain

import (
	"context"
	"sync"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
	"github.com/assetlock-network/lockbridge-daemon/pkg/proofstream"
)

type proofService struct {
	streamSvc proofstream.Service
}

// NewProofService returns a ports.ProofService backed by the websocket
// attestation stream of the base network.
func NewProofService(streamSvc proofstream.Service) ports.ProofService {
	return &proofService{streamSvc}
}

func (p *proofService) Subscribe(
	ctx context.Context, anchorBlock, address string,
) (ports.ProofSubscription, error) {
	sub, err := p.streamSvc.Subscribe(ctx, anchorBlock, address)
	if err != nil {
		return nil, err
	}

	adapted := &proofSubscription{
		sub: sub,
		// Same buffering as the underlying stream.
		events: make(chan ports.ProofEvent, 16),
		done:   make(chan struct{}),
	}
	go adapted.forward()

	return adapted, nil
}

type proofSubscription struct {
	sub    *proofstream.Subscription
	events chan ports.ProofEvent
	done   chan struct{}
	once   sync.Once
}

func (s *proofSubscription) Events() <-chan ports.ProofEvent {
	return s.events
}

func (s *proofSubscription) Err() error {
	return s.sub.Err()
}

func (s *proofSubscription) Close() {
	s.once.Do(func() {
		close(s.done)
		s.sub.Close()
	})
}

func (s *proofSubscription) forward() {
	defer close(s.events)

	for event := range s.sub.Events() {
		adapted := ports.ProofEvent{
			TxID: event.TxID,
			Proof: domain.AssetLockProof{
				TxID:      event.TxID,
				OutIndex:  event.OutIndex,
				BlockHash: event.BlockHash,
				Signature: event.Signature,
			},
		}
		select {
		case s.events <- adapted:
		case <-s.done:
			return
		}
	}
}
