package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
	"github.com/assetlock-network/lockbridge-daemon/pkg/txbuilder"
)

// callLog records the order of the interactions with the external services,
// shared between mocks.
type callLog struct {
	mtx   sync.Mutex
	calls []string
}

func (l *callLog) append(call string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return append([]string(nil), l.calls...)
}

// **** ChainService ****

type mockChainService struct {
	mtx             sync.Mutex
	log             *callLog
	tip             string
	broadcastErr    error
	confirmingBlock string
	broadcastedTxs  [][]byte
	broadcastedTxID string
	broadcasted     chan struct{}
	closeOnce       sync.Once
}

func newMockChainService(log *callLog, tip string) *mockChainService {
	return &mockChainService{
		log:         log,
		tip:         tip,
		broadcasted: make(chan struct{}),
	}
}

func (m *mockChainService) Tip(_ context.Context) (string, error) {
	return m.tip, nil
}

func (m *mockChainService) TransactionBlock(
	_ context.Context, _ string,
) (string, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.confirmingBlock == "" {
		return "", errors.New("transaction not confirmed")
	}
	return m.confirmingBlock, nil
}

func (m *mockChainService) Broadcast(
	_ context.Context, rawTx []byte,
) (string, error) {
	m.log.append("broadcast")

	m.mtx.Lock()
	m.broadcastedTxs = append(m.broadcastedTxs, rawTx)
	tx, err := txbuilder.Deserialize(rawTx)
	if err != nil {
		m.mtx.Unlock()
		return "", err
	}
	txid, err := tx.TxID()
	if err != nil {
		m.mtx.Unlock()
		return "", err
	}
	m.broadcastedTxID = txid
	broadcastErr := m.broadcastErr
	m.mtx.Unlock()

	m.closeOnce.Do(func() { close(m.broadcasted) })

	if broadcastErr != nil {
		return "", broadcastErr
	}
	return txid, nil
}

func (m *mockChainService) setBroadcastErr(err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.broadcastErr = err
}

func (m *mockChainService) setConfirmingBlock(block string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.confirmingBlock = block
}

func (m *mockChainService) lastBroadcastedTxID() string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.broadcastedTxID
}

func (m *mockChainService) numBroadcasts() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.broadcastedTxs)
}

// **** ProofService ****

type mockProofService struct {
	mtx     sync.Mutex
	log     *callLog
	chain   *mockChainService
	emit    bool
	anchors []string
}

func newMockProofService(
	log *callLog, chain *mockChainService, emit bool,
) *mockProofService {
	return &mockProofService{log: log, chain: chain, emit: emit}
}

func (m *mockProofService) Subscribe(
	_ context.Context, anchorBlock, _ string,
) (ports.ProofSubscription, error) {
	m.log.append("subscribe")

	m.mtx.Lock()
	m.anchors = append(m.anchors, anchorBlock)
	emit := m.emit
	m.mtx.Unlock()

	sub := newMockSubscription()
	if emit {
		// The attestation for a transaction can only be emitted once the
		// transaction is known to the chain.
		go func() {
			select {
			case <-m.chain.broadcasted:
			case <-sub.done:
				return
			}

			txid := m.chain.lastBroadcastedTxID()
			event := ports.ProofEvent{
				TxID: txid,
				Proof: domain.AssetLockProof{
					TxID:      txid,
					OutIndex:  0,
					BlockHash: anchorBlock,
					Signature: []byte("attestation"),
				},
			}
			select {
			case sub.events <- event:
			case <-sub.done:
			}
		}()
	}
	return sub, nil
}

func (m *mockProofService) setEmit(emit bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.emit = emit
}

func (m *mockProofService) anchorBlocks() []string {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return append([]string(nil), m.anchors...)
}

type mockSubscription struct {
	events chan ports.ProofEvent
	done   chan struct{}
	once   sync.Once
}

func newMockSubscription() *mockSubscription {
	return &mockSubscription{
		events: make(chan ports.ProofEvent, 1),
		done:   make(chan struct{}),
	}
}

func (s *mockSubscription) Events() <-chan ports.ProofEvent { return s.events }
func (s *mockSubscription) Err() error                      { return nil }
func (s *mockSubscription) Close() {
	s.once.Do(func() { close(s.done) })
}

// **** UtxoSource ****

type mockUtxoSource struct {
	mtx      sync.Mutex
	unspents []domain.Unspent
}

func (m *mockUtxoSource) Fetch(
	_ context.Context, _ string,
) ([]domain.Unspent, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return append([]domain.Unspent(nil), m.unspents...), nil
}

func (m *mockUtxoSource) setUnspents(unspents []domain.Unspent) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.unspents = unspents
}

// **** PlatformService ****

type registerCall struct {
	rawTx      []byte
	proof      domain.AssetLockProof
	oneTimeKey []byte
	payload    domain.RegistrationPayload
}

type topUpCall struct {
	identity   string
	rawTx      []byte
	proof      domain.AssetLockProof
	oneTimeKey []byte
}

type mockPlatformService struct {
	mtx         sync.Mutex
	log         *callLog
	err         error
	registered  []registerCall
	toppedUp    []topUpCall
}

func newMockPlatformService(log *callLog) *mockPlatformService {
	return &mockPlatformService{log: log}
}

func (m *mockPlatformService) RegisterIdentity(
	_ context.Context,
	rawTx []byte,
	proof domain.AssetLockProof,
	oneTimeKey []byte,
	payload domain.RegistrationPayload,
) error {
	m.log.append("platform.register")

	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.err != nil {
		return m.err
	}
	m.registered = append(m.registered, registerCall{rawTx, proof, oneTimeKey, payload})
	return nil
}

func (m *mockPlatformService) TopUpIdentity(
	_ context.Context,
	identity string,
	rawTx []byte,
	proof domain.AssetLockProof,
	oneTimeKey []byte,
) error {
	m.log.append("platform.topup")

	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.err != nil {
		return m.err
	}
	m.toppedUp = append(m.toppedUp, topUpCall{identity, rawTx, proof, oneTimeKey})
	return nil
}

func (m *mockPlatformService) setErr(err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.err = err
}

func (m *mockPlatformService) registerCalls() []registerCall {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return append([]registerCall(nil), m.registered...)
}

func (m *mockPlatformService) topUpCalls() []topUpCall {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return append([]topUpCall(nil), m.toppedUp...)
}
