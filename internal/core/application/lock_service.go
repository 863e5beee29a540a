package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
	"github.com/assetlock-network/lockbridge-daemon/pkg/txbuilder"
)

// identityKeyCount is the number of key pairs generated for a freshly
// registered identity, one per authentication level.
const identityKeyCount = 3

type LockService interface {
	InitWallet(ctx context.Context, privateKey string) error
	RefreshWallet(ctx context.Context) error
	WalletBalance(ctx context.Context) (*BalanceInfo, error)
	RegisterIdentity(ctx context.Context, amount uint64) error
	TopUpIdentity(ctx context.Context, identity string, amount uint64) error
	GetOperationInfo(ctx context.Context, kind domain.OperationKind) (*OperationInfo, error)
	DropOperation(ctx context.Context, kind domain.OperationKind) error
}

type lockService struct {
	walletRepository    domain.WalletRepository
	operationRepository domain.LockOperationRepository
	chainSvc            ports.ChainService
	proofSvc            ports.ProofService
	utxoSource          ports.UtxoSource
	platformSvc         ports.PlatformService
	networkFee          uint64
	proofWaitTimeout    time.Duration
	netParams           *chaincfg.Params

	lock sync.Mutex
}

func NewLockService(
	walletRepository domain.WalletRepository,
	operationRepository domain.LockOperationRepository,
	chainSvc ports.ChainService,
	proofSvc ports.ProofService,
	utxoSource ports.UtxoSource,
	platformSvc ports.PlatformService,
	networkFee uint64,
	proofWaitTimeout time.Duration,
	netParams *chaincfg.Params,
) LockService {
	return &lockService{
		walletRepository:    walletRepository,
		operationRepository: operationRepository,
		chainSvc:            chainSvc,
		proofSvc:            proofSvc,
		utxoSource:          utxoSource,
		platformSvc:         platformSvc,
		networkFee:          networkFee,
		proofWaitTimeout:    proofWaitTimeout,
		netParams:           netParams,
	}
}

// InitWallet stores the single-key wallet derived from the given private key
// (hex or WIF) if none exists yet, then fetches its unspents. An empty key
// generates a fresh one on first run. Restarting with a key that does not
// match the stored wallet is rejected.
func (l *lockService) InitWallet(ctx context.Context, privateKey string) error {
	if len(privateKey) <= 0 {
		return l.initWalletWithRandomKey(ctx)
	}

	derived, err := domain.NewWalletFromKeyString(privateKey, l.netParams)
	if err != nil {
		return err
	}

	stored, err := l.walletRepository.GetWallet(ctx)
	if err != nil {
		if err != domain.ErrWalletNotFound {
			return err
		}
		if err := l.walletRepository.InsertWallet(ctx, derived); err != nil {
			return err
		}
		log.Infof("wallet initialized with address %s", derived.Address)
		return l.RefreshWallet(ctx)
	}

	if stored.Address != derived.Address {
		return ErrWalletKeyMismatch
	}
	return l.RefreshWallet(ctx)
}

func (l *lockService) initWalletWithRandomKey(ctx context.Context) error {
	if _, err := l.walletRepository.GetWallet(ctx); err == nil {
		return l.RefreshWallet(ctx)
	} else if err != domain.ErrWalletNotFound {
		return err
	}

	prvkey, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	wallet, err := domain.NewWallet(prvkey, l.netParams)
	if err != nil {
		return err
	}
	if err := l.walletRepository.InsertWallet(ctx, wallet); err != nil {
		return err
	}

	log.Infof("wallet initialized with fresh key, address %s", wallet.Address)
	return l.RefreshWallet(ctx)
}

// RefreshWallet replaces the wallet unspent set with the one fetched from the
// external source.
func (l *lockService) RefreshWallet(ctx context.Context) error {
	wallet, err := l.walletRepository.GetWallet(ctx)
	if err != nil {
		return err
	}

	unspents, err := l.utxoSource.Fetch(ctx, wallet.Address)
	if err != nil {
		return err
	}

	return l.walletRepository.UpdateWallet(
		ctx, func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Refresh(unspents)
			return w, nil
		},
	)
}

func (l *lockService) WalletBalance(ctx context.Context) (*BalanceInfo, error) {
	wallet, err := l.walletRepository.GetWallet(ctx)
	if err != nil {
		return nil, err
	}

	return &BalanceInfo{
		TotalBalance:     wallet.Balance(),
		FormattedBalance: wallet.BalanceFormatted(),
		NumUnspents:      len(wallet.Unspents),
	}, nil
}

// RegisterIdentity runs the whole lock-and-register flow: lock the given
// amount with an asset-lock transaction, broadcast it, wait for its proof,
// generate the identity key material and submit everything to the platform
// layer. Every step is persisted so that a retry after any failure resumes
// from where it left off instead of locking funds again.
func (l *lockService) RegisterIdentity(ctx context.Context, amount uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	kind := domain.OperationKindRegistration
	operation, err := l.lockFunds(ctx, kind, amount)
	if err != nil {
		return err
	}

	if !operation.HasProof() {
		if operation, err = l.obtainProof(ctx, kind); err != nil {
			return err
		}
	}

	if !operation.HasPayload() {
		payload, err := newRegistrationPayload()
		if err != nil {
			return err
		}
		if operation, err = l.recordPayload(ctx, kind, payload); err != nil {
			return err
		}
	}

	if err := l.platformSvc.RegisterIdentity(
		ctx,
		operation.Transaction,
		*operation.Proof,
		operation.OneTimeKey,
		*operation.Payload,
	); err != nil {
		return err
	}

	log.Infof("identity registered with lock transaction %s", operation.TxID)
	return l.operationRepository.DeleteOperation(ctx, kind)
}

// TopUpIdentity runs the whole lock-and-top-up flow for an existing identity.
// It follows the same persisted steps as RegisterIdentity, with the target
// identity recorded in place of fresh key material.
func (l *lockService) TopUpIdentity(
	ctx context.Context, identity string, amount uint64,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	kind := domain.OperationKindTopUp
	operation, err := l.lockFunds(ctx, kind, amount)
	if err != nil {
		return err
	}

	if operation.HasPayload() && operation.Payload.Target != identity {
		return ErrOperationTargetMismatch
	}

	if !operation.HasProof() {
		if operation, err = l.obtainProof(ctx, kind); err != nil {
			return err
		}
	}

	if !operation.HasPayload() {
		payload := &domain.RegistrationPayload{Target: identity}
		if operation, err = l.recordPayload(ctx, kind, payload); err != nil {
			return err
		}
	}

	if err := l.platformSvc.TopUpIdentity(
		ctx,
		operation.Payload.Target,
		operation.Transaction,
		*operation.Proof,
		operation.OneTimeKey,
	); err != nil {
		return err
	}

	log.Infof(
		"identity %s topped up with lock transaction %s",
		operation.Payload.Target, operation.TxID,
	)
	return l.operationRepository.DeleteOperation(ctx, kind)
}

func (l *lockService) GetOperationInfo(
	ctx context.Context, kind domain.OperationKind,
) (*OperationInfo, error) {
	operation, err := l.operationRepository.GetOperation(ctx, kind)
	if err != nil {
		return nil, err
	}

	target := ""
	if operation.HasPayload() {
		target = operation.Payload.Target
	}
	return &OperationInfo{
		Kind:       string(operation.Kind),
		StatusCode: operation.Status.Code,
		Amount:     operation.Amount,
		TxID:       operation.TxID,
		HasProof:   operation.HasProof(),
		HasPayload: operation.HasPayload(),
		Target:     target,
	}, nil
}

// DropOperation abandons the continuation slot of the given kind. Funds
// locked by an already broadcast transaction are not recovered, so this is
// only meant for operations stuck before broadcast.
func (l *lockService) DropOperation(
	ctx context.Context, kind domain.OperationKind,
) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	operation, err := l.operationRepository.GetOperation(ctx, kind)
	if err != nil {
		if err == domain.ErrOperationNotFound {
			return nil
		}
		return err
	}

	if operation.IsBroadcast() {
		log.Warnf(
			"dropping %s operation whose transaction %s is already broadcast",
			kind, operation.TxID,
		)
	}
	return l.operationRepository.DeleteOperation(ctx, kind)
}

// lockFunds returns the operation of the given kind holding a signed
// asset-lock transaction for the given amount. If the slot already holds one
// it is resumed as is, coins are never selected twice for the same slot.
// Otherwise coins are selected, the transaction is built and signed, and
// wallet and operation are persisted. A failed build leaves the persisted
// wallet untouched.
func (l *lockService) lockFunds(
	ctx context.Context, kind domain.OperationKind, amount uint64,
) (*domain.LockOperation, error) {
	operation, err := l.operationRepository.GetOrCreateOperation(ctx, kind)
	if err != nil {
		return nil, err
	}

	if operation.IsLocked() {
		if operation.Amount != amount {
			return nil, ErrOperationAmountMismatch
		}
		log.Debugf("resuming %s operation with transaction %s", kind, operation.TxID)
		return operation, nil
	}

	var rawTx []byte
	var txID string
	var oneTimeKey []byte
	if err := l.walletRepository.UpdateWallet(
		ctx, func(w *domain.Wallet) (*domain.Wallet, error) {
			selected, change, err := w.SelectFor(amount)
			if err != nil {
				return nil, err
			}

			inputs := make([]txbuilder.Input, 0, len(selected))
			for _, u := range selected {
				inputs = append(inputs, txbuilder.Input{
					TxID:         u.TxID,
					VOut:         u.VOut,
					Value:        u.Value,
					ScriptPubKey: u.ScriptPubKey,
				})
			}
			signingKey, _ := w.SigningKey()

			tx, key, err := txbuilder.NewAssetLockTransaction(
				txbuilder.NewAssetLockTransactionOpts{
					Inputs:        inputs,
					Amount:        amount,
					Change:        change,
					Fee:           l.networkFee,
					SigningKey:    signingKey,
					ChangeAddress: w.Address,
					NetParams:     l.netParams,
				},
			)
			if err != nil {
				return nil, err
			}

			if rawTx, err = tx.Serialize(); err != nil {
				return nil, err
			}
			if txID, err = tx.TxID(); err != nil {
				return nil, err
			}
			oneTimeKey = key.Serialize()
			return w, nil
		},
	); err != nil {
		return nil, err
	}

	if err := l.operationRepository.UpdateOperation(
		ctx, kind, func(o *domain.LockOperation) (*domain.LockOperation, error) {
			if _, err := o.Lock(amount, rawTx, txID, oneTimeKey); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	log.Infof("locked %d for %s with transaction %s", amount, kind, txID)
	return l.operationRepository.GetOperation(ctx, kind)
}

// obtainProof broadcasts the operation transaction and waits for its lock
// attestation. The subscription is opened at the current chain tip BEFORE
// broadcasting, so the attestation cannot slip between the two. If the
// transaction turns out to be already broadcast by an earlier run, the
// subscription is re-anchored at its confirming block so that an already
// emitted attestation is replayed. Nothing is ever rebuilt or re-signed here.
func (l *lockService) obtainProof(
	ctx context.Context, kind domain.OperationKind,
) (*domain.LockOperation, error) {
	operation, err := l.operationRepository.GetOperation(ctx, kind)
	if err != nil {
		return nil, err
	}
	if operation.HasProof() {
		return operation, nil
	}

	lockAddress, err := l.oneTimeAddress(operation.OneTimeKey)
	if err != nil {
		return nil, err
	}

	anchorBlock, err := l.chainSvc.Tip(ctx)
	if err != nil {
		return nil, err
	}
	subscription, err := l.proofSvc.Subscribe(ctx, anchorBlock, lockAddress)
	if err != nil {
		return nil, err
	}
	defer func() { subscription.Close() }()

	if !operation.IsBroadcast() {
		if _, err := l.chainSvc.Broadcast(ctx, operation.Transaction); err != nil {
			if !errors.Is(err, ports.ErrTxAlreadyBroadcast) {
				return nil, err
			}
			log.Debugf(
				"transaction %s already broadcast by an earlier run", operation.TxID,
			)
			if subscription, err = l.reanchorSubscription(
				ctx, subscription, operation.TxID, lockAddress,
			); err != nil {
				return nil, err
			}
		}

		if err := l.operationRepository.UpdateOperation(
			ctx, kind, func(o *domain.LockOperation) (*domain.LockOperation, error) {
				if _, err := o.MarkBroadcast(); err != nil {
					return nil, err
				}
				return o, nil
			},
		); err != nil {
			return nil, err
		}
	} else {
		// Resumed after a broadcast from a previous run: the attestation may
		// predate the tip we anchored at.
		if subscription, err = l.reanchorSubscription(
			ctx, subscription, operation.TxID, lockAddress,
		); err != nil {
			return nil, err
		}
	}

	proof, err := l.waitForProof(ctx, subscription, operation.TxID)
	if err != nil {
		return nil, err
	}

	if err := l.operationRepository.UpdateOperation(
		ctx, kind, func(o *domain.LockOperation) (*domain.LockOperation, error) {
			if _, err := o.RecordProof(proof); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	log.Infof("obtained lock proof for transaction %s", operation.TxID)
	return l.operationRepository.GetOperation(ctx, kind)
}

// reanchorSubscription replaces the given subscription with one anchored at
// the block confirming the transaction, if any. A transaction still in the
// mempool keeps the tip-anchored subscription, its attestation is yet to be
// emitted.
func (l *lockService) reanchorSubscription(
	ctx context.Context,
	subscription ports.ProofSubscription,
	txid, lockAddress string,
) (ports.ProofSubscription, error) {
	confirmingBlock, err := l.chainSvc.TransactionBlock(ctx, txid)
	if err != nil || confirmingBlock == "" {
		return subscription, nil
	}

	reanchored, err := l.proofSvc.Subscribe(ctx, confirmingBlock, lockAddress)
	if err != nil {
		return subscription, err
	}
	subscription.Close()
	return reanchored, nil
}

func (l *lockService) waitForProof(
	ctx context.Context, subscription ports.ProofSubscription, txid string,
) (*domain.AssetLockProof, error) {
	timer := time.NewTimer(l.proofWaitTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrProofTimeout
		case event, ok := <-subscription.Events():
			if !ok {
				if err := subscription.Err(); err != nil {
					return nil, err
				}
				return nil, ErrProofStreamClosed
			}
			if event.TxID != txid {
				continue
			}
			proof := event.Proof
			return &proof, nil
		}
	}
}

func (l *lockService) recordPayload(
	ctx context.Context,
	kind domain.OperationKind,
	payload *domain.RegistrationPayload,
) (*domain.LockOperation, error) {
	if err := l.operationRepository.UpdateOperation(
		ctx, kind, func(o *domain.LockOperation) (*domain.LockOperation, error) {
			if _, err := o.RecordPayload(payload); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}
	return l.operationRepository.GetOperation(ctx, kind)
}

func (l *lockService) oneTimeAddress(oneTimeKey []byte) (string, error) {
	prvkey, _ := btcec.PrivKeyFromBytes(oneTimeKey)
	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(prvkey.PubKey().SerializeCompressed()), l.netParams,
	)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

func newRegistrationPayload() (*domain.RegistrationPayload, error) {
	publicKeys := make([][]byte, 0, identityKeyCount)
	privateKeys := make([][]byte, 0, identityKeyCount)
	for i := 0; i < identityKeyCount; i++ {
		key, err := btcec.NewPrivateKey()
		if err != nil {
			return nil, err
		}
		publicKeys = append(publicKeys, key.PubKey().SerializeCompressed())
		privateKeys = append(privateKeys, key.Serialize())
	}

	return &domain.RegistrationPayload{
		PublicKeys:  publicKeys,
		PrivateKeys: privateKeys,
	}, nil
}
