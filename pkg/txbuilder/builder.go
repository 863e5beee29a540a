package txbuilder

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Input is a previously unspent output consumed by an asset-lock transaction.
// ScriptPubKey is the locking script of the spent output, needed to compute
// the input's signature hash.
type Input struct {
	TxID         string
	VOut         uint32
	Value        uint64
	ScriptPubKey []byte
}

// NewAssetLockTransactionOpts is the struct given to the
// NewAssetLockTransaction method.
type NewAssetLockTransactionOpts struct {
	Inputs        []Input
	Amount        uint64
	Change        uint64
	Fee           uint64
	SigningKey    *btcec.PrivateKey
	ChangeAddress string
	NetParams     *chaincfg.Params
}

func (o NewAssetLockTransactionOpts) validate() error {
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if o.Amount == 0 {
		return ErrZeroLockAmount
	}
	if o.SigningKey == nil {
		return ErrNullSigningKey
	}
	if o.NetParams == nil {
		return ErrNullNetParams
	}
	if _, err := btcutil.DecodeAddress(o.ChangeAddress, o.NetParams); err != nil {
		return ErrInvalidChangeAddress
	}

	var total uint64
	for _, in := range o.Inputs {
		if in.Value == 0 {
			return ErrZeroInputAmount
		}
		if len(in.ScriptPubKey) <= 0 {
			return ErrNullInputScript
		}
		if _, err := chainhash.NewHashFromStr(in.TxID); err != nil {
			return ErrInvalidInputTxID
		}
		total += in.Value
	}
	if total != o.Amount+o.Change {
		return ErrInputsChangeMismatch
	}

	return nil
}

// NewAssetLockTransaction builds and signs a transaction that locks Amount
// for the platform layer and pays Change-Fee back to the change address.
// The lock output pays the pubkey hash of a fresh single-use key pair whose
// private key is returned to the caller and MUST NOT be added to the wallet's
// own key material: it is needed once, to claim the lock proof. All inputs
// are signed with the provided wallet key, the owner of the spent outputs.
// If the change cannot cover the fee the build fails with
// ErrInsufficientFunds before any signing happens.
func NewAssetLockTransaction(
	opts NewAssetLockTransactionOpts,
) (*AssetLockTransaction, *btcec.PrivateKey, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if opts.Change < opts.Fee {
		return nil, nil, ErrInsufficientFunds
	}

	oneTimeKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, err
	}
	lockScript, err := p2pkhScript(
		oneTimeKey.PubKey().SerializeCompressed(), opts.NetParams,
	)
	if err != nil {
		return nil, nil, err
	}

	changeAddress, _ := btcutil.DecodeAddress(opts.ChangeAddress, opts.NetParams)
	changeScript, err := txscript.PayToAddrScript(changeAddress)
	if err != nil {
		return nil, nil, err
	}

	msgTx := wire.NewMsgTx(AssetLockTxVersion)
	for _, in := range opts.Inputs {
		hash, _ := chainhash.NewHashFromStr(in.TxID)
		msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(hash, in.VOut), nil, nil))
	}
	msgTx.AddTxOut(wire.NewTxOut(int64(opts.Amount), lockScript))
	msgTx.AddTxOut(wire.NewTxOut(int64(opts.Change-opts.Fee), changeScript))

	if err := signInputs(msgTx, opts.Inputs, opts.SigningKey); err != nil {
		return nil, nil, err
	}

	tx := &AssetLockTransaction{
		MsgTx: msgTx,
		Payload: &AssetLockPayload{
			Version: AssetLockPayloadVersion,
			CreditOutputs: []*wire.TxOut{
				wire.NewTxOut(int64(opts.Amount), lockScript),
			},
		},
	}

	return tx, oneTimeKey, nil
}

func p2pkhScript(pubkey []byte, net *chaincfg.Params) ([]byte, error) {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubkey), net)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}
