package txbuilder

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// signInputs produces for every input the legacy signature hash over the
// transaction skeleton and the spent output's locking script, signs it with
// the wallet key, and assembles the unlocking script as
// [DER signature + hashtype byte, compressed public key], both length-prefixed
// push operations.
func signInputs(msgTx *wire.MsgTx, inputs []Input, prvkey *btcec.PrivateKey) error {
	pubkey := prvkey.PubKey().SerializeCompressed()

	for i := range inputs {
		sighash, err := txscript.CalcSignatureHash(
			inputs[i].ScriptPubKey, txscript.SigHashAll, msgTx, i,
		)
		if err != nil {
			return err
		}

		signature := ecdsa.Sign(prvkey, sighash)
		if !signature.Verify(sighash, prvkey.PubKey()) {
			return fmt.Errorf("signature verification failed for input %d", i)
		}

		sigWithHashType := append(signature.Serialize(), byte(txscript.SigHashAll))
		scriptSig, err := txscript.NewScriptBuilder().
			AddData(sigWithHashType).
			AddData(pubkey).
			Script()
		if err != nil {
			return err
		}
		msgTx.TxIn[i].SignatureScript = scriptSig
	}

	return nil
}

// VerifyInputSignatures recomputes the signature hash of every input of the
// given transaction against the corresponding previous locking script and
// verifies the DER signature found in its unlocking script.
func VerifyInputSignatures(tx *AssetLockTransaction, prevScripts [][]byte) error {
	if len(prevScripts) != len(tx.MsgTx.TxIn) {
		return fmt.Errorf(
			"got %d previous scripts for %d inputs",
			len(prevScripts), len(tx.MsgTx.TxIn),
		)
	}

	for i, in := range tx.MsgTx.TxIn {
		pushes, err := txscript.PushedData(in.SignatureScript)
		if err != nil || len(pushes) != 2 {
			return ErrMalformedSignatureScript
		}
		sigWithHashType, rawPubkey := pushes[0], pushes[1]
		if len(sigWithHashType) <= 1 ||
			sigWithHashType[len(sigWithHashType)-1] != byte(txscript.SigHashAll) {
			return ErrMalformedSignatureScript
		}

		signature, err := ecdsa.ParseDERSignature(
			sigWithHashType[:len(sigWithHashType)-1],
		)
		if err != nil {
			return ErrMalformedSignatureScript
		}
		pubkey, err := btcec.ParsePubKey(rawPubkey)
		if err != nil {
			return ErrMalformedSignatureScript
		}

		sighash, err := txscript.CalcSignatureHash(
			prevScripts[i], txscript.SigHashAll, tx.MsgTx, i,
		)
		if err != nil {
			return err
		}
		if !signature.Verify(sighash, pubkey) {
			return fmt.Errorf("invalid signature for input %d", i)
		}
	}

	return nil
}
