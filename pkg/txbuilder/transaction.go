package txbuilder

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// AssetLockPayloadVersion is the version tag of the structured payload
	// embedded in asset-lock transactions.
	AssetLockPayloadVersion uint8 = 1
	// AssetLockTxVersion is the base-chain transaction version reserved for
	// asset-lock transactions.
	AssetLockTxVersion int32 = 3

	// minTxOutSerializeSize is the smallest serialized credit output: the
	// 8-byte value plus a 1-byte script length.
	minTxOutSerializeSize = 9
)

// AssetLockPayload declares the amount locked for the platform layer as a
// list of credit outputs.
type AssetLockPayload struct {
	Version       uint8
	CreditOutputs []*wire.TxOut
}

// AssetLockTransaction is a base-chain transaction with a dedicated lock
// output and the structured asset-lock payload appended to its wire
// serialization.
type AssetLockTransaction struct {
	MsgTx   *wire.MsgTx
	Payload *AssetLockPayload
}

// LockOutput returns the output earmarked for the platform layer, ie. the
// sole credit output of the payload.
func (t *AssetLockTransaction) LockOutput() *wire.TxOut {
	if t.Payload == nil || len(t.Payload.CreditOutputs) <= 0 {
		return nil
	}
	return t.Payload.CreditOutputs[0]
}

// Serialize returns the wire serialization of the transaction followed by
// the payload. Serialize and Deserialize are exact inverses.
func (t *AssetLockTransaction) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, t.MsgTx.SerializeSize()+9))
	if err := t.MsgTx.Serialize(buf); err != nil {
		return nil, err
	}

	if err := buf.WriteByte(t.Payload.Version); err != nil {
		return nil, err
	}
	if err := wire.WriteVarInt(
		buf, 0, uint64(len(t.Payload.CreditOutputs)),
	); err != nil {
		return nil, err
	}
	for _, out := range t.Payload.CreditOutputs {
		if err := writeTxOut(buf, out); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Deserialize parses a serialized asset-lock transaction.
func Deserialize(raw []byte) (*AssetLockTransaction, error) {
	r := bytes.NewReader(raw)

	msgTx := &wire.MsgTx{}
	if err := msgTx.Deserialize(r); err != nil {
		return nil, ErrMalformedTransaction
	}

	version, err := r.ReadByte()
	if err != nil {
		return nil, ErrMalformedTransaction
	}
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, ErrMalformedTransaction
	}
	// A serialized credit output takes at least minTxOutSerializeSize bytes,
	// a count beyond that bound cannot be satisfied by the remaining bytes
	// and must not drive the allocation.
	if count > uint64(r.Len())/minTxOutSerializeSize {
		return nil, ErrMalformedTransaction
	}
	creditOutputs := make([]*wire.TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		out, err := readTxOut(r)
		if err != nil {
			return nil, ErrMalformedTransaction
		}
		creditOutputs = append(creditOutputs, out)
	}
	if r.Len() > 0 {
		return nil, ErrMalformedTransaction
	}

	return &AssetLockTransaction{
		MsgTx: msgTx,
		Payload: &AssetLockPayload{
			Version:       version,
			CreditOutputs: creditOutputs,
		},
	}, nil
}

// TxID returns the hex-encoded double-sha256 hash of the full serialization,
// payload included.
func (t *AssetLockTransaction) TxID() (string, error) {
	raw, err := t.Serialize()
	if err != nil {
		return "", err
	}
	return chainhash.DoubleHashH(raw).String(), nil
}

func writeTxOut(w io.Writer, out *wire.TxOut) error {
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], uint64(out.Value))
	if _, err := w.Write(value[:]); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(out.PkScript))); err != nil {
		return err
	}
	_, err := w.Write(out.PkScript)
	return err
}

func readTxOut(r *bytes.Reader) (*wire.TxOut, error) {
	var value [8]byte
	if _, err := io.ReadFull(r, value[:]); err != nil {
		return nil, err
	}
	scriptLen, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if scriptLen > uint64(r.Len()) {
		return nil, ErrMalformedTransaction
	}
	script := make([]byte, scriptLen)
	if _, err := io.ReadFull(r, script); err != nil {
		return nil, err
	}
	return wire.NewTxOut(int64(binary.LittleEndian.Uint64(value[:])), script), nil
}
