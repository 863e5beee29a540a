package txbuilder_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/assetlock-network/lockbridge-daemon/pkg/txbuilder"
)

func newSignedTestTransaction(t *testing.T) *txbuilder.AssetLockTransaction {
	t.Helper()

	prvkey, address, script := newTestKeyAndScript(t)
	tx, _, err := txbuilder.NewAssetLockTransaction(
		txbuilder.NewAssetLockTransactionOpts{
			Inputs:        newTestInputs(script, 50, 70),
			Amount:        100,
			Change:        20,
			Fee:           3,
			SigningKey:    prvkey,
			ChangeAddress: address,
			NetParams:     testNet,
		},
	)
	require.NoError(t, err)
	return tx
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	tx := newSignedTestTransaction(t)

	raw, err := tx.Serialize()
	require.NoError(t, err)

	parsed, err := txbuilder.Deserialize(raw)
	require.NoError(t, err)
	require.Equal(t, tx.Payload.Version, parsed.Payload.Version)
	require.Len(t, parsed.Payload.CreditOutputs, 1)
	require.Equal(t, tx.LockOutput().Value, parsed.LockOutput().Value)
	require.Equal(t, tx.LockOutput().PkScript, parsed.LockOutput().PkScript)

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	require.Equal(t, raw, reserialized)

	txid, err := tx.TxID()
	require.NoError(t, err)
	parsedTxid, err := parsed.TxID()
	require.NoError(t, err)
	require.Equal(t, txid, parsedTxid)
}

func TestFailingDeserialize(t *testing.T) {
	t.Parallel()

	tx := newSignedTestTransaction(t)
	raw, err := tx.Serialize()
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"truncated_payload", raw[:len(raw)-5]},
		{"trailing_bytes", append(append([]byte{}, raw...), 0x00)},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := txbuilder.Deserialize(tt.raw)
			require.EqualError(t, err, txbuilder.ErrMalformedTransaction.Error())
			require.Nil(t, parsed)
		})
	}
}

// A corrupted blob declaring an absurd number of credit outputs or an absurd
// script length must be rejected upfront instead of driving the allocations.
func TestDeserializeRejectsOversizedDeclaredSizes(t *testing.T) {
	t.Parallel()

	tx := newSignedTestTransaction(t)

	newPayloadBlob := func(t *testing.T) *bytes.Buffer {
		t.Helper()
		buf := &bytes.Buffer{}
		require.NoError(t, tx.MsgTx.Serialize(buf))
		require.NoError(t, buf.WriteByte(txbuilder.AssetLockPayloadVersion))
		return buf
	}

	hugeCount := newPayloadBlob(t)
	require.NoError(t, wire.WriteVarInt(hugeCount, 0, 1<<32))

	hugeScriptLen := newPayloadBlob(t)
	require.NoError(t, wire.WriteVarInt(hugeScriptLen, 0, 1))
	_, err := hugeScriptLen.Write(make([]byte, 8))
	require.NoError(t, err)
	require.NoError(t, wire.WriteVarInt(hugeScriptLen, 0, 1<<32))

	tests := []struct {
		name string
		raw  []byte
	}{
		{"huge_output_count", hugeCount.Bytes()},
		{"huge_script_length", hugeScriptLen.Bytes()},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := txbuilder.Deserialize(tt.raw)
			require.EqualError(t, err, txbuilder.ErrMalformedTransaction.Error())
			require.Nil(t, parsed)
		})
	}
}
