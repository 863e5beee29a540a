package insight_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assetlock-network/lockbridge-daemon/pkg/insight"
)

var (
	tipHash   = "000000000000000000000000000000000000000000000000000000000000beef"
	blockHash = "000000000000000000000000000000000000000000000000000000000000cafe"
	txHash    = "0000000000000000000000000000000000000000000000000000000000000abc"
)

type testExplorer struct {
	broadcastResponse func(w http.ResponseWriter)
	txResponse        func(w http.ResponseWriter)
	utxos             []insight.Utxo
}

func (e *testExplorer) start(t *testing.T) insight.Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"bestblockhash": tipHash})
	})
	mux.HandleFunc("/tx/send", func(w http.ResponseWriter, r *http.Request) {
		if e.broadcastResponse != nil {
			e.broadcastResponse(w)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"txid": txHash})
	})
	mux.HandleFunc("/tx/", func(w http.ResponseWriter, r *http.Request) {
		if e.txResponse != nil {
			e.txResponse(w)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"blockhash": blockHash})
	})
	mux.HandleFunc("/addrs/utxo", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(e.utxos)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc, err := insight.NewService(server.URL, 5000)
	require.NoError(t, err)
	return svc
}

func TestGetBestBlockHash(t *testing.T) {
	t.Parallel()

	svc := (&testExplorer{}).start(t)

	hash, err := svc.GetBestBlockHash()
	require.NoError(t, err)
	require.Equal(t, tipHash, hash)
}

func TestGetTransactionBlockHash(t *testing.T) {
	t.Parallel()

	svc := (&testExplorer{}).start(t)

	hash, err := svc.GetTransactionBlockHash(txHash)
	require.NoError(t, err)
	require.Equal(t, blockHash, hash)
}

func TestGetTransactionBlockHashNotFound(t *testing.T) {
	t.Parallel()

	explorer := &testExplorer{
		txResponse: func(w http.ResponseWriter) {
			http.Error(w, "not found", http.StatusNotFound)
		},
	}
	svc := explorer.start(t)

	_, err := svc.GetTransactionBlockHash(txHash)
	require.EqualError(t, err, insight.ErrTxNotFound.Error())
}

func TestGetTransactionBlockHashUnconfirmed(t *testing.T) {
	t.Parallel()

	explorer := &testExplorer{
		txResponse: func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(map[string]string{"txid": txHash})
		},
	}
	svc := explorer.start(t)

	_, err := svc.GetTransactionBlockHash(txHash)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not confirmed")
}

func TestBroadcastTransaction(t *testing.T) {
	t.Parallel()

	svc := (&testExplorer{}).start(t)

	txid, err := svc.BroadcastTransaction("0300")
	require.NoError(t, err)
	require.Equal(t, txHash, txid)
}

func TestBroadcastTransactionAlreadyBroadcast(t *testing.T) {
	t.Parallel()

	// Every node wording for a duplicate submission maps to the same
	// sentinel.
	responses := []string{
		"16: transaction already in block chain",
		"18: txn-already-in-mempool",
		"257: txn-already-known",
	}

	for _, response := range responses {
		explorer := &testExplorer{
			broadcastResponse: func(w http.ResponseWriter) {
				http.Error(w, response, http.StatusBadRequest)
			},
		}
		svc := explorer.start(t)

		_, err := svc.BroadcastTransaction("0300")
		require.EqualError(t, err, insight.ErrTxAlreadyBroadcast.Error())
	}
}

func TestBroadcastTransactionFailure(t *testing.T) {
	t.Parallel()

	explorer := &testExplorer{
		broadcastResponse: func(w http.ResponseWriter) {
			http.Error(w, "64: dust", http.StatusBadRequest)
		},
	}
	svc := explorer.start(t)

	_, err := svc.BroadcastTransaction("0300")
	require.Error(t, err)
	require.NotEqual(t, insight.ErrTxAlreadyBroadcast, err)
}

func TestGetUnspents(t *testing.T) {
	t.Parallel()

	explorer := &testExplorer{
		utxos: []insight.Utxo{
			{TxID: txHash, VOut: 0, Value: 50, Confirmations: 6},
			{TxID: txHash, VOut: 1, Value: 70, Confirmations: 0},
		},
	}
	svc := explorer.start(t)

	utxos, err := svc.GetUnspents("an address")
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	require.True(t, utxos[0].IsConfirmed())
	require.False(t, utxos[1].IsConfirmed())
}

func TestFailingHealthCheck(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		},
	))
	t.Cleanup(server.Close)

	_, err := insight.NewService(server.URL, 5000)
	require.Error(t, err)
}
