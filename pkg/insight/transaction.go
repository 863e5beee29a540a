package insight

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func (i *insight) GetBestBlockHash() (string, error) {
	url := fmt.Sprintf("%s/status?q=getBestBlockHash", i.apiURL)
	status, resp, err := i.newHTTPRequest("GET", url, "", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	var payload struct {
		BestBlockHash string `json:"bestblockhash"`
	}
	if err := json.Unmarshal([]byte(resp), &payload); err != nil {
		return "", fmt.Errorf("invalid status JSON: %w", err)
	}
	if len(payload.BestBlockHash) <= 0 {
		return "", fmt.Errorf("missing bestblockhash in status response")
	}

	return payload.BestBlockHash, nil
}

func (i *insight) GetTransactionBlockHash(txid string) (string, error) {
	url := fmt.Sprintf("%s/tx/%s", i.apiURL, txid)
	status, resp, err := i.newHTTPRequest("GET", url, "", nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrTxNotFound
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	var payload struct {
		BlockHash string `json:"blockhash"`
	}
	if err := json.Unmarshal([]byte(resp), &payload); err != nil {
		return "", fmt.Errorf("invalid tx JSON: %w", err)
	}
	if len(payload.BlockHash) <= 0 {
		return "", fmt.Errorf("transaction %s is not confirmed yet", txid)
	}

	return payload.BlockHash, nil
}

func (i *insight) BroadcastTransaction(txHex string) (string, error) {
	url := fmt.Sprintf("%s/tx/send", i.apiURL)
	body, _ := json.Marshal(map[string]string{"rawtx": txHex})
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	status, resp, err := i.newHTTPRequest("POST", url, string(body), headers)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		if isAlreadyBroadcastResponse(resp) {
			return "", ErrTxAlreadyBroadcast
		}
		return "", fmt.Errorf(resp)
	}

	var payload struct {
		TxID string `json:"txid"`
	}
	if err := json.Unmarshal([]byte(resp), &payload); err != nil {
		return "", fmt.Errorf("invalid broadcast JSON: %w", err)
	}

	return payload.TxID, nil
}

// isAlreadyBroadcastResponse classifies the node errors raised for a
// transaction that is already in the mempool or in a block. The exact wording
// depends on the node version, hence the multiple variants.
func isAlreadyBroadcastResponse(resp string) bool {
	for _, marker := range []string{
		"transaction already in block chain",
		"txn-already-in-mempool",
		"txn-already-known",
	} {
		if strings.Contains(resp, marker) {
			return true
		}
	}
	return false
}
