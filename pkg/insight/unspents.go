package insight

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

func (i *insight) GetUnspents(addr string) ([]Utxo, error) {
	endpoint := fmt.Sprintf("%s/addrs/utxo", i.apiURL)
	body := fmt.Sprintf("addrs=%s", url.QueryEscape(addr))
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	status, resp, err := i.newHTTPRequest("POST", endpoint, body, headers)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	utxos := make([]Utxo, 0)
	if err := json.Unmarshal([]byte(resp), &utxos); err != nil {
		return nil, fmt.Errorf("invalid utxo list JSON: %w", err)
	}

	return utxos, nil
}
