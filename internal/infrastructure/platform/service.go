package platform

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/ports"
)

type service struct {
	apiURL string
	client *http.Client
}

// NewService returns a ports.PlatformService submitting lock proofs to the
// platform layer over its REST API. The platform verifies proofs and mints
// credits on its own, this client only delivers the inputs.
func NewService(apiURL string) ports.PlatformService {
	return &service{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type registerRequest struct {
	Transaction string   `json:"transaction"`
	Proof       proofDTO `json:"proof"`
	OneTimeKey  string   `json:"oneTimeKey"`
	PublicKeys  []string `json:"publicKeys"`
}

type topUpRequest struct {
	Identity    string   `json:"identity"`
	Transaction string   `json:"transaction"`
	Proof       proofDTO `json:"proof"`
	OneTimeKey  string   `json:"oneTimeKey"`
}

type proofDTO struct {
	TxID      string `json:"txid"`
	OutIndex  uint32 `json:"outIndex"`
	BlockHash string `json:"blockHash"`
	Signature []byte `json:"signature"`
}

func (s *service) RegisterIdentity(
	ctx context.Context,
	rawTx []byte,
	proof domain.AssetLockProof,
	oneTimeKey []byte,
	payload domain.RegistrationPayload,
) error {
	publicKeys := make([]string, 0, len(payload.PublicKeys))
	for _, key := range payload.PublicKeys {
		publicKeys = append(publicKeys, hex.EncodeToString(key))
	}

	return s.post(ctx, "/identities", registerRequest{
		Transaction: hex.EncodeToString(rawTx),
		Proof:       newProofDTO(proof),
		OneTimeKey:  hex.EncodeToString(oneTimeKey),
		PublicKeys:  publicKeys,
	})
}

func (s *service) TopUpIdentity(
	ctx context.Context,
	identity string,
	rawTx []byte,
	proof domain.AssetLockProof,
	oneTimeKey []byte,
) error {
	return s.post(ctx, "/identities/topup", topUpRequest{
		Identity:    identity,
		Transaction: hex.EncodeToString(rawTx),
		Proof:       newProofDTO(proof),
		OneTimeKey:  hex.EncodeToString(oneTimeKey),
	})
}

func newProofDTO(proof domain.AssetLockProof) proofDTO {
	return proofDTO{
		TxID:      proof.TxID,
		OutIndex:  proof.OutIndex,
		BlockHash: proof.BlockHash,
		Signature: proof.Signature,
	}
}

func (s *service) post(ctx context.Context, path string, payload interface{}) error {
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(
		ctx, "POST", s.apiURL+path, bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("platform returned status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
