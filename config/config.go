package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// InsightEndpointKey is the endpoint where the insight-style REST API of
	// the base chain is listening
	InsightEndpointKey = "INSIGHT_ENDPOINT"
	// InsightRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	InsightRequestTimeoutKey = "INSIGHT_REQUEST_TIMEOUT"
	// ProofStreamEndpointKey is the websocket endpoint emitting asset-lock attestations
	ProofStreamEndpointKey = "PROOF_STREAM_ENDPOINT"
	// PlatformEndpointKey is the endpoint of the platform layer consuming lock proofs
	PlatformEndpointKey = "PLATFORM_ENDPOINT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network to use. Either "mainnet", "testnet3" or "regtest"
	NetworkKey = "NETWORK"
	// NetworkFeeKey is the flat network fee (in smallest units) paid by asset-lock transactions
	NetworkFeeKey = "NETWORK_FEE"
	// ProofWaitTimeoutKey is the duration to wait for a lock proof on the
	// attestation stream before giving up. Retrying after a timeout is safe.
	ProofWaitTimeoutKey = "PROOF_WAIT_TIMEOUT"
	// WalletPrivateKeyKey is the private key (hex or WIF) of the daemon's single-key wallet
	WalletPrivateKeyKey = "WALLET_PRIVATE_KEY"

	// DbLocation is the folder inside the datadir containing db files
	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("lockbridge-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("LOCKBRIDGE")
	vip.AutomaticEnv()

	vip.SetDefault(InsightEndpointKey, "http://localhost:3001/insight-api")
	vip.SetDefault(InsightRequestTimeoutKey, 15000)
	vip.SetDefault(ProofStreamEndpointKey, "ws://localhost:3002/subscribe")
	vip.SetDefault(PlatformEndpointKey, "http://localhost:3003")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, chaincfg.TestNet3Params.Name)
	vip.SetDefault(NetworkFeeKey, 30000)
	vip.SetDefault(ProofWaitTimeoutKey, 5*time.Minute)
	vip.SetDefault(DatadirKey, defaultDatadir)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetUint64 ...
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetNetwork returns the chain parameters matching the configured network name.
func GetNetwork() *chaincfg.Params {
	switch vip.GetString(NetworkKey) {
	case chaincfg.MainNetParams.Name:
		return &chaincfg.MainNetParams
	case chaincfg.RegressionNetParams.Name:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.TestNet3Params
	}
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if _, err := url.Parse(GetString(InsightEndpointKey)); err != nil {
		return fmt.Errorf("insight endpoint: %w", err)
	}

	u, err := url.Parse(GetString(ProofStreamEndpointKey))
	if err != nil {
		return fmt.Errorf("proof stream endpoint: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("proof stream endpoint must be a ws:// or wss:// url")
	}

	if GetUint64(NetworkFeeKey) == 0 {
		return fmt.Errorf("network fee must not be zero")
	}

	switch name := GetString(NetworkKey); name {
	case chaincfg.MainNetParams.Name,
		chaincfg.TestNet3Params.Name,
		chaincfg.RegressionNetParams.Name:
	default:
		return fmt.Errorf(
			"network must be either 'mainnet', 'testnet3' or 'regtest', got '%s'",
			name,
		)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
