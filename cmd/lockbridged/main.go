package main

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/assetlock-network/lockbridge-daemon/config"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/application"
	"github.com/assetlock-network/lockbridge-daemon/internal/infrastructure/blockchain"
	"github.com/assetlock-network/lockbridge-daemon/internal/infrastructure/platform"
	dbbadger "github.com/assetlock-network/lockbridge-daemon/internal/infrastructure/storage/db/badger"
	"github.com/assetlock-network/lockbridge-daemon/pkg/insight"
	"github.com/assetlock-network/lockbridge-daemon/pkg/proofstream"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "lockbridged"
	app.Usage = "asset-lock bridge between the base-chain wallet and the platform credits ledger"
	app.Commands = append(
		app.Commands,
		&balance,
		&refresh,
		&register,
		&topup,
		&status,
		&drop,
	)

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("exiting")
	}
}

// getLockService wires the whole service stack against the configured
// endpoints and the local datadir. The returned cleanup must be deferred by
// the caller.
func getLockService() (application.LockService, func(), error) {
	insightSvc, err := insight.NewService(
		config.GetString(config.InsightEndpointKey),
		config.GetInt(config.InsightRequestTimeoutKey),
	)
	if err != nil {
		return nil, nil, err
	}
	proofStreamSvc := proofstream.NewService(
		config.GetString(config.ProofStreamEndpointKey),
	)
	platformSvc := platform.NewService(config.GetString(config.PlatformEndpointKey))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	dbManager, err := dbbadger.NewDbManager(dbDir, log.New())
	if err != nil {
		return nil, nil, err
	}

	svc := application.NewLockService(
		dbManager.WalletRepository(),
		dbManager.LockOperationRepository(),
		blockchain.NewChainService(insightSvc),
		blockchain.NewProofService(proofStreamSvc),
		blockchain.NewUtxoSource(insightSvc),
		platformSvc,
		config.GetUint64(config.NetworkFeeKey),
		config.GetDuration(config.ProofWaitTimeoutKey),
		config.GetNetwork(),
	)

	return svc, dbManager.Close, nil
}
