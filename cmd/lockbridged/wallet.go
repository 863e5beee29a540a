package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/assetlock-network/lockbridge-daemon/config"
	"github.com/assetlock-network/lockbridge-daemon/internal/core/application"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "show the wallet balance",
	Action: balanceAction,
}

var refresh = cli.Command{
	Name:   "refresh",
	Usage:  "refresh the wallet unspents from the configured explorer",
	Action: refreshAction,
}

func balanceAction(_ *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if err := initWallet(ctx, svc); err != nil {
		return err
	}

	info, err := svc.WalletBalance(ctx)
	if err != nil {
		return err
	}

	fmt.Printf(
		"balance: %s (%d unspents)\n", info.FormattedBalance, info.NumUnspents,
	)
	return nil
}

func refreshAction(_ *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if err := initWallet(ctx, svc); err != nil {
		return err
	}

	fmt.Println("wallet refreshed")
	return nil
}

// initWallet bootstraps the wallet from the configured private key. A fresh
// key is generated on the very first run if none is configured.
func initWallet(ctx context.Context, svc application.LockService) error {
	return svc.InitWallet(ctx, config.GetString(config.WalletPrivateKeyKey))
}
