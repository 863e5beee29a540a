package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var register = cli.Command{
	Name:  "register",
	Usage: "lock funds and register a new identity on the platform layer",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "amount",
			Usage: "the amount to lock, in smallest units",
		},
	},
	Action: registerAction,
}

var topup = cli.Command{
	Name:  "topup",
	Usage: "lock funds and top up an existing identity on the platform layer",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "identity",
			Usage: "the id of the identity to top up",
		},
		&cli.Uint64Flag{
			Name:  "amount",
			Usage: "the amount to lock, in smallest units",
		},
	},
	Action: topupAction,
}

func registerAction(ctx *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	appCtx := context.Background()
	if err := initWallet(appCtx, svc); err != nil {
		return err
	}

	if err := svc.RegisterIdentity(appCtx, ctx.Uint64("amount")); err != nil {
		return err
	}

	fmt.Println("identity registered")
	return nil
}

func topupAction(ctx *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	appCtx := context.Background()
	if err := initWallet(appCtx, svc); err != nil {
		return err
	}

	if err := svc.TopUpIdentity(
		appCtx, ctx.String("identity"), ctx.Uint64("amount"),
	); err != nil {
		return err
	}

	fmt.Println("identity topped up")
	return nil
}
