package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/assetlock-network/lockbridge-daemon/internal/core/domain"
)

var status = cli.Command{
	Name:  "status",
	Usage: "show the state of an in-flight operation",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "the operation kind, either 'registration' or 'topup'",
		},
	},
	Action: statusAction,
}

var drop = cli.Command{
	Name:  "drop",
	Usage: "abandon an in-flight operation",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "the operation kind, either 'registration' or 'topup'",
		},
	},
	Action: dropAction,
}

func statusAction(ctx *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.GetOperationInfo(
		context.Background(), domain.OperationKind(ctx.String("kind")),
	)
	if err != nil {
		return err
	}

	fmt.Printf(
		"kind: %s\nstatus: %d\namount: %d\ntxid: %s\nproof: %t\npayload: %t\ntarget: %s\n",
		info.Kind, info.StatusCode, info.Amount, info.TxID,
		info.HasProof, info.HasPayload, info.Target,
	)
	return nil
}

func dropAction(ctx *cli.Context) error {
	svc, cleanup, err := getLockService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.DropOperation(
		context.Background(), domain.OperationKind(ctx.String("kind")),
	); err != nil {
		return err
	}

	fmt.Println("operation dropped")
	return nil
}
