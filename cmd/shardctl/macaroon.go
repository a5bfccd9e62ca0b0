package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/shardwallet/shardwallet/internal/rpcauth"
)

var bakeMacaroonCommand = cli.Command{
	Name:      "bake-macaroon",
	Usage:     "generate a fresh macaroon and write it to a file in the format the Orchestrator and a Participant both load",
	ArgsUsage: "output-path",
	Action:    bakeMacaroon,
}

func bakeMacaroon(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "bake-macaroon")
	}

	rootKey := make([]byte, 32)
	if _, err := rand.Read(rootKey); err != nil {
		return fmt.Errorf("generating root key: %w", err)
	}
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return fmt.Errorf("generating macaroon id: %w", err)
	}

	mac, err := rpcauth.Bake(rootKey, id, "shardwallet")
	if err != nil {
		return err
	}
	encoded, err := rpcauth.EncodeHex(mac)
	if err != nil {
		return err
	}

	if err := os.WriteFile(ctx.Args().Get(0), []byte(encoded), 0600); err != nil {
		return fmt.Errorf("writing macaroon file: %w", err)
	}
	fmt.Println("wrote macaroon, share this one file between the orchestrator and every participant")
	return nil
}
