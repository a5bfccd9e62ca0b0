// Command shardctl is the operator CLI for inspecting a running
// deployment: relay room depth, participant liveness, and the
// orchestrator's reconciliation queue (SPEC_FULL.md section B).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "shardctl"
	app.Usage = "operator diagnostics for a shardwallet deployment"
	app.Commands = []cli.Command{
		relayRoomsCommand,
		participantPingCommand,
		reconcileStatusCommand,
		bakeMacaroonCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
