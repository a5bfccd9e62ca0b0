package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli"
)

var reconcileStatusCommand = cli.Command{
	Name:      "reconcile-status",
	Usage:     "report the orchestrator's pending orphan-share cleanup count",
	ArgsUsage: "orchestrator-url",
	Action:    reconcileStatus,
}

func reconcileStatus(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "reconcile-status")
	}

	resp, err := http.Get(ctx.Args().Get(0) + "/internal/reconcile")
	if err != nil {
		return fmt.Errorf("querying orchestrator: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		PendingCount int `json:"pending_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	fmt.Printf("pending reconciliations: %d\n", status.PendingCount)
	return nil
}
