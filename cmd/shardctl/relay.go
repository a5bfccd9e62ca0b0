package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/jedib0t/go-pretty/table"
	"github.com/urfave/cli"
)

type roomSummary struct {
	RoomID      string `json:"room_id"`
	Messages    int    `json:"messages"`
	Subscribers int32  `json:"subscribers"`
}

var relayRoomsCommand = cli.Command{
	Name:      "relay-rooms",
	Usage:     "list a relay's active ceremony rooms",
	ArgsUsage: "relay-url",
	Action:    relayRooms,
}

func relayRooms(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "relay-rooms")
	}

	resp, err := http.Get(ctx.Args().Get(0) + "/internal/rooms")
	if err != nil {
		return fmt.Errorf("querying relay: %w", err)
	}
	defer resp.Body.Close()

	var rooms []roomSummary
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Room", "Messages", "Subscribers"})
	for _, r := range rooms {
		t.AppendRow(table.Row{r.RoomID, r.Messages, r.Subscribers})
	}
	t.Render()
	return nil
}
