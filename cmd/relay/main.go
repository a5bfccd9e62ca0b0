// Command relay runs the standalone per-ceremony message relay
// described in spec.md section 4.3: an ordered append log with SSE
// fan-out, fronted by three HTTP endpoints.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/shardwallet/shardwallet/internal/build"
	"github.com/shardwallet/shardwallet/internal/relay"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := relay.DefaultConfig()
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logWriter := build.NewDefaultWriter()
	log := build.AddSubLogger(logWriter, "RELY")
	if lvl, ok := build.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(lvl)
	}

	srv := relay.NewServer(log)
	log.Infof("relay listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, srv.Router())
}
