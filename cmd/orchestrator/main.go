// Command orchestrator runs the HTTP-facing coordinator described in
// spec.md sections 4.1 and 6.4: user accounts, wallet lifecycle, and
// signing ceremonies fanned out to the fixed participant set.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/shardwallet/shardwallet/internal/build"
	"github.com/shardwallet/shardwallet/internal/chain"
	"github.com/shardwallet/shardwallet/internal/chain/bitcoin"
	"github.com/shardwallet/shardwallet/internal/chain/ethereum"
	"github.com/shardwallet/shardwallet/internal/orchestrator"
	"github.com/shardwallet/shardwallet/internal/orchestrator/api"
	"github.com/shardwallet/shardwallet/internal/orchestrator/authn"
	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
	orchdb "github.com/shardwallet/shardwallet/internal/orchestrator/db"
	"github.com/shardwallet/shardwallet/internal/orchestrator/reconcile"
	"github.com/shardwallet/shardwallet/internal/rpcauth"
	macaroon "gopkg.in/macaroon.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &orchestrator.Config{}
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logWriter := build.NewDefaultWriter()
	log := build.AddSubLogger(logWriter, "ORCH")
	if lvl, ok := build.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(lvl)
	}

	gdb, err := orchdb.Open(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	var mac *macaroon.Macaroon
	if cfg.ParticipantMacaroon != "" {
		mac, err = rpcauth.LoadHex(cfg.ParticipantMacaroon)
		if err != nil {
			return fmt.Errorf("loading participant macaroon: %w", err)
		}
	}

	participants, err := ceremony.Dial(cfg.ParticipantAddrs, mac)
	if err != nil {
		return fmt.Errorf("dialing participants: %w", err)
	}
	defer participants.Close()

	if cfg.MetricsAddr != "" {
		build.ServeMetrics(cfg.MetricsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ethProvider, err := ethereum.DialProvider(ctx, cfg.ChainProviderURL)
	if err != nil {
		return fmt.Errorf("dialing chain provider: %w", err)
	}
	builders := map[orchdb.Chain]chain.Builder{
		orchdb.ChainEthereum: ethereum.Builder{},
		orchdb.ChainBitcoin:  bitcoin.Builder{},
	}
	providers := map[orchdb.Chain]chain.Provider{
		orchdb.ChainEthereum: ethProvider,
		orchdb.ChainBitcoin:  bitcoin.NewRPCProvider(cfg.ChainProviderURL),
	}

	issuer := authn.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL)

	reconcileQueue := reconcile.NewQueue()
	reconcileLog := build.AddSubLogger(logWriter, "RCON")
	worker := reconcile.NewWorker(reconcileQueue, participants, reconcileLog)
	go worker.Run(ctx)

	srv := api.NewServer(gdb, participants, cfg.Threshold, builders, providers, reconcileQueue, issuer, log)

	log.Infof("orchestrator listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, srv.Router())
}
