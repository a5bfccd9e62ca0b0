// Command participant runs one party index's cryptographic state
// machine: the keygen/aux-info/signing sub-ceremonies described in
// spec.md section 4.2, exposed over gRPC.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/grpc-ecosystem/go-grpc-middleware"
	"github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"google.golang.org/grpc"

	"github.com/shardwallet/shardwallet/internal/build"
	"github.com/shardwallet/shardwallet/internal/participant"
	"github.com/shardwallet/shardwallet/internal/rpcauth"
	"github.com/shardwallet/shardwallet/internal/secretstore"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &participant.Config{}
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logWriter := build.NewDefaultWriter()
	log := build.AddSubLogger(logWriter, "PART")
	if lvl, ok := build.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(lvl)
	}

	store, err := secretstore.New(cfg.VaultAddr, cfg.VaultToken, cfg.VaultMount)
	if err != nil {
		return fmt.Errorf("building secret store: %w", err)
	}

	srv := participant.NewServer(cfg, store, log)

	grpcLog := build.AddSubLogger(logWriter, "GRPC")
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		grpc_prometheus.UnaryServerInterceptor,
		build.ErrorLogUnaryServerInterceptor(grpcLog),
	}
	if cfg.OrchestratorMacaroon != "" {
		mac, err := rpcauth.LoadHex(cfg.OrchestratorMacaroon)
		if err != nil {
			return fmt.Errorf("loading macaroon: %w", err)
		}
		unaryInterceptors = append([]grpc.UnaryServerInterceptor{rpcauth.UnaryServerInterceptor(mac)}, unaryInterceptors...)
	}

	grpcSrv := grpc.NewServer(
		grpc.ForceServerCodec(mpc.Codec{}),
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(unaryInterceptors...)),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
			grpc_prometheus.StreamServerInterceptor,
			build.ErrorLogStreamServerInterceptor(grpcLog),
		)),
	)
	mpc.RegisterParticipantServer(grpcSrv, srv)
	grpc_prometheus.Register(grpcSrv)

	if cfg.MetricsAddr != "" {
		build.ServeMetrics(cfg.MetricsAddr)
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.ListenAddr, err)
	}

	log.Infof("participant %d listening on %s", cfg.Index, cfg.ListenAddr)
	return grpcSrv.Serve(lis)
}
