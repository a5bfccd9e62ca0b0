package orchestrator

import "time"

// Config holds the orchestrator's startup configuration (spec.md
// section 6.6): the fixed participant endpoints, the chain RPC
// endpoint, the DB URL, and the auth secret.
type Config struct {
	ListenAddr string `long:"listenaddr" description:"host:port the orchestrator HTTP server listens on" default:"localhost:8080"`

	ParticipantAddrs []string `long:"participant" description:"participant gRPC endpoint, repeatable, in party-index order"`
	Threshold        int      `long:"threshold" description:"signing threshold t" default:"2"`

	DatabaseDSN string `long:"databasedsn" description:"postgres connection string"`

	ChainProviderURL string `long:"chainprovider" description:"RPC endpoint used to submit signed transactions"`

	JWTSecret string        `long:"jwtsecret" description:"HMAC secret for bearer tokens"`
	JWTTTL    time.Duration `long:"jwtttl" description:"bearer token lifetime" default:"24h"`

	ParticipantMacaroon string `long:"participantmacaroon" description:"path to the hex-encoded macaroon presented on every participant RPC; empty disables it"`

	MetricsAddr string `long:"metricsaddr" description:"host:port serving Prometheus /metrics; empty disables it"`

	LogLevel string `long:"loglevel" description:"logging level for the ORCH subsystem" default:"info"`
}
