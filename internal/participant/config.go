package participant

// Config holds one participant's startup configuration (spec.md section
// 6.6): its static index, the fixed party count/threshold, and the
// relay and secret-store endpoints it talks to.
type Config struct {
	ListenAddr   string `long:"listenaddr" description:"host:port the participant gRPC server listens on" default:"localhost:10000"`
	Index        uint16 `long:"index" description:"this participant's static party index (0-based)" required:"true"`
	TotalParties uint16 `long:"totalparties" description:"total number of participants N" default:"3"`
	Threshold    uint16 `long:"threshold" description:"signing threshold t" default:"2"`

	RelayURL string `long:"relayurl" description:"base URL of the relay service" default:"http://localhost:9090"`

	VaultAddr  string `long:"vaultaddr" description:"HashiCorp Vault address" default:"http://localhost:8200"`
	VaultToken string `long:"vaulttoken" description:"HashiCorp Vault token"`
	VaultMount string `long:"vaultmount" description:"Vault KV v2 mount point" default:"secret"`

	OrchestratorMacaroon string `long:"orchestratormacaroon" description:"path to the hex-encoded macaroon this participant requires on incoming RPCs; empty disables the check"`

	MetricsAddr string `long:"metricsaddr" description:"host:port serving Prometheus /metrics; empty disables it"`

	LogLevel string `long:"loglevel" description:"logging level for the PART subsystem" default:"info"`
}
