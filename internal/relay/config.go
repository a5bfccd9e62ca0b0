package relay

// Config holds the relay service's startup configuration (spec.md
// section 6.6). Rooms and the registry carry no configuration of their
// own; everything the relay needs to know is how to listen.
type Config struct {
	ListenAddr string `long:"listenaddr" description:"host:port the relay HTTP server listens on" default:"localhost:9090"`
	LogLevel   string `long:"loglevel" description:"logging level for the RELY subsystem" default:"info"`
	FileLog    bool   `long:"filelog" description:"accepted but not read; the log sink is chosen at build time by the filelog build tag"`
}

// DefaultConfig returns a Config populated with the same defaults the
// struct tags declare, for callers that construct one without going
// through the flags parser (tests, the in-process test harness).
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: "localhost:9090",
		LogLevel:   "info",
	}
}
