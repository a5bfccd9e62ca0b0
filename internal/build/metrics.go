package build

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServeMetrics starts a bare HTTP server exposing Prometheus metrics on
// addr and returns immediately; callers that don't configure an
// address should skip calling this rather than bind an empty listener.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(addr, mux)
}
