// Package testharness boots an in-process relay and a full set of
// participant gRPC servers so ceremony-level code (internal/orchestrator
// /ceremony, internal/participant) can be exercised end to end without a
// real relay deployment, real Vault cluster, or network. It plays the
// role the teacher's lntest/harness.go played for dcrlnd: a
// programmatically driven cluster of the system's own binaries' handler
// code, wired together in-process instead of as subprocesses.
package testharness

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/grpc"

	"github.com/shardwallet/shardwallet/internal/build"
	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
	"github.com/shardwallet/shardwallet/internal/participant"
	"github.com/shardwallet/shardwallet/internal/relay"
	"github.com/shardwallet/shardwallet/internal/secretstore"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

// Cluster is a running relay plus N participant servers, all in-process.
type Cluster struct {
	Relay        *httptest.Server
	RelayServer  *relay.Server
	Participants *ceremony.Participants

	vaults    []*httptest.Server
	grpcSrvs  []*grpc.Server
	listeners []net.Listener
}

// New starts a relay and `total` participants, each with its own
// in-memory fake-Vault backend, and dials the orchestrator-side
// Participants set against them. Index i's party index is i.
func New(t *testing.T, threshold, total uint16) *Cluster {
	t.Helper()

	log := build.AddSubLogger(build.NewDefaultWriter(), "TEST")

	relaySrv := relay.NewServer(log)
	relayHTTP := httptest.NewServer(relaySrv.Router())
	t.Cleanup(relayHTTP.Close)

	c := &Cluster{Relay: relayHTTP, RelayServer: relaySrv}

	endpoints := make([]string, total)
	for i := uint16(0); i < total; i++ {
		vault := fakeVaultServer()
		c.vaults = append(c.vaults, vault)
		t.Cleanup(vault.Close)

		store, err := secretstore.New(vault.URL, "test-token", "secret")
		if err != nil {
			t.Fatalf("testharness: building secret store for party %d: %v", i, err)
		}

		cfg := &participant.Config{
			Index:        i,
			TotalParties: total,
			Threshold:    threshold,
			RelayURL:     relayHTTP.URL,
		}
		partLog := build.AddSubLogger(build.NewDefaultWriter(), fmt.Sprintf("PART%d", i))
		srv := participant.NewServer(cfg, store, partLog)

		grpcSrv := grpc.NewServer(grpc.ForceServerCodec(mpc.Codec{}))
		mpc.RegisterParticipantServer(grpcSrv, srv)

		lis, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("testharness: listening for party %d: %v", i, err)
		}
		c.listeners = append(c.listeners, lis)
		c.grpcSrvs = append(c.grpcSrvs, grpcSrv)

		go grpcSrv.Serve(lis)
		t.Cleanup(grpcSrv.Stop)

		endpoints[i] = lis.Addr().String()
	}

	participants, err := ceremony.Dial(endpoints, nil)
	if err != nil {
		t.Fatalf("testharness: dialing participants: %v", err)
	}
	t.Cleanup(participants.Close)
	c.Participants = participants
	return c
}

func (c *Cluster) Close() {
	for _, l := range c.listeners {
		l.Close()
	}
}

// fakeVaultServer emulates the slice of Vault's KV-v2 HTTP API that
// internal/secretstore.Store exercises, scoped to one participant.
func fakeVaultServer() *httptest.Server {
	data := make(map[string]string)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const dataPrefix = "/v1/secret/data/"
		const metaPrefix = "/v1/secret/metadata/"
		switch {
		case r.Method == http.MethodPut && len(r.URL.Path) > len(dataPrefix) && r.URL.Path[:len(dataPrefix)] == dataPrefix:
			walletID := r.URL.Path[len(dataPrefix):]
			var body struct {
				Data map[string]interface{} `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data[walletID], _ = body.Data["key_share"].(string)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data":{"version":1}}`)

		case r.Method == http.MethodGet && len(r.URL.Path) > len(dataPrefix) && r.URL.Path[:len(dataPrefix)] == dataPrefix:
			walletID := r.URL.Path[len(dataPrefix):]
			blob, ok := data[walletID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"data":{"data":{"key_share":%q},"metadata":{"version":1}}}`, blob)

		case r.Method == http.MethodDelete && len(r.URL.Path) > len(metaPrefix) && r.URL.Path[:len(metaPrefix)] == metaPrefix:
			walletID := r.URL.Path[len(metaPrefix):]
			delete(data, walletID)
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}
