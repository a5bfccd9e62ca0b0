package secretstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shardwallet/shardwallet/internal/tss"
)

// fakeVault emulates just enough of Vault's KV-v2 HTTP API for Store's
// Put/Get/Delete to round-trip against, keyed by the wallet id embedded
// in the request path.
func fakeVault(t *testing.T) *httptest.Server {
	t.Helper()
	data := make(map[string]string)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && matchPath(r.URL.Path, "/v1/secret/data/"):
			walletID := r.URL.Path[len("/v1/secret/data/"):]
			var body struct {
				Data map[string]interface{} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			data[walletID] = body.Data["key_share"].(string)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data":{"version":1}}`)

		case r.Method == http.MethodGet && matchPath(r.URL.Path, "/v1/secret/data/"):
			walletID := r.URL.Path[len("/v1/secret/data/"):]
			blob, ok := data[walletID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"data":{"data":{"key_share":%q},"metadata":{"version":1}}}`, blob)

		case r.Method == http.MethodDelete && matchPath(r.URL.Path, "/v1/secret/metadata/"):
			walletID := r.URL.Path[len("/v1/secret/metadata/"):]
			delete(data, walletID)
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func matchPath(path, prefix string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix
}

func TestPutGetRoundTripsKeyShare(t *testing.T) {
	srv := fakeVault(t)
	defer srv.Close()

	store, err := New(srv.URL, "test-token", "secret")
	require.NoError(t, err)

	share := &tss.KeyShare{
		Index:        0,
		Threshold:    2,
		TotalParties: 3,
		Secret:       []byte{1, 2, 3},
		PublicKey:    []byte{4, 5, 6},
	}

	require.NoError(t, store.Put(context.Background(), "wallet-42", share))

	got, err := store.Get(context.Background(), "wallet-42")
	require.NoError(t, err)
	require.Equal(t, share.Index, got.Index)
	require.Equal(t, share.Threshold, got.Threshold)
	require.Equal(t, share.Secret, got.Secret)
	require.Equal(t, share.PublicKey, got.PublicKey)
}

func TestGetReturnsErrNotFoundForMissingWallet(t *testing.T) {
	srv := fakeVault(t)
	defer srv.Close()

	store, err := New(srv.URL, "test-token", "secret")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "never-written")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	srv := fakeVault(t)
	defer srv.Close()

	store, err := New(srv.URL, "test-token", "secret")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "never-written"))

	share := &tss.KeyShare{Index: 1, Secret: []byte{9}}
	require.NoError(t, store.Put(context.Background(), "wallet-7", share))
	require.NoError(t, store.Delete(context.Background(), "wallet-7"))

	_, err = store.Get(context.Background(), "wallet-7")
	require.ErrorIs(t, err, ErrNotFound)
}
