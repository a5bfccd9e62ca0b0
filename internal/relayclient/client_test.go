package relayclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shardwallet/shardwallet/internal/tss"
	"github.com/stretchr/testify/require"
)

func TestBroadcastPostsEnvelopeWithNilTo(t *testing.T) {
	var captured envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms/keygen_1/broadcast", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	room := NewRoom(srv.URL, "keygen_1", tss.PartyIndex(2))
	err := room.Broadcast(context.Background(), 1, []byte(`{"commitments":[]}`))
	require.NoError(t, err)
	require.Equal(t, 1, captured.Round)
	require.Equal(t, tss.PartyIndex(2), captured.From)
	require.Nil(t, captured.To)
}

func TestSendToPostsEnvelopeAddressedToRecipient(t *testing.T) {
	var captured envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	room := NewRoom(srv.URL, "keygen_1", tss.PartyIndex(0))
	err := room.SendTo(context.Background(), 2, tss.PartyIndex(1), []byte(`{"share":"AA=="}`))
	require.NoError(t, err)
	require.NotNil(t, captured.To)
	require.Equal(t, tss.PartyIndex(1), *captured.To)
}

func TestBroadcastReturnsErrorOnNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	room := NewRoom(srv.URL, "keygen_1", tss.PartyIndex(0))
	err := room.Broadcast(context.Background(), 1, []byte("x"))
	require.Error(t, err)
}

func TestIssueUniqueIdxDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms/keygen_1/issue_unique_idx", r.URL.Path)
		fmt.Fprint(w, `{"unique_idx": 3}`)
	}))
	defer srv.Close()

	room := NewRoom(srv.URL, "keygen_1", tss.PartyIndex(0))
	idx, err := room.IssueUniqueIdx(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, idx)
}

func writeSSEEvent(t *testing.T, w http.ResponseWriter, id uint32, env envelope) {
	t.Helper()
	body, err := json.Marshal(env)
	require.NoError(t, err)
	fmt.Fprintf(w, "event: new-message\nid: %d\ndata: %s\n\n", id, body)
	w.(http.Flusher).Flush()
}

func TestRecvSkipsSelfSentAndMisaddressedEnvelopes(t *testing.T) {
	me := tss.PartyIndex(1)
	other := tss.PartyIndex(2)
	direct := tss.PartyIndex(1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeSSEEvent(t, w, 0, envelope{Round: 5, From: me, To: nil, Body: []byte("self-broadcast")})
		writeSSEEvent(t, w, 1, envelope{Round: 5, From: other, To: &other, Body: []byte("not-for-me")})
		writeSSEEvent(t, w, 2, envelope{Round: 5, From: other, To: nil, Body: []byte("broadcast-for-everyone")})
		writeSSEEvent(t, w, 3, envelope{Round: 5, From: other, To: &direct, Body: []byte("direct-for-me")})
		<-r.Context().Done()
	}))
	defer srv.Close()

	room := NewRoom(srv.URL, "sign_1", me)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	from, payload, err := room.Recv(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, other, from)
	require.Equal(t, []byte("broadcast-for-everyone"), payload)

	from, payload, err = room.Recv(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, other, from)
	require.Equal(t, []byte("direct-for-me"), payload)
}
