package tss

import (
	"context"
	"sync"
	"testing"

	"github.com/shardwallet/shardwallet/internal/chain"
	"github.com/stretchr/testify/require"
)

// fakeNetwork is an in-memory Network used to drive full multi-party
// ceremonies in tests without a relay or gRPC transport. Broadcast and
// SendTo deliver directly into the target party's per-round inbox;
// Broadcast never delivers to the sender itself, matching the receive
// loops in keygen.go/signing.go, which only ever wait for total-1 (or
// len(signers)-1) peer messages per round.
type fakeNetwork struct {
	index   PartyIndex
	mu      *sync.Mutex
	inboxes map[PartyIndex]map[int]chan fakeMsg
}

type fakeMsg struct {
	from    PartyIndex
	payload []byte
}

// newFakeNetworks wires up n parties that can all reach each other.
func newFakeNetworks(n int) []*fakeNetwork {
	mu := &sync.Mutex{}
	inboxes := make(map[PartyIndex]map[int]chan fakeMsg, n)
	for i := 0; i < n; i++ {
		inboxes[PartyIndex(i)] = make(map[int]chan fakeMsg)
	}
	nets := make([]*fakeNetwork, n)
	for i := 0; i < n; i++ {
		nets[i] = &fakeNetwork{index: PartyIndex(i), mu: mu, inboxes: inboxes}
	}
	return nets
}

func (f *fakeNetwork) inbox(party PartyIndex, round int) chan fakeMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.inboxes[party][round]
	if !ok {
		ch = make(chan fakeMsg, 64)
		f.inboxes[party][round] = ch
	}
	return ch
}

func (f *fakeNetwork) Index() PartyIndex { return f.index }

func (f *fakeNetwork) Broadcast(ctx context.Context, round int, payload []byte) error {
	f.mu.Lock()
	peers := make([]PartyIndex, 0, len(f.inboxes))
	for p := range f.inboxes {
		if p != f.index {
			peers = append(peers, p)
		}
	}
	f.mu.Unlock()
	for _, p := range peers {
		f.inbox(p, round) <- fakeMsg{from: f.index, payload: payload}
	}
	return nil
}

func (f *fakeNetwork) SendTo(ctx context.Context, round int, to PartyIndex, payload []byte) error {
	f.inbox(to, round) <- fakeMsg{from: f.index, payload: payload}
	return nil
}

func (f *fakeNetwork) Recv(ctx context.Context, round int) (PartyIndex, []byte, error) {
	select {
	case msg := <-f.inbox(f.index, round):
		return msg.from, msg.payload, nil
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	}
}

func runKeygen(t *testing.T, nets []*fakeNetwork, threshold, total uint16, eid ExecutionId) []*IncompleteKeyShare {
	t.Helper()
	shares := make([]*IncompleteKeyShare, len(nets))
	errs := make([]error, len(nets))
	var wg sync.WaitGroup
	for i, net := range nets {
		wg.Add(1)
		go func(i int, net *fakeNetwork) {
			defer wg.Done()
			shares[i], errs[i] = Keygen(context.Background(), net, threshold, total, eid)
		}(i, net)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	return shares
}

func TestKeygenProducesConsistentSharedPublicKey(t *testing.T) {
	const threshold, total = 2, 3
	eid := ExecutionId{1, 2, 3}
	nets := newFakeNetworks(total)

	shares := runKeygen(t, nets, threshold, total, eid)

	want := shares[0].PublicKey.SerializeCompressed()
	for i, s := range shares {
		require.Equal(t, PartyIndex(i), s.Index)
		require.Equal(t, want, s.PublicKey.SerializeCompressed(), "party %d disagrees on shared public key", i)
		require.Len(t, s.VerifyShares, total)
	}
}

func TestKeygenRejectsThresholdGreaterThanTotal(t *testing.T) {
	nets := newFakeNetworks(1)
	_, err := Keygen(context.Background(), nets[0], 5, 3, ExecutionId{})
	require.Error(t, err)
}

func toKeyShare(t *testing.T, inc *IncompleteKeyShare) *KeyShare {
	t.Helper()
	secretBytes := inc.Secret.Bytes()
	return &KeyShare{
		Index:        inc.Index,
		Threshold:    inc.Threshold,
		TotalParties: inc.TotalParties,
		Secret:       secretBytes[:],
		PublicKey:    inc.PublicKey.SerializeCompressed(),
		VerifyShares: inc.VerifyShares,
	}
}

func TestSignEndToEndProducesVerifiableSignature(t *testing.T) {
	const threshold, total = 2, 3
	eid := ExecutionId{9, 9}
	nets := newFakeNetworks(total)
	incShares := runKeygen(t, nets, threshold, total, eid)

	shares := make([]*KeyShare, total)
	for i, inc := range incShares {
		shares[i] = toKeyShare(t, inc)
	}

	signers := []PartyIndex{0, 1}
	var digest [32]byte
	copy(digest[:], []byte("the unsigned transaction's digest bytes padded"))

	signEid := ExecutionId{4, 2}
	sigs := make([]*Signature, total)
	errs := make([]error, total)
	var wg sync.WaitGroup
	for _, idx := range signers {
		wg.Add(1)
		go func(idx PartyIndex) {
			defer wg.Done()
			sigs[idx], errs[idx] = Sign(context.Background(), nets[idx], shares[idx], signers, digest, signEid)
		}(idx)
	}
	wg.Wait()

	for _, idx := range signers {
		require.NoError(t, errs[idx])
		require.NotNil(t, sigs[idx])
	}

	require.Equal(t, sigs[0].R, sigs[1].R, "all responding signers must compute the same r")
	require.Equal(t, sigs[0].S, sigs[1].S, "all responding signers must compute the same s")
	require.Equal(t, sigs[0].V, sigs[1].V)

	err := chain.VerifySignature(shares[0].PublicKey, digest, chain.Signature{R: sigs[0].R, S: sigs[0].S})
	require.NoError(t, err, "ceremony output must verify against the shared public key")
}

func TestSignRejectsNonSigner(t *testing.T) {
	const threshold, total = 2, 3
	eid := ExecutionId{1}
	nets := newFakeNetworks(total)
	incShares := runKeygen(t, nets, threshold, total, eid)
	share := toKeyShare(t, incShares[2])

	var digest [32]byte
	_, err := Sign(context.Background(), nets[2], share, []PartyIndex{0, 1}, digest, ExecutionId{5})
	require.Error(t, err)
}
