package ceremony

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	macaroon "gopkg.in/macaroon.v2"

	"github.com/shardwallet/shardwallet/internal/rpcauth"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

// Participants is the fixed, ordered set of participant endpoints
// (spec.md section 3 invariant 1, section 6.6): position i is that
// participant's party index.
type Participants struct {
	clients []mpc.ParticipantClient
	conns   []*grpc.ClientConn
}

// Dial connects to every endpoint in order. The set is fixed at
// startup and identical across the Orchestrator and every Participant
// (spec.md section 3 invariant 1); there is no dynamic membership. mac
// is nil when macaroon authentication is disabled.
func Dial(endpoints []string, mac *macaroon.Macaroon) (*Participants, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(mpc.Codec{})),
	}
	if mac != nil {
		creds, err := rpcauth.NewPerRPCCredentials(mac)
		if err != nil {
			return nil, fmt.Errorf("ceremony: preparing macaroon credentials: %w", err)
		}
		dialOpts = append(dialOpts, grpc.WithPerRPCCredentials(creds))
	}

	p := &Participants{}
	for i, addr := range endpoints {
		conn, err := grpc.Dial(addr, dialOpts...)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("ceremony: dialing participant %d at %s: %w", i, addr, err)
		}
		p.conns = append(p.conns, conn)
		p.clients = append(p.clients, mpc.NewParticipantClient(conn))
	}
	return p, nil
}

func (p *Participants) Close() {
	for _, c := range p.conns {
		c.Close()
	}
}

// N is the total configured participant count.
func (p *Participants) N() int { return len(p.clients) }

// All returns every participant client with its party index.
func (p *Participants) All() []mpc.ParticipantClient { return p.clients }

// Indices returns a client subset for the given 0-based party indices,
// used to fan SignTx out to exactly the chosen signing coalition
// (spec.md section 9 redesign note).
func (p *Participants) Indices(idxs []int32) []mpc.ParticipantClient {
	out := make([]mpc.ParticipantClient, len(idxs))
	for i, idx := range idxs {
		out[i] = p.clients[idx]
	}
	return out
}

// fanOut invokes fn against every client concurrently and waits for
// all results, returning the first error encountered (spec.md section
// 4.1.1: "wait for all invocations to complete... if any fails... roll
// back").
func fanOut(ctx context.Context, clients []mpc.ParticipantClient, fn func(context.Context, mpc.ParticipantClient, int) error) error {
	errs := make(chan error, len(clients))
	for i, c := range clients {
		i, c := i, c
		go func() {
			errs <- fn(ctx, c, i)
		}()
	}
	var firstErr error
	for range clients {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
