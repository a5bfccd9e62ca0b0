package tss

import "context"

// Network is the minimal interface a protocol round needs from the relay
// room it was joined into. Implementations (internal/relayclient.Room)
// translate this into the relay's flat, ordered append log: a broadcast
// is a room message addressed to every party, a point-to-point send is a
// room message every party receives but only the addressee acts on.
type Network interface {
	// Index is this party's position, fixed for the ceremony's lifetime.
	Index() PartyIndex

	// Broadcast publishes payload to every other party in the room. The
	// sender never receives its own broadcast back from Recv, so each
	// round's receive loop waits for one message per peer.
	Broadcast(ctx context.Context, round int, payload []byte) error

	// SendTo publishes payload addressed to a single party.
	SendTo(ctx context.Context, round int, to PartyIndex, payload []byte) error

	// Recv blocks for the next message addressed to this party (a
	// broadcast, or a point-to-point message naming this party) for the
	// given round, in the order the relay assigned them.
	Recv(ctx context.Context, round int) (from PartyIndex, payload []byte, err error)
}
