package testharness

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shardwallet/shardwallet/internal/chain"
	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

func TestCreateWalletCeremonyAgreesOnPublicKey(t *testing.T) {
	cluster := New(t, 2, 3)

	eid := ceremony.NewExecutionID()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ceremony.CreateWallet(ctx, cluster.Participants, 1, mpc.Chain_ETHEREUM, eid)
	require.NoError(t, err)
	require.NotEmpty(t, result.PublicKey)
}

func TestCreateWalletThenSignProducesVerifiableSignature(t *testing.T) {
	cluster := New(t, 2, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	createEid := ceremony.NewExecutionID()
	created, err := ceremony.CreateWallet(ctx, cluster.Participants, 42, mpc.Chain_ETHEREUM, createEid)
	require.NoError(t, err)

	signers := ceremony.SelectSigners(3, 2)
	unsignedBytes := []byte("rlp-encoded unsigned ethereum tx")
	signEid := ceremony.NewExecutionID()

	result, err := ceremony.SignTx(ctx, cluster.Participants, signers, 7, 42, mpc.Chain_ETHEREUM, signEid, unsignedBytes)
	require.NoError(t, err)

	digest := sha256.Sum256(unsignedBytes)
	err = chain.VerifySignature(created.PublicKey, digest, chain.Signature{R: result.R, S: result.S, V: byte(result.V)})
	require.NoError(t, err, "signature produced by the ceremony must verify against the ceremony's own public key")
}

func TestDeleteWalletIsIdempotentAcrossParticipants(t *testing.T) {
	cluster := New(t, 2, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eid := ceremony.NewExecutionID()
	_, err := ceremony.CreateWallet(ctx, cluster.Participants, 5, mpc.Chain_ETHEREUM, eid)
	require.NoError(t, err)

	require.NoError(t, ceremony.DeleteWallet(ctx, cluster.Participants, 5))
	require.NoError(t, ceremony.DeleteWallet(ctx, cluster.Participants, 5), "deleting an already-deleted wallet must not error")
}

func TestCreateWalletFailsAtomicallyWhenAParticipantIsDown(t *testing.T) {
	cluster := New(t, 2, 3)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cluster.grpcSrvs[2].Stop()

	eid := ceremony.NewExecutionID()
	_, err := ceremony.CreateWallet(ctx, cluster.Participants, 99, mpc.Chain_ETHEREUM, eid)
	require.Error(t, err, "a down participant must fail the whole ceremony, leaving no partial wallet")
}

func TestRelayDeliversBroadcastsToSubscriberInOrder(t *testing.T) {
	cluster := New(t, 2, 2)

	room := cluster.RelayServer.Registry().GetOrCreate("manual-room")
	room.Broadcast([]byte("one"))
	room.Broadcast([]byte("two"))

	sub := room.Subscribe(0)
	defer sub.Close()

	ids, bodies, err := sub.Next(nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, ids)
	require.Equal(t, [][]byte{[]byte("one"), []byte("two")}, bodies)
}
