// Package participant implements the stateless RPC handler fronting the
// cryptographic state machines described in spec.md section 4.2: one
// party index's keygen, aux-info, and signing ceremonies.
package participant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/decred/slog"

	"github.com/shardwallet/shardwallet/internal/secretstore"
	"github.com/shardwallet/shardwallet/internal/tss"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

// Server implements proto/mpc.ParticipantServer.
type Server struct {
	mpc.UnimplementedParticipantServer

	cfg   *Config
	store *secretstore.Store
	log   slog.Logger
}

// NewServer builds a participant RPC handler bound to cfg's static
// party index and backed by store for share persistence.
func NewServer(cfg *Config, store *secretstore.Store, log slog.Logger) *Server {
	return &Server{cfg: cfg, store: store, log: log}
}

func executionIDFromBytes(b []byte) (tss.ExecutionId, error) {
	var eid tss.ExecutionId
	if len(b) != len(eid) {
		return eid, fmt.Errorf("participant: execution id must be %d bytes, got %d", len(eid), len(b))
	}
	copy(eid[:], b)
	return eid, nil
}

// NewWallet runs the keygen and aux-info sub-ceremonies concurrently
// and, on joint success, stores the combined KeyShare under wallet_id
// (spec.md section 4.2).
func (s *Server) NewWallet(ctx context.Context, req *mpc.CreateWalletMessage) (*mpc.KeyShareInfo, error) {
	eid, err := executionIDFromBytes(req.ExecutionId)
	if err != nil {
		return nil, err
	}

	s.log.Infof("new wallet ceremony wallet_id=%d chain=%s", req.WalletId, req.Chain)

	share, err := s.runKeygenAndAux(ctx, req.WalletId, eid)
	if err != nil {
		s.log.Errorf("new wallet ceremony failed wallet_id=%d: %v", req.WalletId, err)
		return nil, err
	}

	walletKey := strconv.FormatInt(int64(req.WalletId), 10)
	if err := s.store.Put(ctx, walletKey, share); err != nil {
		s.log.Errorf("storing key share wallet_id=%d: %v", req.WalletId, err)
		return nil, err
	}

	return &mpc.KeyShareInfo{PublicKey: share.PublicKey}, nil
}

// DeleteWallet removes every version of the secret-store entry for
// wallet_id. Idempotent: a missing key is a success, not an error
// (spec.md section 4.2).
func (s *Server) DeleteWallet(ctx context.Context, req *mpc.DeleteWalletMessage) (*mpc.Empty, error) {
	walletKey := strconv.FormatInt(int64(req.WalletId), 10)
	if err := s.store.Delete(ctx, walletKey); err != nil {
		s.log.Errorf("deleting key share wallet_id=%d: %v", req.WalletId, err)
		return nil, err
	}
	return &mpc.Empty{}, nil
}

// SignTx loads the wallet's KeyShare, joins the signing room, and runs
// a threshold signature over the designated coalition (spec.md section
// 4.2, with the party-index set carried in the request per the section
// 9 redesign rather than hardcoded).
func (s *Server) SignTx(ctx context.Context, req *mpc.SignMessage) (*mpc.SignatureMessage, error) {
	eid, err := executionIDFromBytes(req.ExecutionId)
	if err != nil {
		return nil, err
	}

	walletKey := strconv.FormatInt(int64(req.WalletId), 10)
	share, err := s.store.Get(ctx, walletKey)
	if err != nil {
		s.log.Errorf("loading key share wallet_id=%d: %v", req.WalletId, err)
		return nil, err
	}

	signers := make([]tss.PartyIndex, len(req.Signers))
	for i, p := range req.Signers {
		signers[i] = tss.PartyIndex(p)
	}

	sig, err := s.runSigning(ctx, req.TxId, share, eid, req.Chain, req.Data, signers)
	if err != nil {
		s.log.Errorf("signing ceremony failed tx_id=%d: %v", req.TxId, err)
		return nil, err
	}

	return &mpc.SignatureMessage{
		R:         sig.R,
		S:         sig.S,
		V:         uint32(sig.V),
		PublicKey: share.PublicKey,
	}, nil
}
