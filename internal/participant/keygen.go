package participant

import (
	"context"
	"fmt"

	"github.com/shardwallet/shardwallet/internal/relayclient"
	"github.com/shardwallet/shardwallet/internal/tss"
)

// runKeygenAndAux drives the two keygen/aux-info sub-ceremonies
// concurrently in their own room namespaces (spec.md section 4.2): if
// run serially the aggregate latency doubles and other participants may
// time out their keygen halves.
func (s *Server) runKeygenAndAux(ctx context.Context, walletID int32, eid tss.ExecutionId) (*tss.KeyShare, error) {
	keygenRoom := relayclient.NewRoom(s.cfg.RelayURL, fmt.Sprintf("keygen_%d", walletID), tss.PartyIndex(s.cfg.Index))
	auxRoom := relayclient.NewRoom(s.cfg.RelayURL, fmt.Sprintf("aux_%d", walletID), tss.PartyIndex(s.cfg.Index))

	type keygenResult struct {
		share *tss.IncompleteKeyShare
		err   error
	}
	type auxResult struct {
		info *tss.AuxInfo
		err  error
	}

	keygenCh := make(chan keygenResult, 1)
	auxCh := make(chan auxResult, 1)

	go func() {
		share, err := tss.Keygen(ctx, keygenRoom, s.cfg.Threshold, s.cfg.TotalParties, eid)
		keygenCh <- keygenResult{share, err}
	}()
	go func() {
		info, err := tss.RunAuxInfo(ctx, auxRoom, s.cfg.TotalParties, eid)
		auxCh <- auxResult{info, err}
	}()

	kr := <-keygenCh
	ar := <-auxCh
	if kr.err != nil {
		return nil, fmt.Errorf("participant: keygen sub-ceremony: %w", kr.err)
	}
	if ar.err != nil {
		return nil, fmt.Errorf("participant: aux-info sub-ceremony: %w", ar.err)
	}

	secretBytes := kr.share.Secret.Bytes()
	return &tss.KeyShare{
		Index:         kr.share.Index,
		Threshold:     kr.share.Threshold,
		TotalParties:  kr.share.TotalParties,
		Secret:        secretBytes[:],
		PublicKey:     kr.share.PublicKey.SerializeCompressed(),
		VerifyShares:  kr.share.VerifyShares,
		AuxModulus:    ar.info.Modulus,
		AuxGenerators: ar.info.Generators,
	}, nil
}
