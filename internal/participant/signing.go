package participant

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
	"github.com/decred/dcrd/dcrec/secp256k1/v3/ecdsa"

	"github.com/shardwallet/shardwallet/internal/relayclient"
	"github.com/shardwallet/shardwallet/internal/tss"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

// runSigning hashes data with SHA-256 (spec.md section 4.2; the
// Keccak-256-vs-SHA-256 deviation for Ethereum is intentional, see
// internal/chain/ethereum and spec.md section 9), joins the signing
// room, and runs the cooperative threshold signature.
func (s *Server) runSigning(ctx context.Context, txID int32, share *tss.KeyShare, eid tss.ExecutionId, chain mpc.Chain, data []byte, signers []tss.PartyIndex) (*tss.Signature, error) {
	digest := sha256.Sum256(data)

	room := relayclient.NewRoom(s.cfg.RelayURL, fmt.Sprintf("signing_%d", txID), tss.PartyIndex(s.cfg.Index))
	sig, err := tss.Sign(ctx, room, share, signers, digest, eid)
	if err != nil {
		return nil, fmt.Errorf("participant: signing ceremony: %w", err)
	}

	switch chain {
	case mpc.Chain_ETHEREUM:
		if err := applyEthereumRecoveryFallback(sig, share, digest); err != nil {
			return nil, err
		}
	case mpc.Chain_BITCOIN:
		// spec.md sections 4.2 and 6.3: Bitcoin signatures never carry
		// a recovery id, unlike Ethereum's.
		sig.V = 0
	}
	return sig, nil
}

// applyEthereumRecoveryFallback computes the recovery id by attempting
// ECDSA public-key recovery against the wallet's known public key; spec
// section 4.2 requires a fallback to the parity of r's last byte (37 or
// 38) when recovery fails. The fallback is preserved byte-for-byte even
// though spec section 9 flags it as possibly a bug: this is not a
// judgment call an implementer should silently correct.
func applyEthereumRecoveryFallback(sig *tss.Signature, share *tss.KeyShare, digest [32]byte) error {
	pub, err := share.PublicPoint()
	if err != nil {
		return fmt.Errorf("participant: parsing wallet public key: %w", err)
	}

	rec, ok := recoverID(pub, sig.R, sig.S, digest)
	const chainID = 1
	if ok {
		sig.V = byte(chainID*2 + 35 + rec)
		return nil
	}

	if len(sig.R) > 0 && sig.R[len(sig.R)-1]%2 == 0 {
		sig.V = 37
	} else {
		sig.V = 38
	}
	return nil
}

// recoverID tries both candidate recovery ids against pub and reports
// the first match, mirroring go-ethereum's crypto.Ecrecover shape but
// built on the curve package this repository already depends on.
func recoverID(pub *secp256k1.PublicKey, r, s []byte, digest [32]byte) (int, bool) {
	for rec := 0; rec < 2; rec++ {
		recovered, _, err := ecdsa.RecoverCompact(buildCompactSig(byte(rec), r, s), digest[:])
		if err != nil {
			continue
		}
		if recovered.IsEqual(pub) {
			return rec, true
		}
	}
	return 0, false
}

// buildCompactSig assembles the 65-byte [recovery-byte || r || s] form
// ecdsa.RecoverCompact expects from this package's raw (r, s, rec).
func buildCompactSig(rec byte, r, s []byte) []byte {
	out := make([]byte, 65)
	out[0] = 27 + rec
	copy(out[1+32-len(r):33], r)
	copy(out[33+32-len(s):65], s)
	return out
}
