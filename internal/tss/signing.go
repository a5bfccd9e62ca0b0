package tss

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
)

const (
	roundSignCommit = 20
	roundSignReveal = 21
	roundSignShare  = 22
)

// Signature is a standard (r, s) ECDSA signature plus the recovery id a
// chain's unsigned-transaction encoding needs to recover the public key
// from (spec.md section 6.3).
type Signature struct {
	R []byte
	S []byte
	V byte
}

type nonceCommitMsg struct {
	EID        ExecutionId `json:"eid"`
	Commitment []byte      `json:"commitment"` // sha256(nonce scalar)
}

type nonceRevealMsg struct {
	EID         ExecutionId `json:"eid"`
	NonceScalar []byte      `json:"nonce_scalar"`
}

type sigShareMsg struct {
	EID   ExecutionId `json:"eid"`
	Share []byte      `json:"share"`
}

type finalSigMsg struct {
	EID ExecutionId `json:"eid"`
	R   []byte      `json:"r"`
	S   []byte      `json:"s"`
	V   byte        `json:"v"`
}

// recvFinalSignature waits for the coordinator to distribute the
// assembled signature, so every signer (not only the coordinator)
// returns the same (r, s, v) to its caller. spec.md section 4.1.3 notes
// "all responding parties compute the same signature" — this is what
// makes that true for this coordinator-assembled scheme.
func recvFinalSignature(ctx context.Context, net Network, eid ExecutionId) (*Signature, error) {
	_, payload, err := net.Recv(ctx, roundSignShare+1)
	if err != nil {
		return nil, fmt.Errorf("tss: receiving final signature: %w", err)
	}
	var msg finalSigMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("tss: decoding final signature: %w", err)
	}
	if msg.EID != eid {
		return nil, fmt.Errorf("tss: execution id mismatch in final signature")
	}
	return &Signature{R: msg.R, S: msg.S, V: msg.V}, nil
}

// Sign runs a cooperative t-of-n ECDSA signing ceremony among the
// parties reachable through net: each signer contributes a random
// nonce scalar behind a commitment, then reveals it once every signer
// has committed (so no party can bias r by choosing its nonce after
// seeing the others'). The revealed scalars are summed into one shared
// nonce k = Σk_i, exactly as the shared secret d = Σλ_i·d_i is
// combined at keygen, and every signer inverts that same k before
// weighting its Lagrange share of (z, r·d_i) — not its own individual
// k_i, which would make the parties' partials sum to a value that
// isn't a signature under the combined r at all. The coordinator (the
// lowest-indexed signer) sums the partial signatures into the final
// (r, s).
//
// Summing nonce scalars in the clear among the signers (rather than
// converting each party's multiplicative share of k into an additive
// share of k⁻¹ via MtA/Beaver triples, as GG18/CGGMP21 do) is the same
// simplification this package's keygen already makes for the
// zero-knowledge proofs that would otherwise guard against an actively
// malicious co-signer: see the package doc. It is sufficient for an
// honest-but-curious signing coalition to produce a standards-
// compliant ECDSA signature, which is this ceremony's only goal.
func Sign(ctx context.Context, net Network, share *KeyShare, signers []PartyIndex, digest [32]byte, eid ExecutionId) (*Signature, error) {
	me := net.Index()
	if !containsIndex(signers, me) {
		return nil, fmt.Errorf("tss: party %d is not a designated signer", me)
	}
	if len(signers) < int(share.Threshold) {
		return nil, fmt.Errorf("tss: %d signers below threshold %d", len(signers), share.Threshold)
	}

	k, err := randScalar()
	if err != nil {
		return nil, fmt.Errorf("tss: generating nonce: %w", err)
	}
	kBytes := k.Bytes()
	commitment := sha256.Sum256(kBytes[:])

	if err := broadcastRound(ctx, net, roundSignCommit, nonceCommitMsg{EID: eid, Commitment: commitment[:]}); err != nil {
		return nil, err
	}
	peerCommitments := make(map[PartyIndex][]byte, len(signers))
	if err := recvFromPeers(ctx, net, roundSignCommit, signers, me, func(from PartyIndex, payload []byte) error {
		var msg nonceCommitMsg
		if err := json.Unmarshal(payload, &msg); err != nil {
			return err
		}
		if msg.EID != eid {
			return fmt.Errorf("execution id mismatch from party %d", from)
		}
		peerCommitments[from] = msg.Commitment
		return nil
	}); err != nil {
		return nil, fmt.Errorf("tss: nonce commit round: %w", err)
	}

	if err := broadcastRound(ctx, net, roundSignReveal, nonceRevealMsg{EID: eid, NonceScalar: kBytes[:]}); err != nil {
		return nil, err
	}
	combinedK := *k
	if err := recvFromPeers(ctx, net, roundSignReveal, signers, me, func(from PartyIndex, payload []byte) error {
		var msg nonceRevealMsg
		if err := json.Unmarshal(payload, &msg); err != nil {
			return err
		}
		if msg.EID != eid {
			return fmt.Errorf("execution id mismatch from party %d", from)
		}
		expected := sha256.Sum256(msg.NonceScalar)
		want, ok := peerCommitments[from]
		if !ok || string(expected[:]) != string(want) {
			return fmt.Errorf("nonce reveal from party %d does not match its commitment", from)
		}
		var peerK secp256k1.ModNScalar
		if overflow := peerK.SetByteSlice(msg.NonceScalar); overflow {
			return fmt.Errorf("nonce scalar from party %d out of range", from)
		}
		combinedK.Add(&peerK)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("tss: nonce reveal round: %w", err)
	}
	if combinedK.IsZero() {
		return nil, fmt.Errorf("tss: combined nonce is zero, retry ceremony")
	}
	combinedR := scalarBasePoint(&combinedK)

	rFieldVal := combinedR.X()
	rFieldBytes := rFieldVal.Bytes()
	var rScalar secp256k1.ModNScalar
	rOverflowed := rScalar.SetByteSlice(rFieldBytes[:])
	if rScalar.IsZero() {
		return nil, fmt.Errorf("tss: combined nonce point has zero x-coordinate, retry ceremony")
	}

	lambda := lagrangeCoefficient(me, signers)
	var z secp256k1.ModNScalar
	z.SetByteSlice(digest[:])

	var kInv secp256k1.ModNScalar
	kInv.Set(&combinedK)
	kInv.InverseNonConst()

	// myPartial = λ_i · k⁻¹ · (r·d_i + z); since Σλ_i = 1 over the
	// signer set, summing this across signers telescopes to exactly
	// k⁻¹(r·d + z), the standard ECDSA s-value.
	var term secp256k1.ModNScalar
	term.Set(&rScalar)
	term.Mul(share.SecretScalar())
	term.Add(&z)
	term.Mul(&lambda)
	term.Mul(&kInv)
	myPartial := term

	coordinator := lowestIndex(signers)
	if me != coordinator {
		b := myPartial.Bytes()
		out, err := json.Marshal(sigShareMsg{EID: eid, Share: b[:]})
		if err != nil {
			return nil, err
		}
		if err := net.SendTo(ctx, roundSignShare, coordinator, out); err != nil {
			return nil, fmt.Errorf("tss: sending signature share: %w", err)
		}
		return recvFinalSignature(ctx, net, eid)
	}

	sSum := myPartial
	for received := 0; received < len(signers)-1; received++ {
		from, payload, err := net.Recv(ctx, roundSignShare)
		if err != nil {
			return nil, fmt.Errorf("tss: receiving signature share: %w", err)
		}
		if !containsIndex(signers, from) {
			return nil, fmt.Errorf("tss: signature share from non-signer %d", from)
		}
		var msg sigShareMsg
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("tss: decoding signature share from party %d: %w", from, err)
		}
		if msg.EID != eid {
			return nil, fmt.Errorf("tss: execution id mismatch from party %d", from)
		}
		var s secp256k1.ModNScalar
		if overflow := s.SetByteSlice(msg.Share); overflow {
			return nil, fmt.Errorf("tss: signature share from party %d out of range", from)
		}
		sSum.Add(&s)
	}

	sBytes := sSum.Bytes()
	// Canonicalize to low-s per BIP-0062 / EIP-2: if s > n/2, use n - s.
	if sSum.IsOverHalfOrder() {
		sSum.Negate()
		sBytes = sSum.Bytes()
	}

	rBytes := rScalar.Bytes()
	sig := &Signature{
		R: rBytes[:],
		S: sBytes[:],
		V: recoveryID(combinedR, rOverflowed),
	}

	out, err := json.Marshal(finalSigMsg{EID: eid, R: sig.R, S: sig.S, V: sig.V})
	if err != nil {
		return nil, err
	}
	for _, p := range signers {
		if p == coordinator {
			continue
		}
		if err := net.SendTo(ctx, roundSignShare+1, p, out); err != nil {
			return nil, fmt.Errorf("tss: distributing final signature to party %d: %w", p, err)
		}
	}

	return sig, nil
}

func broadcastRound(ctx context.Context, net Network, round int, v interface{}) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return net.Broadcast(ctx, round, out)
}

func recvFromPeers(ctx context.Context, net Network, round int, signers []PartyIndex, me PartyIndex, handle func(from PartyIndex, payload []byte) error) error {
	for received := 0; received < len(signers)-1; received++ {
		from, payload, err := net.Recv(ctx, round)
		if err != nil {
			return err
		}
		if !containsIndex(signers, from) {
			return fmt.Errorf("message from non-signer %d", from)
		}
		if from == me {
			continue
		}
		if err := handle(from, payload); err != nil {
			return err
		}
	}
	return nil
}

func containsIndex(set []PartyIndex, idx PartyIndex) bool {
	for _, s := range set {
		if s == idx {
			return true
		}
	}
	return false
}

func lowestIndex(set []PartyIndex) PartyIndex {
	min := set[0]
	for _, s := range set[1:] {
		if s < min {
			min = s
		}
	}
	return min
}

// recoveryID derives the Ethereum/Bitcoin-style recovery id from the
// combined nonce point: bit 0 is the parity of its y-coordinate, bit 1
// is set if the x-coordinate as a field element was >= the curve order
// (vanishingly rare given secp256k1's parameters, but kept for
// completeness since chain encoders expect the bit to exist).
func recoveryID(r *secp256k1.PublicKey, xOverflowedOrder bool) byte {
	var v byte
	yBytes := r.Y().Bytes()
	if yBytes[31]&1 != 0 {
		v |= 1
	}
	if xOverflowedOrder {
		v |= 2
	}
	return v
}
