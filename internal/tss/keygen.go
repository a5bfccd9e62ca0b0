package tss

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
)

const (
	roundKeygenCommit = 1
	roundKeygenShare  = 2
)

type commitMsg struct {
	EID         ExecutionId `json:"eid"`
	Commitments [][]byte    `json:"commitments"` // compressed pubkeys, one per polynomial coefficient
}

type shareMsg struct {
	EID   ExecutionId `json:"eid"`
	Share []byte      `json:"share"` // 32-byte scalar, evaluated at the recipient's index
}

// IncompleteKeyShare is the output of Keygen before it has been combined
// with an AuxInfo result into a full KeyShare (spec.md section 4.2: the
// two sub-ceremonies run concurrently and are only combined once both
// succeed).
type IncompleteKeyShare struct {
	Index        PartyIndex
	Threshold    uint16
	TotalParties uint16
	Secret       secp256k1.ModNScalar
	PublicKey    *secp256k1.PublicKey
	VerifyShares map[PartyIndex][]byte
}

// Keygen runs a Pedersen-style distributed key generation: every party
// contributes a random Shamir polynomial of degree threshold-1, commits
// to its coefficients with Feldman commitments, and distributes
// evaluations of that polynomial to its peers over net. The combined
// constant terms become the shared private key, which no single party
// ever assembles.
func Keygen(ctx context.Context, net Network, threshold, total uint16, eid ExecutionId) (*IncompleteKeyShare, error) {
	if threshold < 1 || threshold > total {
		return nil, fmt.Errorf("tss: invalid threshold %d of %d", threshold, total)
	}

	me := net.Index()

	coeffs := make([]secp256k1.ModNScalar, threshold)
	commitments := make([][]byte, threshold)
	for i := range coeffs {
		s, err := randScalar()
		if err != nil {
			return nil, fmt.Errorf("tss: generating coefficient: %w", err)
		}
		coeffs[i] = *s
		commitments[i] = scalarBasePoint(s).SerializeCompressed()
	}

	out, err := json.Marshal(commitMsg{EID: eid, Commitments: commitments})
	if err != nil {
		return nil, err
	}
	if err := net.Broadcast(ctx, roundKeygenCommit, out); err != nil {
		return nil, fmt.Errorf("tss: broadcasting commitments: %w", err)
	}

	peerCommitments := make(map[PartyIndex][]*secp256k1.PublicKey, total)
	for received := 0; received < int(total)-1; received++ {
		from, payload, err := net.Recv(ctx, roundKeygenCommit)
		if err != nil {
			return nil, fmt.Errorf("tss: receiving commitments: %w", err)
		}
		var msg commitMsg
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("tss: decoding commitments from party %d: %w", from, err)
		}
		if msg.EID != eid {
			return nil, fmt.Errorf("tss: execution id mismatch from party %d", from)
		}
		if len(msg.Commitments) != int(threshold) {
			return nil, fmt.Errorf("tss: party %d sent %d commitments, want %d", from, len(msg.Commitments), threshold)
		}
		points := make([]*secp256k1.PublicKey, threshold)
		for i, c := range msg.Commitments {
			pt, err := secp256k1.ParsePubKey(c)
			if err != nil {
				return nil, fmt.Errorf("tss: parsing commitment from party %d: %w", from, err)
			}
			points[i] = pt
		}
		peerCommitments[from] = points
	}

	for j := PartyIndex(0); j < PartyIndex(total); j++ {
		if j == me {
			continue
		}
		share := evalPolynomial(coeffs, scalarFromIndex(j))
		b := share.Bytes()
		out, err := json.Marshal(shareMsg{EID: eid, Share: b[:]})
		if err != nil {
			return nil, err
		}
		if err := net.SendTo(ctx, roundKeygenShare, j, out); err != nil {
			return nil, fmt.Errorf("tss: sending share to party %d: %w", j, err)
		}
	}

	secret := evalPolynomial(coeffs, scalarFromIndex(me))
	for received := 0; received < int(total)-1; received++ {
		from, payload, err := net.Recv(ctx, roundKeygenShare)
		if err != nil {
			return nil, fmt.Errorf("tss: receiving share: %w", err)
		}
		var msg shareMsg
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("tss: decoding share from party %d: %w", from, err)
		}
		if msg.EID != eid {
			return nil, fmt.Errorf("tss: execution id mismatch from party %d", from)
		}
		var s secp256k1.ModNScalar
		if overflow := s.SetByteSlice(msg.Share); overflow {
			return nil, fmt.Errorf("tss: share from party %d out of range", from)
		}

		commitments, ok := peerCommitments[from]
		if !ok {
			return nil, fmt.Errorf("tss: share from unknown party %d", from)
		}
		if err := verifyFeldman(me, &s, commitments); err != nil {
			return nil, fmt.Errorf("tss: share from party %d failed verification: %w", from, err)
		}

		secret.Add(&s)
	}

	var sharedPub *secp256k1.PublicKey
	verifyShares := make(map[PartyIndex][]byte, total)
	allCommitments := make(map[PartyIndex][]*secp256k1.PublicKey, total)
	for p, c := range peerCommitments {
		allCommitments[p] = c
	}
	allCommitments[me] = func() []*secp256k1.PublicKey {
		pts := make([]*secp256k1.PublicKey, threshold)
		for i := range coeffs {
			pts[i] = scalarBasePoint(&coeffs[i])
		}
		return pts
	}()
	for _, commitments := range allCommitments {
		if sharedPub == nil {
			sharedPub = commitments[0]
		} else {
			sharedPub = addPoints(sharedPub, commitments[0])
		}
	}
	for j := PartyIndex(0); j < PartyIndex(total); j++ {
		verifyShares[j] = combinedVerificationPoint(j, allCommitments).SerializeCompressed()
	}

	return &IncompleteKeyShare{
		Index:        me,
		Threshold:    threshold,
		TotalParties: total,
		Secret:       secret,
		PublicKey:    sharedPub,
		VerifyShares: verifyShares,
	}, nil
}

// verifyFeldman checks that a received share is consistent with the
// sender's published coefficient commitments: share*G must equal the
// polynomial's commitments evaluated at this party's index.
func verifyFeldman(me PartyIndex, share *secp256k1.ModNScalar, commitments []*secp256k1.PublicKey) error {
	expected := combinedVerificationPoint(me, map[PartyIndex][]*secp256k1.PublicKey{me: commitments})
	got := scalarBasePoint(share)
	if !got.IsEqual(expected) {
		return fmt.Errorf("feldman commitment check failed")
	}
	return nil
}

// combinedVerificationPoint evaluates, for party j, the sum over all
// contributors of their committed polynomial at x=j+1, entirely in the
// exponent (no secret material is ever reconstructed).
func combinedVerificationPoint(j PartyIndex, commitments map[PartyIndex][]*secp256k1.PublicKey) *secp256k1.PublicKey {
	x := scalarFromIndex(j)
	var result *secp256k1.PublicKey
	for _, points := range commitments {
		var acc *secp256k1.PublicKey
		var xPow secp256k1.ModNScalar
		xPow.SetInt(1)
		for _, p := range points {
			term := scalarMultPoint(&xPow, p)
			if acc == nil {
				acc = term
			} else {
				acc = addPoints(acc, term)
			}
			xPow.Mul(x)
		}
		if result == nil {
			result = acc
		} else {
			result = addPoints(result, acc)
		}
	}
	return result
}
