package tss

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
)

// auxPrimeBits is deliberately small for a from-scratch, non-hardened
// substrate (see the package doc). A production aux-info ceremony
// generates 1536+ bit safe primes with a biprime zero-knowledge proof
// shared between parties; this one only needs to produce a modulus and
// a pair of Pedersen generators that exercise the same wire shape.
const auxPrimeBits = 512

// AuxInfo is the output of the aux-info sub-ceremony: a locally
// generated Paillier-style modulus and ring-Pedersen generators. Unlike
// Keygen, nothing here is actually shared between parties in this
// substrate — each party generates its own auxiliary material and
// simply announces readiness, matching spec.md's framing of aux-info as
// a ceremony that can run and fail independently of keygen and is only
// combined with it afterward.
type AuxInfo struct {
	Modulus    []byte
	Generators map[string][]byte
}

const (
	roundAuxReady = 10
)

type auxReadyMsg struct {
	EID ExecutionId `json:"eid"`
}

// RunAuxInfo generates this party's auxiliary material and then
// barrier-syncs with every other party over net so that a party whose
// prime generation fails aborts the ceremony for everyone, the same way
// a failed keygen round does.
func RunAuxInfo(ctx context.Context, net Network, total uint16, eid ExecutionId) (*AuxInfo, error) {
	info, err := generateAuxInfo()
	if err != nil {
		return nil, fmt.Errorf("tss: generating aux info: %w", err)
	}

	out, err := json.Marshal(auxReadyMsg{EID: eid})
	if err != nil {
		return nil, err
	}
	if err := net.Broadcast(ctx, roundAuxReady, out); err != nil {
		return nil, fmt.Errorf("tss: broadcasting aux-info readiness: %w", err)
	}

	for received := 0; received < int(total)-1; received++ {
		_, payload, err := net.Recv(ctx, roundAuxReady)
		if err != nil {
			return nil, fmt.Errorf("tss: waiting on aux-info readiness: %w", err)
		}
		var ready auxReadyMsg
		if err := json.Unmarshal(payload, &ready); err != nil {
			return nil, fmt.Errorf("tss: decoding aux-info readiness: %w", err)
		}
		if ready.EID != eid {
			return nil, fmt.Errorf("tss: execution id mismatch during aux-info barrier")
		}
	}

	return info, nil
}

func generateAuxInfo() (*AuxInfo, error) {
	p, err := randSafePrime(auxPrimeBits)
	if err != nil {
		return nil, err
	}
	q, err := randSafePrime(auxPrimeBits)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).Mul(p, q)

	s, err := randQuadraticResidue(n)
	if err != nil {
		return nil, err
	}
	t, err := randQuadraticResidue(n)
	if err != nil {
		return nil, err
	}

	return &AuxInfo{
		Modulus: n.Bytes(),
		Generators: map[string][]byte{
			"s": s.Bytes(),
			"t": t.Bytes(),
		},
	}, nil
}

// randSafePrime returns a probable prime p such that (p-1)/2 is also
// probably prime, using rejection sampling over crypto/rand candidates.
func randSafePrime(bits int) (*big.Int, error) {
	for {
		q, err := rand.Prime(rand.Reader, bits-1)
		if err != nil {
			return nil, err
		}
		p := new(big.Int).Lsh(q, 1)
		p.Add(p, big.NewInt(1))
		if p.ProbablyPrime(20) {
			return p, nil
		}
	}
}

func randQuadraticResidue(n *big.Int) (*big.Int, error) {
	r, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	r.Mul(r, r)
	r.Mod(r, n)
	if r.Sign() == 0 {
		return randQuadraticResidue(n)
	}
	return r, nil
}
