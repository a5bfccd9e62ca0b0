// Package tss is the in-repo substrate the participant drives to produce a
// threshold-ECDSA key share and, later, a signature over it.
//
// spec.md is explicit that this system does not implement a
// threshold-ECDSA primitive as a cryptographic contribution: production
// deployments plug in an audited library (the teacher's Rust sibling uses
// cggmp21). No such library exists in this repository's dependency
// corpus, so this package is a minimal, self-contained Shamir/Feldman-VSS
// keygen and an additive t-of-n signing scheme. It is good enough to
// exercise every coordination property spec.md actually specifies
// (execution-id binding, round ordering through the relay, atomic
// success/failure, party-index assignment) but it is not hardened against
// an actively malicious co-signer the way CGGMP21 is — there is no
// zero-knowledge range proof on the nonce shares. Treat internal/tss as
// the seam a real threshold-ECDSA crate would be dropped behind.
package tss

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v3"
)

// ExecutionId is the 128-bit tag bound to one ceremony run (spec.md
// section 3). Every protocol message carries it; a party must reject any
// message tagged with a different id than the one it started with.
type ExecutionId [16]byte

// PartyIndex is a party's fixed position, 0-based, matching the position
// of its endpoint in the configured participant list (spec.md design
// note "Fixed topology as a tagged-union, not a record of three fields").
type PartyIndex uint16

// KeyShare is the durable output of a successful keygen+aux-info
// ceremony: this participant's secret share, the shared public key, and
// enough bookkeeping to run a later signing ceremony. It is the opaque
// blob spec.md section 3 says is stored in the secret store keyed by
// wallet id.
type KeyShare struct {
	Index         PartyIndex                    `json:"index"`
	Threshold     uint16                         `json:"threshold"`
	TotalParties  uint16                         `json:"total_parties"`
	Secret        []byte                         `json:"secret"`          // scalar share, big-endian
	PublicKey     []byte                         `json:"public_key"`      // compressed shared pubkey
	VerifyShares  map[PartyIndex][]byte          `json:"verify_shares"`   // each party's public share point, derived from the Feldman commitments, compressed
	AuxModulus    []byte                         `json:"aux_modulus"`     // product of two safe primes, from the aux-info sub-ceremony
	AuxGenerators map[string][]byte              `json:"aux_generators"`  // ring-Pedersen generators s, t
}

// PublicPoint parses the share's combined public key.
func (k *KeyShare) PublicPoint() (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(k.PublicKey)
}

// SecretScalar parses the share's secret into a modular scalar.
func (k *KeyShare) SecretScalar() *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetByteSlice(k.Secret)
	return &s
}
