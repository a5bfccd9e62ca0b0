// Package chain builds the unsigned transaction bytes a signing
// ceremony signs over, and assembles the final chain-encoded signed
// transaction from the resulting (r, s, v) (spec.md section 6.3).
package chain

// UnsignedTx is the chain-agnostic input a Builder needs to produce an
// unsigned transaction's encoded bytes.
type UnsignedTx struct {
	To    [20]byte
	Value uint64
}

// Signature is the threshold-ECDSA output a Builder combines with an
// UnsignedTx to produce the final signed bytes.
type Signature struct {
	R []byte
	S []byte
	V byte
}

// Builder produces the byte-strings a signing ceremony operates over
// and assembles its output into a submittable transaction.
type Builder interface {
	// Unsigned returns the bytes the signing ceremony's SHA-256 digest
	// is taken over (spec.md section 6.3).
	Unsigned(tx UnsignedTx) ([]byte, error)

	// Signed combines the original tx with a signature into the final
	// chain-encoded bytes ready for submission.
	Signed(tx UnsignedTx, sig Signature) ([]byte, error)
}
