package chain

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/dcrec/secp256k1/v3"
	"github.com/decred/dcrd/dcrec/secp256k1/v3/ecdsa"
	"github.com/go-errors/errors"
)

// VerifySignature checks that sig is a valid ECDSA signature over
// digest under pubKey, the same verification shape the teacher uses
// for every announcement signature it accepts (routing's
// ValidateChannelAnn/ValidateNodeAnn family): parse the key, rebuild a
// Signature from its raw components, call Verify. Here it lets the
// Orchestrator catch a corrupted or mismatched threshold signature
// before committing a Transaction row, rather than forwarding bad
// bytes to a chain provider (SPEC_FULL.md section C).
func VerifySignature(pubKey []byte, digest [32]byte, sig Signature) error {
	key, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return errors.Errorf("chain: parsing wallet public key: %v", err)
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig.R); overflow {
		return errors.New("chain: signature r overflows the curve order")
	}
	if overflow := s.SetByteSlice(sig.S); overflow {
		return errors.New("chain: signature s overflows the curve order")
	}

	if !ecdsa.NewSignature(&r, &s).Verify(digest[:], key) {
		return errors.Errorf("chain: signature does not verify against wallet key %x: %s", pubKey, spew.Sdump(sig))
	}
	return nil
}
