// Package bitcoin implements chain.Builder for the Bitcoin leg of
// spec.md section 6.3: the data blob is SHA-256 hashed and no recovery
// id is computed (v is always 0).
package bitcoin

import (
	"encoding/binary"

	"github.com/shardwallet/shardwallet/internal/chain"
)

// Builder implements chain.Builder for Bitcoin. Unlike Ethereum there
// is no RLP framing specified; the unsigned bytes are a fixed-width
// encoding of the destination and value sufficient to exercise the
// same signing-digest pipeline.
type Builder struct{}

func (Builder) Unsigned(tx chain.UnsignedTx) ([]byte, error) {
	out := make([]byte, 20+8)
	copy(out[:20], tx.To[:])
	binary.BigEndian.PutUint64(out[20:], tx.Value)
	return out, nil
}

func (Builder) Signed(tx chain.UnsignedTx, sig chain.Signature) ([]byte, error) {
	unsigned, err := Builder{}.Unsigned(tx)
	if err != nil {
		return nil, err
	}
	out := append(unsigned, sig.R...)
	out = append(out, sig.S...)
	return out, nil
}
