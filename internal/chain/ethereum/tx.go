// Package ethereum builds the Ethereum unsigned/signed transaction RLP
// encodings described in spec.md section 6.3, including its two
// intentional deviations from mainnet semantics: SHA-256 instead of
// Keccak-256 for the signing digest, and the fixed chain-id-1 EIP-155
// `v` formula. Both are preserved byte-for-byte per spec section 9's
// instruction not to "fix" them.
package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/shardwallet/shardwallet/internal/chain"
)

// Defaults mirrors spec.md section 4.1.3's hardcoded transaction
// fields: nonce=10, gas_price=1 gwei, gas_limit=21000, data=empty. A
// real deployment would fetch the nonce from a provider and accept
// user-supplied gas parameters (spec.md section 9); this build does
// not, by spec.
var Defaults = struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	ChainID  int64
}{
	Nonce:    10,
	GasPrice: big.NewInt(1_000_000_000),
	GasLimit: 21000,
	ChainID:  1,
}

// unsignedTx is the RLP shape of [nonce, gas_price, gas_limit, to,
// value, data] (spec.md section 6.3).
type unsignedTx struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       common.Address
	Value    *big.Int
	Data     []byte
}

// signedTx appends [v, r, s] per EIP-155-shaped (but non-standard
// digest) signing.
type signedTx struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       common.Address
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// Builder implements chain.Builder for Ethereum.
type Builder struct{}

func (Builder) Unsigned(tx chain.UnsignedTx) ([]byte, error) {
	u := unsignedTx{
		Nonce:    Defaults.Nonce,
		GasPrice: new(big.Int).Set(Defaults.GasPrice),
		GasLimit: Defaults.GasLimit,
		To:       common.Address(tx.To),
		Value:    new(big.Int).SetUint64(tx.Value),
		Data:     []byte{},
	}
	return rlp.EncodeToBytes(&u)
}

func (Builder) Signed(tx chain.UnsignedTx, sig chain.Signature) ([]byte, error) {
	s := signedTx{
		Nonce:    Defaults.Nonce,
		GasPrice: new(big.Int).Set(Defaults.GasPrice),
		GasLimit: Defaults.GasLimit,
		To:       common.Address(tx.To),
		Value:    new(big.Int).SetUint64(tx.Value),
		Data:     []byte{},
		V:        new(big.Int).SetUint64(uint64(sig.V)),
		R:        new(big.Int).SetBytes(sig.R),
		S:        new(big.Int).SetBytes(sig.S),
	}
	return rlp.EncodeToBytes(&s)
}

// DecodeUnsigned reverses Unsigned, used by the round-trip test. It
// accepts only the unsigned encoding, not the signed one.
func DecodeUnsigned(b []byte) (chain.UnsignedTx, error) {
	var u unsignedTx
	if err := rlp.DecodeBytes(b, &u); err != nil {
		return chain.UnsignedTx{}, err
	}
	return chain.UnsignedTx{To: u.To, Value: u.Value.Uint64()}, nil
}
