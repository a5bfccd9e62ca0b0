package ethereum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shardwallet/shardwallet/internal/chain"
)

func TestUnsignedRoundTrip(t *testing.T) {
	var to [20]byte
	copy(to[:], []byte("0123456789abcdefghi"))
	want := chain.UnsignedTx{To: to, Value: 1_500_000}

	var b Builder
	encoded, err := b.Unsigned(want)
	require.NoError(t, err)

	got, err := DecodeUnsigned(encoded)
	require.NoError(t, err)
	require.Equal(t, want.To, got.To)
	require.Equal(t, want.Value, got.Value)
}

func TestSignedIncludesSignature(t *testing.T) {
	var to [20]byte
	copy(to[:], []byte("0123456789abcdefghi"))
	tx := chain.UnsignedTx{To: to, Value: 10}
	sig := chain.Signature{R: []byte{1, 2, 3}, S: []byte{4, 5, 6}, V: 38}

	var b Builder
	signed, err := b.Signed(tx, sig)
	require.NoError(t, err)

	unsigned, err := b.Unsigned(tx)
	require.NoError(t, err)

	// The signed encoding carries strictly more information than the
	// unsigned one (it appends v, r, s), so it must never be shorter.
	require.Greater(t, len(signed), len(unsigned))
}
