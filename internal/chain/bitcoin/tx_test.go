package bitcoin

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shardwallet/shardwallet/internal/chain"
)

func TestUnsignedEncodesDestinationAndValue(t *testing.T) {
	tx := chain.UnsignedTx{To: [20]byte{1, 2, 3}, Value: 12345}
	out, err := Builder{}.Unsigned(tx)
	require.NoError(t, err)
	require.Len(t, out, 28)
	require.Equal(t, tx.To[:], out[:20])
	require.Equal(t, tx.Value, binary.BigEndian.Uint64(out[20:]))
}

func TestSignedAppendsSignatureAfterUnsignedBytes(t *testing.T) {
	tx := chain.UnsignedTx{To: [20]byte{9}, Value: 1}
	sig := chain.Signature{R: []byte{0xaa, 0xbb}, S: []byte{0xcc, 0xdd}, V: 0}

	out, err := Builder{}.Signed(tx, sig)
	require.NoError(t, err)

	unsigned, err := Builder{}.Unsigned(tx)
	require.NoError(t, err)

	require.Equal(t, unsigned, out[:len(unsigned)])
	require.Equal(t, sig.R, out[len(unsigned):len(unsigned)+len(sig.R)])
	require.Equal(t, sig.S, out[len(unsigned)+len(sig.R):])
}
