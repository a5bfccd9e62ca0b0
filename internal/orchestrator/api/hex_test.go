package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shardwallet/shardwallet/internal/orchestrator/db"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

func TestDecodeHexAddressStripsPrefix(t *testing.T) {
	b, err := decodeHexAddress("0xdeadbeef")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
}

func TestDecodeHexAddressWithoutPrefix(t *testing.T) {
	b, err := decodeHexAddress("deadbeef")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
}

func TestDecodeHexAddressRejectsInvalidHex(t *testing.T) {
	_, err := decodeHexAddress("0xzz")
	require.Error(t, err)
}

func TestHexEncodeAddsPrefix(t *testing.T) {
	require.Equal(t, "0xdeadbeef", hexEncode([]byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestChainFromStringRecognizesSupportedChains(t *testing.T) {
	dbChain, mpcChain, ok := chainFromString("ethereum")
	require.True(t, ok)
	require.Equal(t, db.ChainEthereum, dbChain)
	require.Equal(t, mpc.Chain_ETHEREUM, mpcChain)

	dbChain, mpcChain, ok = chainFromString("bitcoin")
	require.True(t, ok)
	require.Equal(t, db.ChainBitcoin, dbChain)
	require.Equal(t, mpc.Chain_BITCOIN, mpcChain)
}

func TestChainFromStringRejectsUnknown(t *testing.T) {
	_, _, ok := chainFromString("dogecoin")
	require.False(t, ok)
}
