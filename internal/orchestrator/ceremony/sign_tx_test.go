package ceremony

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectSignersReturnsThresholdSizedSet(t *testing.T) {
	signers := SelectSigners(5, 3)
	require.Len(t, signers, 3)
	require.Equal(t, []int32{0, 1, 2}, signers)
}

func TestSelectSignersNeverRepeats(t *testing.T) {
	signers := SelectSigners(4, 2)
	seen := make(map[int32]bool)
	for _, s := range signers {
		require.False(t, seen[s], "duplicate signer index %d", s)
		seen[s] = true
	}
}
