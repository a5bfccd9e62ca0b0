package ceremony

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewExecutionIDIsUniquePerCall(t *testing.T) {
	a := NewExecutionID()
	b := NewExecutionID()
	require.NotEqual(t, a, b)
	require.NotEqual(t, [16]byte{}, a)
}
