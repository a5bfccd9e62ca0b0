package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopFIFO(t *testing.T) {
	q := NewQueue()
	require.Nil(t, q.Pop())

	q.Push(1, [16]byte{1})
	q.Push(2, [16]byte{2})

	first := q.Pop()
	require.NotNil(t, first)
	require.EqualValues(t, 1, first.WalletID)

	second := q.Pop()
	require.NotNil(t, second)
	require.EqualValues(t, 2, second.WalletID)

	require.Nil(t, q.Pop())
}

func TestRequeueDropsAfterMaxAttempts(t *testing.T) {
	q := NewQueue()
	entry := &Entry{WalletID: 9}

	for i := 0; i < MaxAttempts()-1; i++ {
		dropped := q.Requeue(entry)
		require.False(t, dropped, "attempt %d should not be dropped yet", i)
	}

	dropped := q.Requeue(entry)
	require.True(t, dropped)
}

func TestLenReflectsPending(t *testing.T) {
	q := NewQueue()
	require.Equal(t, 0, q.Len())
	q.Push(1, [16]byte{})
	q.Push(2, [16]byte{})
	require.Equal(t, 2, q.Len())
	q.Pop()
	require.Equal(t, 1, q.Len())
}
