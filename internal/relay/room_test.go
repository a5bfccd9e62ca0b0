package relay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreateReturnsSameRoom(t *testing.T) {
	reg := NewRegistry()
	a := reg.GetOrCreate("keygen_1")
	b := reg.GetOrCreate("keygen_1")
	require.Same(t, a, b)

	_, ok := reg.Lookup("keygen_1")
	require.True(t, ok)
	_, ok = reg.Lookup("never-created")
	require.False(t, ok)
}

func TestBroadcastOrderingAndSubscribeResume(t *testing.T) {
	room := newRoom()
	room.Broadcast([]byte("first"))
	room.Broadcast([]byte("second"))

	sub := room.Subscribe(0)
	defer sub.Close()

	ids, bodies, err := sub.Next(nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, ids)
	require.Equal(t, [][]byte{[]byte("first"), []byte("second")}, bodies)
}

func TestSubscribeFromMidStreamSkipsEarlierMessages(t *testing.T) {
	room := newRoom()
	room.Broadcast([]byte("first"))
	room.Broadcast([]byte("second"))
	room.Broadcast([]byte("third"))

	sub := room.Subscribe(2)
	defer sub.Close()

	ids, bodies, err := sub.Next(nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{2}, ids)
	require.Equal(t, [][]byte{[]byte("third")}, bodies)
}

func TestIssueUniqueIdxIsMonotonic(t *testing.T) {
	room := newRoom()
	require.EqualValues(t, 0, room.IssueUniqueIdx())
	require.EqualValues(t, 1, room.IssueUniqueIdx())
	require.EqualValues(t, 2, room.IssueUniqueIdx())
}

func TestSubscriberCount(t *testing.T) {
	room := newRoom()
	require.EqualValues(t, 0, room.SubscriberCount())

	sub := room.Subscribe(0)
	require.EqualValues(t, 1, room.SubscriberCount())

	sub.Close()
	require.EqualValues(t, 0, room.SubscriberCount())
}
