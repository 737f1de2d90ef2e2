package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorAcquireIsDenseAndMonotonic(t *testing.T) {
	a := NewNodeAllocator()

	first := a.Acquire()
	second := a.Acquire()
	third := a.Acquire()

	require.Equal(t, uint32(0), first)
	require.Equal(t, uint32(1), second)
	require.Equal(t, uint32(2), third)
	require.EqualValues(t, 3, a.HighWater())
}

func TestAllocatorReleaseReissuesBeforeMinting(t *testing.T) {
	a := NewNodeAllocator()
	_ = a.Acquire()
	b := a.Acquire()

	a.Release(b)
	reissued := a.Acquire()
	require.Equal(t, b, reissued)

	// High water mark never regresses even though the id was recycled.
	require.EqualValues(t, 2, a.HighWater())
}

func TestGraphArrayResizePreservesExistingEntries(t *testing.T) {
	arr := NewGraphArray[NodeId, int](2)
	arr.Set(0, 10)
	arr.Set(1, 20)

	arr.Resize(4)
	require.Equal(t, 4, arr.Size())
	require.Equal(t, 10, arr.Get(0))
	require.Equal(t, 20, arr.Get(1))
	require.Equal(t, 0, arr.Get(3))
}

func TestElementIdArrayDefaultsToNull(t *testing.T) {
	arr := NewElementIdArray[NodeId, ComponentId](3)
	for i := 0; i < 3; i++ {
		require.True(t, arr.Get(NodeId(i)).IsNull())
	}
}

func TestNullSentinelsAcrossIdKinds(t *testing.T) {
	require.True(t, NodeId(Null).IsNull())
	require.True(t, EdgeId(Null).IsNull())
	require.True(t, ComponentId(Null).IsNull())
	require.False(t, NodeId(0).IsNull())
}
