package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenResetThenReadRoundTrips(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	writes := [][]byte{
		[]byte{0x01, 0x02, 0x03},
		[]byte{0xA0},
		[]byte{0xB0, 0xC0},
	}
	total := 0
	for _, w := range writes {
		n, err := s.Write(w)
		require.NoError(t, err)
		total += n
	}
	require.Equal(t, total, s.Len())

	s.Reset()
	require.Equal(t, 0, s.Position())

	got := make([]byte, total)
	n, err := s.Read(got)
	require.NoError(t, err)
	require.Equal(t, total, n)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0xA0, 0xB0, 0xC0}, got)
}

func TestWriteGrowsCapacityBy1point5OrRequired(t *testing.T) {
	t.Parallel()

	s := New(2, "binary")
	require.Equal(t, 2, s.Capacity())

	_, err := s.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Capacity(), 3)
}

func TestReadShortReadIsNotError(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	_, err := s.Write([]byte{1, 2})
	require.NoError(t, err)
	s.Reset()

	buf := make([]byte, 10)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestClearPreservesCapacity(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	_, _ = s.Write([]byte{1, 2, 3, 4, 5})
	capBefore := s.Capacity()
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Equal(t, 0, s.Position())
	require.Equal(t, capBefore, s.Capacity())
}

func TestCloneDeepCopiesBytesSharesMetadataValues(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	_, _ = s.Write([]byte{9, 9, 9})

	type box struct{ n int }
	b := &box{n: 1}
	s.SetMetadata("k", b, nil)

	clone := s.Clone()
	clone.buf[0] = 0
	require.Equal(t, byte(9), s.buf[0], "clone must deep-copy bytes")

	v, ok := clone.GetMetadata("k")
	require.True(t, ok)
	require.Same(t, b, v)
}

func TestSetMetadataOverwriteInvokesOldFreeHook(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	freed := []string{}
	s.SetMetadata("k", "v1", func(v any) { freed = append(freed, v.(string)) })
	s.SetMetadata("k", "v2", func(v any) { freed = append(freed, v.(string)) })

	require.Equal(t, []string{"v1"}, freed)
	v, ok := s.GetMetadata("k")
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestDestroyInvokesFreeHooksInReverseInsertionOrder(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	var order []string
	s.SetMetadata("a", 1, func(v any) { order = append(order, "a") })
	s.SetMetadata("b", 2, func(v any) { order = append(order, "b") })
	s.SetMetadata("c", 3, func(v any) { order = append(order, "c") })

	require.NoError(t, s.Destroy())
	require.Equal(t, []string{"c", "b", "a"}, order)
}

func TestDestroyDoesNotReleaseBufferWhenNotOwned(t *testing.T) {
	t.Parallel()

	s := New(4, "binary")
	s.SetOwnership(false)
	require.NoError(t, s.Destroy())
}
