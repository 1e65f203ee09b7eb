package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	t.Run("PrepareCommitData", func(t *testing.T) {
		r := New(make([]byte, 8))

		a, b := r.Prepare(5)
		require.Len(t, a, 5)
		require.Empty(t, b)
		copy(a, "hello")
		r.Commit(5)

		require.Equal(t, 5, r.Size())
		da, db := r.Data()
		require.Equal(t, "hello", string(da))
		require.Empty(t, db)
	})

	t.Run("ConsumeFreesRoom", func(t *testing.T) {
		r := New(make([]byte, 4))

		copy(r.PrepareContiguous(4), "abcd")
		r.Commit(4)
		require.Equal(t, 0, r.Free())

		r.Consume(2)
		require.Equal(t, 2, r.Free())

		da, _ := r.Data()
		require.Equal(t, "cd", string(da))
	})

	t.Run("WrapsAroundPhysicalEnd", func(t *testing.T) {
		r := New(make([]byte, 4))

		copy(r.PrepareContiguous(4), "abcd")
		r.Commit(4)
		r.Consume(3) // read=3, 1 byte ("d") left; write wrapped to 0

		require.Equal(t, 3, r.Free())
		pa, pb := r.Prepare(3)
		require.Equal(t, 3, len(pa)+len(pb))
	})

	t.Run("PrepareFromWrappedWriteCursorIsContiguous", func(t *testing.T) {
		r := New(make([]byte, 6))

		copy(r.PrepareContiguous(6), "abcdef")
		r.Commit(6)
		r.Consume(4) // read=4, write=6%6=0, size=2

		// free = 4, all of it contiguous from write=0 up to read=4
		a, b := r.Prepare(4)
		require.Len(t, a, 4)
		require.Empty(t, b)

		r.Consume(2) // read=6%6=0, size=0
		r.Commit(0)
	})

	t.Run("DataSplitsWhenWrapped", func(t *testing.T) {
		r := New(make([]byte, 4))

		copy(r.PrepareContiguous(4), "abcd")
		r.Commit(4)
		r.Consume(2) // read=2, size=2

		a, _ := r.Prepare(2) // write=0..2
		copy(a, "ef")
		r.Commit(2) // size=4, write=2

		da, db := r.Data() // read=2, size=4 -> first=4-2=2 < size(4)
		require.Equal(t, "cd", string(da))
		require.Equal(t, "ef", string(db))
	})

	t.Run("UncommitRetractsPlaceholder", func(t *testing.T) {
		r := New(make([]byte, 8))

		dst := r.PrepareContiguous(3)
		copy(dst, "xxx")
		r.Commit(3)
		require.Equal(t, 3, r.Size())

		r.Uncommit(3)
		require.Equal(t, 0, r.Size())
		require.Equal(t, 8, r.Free())

		copy(r.PrepareContiguous(5), "hello")
		r.Commit(5)
		da, _ := r.Data()
		require.Equal(t, "hello", string(da))
	})

	t.Run("EmptyRingIsSafe", func(t *testing.T) {
		r := New(nil)
		require.Equal(t, 0, r.Capacity())
		require.Nil(t, r.PrepareContiguous(10))
		r.Commit(0)
		r.Consume(0)
	})
}
