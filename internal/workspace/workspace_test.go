package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	t.Run("ReserveFrontShrinksTail", func(t *testing.T) {
		ws := New(20)
		require.Equal(t, 20, ws.Cap())

		front, err := ws.ReserveFront(5)
		require.NoError(t, err)
		require.Len(t, front, 5)
		require.Len(t, ws.Tail(), 15)
	})

	t.Run("ReserveFrontTooSmall", func(t *testing.T) {
		ws := New(10)

		_, err := ws.ReserveFront(11)
		require.ErrorIs(t, err, ErrTooSmall)
	})

	t.Run("ClearRestoresCapacity", func(t *testing.T) {
		ws := New(10)

		_, err := ws.ReserveFront(10)
		require.NoError(t, err)
		require.Len(t, ws.Tail(), 0)

		ws.Clear()
		require.Len(t, ws.Tail(), 10)
	})

	t.Run("ReservationsAreDisjoint", func(t *testing.T) {
		ws := New(10)

		a, err := ws.ReserveFront(4)
		require.NoError(t, err)
		b, err := ws.ReserveFront(3)
		require.NoError(t, err)

		copy(a, "AAAA")
		copy(b, "BBB")
		copy(ws.Tail(), "CCC")

		require.Equal(t, "AAAA", string(a))
		require.Equal(t, "BBB", string(b))
		require.Equal(t, "CCC", string(ws.Tail()))
	})
}
