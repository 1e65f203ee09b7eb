package scatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	t.Run("PushAndTotal", func(t *testing.T) {
		var v View
		v.Push([]byte("header"))
		v.Push(nil)
		v.Push([]byte("body"))

		require.Equal(t, 2, v.Len())
		require.Equal(t, 10, v.Total())
	})

	t.Run("ConsumePartialFirstSlot", func(t *testing.T) {
		var v View
		v.Push([]byte("header"))
		v.Push([]byte("body"))

		v.Consume(3)
		require.Equal(t, "der", string(v.Slots()[0]))
		require.Equal(t, "body", string(v.Slots()[1]))
	})

	t.Run("ConsumeAcrossSlots", func(t *testing.T) {
		var v View
		v.Push([]byte("header"))
		v.Push([]byte("body"))

		v.Consume(8)
		require.Equal(t, 1, v.Len())
		require.Equal(t, "dy", string(v.Slots()[0]))
	})

	t.Run("ConsumeEverything", func(t *testing.T) {
		var v View
		v.Push([]byte("ab"))
		v.Push([]byte("cd"))

		v.Consume(4)
		require.Equal(t, 0, v.Len())
	})

	t.Run("ResetClears", func(t *testing.T) {
		var v View
		v.Push([]byte("x"))
		v.Reset()
		require.Equal(t, 0, v.Len())
		require.Equal(t, 0, v.Total())
	})
}
