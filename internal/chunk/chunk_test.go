package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteHeader(t *testing.T) {
	t.Run("ZeroPadded", func(t *testing.T) {
		dst := make([]byte, HeaderLen)
		WriteHeader(dst, 0xA)
		require.Equal(t, "000000000000000A\r\n", string(dst))
	})

	t.Run("FullWidth", func(t *testing.T) {
		dst := make([]byte, HeaderLen)
		WriteHeader(dst, 0x123456789ABCDEF0)
		require.Equal(t, "123456789ABCDEF0\r\n", string(dst))
	})
}

func TestWriteClose(t *testing.T) {
	dst := make([]byte, CRLFLen)
	n := WriteClose(dst)
	require.Equal(t, CRLFLen, n)
	require.Equal(t, "\r\n", string(dst))
}

func TestWriteLast(t *testing.T) {
	dst := make([]byte, LastLen)
	n := WriteLast(dst)
	require.Equal(t, LastLen, n)
	require.Equal(t, "0\r\n\r\n", string(dst))
}

func TestOverhead(t *testing.T) {
	require.Equal(t, 25, Overhead)
}
