package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIsZeroValue(t *testing.T) {
	var m Metadata

	require.Equal(t, Identity, m.Encoding)
	require.Equal(t, Coding(""), Identity)
}

func TestCodingsAreDistinct(t *testing.T) {
	require.NotEqual(t, Identity, Deflate)
	require.NotEqual(t, Identity, Gzip)
	require.NotEqual(t, Deflate, Gzip)
}
