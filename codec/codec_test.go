package codec

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func drainFilter(t *testing.T, f Filter, in []byte, outCap int) []byte {
	t.Helper()

	var result []byte
	out := make([]byte, outCap)
	offset := 0

	for {
		more := offset < len(in)
		slice := in[offset:]

		inN, outN, finished, err := f.OnProcess(out, slice, more)
		require.NoError(t, err)

		offset += inN
		result = append(result, out[:outN]...)

		if finished {
			break
		}

		if inN == 0 && outN == 0 && offset >= len(in) {
			// nothing left to feed and nothing drained: ask once more with
			// more=false to force the final flush.
			inN, outN, finished, err = f.OnProcess(out, nil, false)
			require.NoError(t, err)
			result = append(result, out[:outN]...)
			if finished {
				break
			}
		}
	}

	return result
}

func TestGZIPRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	f := NewGZIP().New(make([]byte, 256))
	compressed := drainFilter(t, f, payload, 32)

	r, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)

	decompressed, err := readAll(r)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestDeflateSmallOutBuffer(t *testing.T) {
	payload := []byte("deflate over a tiny out buffer, one byte at a time")

	f := NewDeflate().New(make([]byte, 256))
	compressed := drainFilter(t, f, payload, 1)

	require.NotEmpty(t, compressed)
}

func TestRegistryLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	c, ok := r.Get("GZIP")
	require.True(t, ok)
	require.Equal(t, "gzip", c.Token())

	_, ok = r.Get("br")
	require.False(t, ok)
}

func TestRegistryAcceptEncoding(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, "deflate, gzip", r.AcceptEncoding())
}

func TestFilterResetReusable(t *testing.T) {
	f := NewGZIP().New(make([]byte, 256))

	first := drainFilter(t, f, []byte("first body"), 64)
	require.NotEmpty(t, first)

	f.Reset()

	second := drainFilter(t, f, []byte("second body"), 64)
	require.NotEmpty(t, second)
}

func readAll(r *gzip.Reader) ([]byte, error) {
	var buf bytes.Buffer
	tmp := make([]byte, 512)

	for {
		n, err := r.Read(tmp)
		buf.Write(tmp[:n])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf.Bytes(), nil
			}
			return nil, err
		}
	}
}
