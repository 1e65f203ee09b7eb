package serializer

import (
	"github.com/indigo-web/wire/internal/chunk"
	"github.com/indigo-web/wire/internal/ring"
)

// writeFramed copies a fully-rendered fixed-width frame (a chunk-close
// CRLF or a last-chunk marker) into r, tolerating the frame straddling
// the ring's physical end — ring.Ring.Prepare already splits such a
// region into two, so the only thing needed here is to copy across both
// halves instead of assuming PrepareContiguous always returns the whole
// thing in one piece.
func writeFramed(r *ring.Ring, frame []byte) {
	a, b := r.Prepare(len(frame))
	n := copy(a, frame)
	copy(b, frame[n:])
	r.Commit(len(frame))
}

// reserveChunkHeader commits chunk.HeaderLen zeroed bytes as a
// placeholder and returns the (possibly wrap-split) ranges backing them,
// so the caller can advance the write cursor past the header before the
// framed length is known — needed because the header must precede body
// bytes that are written afterward, but its value depends on how many
// of them there turn out to be.
func reserveChunkHeader(r *ring.Ring) (a, b []byte) {
	a, b = r.Prepare(chunk.HeaderLen)
	for i := range a {
		a[i] = 0
	}
	for i := range b {
		b[i] = 0
	}
	r.Commit(chunk.HeaderLen)

	return a, b
}

// patchChunkHeader renders n into the ranges previously returned by
// reserveChunkHeader. The bytes are already committed; this only
// overwrites their content.
func patchChunkHeader(a, b []byte, n uint64) {
	var hdr [chunk.HeaderLen]byte
	chunk.WriteHeader(hdr[:], n)
	copied := copy(a, hdr[:])
	copy(b, hdr[copied:])
}
