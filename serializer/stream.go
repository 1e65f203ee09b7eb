package serializer

import (
	"github.com/indigo-web/wire/internal/chunk"
	"github.com/indigo-web/wire/internal/ring"
)

// Stream is the push-side handle for a start_stream body (spec §4.G): a
// non-owning reference back to the parent Serializer whose lifetime it
// shares. The producer writes body bytes directly into the range
// Prepare returns, then calls Commit with how many it wrote, and Close
// once there's nothing left to push.
type Stream struct {
	s *Serializer
}

// backing is tmp1 when the body is compressed (raw bytes awaiting the
// filter) and tmp0 otherwise (bytes headed straight for the wire).
func (st *Stream) backing() *ring.Ring {
	if st.s.compressed {
		return st.s.tmp1
	}
	return st.s.tmp0
}

// Capacity returns the total size of the ring the caller writes into.
func (st *Stream) Capacity() int {
	return st.backing().Capacity()
}

// Size returns how many bytes are currently buffered, awaiting the
// serializer draining them into the wire image.
func (st *Stream) Size() int {
	return st.backing().Size()
}

// IsFull reports whether the ring lacks free room for Prepare to hand
// out any body bytes. Chunked uncompressed mode needs room for the full
// chunk.Overhead epilogue (header, close CRLF and last-chunk marker)
// plus one byte, so it goes full earlier than a bare capacity comparison
// would suggest — this compares free space, not total capacity, against
// that epilogue, since total capacity never changes and would make
// IsFull a constant otherwise. In that mode Prepare can still return
// ErrWorkspaceTooSmall while IsFull is false, when the free space is
// split across the ring's physical end.
func (st *Stream) IsFull() bool {
	free := st.backing().Free()
	if st.s.chunked && !st.s.compressed {
		return free < chunk.Overhead+1
	}
	return free == 0
}

// Prepare returns a mutable range the caller may write body data into.
// In chunked uncompressed mode the returned range already excludes the
// full chunk.Overhead (the leading 18-byte header and the trailing
// 2-byte close CRLF Commit writes once the length is known, plus the
// 5-byte last-chunk marker Close writes afterward) so that a maximal
// Prepare/Commit/Close sequence, with no intervening Serializer.Consume,
// never runs tmp0 out of room for the epilogue Close still owes it.
func (st *Stream) Prepare() ([]byte, error) {
	s := st.s

	if s.compressed {
		return s.tmp1.PrepareContiguous(s.tmp1.Free()), nil
	}

	if !s.chunked {
		return s.tmp0.PrepareContiguous(s.tmp0.Free()), nil
	}

	if s.tmp0.Free() < chunk.Overhead+1 {
		return nil, ErrWorkspaceTooSmall
	}

	region := s.tmp0.PrepareContiguous(s.tmp0.Free())
	if len(region) <= chunk.Overhead {
		return nil, ErrWorkspaceTooSmall
	}

	return region[chunk.HeaderLen : len(region)-chunk.CRLFLen-chunk.LastLen], nil
}

// Commit marks the n bytes the caller just wrote into the range Prepare
// returned as ready to transmit. In chunked uncompressed mode it also
// writes the chunk header for length n and the trailing CRLF into the
// bytes Prepare reserved around that range; n == 0 is a logic error
// there since empty chunks are invalid — call Close instead.
func (st *Stream) Commit(n int) error {
	s := st.s

	if s.compressed {
		s.tmp1.Commit(n)
		return nil
	}

	if !s.chunked {
		s.tmp0.Commit(n)
		return nil
	}

	if n == 0 {
		panic(&LogicError{Msg: "Stream.Commit(0) is invalid in chunked mode; use Close"})
	}

	// Re-derive the same region Prepare handed out: nothing else touches
	// tmp0 between a matched Prepare/Commit pair, so a request starting
	// at the same write cursor returns the same leading bytes, now that
	// n is known.
	total := chunk.HeaderLen + n + chunk.CRLFLen
	region := s.tmp0.PrepareContiguous(total)
	if len(region) < total {
		return ErrWorkspaceTooSmall
	}

	chunk.WriteHeader(region[:chunk.HeaderLen], uint64(n))
	chunk.WriteClose(region[chunk.HeaderLen+n:])
	s.tmp0.Commit(total)

	return nil
}

// Close signals that no further body bytes will be pushed. Precondition:
// the body must still be open — calling Close twice is a logic error.
func (st *Stream) Close() {
	s := st.s

	if !s.more {
		panic(&LogicError{Msg: "Stream.Close called on an already-closed body"})
	}

	if s.chunked && !s.compressed {
		var last [chunk.LastLen]byte
		chunk.WriteLast(last[:])
		writeFramed(s.tmp0, last[:])
	}

	s.more = false
}
