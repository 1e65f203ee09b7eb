package serializer

import (
	"github.com/indigo-web/wire/internal/chunk"
	"github.com/indigo-web/wire/internal/ring"
	"github.com/indigo-web/wire/internal/scatter"
)

// feed is the upstream input a compressed body draws from: the caller's
// buffer list for the buffers style, or a ring already filled with raw
// bytes for the source/stream styles.
type feed interface {
	next() []byte
	advance(n int)
}

type bufferFeed struct {
	v *scatter.View
}

func (f bufferFeed) next() []byte {
	if f.v.Len() == 0 {
		return nil
	}

	return f.v.Slots()[0]
}

func (f bufferFeed) advance(n int) {
	f.v.Consume(n)
}

type ringFeed struct {
	r *ring.Ring
}

func (f ringFeed) next() []byte {
	a, _ := f.r.Data()
	return a
}

func (f ringFeed) advance(n int) {
	f.r.Consume(n)
}

// filterScratchSize picks how much of a reserved front-slice a Filter's
// internal staging ring gets, as a fraction of the tail available to it
// at start_* time, bounded to a sane range. There's no principled exact
// bound here — klauspost/compress's writers can emit a burst larger than
// any single input chunk on Close — so this is a heuristic, not a proof;
// pathologically small workspaces will surface as ErrWorkspaceTooSmall
// at start_* when the reservation doesn't fit, rather than corrupting
// anything at serialize time.
func filterScratchSize(tailLen int) int {
	n := tailLen / 4
	if n < 256 {
		n = 256
	}
	if n > 8192 {
		n = 8192
	}

	return n
}

// prepareCompressed runs the shared compressed-body fill loop (spec
// §4.E.1 in the project's design notes): drain whatever the Filter can
// produce from in into tmp0, chunk-framing the result if s.chunked.
// Precondition: s.tmp0.Size() == 0 on entry — callers only invoke this
// once the previous view has been fully drained.
func (s *Serializer) prepareCompressed(in feed) error {
	tmp0 := s.tmp0

	var hdrA, hdrB []byte
	if s.chunked {
		hdrA, hdrB = reserveChunkHeader(tmp0)
	}

	numWritten := 0

	for {
		inBuf := in.next()

		want := tmp0.Free()
		if s.chunked {
			want -= chunk.CRLFLen + chunk.LastLen + 1
		}
		if want <= 0 {
			break
		}

		out := tmp0.PrepareContiguous(want)
		if len(out) == 0 {
			break
		}

		inBytes, outBytes, finished, err := s.filter.OnProcess(out, inBuf, s.more)
		if err != nil {
			return err
		}

		in.advance(inBytes)
		tmp0.Commit(outBytes)
		numWritten += outBytes

		if finished {
			s.filterDone = true
		}
		if outBytes == 0 {
			break
		}
	}

	if !s.chunked {
		return nil
	}

	// A zero-length chunk header would read as the last chunk under RFC
	// 7230, so when the fill produced nothing the reserved slot is
	// withdrawn (nothing was committed after it) and only the last-chunk
	// marker is written, once the filter is done.
	if numWritten == 0 {
		tmp0.Uncommit(chunk.HeaderLen)
		if s.filterDone {
			var last [chunk.LastLen]byte
			chunk.WriteLast(last[:])
			writeFramed(tmp0, last[:])
		}
		return nil
	}

	patchChunkHeader(hdrA, hdrB, uint64(numWritten))

	var crlf [chunk.CRLFLen]byte
	chunk.WriteClose(crlf[:])
	writeFramed(tmp0, crlf[:])

	if s.filterDone {
		var last [chunk.LastLen]byte
		chunk.WriteLast(last[:])
		writeFramed(tmp0, last[:])
	}

	return nil
}
