package codec

import (
	"io"

	"github.com/indigo-web/wire/internal/ring"
)

// writeResetter is the common shape of flate.Writer and gzip.Writer:
// an io.WriteCloser that can be rebound to a fresh destination and
// reused, sparing an allocation per body. Same interface the teacher's
// http/codec.baseInstance closes over.
type writeResetter interface {
	io.WriteCloser
	Reset(dst io.Writer)
}

// sinkWriter is an io.Writer that lands every Write into a ring.Ring
// instead of a socket. The compressor's Write/Close calls can each emit
// more bytes than the caller's current out slice has room for; staging
// them in a ring lets OnProcess drain at most len(out) bytes per call
// and carry the remainder to the next call, which flate.Writer/
// gzip.Writer's own io.Writer-shaped API has no way to do on its own.
type sinkWriter struct {
	buf *ring.Ring
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		dst := s.buf.PrepareContiguous(len(p) - written)
		if len(dst) == 0 {
			// The scratch ring's size is whatever slice the caller handed
			// to newBaseFilter; a compressor burst larger than its free
			// room cannot be staged and is reported as a short buffer.
			return written, io.ErrShortBuffer
		}

		n := copy(dst, p[written:])
		s.buf.Commit(n)
		written += n
	}

	return written, nil
}

// baseFilter adapts a writeResetter compressor to the Filter contract,
// continuing the teacher's http/codec.baseInstance (Write/Close over a
// reset-able compressor) narrowed to the bounded in/out step-function
// shape this module needs instead of a push-until-EOF io.Writer.
type baseFilter struct {
	w      writeResetter
	sink   *sinkWriter
	closed bool
}

func newBaseFilter(w writeResetter, scratch []byte) *baseFilter {
	sink := &sinkWriter{buf: ring.New(scratch)}
	w.Reset(sink)

	return &baseFilter{w: w, sink: sink}
}

func (f *baseFilter) OnProcess(out, in []byte, more bool) (inBytes, outBytes int, finished bool, err error) {
	// Drain whatever is already staged before asking the compressor for
	// more — out's capacity is the only thing bounding a single call.
	outBytes = f.drain(out)
	if outBytes == len(out) {
		return 0, outBytes, false, nil
	}

	if len(in) > 0 {
		n, werr := f.w.Write(in)
		inBytes = n
		if werr != nil {
			return inBytes, outBytes, false, werr
		}
	}

	if !more && !f.closed {
		if cerr := f.w.Close(); cerr != nil {
			return inBytes, outBytes, false, cerr
		}
		f.closed = true
	}

	outBytes += f.drain(out[outBytes:])
	finished = f.closed && f.sink.buf.Size() == 0

	return inBytes, outBytes, finished, nil
}

func (f *baseFilter) drain(out []byte) int {
	a, b := f.sink.buf.Data()
	n := copy(out, a)
	n += copy(out[n:], b)
	f.sink.buf.Consume(n)

	return n
}

func (f *baseFilter) Reset() {
	f.sink.buf.Clear()
	f.closed = false
	f.w.Reset(f.sink)
}
