package serializer

import (
	"github.com/indigo-web/wire/internal/chunk"
	"github.com/indigo-web/wire/internal/ring"
	"github.com/indigo-web/wire/message"
)

// StartSource begins a message whose body is pulled on demand from src
// (spec §4.E start_source).
func (s *Serializer) StartSource(m message.View, src Source) error {
	if err := s.startPull(m, styleSource); err != nil {
		return err
	}

	s.src = src

	return nil
}

// StartStream begins a message whose body is pushed by the caller
// through the returned Stream handle (spec §4.E start_stream).
func (s *Serializer) StartStream(m message.View) (*Stream, error) {
	if err := s.startPull(m, styleStream); err != nil {
		return nil, err
	}

	return &Stream{s: s}, nil
}

func (s *Serializer) startPull(m message.View, style bodyStyle) error {
	s.Reset()
	s.captureMeta(m)
	s.style = style

	if s.compressed {
		if err := s.setupFilter(len(s.ws.Tail())); err != nil {
			return err
		}

		half := len(s.ws.Tail()) / 2
		in, err := s.ws.ReserveFront(half)
		if err != nil {
			return err
		}

		s.tmp1 = ring.New(in)
		s.tmp0 = ring.New(s.ws.Tail())
	} else {
		s.tmp0 = ring.New(s.ws.Tail())
	}

	minCap := 0
	if s.chunked {
		minCap = chunk.Overhead + 1
		if s.compressed {
			minCap = chunk.Overhead + 6 + 1
		}
	}

	if s.tmp0.Capacity() < minCap {
		return ErrWorkspaceTooSmall
	}

	s.more = true

	return nil
}

// capChunk trims b down to s.chunkSize, the per-pull read ceiling
// config.Config.ChunkSize drives, so one src.Read call never frames
// more plaintext into a single chunk than configured.
func (s *Serializer) capChunk(b []byte) []byte {
	if s.chunkSize > 0 && len(b) > s.chunkSize {
		return b[:s.chunkSize]
	}

	return b
}

// pullSourceIntoTmp1 performs the one src.Read-per-Prepare-call step
// §4.E.1 describes for the compressed source style, ahead of running
// the shared compression loop over whatever lands in tmp1.
func (s *Serializer) pullSourceIntoTmp1() error {
	dst := s.capChunk(s.tmp1.PrepareContiguous(s.tmp1.Free()))
	if len(dst) == 0 {
		return nil
	}

	n, finished, err := s.src.Read(dst)
	if err != nil {
		return err
	}

	s.tmp1.Commit(n)
	s.more = !finished

	return nil
}

// fillSourcePlain implements §4.E.2's uncompressed source dispatch.
func (s *Serializer) fillSourcePlain() error {
	tmp0 := s.tmp0

	if !s.more {
		return nil
	}

	if !s.chunked {
		dst := s.capChunk(tmp0.PrepareContiguous(tmp0.Free()))
		if len(dst) == 0 {
			return nil
		}

		n, finished, err := s.src.Read(dst)
		if err != nil {
			return err
		}

		tmp0.Commit(n)
		s.more = !finished

		return nil
	}

	if tmp0.Free() < chunk.Overhead+1 {
		return nil
	}

	hdrA, hdrB := reserveChunkHeader(tmp0)

	bodyDst := s.capChunk(tmp0.PrepareContiguous(tmp0.Free() - chunk.CRLFLen - chunk.LastLen))
	if len(bodyDst) == 0 {
		tmp0.Uncommit(chunk.HeaderLen)
		return nil
	}

	n, finished, err := s.src.Read(bodyDst)
	if err != nil {
		return err
	}

	if n == 0 {
		tmp0.Uncommit(chunk.HeaderLen)

		if finished {
			var last [chunk.LastLen]byte
			chunk.WriteLast(last[:])
			writeFramed(tmp0, last[:])
			s.more = false
		}

		return nil
	}

	tmp0.Commit(n)
	patchChunkHeader(hdrA, hdrB, uint64(n))

	var crlf [chunk.CRLFLen]byte
	chunk.WriteClose(crlf[:])
	writeFramed(tmp0, crlf[:])

	if finished {
		var last [chunk.LastLen]byte
		chunk.WriteLast(last[:])
		writeFramed(tmp0, last[:])
		s.more = false
	}

	return nil
}
