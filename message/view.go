// Package message defines the narrow contract the serializer consumes
// from the (out of scope) header parser / response builder: a flat,
// already-rendered header byte image plus the handful of metadata bits
// that drive the serializer's framing decisions.
package message

// Coding identifies a content-encoding the serializer applies to the body
// before any chunked framing. Mirrors the token style of the teacher's
// http/coding.Token / http/codec.Codec.Token.
type Coding string

// Identity is deliberately the zero value of Coding, so a Metadata left
// unset by a caller that never negotiates compression defaults to no
// encoding rather than an arbitrary one.
const (
	Identity Coding = ""
	Deflate  Coding = "deflate"
	Gzip     Coding = "gzip"
)

// Metadata carries the three bits the serializer needs: whether the peer
// expects a 100-Continue interim response before the body, whether the
// body is chunk-framed, and which content-coding (if any) wraps it.
type Metadata struct {
	ExpectContinue bool
	Chunked        bool
	Encoding       Coding
}

// View is the flat, already-serialized byte image of a request or
// response's start-line and header fields — terminated by the final
// CRLFCRLF — plus the Metadata the serializer dispatches on. Building
// this image (header parsing/rendering, URL grammar, content negotiation)
// is out of scope for this module; View is the seam a real header
// builder implements. The caller guarantees HeaderImage's backing array
// stays valid for the duration of serialization.
type View interface {
	HeaderImage() []byte
	Metadata() Metadata
}
