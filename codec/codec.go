// Package codec adapts github.com/klauspost/compress's streaming
// deflate/gzip writers to the serializer's bounded, allocation-free
// one-range-in/one-range-out contract, and provides the small
// token-keyed registry the serializer draws private Filter instances
// from. Continues the shape of the teacher's http/codec package
// (Codec/Instance split, baseCodec/baseInstance adapter) narrowed to
// what compression-as-a-body-filter needs.
package codec

import (
	"strings"

	"github.com/indigo-web/utils/ft"
	"github.com/indigo-web/utils/strcomp"
)

// Filter compresses a body in bounded steps. Each call consumes a prefix
// of in (inBytes, possibly less than len(in) or even 0 if out has no
// room to flush previously buffered output) and produces a prefix of
// out (outBytes). more is false on the final call for this body — once
// passed, the Filter flushes its internal state; finished is true once
// every byte the compressor will ever emit has been written to some
// out in a past or the current call.
type Filter interface {
	OnProcess(out, in []byte, more bool) (inBytes, outBytes int, finished bool, err error)
	// Reset discards any internal state so the Filter can be reused for
	// a new body without reallocating.
	Reset()
}

// Codec names a content-coding and builds private Filter instances for
// it. Mirrors the teacher's http/codec.Codec (Token/New).
type Codec interface {
	Token() string
	New(scratch []byte) Filter
}

// Registry is a small slice-backed lookup from content-coding token to
// Codec, directly adapted from the teacher's internal/codecutil.Cache.
// Unlike the teacher's Cache, it holds no per-connection Instance state —
// every Filter the serializer uses is private to one Serializer, drawn
// fresh from the Codec on each compressed Start* call — so Registry itself
// is safe to share read-only across every Serializer in the process.
type Registry struct {
	codecs []Codec
}

// NewRegistry builds a Registry pre-populated with Deflate and GZIP,
// matching the two codecs spec.md §4.D names.
func NewRegistry() *Registry {
	return &Registry{codecs: []Codec{NewDeflate(), NewGZIP()}}
}

// NewRegistryWithLevel is NewRegistry with both codecs' compression
// level set from a config.Config.CompressionLevel instead of the
// library defaults.
func NewRegistryWithLevel(level int) *Registry {
	return &Registry{codecs: []Codec{NewDeflateLevel(level), NewGZIPLevel(level)}}
}

// Register adds an additional Codec, overriding any existing entry for
// the same token.
func (r *Registry) Register(c Codec) {
	for i, existing := range r.codecs {
		if existing.Token() == c.Token() {
			r.codecs[i] = c
			return
		}
	}

	r.codecs = append(r.codecs, c)
}

// Get returns the Codec registered for token, and whether it was found.
func (r *Registry) Get(token string) (Codec, bool) {
	for _, c := range r.codecs {
		if strcomp.EqualFold(c.Token(), token) {
			return c, true
		}
	}

	return nil, false
}

func tokenOf(c Codec) string { return c.Token() }

// AcceptEncoding renders the comma-joined list of every registered
// token, mirroring internal/codecutil.Cache.AcceptEncoding for callers
// assembling an outbound Accept-Encoding header. Uses the teacher's
// ft.Map elementwise-transform helper the way internal/render.engine
// does for its own slice-of-strings assembly.
func (r *Registry) AcceptEncoding() string {
	return strings.Join(ft.Map(tokenOf, r.codecs), ", ")
}
