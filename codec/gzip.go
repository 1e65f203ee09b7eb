package codec

import "github.com/klauspost/compress/gzip"

type gzipCodec struct {
	level int
}

// NewGZIP returns the Codec for the "gzip" content-coding, wrapping
// github.com/klauspost/compress/gzip the way the teacher's
// http/codec.NewGZIP wraps the same package's Writer.
func NewGZIP() Codec {
	return gzipCodec{level: gzip.DefaultCompression}
}

// NewGZIPLevel is NewGZIP with an explicit compression level, for
// callers wiring config.Config.CompressionLevel through instead of
// taking the teacher's hardcoded gzip.DefaultCompression.
func NewGZIPLevel(level int) Codec {
	return gzipCodec{level: level}
}

func (gzipCodec) Token() string {
	return "gzip"
}

func (c gzipCodec) New(scratch []byte) Filter {
	w, err := gzip.NewWriterLevel(nil, c.level)
	if err != nil {
		panic(err)
	}

	return newBaseFilter(w, scratch)
}
