package codec

import "github.com/klauspost/compress/flate"

type deflateCodec struct {
	level int
}

// NewDeflate returns the Codec for the "deflate" content-coding, wrapping
// github.com/klauspost/compress/flate the way the teacher's
// http/codec.NewDeflate wraps the same package's Writer.
func NewDeflate() Codec {
	return deflateCodec{level: flate.DefaultCompression}
}

// NewDeflateLevel is NewDeflate with an explicit compression level, for
// callers wiring config.Config.CompressionLevel through instead of
// taking the teacher's hardcoded flate.DefaultCompression.
func NewDeflateLevel(level int) Codec {
	return deflateCodec{level: level}
}

func (deflateCodec) Token() string {
	return "deflate"
}

func (c deflateCodec) New(scratch []byte) Filter {
	w, err := flate.NewWriter(nil, c.level)
	if err != nil {
		panic(err)
	}

	return newBaseFilter(w, scratch)
}
