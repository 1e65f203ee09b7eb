// Package config holds the tunable sizing knobs a Serializer is
// constructed with, adapted from the teacher's settings.Setting[T]
// (Default/Maximal pair) and config.Config zero-value-means-unset
// merge convention, narrowed to what a zero-copy wire serializer needs
// instead of a whole HTTP server's worth of limits.
package config

// Setting is a soft/hard limit pair, continuing the teacher's
// settings.Setting[T] generic (there named per-field: HeadersNumber,
// HeadersKeyLength, ...). Default sizes an initial allocation; Maximal
// bounds how far it may grow — this module never grows the workspace
// after construction, so Maximal here instead bounds what Fill will
// accept: a custom Default above the merged Maximal is dropped in
// favour of the built-in Default.
type Setting struct {
	Default, Maximal int
}

// Config holds every sizing knob a Serializer's construction-time
// New(capacity, registry) call and its internal chunk/compression
// scratch carving need.
type Config struct {
	// Workspace is the Serializer's total scratch arena size.
	Workspace Setting
	// ChunkSize bounds how much plaintext a single source-style pull
	// step reads, plain, chunked or compressed.
	ChunkSize Setting
	// CompressionLevel is the level NewFromConfig builds its codec
	// registry with (codec.NewRegistryWithLevel) when the caller passes
	// no registry — the teacher's http/codec stack hardcodes
	// flate.DefaultCompression; this exposes the same knob instead.
	CompressionLevel int
}

// Default returns a well-balanced Config. Maximal bounds are
// permissive, matching the teacher's own "well-balanced but tolerant"
// defaults for config.Default.
func Default() *Config {
	return &Config{
		Workspace: Setting{
			Default: 16 * 1024,
			Maximal: 256 * 1024,
		},
		ChunkSize: Setting{
			Default: 4 * 1024,
			Maximal: 64 * 1024,
		},
		CompressionLevel: -1, // flate.DefaultCompression
	}
}

// Fill merges custom into Default, field by field, treating a zero
// value in custom as "unset" — the teacher's customOrDefault
// convention (see config.Config/settings.Prepare), generalized to a
// single merge function instead of one per settings struct.
func Fill(custom Config) Config {
	base := *Default()

	base.Workspace = fillSetting(custom.Workspace, base.Workspace)
	base.ChunkSize = fillSetting(custom.ChunkSize, base.ChunkSize)

	if custom.CompressionLevel != 0 {
		base.CompressionLevel = custom.CompressionLevel
	}

	return base
}

func fillSetting(custom, def Setting) Setting {
	if custom.Maximal != 0 {
		def.Maximal = custom.Maximal
	}
	if custom.Default != 0 && custom.Default <= def.Maximal {
		def.Default = custom.Default
	}

	return def
}
