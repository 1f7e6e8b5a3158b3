package nativefunc

// Option configures how Bind opens and decodes a Native file.
type Option func(*bindConfig)

type bindConfig struct {
	fallbackToString bool
	compressedBlocks bool
}

// WithFallbackToString makes unrecognized column types decode as plain
// String instead of failing the bind. Off by default: unsupported types
// surface as errors rather than being silently coerced.
func WithFallbackToString(enabled bool) Option {
	return func(c *bindConfig) {
		c.fallbackToString = enabled
	}
}

// WithCompressedBlocks treats the file as carrying per-block compression
// frames (checksum, method, sizes) and decompresses each frame before
// block decoding. Off by default; plain Native files have no framing.
func WithCompressedBlocks(enabled bool) Option {
	return func(c *bindConfig) {
		c.compressedBlocks = enabled
	}
}
