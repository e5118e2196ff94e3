package compress

import "github.com/linearfmt/linear/format"

// ZstdCompressor provides Zstandard frame compression, the reference Linear payload format.
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor using the given zstd level.
//
// Example:
//
//	compressor := NewZstdCompressor(6)
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor(level int) ZstdCompressor {
	return ZstdCompressor{level: level}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
