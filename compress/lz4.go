package compress

import (
	"bytes"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/linearfmt/linear/format"
)

var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// lz4Levels maps levels 1-9 onto the LZ4-HC levels.
var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Compressor writes LZ4 frames.
type LZ4Compressor struct {
	level lz4.CompressionLevel
}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Parameters:
//   - level: 1-9 for LZ4-HC levels, <= 0 for the fast mode; higher values are clamped to 9
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor(level int) LZ4Compressor {
	level = max(0, min(level, len(lz4Levels)-1))

	return LZ4Compressor{level: lz4Levels[level]}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into a single LZ4 frame.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed frame
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(lz4.CompressBlockBound(len(data)) + 32)

	zw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(zw)

	zw.Reset(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		return nil, compressionError("lz4", "compression", err)
	}

	if _, err := zw.Write(data); err != nil {
		return nil, compressionError("lz4", "compression", err)
	}

	if err := zw.Close(); err != nil {
		return nil, compressionError("lz4", "compression", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
//
// Parameters:
//   - data: Compressed frame
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error wrapping errs.ErrCompression
func (c LZ4Compressor) Decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer lz4ReaderPool.Put(zr)

	zr.Reset(bytes.NewReader(data))

	return readLimited("lz4", zr, effectiveLimit(limit))
}
