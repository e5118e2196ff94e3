package compress

import (
	"bytes"

	"github.com/klauspost/compress/s2"

	"github.com/linearfmt/linear/format"
)

// S2 level thresholds.
const (
	s2BetterLevel = 4
	s2BestLevel   = 10
)

// S2Compressor writes S2 streams.
type S2Compressor struct {
	level int
}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor(level int) S2Compressor {
	return S2Compressor{level: level}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

func (c S2Compressor) writerOptions() []s2.WriterOption {
	opts := []s2.WriterOption{s2.WriterConcurrency(1)}
	switch {
	case c.level >= s2BestLevel:
		opts = append(opts, s2.WriterBestCompression())
	case c.level >= s2BetterLevel:
		opts = append(opts, s2.WriterBetterCompression())
	}

	return opts
}

// Compress compresses the input data into an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := s2.NewWriter(&buf, c.writerOptions()...)
	if _, err := w.Write(data); err != nil {
		return nil, compressionError("s2", "compression", err)
	}

	if err := w.Close(); err != nil {
		return nil, compressionError("s2", "compression", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 stream.
func (c S2Compressor) Decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readLimited("s2", s2.NewReader(bytes.NewReader(data)), effectiveLimit(limit))
}
