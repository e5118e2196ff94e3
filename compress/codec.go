package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/format"
)

// Compressor compresses a complete region payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller. The input slice
	// is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete region payload in one pass.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Output larger than limit bytes fails with errs.ErrDecompressedSizeExceeded
	// before it is fully materialized. A non-positive limit selects
	// DefaultDecompressLimit.
	//
	// Returns an error wrapping errs.ErrCompression if the data is corrupted or was
	// written by a different algorithm.
	Decompress(data []byte, limit int) ([]byte, error)
}

// DefaultDecompressLimit bounds decompressed output when no explicit limit is given.
const DefaultDecompressLimit = 256 << 20

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the algorithm implemented by the codec.
	Type() format.CompressionType
}

// stream magic numbers, as they appear at the start of the compressed data
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic   = []byte("\xff\x06\x00\x00S2sTwO")
)

// CreateCodec is a factory function that creates a Codec for the given compression type
// and level.
//
// Parameters:
//   - compressionType: Type of compression (Zstd, S2, or LZ4)
//   - level: Algorithm specific compression level
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionZstd:
		return NewZstdCompressor(level), nil
	case format.CompressionS2:
		return NewS2Compressor(level), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(level), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

// Detect identifies the algorithm of a compressed stream from its magic number.
//
// Returns:
//   - format.CompressionType: Detected algorithm
//   - error: ErrUnknownCompression if no known magic number matches
func Detect(data []byte) (format.CompressionType, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd, nil
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4, nil
	case bytes.HasPrefix(data, s2Magic):
		return format.CompressionS2, nil
	default:
		return 0, errs.ErrUnknownCompression
	}
}

// Decompress detects the algorithm of data and decompresses at most limit bytes.
func Decompress(data []byte, limit int) ([]byte, error) {
	compressionType, err := Detect(data)
	if err != nil {
		return nil, err
	}

	// level is irrelevant for decompression
	codec, err := CreateCodec(compressionType, 0)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data, limit)
}

func compressionError(algo string, op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", errs.ErrCompression, algo, op, err)
}

func sizeExceededError(algo string, limit int) error {
	return fmt.Errorf("%w: %s output over %d bytes", errs.ErrDecompressedSizeExceeded, algo, limit)
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultDecompressLimit
	}

	return limit
}

// readLimited drains a decompressing reader, failing once more than limit bytes appear.
func readLimited(algo string, r io.Reader, limit int) ([]byte, error) {
	decompressed, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, compressionError(algo, "decompression", err)
	}

	if len(decompressed) > limit {
		return nil, sizeExceededError(algo, limit)
	}

	return decompressed, nil
}
