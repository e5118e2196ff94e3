//go:build cgo && gozstd

package compress

import (
	"bytes"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using the libzstd binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, c.level), nil
}

// Decompress decompresses zstd-compressed data using the libzstd binding.
//
// The streaming reader is used so the frame content size declared in the header
// never drives an allocation.
func (c ZstdCompressor) Decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readLimited("zstd", zr, effectiveLimit(limit))
}
