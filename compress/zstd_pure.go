//go:build !cgo || !gozstd

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPools holds one decoder pool per output limit, keyed by the limit.
// klauspost/compress/zstd decoders operate without allocations after warmup.
var zstdDecoderPools sync.Map

func zstdDecoderPool(limit int) *sync.Pool {
	if p, ok := zstdDecoderPools.Load(limit); ok {
		return p.(*sync.Pool)
	}

	p, _ := zstdDecoderPools.LoadOrStore(limit, &sync.Pool{
		New: func() any {
			// the frame content size is checked against the limit before DecodeAll allocates
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderLowmem(false),
				zstd.WithDecoderMaxMemory(uint64(limit)),
			)
			if err != nil {
				// This should never happen with valid options
				panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
			}

			return decoder
		},
	})

	return p.(*sync.Pool)
}

// zstdEncoderPools holds one encoder pool per speed tier, keyed by zstd.EncoderLevel.
var zstdEncoderPools sync.Map

func zstdEncoderPool(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := zstdEncoderPools.Load(level); ok {
		return p.(*sync.Pool)
	}

	p, _ := zstdEncoderPools.LoadOrStore(level, &sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}

			return encoder
		},
	})

	return p.(*sync.Pool)
}

// Compress compresses the input data into a single zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	pool := zstdEncoderPool(zstd.EncoderLevelFromZstd(c.level))
	encoder, _ := pool.Get().(*zstd.Encoder)
	defer pool.Put(encoder)

	// EncodeAll is stateless - safe to use with pooled encoder
	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit = effectiveLimit(limit)
	pool := zstdDecoderPool(limit)
	decoder, _ := pool.Get().(*zstd.Decoder)
	defer pool.Put(decoder)

	// the decoder stays reusable even if this call fails
	decompressed, err := decoder.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, sizeExceededError("zstd", limit)
	}
	if err != nil {
		return nil, compressionError("zstd", "decompression", err)
	}

	return decompressed, nil
}
