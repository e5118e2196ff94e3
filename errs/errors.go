// Package errs defines the sentinel errors returned by the Linear codec.
//
// Errors are grouped under a few parent kinds so callers can match either the
// precise failure or its category with errors.Is:
//
//	region, err := linear.OpenRegion(path)
//	switch {
//	case errors.Is(err, errs.ErrInvalidFooterSignature):
//	    // truncated or partially copied file
//	case errors.Is(err, errs.ErrFormat):
//	    // any other structural corruption
//	case errors.Is(err, errs.ErrCompression):
//	    // payload could not be (de)compressed
//	}
//
// Operating system I/O failures are not wrapped; they surface as *fs.PathError.
package errs

import (
	"errors"
	"fmt"
)

// Parent kinds.
var (
	// ErrFormat is the parent of every structural validation failure.
	ErrFormat = errors.New("linear: invalid format")
	// ErrCompression is the parent of every compression codec failure.
	ErrCompression = errors.New("linear: compression failed")
	// ErrInvalidRegionPath is returned when region coordinates cannot be parsed from a file name.
	ErrInvalidRegionPath = errors.New("linear: invalid region file name")
	// ErrInvalidRegion is the parent of region model misuse detected before encoding.
	ErrInvalidRegion = errors.New("linear: invalid region")
)

// Format errors.
var (
	ErrInvalidSignature        = fmt.Errorf("%w: invalid signature", ErrFormat)
	ErrInvalidFooterSignature  = fmt.Errorf("%w: invalid footer signature", ErrFormat)
	ErrInvalidVersion          = fmt.Errorf("%w: invalid version", ErrFormat)
	ErrInvalidDecompressedSize = fmt.Errorf("%w: invalid decompressed size", ErrFormat)
	ErrInvalidChunkCount       = fmt.Errorf("%w: invalid chunk count", ErrFormat)
	ErrInvalidHeaderSize       = fmt.Errorf("%w: invalid header size", ErrFormat)
	ErrInvalidCompressedLength = fmt.Errorf("%w: invalid compressed length", ErrFormat)
	ErrInvalidDataHash         = fmt.Errorf("%w: data hash mismatch", ErrFormat)
	ErrTruncatedFile           = fmt.Errorf("%w: file too short", ErrFormat)
)

// Compression errors.
var (
	ErrUnknownCompression       = fmt.Errorf("%w: unknown compression stream", ErrCompression)
	ErrUnsupportedCompression   = fmt.Errorf("%w: unsupported compression type", ErrCompression)
	ErrInvalidCompressionLevel  = fmt.Errorf("%w: compression level out of range", ErrCompression)
	ErrDecompressedSizeExceeded = fmt.Errorf("%w: decompressed size over limit", ErrCompression)
)

// Region errors.
var (
	ErrInvalidSlotIndex = fmt.Errorf("%w: slot index out of range", ErrInvalidRegion)
	ErrEmptyChunk       = fmt.Errorf("%w: empty chunk payload", ErrInvalidRegion)
	ErrChunkTooLarge    = fmt.Errorf("%w: chunk payload too large", ErrInvalidRegion)
)
