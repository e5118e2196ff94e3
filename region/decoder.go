package region

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linearfmt/linear/compress"
	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/internal/hash"
	"github.com/linearfmt/linear/internal/options"
	"github.com/linearfmt/linear/section"
)

// DefaultMaxDecompressedSize bounds the decompressed payload, slot table included,
// unless WithMaxDecompressedSize says otherwise.
const DefaultMaxDecompressedSize = compress.DefaultDecompressLimit

// DecoderConfig holds the Decoder settings.
type DecoderConfig struct {
	verifyHash        bool
	maxDecompressSize int
}

// DecoderOption represents a functional option for configuring the DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// WithHashVerification checks a nonzero header data hash against the compressed
// payload. Files with a zero data hash are accepted either way.
func WithHashVerification(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyHash = enabled
	})
}

// WithMaxDecompressedSize limits the decompressed payload, slot table included, to n
// bytes. Payloads that inflate past it fail with errs.ErrDecompressedSizeExceeded
// without being materialized.
func WithMaxDecompressedSize(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n < section.SlotTableSize {
			return fmt.Errorf("%w: limit %d is below the %d byte slot table",
				errs.ErrInvalidDecompressedSize, n, section.SlotTableSize)
		}
		c.maxDecompressSize = n

		return nil
	})
}

// Decoder parses and validates Linear files.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	config := &DecoderConfig{maxDecompressSize: DefaultMaxDecompressedSize}
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Decoder{config: config}, nil
}

// Open reads the region file at path. The region coordinates come from the file name.
//
// Returns:
//   - *Region: Decoded region
//   - error: ErrInvalidRegionPath, an *fs.PathError, or a format/compression error
func (d *Decoder) Open(path string) (*Region, error) {
	regionX, regionZ, err := ParseFileName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return d.decode(f, info.Size(), regionX, regionZ)
}

// Decode parses an in-memory file image of the region at (regionX, regionZ).
func (d *Decoder) Decode(data []byte, regionX, regionZ int) (*Region, error) {
	return d.decode(bytes.NewReader(data), int64(len(data)), regionX, regionZ)
}

// ReadHeader reads and validates only the header of the region file at path.
func ReadHeader(path string) (section.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return section.Header{}, err
	}
	defer f.Close()

	buf := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return section.Header{}, fmt.Errorf("%w: %s", errs.ErrTruncatedFile, path)
		}

		return section.Header{}, err
	}

	return section.ParseHeader(buf)
}

// decode validates the header, then the footer, then reads the payload.
func (d *Decoder) decode(src io.ReaderAt, size int64, regionX, regionZ int) (*Region, error) {
	if size < section.MinFileSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedFile, size)
	}

	buf := make([]byte, section.HeaderSize)
	if _, err := src.ReadAt(buf, 0); err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	footer := make([]byte, section.FooterSize)
	if _, err := src.ReadAt(footer, size-section.FooterSize); err != nil {
		return nil, err
	}

	if err := section.CheckFooter(footer); err != nil {
		return nil, err
	}

	if header.CompressedLength < 0 || int64(header.CompressedLength) > size-section.MinFileSize {
		return nil, fmt.Errorf("%w: %d in a %d byte file", errs.ErrInvalidCompressedLength, header.CompressedLength, size)
	}

	payload := make([]byte, header.CompressedLength)
	if _, err := src.ReadAt(payload, section.HeaderSize); err != nil {
		return nil, err
	}

	return d.decodePayload(&header, payload, regionX, regionZ)
}

func (d *Decoder) decodePayload(header *section.Header, payload []byte, regionX, regionZ int) (*Region, error) {
	if d.config.verifyHash && header.DataHash != 0 {
		if sum := hash.DataHash(payload); sum != header.DataHash {
			return nil, fmt.Errorf("%w: header %#x, payload %#x", errs.ErrInvalidDataHash, header.DataHash, sum)
		}
	}

	data, err := compress.Decompress(payload, d.config.maxDecompressSize)
	if err != nil {
		return nil, err
	}

	var table section.SlotTable
	if err := table.Parse(data); err != nil {
		return nil, err
	}

	totalSize, chunkCount, err := table.Summary()
	if err != nil {
		return nil, err
	}

	if totalSize+section.SlotTableSize != int64(len(data)) {
		return nil, fmt.Errorf("%w: slots describe %d bytes, payload holds %d",
			errs.ErrInvalidDecompressedSize, totalSize+section.SlotTableSize, len(data))
	}

	if chunkCount != int(header.ChunkCount) {
		return nil, fmt.Errorf("%w: header declares %d, slot table holds %d",
			errs.ErrInvalidChunkCount, header.ChunkCount, chunkCount)
	}

	r := NewRegion(regionX, regionZ)
	r.NewestTimestamp = header.NewestTimestamp

	offset := section.SlotTableSize
	for slot, entry := range table {
		r.Timestamps[slot] = entry.Timestamp
		if !entry.IsPopulated() {
			continue
		}

		end := offset + int(entry.Size)
		x, z := r.ChunkCoordinates(slot)
		r.Chunks[slot] = &Chunk{Data: data[offset:end:end], X: x, Z: z}
		offset = end
	}

	return r, nil
}
