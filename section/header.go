package section

import (
	"fmt"

	"github.com/linearfmt/linear/endian"
	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/format"
)

var engine = endian.GetBigEndianEngine()

// Header represents the fixed-size superblock at the start of a Linear file.
type Header struct {
	// Signature must equal the Signature constant.
	Signature int64 // byte offset 0-7
	// Version is the format revision, 1 or 2.
	Version format.Version // byte offset 8
	// NewestTimestamp is the newest chunk modification time in the region.
	NewestTimestamp int64 // byte offset 9-16
	// CompressionLevel records the level the writer used. Readers ignore it,
	// the compressed stream describes itself.
	CompressionLevel int8 // byte offset 17
	// ChunkCount is the number of populated slots, max to 1024.
	ChunkCount int16 // byte offset 18-19
	// CompressedLength is the byte length of the compressed payload that follows the header.
	CompressedLength int32 // byte offset 20-23
	// DataHash is the xxHash64 of the compressed payload, or zero when not computed.
	DataHash uint64 // byte offset 24-31
}

// NewHeader creates a Header with the signature set.
// ChunkCount, CompressedLength and DataHash are filled in by the encoder.
func NewHeader(version format.Version, newestTimestamp int64, compressionLevel int8) *Header {
	return &Header{
		Signature:        Signature,
		Version:          version,
		NewestTimestamp:  newestTimestamp,
		CompressionLevel: compressionLevel,
	}
}

// Parse parses the header from a byte slice and validates the signature and version,
// in that order.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidSignature or ErrInvalidVersion
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Signature = int64(engine.Uint64(data[signatureOffset:versionOffset]))
	h.Version = format.Version(data[versionOffset])
	h.NewestTimestamp = int64(engine.Uint64(data[newestTimestampOffset:compressionLevelOffset]))
	h.CompressionLevel = int8(data[compressionLevelOffset])
	h.ChunkCount = int16(engine.Uint16(data[chunkCountOffset:compressedLengthOffset]))
	h.CompressedLength = int32(engine.Uint32(data[compressedLengthOffset:dataHashOffset]))
	h.DataHash = engine.Uint64(data[dataHashOffset:HeaderSize])

	return h.Validate()
}

// Validate checks the signature first, then the version.
func (h *Header) Validate() error {
	if h.Signature != Signature {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSignature, h.Signature)
	}

	if !h.Version.IsSupported() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, h.Version)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendBytes(make([]byte, 0, HeaderSize))
}

// AppendBytes appends the serialized Header to b.
func (h *Header) AppendBytes(b []byte) []byte {
	b = engine.AppendUint64(b, uint64(h.Signature))
	b = append(b, byte(h.Version))
	b = engine.AppendUint64(b, uint64(h.NewestTimestamp))
	b = append(b, byte(h.CompressionLevel))
	b = engine.AppendUint16(b, uint16(h.ChunkCount))
	b = engine.AppendUint32(b, uint32(h.CompressedLength))
	b = engine.AppendUint64(b, h.DataHash)

	return b
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrInvalidSignature or ErrInvalidVersion
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// AppendFooter appends the trailing signature to b.
func AppendFooter(b []byte) []byte {
	sig := Signature
	return engine.AppendUint64(b, uint64(sig))
}

// CheckFooter verifies that data holds exactly the trailing signature.
func CheckFooter(data []byte) error {
	if len(data) != FooterSize {
		return fmt.Errorf("%w: footer is %d bytes", errs.ErrInvalidFooterSignature, len(data))
	}

	if sig := int64(engine.Uint64(data)); sig != Signature {
		return fmt.Errorf("%w: %d", errs.ErrInvalidFooterSignature, sig)
	}

	return nil
}
