package format

type (
	CompressionType uint8
	Version         uint8
)

const (
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 stream compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.

	VersionV1 Version = 0x1 // VersionV1 is the first Linear revision.
	VersionV2 Version = 0x2 // VersionV2 is the current Linear revision.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsSupported reports whether the version can be read and written.
func (v Version) IsSupported() bool {
	return v == VersionV1 || v == VersionV2
}

func (v Version) String() string {
	switch v {
	case VersionV1:
		return "v1"
	case VersionV2:
		return "v2"
	default:
		return "Unknown"
	}
}
