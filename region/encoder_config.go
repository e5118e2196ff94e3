package region

import (
	"fmt"
	"math"

	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/format"
	"github.com/linearfmt/linear/internal/options"
)

// DefaultCompressionLevel is the zstd level used when none is configured.
const DefaultCompressionLevel = 6

// EncoderConfig holds the Encoder settings.
type EncoderConfig struct {
	version     format.Version
	compression format.CompressionType
	level       int
	dataHash    bool
}

// NewEncoderConfig returns the default configuration: version 2, zstd at
// DefaultCompressionLevel, no data hash.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		version:     format.VersionV2,
		compression: format.CompressionZstd,
		level:       DefaultCompressionLevel,
	}
}

func (c *EncoderConfig) setCompressionLevel(level int) error {
	// the level is recorded in a single signed byte
	if level < math.MinInt8 || level > math.MaxInt8 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionLevel, level)
	}
	c.level = level

	return nil
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.compression = comp
		return nil
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, comp)
	}
}

func (c *EncoderConfig) setVersion(version format.Version) error {
	if !version.IsSupported() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, version)
	}
	c.version = version

	return nil
}

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompressionLevel sets the compression level, in [-128, 127].
// The level is recorded in the header for information only.
func WithCompressionLevel(level int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompressionLevel(level)
	})
}

// WithCompression sets the payload compression algorithm.
//
// Only format.CompressionZstd files are readable by other Linear implementations.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithVersion sets the format version written in the header.
func WithVersion(version format.Version) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setVersion(version)
	})
}

// WithDataHash stores the xxHash64 of the compressed payload in the reserved header
// field when enabled. Disabled files carry zero there.
func WithDataHash(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.dataHash = enabled
	})
}
