// Package linear reads and writes Linear region files.
//
// A Linear file stores one 32×32 region of chunk payloads as a fixed 32-byte header,
// a single compressed block holding a 1024-entry slot table and all chunk data, and a
// trailing copy of the file signature.
//
// # Basic Usage
//
// Writing a region:
//
//	r := linear.NewRegion(0, -1)
//	_ = r.SetChunkAt(0, 0, chunkNBT, int32(time.Now().Unix()))
//
//	path, err := linear.WriteRegion(r, "world/region", 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reading it back:
//
//	r, err := linear.OpenRegion("world/region/r.0.-1.linear")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(r) // occupancy grid
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the region package.
// For encoder and decoder options (compression algorithm, data hash, format version)
// use the region package directly; the binary layout lives in the section package.
package linear

import (
	"github.com/linearfmt/linear/region"
)

// NewRegion creates an empty region at region coordinates (x, z).
func NewRegion(x, z int) *region.Region {
	return region.NewRegion(x, z)
}

// WriteRegion atomically writes r to dir/r.<x>.<z>.linear with zstd at the given level.
//
// Parameters:
//   - r: Region to write
//   - dir: Target directory, which must exist
//   - compressionLevel: zstd level, in [-128, 127]
//
// Returns:
//   - string: Path of the written file
//   - error: Configuration, encoding or I/O error
func WriteRegion(r *region.Region, dir string, compressionLevel int) (string, error) {
	encoder, err := region.NewEncoder(region.WithCompressionLevel(compressionLevel))
	if err != nil {
		return "", err
	}

	return encoder.WriteFile(r, dir)
}

// EncodeRegion returns the file image of r.
func EncodeRegion(r *region.Region, opts ...region.EncoderOption) ([]byte, error) {
	encoder, err := region.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(r)
}

// OpenRegion reads the region file at path, taking the region coordinates from its name.
func OpenRegion(path string, opts ...region.DecoderOption) (*region.Region, error) {
	decoder, err := region.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Open(path)
}

// DecodeRegion parses an in-memory file image of the region at (regionX, regionZ).
func DecodeRegion(data []byte, regionX, regionZ int, opts ...region.DecoderOption) (*region.Region, error) {
	decoder, err := region.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(data, regionX, regionZ)
}
