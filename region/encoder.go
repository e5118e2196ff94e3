package region

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/linearfmt/linear/compress"
	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/internal/hash"
	"github.com/linearfmt/linear/internal/options"
	"github.com/linearfmt/linear/internal/pool"
	"github.com/linearfmt/linear/section"
)

const (
	filePerm       = 0o644
	tempFileSuffix = ".*.wip"
)

var (
	// renameFile commits a finished temporary file.
	renameFile = os.Rename
	// syncDir makes a committed rename durable.
	syncDir = syncDirectory
)

// Encoder serializes regions into the Linear container format.
type Encoder struct {
	config *EncoderConfig
	codec  compress.Codec
}

// NewEncoder creates an Encoder.
//
// Returns:
//   - *Encoder: Encoder ready for use
//   - error: Option validation error
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(config.compression, config.level)
	if err != nil {
		return nil, err
	}

	return &Encoder{config: config, codec: codec}, nil
}

// Encode returns the complete file image of r: header, compressed payload and footer.
//
// Returns:
//   - []byte: Encoded file
//   - error: Region validation or compression error
func (e *Encoder) Encode(r *Region) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil region", errs.ErrInvalidRegion)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	raw := pool.GetRegionBuffer()
	defer pool.PutRegionBuffer(raw)

	chunkCount := appendPayload(raw, r)

	compressed, err := e.codec.Compress(raw.Bytes())
	if err != nil {
		return nil, err
	}

	if len(compressed) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompressedLength, len(compressed))
	}

	header := section.NewHeader(e.config.version, r.NewestTimestamp, int8(e.config.level))
	header.ChunkCount = int16(chunkCount)
	header.CompressedLength = int32(len(compressed))
	if e.config.dataHash {
		header.DataHash = hash.DataHash(compressed)
	}

	out := make([]byte, 0, section.HeaderSize+len(compressed)+section.FooterSize)
	out = header.AppendBytes(out)
	out = append(out, compressed...)
	out = section.AppendFooter(out)

	return out, nil
}

// WriteFile encodes r and atomically replaces dir/r.<x>.<z>.linear with it.
//
// The file is written to a temporary file in dir, synced, then renamed over the
// final name, and dir itself is synced. On any failure the temporary file is removed and an existing region
// file is left untouched.
//
// Returns:
//   - string: Path of the written file
//   - error: Encoding error or I/O error
func (e *Encoder) WriteFile(r *Region, dir string) (string, error) {
	data, err := e.Encode(r)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, r.FileName())
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	return path, nil
}

// appendPayload writes the slot table followed by every chunk payload in slot order,
// and returns the number of populated slots.
func appendPayload(buf *pool.ByteBuffer, r *Region) int {
	var table section.SlotTable
	total := 0
	for slot, c := range r.Chunks {
		if c == nil {
			continue
		}
		table[slot] = section.SlotEntry{Size: int32(len(c.Data)), Timestamp: r.Timestamps[slot]}
		total += len(c.Data)
	}

	buf.Grow(section.SlotTableSize + total)
	buf.B = table.AppendBytes(buf.B)

	chunkCount := 0
	for _, c := range r.Chunks {
		if c == nil {
			continue
		}
		_, _ = buf.Write(c.Data)
		chunkCount++
	}

	return chunkCount
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+tempFileSuffix)
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err = tmp.Chmod(filePerm); err != nil {
		return err
	}

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return err
	}

	closed = true
	if err = tmp.Close(); err != nil {
		return err
	}

	if err = renameFile(tmpPath, path); err != nil {
		return err
	}

	syncDir(filepath.Dir(path))

	return nil
}

// syncDirectory flushes the directory entries of dir. Failures are ignored since some
// platforms cannot open or sync a directory, and the rename has already happened.
func syncDirectory(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
