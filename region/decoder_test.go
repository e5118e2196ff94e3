package region

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linearfmt/linear/compress"
	"github.com/linearfmt/linear/endian"
	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/format"
	"github.com/linearfmt/linear/internal/hash"
	"github.com/linearfmt/linear/section"
)

// buildFile assembles a file image around an arbitrary payload, bypassing the encoder.
func buildFile(t *testing.T, raw []byte, chunkCount int16, compressed bool) []byte {
	t.Helper()

	payload := raw
	if compressed {
		var err error
		payload, err = compress.NewZstdCompressor(3).Compress(raw)
		require.NoError(t, err)
	}

	header := section.NewHeader(format.VersionV2, 0, 3)
	header.ChunkCount = chunkCount
	header.CompressedLength = int32(len(payload))

	data := header.AppendBytes(nil)
	data = append(data, payload...)

	return section.AppendFooter(data)
}

func encodeRegion(t *testing.T, r *Region, opts ...EncoderOption) []byte {
	t.Helper()

	encoder, err := NewEncoder(opts...)
	require.NoError(t, err)
	data, err := encoder.Encode(r)
	require.NoError(t, err)

	return data
}

func newDecoder(t *testing.T, opts ...DecoderOption) *Decoder {
	t.Helper()

	decoder, err := NewDecoder(opts...)
	require.NoError(t, err)

	return decoder
}

func TestDecoder_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	decoder := newDecoder(t)

	for _, count := range []int{0, 1, 2, 100, 777, SlotCount} {
		t.Run(fmt.Sprintf("%d_chunks", count), func(t *testing.T) {
			original := randomRegion(t, rng, rng.Intn(200)-100, rng.Intn(200)-100, count)

			decoded, err := decoder.Decode(encodeRegion(t, original), original.X, original.Z)
			require.NoError(t, err)
			require.Equal(t, original, decoded)
			require.Equal(t, count, decoded.CountPopulated())
		})
	}
}

func TestDecoder_RoundTrip_Options(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	original := randomRegion(t, rng, 2, -3, 64)
	decoder := newDecoder(t, WithHashVerification(true))

	tests := []struct {
		name string
		opts []EncoderOption
	}{
		{"zstd fastest", []EncoderOption{WithCompressionLevel(1)}},
		{"zstd best", []EncoderOption{WithCompressionLevel(19)}},
		{"version 1", []EncoderOption{WithVersion(format.VersionV1)}},
		{"s2", []EncoderOption{WithCompression(format.CompressionS2)}},
		{"lz4", []EncoderOption{WithCompression(format.CompressionLZ4), WithCompressionLevel(9)}},
		{"data hash", []EncoderOption{WithDataHash(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := decoder.Decode(encodeRegion(t, original, tt.opts...), 2, -3)
			require.NoError(t, err)
			require.Equal(t, original, decoded)
		})
	}
}

func TestDecoder_EmptyRegion(t *testing.T) {
	original := NewRegion(0, 0)
	data := encodeRegion(t, original)

	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, int16(0), header.ChunkCount)

	raw, err := compress.Decompress(data[section.HeaderSize : section.HeaderSize+int(header.CompressedLength)], 0)
	require.NoError(t, err)
	require.Len(t, raw, section.SlotTableSize)

	decoded, err := newDecoder(t).Decode(data, 0, 0)
	require.NoError(t, err)
	require.Zero(t, decoded.CountPopulated())
	require.Equal(t, original, decoded)
}

func TestDecoder_ChunkCoordinates(t *testing.T) {
	r := NewRegion(5, -6)
	require.NoError(t, r.SetChunk(0, []byte("zero"), 1))
	require.NoError(t, r.SetChunk(33, []byte("thirty-three"), 2))

	decoded, err := newDecoder(t).Decode(encodeRegion(t, r), 5, -6)
	require.NoError(t, err)

	require.Equal(t, 160, decoded.Chunk(0).X)
	require.Equal(t, -192, decoded.Chunk(0).Z)
	require.Equal(t, 161, decoded.Chunk(33).X)
	require.Equal(t, -191, decoded.Chunk(33).Z)
	require.Equal(t, "thirty-three", string(decoded.Chunk(33).Data))
}

func TestDecoder_CoordinatesFromCaller(t *testing.T) {
	r := NewRegion(0, 0)
	require.NoError(t, r.SetChunk(1, []byte{1}, 1))

	// the file does not carry its coordinates; the caller's win
	decoded, err := newDecoder(t).Decode(encodeRegion(t, r), 1, 2)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.X)
	require.Equal(t, 2, decoded.Z)
	require.Equal(t, 33, decoded.Chunk(1).X)
	require.Equal(t, 64, decoded.Chunk(1).Z)
}

func TestDecoder_ChunksDoNotOverlap(t *testing.T) {
	r := NewRegion(0, 0)
	require.NoError(t, r.SetChunk(0, []byte{1, 2}, 1))
	require.NoError(t, r.SetChunk(1, []byte{3, 4}, 1))

	decoded, err := newDecoder(t).Decode(encodeRegion(t, r), 0, 0)
	require.NoError(t, err)

	first := decoded.Chunk(0).Data
	require.Equal(t, len(first), cap(first))
	_ = append(first, 0xFF)
	require.Equal(t, []byte{3, 4}, decoded.Chunk(1).Data)
}

func TestDecoder_CorruptedSignature(t *testing.T) {
	r := randomRegion(t, rand.New(rand.NewSource(1)), 0, 0, 5)
	valid := encodeRegion(t, r)
	decoder := newDecoder(t)

	for i := range 8 {
		t.Run(fmt.Sprintf("header byte %d", i), func(t *testing.T) {
			data := append([]byte(nil), valid...)
			data[i] ^= 0x01

			decoded, err := decoder.Decode(data, 0, 0)
			require.ErrorIs(t, err, errs.ErrInvalidSignature)
			require.Nil(t, decoded)
		})

		t.Run(fmt.Sprintf("footer byte %d", i), func(t *testing.T) {
			data := append([]byte(nil), valid...)
			data[len(data)-section.FooterSize+i] ^= 0x80

			decoded, err := decoder.Decode(data, 0, 0)
			require.ErrorIs(t, err, errs.ErrInvalidFooterSignature)
			require.Nil(t, decoded)
		})
	}
}

func TestDecoder_InvalidVersion(t *testing.T) {
	valid := encodeRegion(t, NewRegion(0, 0))
	decoder := newDecoder(t)

	for _, version := range []byte{0, 3, 0x80, 0xFF} {
		data := append([]byte(nil), valid...)
		data[8] = version

		_, err := decoder.Decode(data, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidVersion, "version %d", version)
	}
}

func TestDecoder_FooterCheckedBeforePayload(t *testing.T) {
	data := encodeRegion(t, NewRegion(0, 0))
	// break the payload and the footer; the footer must be reported
	data[section.HeaderSize] ^= 0xFF
	data[len(data)-1] ^= 0xFF

	_, err := newDecoder(t).Decode(data, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidFooterSignature)
}

func TestDecoder_ChunkCountMismatch(t *testing.T) {
	r := NewRegion(0, 0)
	require.NoError(t, r.SetChunk(3, []byte("abc"), 1))
	require.NoError(t, r.SetChunk(4, []byte("def"), 1))
	data := encodeRegion(t, r)
	decoder := newDecoder(t)

	for _, declared := range []uint16{0, 1, 3, 1024, 0xFFFF} {
		corrupted := append([]byte(nil), data...)
		endian.GetBigEndianEngine().PutUint16(corrupted[18:20], declared)

		_, err := decoder.Decode(corrupted, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidChunkCount, "declared %d", declared)
	}
}

func TestDecoder_DecompressedSizeMismatch(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	decoder := newDecoder(t)

	t.Run("Missing chunk bytes", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize, section.SlotTableSize+5)
		engine.PutUint32(raw[0:4], 10)
		raw = append(raw, 1, 2, 3, 4, 5)

		_, err := decoder.Decode(buildFile(t, raw, 1, true), 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})

	t.Run("Trailing bytes", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize+3)

		_, err := decoder.Decode(buildFile(t, raw, 0, true), 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})

	t.Run("Short slot table", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize-8)

		_, err := decoder.Decode(buildFile(t, raw, 0, true), 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})

	t.Run("Negative slot size", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize)
		engine.PutUint32(raw[8:12], 0xFFFFFFFF)

		_, err := decoder.Decode(buildFile(t, raw, 1, true), 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})

	t.Run("Size checked before chunk count", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize+1)

		_, err := decoder.Decode(buildFile(t, raw, 7, true), 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})
}

func TestDecoder_Truncated(t *testing.T) {
	data := encodeRegion(t, randomRegion(t, rand.New(rand.NewSource(2)), 0, 0, 3))
	decoder := newDecoder(t)

	t.Run("Shorter than header and footer", func(t *testing.T) {
		for _, n := range []int{0, 8, section.MinFileSize - 1} {
			_, err := decoder.Decode(data[:n], 0, 0)
			require.ErrorIs(t, err, errs.ErrTruncatedFile)
		}
	})

	t.Run("Payload cut", func(t *testing.T) {
		cut := append([]byte(nil), data[:len(data)-section.FooterSize-10]...)
		cut = section.AppendFooter(cut)

		_, err := decoder.Decode(cut, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidCompressedLength)
	})

	t.Run("Negative compressed length", func(t *testing.T) {
		corrupted := append([]byte(nil), data...)
		endian.GetBigEndianEngine().PutUint32(corrupted[20:24], 0x80000000)

		_, err := decoder.Decode(corrupted, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidCompressedLength)
	})
}

func TestDecoder_CompressionErrors(t *testing.T) {
	decoder := newDecoder(t)

	t.Run("Uncompressed payload", func(t *testing.T) {
		raw := make([]byte, section.SlotTableSize)

		_, err := decoder.Decode(buildFile(t, raw, 0, false), 0, 0)
		require.ErrorIs(t, err, errs.ErrUnknownCompression)
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	t.Run("Corrupted zstd frame", func(t *testing.T) {
		data := encodeRegion(t, randomRegion(t, rand.New(rand.NewSource(8)), 0, 0, 4))
		header, err := section.ParseHeader(data)
		require.NoError(t, err)

		// cut the frame short but keep the declared length consistent
		payload := data[section.HeaderSize : section.HeaderSize+int(header.CompressedLength)/2]
		header.CompressedLength = int32(len(payload))
		corrupted := section.AppendFooter(append(header.AppendBytes(nil), payload...))

		_, err = decoder.Decode(corrupted, 0, 0)
		require.ErrorIs(t, err, errs.ErrCompression)
	})
}

func TestDecoder_DecompressedSizeLimit(t *testing.T) {
	t.Run("Declared zstd content size", func(t *testing.T) {
		// a 57 byte file whose frame header claims 48 GiB of content
		frame := []byte{0x28, 0xB5, 0x2F, 0xFD, 0xC0, 0x00}
		frame = binary.LittleEndian.AppendUint64(frame, 48<<30)
		frame = append(frame, 0x01, 0x00, 0x00)
		data := buildFile(t, frame, 0, false)
		require.Len(t, data, 57)

		_, err := newDecoder(t).Decode(data, 0, 0)
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	r := NewRegion(0, 0)
	for slot := range 4 {
		require.NoError(t, r.SetChunk(slot, make([]byte, 4096), 1))
	}
	limited := newDecoder(t, WithMaxDecompressedSize(section.SlotTableSize+1024))
	exact := newDecoder(t, WithMaxDecompressedSize(section.SlotTableSize+4*4096))

	for _, comp := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(comp.String(), func(t *testing.T) {
			data := encodeRegion(t, r, WithCompression(comp))

			_, err := limited.Decode(data, 0, 0)
			require.ErrorIs(t, err, errs.ErrDecompressedSizeExceeded)

			decoded, err := exact.Decode(data, 0, 0)
			require.NoError(t, err)
			require.Equal(t, r, decoded)
		})
	}

	t.Run("Limit below slot table", func(t *testing.T) {
		_, err := NewDecoder(WithMaxDecompressedSize(section.SlotTableSize - 1))
		require.ErrorIs(t, err, errs.ErrInvalidDecompressedSize)
	})
}

func TestDecoder_HashVerification(t *testing.T) {
	r := randomRegion(t, rand.New(rand.NewSource(9)), 0, 0, 8)
	hashed := encodeRegion(t, r, WithDataHash(true))
	unhashed := encodeRegion(t, r)

	header, err := section.ParseHeader(hashed)
	require.NoError(t, err)
	payload := hashed[section.HeaderSize : section.HeaderSize+int(header.CompressedLength)]
	require.Equal(t, hash.DataHash(payload), header.DataHash)

	verifying := newDecoder(t, WithHashVerification(true))
	lenient := newDecoder(t)

	t.Run("Zero hash accepted", func(t *testing.T) {
		decoded, err := verifying.Decode(unhashed, 0, 0)
		require.NoError(t, err)
		require.Equal(t, r, decoded)
	})

	t.Run("Mismatch detected", func(t *testing.T) {
		corrupted := append([]byte(nil), hashed...)
		corrupted[31] ^= 0x01

		_, err := verifying.Decode(corrupted, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDataHash)

		decoded, err := lenient.Decode(corrupted, 0, 0)
		require.NoError(t, err)
		require.Equal(t, r, decoded)
	})

	t.Run("Payload corruption detected before decompression", func(t *testing.T) {
		corrupted := append([]byte(nil), hashed...)
		corrupted[section.HeaderSize+len(payload)/2] ^= 0x01

		_, err := verifying.Decode(corrupted, 0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidDataHash)
	})
}

func TestDecoder_Open(t *testing.T) {
	dir := t.TempDir()
	original := randomRegion(t, rand.New(rand.NewSource(10)), -3, 7, 50)

	encoder, err := NewEncoder()
	require.NoError(t, err)
	path, err := encoder.WriteFile(original, dir)
	require.NoError(t, err)

	decoder := newDecoder(t)

	t.Run("Round trip", func(t *testing.T) {
		decoded, err := decoder.Open(path)
		require.NoError(t, err)
		require.Equal(t, original, decoded)
	})

	t.Run("Invalid file name", func(t *testing.T) {
		renamed := filepath.Join(dir, "region.linear")
		require.NoError(t, os.Link(path, renamed))

		_, err := decoder.Open(renamed)
		require.ErrorIs(t, err, errs.ErrInvalidRegionPath)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := decoder.Open(filepath.Join(dir, "r.9.9.linear"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Corrupted footer", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[len(data)-3] = 0

		corrupted := filepath.Join(dir, "r.1.1.linear")
		require.NoError(t, os.WriteFile(corrupted, data, 0o644))

		_, err = decoder.Open(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidFooterSignature)
	})

	t.Run("Empty file", func(t *testing.T) {
		empty := filepath.Join(dir, "r.2.2.linear")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))

		_, err := decoder.Open(empty)
		require.ErrorIs(t, err, errs.ErrTruncatedFile)
	})
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()
	r := randomRegion(t, rand.New(rand.NewSource(11)), 0, 1, 12)

	encoder, err := NewEncoder(WithCompressionLevel(9), WithVersion(format.VersionV1))
	require.NoError(t, err)
	path, err := encoder.WriteFile(r, dir)
	require.NoError(t, err)

	header, err := ReadHeader(path)
	require.NoError(t, err)
	require.Equal(t, format.VersionV1, header.Version)
	require.Equal(t, int8(9), header.CompressionLevel)
	require.Equal(t, int16(12), header.ChunkCount)
	require.Equal(t, r.NewestTimestamp, header.NewestTimestamp)

	short := filepath.Join(dir, "r.5.5.linear")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0o644))
	_, err = ReadHeader(short)
	require.ErrorIs(t, err, errs.ErrTruncatedFile)

	_, err = ReadHeader(filepath.Join(dir, "missing.linear"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
