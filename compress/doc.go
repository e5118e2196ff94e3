// Package compress provides the compression codecs used for Linear region payloads.
//
// A Linear file compresses its slot table and every chunk payload as one unit. The
// reference format uses a Zstandard frame; this package additionally writes S2 and
// LZ4 streams. All three are framed formats that start with a magic number, so a
// reader never needs the compression type or level stored elsewhere:
//
//	compressor, _ := compress.CreateCodec(format.CompressionZstd, 6)
//	compressed, _ := compressor.Compress(raw)
//
//	// later, without knowing how it was written
//	raw, err := compress.Decompress(compressed, compress.DefaultDecompressLimit)
//
// # Supported Algorithms
//
// **Zstandard** (format.CompressionZstd) is the default and the only algorithm other
// Linear implementations read. Levels follow zstd numbering; the pure Go encoder
// (github.com/klauspost/compress/zstd) maps them onto its four speed tiers. Building
// with `-tags gozstd` switches to the cgo binding (github.com/valyala/gozstd), which
// honors every level exactly.
//
// **S2** (format.CompressionS2) writes the S2 stream format. Levels >= 10 select the
// best mode, levels >= 4 the better mode.
//
// **LZ4** (format.CompressionLZ4) writes the LZ4 frame format. Levels 1-9 select
// LZ4-HC levels, anything lower the fast mode.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool encoders and decoders, and are
// safe for concurrent use.
package compress
