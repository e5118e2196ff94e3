// Package section defines the low-level binary structures and constants of the Linear
// region file format.
//
// # File Structure
//
// A Linear file holds one 32×32 chunk region:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Signature (8 bytes)                                  │
//	│  - Version (1 byte)                                     │
//	│  - NewestTimestamp (8 bytes)                            │
//	│  - CompressionLevel (1 byte, advisory)                  │
//	│  - ChunkCount (2 bytes)                                 │
//	│  - CompressedLength (4 bytes)                           │
//	│  - DataHash (8 bytes, zero unless enabled)              │
//	├─────────────────────────────────────────────────────────┤
//	│ Compressed Payload (CompressedLength bytes)             │
//	│  - Slot Table (1024 × 8 bytes): size, timestamp         │
//	│  - Chunk data, concatenated in slot order               │
//	├─────────────────────────────────────────────────────────┤
//	│ Footer (8 bytes): copy of Signature                     │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field            | Type  | Description
//	-------|------------------|-------|----------------------------------------
//	0-7    | Signature        | int64 | always -4323716122432332390
//	8      | Version          | int8  | 1 or 2
//	9-16   | NewestTimestamp  | int64 | newest chunk modification time
//	17     | CompressionLevel | int8  | level used by the writer, not needed to read
//	18-19  | ChunkCount       | int16 | number of populated slots
//	20-23  | CompressedLength | int32 | byte length of the payload section
//	24-31  | DataHash         | int64 | xxHash64 of the payload, or zero
//
// Both supported versions share this layout; the newest timestamp is always 8 bytes.
//
// All multi-byte fields are big-endian.
package section
