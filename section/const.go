package section

// Signature is the magic number written at the start and the end of every Linear file.
const Signature int64 = -4323716122432332390

// offset and section sizes in the region file
const (
	HeaderSize    = 32                        // fixed superblock size in bytes
	FooterSize    = 8                         // trailing signature size in bytes
	SlotCount     = 1024                      // number of chunk slots in a region
	SlotEntrySize = 8                         // size + timestamp, 4 bytes each
	SlotTableSize = SlotCount * SlotEntrySize // size of the decompressed slot table
	MinFileSize   = HeaderSize + FooterSize   // smallest structurally valid file
	RegionWidth   = 32                        // slots per region row
)

// header field offsets
const (
	signatureOffset        = 0
	versionOffset          = 8
	newestTimestampOffset  = 9
	compressionLevelOffset = 17
	chunkCountOffset       = 18
	compressedLengthOffset = 20
	dataHashOffset         = 24
)
