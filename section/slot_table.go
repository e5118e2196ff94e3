package section

import (
	"fmt"

	"github.com/linearfmt/linear/errs"
)

// SlotEntry is one record of the slot table stored at the start of the decompressed payload.
type SlotEntry struct {
	// Size is the byte length of the chunk payload. Zero marks an empty slot.
	Size int32
	// Timestamp is the chunk modification time.
	Timestamp int32
}

// IsPopulated reports whether the slot holds a chunk.
func (e SlotEntry) IsPopulated() bool {
	return e.Size != 0
}

// SlotTable is the fixed table of contents of a region, indexed by slot.
type SlotTable [SlotCount]SlotEntry

// Parse parses the slot table from the first SlotTableSize bytes of data.
//
// Returns:
//   - error: ErrInvalidDecompressedSize if data is shorter than the table
func (t *SlotTable) Parse(data []byte) error {
	if len(data) < SlotTableSize {
		return fmt.Errorf("%w: %d bytes, slot table needs %d", errs.ErrInvalidDecompressedSize, len(data), SlotTableSize)
	}

	for i := range t {
		off := i * SlotEntrySize
		t[i].Size = int32(engine.Uint32(data[off : off+4]))
		t[i].Timestamp = int32(engine.Uint32(data[off+4 : off+8]))
	}

	return nil
}

// AppendBytes appends the serialized table to b.
func (t *SlotTable) AppendBytes(b []byte) []byte {
	for i := range t {
		b = engine.AppendUint32(b, uint32(t[i].Size))
		b = engine.AppendUint32(b, uint32(t[i].Timestamp))
	}

	return b
}

// Summary returns the sum of all slot sizes and the number of populated slots.
//
// Returns:
//   - int64: Total payload bytes described by the table
//   - int: Number of slots with a nonzero size
//   - error: ErrInvalidDecompressedSize if any slot declares a negative size
func (t *SlotTable) Summary() (int64, int, error) {
	var total int64
	populated := 0
	for i := range t {
		size := t[i].Size
		if size < 0 {
			return 0, 0, fmt.Errorf("%w: slot %d has negative size %d", errs.ErrInvalidDecompressedSize, i, size)
		}
		if size != 0 {
			total += int64(size)
			populated++
		}
	}

	return total, populated, nil
}

// SlotIndex returns the slot of the chunk at local position (localX, localZ) inside a region.
// Both coordinates must be in [0, 31].
func SlotIndex(localX, localZ int) int {
	return localX + localZ*RegionWidth
}

// SlotPosition returns the local position of a slot inside a region.
func SlotPosition(slot int) (localX, localZ int) {
	return slot % RegionWidth, slot / RegionWidth
}
