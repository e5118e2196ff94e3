package region

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/linearfmt/linear/errs"
	"github.com/linearfmt/linear/section"
)

const (
	// SlotCount is the number of chunk slots in a region.
	SlotCount = section.SlotCount
	// Width is the number of chunks along each side of a region.
	Width = section.RegionWidth
)

// Chunk is one opaque chunk payload and its absolute chunk coordinates.
type Chunk struct {
	// Data is the raw chunk payload. It is never empty.
	Data []byte
	X    int
	Z    int
}

// String omits the payload.
func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk{x: %d, z: %d, size: %d}", c.X, c.Z, len(c.Data))
}

// Region is the in-memory form of one Linear file.
//
// A slot is populated iff Chunks[slot] is non-nil. Timestamps of empty slots are
// written as zero.
type Region struct {
	Chunks     [SlotCount]*Chunk
	Timestamps [SlotCount]int32
	// X and Z are the region coordinates.
	X int
	Z int
	// NewestTimestamp is stored in the header as is.
	NewestTimestamp int64
}

// NewRegion creates an empty region at region coordinates (x, z).
func NewRegion(x, z int) *Region {
	return &Region{X: x, Z: z}
}

// SetChunk stores a copy of data in slot and raises NewestTimestamp to timestamp if it
// is newer.
//
// Returns:
//   - error: ErrInvalidSlotIndex, ErrEmptyChunk or ErrChunkTooLarge
func (r *Region) SetChunk(slot int, data []byte, timestamp int32) error {
	if slot < 0 || slot >= SlotCount {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSlotIndex, slot)
	}

	if err := checkPayload(slot, data); err != nil {
		return err
	}

	x, z := r.ChunkCoordinates(slot)
	r.Chunks[slot] = &Chunk{Data: bytes.Clone(data), X: x, Z: z}
	r.Timestamps[slot] = timestamp
	r.NewestTimestamp = max(r.NewestTimestamp, int64(timestamp))

	return nil
}

// SetChunkAt is SetChunk addressed by local position, both coordinates in [0, 31].
func (r *Region) SetChunkAt(localX, localZ int, data []byte, timestamp int32) error {
	if !validLocal(localX, localZ) {
		return fmt.Errorf("%w: local position (%d, %d)", errs.ErrInvalidSlotIndex, localX, localZ)
	}

	return r.SetChunk(section.SlotIndex(localX, localZ), data, timestamp)
}

// Chunk returns the chunk in slot, or nil if the slot is empty or out of range.
func (r *Region) Chunk(slot int) *Chunk {
	if slot < 0 || slot >= SlotCount {
		return nil
	}

	return r.Chunks[slot]
}

// ChunkAt returns the chunk at local position (localX, localZ), or nil.
func (r *Region) ChunkAt(localX, localZ int) *Chunk {
	if !validLocal(localX, localZ) {
		return nil
	}

	return r.Chunks[section.SlotIndex(localX, localZ)]
}

// RemoveChunk empties slot and clears its timestamp. Out of range slots are ignored.
func (r *Region) RemoveChunk(slot int) {
	if slot < 0 || slot >= SlotCount {
		return
	}

	r.Chunks[slot] = nil
	r.Timestamps[slot] = 0
}

// CountPopulated returns the number of slots holding a chunk.
func (r *Region) CountPopulated() int {
	n := 0
	for _, c := range r.Chunks {
		if c != nil {
			n++
		}
	}

	return n
}

// ChunkCoordinates returns the world chunk coordinates of slot.
func (r *Region) ChunkCoordinates(slot int) (x, z int) {
	localX, localZ := section.SlotPosition(slot)
	return Width*r.X + localX, Width*r.Z + localZ
}

// FileName returns the file name of the region, r.<x>.<z>.linear.
func (r *Region) FileName() string {
	return FileName(r.X, r.Z)
}

// String renders slot occupancy as a 32×32 grid, one row per line.
func (r *Region) String() string {
	var sb strings.Builder
	sb.Grow(SlotCount*3 + Width)
	for slot, c := range r.Chunks {
		if c != nil {
			sb.WriteString("■")
		} else {
			sb.WriteString("□")
		}
		if slot%Width == Width-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// validate checks the populated slots before encoding.
func (r *Region) validate() error {
	for slot, c := range r.Chunks {
		if c == nil {
			continue
		}
		if err := checkPayload(slot, c.Data); err != nil {
			return err
		}
	}

	return nil
}

func checkPayload(slot int, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: slot %d", errs.ErrEmptyChunk, slot)
	}

	if len(data) > math.MaxInt32 {
		return fmt.Errorf("%w: slot %d holds %d bytes", errs.ErrChunkTooLarge, slot, len(data))
	}

	return nil
}

func validLocal(localX, localZ int) bool {
	return localX >= 0 && localX < Width && localZ >= 0 && localZ < Width
}
