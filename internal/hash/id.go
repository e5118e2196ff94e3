package hash

import "github.com/cespare/xxhash/v2"

// DataHash computes the xxHash64 of a compressed region payload.
//
// The value is stored in the reserved integrity field of the superblock. Zero is
// reserved for "not computed", so a payload whose hash is zero is stored as one.
func DataHash(payload []byte) uint64 {
	if h := xxhash.Sum64(payload); h != 0 {
		return h
	}

	return 1
}
