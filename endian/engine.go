// Package endian provides byte order utilities for the Linear container format.
//
// Every multi-byte field of a Linear file (superblock, slot table, footer) is
// big-endian. The package wraps encoding/binary so that readers and writers share
// one engine value exposing both the ByteOrder and AppendByteOrder method sets:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(size))
//	size := int32(engine.Uint32(buf[0:4]))
//
// The returned engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the Linear format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
