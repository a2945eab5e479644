// Package endian provides byte order utilities for binary signal decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// Every decodable WFDB format is little-endian except format 61, which is
// stored big-endian; decoders select their engine once at construction time
// and never branch on it again.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint16(buf)
//
// For format 61's big-endian 16-bit samples:
//
//	engine := endian.GetBigEndianEngine()
//	v := engine.Uint16(buf)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by every
// decodable format except 61.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine used by format 61.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
