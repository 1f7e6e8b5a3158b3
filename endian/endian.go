// Package endian provides byte order utilities for IPv4 projection.
//
// The Native wire format itself is fixed little-endian (see wire.Reader).
// IPv4 octet order is the exception: different ClickHouse producer
// versions have been observed writing the octets in different orders, so
// Projection accepts a pluggable EndianEngine instead of hard-coding one.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface, satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// IPv4 projection.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, for producers observed
// writing IPv4 octets least-significant first (the reverse of the default,
// which takes the first wire byte as the leading octet).
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
