// Package deprecated contains the parquet INT96 physical type, which remains
// part of the format for the sake of timestamps written by legacy systems.
package deprecated

import (
	"encoding/binary"
	"unsafe"
)

// Int96 is a 96 bits integer value, stored as three little-endian 32 bits
// words from least to most significant.
type Int96 [3]uint32

// Negative returns true if i is a negative value.
func (i Int96) Negative() bool {
	return (i[2] >> 31) != 0
}

// Less returns true if i < j.
//
// The method implements a signed comparison between the two operands.
func (i Int96) Less(j Int96) bool {
	if i.Negative() {
		if !j.Negative() {
			return true
		}
	} else {
		if j.Negative() {
			return false
		}
	}
	for k := 2; k >= 0; k-- {
		a, b := i[k], j[k]
		switch {
		case a < b:
			return true
		case a > b:
			return false
		}
	}
	return false
}

// Bytes returns the twelve little-endian bytes of i.
func (i Int96) Bytes() []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:4], i[0])
	binary.LittleEndian.PutUint32(b[4:8], i[1])
	binary.LittleEndian.PutUint32(b[8:12], i[2])
	return b
}

// Int96ToBytes reinterprets data as its little-endian byte representation.
func Int96ToBytes(data []Int96) []byte {
	return unsafe.Slice(*(**byte)(unsafe.Pointer(&data)), 12*len(data))
}

// BytesToInt96 reinterprets data as a slice of 96 bits integers.
func BytesToInt96(data []byte) []Int96 {
	return unsafe.Slice(*(**Int96)(unsafe.Pointer(&data)), len(data)/12)
}
