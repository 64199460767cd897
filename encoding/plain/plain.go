// Package plain implements the parquet PLAIN encoding: little-endian raw
// values for the fixed-width types, length-prefixed slices for BYTE_ARRAY,
// and bit-packed booleans.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/segmentio/columnchunk/deprecated"
	"github.com/segmentio/columnchunk/internal/bits"
)

// ByteArrayLengthSize is the size of the length prefix carried by each
// BYTE_ARRAY value.
const ByteArrayLengthSize = 4

func AppendBoolean(dst []byte, src []bool) []byte {
	offset := len(dst)
	dst = append(dst, make([]byte, bits.ByteCount(uint(len(src))))...)
	for i, v := range src {
		if v {
			dst[offset+i/8] |= 1 << uint(i%8)
		}
	}
	return dst
}

func AppendInt32(dst []byte, src []int32) []byte {
	return append(dst, bits.Int32ToBytes(src)...)
}

func AppendInt64(dst []byte, src []int64) []byte {
	return append(dst, bits.Int64ToBytes(src)...)
}

func AppendInt96(dst []byte, src []deprecated.Int96) []byte {
	return append(dst, deprecated.Int96ToBytes(src)...)
}

func AppendFloat(dst []byte, src []float32) []byte {
	return append(dst, bits.Float32ToBytes(src)...)
}

func AppendDouble(dst []byte, src []float64) []byte {
	return append(dst, bits.Float64ToBytes(src)...)
}

func AppendByteArray(dst, value []byte) []byte {
	length := [ByteArrayLengthSize]byte{}
	binary.LittleEndian.PutUint32(length[:], uint32(len(value)))
	dst = append(dst, length[:]...)
	return append(dst, value...)
}

func AppendFixedLenByteArray(dst []byte, size int, data []byte) ([]byte, error) {
	if (len(data) % size) != 0 {
		return dst, fmt.Errorf("length of fixed byte array is not a multiple of its size: size=%d length=%d", size, len(data))
	}
	return append(dst, data...), nil
}

// ByteArraySize returns the encoded size of a BYTE_ARRAY value.
func ByteArraySize(value []byte) (int, error) {
	if len(value) > math.MaxUint32 {
		return 0, fmt.Errorf("byte slice is too large to be represented by the PLAIN encoding: %d", len(value))
	}
	return ByteArrayLengthSize + len(value), nil
}

func DecodeBoolean(dst []bool, src []byte, numValues int) ([]bool, error) {
	if n := bits.ByteCount(uint(numValues)); len(src) < n {
		return dst, fmt.Errorf("decoding %d booleans from %d bytes", numValues, len(src))
	}
	for i := 0; i < numValues; i++ {
		dst = append(dst, (src[i/8]>>uint(i%8))&1 != 0)
	}
	return dst, nil
}

func DecodeInt32(dst []int32, src []byte) ([]int32, error) {
	if (len(src) % 4) != 0 {
		return dst, fmt.Errorf("decoding INT32 values from an input of size %d", len(src))
	}
	return append(dst, bits.BytesToInt32(src)...), nil
}

func DecodeInt64(dst []int64, src []byte) ([]int64, error) {
	if (len(src) % 8) != 0 {
		return dst, fmt.Errorf("decoding INT64 values from an input of size %d", len(src))
	}
	return append(dst, bits.BytesToInt64(src)...), nil
}

func DecodeInt96(dst []deprecated.Int96, src []byte) ([]deprecated.Int96, error) {
	if (len(src) % 12) != 0 {
		return dst, fmt.Errorf("decoding INT96 values from an input of size %d", len(src))
	}
	return append(dst, deprecated.BytesToInt96(src)...), nil
}

func DecodeFloat(dst []float32, src []byte) ([]float32, error) {
	if (len(src) % 4) != 0 {
		return dst, fmt.Errorf("decoding FLOAT values from an input of size %d", len(src))
	}
	return append(dst, bits.BytesToFloat32(src)...), nil
}

func DecodeDouble(dst []float64, src []byte) ([]float64, error) {
	if (len(src) % 8) != 0 {
		return dst, fmt.Errorf("decoding DOUBLE values from an input of size %d", len(src))
	}
	return append(dst, bits.BytesToFloat64(src)...), nil
}

func DecodeByteArray(dst [][]byte, src []byte) ([][]byte, error) {
	for len(src) > 0 {
		if len(src) < ByteArrayLengthSize {
			return dst, fmt.Errorf("decoding BYTE_ARRAY values from a truncated length prefix of size %d", len(src))
		}
		n := int(binary.LittleEndian.Uint32(src))
		src = src[ByteArrayLengthSize:]
		if n > len(src) {
			return dst, fmt.Errorf("decoding a BYTE_ARRAY value of length %d from an input of size %d", n, len(src))
		}
		dst = append(dst, src[:n:n])
		src = src[n:]
	}
	return dst, nil
}

func DecodeFixedLenByteArray(dst [][]byte, size int, src []byte) ([][]byte, error) {
	if (len(src) % size) != 0 {
		return dst, fmt.Errorf("decoding FIXED_LEN_BYTE_ARRAY values of size %d from an input of size %d", size, len(src))
	}
	for i := 0; i+size <= len(src); i += size {
		dst = append(dst, src[i:i+size:i+size])
	}
	return dst, nil
}
