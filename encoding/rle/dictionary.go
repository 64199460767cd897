package rle

import (
	"fmt"
	"io"

	"github.com/segmentio/columnchunk/internal/bits"
)

// IndexBufferSize bounds the encoded size of numValues dictionary indexes of
// the given bit width, including the encoder head-room.
func IndexBufferSize(bitWidth, numValues int) int {
	if bitWidth == 0 {
		return 0
	}
	return maxBufferSize(bitWidth, numValues) + minBufferSize(bitWidth)
}

// EncodeIndexes appends the dictionary-index form of the hybrid encoding to
// dst: a single byte giving the bit width, followed by the RLE/bit-packed
// index stream. The bit width is derived from the largest index, so a page
// referencing only the first dictionary entry (index 0) encodes as the width
// byte alone.
func EncodeIndexes(dst []byte, indexes []int32) ([]byte, error) {
	bitWidth := bits.MaxLen32(indexes)
	dst = append(dst, byte(bitWidth))
	if bitWidth == 0 || len(indexes) == 0 {
		return dst, nil
	}

	offset := len(dst)
	size := IndexBufferSize(bitWidth, len(indexes))
	dst = resize(dst, offset+size)

	e := hybridEncoder{}
	e.init(dst[offset:], uint(bitWidth))
	for _, index := range indexes {
		if !e.put(uint64(uint32(index))) {
			return dst[:offset], fmt.Errorf("encoding %d dictionary indexes overflowed a buffer of %d bytes", len(indexes), size)
		}
	}
	return dst[:offset+e.flush()], nil
}

// DecodeIndexes reads numValues dictionary indexes from the bit-width
// prefixed stream in src, appending them to dst.
func DecodeIndexes(dst []int32, src []byte, numValues int) ([]int32, error) {
	if len(src) == 0 {
		if numValues != 0 {
			return dst, fmt.Errorf("decoding %d dictionary indexes from an empty buffer", numValues)
		}
		return dst, nil
	}

	bitWidth := uint(src[0])
	if bitWidth > 32 {
		return dst, fmt.Errorf("decoding dictionary indexes with bit width %d", bitWidth)
	}
	if bitWidth == 0 {
		// A zero bit width means the page references only the first
		// dictionary entry.
		for i := 0; i < numValues; i++ {
			dst = append(dst, 0)
		}
		return dst, nil
	}

	d := hybridDecoder{}
	d.init(src[1:], bitWidth)
	for i := 0; i < numValues; i++ {
		v, err := d.next()
		if err == io.EOF {
			return dst, fmt.Errorf("decoding dictionary indexes: got %d values, expected %d", i, numValues)
		}
		if err != nil {
			return dst, err
		}
		dst = append(dst, int32(uint32(v)))
	}
	return dst, nil
}

func resize(buf []byte, size int) []byte {
	if cap(buf) < size {
		newBuf := make([]byte, size, 2*size)
		copy(newBuf, buf)
		return newBuf
	}
	return buf[:size]
}
