// Package rle implements the hybrid RLE/bit-packing encoding used for
// repetition levels, definition levels, and dictionary indexes, as well as
// the deprecated BIT_PACKED layout for levels.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/columnchunk/internal/bits"
)

func byteCount(bitWidth uint) int {
	return bits.ByteCount(bitWidth)
}

// minBufferSize is the size of the largest run the encoder may emit at once:
// a full literal run, or a repeated run of a single value.
func minBufferSize(bitWidth int) int {
	maxLiteralRunSize := 1 + bits.ByteCount(uint(maxValuesPerLiteralRun*bitWidth))
	maxRepeatedRunSize := binary.MaxVarintLen32 + bits.ByteCount(uint(bitWidth))
	if maxLiteralRunSize > maxRepeatedRunSize {
		return maxLiteralRunSize
	}
	return maxRepeatedRunSize
}

// maxBufferSize bounds the encoded size of numValues values of the given bit
// width; the worst cases are a sequence of literal runs and a sequence of
// 8 values repeated runs.
func maxBufferSize(bitWidth, numValues int) int {
	numRuns := (numValues + 7) / 8
	literalMaxSize := numRuns + numRuns*bitWidth
	minRepeatedRunSize := 1 + bits.ByteCount(uint(bitWidth))
	repeatedMaxSize := numRuns * minRepeatedRunSize
	if literalMaxSize > repeatedMaxSize {
		return literalMaxSize
	}
	return repeatedMaxSize
}

// MaxBufferSize returns the number of bytes which guarantee that encoding
// numValues levels bounded by maxLevel never truncates. For RLE the bound
// includes the head-room the encoder keeps to avoid stalling at run
// boundaries.
func MaxBufferSize(encoding format.Encoding, maxLevel int16, numValues int) (int, error) {
	bitWidth := bits.Len16(maxLevel)
	switch encoding {
	case format.RLE:
		return maxBufferSize(bitWidth, numValues) + minBufferSize(bitWidth), nil
	case format.BitPacked:
		return bits.ByteCount(uint(numValues * bitWidth)), nil
	default:
		return 0, fmt.Errorf("unknown encoding for levels: %s", encoding)
	}
}

// A LevelEncoder writes a stream of levels to a caller-owned buffer, either
// in the hybrid RLE layout or the deprecated BIT_PACKED layout.
//
// Encoding stops when the buffer runs short; the caller detects it by
// comparing the value returned by Encode against the number of levels it
// passed. Buffers sized with MaxBufferSize never truncate.
type LevelEncoder struct {
	encoding  format.Encoding
	bitWidth  uint
	rle       hybridEncoder
	bitPacked bitWriter
	rleLength int
}

func NewLevelEncoder(encoding format.Encoding, maxLevel int16, numValues int, data []byte) (*LevelEncoder, error) {
	e := &LevelEncoder{
		encoding: encoding,
		bitWidth: uint(bits.Len16(maxLevel)),
	}
	switch encoding {
	case format.RLE:
		e.rle.init(data, e.bitWidth)
	case format.BitPacked:
		if n := bits.ByteCount(uint(numValues) * e.bitWidth); n < len(data) {
			data = data[:n]
		}
		e.bitPacked.reset(data)
	default:
		return nil, fmt.Errorf("unknown encoding for levels: %s", encoding)
	}
	return e, nil
}

// Encode consumes levels until the stream ends or the buffer is exhausted,
// closes the pending run, and returns the number of levels consumed.
func (e *LevelEncoder) Encode(levels []int16) int {
	n := 0
	if e.encoding == format.RLE {
		for _, level := range levels {
			if !e.rle.put(uint64(uint16(level))) {
				break
			}
			n++
		}
		e.rleLength = e.rle.flush()
	} else {
		for _, level := range levels {
			if !e.bitPacked.putValue(uint64(uint16(level)), e.bitWidth) {
				break
			}
			n++
		}
		e.bitPacked.align()
	}
	return n
}

// Len returns the length in bytes of the encoded stream.
func (e *LevelEncoder) Len() int {
	if e.encoding == format.RLE {
		return e.rleLength
	}
	return e.bitPacked.bytesWritten()
}

// A LevelDecoder reads back the streams produced by LevelEncoder.
type LevelDecoder struct {
	encoding format.Encoding
	bitWidth uint
	rle      hybridDecoder
	br       bitReader
}

func NewLevelDecoder(encoding format.Encoding, maxLevel int16, data []byte) (*LevelDecoder, error) {
	d := &LevelDecoder{
		encoding: encoding,
		bitWidth: uint(bits.Len16(maxLevel)),
	}
	switch encoding {
	case format.RLE:
		d.rle.init(data, d.bitWidth)
	case format.BitPacked:
		d.br.reset(data)
	default:
		return nil, fmt.Errorf("unknown encoding for levels: %s", encoding)
	}
	return d, nil
}

// Decode fills levels with decoded values, returning the number of levels
// decoded; it returns less than len(levels) when the stream ends early.
func (d *LevelDecoder) Decode(levels []int16) (int, error) {
	if d.encoding == format.RLE {
		for i := range levels {
			v, err := d.rle.next()
			if err == io.EOF {
				return i, nil
			}
			if err != nil {
				return i, err
			}
			levels[i] = int16(v)
		}
	} else {
		for i := range levels {
			v, ok := d.br.getValue(d.bitWidth)
			if !ok {
				return i, nil
			}
			levels[i] = int16(v)
		}
	}
	return len(levels), nil
}
