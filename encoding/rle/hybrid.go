package rle

import (
	"fmt"
	"io"
)

// A literal run is sized by a single indicator byte, which keeps it below 64
// groups of 8 values; this constant is that bound.
const maxValuesPerLiteralRun = (1 << 6) * 8

// hybridEncoder writes the parquet hybrid RLE/bit-packing layout into a
// fixed, caller-owned buffer. Values are buffered in groups of 8; groups that
// repeat a single value at least 8 times become repeated runs, everything
// else becomes bit-packed literal runs.
//
// The encoder keeps a head-room of minBufferSize bytes: once the remaining
// space drops below the size of the largest possible run, put reports false
// and the caller observes the truncation through the value count.
type hybridEncoder struct {
	bw              bitWriter
	bitWidth        uint
	buffered        [8]uint64
	numBuffered     int
	currentValue    uint64
	repeatCount     int
	literalCount    int
	indicatorOffset int
	maxRunByteSize  int
	full            bool
}

func (e *hybridEncoder) init(data []byte, bitWidth uint) {
	e.bw.reset(data)
	e.bitWidth = bitWidth
	e.maxRunByteSize = minBufferSize(int(bitWidth))
	e.currentValue = 0
	e.repeatCount = 0
	e.numBuffered = 0
	e.literalCount = 0
	e.indicatorOffset = -1
	e.full = false
	e.checkBufferFull()
}

func (e *hybridEncoder) put(value uint64) bool {
	if e.full {
		return false
	}

	if e.currentValue == value {
		e.repeatCount++
		if e.repeatCount > 8 {
			// Continuation of a run already longer than one group, the value
			// needs no buffering.
			return true
		}
	} else {
		if e.repeatCount >= 8 {
			e.flushRepeatedRun()
		}
		e.repeatCount = 1
		e.currentValue = value
	}

	e.buffered[e.numBuffered] = value
	e.numBuffered++
	if e.numBuffered == 8 {
		e.flushBufferedValues(false)
	}
	return true
}

func (e *hybridEncoder) flushBufferedValues(done bool) {
	if e.repeatCount >= 8 {
		// The whole group repeats the current value; it will be emitted as a
		// repeated run once the run ends. A pending literal run only needs
		// its indicator byte patched.
		e.numBuffered = 0
		if e.literalCount != 0 {
			e.flushLiteralRun(true)
		}
		return
	}

	e.literalCount += e.numBuffered
	numGroups := e.literalCount / 8
	if (numGroups + 1) >= (1 << 6) {
		// The reserved indicator byte cannot describe more groups, close the
		// literal run here.
		e.flushLiteralRun(true)
	} else {
		e.flushLiteralRun(done)
	}
	e.repeatCount = 0
}

func (e *hybridEncoder) flushLiteralRun(updateIndicator bool) {
	if e.indicatorOffset < 0 {
		offset, ok := e.bw.reserveByte()
		if !ok {
			e.full = true
			return
		}
		e.indicatorOffset = offset
	}

	for i := 0; i < e.numBuffered; i++ {
		if !e.bw.putValue(e.buffered[i], e.bitWidth) {
			e.full = true
			return
		}
	}
	e.numBuffered = 0

	if updateIndicator {
		numGroups := e.literalCount / 8
		e.bw.data[e.indicatorOffset] = byte(numGroups<<1 | 1)
		e.indicatorOffset = -1
		e.literalCount = 0
		e.checkBufferFull()
	}
}

func (e *hybridEncoder) flushRepeatedRun() {
	ok := e.bw.putVlqInt(uint32(e.repeatCount) << 1)
	ok = e.bw.putAligned(e.currentValue, byteCount(e.bitWidth)) && ok
	if !ok {
		e.full = true
	}
	e.numBuffered = 0
	e.repeatCount = 0
	e.checkBufferFull()
}

func (e *hybridEncoder) checkBufferFull() {
	if (e.bw.bytesWritten() + e.maxRunByteSize) > len(e.bw.data) {
		e.full = true
	}
}

// flush closes the pending run and returns the total number of bytes written
// since init.
func (e *hybridEncoder) flush() int {
	if e.literalCount > 0 || e.repeatCount > 0 || e.numBuffered > 0 {
		allRepeat := e.literalCount == 0 &&
			(e.repeatCount == e.numBuffered || e.numBuffered == 0)
		if e.repeatCount > 0 && allRepeat {
			e.flushRepeatedRun()
		} else {
			// Pad the last group of literals to 8 values with zeros.
			for e.numBuffered != 0 && e.numBuffered < 8 {
				e.buffered[e.numBuffered] = 0
				e.numBuffered++
			}
			e.literalCount += e.numBuffered
			e.flushLiteralRun(true)
			e.repeatCount = 0
		}
	}
	e.bw.align()
	return e.bw.bytesWritten()
}

// hybridDecoder consumes the layout produced by hybridEncoder.
type hybridDecoder struct {
	br           bitReader
	bitWidth     uint
	repeatCount  int
	repeatValue  uint64
	literalCount int
}

func (d *hybridDecoder) init(data []byte, bitWidth uint) {
	d.br.reset(data)
	d.bitWidth = bitWidth
	d.repeatCount = 0
	d.repeatValue = 0
	d.literalCount = 0
}

func (d *hybridDecoder) next() (uint64, error) {
	for {
		if d.repeatCount > 0 {
			d.repeatCount--
			return d.repeatValue, nil
		}
		if d.literalCount > 0 {
			v, ok := d.br.getValue(d.bitWidth)
			if !ok {
				return 0, fmt.Errorf("RLE data truncated in literal run")
			}
			d.literalCount--
			return v, nil
		}

		header, ok := d.br.getVlqInt()
		if !ok {
			return 0, io.EOF
		}
		if (header & 1) != 0 {
			d.literalCount = int(header>>1) * 8
		} else {
			count := int(header >> 1)
			if count == 0 {
				return 0, fmt.Errorf("RLE data contains an empty repeated run")
			}
			value, ok := d.br.getAligned(byteCount(d.bitWidth))
			if !ok {
				return 0, fmt.Errorf("RLE data truncated in repeated run")
			}
			d.repeatCount = count
			d.repeatValue = value
		}
	}
}
