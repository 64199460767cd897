package rle

import (
	"testing"

	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/columnchunk/internal/quick"
)

const testMaxLevel = 7

func TestLevelEncoderRoundTrip(t *testing.T) {
	for _, encoding := range []format.Encoding{format.RLE, format.BitPacked} {
		t.Run(encoding.String(), func(t *testing.T) {
			err := quick.Check(func(levels []int16) bool {
				size, err := MaxBufferSize(encoding, testMaxLevel, len(levels))
				if err != nil {
					t.Fatal(err)
				}
				buffer := make([]byte, size)

				e, err := NewLevelEncoder(encoding, testMaxLevel, len(levels), buffer)
				if err != nil {
					t.Fatal(err)
				}
				if n := e.Encode(levels); n != len(levels) {
					t.Errorf("a buffer of max size truncated the levels: encoded %d out of %d", n, len(levels))
					return false
				}

				d, err := NewLevelDecoder(encoding, testMaxLevel, buffer[:e.Len()])
				if err != nil {
					t.Fatal(err)
				}
				decoded := make([]int16, len(levels))
				n, err := d.Decode(decoded)
				if err != nil {
					t.Error(err)
					return false
				}
				if n != len(levels) {
					t.Errorf("decoded %d levels, expected %d", n, len(levels))
					return false
				}
				for i := range levels {
					if decoded[i] != levels[i] {
						t.Errorf("level mismatch at index %d: got %d, want %d", i, decoded[i], levels[i])
						return false
					}
				}
				return true
			})
			if err != nil {
				t.Error(err)
			}
		})
	}
}

func TestLevelEncoderRepeatedRuns(t *testing.T) {
	levels := make([]int16, 1000)
	for i := range levels {
		levels[i] = int16(i / 100) // ten runs of one hundred levels
	}

	size, err := MaxBufferSize(format.RLE, testMaxLevel, len(levels))
	if err != nil {
		t.Fatal(err)
	}
	buffer := make([]byte, size)

	e, err := NewLevelEncoder(format.RLE, testMaxLevel, len(levels), buffer)
	if err != nil {
		t.Fatal(err)
	}
	if n := e.Encode(levels); n != len(levels) {
		t.Fatalf("encoded %d levels, expected %d", n, len(levels))
	}

	// Ten repeated runs of one hundred levels take 3 bytes each: a 2 bytes run
	// header and 1 byte of value.
	if e.Len() > 30 {
		t.Errorf("repeated runs were not run-length encoded: %d bytes", e.Len())
	}
}

func TestLevelEncoderTruncation(t *testing.T) {
	levels := make([]int16, 1000)
	for i := range levels {
		levels[i] = int16(i % 2)
	}

	buffer := make([]byte, 16)
	e, err := NewLevelEncoder(format.RLE, 1, len(levels), buffer)
	if err != nil {
		t.Fatal(err)
	}

	n := e.Encode(levels)
	if n == len(levels) {
		t.Fatal("a 16 bytes buffer cannot hold 1000 alternating levels")
	}

	d, err := NewLevelDecoder(format.RLE, 1, buffer[:e.Len()])
	if err != nil {
		t.Fatal(err)
	}
	decoded := make([]int16, n)
	if m, err := d.Decode(decoded); err != nil || m != n {
		t.Fatalf("decoded %d levels (%v), expected %d", m, err, n)
	}
	for i := 0; i < n; i++ {
		if decoded[i] != levels[i] {
			t.Fatalf("level mismatch at index %d: got %d, want %d", i, decoded[i], levels[i])
		}
	}
}

func TestLevelEncoderUnknownEncoding(t *testing.T) {
	if _, err := NewLevelEncoder(format.Plain, 1, 10, make([]byte, 64)); err == nil {
		t.Fatal("constructing a level encoder with a value encoding did not fail")
	}
	if _, err := MaxBufferSize(format.Plain, 1, 10); err == nil {
		t.Fatal("sizing a level buffer with a value encoding did not fail")
	}
}

func TestEncodeIndexes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		data, err := EncodeIndexes(nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != 1 || data[0] != 0 {
			t.Fatalf("empty index stream encoded to %q", data)
		}
	})

	t.Run("single-entry", func(t *testing.T) {
		data, err := EncodeIndexes(nil, []int32{0, 0, 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != 1 || data[0] != 0 {
			t.Fatalf("zero width index stream encoded to %q", data)
		}
		decoded, err := DecodeIndexes(nil, data, 4)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range decoded {
			if v != 0 {
				t.Fatalf("zero width index stream decoded to %v", decoded)
			}
		}
	})

	t.Run("round-trip", func(t *testing.T) {
		err := quick.Check(func(indexes []int32) bool {
			data, err := EncodeIndexes(nil, indexes)
			if err != nil {
				t.Error(err)
				return false
			}
			decoded, err := DecodeIndexes(nil, data, len(indexes))
			if err != nil {
				t.Error(err)
				return false
			}
			if len(decoded) != len(indexes) {
				t.Errorf("decoded %d indexes, expected %d", len(decoded), len(indexes))
				return false
			}
			for i := range indexes {
				if decoded[i] != indexes[i] {
					t.Errorf("index mismatch at %d: got %d, want %d", i, decoded[i], indexes[i])
					return false
				}
			}
			return true
		})
		if err != nil {
			t.Error(err)
		}
	})
}
