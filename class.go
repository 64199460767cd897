package columnchunk

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/segmentio/columnchunk/deprecated"
	"github.com/segmentio/columnchunk/encoding/plain"
	"github.com/segmentio/columnchunk/format"
	"github.com/segmentio/columnchunk/internal/bits"
)

type primitive interface {
	bool | int32 | int64 | deprecated.Int96 | float32 | float64 | []byte
}

type ordered interface {
	int32 | int64 | float32 | float64
}

func less[T ordered](a, b T) bool { return a < b }

func identity[T primitive](v T) T { return v }

func alwaysValid[T primitive](T) bool { return true }

// boundsOf builds a bounds function from the valid and less predicates of a
// class, for the types which have no specialized min/max kernel.
func boundsOf[T primitive](valid func(T) bool, less func(T, T) bool) func([]T) (T, T, bool) {
	return func(values []T) (min, max T, ok bool) {
		for _, v := range values {
			if !valid(v) {
				continue
			}
			if !ok {
				min, max, ok = v, v, true
				continue
			}
			if less(v, min) {
				min = v
			}
			if less(max, v) {
				max = v
			}
		}
		return min, max, ok
	}
}

// class carries the per-type plumbing of a column writer: physical ordering
// for statistics, the plain form of values, and dictionary sizing. All
// per-type behavior is monomorphized through these function tables.
type class[T primitive] struct {
	name string
	kind format.Type

	// Physical ordering of the type: two's-complement integers, IEEE 754
	// floats, unsigned lexicographic byte arrays.
	less func(T, T) bool

	// Reports whether a value participates in min/max bounds; NaN does not.
	valid func(T) bool

	// Min and max of a batch of values, false when the batch holds no value
	// eligible for bounds.
	bounds func([]T) (T, T, bool)

	// Returns a value the statistics may retain after the caller's batch is
	// gone.
	clone func(T) T

	// Encoded form of a single value in statistics bounds.
	bytes func(T) []byte

	// Appends the plain encoding of a batch of values.
	appendPlain func([]byte, []T) []byte

	// Size of the plain encoding of a batch of values.
	plainSize func([]T) int

	// Constructs the plain value encoder for this type.
	newPlainEncoder func() valueEncoder[T]
}

var boolClass = class[bool]{
	name:  "BOOLEAN",
	kind:  format.Boolean,
	less:  func(a, b bool) bool { return !a && b },
	valid: alwaysValid[bool],
	bounds: func(values []bool) (bool, bool, bool) {
		min, max := bits.MinMaxBool(values)
		return min, max, len(values) > 0
	},
	clone: identity[bool],
	bytes: func(v bool) []byte {
		if v {
			return []byte{1}
		}
		return []byte{0}
	},
	appendPlain: plain.AppendBoolean,
	plainSize:   func(v []bool) int { return bits.ByteCount(uint(len(v))) },
}

var int32Class = class[int32]{
	name:  "INT32",
	kind:  format.Int32,
	less:  less[int32],
	valid: alwaysValid[int32],
	bounds: func(values []int32) (int32, int32, bool) {
		min, max := bits.MinMaxInt32(values)
		return min, max, len(values) > 0
	},
	clone: identity[int32],
	bytes: func(v int32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v))
		return b
	},
	appendPlain: plain.AppendInt32,
	plainSize:   func(v []int32) int { return 4 * len(v) },
}

var int64Class = class[int64]{
	name:  "INT64",
	kind:  format.Int64,
	less:  less[int64],
	valid: alwaysValid[int64],
	bounds: func(values []int64) (int64, int64, bool) {
		min, max := bits.MinMaxInt64(values)
		return min, max, len(values) > 0
	},
	clone: identity[int64],
	bytes: func(v int64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(v))
		return b
	},
	appendPlain: plain.AppendInt64,
	plainSize:   func(v []int64) int { return 8 * len(v) },
}

var int96Class = class[deprecated.Int96]{
	name:        "INT96",
	kind:        format.Int96,
	less:        deprecated.Int96.Less,
	valid:       alwaysValid[deprecated.Int96],
	bounds:      boundsOf(alwaysValid[deprecated.Int96], deprecated.Int96.Less),
	clone:       identity[deprecated.Int96],
	bytes:       deprecated.Int96.Bytes,
	appendPlain: plain.AppendInt96,
	plainSize:   func(v []deprecated.Int96) int { return 12 * len(v) },
}

var floatClass = class[float32]{
	name:   "FLOAT",
	kind:   format.Float,
	less:   less[float32],
	valid:  func(v float32) bool { return v == v },
	bounds: boundsOf(func(v float32) bool { return v == v }, less[float32]),
	clone:  identity[float32],
	bytes: func(v float32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
		return b
	},
	appendPlain: plain.AppendFloat,
	plainSize:   func(v []float32) int { return 4 * len(v) },
}

var doubleClass = class[float64]{
	name:   "DOUBLE",
	kind:   format.Double,
	less:   less[float64],
	valid:  func(v float64) bool { return v == v },
	bounds: boundsOf(func(v float64) bool { return v == v }, less[float64]),
	clone:  identity[float64],
	bytes: func(v float64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
		return b
	},
	appendPlain: plain.AppendDouble,
	plainSize:   func(v []float64) int { return 8 * len(v) },
}

func lessByteArray(a, b []byte) bool { return bytes.Compare(a, b) < 0 }

var byteArrayClass = class[[]byte]{
	name:   "BYTE_ARRAY",
	kind:   format.ByteArray,
	less:   lessByteArray,
	valid:  alwaysValid[[]byte],
	bounds: boundsOf(alwaysValid[[]byte], lessByteArray),
	clone:  func(v []byte) []byte { return append([]byte(nil), v...) },
	bytes:  func(v []byte) []byte { return v },
	appendPlain: func(dst []byte, src [][]byte) []byte {
		for _, v := range src {
			dst = plain.AppendByteArray(dst, v)
		}
		return dst
	},
	plainSize: func(src [][]byte) int {
		n := 0
		for _, v := range src {
			n += plain.ByteArrayLengthSize + len(v)
		}
		return n
	},
}

func init() {
	boolClass.newPlainEncoder = func() valueEncoder[bool] {
		return &booleanPlainEncoder{class: &boolClass}
	}
	int32Class.newPlainEncoder = func() valueEncoder[int32] {
		return &plainEncoder[int32]{class: &int32Class}
	}
	int64Class.newPlainEncoder = func() valueEncoder[int64] {
		return &plainEncoder[int64]{class: &int64Class}
	}
	int96Class.newPlainEncoder = func() valueEncoder[deprecated.Int96] {
		return &plainEncoder[deprecated.Int96]{class: &int96Class}
	}
	floatClass.newPlainEncoder = func() valueEncoder[float32] {
		return &plainEncoder[float32]{class: &floatClass}
	}
	doubleClass.newPlainEncoder = func() valueEncoder[float64] {
		return &plainEncoder[float64]{class: &doubleClass}
	}
	byteArrayClass.newPlainEncoder = func() valueEncoder[[]byte] {
		return &plainEncoder[[]byte]{class: &byteArrayClass}
	}
}

func fixedLenByteArrayClass(size int) *class[[]byte] {
	c := &class[[]byte]{
		name:   "FIXED_LEN_BYTE_ARRAY",
		kind:   format.FixedLenByteArray,
		less:   lessByteArray,
		valid:  alwaysValid[[]byte],
		bounds: boundsOf(alwaysValid[[]byte], lessByteArray),
		clone:  func(v []byte) []byte { return append([]byte(nil), v...) },
		bytes:  func(v []byte) []byte { return v },
		appendPlain: func(dst []byte, src [][]byte) []byte {
			for _, v := range src {
				dst = append(dst, v...)
			}
			return dst
		},
		plainSize: func(src [][]byte) int { return size * len(src) },
	}
	c.newPlainEncoder = func() valueEncoder[[]byte] {
		return &plainEncoder[[]byte]{class: c}
	}
	return c
}
