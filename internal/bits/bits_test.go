package bits

import (
	"testing"

	"github.com/segmentio/columnchunk/internal/quick"
)

func TestByteCount(t *testing.T) {
	for _, test := range []struct {
		bits  uint
		bytes int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{64, 8},
		{65, 9},
	} {
		if n := ByteCount(test.bits); n != test.bytes {
			t.Errorf("ByteCount(%d): got %d, want %d", test.bits, n, test.bytes)
		}
	}
}

func TestLen16(t *testing.T) {
	for _, test := range []struct {
		value int16
		len   int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{7, 3},
		{8, 4},
	} {
		if n := Len16(test.value); n != test.len {
			t.Errorf("Len16(%d): got %d, want %d", test.value, n, test.len)
		}
	}
}

func TestMaxLen32(t *testing.T) {
	err := quick.Check(func(values []int32) bool {
		max := 0
		for _, v := range values {
			if n := Len32(v); n > max {
				max = n
			}
		}
		return MaxLen32(values) == max
	})
	if err != nil {
		t.Error(err)
	}
}

func TestMinMaxInt32(t *testing.T) {
	err := quick.Check(func(values []int32) bool {
		min, max := MinMaxInt32(values)
		if len(values) == 0 {
			return min == 0 && max == 0
		}
		for _, v := range values {
			if v < min || v > max {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Error(err)
	}
}

func TestMinMaxInt64(t *testing.T) {
	err := quick.Check(func(values []int64) bool {
		min, max := MinMaxInt64(values)
		if len(values) == 0 {
			return min == 0 && max == 0
		}
		for _, v := range values {
			if v < min || v > max {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Error(err)
	}
}

func TestMinMaxBool(t *testing.T) {
	for _, test := range []struct {
		values   []bool
		min, max bool
	}{
		{nil, false, false},
		{[]bool{true}, true, true},
		{[]bool{false}, false, false},
		{[]bool{true, false, true}, false, true},
	} {
		if min, max := MinMaxBool(test.values); min != test.min || max != test.max {
			t.Errorf("MinMaxBool(%v): got [%t, %t], want [%t, %t]", test.values, min, max, test.min, test.max)
		}
	}
}

func TestInt32ToBytesRoundTrip(t *testing.T) {
	values := []int32{1, -1, 0, 1 << 30}
	if got := BytesToInt32(Int32ToBytes(values)); len(got) != len(values) {
		t.Fatalf("got %d values, want %d", len(got), len(values))
	} else {
		for i := range values {
			if got[i] != values[i] {
				t.Errorf("value mismatch at index %d: got %d, want %d", i, got[i], values[i])
			}
		}
	}
}
