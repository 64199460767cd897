package deprecated

import "testing"

func TestInt96Less(t *testing.T) {
	tests := []struct {
		a, b Int96
		less bool
	}{
		{Int96{0, 0, 0}, Int96{1, 0, 0}, true},
		{Int96{1, 0, 0}, Int96{0, 0, 0}, false},
		{Int96{0, 0, 0}, Int96{0, 0, 0}, false},
		{Int96{0xFFFFFFFF, 0, 0}, Int96{0, 1, 0}, true},
		{Int96{0, 0, 1}, Int96{0xFFFFFFFF, 0xFFFFFFFF, 0}, false},
		// The comparison is signed, the high bit of the third word carries
		// the sign.
		{Int96{0, 0, 0x80000000}, Int96{0, 0, 0}, true},
		{Int96{1, 0, 0}, Int96{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, false},
		{Int96{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, Int96{1, 0, 0}, true},
		{Int96{0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF}, Int96{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, true},
	}
	for _, test := range tests {
		if got := test.a.Less(test.b); got != test.less {
			t.Errorf("(%v).Less(%v): got %t, want %t", test.a, test.b, got, test.less)
		}
	}
}

func TestInt96BytesRoundTrip(t *testing.T) {
	values := []Int96{{1, 2, 3}, {0xFFFFFFFF, 0, 42}}
	decoded := BytesToInt96(Int96ToBytes(values))
	if len(decoded) != len(values) {
		t.Fatalf("got %d values, want %d", len(decoded), len(values))
	}
	for i := range values {
		if decoded[i] != values[i] {
			t.Errorf("value mismatch at index %d: got %v, want %v", i, decoded[i], values[i])
		}
	}
}
