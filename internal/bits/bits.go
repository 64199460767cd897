package bits

import "math/bits"

func BitCount(count int) uint {
	return 8 * uint(count)
}

func ByteCount(count uint) int {
	return int((count + 7) / 8)
}

func Len16(i int16) int {
	return bits.Len16(uint16(i))
}

func Len32(i int32) int {
	return bits.Len32(uint32(i))
}

func Len64(i int64) int {
	return bits.Len64(uint64(i))
}
