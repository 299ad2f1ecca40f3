package common

import (
	"encoding/binary"
	"reflect"
)

// FixedSize returns the byte width for fixed-size primitive kinds.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int, reflect.Uint, reflect.Uintptr,
		reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return -1
	}
}

// PutBits appends the low width bytes of x to dst in little-endian order.
// width must be 1, 2, 4 or 8.
func PutBits(dst []byte, x uint64, width int) []byte {
	switch width {
	case 1:
		return append(dst, byte(x))
	case 2:
		return binary.LittleEndian.AppendUint16(dst, uint16(x))
	case 4:
		return binary.LittleEndian.AppendUint32(dst, uint32(x))
	case 8:
		return binary.LittleEndian.AppendUint64(dst, x)
	default:
		panic("common: unsupported width")
	}
}

// Bits reads a little-endian unsigned value of the given width from b.
// The caller guarantees len(b) >= width.
func Bits(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		panic("common: unsupported width")
	}
}

// SignExtend interprets the low width bytes of x as a two's complement
// integer.
func SignExtend(x uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(x<<shift) >> shift
}
