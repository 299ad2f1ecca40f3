package common

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutBitsLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{0xE8, 0x03, 0x00, 0x00}, PutBits(nil, 1000, 4))
	assert.Equal(t, []byte{0x0C, 0x00}, PutBits(nil, 12, 2))
	assert.Equal(t, []byte{0xFF}, PutBits(nil, 0x1FF, 1))
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0x80}, PutBits(nil, 0x8000000000000001, 8))
}

func TestBitsRoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		x := uint64(0x0123456789ABCDEF)
		mask := uint64(1)<<(8*uint(width)) - 1
		if width == 8 {
			mask = ^uint64(0)
		}
		b := PutBits([]byte{0xAA}, x, width)
		require.Len(t, b, width+1)
		assert.Equal(t, x&mask, Bits(b[1:], width), "width %d", width)
	}
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int64(-1), SignExtend(0xFF, 1))
	assert.Equal(t, int64(127), SignExtend(0x7F, 1))
	assert.Equal(t, int64(-32768), SignExtend(0x8000, 2))
	assert.Equal(t, int64(-2), SignExtend(0xFFFFFFFE, 4))
	assert.Equal(t, int64(-1), SignExtend(^uint64(0), 8))
}

func TestFixedSize(t *testing.T) {
	assert.Equal(t, 1, FixedSize(reflect.Bool))
	assert.Equal(t, 2, FixedSize(reflect.Uint16))
	assert.Equal(t, 4, FixedSize(reflect.Float32))
	assert.Equal(t, 8, FixedSize(reflect.Int))
	assert.Equal(t, -1, FixedSize(reflect.String))
}
