package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/structpack"
)

func TestEncodeLayout(t *testing.T) {
	out, err := Encode("i", []byte{0xE8, 0x03, 0x00, 0x00}, Options{})
	require.NoError(t, err)
	require.Len(t, out, headerSize+1+4+crcSize)

	assert.Equal(t, []byte{'S', 'P', Version, 0}, out[:4])
	assert.Equal(t, []byte{byte(len(out)), 0, 0, 0}, out[4:8])
	assert.Equal(t, []byte{1, 0, 'i'}, out[8:11])
	assert.Equal(t, []byte{0xE8, 0x03, 0x00, 0x00}, out[11:15])
}

func TestRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		out, err := Pack("IH?d", Options{Compress: compress}, 14, 12, true, 3.14)
		require.NoError(t, err)

		format, vals, err := Unpack(out)
		require.NoError(t, err)
		assert.Equal(t, "IH?d", format)
		assert.Equal(t, []any{uint64(14), uint64(12), true, 3.14}, vals)

		f, err := Decode(out)
		require.NoError(t, err)
		assert.Equal(t, compress, f.Flags&FlagCompressed != 0)
		assert.Len(t, f.Payload, 4+2+1+8)
	}
}

func TestCompressedPayloadShrinks(t *testing.T) {
	format := string(bytes.Repeat([]byte("q"), 256))
	values := make([]any, 256)
	for i := range values {
		values[i] = int64(7)
	}
	plain, err := Pack(format, Options{}, values...)
	require.NoError(t, err)
	packed, err := Pack(format, Options{Compress: true}, values...)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))

	_, vals, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, values, vals)
}

func TestEncodeRejectsBadFormat(t *testing.T) {
	_, err := Encode("i z", nil, Options{})
	assert.ErrorIs(t, err, structpack.ErrFormat)

	_, err = Pack("i", Options{}, 1, 2)
	assert.ErrorIs(t, err, structpack.ErrArity)
}

func TestDecodeErrors(t *testing.T) {
	good, err := Pack("H", Options{}, 513)
	require.NoError(t, err)

	_, err = Decode(good[:8])
	assert.ErrorIs(t, err, ErrShortFrame)

	bad := append([]byte(nil), good...)
	bad[0] = 'X'
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadMagic)

	bad = append([]byte(nil), good...)
	bad[2] = 9
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode(append(append([]byte(nil), good...), 0))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	bad = append([]byte(nil), good...)
	bad[len(bad)-5] ^= 0xFF
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrChecksum)

	bad = append([]byte(nil), good...)
	bad[8] = 0xFF
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrShortFrame)
}

func TestUnpackPayloadTooShort(t *testing.T) {
	out, err := Encode("q", []byte{1, 2}, Options{})
	require.NoError(t, err)
	_, _, err = Unpack(out)
	assert.ErrorIs(t, err, structpack.ErrBufferUnderrun)
}

func TestDecodeRejectsOversizedPayload(t *testing.T) {
	old := maxPayload
	maxPayload = 1024
	t.Cleanup(func() { maxPayload = old })

	format := string(bytes.Repeat([]byte("q"), 512))
	values := make([]any, 512)
	for i := range values {
		values[i] = int64(0)
	}
	packed, err := Pack(format, Options{Compress: true}, values...)
	require.NoError(t, err)

	_, err = Decode(packed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded), err)

	_, _, err = Unpack(packed)
	assert.Error(t, err)
}
