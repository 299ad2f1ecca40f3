// Package frame wraps a packed record in a self-describing envelope: the
// format string travels with the payload and a CRC32 trailer guards both.
//
// Layout (little-endian):
//
//	magic 'S' 'P' | version u8 | flags u8 | total length u32 |
//	format length u16 | format | payload | crc32 u32
//
// The CRC covers everything after the magic up to the trailer.
package frame

import (
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/rawbytedev/structpack"
)

const (
	Version = 1

	FlagCompressed byte = 1 << 0

	headerFormat = "BBBBIH"
	headerSize   = 10
	crcSize      = 4
)

var magic = [2]byte{'S', 'P'}

var (
	ErrShortFrame     = errors.New("frame: buffer too short")
	ErrBadMagic       = errors.New("frame: bad magic")
	ErrVersion        = errors.New("frame: unsupported version")
	ErrLengthMismatch = errors.New("frame: length mismatch")
	ErrChecksum       = errors.New("frame: crc mismatch")
	ErrFormatTooLong  = errors.New("frame: format string too long")
)

type Options struct {
	// Compress stores the payload zstd-compressed.
	Compress bool
}

// Frame is a decoded envelope. Payload is always uncompressed.
type Frame struct {
	Format  string
	Payload []byte
	Flags   byte
}

// Encode builds a frame around payload, which must be the packed form of
// format.
func Encode(format string, payload []byte, opts Options) ([]byte, error) {
	if _, err := structpack.Parse(format); err != nil {
		return nil, err
	}
	if len(format) > math.MaxUint16 {
		return nil, ErrFormatTooLong
	}
	var flags byte
	body := payload
	if opts.Compress {
		c, err := compress(payload)
		if err != nil {
			return nil, err
		}
		body = c
		flags |= FlagCompressed
	}

	total := headerSize + len(format) + len(body) + crcSize
	head, err := structpack.Pack(headerFormat, magic[0], magic[1], Version, flags, total, len(format))
	if err != nil {
		return nil, fmt.Errorf("frame: header: %w", err)
	}
	out := make([]byte, 0, total)
	out = append(out, head...)
	out = append(out, format...)
	out = append(out, body...)

	// crc over bytes 2 .. end-of-payload
	trailer, err := structpack.Pack("I", crc32.ChecksumIEEE(out[2:]))
	if err != nil {
		return nil, err
	}
	return append(out, trailer...), nil
}

// Decode validates and opens a frame.
func Decode(data []byte) (Frame, error) {
	if len(data) < headerSize+crcSize {
		return Frame{}, ErrShortFrame
	}
	head, err := structpack.Unpack(headerFormat, data)
	if err != nil {
		return Frame{}, err
	}
	if byte(head[0].(uint64)) != magic[0] || byte(head[1].(uint64)) != magic[1] {
		return Frame{}, ErrBadMagic
	}
	if v := head[2].(uint64); v != Version {
		return Frame{}, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	flags := byte(head[3].(uint64))
	if total := head[4].(uint64); total != uint64(len(data)) {
		return Frame{}, fmt.Errorf("%w: header says %d, have %d", ErrLengthMismatch, total, len(data))
	}
	n := int(head[5].(uint64))
	payloadEnd := len(data) - crcSize
	if headerSize+n > payloadEnd {
		return Frame{}, ErrShortFrame
	}

	trailer, err := structpack.Unpack("I", data[payloadEnd:])
	if err != nil {
		return Frame{}, err
	}
	if crc32.ChecksumIEEE(data[2:payloadEnd]) != uint32(trailer[0].(uint64)) {
		return Frame{}, ErrChecksum
	}

	f := Frame{
		Format:  string(data[headerSize : headerSize+n]),
		Payload: data[headerSize+n : payloadEnd],
		Flags:   flags,
	}
	if flags&FlagCompressed != 0 {
		if f.Payload, err = decompress(f.Payload); err != nil {
			return Frame{}, err
		}
	}
	return f, nil
}

// Pack packs values with format and wraps the result in a frame.
func Pack(format string, opts Options, values ...any) ([]byte, error) {
	payload, err := structpack.Pack(format, values...)
	if err != nil {
		return nil, err
	}
	return Encode(format, payload, opts)
}

// Unpack opens a frame and unpacks its payload with the format it carries.
func Unpack(data []byte) (string, []any, error) {
	f, err := Decode(data)
	if err != nil {
		return "", nil, err
	}
	vals, err := structpack.Unpack(f.Format, f.Payload)
	if err != nil {
		return "", nil, err
	}
	return f.Format, vals, nil
}
