package structpack

import (
	"errors"
	"fmt"
)

var (
	ErrFormat         = errors.New("structpack: bad format")
	ErrArity          = errors.New("structpack: wrong number of values")
	ErrType           = errors.New("structpack: wrong value type")
	ErrRange          = errors.New("structpack: value out of range")
	ErrBufferUnderrun = errors.New("structpack: buffer too short")

	ErrNotStruct    = errors.New("structpack: expected struct")
	ErrNotStructPtr = errors.New("structpack: expected pointer to struct")
	ErrUnsupported  = errors.New("structpack: unsupported field type")
)

// FormatError reports a character that is not a known format code.
type FormatError struct {
	Char rune
	Pos  int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("structpack: bad char %q in format at position %d", e.Char, e.Pos)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// ArityError reports a value count that differs from the format's field count.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("structpack: pack expected %d items for packing (got %d)", e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// TypeError reports a value whose kind does not fit its field code.
type TypeError struct {
	Code  byte
	Index int
	Want  Kind
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("structpack: field %d (%q) requires %s, got %s", e.Index, e.Code, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error { return ErrType }

// RangeError reports an integer that does not fit its field width.
type RangeError struct {
	Code  byte
	Index int
	Value string
	Min   string
	Max   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("structpack: field %d (%q) value %s outside [%s, %s]", e.Index, e.Code, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// BufferUnderrunError reports a field that would read past the end of the buffer.
type BufferUnderrunError struct {
	Code   byte
	Index  int
	Offset int
	Need   int
	Have   int
}

func (e *BufferUnderrunError) Error() string {
	return fmt.Sprintf("structpack: field %d (%q) at offset %d needs %d bytes, %d left",
		e.Index, e.Code, e.Offset, e.Need, e.Have)
}

func (e *BufferUnderrunError) Unwrap() error { return ErrBufferUnderrun }
