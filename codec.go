package structpack

import (
	"math"
	"math/big"

	"github.com/rawbytedev/structpack/internal/common"
)

// Kind is the value kind a format code accepts and produces.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindUint
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "signed integer"
	case KindUint:
		return "unsigned integer"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// codec is one entry of the closed code table. min and max bound the
// integer kinds and are nil otherwise.
type codec struct {
	code  byte
	width int
	kind  Kind
	min   *big.Int
	max   *big.Int
}

var codecs = [...]codec{
	{code: 'b', width: 1, kind: KindInt},
	{code: 'B', width: 1, kind: KindUint},
	{code: '?', width: 1, kind: KindBool},
	{code: 'h', width: 2, kind: KindInt},
	{code: 'H', width: 2, kind: KindUint},
	{code: 'i', width: 4, kind: KindInt},
	{code: 'I', width: 4, kind: KindUint},
	// l and L are fixed at 4 bytes regardless of platform.
	{code: 'l', width: 4, kind: KindInt},
	{code: 'L', width: 4, kind: KindUint},
	{code: 'q', width: 8, kind: KindInt},
	{code: 'Q', width: 8, kind: KindUint},
	{code: 'f', width: 4, kind: KindFloat},
	{code: 'd', width: 8, kind: KindFloat},
}

// table is indexed by code; it is filled once in init and read-only after.
var table [128]*codec

func init() {
	for i := range codecs {
		c := &codecs[i]
		bits := uint(8 * c.width)
		switch c.kind {
		case KindInt:
			c.max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
			c.min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
		case KindUint:
			c.max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
			c.min = new(big.Int)
		}
		table[c.code] = c
	}
}

func lookup(r rune) *codec {
	if r < 0 || int(r) >= len(table) {
		return nil
	}
	return table[r]
}

func (c *codec) pack(dst []byte, v any, index int) ([]byte, error) {
	switch c.kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, c.typeError(v, index)
		}
		if b {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil
	case KindFloat:
		f, ok := toFloat(v)
		if !ok {
			return nil, c.typeError(v, index)
		}
		if c.width == 4 {
			return common.PutBits(dst, uint64(math.Float32bits(float32(f))), 4), nil
		}
		return common.PutBits(dst, math.Float64bits(f), 8), nil
	default:
		n, ok := toBigInt(v)
		if !ok {
			return nil, c.typeError(v, index)
		}
		if n.Cmp(c.min) < 0 || n.Cmp(c.max) > 0 {
			return nil, &RangeError{
				Code:  c.code,
				Index: index,
				Value: n.String(),
				Min:   c.min.String(),
				Max:   c.max.String(),
			}
		}
		var bits uint64
		if c.kind == KindInt {
			bits = uint64(n.Int64())
		} else {
			bits = n.Uint64()
		}
		return common.PutBits(dst, bits, c.width), nil
	}
}

// unpack decodes one value from b, which holds at least c.width bytes.
func (c *codec) unpack(b []byte) any {
	bits := common.Bits(b, c.width)
	switch c.kind {
	case KindBool:
		return bits != 0
	case KindFloat:
		if c.width == 4 {
			return float64(math.Float32frombits(uint32(bits)))
		}
		return math.Float64frombits(bits)
	case KindInt:
		return common.SignExtend(bits, c.width)
	default:
		return bits
	}
}

func (c *codec) typeError(v any, index int) error {
	return &TypeError{Code: c.code, Index: index, Want: c.kind, Got: typeName(v)}
}
