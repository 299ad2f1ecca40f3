package structpack

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rawbytedev/structpack/internal/common"
)

// Struct fields map to codes by kind unless tagged:
//
//	type Header struct {
//		Kind  uint8
//		Len   uint32 `structpack:"L"`
//		Extra string `structpack:"-"`
//	}
const tagName = "structpack"

type fieldInfo struct {
	idx  int
	kind reflect.Kind
	desc Descriptor
}

// codesByWidth lists the code for each kind at 1, 2, 4 and 8 bytes.
var codesByWidth = map[Kind]map[int]byte{
	KindInt:   {1: 'b', 2: 'h', 4: 'i', 8: 'q'},
	KindUint:  {1: 'B', 2: 'H', 4: 'I', 8: 'Q'},
	KindFloat: {4: 'f', 8: 'd'},
	KindBool:  {1: '?'},
}

// defaultCode picks the code matching the Go kind's signedness and size.
// int and uint always map to 8 bytes.
func defaultCode(k reflect.Kind) (byte, bool) {
	byWidth, ok := codesByWidth[fieldKind(k)]
	if !ok {
		return 0, false
	}
	code, ok := byWidth[common.FixedSize(k)]
	return code, ok
}

func fieldKind(k reflect.Kind) Kind {
	switch k {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	default:
		return 0
	}
}

// compatible reports whether a Go field of kind fk may carry code kind ck.
// Signed and unsigned integers mix; range is checked per value.
func compatible(fk, ck Kind) bool {
	isInt := func(k Kind) bool { return k == KindInt || k == KindUint }
	if isInt(fk) {
		return isInt(ck)
	}
	return fk == ck
}

// planOf walks the exported fields of t in declaration order.
func planOf(t reflect.Type) ([]fieldInfo, error) {
	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get(tagName)
		if tag == "-" {
			continue
		}
		k := sf.Type.Kind()
		code, ok := defaultCode(k)
		if !ok {
			return nil, fmt.Errorf("%w: field %s has type %s", ErrUnsupported, sf.Name, sf.Type)
		}
		if tag != "" {
			ds, err := Parse(tag)
			if err != nil {
				return nil, fmt.Errorf("structpack: field %s: %w", sf.Name, err)
			}
			if len(ds) != 1 {
				return nil, fmt.Errorf("%w: field %s tag %q must be a single code", ErrFormat, sf.Name, tag)
			}
			if !compatible(fieldKind(k), ds[0].Kind()) {
				return nil, fmt.Errorf("%w: field %s of type %s cannot use code %q", ErrUnsupported, sf.Name, sf.Type, tag)
			}
			code = ds[0].Code
		}
		fields = append(fields, fieldInfo{
			idx:  i,
			kind: k,
			desc: Descriptor{Code: code, Repeat: 1, c: lookup(rune(code))},
		})
	}
	return fields, nil
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStruct
	}
	return rv, nil
}

// FormatOf returns the format string describing the exported fields of
// the struct v (or pointer to struct).
func FormatOf(v any) (string, error) {
	rv, err := structValue(v)
	if err != nil {
		return "", err
	}
	fields, err := planOf(rv.Type())
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteByte(f.desc.Code)
	}
	return sb.String(), nil
}

// PackStruct packs the exported fields of v in declaration order.
func PackStruct(v any) ([]byte, error) {
	rv, err := structValue(v)
	if err != nil {
		return nil, err
	}
	fields, err := planOf(rv.Type())
	if err != nil {
		return nil, err
	}
	ds := make([]Descriptor, len(fields))
	values := make([]any, len(fields))
	for i, f := range fields {
		ds[i] = f.desc
		fv := rv.Field(f.idx)
		switch fieldKind(f.kind) {
		case KindBool:
			values[i] = fv.Bool()
		case KindInt:
			values[i] = fv.Int()
		case KindUint:
			values[i] = fv.Uint()
		case KindFloat:
			values[i] = fv.Float()
		}
	}
	return PackDescriptors(ds, values...)
}

// UnpackStruct decodes data into the exported fields of the struct out
// points to. out is left untouched when an error is returned.
func UnpackStruct(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	dst := rv.Elem()
	fields, err := planOf(dst.Type())
	if err != nil {
		return err
	}
	ds := make([]Descriptor, len(fields))
	for i, f := range fields {
		ds[i] = f.desc
	}
	vals, err := UnpackDescriptors(ds, data)
	if err != nil {
		return err
	}

	tmp := reflect.New(dst.Type()).Elem()
	tmp.Set(dst)
	for i, f := range fields {
		if err := setField(tmp.Field(f.idx), vals[i], f.desc.Code, i); err != nil {
			return err
		}
	}
	dst.Set(tmp)
	return nil
}

func setField(fv reflect.Value, val any, code byte, index int) error {
	overflow := func(v string) error {
		lo, hi := fieldBounds(fv.Type())
		return &RangeError{Code: code, Index: index, Value: v, Min: lo, Max: hi}
	}
	switch fieldKind(fv.Kind()) {
	case KindBool:
		fv.SetBool(val.(bool))
	case KindInt:
		switch x := val.(type) {
		case int64:
			if fv.OverflowInt(x) {
				return overflow(strconv.FormatInt(x, 10))
			}
			fv.SetInt(x)
		case uint64:
			if x > math.MaxInt64 || fv.OverflowInt(int64(x)) {
				return overflow(strconv.FormatUint(x, 10))
			}
			fv.SetInt(int64(x))
		}
	case KindUint:
		switch x := val.(type) {
		case int64:
			if x < 0 || fv.OverflowUint(uint64(x)) {
				return overflow(strconv.FormatInt(x, 10))
			}
			fv.SetUint(uint64(x))
		case uint64:
			if fv.OverflowUint(x) {
				return overflow(strconv.FormatUint(x, 10))
			}
			fv.SetUint(x)
		}
	case KindFloat:
		x := val.(float64)
		if fv.OverflowFloat(x) {
			return overflow(strconv.FormatFloat(x, 'g', -1, 64))
		}
		fv.SetFloat(x)
	}
	return nil
}

func fieldBounds(t reflect.Type) (string, string) {
	bits := t.Bits()
	switch fieldKind(t.Kind()) {
	case KindInt:
		hi := int64(^uint64(0) >> (65 - bits))
		return strconv.FormatInt(-hi-1, 10), strconv.FormatInt(hi, 10)
	case KindUint:
		return "0", strconv.FormatUint(^uint64(0)>>(64-bits), 10)
	case KindFloat:
		if bits == 32 {
			return strconv.FormatFloat(-math.MaxFloat32, 'g', -1, 64), strconv.FormatFloat(math.MaxFloat32, 'g', -1, 64)
		}
		return strconv.FormatFloat(-math.MaxFloat64, 'g', -1, 64), strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)
	}
	return "", ""
}
