package structpack

// Pack encodes values according to format. The result is the
// little-endian encoding of each field in order, with no padding and no
// header. On any error the result is nil.
func Pack(format string, values ...any) ([]byte, error) {
	ds, err := Parse(format)
	if err != nil {
		return nil, err
	}
	return PackDescriptors(ds, values...)
}

// PackDescriptors is Pack for an already parsed format.
func PackDescriptors(ds []Descriptor, values ...any) ([]byte, error) {
	if len(ds) != len(values) {
		return nil, &ArityError{Want: len(ds), Got: len(values)}
	}
	if err := resolve(ds); err != nil {
		return nil, err
	}
	size := 0
	for _, d := range ds {
		size += d.codec().width
	}
	out := make([]byte, 0, size)
	var err error
	for i, d := range ds {
		out, err = d.codec().pack(out, values[i], i)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Unpack decodes data according to format. Signed codes yield int64,
// unsigned codes uint64, '?' bool and 'f'/'d' float64. Bytes after the
// last field are ignored.
func Unpack(format string, data []byte) ([]any, error) {
	ds, err := Parse(format)
	if err != nil {
		return nil, err
	}
	return UnpackDescriptors(ds, data)
}

// UnpackDescriptors is Unpack for an already parsed format.
func UnpackDescriptors(ds []Descriptor, data []byte) ([]any, error) {
	if err := resolve(ds); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(ds))
	off := 0
	for i, d := range ds {
		c := d.codec()
		if len(data)-off < c.width {
			return nil, &BufferUnderrunError{
				Code:   c.code,
				Index:  i,
				Offset: off,
				Need:   c.width,
				Have:   len(data) - off,
			}
		}
		out = append(out, c.unpack(data[off:off+c.width]))
		off += c.width
	}
	return out, nil
}
