package structpack

// Descriptor is one parsed field of a format string.
type Descriptor struct {
	Code byte
	// Repeat is always 1; counts such as "3i" are not parsed.
	Repeat int

	c *codec
}

// Width returns the encoded size of the field in bytes, or 0 for an
// unknown code.
func (d Descriptor) Width() int {
	if c := d.codec(); c != nil {
		return c.width
	}
	return 0
}

// Kind returns the value kind the field accepts and produces.
func (d Descriptor) Kind() Kind {
	if c := d.codec(); c != nil {
		return c.kind
	}
	return 0
}

func (d Descriptor) codec() *codec {
	if d.c != nil {
		return d.c
	}
	return lookup(rune(d.Code))
}

// Parse splits format into one descriptor per character. Every character
// must be a known code; whitespace, digits and byte-order prefixes are
// rejected. The empty format is valid and describes an empty record.
func Parse(format string) ([]Descriptor, error) {
	ds := make([]Descriptor, 0, len(format))
	pos := 0
	for _, r := range format {
		c := lookup(r)
		if c == nil {
			return nil, &FormatError{Char: r, Pos: pos}
		}
		ds = append(ds, Descriptor{Code: c.code, Repeat: 1, c: c})
		pos++
	}
	return ds, nil
}

// resolve checks that every descriptor names a known code.
func resolve(ds []Descriptor) error {
	for i, d := range ds {
		if d.codec() == nil {
			return &FormatError{Char: rune(d.Code), Pos: i}
		}
	}
	return nil
}
