package main

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rawbytedev/structpack"
)

// decodeValues parses a JSON array and converts numbers to what each field
// expects: integer codes get a big.Int so 64-bit values keep every digit.
func decodeValues(ds []structpack.Descriptor, raw string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var vals []any
	if err := dec.Decode(&vals); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	for i := range vals {
		if i >= len(ds) {
			break
		}
		switch v := vals[i].(type) {
		case json.Number:
			vals[i] = convertNumber(v, ds[i].Kind())
		case string:
			if f, ok := nonFinite[v]; ok && ds[i].Kind() == structpack.KindFloat {
				vals[i] = f
			}
		}
	}
	return vals, nil
}

// convertNumber leaves values it cannot convert as-is so Pack reports the
// type mismatch against the field.
func convertNumber(n json.Number, k structpack.Kind) any {
	switch k {
	case structpack.KindInt, structpack.KindUint:
		if b, ok := new(big.Int).SetString(n.String(), 10); ok {
			return b
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
	case structpack.KindFloat:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return n
}

// JSON has no NaN or infinities; they travel as these strings.
var nonFinite = map[string]float64{
	"NaN":  math.NaN(),
	"+Inf": math.Inf(1),
	"-Inf": math.Inf(-1),
}

func encodeValues(vals []any) ([]byte, error) {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
		f, ok := v.(float64)
		switch {
		case !ok:
		case math.IsNaN(f):
			out[i] = "NaN"
		case math.IsInf(f, 1):
			out[i] = "+Inf"
		case math.IsInf(f, -1):
			out[i] = "-Inf"
		}
	}
	return json.Marshal(out)
}
