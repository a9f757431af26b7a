// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/tailscale/hujson"
)

// Parse reads a single JSON value from r and converts it to an Entity,
// preserving the source order of object members. Duplicate object keys are
// preserved as separate members rather than collapsed, so a parsed document
// can be inspected with DuplicateKeys. Input after the first value, apart
// from whitespace, is an error.
//
// The mapping is total over JSON: a null becomes the string "null". See
// FromValue for the full kind mapping.
func Parse(r io.Reader) (Entity, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	e, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("extra input after value")
	}
	return e, nil
}

// ParseBytes parses a single JSON value from data. See Parse.
func ParseBytes(data []byte) (Entity, error) {
	return Parse(bytes.NewReader(data))
}

// ParseLenient parses a single JSON value from data after standardizing
// human-oriented extensions: comments and trailing commas are stripped
// before parsing. See Parse.
func ParseLenient(data []byte) (Entity, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize: %w", err)
	}
	return ParseBytes(std)
}

func parseValue(dec *json.Decoder) (Entity, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	} else if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return String("null"), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (Entity, error) {
	var obj Object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj = append(obj, &Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing "}"
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (Entity, error) {
	var arr Array
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // closing "]"
		return nil, err
	}
	return arr, nil
}

// numberValue maps a JSON numeral to Integer if it denotes an exact whole
// number representable as int64, otherwise to Float.
// numberValue maps a JSON numeral to Integer if it denotes an exact whole
// number representable as int64, otherwise to Float. A numeral too large
// for float64 altogether (such as 1e999) keeps its text in a String; like
// the null mapping, that fallback is total but lossy.
func numberValue(n json.Number) Entity {
	if z, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Integer(z)
	}
	if f, err := n.Float64(); err == nil {
		return floatValue(f)
	}
	return String(n.String())
}

// maxInt64Plus1 is 2^63 as an exact float64. The int64 bounds of floatValue
// cannot be written with math.MaxInt64: that constant rounds up to 2^63
// when converted to float64, and int64(2^63) wraps negative.
const maxInt64Plus1 = 1 << 63

func floatValue(f float64) Entity {
	if f == math.Trunc(f) && !math.IsInf(f, 0) &&
		f >= math.MinInt64 && f < maxInt64Plus1 {
		return Integer(int64(f))
	}
	return Float(f)
}

// FromValue converts a native Go value to an Entity. The conversion is
// total and never fails:
//
//   - map[string]any becomes an Object; Go maps are unordered, so keys are
//     sorted for determinism. Use Parse to ingest JSON text with its source
//     order intact.
//   - []any becomes an Array with elements converted in order.
//   - strings and bools become String and Bool.
//   - numbers become Integer when they denote an exact whole number,
//     otherwise Float.
//   - nil and any other value become a String holding the input's JSON text
//     representation. This keeps the conversion total at the cost of making
//     the null mapping lossy, which is deliberate: round trips are exact
//     only on the null-free subset of JSON.
func FromValue(v any) Entity {
	switch t := v.(type) {
	case nil:
		return String("null")
	case Entity:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return numberValue(t)
	case int:
		return Integer(t)
	case int8:
		return Integer(t)
	case int16:
		return Integer(t)
	case int32:
		return Integer(t)
	case int64:
		return Integer(t)
	case uint:
		if uint64(t) <= math.MaxInt64 {
			return Integer(t)
		}
		return Float(t)
	case uint8:
		return Integer(t)
	case uint16:
		return Integer(t)
	case uint32:
		return Integer(t)
	case uint64:
		if t <= math.MaxInt64 {
			return Integer(t)
		}
		return Float(t)
	case float32:
		return floatValue(float64(t))
	case float64:
		return floatValue(t)
	case map[string]any:
		obj := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj = append(obj, &Member{Key: key, Value: FromValue(t[key])})
		}
		return obj
	case []any:
		arr := make(Array, 0, len(t))
		for _, elt := range t {
			arr = append(arr, FromValue(elt))
		}
		return arr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return String(fmt.Sprint(v))
	}
	return String(data)
}
