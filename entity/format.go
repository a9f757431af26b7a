// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import (
	"bytes"
	"io"

	"go4.org/mem"

	"github.com/croussille/jent/internal/escape"
)

// A Formatter carries the settings for rendering the canonical form of an
// entity. A zero value is ready for use with default settings.
type Formatter struct{}

func (Formatter) indent() string { return "  " }

// Marshal renders the canonical JSON form of e with default settings:
// 2-space indentation, member order equal to entity order, no trailing
// newline. It reports a *DuplicateKeyError if any object in the tree has
// duplicate keys; this is the single validation gate, entities with
// colliding keys may exist in memory but can never be serialized.
func Marshal(e Entity) ([]byte, error) {
	var f Formatter
	return f.Marshal(e)
}

// Format renders the canonical JSON form of e to w with default settings.
func Format(w io.Writer, e Entity) error {
	var f Formatter
	return f.Format(w, e)
}

// Marshal renders the canonical JSON form of e using the settings from f.
func (f Formatter) Marshal(e Entity) ([]byte, error) {
	if dups := DuplicateKeys(e); len(dups) != 0 {
		return nil, &DuplicateKeyError{Keys: dups}
	}
	var buf bytes.Buffer
	f.formatValue(&buf, e, "")
	return buf.Bytes(), nil
}

// Format renders the canonical JSON form of e to w using the settings from f.
func (f Formatter) Format(w io.Writer, e Entity) error {
	data, err := f.Marshal(e)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// formatValue writes a rendering of e to buf, with nested lines indented one
// step past indent. Empty containers render compactly.
func (f Formatter) formatValue(buf *bytes.Buffer, e Entity, indent string) {
	switch t := e.(type) {
	case Object:
		if len(t) == 0 {
			buf.WriteString("{}")
			return
		}
		mdent := indent + f.indent()
		buf.WriteString("{\n")
		for i, m := range t {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(mdent)
			buf.WriteString(quote(m.Key))
			buf.WriteString(": ")
			f.formatValue(buf, m.Value, mdent)
		}
		buf.WriteString("\n")
		buf.WriteString(indent)
		buf.WriteByte('}')

	case Array:
		if len(t) == 0 {
			buf.WriteString("[]")
			return
		}
		adent := indent + f.indent()
		buf.WriteString("[\n")
		for i, v := range t {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(adent)
			f.formatValue(buf, v, adent)
		}
		buf.WriteString("\n")
		buf.WriteString(indent)
		buf.WriteByte(']')

	default:
		buf.WriteString(e.JSON())
	}
}

// quote encodes s as a JSON string value, escaped and double-quoted.
func quote(s string) string {
	esc := escape.Quote(mem.S(s))
	buf := make([]byte, 0, len(esc)+2)
	buf = append(buf, '"')
	buf = append(buf, esc...)
	buf = append(buf, '"')
	return string(buf)
}
