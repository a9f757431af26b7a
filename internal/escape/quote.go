// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

// Package escape encodes strings for inclusion in JSON text.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps the control characters with single-letter escapes.
var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel; space needs no escape
}

const hexDigits = "0123456789abcdef"

// Quote encodes src so it can appear between double quotation marks in a
// JSON string value. The surrounding quotes are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r >= utf8.RuneSelf {
			buf = appendWideRune(buf, r)
			continue
		}
		switch {
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r >= ' ':
			buf = append(buf, byte(r))
		default:
			if b := shortEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&15])
			}
		}
	}
	return buf
}

// appendWideRune appends the encoding of a non-ASCII rune. The replacement
// rune and the Unicode line and paragraph separators are written as escapes
// so the output stays safe to embed in JavaScript source.
func appendWideRune(buf []byte, r rune) []byte {
	switch r {
	case '�': // replacement rune
		return append(buf, `�`...)
	case ' ': // line separator
		return append(buf, ` `...)
	case ' ': // paragraph separator
		return append(buf, ` `...)
	}
	return utf8.AppendRune(buf, r)
}
