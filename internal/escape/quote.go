// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// quoteEsc maps the bytes that must be escaped to their escape letters.
var quoteEsc = [256]byte{
	'"':  '"',
	'\\': '\\',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

// Quote escapes src for inclusion in a JSON string. Quotation marks,
// backslashes, and the control characters BS, FF, LF, CR, and HT are escaped;
// all other bytes are copied verbatim. The enclosing quotation marks are not
// added.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()), src) }

// AppendQuote appends the escaped form of src to dst and returns the
// extended slice, as Quote.
func AppendQuote(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		i := indexEsc(src)
		if i < 0 {
			return mem.Append(dst, src)
		}
		dst = mem.Append(dst, src.SliceTo(i))
		dst = append(dst, '\\', quoteEsc[src.At(i)])
		src = src.SliceFrom(i + 1)
	}
	return dst
}

// indexEsc returns the offset of the first byte of src needing an escape, or
// -1 if there is none.
func indexEsc(src mem.RO) int {
	for i := 0; i < src.Len(); i++ {
		if quoteEsc[src.At(i)] != 0 {
			return i
		}
	}
	return -1
}
