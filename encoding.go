// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"strings"

	"github.com/creachadair/jval/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. Quotation marks, backslashes,
// and the control characters BS, FF, LF, CR, and HT are escaped, and double
// quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = escape.AppendQuote(buf, mem.S(src))
	return string(append(buf, '"'))
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents, except
// that Unicode escapes are kept as written.
//
// Unquote reports an error for an invalid or incomplete escape sequence, or
// an unescaped control character.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
