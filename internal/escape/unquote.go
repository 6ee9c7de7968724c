// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
//
// Unicode escapes (\uXXXX) are validated but not decoded: they are kept in
// the unquoted text as the six characters of the escape.
package escape

import (
	"fmt"

	"go4.org/mem"
)

// An Error reports a problem with the encoding of a string.
type Error struct {
	Offset  int // byte offset of the problem in the input
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset) }

func errorf(offset int, msg string, args ...any) error {
	return &Error{Offset: offset, Message: fmt.Sprintf(msg, args...)}
}

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences other than \u are replaced with their unescaped
// equivalents. Unquote reports an *Error for an unknown or incomplete escape,
// and for an unescaped control character.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, DecodedLen(src))
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		if b < ' ' {
			return nil, errorf(i, "unescaped control %q", b)
		} else if b != '\\' {
			dec = append(dec, b)
			continue
		}

		i++
		if i == src.Len() {
			return nil, errorf(i-1, "incomplete escape sequence")
		}
		switch c := src.At(i); c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			for j := 1; j <= 4; j++ {
				if i+j >= src.Len() {
					return nil, errorf(i+j, "incomplete Unicode escape")
				} else if !isHexDigit(src.At(i + j)) {
					return nil, errorf(i+j, "invalid Unicode escape: not a hex digit: %q", src.At(i+j))
				}
			}
			dec = mem.Append(dec, src.Slice(i-1, i+5))
			i += 4
		default:
			return nil, errorf(i, "invalid %q after escape", c)
		}
	}
	return dec, nil
}

// DecodedLen reports the number of bytes needed to hold the unquoted form of
// src. The result is exact if src is validly encoded.
func DecodedLen(src mem.RO) int {
	var n int
	for i := 0; i < src.Len(); i++ {
		n++
		if src.At(i) != '\\' || i+1 == src.Len() {
			continue
		}
		i++
		if src.At(i) == 'u' {
			n += 5 // \uXXXX is kept as written
			i += 4
		}
	}
	return n
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
