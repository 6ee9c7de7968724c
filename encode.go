// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jval/internal/escape"
	"github.com/creachadair/jval/value"

	"go4.org/mem"
)

const indentUnit = "    "

// Encode writes the JSON encoding of v to w. If pretty is true, each element
// of an array or object is written on its own line, indented four spaces per
// level of nesting; otherwise no extra whitespace is written.
//
// A nil Value is encoded as null. Encode reports an error if v contains a
// number that is not finite, or if writing to w fails.
func Encode(w io.Writer, v Value, pretty bool) error {
	e := &encoder{w: bufio.NewWriter(w), pretty: pretty}
	e.encodeValue(v, 0)
	if err := e.w.Flush(); err != nil {
		return err
	}
	return e.err
}

// Format returns the JSON encoding of v as a string, as Encode. In case of
// error it returns an empty string.
func Format(v Value, pretty bool) string {
	var buf bytes.Buffer
	if Encode(&buf, v, pretty) != nil {
		return ""
	}
	return buf.String()
}

type encoder struct {
	w      *bufio.Writer
	pretty bool
	buf    []byte // scratch
	err    error
}

func (e *encoder) encodeValue(v Value, depth int) {
	switch t := v.(type) {
	case nil, value.Null:
		e.w.WriteString("null")
	case value.Bool:
		e.w.WriteString(strconv.FormatBool(bool(t)))
	case value.Number:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			if e.err == nil {
				e.err = fmt.Errorf("unsupported number %v", f)
			}
			e.w.WriteString("null")
			return
		}
		e.buf = strconv.AppendFloat(e.buf[:0], f, 'g', -1, 64)
		e.w.Write(e.buf)
	case value.String:
		e.encodeString(string(t))
	case value.Array:
		if t.Len() == 0 {
			e.w.WriteString("[]")
			return
		}
		e.w.WriteByte('[')
		for i, elt := range t.All() {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			e.encodeValue(elt, depth+1)
		}
		e.newline(depth)
		e.w.WriteByte(']')
	case value.Object:
		if t.Len() == 0 {
			e.w.WriteString("{}")
			return
		}
		e.w.WriteByte('{')
		first := true
		for key, elt := range t.All() {
			if !first {
				e.w.WriteByte(',')
			}
			first = false
			e.newline(depth + 1)
			e.encodeString(key)
			e.w.WriteByte(':')
			if e.pretty {
				e.w.WriteByte(' ')
			}
			e.encodeValue(elt, depth+1)
		}
		e.newline(depth)
		e.w.WriteByte('}')
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (e *encoder) encodeString(s string) {
	e.buf = append(e.buf[:0], '"')
	e.buf = escape.AppendQuote(e.buf, mem.S(s))
	e.buf = append(e.buf, '"')
	e.w.Write(e.buf)
}

// newline starts a new line at the given depth, in pretty mode.
func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.w.WriteByte('\n')
	for range depth {
		e.w.WriteString(indentUnit)
	}
}
