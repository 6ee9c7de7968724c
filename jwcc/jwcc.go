// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jwcc decodes JSON With Commas and Comments (JWCC) as defined by
// https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// A JWCC document is standard JSON extended with line comments (// ...),
// block comments (/* ... */), and a trailing comma after the last element
// of an array or object. The functions in this package do not modify their
// input.
package jwcc

import (
	"slices"

	"github.com/creachadair/jval"
	"github.com/tailscale/hujson"
)

// Standardize returns the standard JSON form of a JWCC document. Comments
// and trailing commas are replaced by spaces, so that line numbers and byte
// offsets in the result match those of text.
func Standardize(text []byte) ([]byte, error) {
	return hujson.Standardize(slices.Clone(text))
}

// Decode decodes a JWCC document and returns its value.
// Errors from decoding the standardized document have concrete type
// *jval.SyntaxError, and their locations refer to positions in text.
func Decode(text []byte) (jval.Value, error) {
	std, err := Standardize(text)
	if err != nil {
		return nil, err
	}
	return jval.Decode(std)
}

// Format returns a copy of text formatted in a canonical style. Comments are
// preserved. The result is standard JSON if text is.
func Format(text []byte) ([]byte, error) {
	return hujson.Format(slices.Clone(text))
}

// Minimize returns the standard JSON form of text with all comments,
// trailing commas, and insignificant whitespace removed.
func Minimize(text []byte) ([]byte, error) {
	return hujson.Minimize(slices.Clone(text))
}

// Patch applies an RFC 6902 JSON Patch to a JWCC document and returns the
// resulting document. Comments outside the patched values are preserved.
func Patch(text, patch []byte) ([]byte, error) {
	v, err := hujson.Parse(slices.Clone(text))
	if err != nil {
		return nil, err
	}
	if err := v.Patch(patch); err != nil {
		return nil, err
	}
	return v.Pack(), nil
}
