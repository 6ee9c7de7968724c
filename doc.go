// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jval implements a JSON scanner, parser, and value encoder.
//
// # Decoding
//
// Decode parses a complete JSON document and returns its value tree:
//
//	v, err := jval.Decode(input)
//	if err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//
// Lexical and syntax errors have concrete type *jval.SyntaxError, which
// reports the line and column of the problem along with the text of the
// offending source line:
//
//	var serr *jval.SyntaxError
//	if errors.As(err, &serr) {
//	   log.Printf("Error at %v:\n%s", serr.Location, serr.Snippet())
//	}
//
// String values are decoded, except that Unicode escapes (\uXXXX) are kept
// as the six characters of the escape. Numbers are stored as float64.
//
// # Values
//
// The variants of a value tree are defined by package value:
//
//	JSON type  | Go type       | Storage
//	---------- | ------------- | ---------------------------------
//	null       | value.Null    |
//	true/false | value.Bool    | bool
//	number     | value.Number  | float64
//	string     | value.String  | string
//	array      | value.Array   | *array.Array[value.Value]
//	object     | value.Object  | *table.Table[value.Value]
//
// Use Equal to compare two value trees structurally. Object member order
// does not affect equality; array element order does.
//
// # Encoding
//
// Encode writes a value tree as JSON text, either compact or indented:
//
//	if err := jval.Encode(os.Stdout, v, true); err != nil {
//	   log.Fatalf("Encode failed: %v", err)
//	}
//
// # Scanning
//
// The Scanner type implements the lexical scanner used by the parser.
// Construct a scanner from a byte slice and call its Next method to iterate
// over the tokens:
//
//	s := jval.NewScanner(input)
//	for s.Next() == nil && s.Token() != jval.EOF {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text().StringCopy())
//	}
//
// Parse exposes the syntax tree (package ast) constructed by the parser, and
// Eval converts a syntax tree into a value.
package jval
