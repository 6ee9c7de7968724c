// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jval/ast"
	"github.com/creachadair/jval/value"
)

// Value is an arbitrary JSON value. See package value for its variants.
type Value = value.Value

// Decode parses text as a single JSON value and returns its value tree.
// The input is not modified. Lexical and syntax errors have concrete type
// *SyntaxError. In case of error, no value is returned.
func Decode(text []byte) (Value, error) {
	root, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Eval(root)
}

// DecodeString is Decode for a string argument.
func DecodeString(text string) (Value, error) { return Decode([]byte(text)) }

// Equal reports whether a and b are structurally equal. See value.Equal.
func Equal(a, b Value) bool { return value.Equal(a, b) }

// Eval constructs the value described by a syntax tree.
func Eval(n *ast.Node) (Value, error) {
	switch n.Kind {
	case ast.Null:
		return value.Null{}, nil

	case ast.Bool:
		return value.Bool(n.Text == "true"), nil

	case ast.Number:
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", n.Text, err)
		}
		return value.Number(f), nil

	case ast.String:
		return value.String(n.Text), nil

	case ast.Array:
		out := value.NewArray(n.Len())
		for _, elt := range n.Children() {
			v, err := Eval(elt)
			if err != nil {
				return nil, err
			}
			if err := out.Append(v); err != nil {
				return nil, fmt.Errorf("array element: %w", err)
			}
		}
		return out, nil

	case ast.Object:
		out, err := value.NewObject(n.Len())
		if err != nil {
			return nil, fmt.Errorf("object: %w", err)
		}
		for _, mem := range n.Children() {
			if mem.Kind != ast.Key {
				panic(fmt.Sprintf("object member is %v, not Key", mem.Kind))
			}
			v, err := Eval(mem.Value())
			if err != nil {
				return nil, err
			}
			if err := out.Set(mem.Text, v); err != nil {
				return nil, fmt.Errorf("object member %q: %w", mem.Text, err)
			}
		}
		return out, nil

	default:
		panic(fmt.Sprintf("unexpected %v node", n.Kind))
	}
}
