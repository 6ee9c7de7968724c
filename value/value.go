// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package value defines the runtime representation of JSON values.
//
// A Value is one of Null, Bool, Number, String, Array, or Object. Arrays and
// objects are handles: copying an Array or Object value copies a reference
// to the same underlying container. Use Clone to make an independent copy.
package value

import (
	"fmt"
	"strconv"

	"github.com/creachadair/jval/array"
	"github.com/creachadair/jval/table"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = iota
	NullKind
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	InvalidKind: "invalid",
	NullKind:    "null",
	BoolKind:    "bool",
	NumberKind:  "number",
	StringKind:  "string",
	ArrayKind:   "array",
	ObjectKind:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[InvalidKind]
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value.
// The concrete type is one of Null, Bool, Number, String, Array, or Object.
type Value interface {
	Kind() Kind

	isValue()
}

// Null is the JSON null constant.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) String() string { return "null" }
func (Null) isValue()       {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind       { return BoolKind }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (Bool) isValue()         {}

// A Number is a floating-point value.
type Number float64

func (Number) Kind() Kind       { return NumberKind }
func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (Number) isValue()         {}

// A String is a string value. Its contents are decoded, except that Unicode
// escapes are retained as written in the source.
type String string

func (String) Kind() Kind { return StringKind }
func (String) isValue()   {}

// An Array is a sequence of values.
// The zero Array is not ready for use; call NewArray or ArrayOf.
type Array struct{ *array.Array[Value] }

// NewArray constructs an empty array with capacity for at least hint values.
// If hint < 0, a default capacity is used.
func NewArray(hint int) Array { return Array{array.New[Value](hint)} }

// ArrayOf constructs an array containing the specified values.
func ArrayOf(vs ...Value) Array { return Array{array.Of(vs...)} }

func (Array) Kind() Kind       { return ArrayKind }
func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", a.Len()) }
func (Array) isValue()         {}

// Index returns the index of the first element of a equal to v, examining at
// most limit elements (or all, if limit < 0). It returns array.NotFound if
// no element is equal to v.
func (a Array) Index(v Value, limit int) int { return a.IndexOf(v, limit, Equal) }

// An Object is a collection of key-value members, indexed by key.
// The zero Object is not ready for use; call NewObject.
type Object struct{ *table.Table[Value] }

// NewObject constructs an empty object with capacity for at least hint
// members. If hint < 0, a default capacity is used.
func NewObject(hint int) (Object, error) {
	t, err := table.New[Value](table.FNV1a, hint)
	if err != nil {
		return Object{}, err
	}
	return Object{t}, nil
}

func (Object) Kind() Kind       { return ObjectKind }
func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", o.Len()) }
func (Object) isValue()         {}

// Clone returns a deep copy of v. Arrays and objects in the result do not
// share storage with those in v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case Array:
		out := Array{array.New[Value](t.Len())}
		for _, elt := range t.All() {
			out.Append(Clone(elt)) // cannot fail, capacity is sufficient
		}
		return out
	case Object:
		out, err := NewObject(t.Len())
		if err != nil {
			panic(err) // unreachable: t already has at least this capacity
		}
		for k, elt := range t.All() {
			if err := out.Set(k, Clone(elt)); err != nil {
				panic(err)
			}
		}
		return out
	default:
		return v
	}
}

// ToValue converts a Go value into a Value. The argument must be nil, a bool,
// a string, an int, an int64, a float64, a []any, a map[string]any, or a
// Value; ToValue panics for values of other types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		out := NewArray(len(t))
		for _, elt := range t {
			out.Append(ToValue(elt))
		}
		return out
	case map[string]any:
		out, err := NewObject(len(t))
		if err != nil {
			panic(err)
		}
		for k, elt := range t {
			if err := out.Set(k, ToValue(elt)); err != nil {
				panic(err)
			}
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// Any converts v into a plain Go value: nil, bool, float64, string, []any,
// or map[string]any. It is the inverse of ToValue for values of those types.
func Any(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		return float64(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, t.Len())
		for i, elt := range t.All() {
			out[i] = Any(elt)
		}
		return out
	case Object:
		out := make(map[string]any, t.Len())
		for k, elt := range t.All() {
			out[k] = Any(elt)
		}
		return out
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}
