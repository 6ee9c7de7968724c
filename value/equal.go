// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package value

import "fmt"

// Equal reports whether a and b are structurally equal.
//
// Values of different kinds are never equal. Numbers compare by value and
// strings by content. Arrays are equal if they have the same length and
// their elements are pairwise equal in order. Objects are equal if they have
// the same number of members and each key of one maps to an equal value in
// the other, regardless of order. A nil Value is equal only to nil.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || x.Len() != y.Len() {
			return false
		} else if x.Array == y.Array {
			return true
		}
		for i, elt := range x.All() {
			if !Equal(elt, y.Get(i)) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || x.Len() != y.Len() {
			return false
		} else if x.Table == y.Table {
			return true
		}
		for key, elt := range x.All() {
			other, ok := y.Lookup(key)
			if !ok || !Equal(elt, other) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("unknown value type %T", a))
	}
}
