package query

import "github.com/creachadair/jval/value"

// Exists returns a selection that reports true if its argument satisfies the
// specified query. The arguments have the same constraints as Path.
func Exists(keys ...any) Selection {
	q := Path(keys...)
	return func(v value.Value) bool {
		_, err := q.eval(v)
		return err == nil
	}
}

// Is returns a selection that reports true if its argument is of type T.
func Is[T value.Value]() Selection {
	return func(v value.Value) bool { _, ok := v.(T); return ok }
}

// IsNot returns a selection that reports true if its argument is not of type T
func IsNot[T value.Value]() Selection {
	return func(v value.Value) bool { _, ok := v.(T); return !ok }
}

// Map constructs a mapping from the given function. The resulting mapping will
// return unmodified any value whose type does not match T.
func Map[T, U value.Value](f func(T) U) Mapping {
	return func(v value.Value) value.Value {
		if w, ok := v.(T); ok {
			return f(w)
		}
		return v
	}
}

// Filter constructs a selection from the given function. The resulting
// selection will discard any value whose type does not match T.
func Filter[T value.Value](f func(T) bool) Selection {
	return func(v value.Value) bool { w, ok := v.(T); return ok && f(w) }
}

// Contains returns a selection that reports true if its argument is an array
// containing an element equal to v.
func Contains(v value.Value) Selection {
	return func(elt value.Value) bool {
		arr, ok := elt.(value.Array)
		return ok && arr.Index(v, -1) >= 0
	}
}
