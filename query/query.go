// Package query implements structural queries over JSON values.
//
// A query describes a substructure of a JSON value, such as an object
// member, array element, or a path through the value. Evaluating a query
// against a concrete JSON value traverses the structure described by the
// query and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a JSON value. For example,
// given the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value "true".
//
// Queries that construct arrays or objects return new containers, but the
// values inside them are shared with the input.
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/jval/value"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root value.Value, q Query) (value.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(value.Value) (value.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic("invalid path element")
	}
}

func kindOf(v value.Value) value.Kind {
	if v == nil {
		return value.InvalidKind
	}
	return v.Kind()
}

func wantArray(v value.Value) (value.Array, error) {
	arr, ok := v.(value.Array)
	if !ok {
		return arr, fmt.Errorf("got %v, want array", kindOf(v))
	}
	return arr, nil
}

type objKey string

func (o objKey) eval(v value.Value) (value.Value, error) {
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("got %v, want object", kindOf(v))
	}
	mem, ok := obj.Lookup(string(o))
	if !ok {
		return nil, fmt.Errorf("key %q not found", o)
	}
	return mem, nil
}

type nthQuery int

func (nq nthQuery) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	idx := int(nq)
	if idx < 0 {
		idx += arr.Len()
	}
	if idx < 0 || idx >= arr.Len() {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, arr.Len())
	}
	return arr.Get(idx), nil
}

// Selection constructs an array of the elements of its input array, for which
// the specified function returns true.
type Selection func(value.Value) bool

func (q Selection) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	out := value.NewArray(-1)
	for _, elt := range arr.All() {
		if q(elt) {
			if err := out.Append(elt); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(value.Value) value.Value

func (q Mapping) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	out := value.NewArray(arr.Len())
	for _, elt := range arr.All() {
		if err := out.Append(q(elt)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Slice selects a slice of an array from offsets lo to hi.  The range includes
// lo but excludes hi. Negative offsets select from the end of the array.
// If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	n := arr.Len()
	lox := q.lo
	if lox < 0 {
		lox += n
	}
	hix := q.hi
	if hix <= 0 {
		hix += n
	}
	if lox < 0 || lox >= n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, n)
	} else if hix < 0 || hix > n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, n)
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return value.Array{Array: arr.Slice(lox, hix)}, nil
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	out := value.NewArray(len(q))
	for _, off := range q {
		if off < 0 {
			off += arr.Len()
		}
		if off < 0 || off >= arr.Len() {
			return nil, fmt.Errorf("index %d out of range (0..%d)", off, arr.Len())
		}
		if err := out.Append(arr.Get(off)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Len returns a number representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Array:
		return value.Number(t.Len()), nil
	case value.Object:
		return value.Number(t.Len()), nil
	case value.String:
		return value.Number(len(t)), nil
	case value.Null:
		return value.Number(0), nil
	}
	return nil, fmt.Errorf("cannot take length of %v", kindOf(v))
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v value.Value) (value.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v value.Value) (value.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input and returns
// an array of the resulting values. The arguments have the same constraints as
// Path. Array elements are visited in order; the members of an object are
// visited in its iteration order.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v value.Value) (value.Value, error) {
	out := value.NewArray(-1)

	stk := []value.Value{v}
	var kids []value.Value
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			if err := out.Append(r); err != nil {
				return nil, err
			}
		}

		// N.B. Push in reverse order, so we visit in forward order.
		kids = kids[:0]
		switch t := next.(type) {
		case value.Object:
			for _, elt := range t.All() {
				kids = append(kids, elt)
			}
		case value.Array:
			for _, elt := range t.All() {
				kids = append(kids, elt)
			}
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stk = append(stk, kids[i])
		}
	}

	if out.Len() == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array.  The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v value.Value) (value.Value, error) {
	arr, err := wantArray(v)
	if err != nil {
		return nil, err
	}
	out := value.NewArray(arr.Len())
	for i, elt := range arr.All() {
		r, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		if err := out.Append(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input.
type Object map[string]Query

func (o Object) eval(v value.Value) (value.Value, error) {
	out, err := value.NewObject(len(o))
	if err != nil {
		return nil, err
	}
	for key, q := range o {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		if err := out.Set(key, val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v value.Value) (value.Value, error) {
	out := value.NewArray(len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		if err := out.Append(val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(value.String(s)) }

// A Number query ignores its input and returns the given number.
func Number(n float64) Query { return Value(value.Number(n)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(value.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(value.Null{}) }

// A Value query ignores its input and returns the given value.
func Value(v value.Value) Query { return constQuery{v} }

type constQuery struct{ value.Value }

func (c constQuery) eval(_ value.Value) (value.Value, error) { return c.Value, nil }

// A Glob query returns an array of all the values in its input, which must be
// an array or an object.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Object:
		out := value.NewArray(t.Len())
		for _, elt := range t.All() {
			if err := out.Append(elt); err != nil {
				return nil, err
			}
		}
		return out, nil
	case value.Array:
		return t, nil
	default:
		return nil, errors.New("no matching values")
	}
}
