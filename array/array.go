// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package array implements a resizable, index-addressed sequence.
//
// An Array grows by a factor of 1.5 when it is full, and shrinks by half
// when no more than a third of its capacity is in use. Indexing outside the
// live range of the array is a contract violation and panics with an
// *IndexError; callers must check bounds before access.
package array

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

const (
	defaultCap      = 4
	shrinkThreshold = 3 // shrink when len <= cap/shrinkThreshold
	shrinkFactor    = 2
)

// MaxCap is the largest capacity an Array will grow to.
// Growth beyond this limit is reported as ErrTooLarge.
var MaxCap = math.MaxInt32

// ErrTooLarge is reported when an operation would grow an array past MaxCap.
var ErrTooLarge = errors.New("array capacity limit exceeded")

// NotFound is the index reported by IndexOf when no match exists.
const NotFound = -1

// An IndexError is the panic value reported when an index is out of range.
type IndexError struct {
	Index, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("array: index %d out of bounds (len=%d)", e.Index, e.Len)
}

// An Array is a growable sequence of values of type T.
// A zero Array is not ready for use; call New.
type Array[T any] struct {
	n    int
	data []T // len(data) is the capacity
}

// New constructs an empty array with capacity for at least hint elements.
// If hint < 0, a default capacity is used.
func New[T any](hint int) *Array[T] {
	if hint < 0 {
		hint = defaultCap
	} else if hint == 0 {
		hint = 1
	}
	return &Array[T]{data: make([]T, hint)}
}

// Of constructs an array containing the specified values, with capacity
// equal to their number.
func Of[T any](vs ...T) *Array[T] {
	a := &Array[T]{data: make([]T, len(vs)), n: len(vs)}
	copy(a.data, vs)
	return a
}

// Len reports the number of elements in a.
func (a *Array[T]) Len() int { return a.n }

// Cap reports the capacity of a.
func (a *Array[T]) Cap() int { return len(a.data) }

// Get returns the element at index i, 0 ≤ i < a.Len().
func (a *Array[T]) Get(i int) T { a.check(i, a.n); return a.data[i] }

// Set replaces the element at index i, 0 ≤ i < a.Len().
func (a *Array[T]) Set(i int, v T) { a.check(i, a.n); a.data[i] = v }

// Append adds v to the end of a. If a cannot grow, it returns ErrTooLarge
// and a is not modified.
func (a *Array[T]) Append(v T) error {
	if err := a.grow(); err != nil {
		return err
	}
	a.data[a.n] = v
	a.n++
	return nil
}

// Insert adds v to a so that it is found at index i, 0 ≤ i ≤ a.Len().
// Elements at and after i are shifted up by one.  If a cannot grow, it
// returns ErrTooLarge and a is not modified.
func (a *Array[T]) Insert(i int, v T) error {
	a.check(i, a.n+1)
	if err := a.grow(); err != nil {
		return err
	}
	copy(a.data[i+1:a.n+1], a.data[i:a.n])
	a.data[i] = v
	a.n++
	return nil
}

// Delete removes the element at index i, 0 ≤ i < a.Len(), shifting the
// elements after it down by one.
func (a *Array[T]) Delete(i int) {
	a.check(i, a.n)
	a.shrink()
	copy(a.data[i:], a.data[i+1:a.n])
	a.n--
	var zero T
	a.data[a.n] = zero
}

// Pop removes and returns the last element of a. It panics if a is empty.
func (a *Array[T]) Pop() T {
	a.check(a.n-1, a.n)
	a.shrink()
	a.n--
	out := a.data[a.n]
	var zero T
	a.data[a.n] = zero
	return out
}

// Clear discards the contents of a without changing its capacity.
func (a *Array[T]) Clear() {
	clear(a.data[:a.n])
	a.n = 0
}

// Fit changes the capacity of a to be exactly a.Len().
func (a *Array[T]) Fit() { a.resize(a.n) }

// Slice returns a new array containing a shallow copy of the elements of a
// from start (inclusive) to end (exclusive). Out-of-range bounds are clamped
// to the array, and if start ≥ end the result is empty. The capacity of the
// result equals its length.
func (a *Array[T]) Slice(start, end int) *Array[T] {
	start = max(start, 0)
	end = min(end, a.n)
	if start >= end {
		return &Array[T]{}
	}
	return Of(a.data[start:end]...)
}

// IndexOf returns the index of the first element of a for which eq(needle,
// elt) is true, examining at most limit elements. If limit < 0, all the
// elements are examined. If no element matches, IndexOf returns NotFound.
func (a *Array[T]) IndexOf(needle T, limit int, eq func(a, b T) bool) int {
	if limit < 0 || limit > a.n {
		limit = a.n
	}
	for i, elt := range a.data[:limit] {
		if eq(needle, elt) {
			return i
		}
	}
	return NotFound
}

// All returns an iterator over the index/value pairs of a, in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// Iter returns an iterator positioned before the first element of a.
func (a *Array[T]) Iter() *Iterator[T] { return &Iterator[T]{arr: a, pos: -1} }

// An Iterator traverses the elements of an array in order. Once Next has
// reported false, the iterator releases its array and remains exhausted.
type Iterator[T any] struct {
	arr *Array[T]
	pos int
	cur T
}

// Next advances the iterator and reports whether an element is available.
func (it *Iterator[T]) Next() bool {
	if it.arr == nil {
		return false
	}
	it.pos++
	if it.pos >= it.arr.n {
		var zero T
		it.arr, it.cur = nil, zero
		return false
	}
	it.cur = it.arr.data[it.pos]
	return true
}

// Index reports the index of the current element.
func (it *Iterator[T]) Index() int { return it.pos }

// Value reports the current element.
func (it *Iterator[T]) Value() T { return it.cur }

func (a *Array[T]) check(i, n int) {
	if i < 0 || i >= n {
		panic(&IndexError{Index: i, Len: a.n})
	}
}

func (a *Array[T]) grow() error {
	if a.n < len(a.data) {
		return nil
	}
	c := len(a.data)
	nc := max(c+c/2, c+1)
	if nc > MaxCap {
		if c >= MaxCap {
			return ErrTooLarge
		}
		nc = MaxCap
	}
	a.resize(nc)
	return nil
}

func (a *Array[T]) shrink() {
	if a.n > len(a.data)/shrinkThreshold {
		return
	}
	nc := max(len(a.data)/shrinkFactor, a.n, 1)
	if nc < len(a.data) {
		a.resize(nc)
	}
}

func (a *Array[T]) resize(nc int) {
	if nc == len(a.data) {
		return
	}
	nd := make([]T, nc)
	copy(nd, a.data[:a.n])
	a.data = nd
}
