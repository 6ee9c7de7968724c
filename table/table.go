// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package table implements a string-keyed hash table with chained buckets.
//
// The capacity of a table is always one of a fixed schedule of prime sizes.
// A table grows to the next step of the schedule when its load exceeds 2/3,
// and shrinks to the previous step when its load falls below 1/4.
//
// Looking up or deleting a key that is not present is a contract violation
// and panics with a *KeyError; use Contains or Lookup to check first.
package table

import (
	"errors"
	"fmt"
	"iter"

	"go4.org/mem"
)

// steps is the capacity schedule. Each value is a prime roughly double the
// one before it.
var steps = [...]int{
	7, 13, 29, 53, 97, 193, 389, 769, 1543, 3079, 6151, 12289, 24593, 49157,
	98317, 196613, 393241, 786433, 1572869, 3145739, 6291469, 12582917,
	25165843, 50331653, 100663319, 201326611, 402653189, 805306457,
	1610612741,
}

// MinCap and MaxCap are the smallest and largest table capacities.
var (
	MinCap = steps[0]
	MaxCap = steps[len(steps)-1]
)

// ErrTooLarge is reported when a table would need a capacity beyond MaxCap.
var ErrTooLarge = errors.New("table capacity limit exceeded")

// A KeyError is the panic value reported when a key is not found.
type KeyError struct{ Key string }

func (e *KeyError) Error() string { return fmt.Sprintf("table: key %q not found", e.Key) }

// A HashFunc computes a hash of a key.
type HashFunc func(key mem.RO) uint64

const (
	fnvOffset64 = 0xcbf29ce484222325
	fnvPrime64  = 0x00000100000001b3
)

// FNV1a computes a 64-bit FNV-1a hash of key. Hashing stops at the first zero
// byte, if key contains one.
func FNV1a(key mem.RO) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < key.Len(); i++ {
		b := key.At(i)
		if b == 0 {
			break
		}
		h = (h ^ uint64(b)) * fnvPrime64
	}
	return h
}

type entry[V any] struct {
	key   string
	hash  uint64
	value V
	next  *entry[V]
}

// A Table maps string keys to values of type V.
// A zero Table is not ready for use; call New.
type Table[V any] struct {
	n       int
	hash    HashFunc
	buckets []*entry[V] // len(buckets) is the capacity
}

// New constructs an empty table using the given hash function. If hash ==
// nil, FNV1a is used. The capacity of the table is the smallest step that is
// at least minCap, or the smallest step if minCap < 0. New reports
// ErrTooLarge if minCap exceeds MaxCap.
func New[V any](hash HashFunc, minCap int) (*Table[V], error) {
	if hash == nil {
		hash = FNV1a
	}
	c := MinCap
	if minCap >= 0 {
		i, ok := stepAtLeast(minCap)
		if !ok {
			return nil, ErrTooLarge
		}
		c = steps[i]
	}
	return &Table[V]{hash: hash, buckets: make([]*entry[V], c)}, nil
}

// Len reports the number of keys in t.
func (t *Table[V]) Len() int { return t.n }

// Cap reports the number of buckets in t.
func (t *Table[V]) Cap() int { return len(t.buckets) }

// Contains reports whether key is present in t.
func (t *Table[V]) Contains(key string) bool { return t.find(key) != nil }

// Get returns the value associated with key. It panics if key is not present.
func (t *Table[V]) Get(key string) V {
	e := t.find(key)
	if e == nil {
		panic(&KeyError{Key: key})
	}
	return e.value
}

// Lookup returns the value associated with key, and reports whether it was
// present.
func (t *Table[V]) Lookup(key string) (V, bool) {
	if e := t.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Set associates key with value. If key is already present its value is
// replaced; otherwise a new entry is added, growing the table if necessary.
// If t cannot grow, Set reports ErrTooLarge and t is not modified.
func (t *Table[V]) Set(key string, value V) error {
	if e := t.find(key); e != nil {
		e.value = value
		return nil
	}
	if err := t.grow(); err != nil {
		return err
	}
	h := t.hash(mem.S(key))
	t.appendEntry(t.buckets, &entry[V]{key: key, hash: h, value: value})
	t.n++
	return nil
}

// Delete removes key and its value from t, shrinking the table if it has
// become sparse. It panics if key is not present.
func (t *Table[V]) Delete(key string) {
	if t.find(key) == nil {
		panic(&KeyError{Key: key})
	}
	t.shrink()

	// The bucket index must be recomputed, as shrinking may have moved key.
	h := t.hash(mem.S(key))
	i := int(h % uint64(len(t.buckets)))
	for pp := &t.buckets[i]; *pp != nil; pp = &(*pp).next {
		if e := *pp; e.hash == h && e.key == key {
			*pp = e.next
			e.next = nil
			t.n--
			return
		}
	}
	panic("table: entry lost during resize") // unreachable
}

// Clear removes all the entries from t without changing its capacity.
func (t *Table[V]) Clear() {
	clear(t.buckets)
	t.n = 0
}

// Keys returns a slice of the keys of t, in iteration order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, 0, t.n)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// All returns an iterator over the key/value pairs of t. The order of
// iteration is unspecified.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, e := range t.buckets {
			for ; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Iter returns an iterator positioned before the first entry of t.
func (t *Table[V]) Iter() *Iterator[V] { return &Iterator[V]{tab: t, slot: -1, pos: -1} }

// An Iterator traverses the entries of a table, visiting each exactly once.
// Once Next has reported false, the iterator releases its table and remains
// exhausted. The table must not be modified during iteration.
type Iterator[V any] struct {
	tab  *Table[V]
	slot int
	cur  *entry[V]
	pos  int
}

// Next advances the iterator and reports whether an entry is available.
func (it *Iterator[V]) Next() bool {
	if it.tab == nil {
		return false
	}
	it.pos++
	if it.cur != nil && it.cur.next != nil {
		it.cur = it.cur.next
		return true
	}
	for it.slot++; it.slot < len(it.tab.buckets); it.slot++ {
		if e := it.tab.buckets[it.slot]; e != nil {
			it.cur = e
			return true
		}
	}
	it.tab, it.cur = nil, nil
	return false
}

// Index reports the ordinal position of the current entry.
func (it *Iterator[V]) Index() int { return it.pos }

// Key reports the key of the current entry.
func (it *Iterator[V]) Key() string { return it.cur.key }

// Value reports the value of the current entry.
func (it *Iterator[V]) Value() V { return it.cur.value }

func (t *Table[V]) find(key string) *entry[V] {
	h := t.hash(mem.S(key))
	for e := t.buckets[h%uint64(len(t.buckets))]; e != nil; e = e.next {
		if e.hash == h && e.key == key {
			return e
		}
	}
	return nil
}

// appendEntry adds e to the end of its chain in buckets.
func (t *Table[V]) appendEntry(buckets []*entry[V], e *entry[V]) {
	pp := &buckets[e.hash%uint64(len(buckets))]
	for *pp != nil {
		pp = &(*pp).next
	}
	*pp = e
}

func (t *Table[V]) grow() error {
	if t.n <= len(t.buckets)*2/3 {
		return nil
	}
	i, ok := stepAtLeast(len(t.buckets) + 1)
	if !ok {
		return ErrTooLarge
	}
	t.resize(steps[i])
	return nil
}

func (t *Table[V]) shrink() {
	if t.n >= len(t.buckets)/4 {
		return
	}
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i] < len(t.buckets) {
			t.resize(steps[i])
			return
		}
	}
	// Already at the smallest step.
}

// resize rehashes every entry of t into a new array of nc buckets, visiting
// the old buckets in index order.
func (t *Table[V]) resize(nc int) {
	nb := make([]*entry[V], nc)
	for _, e := range t.buckets {
		for e != nil {
			next := e.next
			e.next = nil
			t.appendEntry(nb, e)
			e = next
		}
	}
	t.buckets = nb
}

// stepAtLeast returns the index of the smallest step ≥ n.
func stepAtLeast(n int) (int, bool) {
	for i, c := range steps {
		if c >= n {
			return i, true
		}
	}
	return 0, false
}
