// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package table_test

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"testing"

	"github.com/creachadair/jval/table"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

var sample = []string{"she", "sells", "sea", "shells", "by", "the", "sea", "shore"}

func mustNew[V any](t *testing.T, hash table.HashFunc, minCap int) *table.Table[V] {
	t.Helper()
	tab, err := table.New[V](hash, minCap)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return tab
}

func entries[V any](tab *table.Table[V]) map[string]V {
	out := make(map[string]V)
	for k, v := range tab.All() {
		out[k] = v
	}
	return out
}

func TestFNV1a(t *testing.T) {
	for _, s := range []string{"", "a", "foobar", "she sells sea shells", "\xff\xfe"} {
		h := fnv.New64a()
		h.Write([]byte(s))
		if got, want := table.FNV1a(mem.S(s)), h.Sum64(); got != want {
			t.Errorf("FNV1a(%q): got %#x, want %#x", s, got, want)
		}
	}
	if got := table.FNV1a(mem.S("")); got != 0xcbf29ce484222325 {
		t.Errorf("FNV1a(empty): got %#x, want offset basis", got)
	}
	if a, b := table.FNV1a(mem.S("ab\x00cd")), table.FNV1a(mem.S("ab")); a != b {
		t.Errorf("Hash does not stop at zero byte: %#x != %#x", a, b)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		minCap, want int
	}{
		{-1, 7}, {0, 7}, {7, 7}, {8, 13}, {100, 193}, {1543, 1543},
	}
	for _, tc := range tests {
		tab := mustNew[int](t, nil, tc.minCap)
		if got := tab.Cap(); got != tc.want {
			t.Errorf("New(%d): got cap %d, want %d", tc.minCap, got, tc.want)
		}
	}
	if _, err := table.New[int](nil, table.MaxCap+1); !errors.Is(err, table.ErrTooLarge) {
		t.Errorf("New(MaxCap+1): got %v, want %v", err, table.ErrTooLarge)
	}
}

func TestSetGet(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	want := make(map[string]int)
	for _, s := range sample {
		if err := tab.Set(s, len(s)); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
		want[s] = len(s)
	}
	if tab.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", tab.Len(), len(want))
	}
	for _, s := range sample {
		if !tab.Contains(s) {
			t.Errorf("Contains(%q): got false, want true", s)
		}
		if got := tab.Get(s); got != len(s) {
			t.Errorf("Get(%q): got %d, want %d", s, got, len(s))
		}
	}
	if tab.Contains("nonesuch") {
		t.Error("Contains(nonesuch): got true")
	}
	if v, ok := tab.Lookup("nonesuch"); ok || v != 0 {
		t.Errorf("Lookup(nonesuch): got %v, %v", v, ok)
	}

	// Overwriting does not change the size.
	n := tab.Len()
	tab.Set("sea", 100)
	want["sea"] = 100
	if tab.Len() != n {
		t.Errorf("Len after overwrite: got %d, want %d", tab.Len(), n)
	}
	if diff := cmp.Diff(want, entries(tab)); diff != "" {
		t.Errorf("Entries (-want, +got):\n%s", diff)
	}
}

func TestResize(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	var caps []int
	for i := range 10 {
		tab.Set(fmt.Sprint("k", i), i)
		if c := tab.Cap(); len(caps) == 0 || caps[len(caps)-1] != c {
			caps = append(caps, c)
		}
	}
	// 7 holds up to 5 keys (4 ≤ 7*2/3 before the fifth), 13 holds up to 9.
	if diff := cmp.Diff([]int{7, 13, 29}, caps); diff != "" {
		t.Errorf("Growth (-want, +got):\n%s", diff)
	}

	caps = caps[:0]
	for i := range 10 {
		tab.Delete(fmt.Sprint("k", i))
		if c := tab.Cap(); len(caps) == 0 || caps[len(caps)-1] != c {
			caps = append(caps, c)
		}
		for j := i + 1; j < 10; j++ {
			if key := fmt.Sprint("k", j); tab.Get(key) != j {
				t.Fatalf("After deleting k%d: Get(%q) = %d, want %d", i, key, tab.Get(key), j)
			}
		}
	}
	if diff := cmp.Diff([]int{29, 13, 7}, caps); diff != "" {
		t.Errorf("Shrink (-want, +got):\n%s", diff)
	}
	if tab.Len() != 0 {
		t.Errorf("Len: got %d, want 0", tab.Len())
	}
}

func TestCollisions(t *testing.T) {
	// All keys share a bucket, so every operation walks a single chain.
	tab := mustNew[string](t, func(mem.RO) uint64 { return 42 }, -1)
	for _, s := range sample {
		tab.Set(s, s+"!")
	}
	for _, s := range sample {
		if got := tab.Get(s); got != s+"!" {
			t.Errorf("Get(%q): got %q", s, got)
		}
	}
	// Chain order is insertion order.
	want := []string{"she", "sells", "sea", "shells", "by", "the", "shore"}
	if diff := cmp.Diff(want, tab.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}

	tab.Delete("sea")   // middle
	tab.Delete("she")   // head
	tab.Delete("shore") // tail
	want = []string{"sells", "shells", "by", "the"}
	if diff := cmp.Diff(want, tab.Keys()); diff != "" {
		t.Errorf("Keys after delete (-want, +got):\n%s", diff)
	}
}

func TestIterator(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	for i := range 50 {
		tab.Set(fmt.Sprintf("key-%d", i), i)
	}
	it := tab.Iter()
	seen := make(map[string]int)
	var n int
	for it.Next() {
		if it.Index() != n {
			t.Errorf("Index: got %d, want %d", it.Index(), n)
		}
		n++
		if _, ok := seen[it.Key()]; ok {
			t.Errorf("Key %q visited twice", it.Key())
		}
		seen[it.Key()] = it.Value()
	}
	if it.Next() {
		t.Error("Next after exhaustion reported true")
	}
	if diff := cmp.Diff(entries(tab), seen); diff != "" {
		t.Errorf("Iterated entries (-want, +got):\n%s", diff)
	}

	if mustNew[int](t, nil, -1).Iter().Next() {
		t.Error("Next on empty table reported true")
	}
}

func TestClear(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	for i, s := range sample {
		tab.Set(s, i)
	}
	c := tab.Cap()
	tab.Clear()
	if tab.Len() != 0 || tab.Cap() != c {
		t.Errorf("Clear: len %d cap %d, want 0, %d", tab.Len(), tab.Cap(), c)
	}
	if tab.Contains("she") {
		t.Error("Contains after Clear: got true")
	}
	tab.Set("x", 1)
	if tab.Get("x") != 1 || tab.Len() != 1 {
		t.Error("Set after Clear failed")
	}
}

func TestContractViolations(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	tab.Set("present", 1)

	for _, f := range []func(){
		func() { tab.Get("absent") },
		func() { tab.Delete("absent") },
	} {
		v := mtest.MustPanic(t, f)
		if ke, ok := v.(*table.KeyError); !ok {
			t.Errorf("Panic value is %T, want *table.KeyError", v)
		} else if ke.Key != "absent" {
			t.Errorf("KeyError.Key: got %q, want %q", ke.Key, "absent")
		}
	}
	if tab.Len() != 1 || tab.Get("present") != 1 {
		t.Error("Table modified by failed operations")
	}
}

func TestRandomOps(t *testing.T) {
	tab := mustNew[int](t, nil, -1)
	ref := make(map[string]int)
	for i := range 3000 {
		key := fmt.Sprint((i * 7919) % 613)
		if _, ok := ref[key]; ok && i%3 == 0 {
			tab.Delete(key)
			delete(ref, key)
			if tab.Contains(key) {
				t.Fatalf("Contains(%q) after Delete", key)
			}
		} else {
			if err := tab.Set(key, i); err != nil {
				t.Fatalf("Set: %v", err)
			}
			ref[key] = i
		}
		if tab.Len() != len(ref) {
			t.Fatalf("Len: got %d, want %d", tab.Len(), len(ref))
		}
	}
	if diff := cmp.Diff(ref, entries(tab)); diff != "" {
		t.Errorf("Entries (-want, +got):\n%s", diff)
	}
	keys := tab.Keys()
	sort.Strings(keys)
	if len(keys) != len(ref) {
		t.Errorf("Keys: got %d, want %d", len(keys), len(ref))
	}
}
