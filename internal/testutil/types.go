// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jval"
	"github.com/google/go-cmp/cmp"
)

// ValueComparer is a cmp option that compares JSON values structurally with
// jval.Equal, so that value trees can be used with cmp.Diff.
var ValueComparer = cmp.Comparer(jval.Equal)

// MustDecode decodes text as a JSON value, or fails t.
func MustDecode(t testing.TB, text string) jval.Value {
	t.Helper()
	v, err := jval.DecodeString(text)
	if err != nil {
		t.Fatalf("Decode %#q: unexpected error: %v", text, err)
	}
	return v
}

// MustFail checks that decoding text reports a syntax error, and returns it.
func MustFail(t testing.TB, text string) *jval.SyntaxError {
	t.Helper()
	v, err := jval.DecodeString(text)
	if err == nil {
		t.Fatalf("Decode %#q: got %s, want error", text, jval.Format(v, false))
	}
	serr, ok := err.(*jval.SyntaxError)
	if !ok {
		t.Fatalf("Decode %#q: got error %[2]T (%[2]v), want *SyntaxError", text, err)
	}
	return serr
}
