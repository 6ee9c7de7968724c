// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the syntax tree constructed by the JSON parser.
//
// A syntax tree is transient: the parser builds it and the evaluator
// consumes it to construct a value. A node exclusively owns its children.
package ast

import "fmt"

// Kind is the syntactic category of a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota
	Null         // text "null", no children
	Bool         // text "true" or "false", no children
	Number       // text is the number as written, no children
	String       // text is the decoded string, no children
	Array        // children are the elements
	Object       // children are Key nodes
	Key          // text is the decoded key, one child for the value
)

var kindStr = [...]string{
	Invalid: "Invalid",
	Null:    "Null",
	Bool:    "Bool",
	Number:  "Number",
	String:  "String",
	Array:   "Array",
	Object:  "Object",
	Key:     "Key",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// initialCap gives the initial child capacity of a node for each kind.
var initialCap = [...]int{
	Array:  4,
	Object: 4,
	Key:    1,
}

const growFactor = 2

// A Node is a single node of a syntax tree.
type Node struct {
	Kind Kind
	Text string

	kids []*Node
}

// New constructs a node of the given kind and text with no children.
func New(kind Kind, text string) *Node {
	n := &Node{Kind: kind, Text: text}
	if int(kind) < len(initialCap) {
		if c := initialCap[kind]; c > 0 {
			n.kids = make([]*Node, 0, c)
		}
	}
	return n
}

// Append adds child to the end of the children of n. The capacity of the
// children doubles when it is exhausted.
func (n *Node) Append(child *Node) {
	if len(n.kids) == cap(n.kids) {
		nk := make([]*Node, len(n.kids), max(cap(n.kids)*growFactor, 1))
		copy(nk, n.kids)
		n.kids = nk
	}
	n.kids = append(n.kids, child)
}

// Len reports the number of children of n.
func (n *Node) Len() int { return len(n.kids) }

// Cap reports the child capacity of n.
func (n *Node) Cap() int { return cap(n.kids) }

// Child returns the ith child of n, 0 ≤ i < n.Len().
func (n *Node) Child(i int) *Node { return n.kids[i] }

// Children returns the children of n. The caller must not modify the slice.
func (n *Node) Children() []*Node { return n.kids }

// Value returns the sole child of a Key node.
func (n *Node) Value() *Node {
	if n.Kind != Key || len(n.kids) != 1 {
		panic(fmt.Sprintf("ast: Value of %v node with %d children", n.Kind, len(n.kids)))
	}
	return n.kids[0]
}

func (n *Node) String() string {
	switch n.Kind {
	case Array, Object:
		return fmt.Sprintf("%v(len=%d)", n.Kind, len(n.kids))
	default:
		return fmt.Sprintf("%v(%q)", n.Kind, n.Text)
	}
}
