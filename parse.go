// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"github.com/creachadair/jval/ast"
)

// Parse parses a single JSON value from text and returns its syntax tree.
// The whole of text must be consumed: anything but whitespace after the
// value is an error. In case of error, the concrete type of the error is
// *SyntaxError and no tree is returned.
func Parse(text []byte) (*ast.Node, error) {
	p := &parser{s: NewScanner(text)}
	if err := p.s.Next(); err != nil {
		return nil, err
	}
	root, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if tok := p.s.Token(); tok != EOF {
		return nil, p.syntaxError("unexpected %v after value", tok)
	}
	return root, nil
}

// A parser is a recursive-descent parser for the JSON grammar. It holds one
// token of lookahead in its scanner.
type parser struct {
	s *Scanner
}

// eat checks that the current token is want, and advances to the next.
func (p *parser) eat(want Token) error {
	if tok := p.s.Token(); tok != want {
		return p.syntaxError("expected %v, got %v", want, tok)
	}
	return p.s.Next()
}

// parseValue consumes a single value of any type.
func (p *parser) parseValue() (*ast.Node, error) {
	switch tok := p.s.Token(); tok {
	case Null:
		return p.parseLeaf(ast.Null)
	case Bool:
		return p.parseLeaf(ast.Bool)
	case Number:
		return p.parseLeaf(ast.Number)
	case String:
		return p.parseLeaf(ast.String)
	case LSquare:
		return p.parseArray()
	case LBrace:
		return p.parseObject()
	case EOF:
		return nil, p.syntaxError("unexpected end of input")
	default:
		return nil, p.syntaxError("unexpected %v", tok)
	}
}

// parseLeaf consumes a single literal, number, or string.
func (p *parser) parseLeaf(kind ast.Kind) (*ast.Node, error) {
	tok := p.s.Token()
	n := ast.New(kind, p.s.Text().StringCopy())
	if err := p.eat(tok); err != nil {
		return nil, err
	}
	return n, nil
}

// parseArray consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
func (p *parser) parseArray() (*ast.Node, error) {
	n := ast.New(ast.Array, "[")
	if err := p.eat(LSquare); err != nil {
		return nil, err
	}
	if p.s.Token() != RSquare {
		for {
			elt, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			n.Append(elt)
			if p.s.Token() != Comma {
				break
			}
			if err := p.eat(Comma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.eat(RSquare); err != nil {
		return nil, err
	}
	return n, nil
}

// parseObject consumes zero or more comma-separated key:value members.
// Precondition: token == LBrace.
func (p *parser) parseObject() (*ast.Node, error) {
	n := ast.New(ast.Object, "{")
	if err := p.eat(LBrace); err != nil {
		return nil, err
	}
	if p.s.Token() != RBrace {
		for {
			mem, err := p.parseMember()
			if err != nil {
				return nil, err
			}
			n.Append(mem)
			if p.s.Token() != Comma {
				break
			}
			if err := p.eat(Comma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.eat(RBrace); err != nil {
		return nil, err
	}
	return n, nil
}

// parseMember consumes a single object member: "key": value.
func (p *parser) parseMember() (*ast.Node, error) {
	if tok := p.s.Token(); tok != String {
		return nil, p.syntaxError("expected object key, got %v", tok)
	}
	n := ast.New(ast.Key, p.s.Text().StringCopy())
	if err := p.eat(String); err != nil {
		return nil, err
	}
	if err := p.eat(Colon); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	n.Append(v)
	return n, nil
}

// syntaxError reports a *SyntaxError at the location of the current token.
func (p *parser) syntaxError(msg string, args ...any) error {
	return p.s.failf(p.s.tpos, msg, args...)
}
