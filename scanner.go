// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jval/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	EOF                  // end of input
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Number               // number
	String               // quoted string
	Bool                 // constant: true or false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	EOF:     "end of input",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	Bool:    "bool",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

var (
	litNull  = mem.S("null")
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
)

// A Scanner reads lexical tokens from a text buffer.  Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	src mem.RO
	pos int // offset of the next unread byte

	// Line tracking for the current position: line is 0-based, lineStart is
	// the offset of the first byte of the line.
	line, lineStart int

	tok  Token
	text mem.RO // text of the current token
	buf  []byte // decoded string contents
	err  error

	// Start of the current token.
	tpos, tline, tcol int
}

// NewScanner constructs a new lexical scanner that consumes input from text.
// The scanner does not modify text.
func NewScanner(text []byte) *Scanner { return &Scanner{src: mem.B(text)} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, the token is EOF and Next returns nil; further
// calls continue to report EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	s.text = mem.RO{}
	s.skipSpace()
	s.tpos, s.tline, s.tcol = s.pos, s.line, s.pos-s.lineStart

	if s.pos >= s.src.Len() {
		s.tok = EOF
		return nil
	}
	ch := s.src.At(s.pos)

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.pos++
		s.tok = t
		s.text = s.src.Slice(s.tpos, s.pos)
		return nil
	}

	// Handle numbers.
	if isNumStart(ch) {
		return s.scanNumber()
	}

	// Handle string values.
	if ch == '"' {
		return s.scanString()
	}

	// Handle constants: true, false, null
	switch ch {
	case 'n':
		return s.scanName(Null, litNull)
	case 't':
		return s.scanName(Bool, litTrue)
	case 'f':
		return s.scanName(Bool, litFalse)
	}
	return s.failf(s.pos, "unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the text of the current token. For a string, this is the
// decoded contents without quotation marks; for other tokens it is the
// source text of the token. The return value is only valid until the next
// call of Next.
func (s *Scanner) Text() mem.RO { return s.text }

// Copy returns a copy of the text of the current token.
func (s *Scanner) Copy() []byte { return mem.Append(nil, s.text) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.tpos, End: s.pos} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.tline + 1, Column: s.tcol},
		Last:  LineCol{Line: s.line + 1, Column: s.pos - s.lineStart},
	}
}

func (s *Scanner) skipSpace() {
	for s.pos < s.src.Len() {
		ch := s.src.At(s.pos)
		if !isSpace(ch) {
			return
		}
		s.pos++
		if ch == '\n' {
			s.line++
			s.lineStart = s.pos
		}
	}
}

// peek returns the byte at the current position, or 0 at the end of input.
func (s *Scanner) peek() byte {
	if s.pos < s.src.Len() {
		return s.src.At(s.pos)
	}
	return 0
}

// digits consumes a run of decimal digits and reports how many there were.
func (s *Scanner) digits() int {
	start := s.pos
	for isDigit(s.peek()) {
		s.pos++
	}
	return s.pos - start
}

func (s *Scanner) scanString() error {
	// Find the closing quotation mark, skipping escaped characters.
	start := s.pos + 1
	end := start
	for {
		if end >= s.src.Len() {
			s.pos = end
			return s.failf(end, "unterminated string")
		}
		ch := s.src.At(end)
		if ch == '"' {
			break
		} else if ch == '\\' {
			end++
		}
		end++
	}

	// Presize the buffer and decode escapes.
	dec, err := escape.Unquote(s.src.Slice(start, end))
	if err != nil {
		var e *escape.Error
		if errors.As(err, &e) {
			return s.failf(start+e.Offset, "%s", e.Message)
		}
		return s.failf(start, "%v", err)
	}
	s.pos = end + 1
	s.buf = dec
	s.tok = String
	s.text = mem.B(s.buf)
	return nil
}

func (s *Scanner) scanNumber() error {
	if s.peek() == '-' {
		s.pos++
	}

	// Integer part: 0 | [1-9][0-9]*
	ipos := s.pos
	if nd := s.digits(); nd == 0 {
		return s.failf(s.pos, "want digit after sign")
	} else if nd > 1 && s.src.At(ipos) == '0' {
		// OK: 0, 0.1, -0.5; bad: 01, -01.2, 00.1
		return s.failf(ipos, "extra leading zeroes")
	}

	// Fraction: . [0-9]+
	if s.peek() == '.' {
		s.pos++
		if s.digits() == 0 {
			return s.failf(s.pos, "no digits after decimal point")
		}
	}

	// Exponent: [eE] [+-]? [0-9]+
	if ch := s.peek(); ch == 'e' || ch == 'E' {
		s.pos++
		if ch := s.peek(); ch == '+' || ch == '-' {
			s.pos++
		}
		if s.digits() == 0 {
			return s.failf(s.pos, "missing exponent digits")
		}
	}

	s.tok = Number
	s.text = s.src.Slice(s.tpos, s.pos)
	return nil
}

// scanName consumes a run of letters and checks that it matches want.
func (s *Scanner) scanName(tok Token, want mem.RO) error {
	for isAlpha(s.peek()) {
		s.pos++
	}
	if got := s.src.Slice(s.tpos, s.pos); !got.Equal(want) {
		return s.failf(s.tpos, "invalid literal %q", got.StringCopy())
	}
	s.tok = tok
	s.text = s.src.Slice(s.tpos, s.pos)
	return nil
}

// failf records and returns a *SyntaxError at the given offset.
func (s *Scanner) failf(offset int, msg string, args ...any) error {
	s.tok = Invalid
	s.err = s.errorAt(offset, fmt.Sprintf(msg, args...), nil)
	return s.err
}

// errorAt constructs a *SyntaxError for the given offset of the input.
func (s *Scanner) errorAt(offset int, msg string, err error) *SyntaxError {
	offset = min(offset, s.src.Len())
	line, start := 0, 0
	for i := 0; i < offset; i++ {
		if s.src.At(i) == '\n' {
			line++
			start = i + 1
		}
	}
	end := start
	for end < s.src.Len() && s.src.At(end) != '\n' {
		end++
	}
	return &SyntaxError{
		Location: LineCol{Line: line + 1, Column: offset - start},
		Offset:   offset,
		Message:  msg,
		Line:     strings.TrimSuffix(s.src.Slice(start, end).StringCopy(), "\r"),
		err:      err,
	}
}

// SyntaxError is the concrete type of errors reported by the scanner and
// the parser.
type SyntaxError struct {
	Location LineCol // where the error occurred
	Offset   int     // byte offset of the error in the input
	Message  string  // description of the error
	Line     string  // the text of the source line containing the error

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Snippet renders the source line containing the error, followed by a line
// with a caret marking the error column.
func (s *SyntaxError) Snippet() string {
	col := min(s.Location.Column, len(s.Line))
	pad := []byte(s.Line[:col])
	for i, b := range pad {
		if b != '\t' {
			pad[i] = ' '
		}
	}
	return s.Line + "\n" + string(pad) + "^"
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isAlpha(ch byte) bool    { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
