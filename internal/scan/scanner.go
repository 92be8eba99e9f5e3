// Package scan turns pattern source text into tokens carrying their line
// and column. Scanning never fails: anything it cannot classify becomes an
// Unknown token and is left for the parser to report.
package scan

import (
	"os"
	"strings"

	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/errs"
)

// MaxIdentLength is the longest identifier accepted. Longer runs of
// letters and digits scan as a single Unknown token.
const MaxIdentLength = 255

const eof = -1

// Scanner holds the read position and the current token. Columns count
// every character including blanks; a CRLF pair is one line break.
type Scanner struct {
	src   []byte
	off   int
	width device.Width

	ch   int // current character or eof
	prev int
	line int
	col  int

	tok Token
}

// New scans the first token of src. Numbers larger than width can hold
// scan as Unknown.
func New(src []byte, width device.Width) *Scanner {
	s := &Scanner{src: src, width: width, line: 1}
	s.nextChar()
	s.Next()
	return s
}

// Open reads a source file and returns a scanner positioned at its first
// token.
func Open(path string, width device.Width) (*Scanner, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IOError{Op: "open", Path: path, Err: err}
	}
	return New(src, width), nil
}

// Current returns the current token.
func (s *Scanner) Current() Token { return s.tok }

// Line and Column return the position of the current token.
func (s *Scanner) Line() int   { return s.tok.Pos.Line }
func (s *Scanner) Column() int { return s.tok.Pos.Column }

// NextSkipNewlines advances past any newline tokens and returns the first
// token that is not one.
func (s *Scanner) NextSkipNewlines() Token {
	for s.Next().Kind == Newline {
	}
	return s.tok
}

func (s *Scanner) read() int {
	if s.off >= len(s.src) {
		return eof
	}
	c := s.src[s.off]
	s.off++
	return int(c)
}

// nextChar moves to the next character, keeping the line and column
// counters. A comment is replaced by a single '\n' at the position of its
// '!'.
func (s *Scanner) nextChar() {
	s.prev = s.ch
	s.ch = s.read()
	if s.prev == '\r' && s.ch == '\n' {
		s.ch = s.read()
	}
	if s.prev == '\r' || s.prev == '\n' {
		s.line++
		s.col = 0
	}
	s.col++
	if s.ch == '!' {
		s.skipComment()
		s.ch = '\n'
	}
}

func (s *Scanner) skipBlanks() {
	for s.ch == ' ' || s.ch == '\t' {
		s.nextChar()
	}
}

// skipComment discards the rest of the physical line and its line break.
func (s *Scanner) skipComment() {
	for s.off < len(s.src) {
		c := s.src[s.off]
		s.off++
		if c == '\n' {
			return
		}
		if c == '\r' {
			if s.off < len(s.src) && s.src[s.off] == '\n' {
				s.off++
			}
			return
		}
	}
}

// Next scans the next token, makes it current and returns it.
func (s *Scanner) Next() Token {
	s.tok = s.scan()
	return s.tok
}

func (s *Scanner) scan() Token {
	s.skipBlanks()
	pos := errs.Pos{Line: s.line, Column: s.col}
	tok := func(k Kind, text string) Token { return Token{Kind: k, Text: text, Pos: pos} }

	switch {
	case s.ch == '\r' || s.ch == '\n':
		s.nextChar()
		return tok(Newline, "\n")
	case s.ch == eof:
		return tok(EOF, "")
	}

	if i := strings.IndexByte(punctuation, byte(s.ch)); i >= 0 {
		c := string(rune(s.ch))
		s.nextChar()
		return tok(Kind(i), c)
	}

	if isDigit(s.ch) {
		return s.scanNumber(pos)
	}

	if isLetter(s.ch) {
		var sb strings.Builder
		for isLetter(s.ch) || isDigit(s.ch) {
			sb.WriteByte(toLower(byte(s.ch)))
			s.nextChar()
		}
		if sb.Len() > MaxIdentLength {
			return tok(Unknown, sb.String())
		}
		return tok(Ident, sb.String())
	}

	c := string(rune(s.ch))
	s.nextChar()
	return tok(Unknown, c)
}

func (s *Scanner) scanNumber(pos errs.Pos) Token {
	var sb strings.Builder
	t := Token{Kind: DecNumber, Pos: pos}
	overflow := false
	accumulate := func(base, digit uint64) {
		limit := s.width.MaxValue()
		if t.Value > (limit-digit)/base {
			overflow = true
			return
		}
		t.Value = t.Value*base + digit
	}

	if s.ch == '0' {
		sb.WriteByte('0')
		s.nextChar()
		if s.ch == 'x' || s.ch == 'X' {
			sb.WriteByte(byte(s.ch))
			s.nextChar()
			if !isHexDigit(s.ch) {
				t.Kind, t.Text = Unknown, sb.String()
				return t
			}
			t.Kind = HexNumber
			for isHexDigit(s.ch) {
				sb.WriteByte(byte(s.ch))
				accumulate(16, hexValue(s.ch))
				s.nextChar()
			}
			t.Text = sb.String()
			if overflow {
				t.Kind, t.Value = Unknown, 0
			}
			return t
		}
	}
	for isDigit(s.ch) {
		sb.WriteByte(byte(s.ch))
		accumulate(10, uint64(s.ch-'0'))
		s.nextChar()
	}
	t.Text = sb.String()
	if overflow {
		t.Kind, t.Value = Unknown, 0
	}
	return t
}

func isDigit(c int) bool  { return c >= '0' && c <= '9' }
func isLetter(c int) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isHexDigit(c int) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c int) uint64 {
	switch {
	case isDigit(c):
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	default:
		return uint64(c-'A') + 10
	}
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
