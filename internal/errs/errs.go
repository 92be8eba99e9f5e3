// Package errs defines the error types shared by the compiler and the
// device file codec.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrIO       = errors.New("i/o error")
	ErrSyntax   = errors.New("syntax error")
	ErrSemantic = errors.New("semantic error")
	ErrCapacity = errors.New("capacity exceeded")
	ErrFormat   = errors.New("invalid device file")
)

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// IsValid reports whether p refers to a real source location.
func (p Pos) IsValid() bool { return p.Line > 0 }

func prefix(p Pos) string {
	if !p.IsValid() {
		return ""
	}
	return p.String() + ": "
}

// IOError is returned when a file cannot be opened, read or written.
type IOError struct {
	Op   string // "open", "read", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// SyntaxError reports a token that is not allowed at its grammar position.
type SyntaxError struct {
	Pos     Pos
	Message string
}

func (e *SyntaxError) Error() string { return prefix(e.Pos) + e.Message }

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// SemanticError reports a well-formed assignment that is not acceptable,
// such as a duplicate device name or an out of range bit index.
type SemanticError struct {
	Pos     Pos
	Field   string
	Message string
}

func (e *SemanticError) Error() string { return prefix(e.Pos) + e.Message }

func (e *SemanticError) Unwrap() error { return ErrSemantic }

// CapacityError reports a bit order that does not fit its fixed capacity.
type CapacityError struct {
	Pos    Pos
	What   string
	Limit  int
	Detail string
}

func (e *CapacityError) Error() string {
	msg := fmt.Sprintf("%slength of the %s exceeds the maximum of %d", prefix(e.Pos), e.What, e.Limit)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

// FormatError reports a device file that cannot be decoded at the runtime
// width. No partial descriptor accompanies it.
type FormatError struct {
	Path    string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("device file %s: %s", e.Path, msg)
	}
	return "device file: " + msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}
