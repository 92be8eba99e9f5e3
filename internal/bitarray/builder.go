// Package bitarray implements the bounded scratch buffer the pattern
// parser uses while building one bit order expression.
package bitarray

import (
	"errors"

	"github.com/pborges/ascii01/internal/device"
)

// ErrOverflow is returned when an operation would exceed the capacity.
// The builder is left unchanged.
var ErrOverflow = errors.New("bit array capacity exceeded")

// Builder is an append-only buffer of bit symbols with a fixed capacity.
type Builder struct {
	syms []device.BitSymbol
	cap  int
}

func New(capacity int) *Builder {
	return &Builder{syms: make([]device.BitSymbol, 0, capacity), cap: capacity}
}

func (b *Builder) Len() int { return len(b.syms) }
func (b *Builder) Cap() int { return b.cap }

// Symbols returns the entries appended so far. The slice aliases the
// builder and is only valid until the next mutation.
func (b *Builder) Symbols() []device.BitSymbol { return b.syms }

// Slice returns a copy of the inclusive span [start, end].
func (b *Builder) Slice(start, end int) []device.BitSymbol {
	if start < 0 || end >= len(b.syms) || end < start {
		return nil
	}
	out := make([]device.BitSymbol, end-start+1)
	copy(out, b.syms[start:end+1])
	return out
}

// Clone returns an independent copy with the same capacity.
func (b *Builder) Clone() *Builder {
	c := New(b.cap)
	c.syms = append(c.syms, b.syms...)
	return c
}

// Reset empties the builder.
func (b *Builder) Reset() { b.syms = b.syms[:0] }

// AppendRange appends start..end inclusive, descending when end < start.
func (b *Builder) AppendRange(start, end device.BitSymbol) error {
	n := int(end) - int(start)
	step := 1
	if n < 0 {
		n, step = -n, -1
	}
	if len(b.syms)+n+1 > b.cap {
		return ErrOverflow
	}
	for i, s := 0, int(start); i <= n; i, s = i+1, s+step {
		b.syms = append(b.syms, device.BitSymbol(s))
	}
	return nil
}

// AppendLiteral appends a single LiteralZero or LiteralOne.
func (b *Builder) AppendLiteral(one bool) error {
	s := device.LiteralZero
	if one {
		s = device.LiteralOne
	}
	return b.AppendRange(s, s)
}

// Repeat inserts times further copies of the inclusive span [start, end]
// directly after end. Entries already following end are moved behind the
// copies. An empty span is a no-op.
func (b *Builder) Repeat(start, end, times int) error {
	width := end - start + 1
	if width <= 0 || times <= 0 {
		return nil
	}
	if start < 0 || end >= len(b.syms) {
		return ErrOverflow
	}
	if times > b.cap || len(b.syms)+width*times > b.cap {
		return ErrOverflow
	}
	tail := append([]device.BitSymbol(nil), b.syms[end+1:]...)
	span := append([]device.BitSymbol(nil), b.syms[start:end+1]...)
	b.syms = b.syms[:end+1]
	for i := 0; i < times; i++ {
		b.syms = append(b.syms, span...)
	}
	b.syms = append(b.syms, tail...)
	return nil
}
