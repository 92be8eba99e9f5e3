package device

import (
	"fmt"
	"strings"
)

// BitSymbol is one entry of a bit order: a bit index (>= 0) or one of the
// negative markers below.
type BitSymbol int8

const (
	Unused      BitSymbol = -1
	LiteralZero BitSymbol = -2
	LiteralOne  BitSymbol = -3
)

// Index returns the symbol for bit n.
func Index(n int) BitSymbol { return BitSymbol(n) }

func (s BitSymbol) IsIndex() bool   { return s >= 0 }
func (s BitSymbol) IsLiteral() bool { return s == LiteralZero || s == LiteralOne }

// Valid reports whether s is a known symbol. Bit indices must be below
// width.
func (s BitSymbol) Valid(w Width) bool {
	if s >= 0 {
		return int(s) < w.Bits()
	}
	return s >= LiteralOne
}

func (s BitSymbol) String() string {
	switch s {
	case Unused:
		return "-"
	case LiteralZero:
		return "'0'"
	case LiteralOne:
		return "'1'"
	}
	return fmt.Sprintf("%d", int(s))
}

// BitOrder is a fixed-capacity symbol sequence terminated by the first
// Unused entry. Storage is always MaxWidth long; only the first
// Width.Bits() entries are meaningful for a given descriptor and the rest
// stay Unused.
type BitOrder [MaxWidth]BitSymbol

// EmptyBitOrder returns an order filled with Unused.
func EmptyBitOrder() BitOrder {
	var o BitOrder
	o.Clear()
	return o
}

// NewBitOrder copies syms into a fresh order. It fails if syms is longer
// than capacity.
func NewBitOrder(syms []BitSymbol, capacity int) (BitOrder, error) {
	o := EmptyBitOrder()
	if capacity > MaxWidth {
		capacity = MaxWidth
	}
	if len(syms) > capacity {
		return o, fmt.Errorf("bit order of length %d exceeds capacity %d", len(syms), capacity)
	}
	copy(o[:], syms)
	return o, nil
}

// MustBitOrder is NewBitOrder at MaxWidth that panics on overflow. Meant
// for tables and tests.
func MustBitOrder(syms ...BitSymbol) BitOrder {
	o, err := NewBitOrder(syms, MaxWidth)
	if err != nil {
		panic(err)
	}
	return o
}

// Clear resets every entry to Unused.
func (o *BitOrder) Clear() {
	for i := range o {
		o[i] = Unused
	}
}

// Len returns the effective length: the index of the first Unused entry,
// or the full capacity if there is none.
func (o *BitOrder) Len() int {
	for i, s := range o {
		if s == Unused {
			return i
		}
	}
	return len(o)
}

// IsEmpty reports whether the first entry is Unused.
func (o *BitOrder) IsEmpty() bool { return o[0] == Unused }

// Symbols returns the effective prefix.
func (o *BitOrder) Symbols() []BitSymbol {
	out := make([]BitSymbol, o.Len())
	copy(out, o[:])
	return out
}

// Equal compares two orders up to and including the first terminator.
// Entries past a terminator are ignored.
func Equal(a, b *BitOrder) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
		if a[i] == Unused {
			return true
		}
	}
	return true
}

// Identical compares every stored entry, terminator or not.
func Identical(a, b *BitOrder) bool { return *a == *b }

func (o BitOrder) String() string {
	n := o.Len()
	if n == 0 {
		return "-"
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = o[i].String()
	}
	return strings.Join(parts, ", ")
}
