package device

import (
	"fmt"
	"math"
)

// Width is the integer width a descriptor is built for. It bounds numeric
// fields and the capacity of every bit order.
type Width uint8

const (
	Width32 Width = 32
	Width64 Width = 64
)

// MaxWidth is the largest supported width and the storage size of a
// BitOrder regardless of the width in use.
const MaxWidth = int(Width64)

// ParseWidth accepts 32 or 64.
func ParseWidth(n int) (Width, error) {
	switch n {
	case 32:
		return Width32, nil
	case 64:
		return Width64, nil
	default:
		return 0, fmt.Errorf("unsupported width %d (must be 32 or 64)", n)
	}
}

func (w Width) Valid() bool { return w == Width32 || w == Width64 }

// Bits returns the width as a bit count.
func (w Width) Bits() int { return int(w) }

// Bytes returns the size in bytes of one numeric field at this width.
func (w Width) Bytes() int { return int(w) / 8 }

// MaxValue is the largest value a numeric field can hold at this width.
func (w Width) MaxValue() uint64 {
	if w == Width32 {
		return math.MaxUint32
	}
	return math.MaxUint64
}

// Fits reports whether v can be stored in a numeric field of this width.
func (w Width) Fits(v uint64) bool { return v <= w.MaxValue() }

func (w Width) String() string { return fmt.Sprintf("%d-bit", int(w)) }
