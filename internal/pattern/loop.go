package pattern

import (
	"errors"

	"github.com/pborges/ascii01/internal/bitarray"
	"github.com/pborges/ascii01/internal/device"
)

// errAmbiguousBlock is returned by resolveLoop when the repeat neither fits
// the bit array nor can be read as a block size.
var errAmbiguousBlock = errors.New("ambiguous block size")

type loopKind int

const (
	loopRepeated loopKind = iota
	loopBlockInferred
)

// loopOutcome is the interpretation chosen for "part * N".
//
// loopRepeated: Bits holds the whole scratch content with the part
// expanded N times.
//
// loopBlockInferred: the part occurs once per word of a block. Prefix holds
// the entries before the part, PerWord the part itself and BlockSize the
// block size it implies. NewBlockSize is set when the block size was
// inferred from the count rather than matched against a known one.
type loopOutcome struct {
	Kind loopKind

	Bits *bitarray.Builder

	BlockSize    uint64
	NewBlockSize bool
	Prefix       []device.BitSymbol
	PerWord      []device.BitSymbol
}

// resolveLoop decides what "part * N" means. bits is the scratch content
// with the part occupying [start, end]; repeat is N-1. Address
// descriptions read the loop as a block when repeat matches the known
// block size, or when the literal repeat overflows and no block size is
// known yet. bits is not modified.
func resolveLoop(bits *bitarray.Builder, start, end int, repeat uint64, address bool, blockSize uint64) (loopOutcome, error) {
	inferred := func(size uint64, fresh bool) loopOutcome {
		prefix := bits.Slice(0, start-1)
		if prefix == nil {
			prefix = []device.BitSymbol{}
		}
		perWord := bits.Slice(start, end)
		if perWord == nil {
			perWord = []device.BitSymbol{}
		}
		return loopOutcome{
			Kind:         loopBlockInferred,
			BlockSize:    size,
			NewBlockSize: fresh,
			Prefix:       prefix,
			PerWord:      perWord,
		}
	}

	if address && blockSize != 0 && repeat == blockSize {
		return inferred(blockSize, false), nil
	}

	expanded := bits.Clone()
	err := bitarray.ErrOverflow
	if repeat <= uint64(expanded.Cap()) {
		err = expanded.Repeat(start, end, int(repeat))
	}
	if err == nil {
		return loopOutcome{Kind: loopRepeated, Bits: expanded}, nil
	}
	if address && blockSize == 0 {
		return inferred(repeat, true), nil
	}
	return loopOutcome{}, errAmbiguousBlock
}
