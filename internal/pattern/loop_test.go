package pattern

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pborges/ascii01/internal/bitarray"
	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/testutil"
)

func scratch(t *testing.T, capacity int, syms string) *bitarray.Builder {
	t.Helper()
	b := bitarray.New(capacity)
	for _, s := range testutil.MustSymbols(syms) {
		if err := b.AppendRange(s, s); err != nil {
			t.Fatalf("append %v: %v", s, err)
		}
	}
	return b
}

func TestResolveLoop(t *testing.T) {
	tests := []struct {
		name      string
		bits      string
		start     int
		end       int
		repeat    uint64
		address   bool
		blockSize uint64

		kind     loopKind
		expanded string
		size     uint64
		fresh    bool
		prefix   string
		perWord  string
	}{
		{
			name: "repeat fits", bits: "'1', 0-1, 5", start: 1, end: 2, repeat: 2,
			kind: loopRepeated, expanded: "'1', 0-1, 0-1, 0-1, 5",
		},
		{
			name: "address repeat fits", bits: "0-1", start: 0, end: 1, repeat: 3, address: true, blockSize: 64,
			kind: loopRepeated, expanded: "0-1, 0-1, 0-1, 0-1",
		},
		{
			name: "known block size", bits: "'1', 0-5", start: 1, end: 6, repeat: 64, address: true, blockSize: 64,
			kind: loopBlockInferred, size: 64, prefix: "'1'", perWord: "0-5",
		},
		{
			name: "small known block size", bits: "0-1", start: 0, end: 1, repeat: 2, address: true, blockSize: 2,
			kind: loopBlockInferred, size: 2, prefix: "-", perWord: "0-1",
		},
		{
			name: "inferred from overflow", bits: "'0', 0-3", start: 1, end: 4, repeat: 99, address: true,
			kind: loopBlockInferred, size: 99, fresh: true, prefix: "'0'", perWord: "0-3",
		},
		{
			name: "repeat beyond capacity", bits: "0", start: 0, end: 0, repeat: 1 << 40, address: true,
			kind: loopBlockInferred, size: 1 << 40, fresh: true, prefix: "-", perWord: "0",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits := scratch(t, 96, tc.bits)
			before := append([]device.BitSymbol(nil), bits.Symbols()...)
			got, err := resolveLoop(bits, tc.start, tc.end, tc.repeat, tc.address, tc.blockSize)
			if err != nil {
				t.Fatalf("resolveLoop: %v", err)
			}
			if !reflect.DeepEqual(bits.Symbols(), before) {
				t.Fatalf("input modified: %v", bits.Symbols())
			}
			if got.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.kind)
			}
			if tc.kind == loopRepeated {
				if !reflect.DeepEqual(got.Bits.Symbols(), testutil.MustSymbols(tc.expanded)) {
					t.Fatalf("expanded = %v", got.Bits.Symbols())
				}
				return
			}
			if got.BlockSize != tc.size || got.NewBlockSize != tc.fresh {
				t.Fatalf("block size = %d (new %v), want %d (new %v)", got.BlockSize, got.NewBlockSize, tc.size, tc.fresh)
			}
			if !reflect.DeepEqual(got.Prefix, testutil.MustSymbols(tc.prefix)) {
				t.Fatalf("prefix = %v", got.Prefix)
			}
			if !reflect.DeepEqual(got.PerWord, testutil.MustSymbols(tc.perWord)) {
				t.Fatalf("per word = %v", got.PerWord)
			}
		})
	}
}

func TestResolveLoopAmbiguous(t *testing.T) {
	tests := []struct {
		name      string
		repeat    uint64
		address   bool
		blockSize uint64
	}{
		{"data overflow", 99, false, 0},
		{"data matching block size", 99, false, 99},
		{"address overflow with other block size", 99, true, 64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits := scratch(t, 96, "0-3")
			_, err := resolveLoop(bits, 0, 3, tc.repeat, tc.address, tc.blockSize)
			if !errors.Is(err, errAmbiguousBlock) {
				t.Fatalf("got %v", err)
			}
			if bits.Len() != 4 {
				t.Fatalf("input modified: %v", bits.Symbols())
			}
		})
	}
}
