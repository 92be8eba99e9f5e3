package bitarray

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pborges/ascii01/internal/device"
)

const (
	L0 = device.LiteralZero
	L1 = device.LiteralOne
)

func TestBuilderSequence(t *testing.T) {
	b := New(12)
	if err := b.AppendLiteral(true); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRange(5, 5); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendLiteral(false); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRange(6, 3); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 7 {
		t.Fatalf("len = %d, want 7", b.Len())
	}

	if err := b.Repeat(3, 4, 3); !errors.Is(err, ErrOverflow) {
		t.Fatalf("repeat(3,4,3) = %v, want overflow", err)
	}
	if b.Len() != 7 {
		t.Fatalf("failed repeat changed length to %d", b.Len())
	}

	if err := b.Repeat(3, 4, 2); err != nil {
		t.Fatalf("repeat(3,4,2): %v", err)
	}
	want := []device.BitSymbol{L1, 5, L0, 6, 5, 6, 5, 6, 5, 4, 3}
	if !reflect.DeepEqual(b.Symbols(), want) {
		t.Fatalf("got %v, want %v", b.Symbols(), want)
	}

	if err := b.Repeat(5, 3, 1); err != nil {
		t.Fatalf("empty span repeat: %v", err)
	}
	if b.Len() != 11 {
		t.Fatalf("empty span repeat changed length")
	}

	if err := b.AppendRange(9, 9); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 12 {
		t.Fatalf("len = %d, want 12", b.Len())
	}
	if err := b.AppendRange(8, 8); !errors.Is(err, ErrOverflow) {
		t.Fatalf("append past capacity = %v", err)
	}
}

func TestAppendRange(t *testing.T) {
	tests := []struct {
		start, end device.BitSymbol
		want       []device.BitSymbol
	}{
		{0, 3, []device.BitSymbol{0, 1, 2, 3}},
		{6, 3, []device.BitSymbol{6, 5, 4, 3}},
		{7, 7, []device.BitSymbol{7}},
		{L1, L1, []device.BitSymbol{L1}},
	}
	for _, tc := range tests {
		b := New(8)
		if err := b.AppendRange(tc.start, tc.end); err != nil {
			t.Fatalf("AppendRange(%d,%d): %v", tc.start, tc.end, err)
		}
		if !reflect.DeepEqual(b.Symbols(), tc.want) {
			t.Errorf("AppendRange(%d,%d) = %v, want %v", tc.start, tc.end, b.Symbols(), tc.want)
		}
	}
}

func TestAppendRangeOverflowLeavesState(t *testing.T) {
	b := New(4)
	if err := b.AppendRange(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRange(0, 2); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if !reflect.DeepEqual(b.Symbols(), []device.BitSymbol{0, 1}) {
		t.Fatalf("state changed: %v", b.Symbols())
	}
}

func TestRepeatShiftsTail(t *testing.T) {
	b := New(16)
	_ = b.AppendRange(0, 1)
	_ = b.AppendRange(9, 9)
	if err := b.Repeat(0, 1, 2); err != nil {
		t.Fatal(err)
	}
	want := []device.BitSymbol{0, 1, 0, 1, 0, 1, 9}
	if !reflect.DeepEqual(b.Symbols(), want) {
		t.Fatalf("got %v, want %v", b.Symbols(), want)
	}
	if got := b.Slice(2, 3); !reflect.DeepEqual(got, []device.BitSymbol{0, 1}) {
		t.Fatalf("slice = %v", got)
	}
	b.Reset()
	if b.Len() != 0 || b.Cap() != 16 {
		t.Fatalf("reset: len %d cap %d", b.Len(), b.Cap())
	}
}
