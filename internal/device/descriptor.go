// Package device holds the in-memory device descriptor that the pattern
// compiler fills and the device file codec persists.
package device

import (
	"github.com/pborges/ascii01/internal/errs"
)

// NameLength is the fixed size of the name field in a device file. Names
// are stored NUL-padded, so the usable length is one less.
const NameLength = 1024

const (
	DefaultStartAddress       = 0
	DefaultAddressStepPerWord = 1
	DefaultWordLength         = 8
	DefaultAddressLength      = 8
)

// Variant selects the programming or the read-back bit order set.
type Variant int

const (
	Program Variant = iota
	Verify
)

// Variants lists both variants in file order.
var Variants = [2]Variant{Program, Verify}

func (v Variant) String() string {
	if v == Verify {
		return "verify"
	}
	return "program"
}

// Descriptor describes how a programmer lays out the data and address bits
// of a device. Numeric fields are bounded by Width.
type Descriptor struct {
	Width Width

	Name         string
	MemorySize   uint64
	BlockSize    uint64
	StartAddress uint64

	AddressStepPerWord uint8
	WordLength         uint8
	AddressLength      uint8

	WordData         [2]BitOrder
	WordAddress      [2]BitOrder
	PreBlockAddress  [2]BitOrder
	PostBlockAddress [2]BitOrder
}

// New returns a descriptor with defaults applied and every bit order empty.
func New(w Width) *Descriptor {
	d := &Descriptor{
		Width:              w,
		StartAddress:       DefaultStartAddress,
		AddressStepPerWord: DefaultAddressStepPerWord,
		WordLength:         DefaultWordLength,
		AddressLength:      DefaultAddressLength,
	}
	for _, v := range Variants {
		d.WordData[v].Clear()
		d.WordAddress[v].Clear()
		d.PreBlockAddress[v].Clear()
		d.PostBlockAddress[v].Clear()
	}
	return d
}

// Capacity is the number of meaningful entries in each bit order.
func (d *Descriptor) Capacity() int { return d.Width.Bits() }

// Orders returns the eight bit orders in device file order.
func (d *Descriptor) Orders() []*BitOrder {
	return []*BitOrder{
		&d.WordData[Program], &d.WordData[Verify],
		&d.WordAddress[Program], &d.WordAddress[Verify],
		&d.PreBlockAddress[Program], &d.PreBlockAddress[Verify],
		&d.PostBlockAddress[Program], &d.PostBlockAddress[Verify],
	}
}

// ProgramAndVerifyEqual reports whether all four program/verify pairs are
// identical over their full capacity. Output generation uses it to merge
// the two passes.
func (d *Descriptor) ProgramAndVerifyEqual() bool {
	return Identical(&d.WordData[Program], &d.WordData[Verify]) &&
		Identical(&d.WordAddress[Program], &d.WordAddress[Verify]) &&
		Identical(&d.PreBlockAddress[Program], &d.PreBlockAddress[Verify]) &&
		Identical(&d.PostBlockAddress[Program], &d.PostBlockAddress[Verify])
}

// Validate checks a fully parsed descriptor. Checks run in a fixed order
// and the first failure is returned.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return &errs.SemanticError{Field: "devicename", Message: "device name has not been set"}
	}
	if d.MemorySize < d.BlockSize {
		return &errs.SemanticError{Field: "memorysize", Message: "memory size is smaller than block size"}
	}
	if d.MemorySize == 0 {
		return &errs.SemanticError{Field: "memorysize", Message: "memory size has not been set"}
	}
	if d.BlockSize == 0 {
		return &errs.SemanticError{Field: "blocksize", Message: "block size has not been set"}
	}
	required := []struct {
		order *BitOrder
		field string
		msg   string
	}{
		{&d.WordData[Program], "programdata", "program data word bit order has not been set"},
		{&d.WordData[Verify], "verifydata", "verify data word bit order has not been set"},
		{&d.WordAddress[Program], "programaddress", "program address word bit order has not been set"},
		{&d.WordAddress[Verify], "verifyaddress", "verify address word bit order has not been set"},
	}
	for _, r := range required {
		if r.order.IsEmpty() {
			return &errs.SemanticError{Field: r.field, Message: r.msg}
		}
	}
	return nil
}
