// Package pattern compiles a programming pattern source into a device
// descriptor.
//
// Grammar:
//
//	ProgrammingPattern  = { Assignment } .
//	Assignment          = ident '=' ( String | Number | BitOrderDescription ) .
//	String              = '"' ident '"' .
//	Number              = hexnumber | decnumber .
//	BitOrderDescription = '{' BitSequence '}' .
//	BitSequence         = SequenceLoop { ',' SequenceLoop } .
//	SequenceLoop        = SequencePart [ '*' decnumber ] .
//	SequencePart        = Range | Literal | Group .
//	Range               = decnumber [ '-' decnumber ] .
//	Literal             = "'" decnumber "'" .
//	Group               = '(' BitSequence ')' .
package pattern

import (
	"fmt"
	"log/slog"

	"github.com/pborges/ascii01/internal/bitarray"
	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/errs"
	"github.com/pborges/ascii01/internal/scan"
)

type valueKind int

const (
	stringValue valueKind = iota
	numberValue
	bitOrderValue
)

type keyword struct {
	name     string
	kind     valueKind
	address  bool
	variants []device.Variant
}

var (
	both        = []device.Variant{device.Program, device.Verify}
	programOnly = []device.Variant{device.Program}
	verifyOnly  = []device.Variant{device.Verify}
)

var keywords = map[string]keyword{
	"devicename":     {name: "devicename", kind: stringValue},
	"memorysize":     {name: "memorysize", kind: numberValue},
	"blocksize":      {name: "blocksize", kind: numberValue},
	"startaddress":   {name: "startaddress", kind: numberValue},
	"addressstep":    {name: "addressstep", kind: numberValue},
	"wordlength":     {name: "wordlength", kind: numberValue},
	"addresslength":  {name: "addresslength", kind: numberValue},
	"programdata":    {name: "programdata", kind: bitOrderValue, variants: programOnly},
	"verifydata":     {name: "verifydata", kind: bitOrderValue, variants: verifyOnly},
	"data":           {name: "data", kind: bitOrderValue, variants: both},
	"programaddress": {name: "programaddress", kind: bitOrderValue, address: true, variants: programOnly},
	"verifyaddress":  {name: "verifyaddress", kind: bitOrderValue, address: true, variants: verifyOnly},
	"address":        {name: "address", kind: bitOrderValue, address: true, variants: both},
}

// scratchFactor sizes the scratch bit array relative to a bit order.
const scratchFactor = 3

type parser struct {
	s *scan.Scanner
	d *device.Descriptor

	// addressLengthSet records an explicit addresslength assignment.
	// Until then address bit indices are bounded by the width only.
	addressLengthSet bool

	// assigned holds the keywords assigned so far, for the set-once checks.
	assigned map[string]bool

	// state of the bit order description being parsed
	kw       keyword
	bits     *bitarray.Builder
	inferred bool
}

// Parse compiles src at the given width. On failure no descriptor is
// returned.
func Parse(src []byte, width device.Width) (*device.Descriptor, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("unsupported width %d", int(width))
	}
	return parse(scan.New(src, width), width)
}

// ParseFile compiles the source file at path.
func ParseFile(path string, width device.Width) (*device.Descriptor, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("unsupported width %d", int(width))
	}
	s, err := scan.Open(path, width)
	if err != nil {
		return nil, err
	}
	d, err := parse(s, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func parse(s *scan.Scanner, width device.Width) (*device.Descriptor, error) {
	p := &parser{s: s, d: device.New(width), assigned: map[string]bool{}}
	if err := p.programmingPattern(); err != nil {
		return nil, err
	}
	return p.d, nil
}

func (p *parser) tok() scan.Token { return p.s.Current() }

func (p *parser) syntaxf(format string, args ...any) error {
	return &errs.SyntaxError{Pos: p.tok().Pos, Message: fmt.Sprintf(format, args...)}
}

// expected reports that want was expected where the current token is.
func (p *parser) expected(want string) error {
	return p.syntaxf("%s expected, found %s", want, p.tok())
}

func (p *parser) semanticf(field, format string, args ...any) error {
	return &errs.SemanticError{Pos: p.tok().Pos, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) programmingPattern() error {
	if p.tok().Kind == scan.Newline {
		p.s.NextSkipNewlines()
	}
	for p.tok().Kind == scan.Ident {
		if err := p.assignment(); err != nil {
			return err
		}
	}
	if p.tok().Kind != scan.EOF {
		return p.syntaxf("unexpected symbol: %s", p.tok())
	}
	if p.d.BlockSize == 0 {
		p.d.BlockSize = p.d.MemorySize
	}
	return p.d.Validate()
}

func (p *parser) assignment() error {
	name := p.tok().Text
	kw, ok := keywords[name]
	if !ok {
		return p.syntaxf("unknown keyword %q", name)
	}
	p.s.Next()
	if p.tok().Kind != scan.Equals {
		return p.expected("'='")
	}
	p.s.Next()

	switch p.tok().Kind {
	case scan.Quote:
		if kw.kind != stringValue {
			return p.wrongValue(kw)
		}
		return p.stringValue(kw)
	case scan.HexNumber, scan.DecNumber:
		if kw.kind != numberValue {
			return p.wrongValue(kw)
		}
		return p.number(kw)
	case scan.Newline:
		// only a bit order description may start on the next line
		p.s.NextSkipNewlines()
		fallthrough
	case scan.LBrace:
		if kw.kind != bitOrderValue {
			return p.wrongValue(kw)
		}
		return p.bitOrderDescription(kw)
	}
	return p.expected("string, number or bit sequence")
}

func (p *parser) wrongValue(kw keyword) error {
	switch kw.kind {
	case stringValue:
		return p.syntaxf("'\"' expected after %q keyword", kw.name)
	case numberValue:
		return p.syntaxf("number expected after %q keyword", kw.name)
	}
	return p.syntaxf("'{' expected after %q keyword", kw.name)
}

func (p *parser) stringValue(kw keyword) error {
	p.s.Next()
	if p.tok().Kind != scan.Ident {
		return p.expected("identifier")
	}
	if p.assigned[kw.name] || p.d.Name != "" {
		return p.semanticf(kw.name, "device name has already been set")
	}
	p.d.Name = p.tok().Text
	p.assigned[kw.name] = true
	p.s.Next()
	if p.tok().Kind != scan.Quote {
		return p.expected("'\"'")
	}
	p.s.NextSkipNewlines()
	return nil
}

func (p *parser) number(kw keyword) error {
	v := p.tok().Value
	width := uint64(p.d.Width.Bits())
	switch kw.name {
	case "memorysize":
		if p.assigned[kw.name] || p.d.MemorySize != 0 {
			return p.semanticf(kw.name, "memory size has already been set")
		}
		p.d.MemorySize = v
	case "blocksize":
		if p.assigned[kw.name] || p.d.BlockSize != 0 {
			return p.semanticf(kw.name, "block size has already been set")
		}
		if v == 0 {
			return p.semanticf(kw.name, "block size must be greater than 0")
		}
		p.d.BlockSize = v
	case "startaddress":
		p.d.StartAddress = v
	case "addressstep":
		if v > 255 {
			return p.semanticf(kw.name, "address step must not exceed 255")
		}
		p.d.AddressStepPerWord = uint8(v)
	case "wordlength":
		if v == 0 || v%8 != 0 {
			return p.semanticf(kw.name, "word length must be a non-zero multiple of 8")
		}
		if v > width {
			return p.semanticf(kw.name, "word length must not exceed %d", width)
		}
		p.d.WordLength = uint8(v)
	case "addresslength":
		if v == 0 || v > width {
			return p.semanticf(kw.name, "address length must be between 1 and %d", width)
		}
		p.d.AddressLength = uint8(v)
		p.addressLengthSet = true
	}
	p.assigned[kw.name] = true
	slog.Debug("pattern: number", "keyword", kw.name, "value", v, "pos", p.tok().Pos)
	p.s.NextSkipNewlines()
	return nil
}
