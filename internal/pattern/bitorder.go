package pattern

import (
	"errors"
	"log/slog"

	"github.com/pborges/ascii01/internal/bitarray"
	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/errs"
	"github.com/pborges/ascii01/internal/scan"
)

func startsSequence(k scan.Kind) bool {
	return k == scan.DecNumber || k == scan.Apostrophe || k == scan.LParen
}

func (p *parser) bitOrderDescription(kw keyword) error {
	if p.tok().Kind != scan.LBrace {
		return p.expected("'{'")
	}
	p.kw = kw
	p.bits = bitarray.New(scratchFactor * p.d.Capacity())
	p.inferred = false
	defer func() { p.bits = nil }()

	p.s.NextSkipNewlines()
	for startsSequence(p.tok().Kind) {
		if err := p.bitSequence(); err != nil {
			return err
		}
	}

	if p.d.BlockSize == 0 {
		p.d.BlockSize = p.d.MemorySize
	}

	pos := p.tok().Pos
	if p.tok().Kind == scan.Newline {
		p.s.NextSkipNewlines()
	}
	if p.tok().Kind != scan.RBrace {
		return &errs.SyntaxError{Pos: pos, Message: "',' or '}' expected"}
	}
	if err := p.store(pos); err != nil {
		return err
	}
	p.s.NextSkipNewlines()
	return nil
}

// store copies the scratch content into the descriptor fields named by the
// current keyword.
func (p *parser) store(pos errs.Pos) error {
	order, err := device.NewBitOrder(p.bits.Symbols(), p.d.Capacity())
	if err != nil {
		return &errs.CapacityError{Pos: pos, What: p.kw.name + " bit order", Limit: p.d.Capacity()}
	}
	for _, v := range p.kw.variants {
		switch {
		case !p.kw.address:
			p.d.WordData[v] = order
		case p.inferred:
			p.d.PostBlockAddress[v] = order
		default:
			p.d.WordAddress[v] = order
			p.d.PreBlockAddress[v].Clear()
			p.d.PostBlockAddress[v].Clear()
		}
	}
	slog.Debug("pattern: bit order", "keyword", p.kw.name, "order", order.String(), "block", p.inferred)
	return nil
}

func (p *parser) bitSequence() error {
	if err := p.sequenceLoop(); err != nil {
		return err
	}
	for p.tok().Kind == scan.Comma {
		p.s.NextSkipNewlines()
		if err := p.sequenceLoop(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) sequenceLoop() error {
	start := p.bits.Len()
	if err := p.sequencePart(); err != nil {
		return err
	}
	if p.tok().Kind != scan.Star {
		return nil
	}
	p.s.Next()
	if p.tok().Kind != scan.DecNumber {
		return p.expected("number")
	}
	n := p.tok().Value
	if n < 2 {
		return p.semanticf(p.kw.name, "number must be greater than 1")
	}
	end := p.bits.Len() - 1

	out, err := resolveLoop(p.bits, start, end, n-1, p.kw.address, p.d.BlockSize)
	if errors.Is(err, errAmbiguousBlock) {
		return &errs.CapacityError{Pos: p.tok().Pos, What: "bit array", Limit: p.bits.Cap(), Detail: "ambiguous block size"}
	}
	if err != nil {
		return err
	}

	switch out.Kind {
	case loopRepeated:
		p.bits = out.Bits
	case loopBlockInferred:
		if err := p.applyBlock(out); err != nil {
			return err
		}
	}
	p.s.Next()
	return nil
}

func (p *parser) applyBlock(out loopOutcome) error {
	limit := p.d.Capacity()
	pre, err := device.NewBitOrder(out.Prefix, limit)
	if err != nil {
		return &errs.CapacityError{Pos: p.tok().Pos, What: "pre-block address bit order", Limit: limit}
	}
	word, err := device.NewBitOrder(out.PerWord, limit)
	if err != nil {
		return &errs.CapacityError{Pos: p.tok().Pos, What: "word address bit order", Limit: limit}
	}
	if out.NewBlockSize {
		p.d.BlockSize = out.BlockSize
	}
	for _, v := range p.kw.variants {
		p.d.PreBlockAddress[v] = pre
		p.d.WordAddress[v] = word
	}
	p.inferred = true
	p.bits.Reset()
	slog.Debug("pattern: block inferred", "keyword", p.kw.name, "block_size", out.BlockSize, "inferred_size", out.NewBlockSize, "pos", p.tok().Pos)
	return nil
}

func (p *parser) sequencePart() error {
	switch p.tok().Kind {
	case scan.DecNumber:
		return p.rangePart()
	case scan.Apostrophe:
		return p.literal()
	case scan.LParen:
		return p.group()
	}
	return p.expected("number, ''' or '('")
}

// bitLimit is the exclusive upper bound for bit indices of the current
// keyword.
func (p *parser) bitLimit() uint64 {
	if p.kw.address {
		if !p.addressLengthSet {
			return uint64(p.d.Capacity())
		}
		return uint64(p.d.AddressLength)
	}
	return uint64(p.d.WordLength)
}

func (p *parser) bitIndex() (device.BitSymbol, error) {
	if p.tok().Kind != scan.DecNumber {
		return 0, p.expected("number")
	}
	limit := p.bitLimit()
	if p.tok().Value >= limit {
		return 0, p.semanticf(p.kw.name, "number must be less than %d", limit)
	}
	return device.Index(int(p.tok().Value)), nil
}

func (p *parser) rangePart() error {
	first, err := p.bitIndex()
	if err != nil {
		return err
	}
	last := first
	p.s.Next()
	if p.tok().Kind == scan.Minus {
		p.s.Next()
		if last, err = p.bitIndex(); err != nil {
			return err
		}
		p.s.Next()
	}
	if err := p.bits.AppendRange(first, last); err != nil {
		return p.overflow()
	}
	return nil
}

func (p *parser) literal() error {
	p.s.Next()
	if p.tok().Kind != scan.DecNumber {
		return p.expected("number")
	}
	v := p.tok().Value
	if v > 1 {
		return p.semanticf(p.kw.name, "number must be either 0 or 1")
	}
	if err := p.bits.AppendLiteral(v == 1); err != nil {
		return p.overflow()
	}
	p.s.Next()
	if p.tok().Kind != scan.Apostrophe {
		return p.expected("'''")
	}
	p.s.Next()
	return nil
}

func (p *parser) group() error {
	p.s.Next()
	if err := p.bitSequence(); err != nil {
		return err
	}
	if p.tok().Kind != scan.RParen {
		return p.expected("')'")
	}
	p.s.Next()
	return nil
}

func (p *parser) overflow() error {
	return &errs.CapacityError{Pos: p.tok().Pos, What: "bit array", Limit: p.bits.Cap()}
}
