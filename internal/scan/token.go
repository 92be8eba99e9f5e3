package scan

import (
	"fmt"

	"github.com/pborges/ascii01/internal/errs"
)

type Kind int

const (
	Quote      Kind = iota // "
	Apostrophe             // '
	Minus                  // -
	Star                   // *
	Comma                  // ,
	LParen                 // (
	RParen                 // )
	LBrace                 // {
	RBrace                 // }
	Equals                 // =
	Ident
	HexNumber
	DecNumber
	Newline
	EOF
	Unknown
)

// punctuation is indexed by Kind.
const punctuation = "\"'-*,(){}="

var kindNames = [...]string{
	Ident:     "identifier",
	HexNumber: "hex number",
	DecNumber: "decimal number",
	Newline:   "newline",
	EOF:       "end of file",
	Unknown:   "unknown symbol",
}

func (k Kind) String() string {
	if k >= Quote && k <= Equals {
		return fmt.Sprintf("'%c'", punctuation[k])
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsNumber reports whether k is a hex or decimal number.
func (k Kind) IsNumber() bool { return k == HexNumber || k == DecNumber }

// Token is one scanned symbol. Text holds the lowercased name of an
// identifier and the source text of everything else; Value holds the value
// of a number.
type Token struct {
	Kind  Kind
	Text  string
	Value uint64
	Pos   errs.Pos
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case HexNumber, DecNumber:
		return fmt.Sprintf("%s %d", t.Kind, t.Value)
	}
	return t.Kind.String()
}
