package lexer

import (
	"fmt"

	"github.com/dutow/metamorf/pkg/compiler/source"
)

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBracket
	KindSemicolon
	KindWhitespace
	KindOperator
	KindIdentifier
	KindFunctionIdentifier // identifier with trailing symbols, e.g. commit!
	KindNumeric
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindBracket:
		return "bracket"
	case KindSemicolon:
		return "semicolon"
	case KindWhitespace:
		return "whitespace"
	case KindOperator:
		return "operator"
	case KindIdentifier:
		return "identifier"
	case KindFunctionIdentifier:
		return "function_identifier"
	case KindNumeric:
		return "numeric"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token represents a lexical unit pointing back to the source.
// Text is a substring of the scanned source and shares its storage.
type Token struct {
	Kind   Kind
	Range  source.Range
	Offset int // byte index of Text in the source
	Text   string
	Err    bool // classified, but locally invalid
}

func (t Token) String() string {
	s := fmt.Sprintf("%s %s %q", t.Range.Start, t.Kind, t.Text)
	if t.Err {
		s += " (error)"
	}
	return s
}

// Stalled reports whether t is the empty operator produced when the oracle
// rejects an operator start outright. The cursor does not move past it, so
// calling Next again yields the same token.
func (t Token) Stalled() bool {
	return t.Kind == KindOperator && t.Text == ""
}

// Oracle answers whether candidate is a known operator or a proper
// prefix of one.
type Oracle func(candidate string) bool

// AcceptAll is an Oracle that accepts every candidate.
func AcceptAll(string) bool { return true }

// RejectAll is an Oracle that rejects every candidate.
func RejectAll(string) bool { return false }
