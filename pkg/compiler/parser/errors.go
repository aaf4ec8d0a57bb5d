package parser

import (
	"errors"
	"fmt"

	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/source"
)

// Reason classifies a parse failure. Every Reason is an error, so
// errors.Is(err, ErrUnknownStatementStart) works on an *Error.
type Reason int

const (
	ErrExpectedTokenKind Reason = iota + 1
	ErrExpectedTokenText
	ErrInvalidToken
	ErrUnknownStatementStart
	ErrUnterminatedBlock
)

func (r Reason) Error() string {
	switch r {
	case ErrExpectedTokenKind:
		return "unexpected token kind"
	case ErrExpectedTokenText:
		return "unexpected token text"
	case ErrInvalidToken:
		return "invalid token"
	case ErrUnknownStatementStart:
		return "unknown statement start"
	case ErrUnterminatedBlock:
		return "unterminated block"
	default:
		return "parse error"
	}
}

// Error is a parse failure: which requirement failed and what was found
// instead.
type Error struct {
	Reason   Reason
	File     string
	Want     lexer.Kind
	WantText string // empty when any text of kind Want would do
	Got      lexer.Token
}

func (e *Error) Error() string {
	loc := e.Got.Range.Start.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return loc + ": " + e.Detail()
}

// Detail describes the failure without its location.
func (e *Error) Detail() string {
	switch e.Reason {
	case ErrExpectedTokenKind:
		return fmt.Sprintf("expected %s, got %s", describe(e.Want, e.WantText), found(e.Got))
	case ErrExpectedTokenText:
		return fmt.Sprintf("expected %q, got %q", e.WantText, e.Got.Text)
	case ErrInvalidToken:
		if e.Got.Stalled() {
			return "invalid token: unknown operator"
		}
		return fmt.Sprintf("invalid %s %q", e.Got.Kind, e.Got.Text)
	case ErrUnknownStatementStart:
		if e.Got.Kind == lexer.KindIdentifier || e.Got.Kind == lexer.KindFunctionIdentifier {
			return fmt.Sprintf("unknown statement start: %q is not a type", e.Got.Text)
		}
		return fmt.Sprintf("unknown statement start: %s", found(e.Got))
	case ErrUnterminatedBlock:
		return "unterminated block: expected '}' before end of input"
	default:
		return e.Reason.Error()
	}
}

// Unwrap returns the Reason.
func (e *Error) Unwrap() error { return e.Reason }

// Range returns the source range of the offending token.
func (e *Error) Range() source.Range { return e.Got.Range }

// Incomplete reports whether err failed only because the input ended
// early, so more input could make it succeed.
func Incomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Got.Kind == lexer.KindEOF
}

func describe(kind lexer.Kind, text string) string {
	if text != "" {
		return fmt.Sprintf("%s %q", kind, text)
	}
	return kind.String()
}

func found(tok lexer.Token) string {
	if tok.Kind == lexer.KindEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}
