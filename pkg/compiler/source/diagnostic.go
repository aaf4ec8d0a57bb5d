package source

import "fmt"

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Message describes one kind of diagnostic.
type Message interface {
	Severity() Severity
	Text() string
	Code() int
}

// Diagnostic codes. They are stable and printed with every diagnostic.
const (
	CodeContinuation        = 1
	CodeUnknownOperator     = 2
	CodeUnexpectedCharacter = 3
)

// ContinuationError is filed when a token is immediately followed by a
// character that may not adjoin it.
type ContinuationError struct{}

func (ContinuationError) Severity() Severity { return SeverityError }
func (ContinuationError) Text() string       { return "not allowed continuation" }
func (ContinuationError) Code() int          { return CodeContinuation }

// UnknownOperator is filed when an operator-start character is not a
// known operator nor the prefix of one.
type UnknownOperator struct{}

func (UnknownOperator) Severity() Severity { return SeverityError }
func (UnknownOperator) Text() string       { return "unknown operator" }
func (UnknownOperator) Code() int          { return CodeUnknownOperator }

// UnexpectedCharacter is filed for a character that starts no token.
type UnexpectedCharacter struct{}

func (UnexpectedCharacter) Severity() Severity { return SeverityError }
func (UnexpectedCharacter) Text() string       { return "unexpected character" }
func (UnexpectedCharacter) Code() int          { return CodeUnexpectedCharacter }

// Diagnostic ties a message to the range of source it complains about.
type Diagnostic struct {
	File       string
	Message    Message
	Range      Range
	Suggestion string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	loc := d.Range.Start.String()
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	return fmt.Sprintf("%s: %s[E%03d]: %s", loc, d.Message.Severity(), d.Message.Code(), d.Message.Text())
}
