package source

import "go.uber.org/multierr"

// Sink receives diagnostics as they are found.
type Sink interface {
	Report(d Diagnostic)
}

// Reporter accumulates diagnostics in the order they were reported.
type Reporter struct {
	messages []Diagnostic
}

// Report appends d. Duplicates are kept.
func (r *Reporter) Report(d Diagnostic) {
	r.messages = append(r.messages, d)
}

// Messages returns every diagnostic reported so far.
func (r *Reporter) Messages() []Diagnostic {
	return r.messages
}

// Len returns the number of diagnostics reported so far.
func (r *Reporter) Len() int {
	return len(r.messages)
}

// HasErrors reports whether any error-severity diagnostic was filed.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.messages {
		if d.Message.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// Err combines every error-severity diagnostic into a single error, or
// returns nil if there are none. multierr.Errors splits it back apart.
func (r *Reporter) Err() error {
	var err error
	for _, d := range r.messages {
		if d.Message.Severity() == SeverityError {
			err = multierr.Append(err, d)
		}
	}
	return err
}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}
