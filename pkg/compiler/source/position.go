package source

import "fmt"

// Position is a location in source text. Line is 1-based, Column is the
// 0-based byte offset within the line.
type Position struct {
	Line   int
	Column int
}

// Start is the position of the first character of a file.
var Start = Position{Line: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Range is a half-open interval [Start, End) over consumed characters.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Empty reports whether the range covers no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}
