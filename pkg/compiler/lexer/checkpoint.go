package lexer

import "github.com/dutow/metamorf/pkg/compiler/source"

type mark struct {
	cursor  int
	pos     source.Position
	history int
}

// Checkpoint is a saved scanner state. Releasing it without a Commit
// restores the scanner to the saved state and forgets every token
// produced since. Diagnostics reported in between are kept.
//
//	cp := s.Checkpoint()
//	defer cp.Release()
//	... tentative parse ...
//	cp.Commit()
//
// Checkpoints nest and must be released innermost first.
type Checkpoint struct {
	s         *Scanner
	depth     int
	committed bool
	released  bool
}

// Checkpoint saves the current state of s.
func (s *Scanner) Checkpoint() *Checkpoint {
	s.marks = append(s.marks, mark{cursor: s.cursor, pos: s.pos, history: len(s.tokens)})
	return &Checkpoint{s: s, depth: len(s.marks)}
}

// Commit keeps everything scanned since the checkpoint was taken.
func (c *Checkpoint) Commit() {
	c.committed = true
}

// Release drops the checkpoint, rolling back unless it was committed.
// Calling Release more than once has no further effect.
func (c *Checkpoint) Release() {
	if c.released {
		return
	}
	s := c.s
	if len(s.marks) != c.depth {
		panic("lexer: checkpoint released out of order")
	}
	m := s.marks[c.depth-1]
	s.marks = s.marks[:c.depth-1]
	c.released = true

	if c.committed {
		return
	}
	s.cursor = m.cursor
	s.pos = m.pos
	s.tokens = s.tokens[:m.history]
}
