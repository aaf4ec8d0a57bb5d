package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/dutow/metamorf/pkg/compiler/source"
)

// Scanner tokenizes a source text on demand. It keeps every token it has
// produced so that a Checkpoint can roll the history back.
type Scanner struct {
	file   string
	src    string
	cursor int
	pos    source.Position
	tokens []Token
	marks  []mark
	sink   source.Sink
}

// NewScanner creates a new scanner for src. Diagnostics go to sink; a nil
// sink discards them.
func NewScanner(file, src string, sink source.Sink) *Scanner {
	if sink == nil {
		sink = source.Discard
	}
	return &Scanner{
		file: file,
		src:  src,
		pos:  source.Start,
		sink: sink,
	}
}

// Reset re-initializes the scanner with new source for reuse. The token
// history keeps its capacity.
func (s *Scanner) Reset(src string) {
	s.src = src
	s.cursor = 0
	s.pos = source.Start
	s.tokens = s.tokens[:0]
	s.marks = s.marks[:0]
}

// File returns the label the scanner was created with.
func (s *Scanner) File() string { return s.file }

// Source returns the text being scanned.
func (s *Scanner) Source() string { return s.src }

// Position returns the position of the next unread character.
func (s *Scanner) Position() source.Position { return s.pos }

// Cursor returns the byte index of the next unread character.
func (s *Scanner) Cursor() int { return s.cursor }

// Tokens returns the token history. The slice must not be modified.
func (s *Scanner) Tokens() []Token { return s.tokens }

// Next returns the next token. Once EOF has been produced it is returned
// again on every call without touching the state. oracle bounds operator
// scanning.
func (s *Scanner) Next(oracle Oracle) Token {
	if n := len(s.tokens); n > 0 && s.tokens[n-1].Kind == KindEOF {
		return s.tokens[n-1]
	}
	tok := s.scan(oracle)
	s.tokens = append(s.tokens, tok)
	return tok
}

// SkipWhitespace consumes one whitespace token if the next character
// starts one. Otherwise nothing changes and ok is false.
func (s *Scanner) SkipWhitespace() (tok Token, ok bool) {
	if s.cursor < len(s.src) && isWhitespace(s.src[s.cursor]) {
		return s.Next(RejectAll), true
	}
	return Token{}, false
}

func (s *Scanner) scan(oracle Oracle) Token {
	start, startPos := s.cursor, s.pos

	if s.cursor >= len(s.src) {
		return Token{Kind: KindEOF, Range: source.Range{Start: s.pos, End: s.pos}, Offset: s.cursor}
	}

	ch := s.src[s.cursor]
	switch {
	case isSemicolon(ch):
		s.advance()
		return s.token(KindSemicolon, start, startPos)
	case isBracket(ch):
		s.advance()
		return s.token(KindBracket, start, startPos)
	case isWhitespace(ch):
		for s.cursor < len(s.src) && isWhitespace(s.src[s.cursor]) {
			s.advance()
		}
		return s.token(KindWhitespace, start, startPos)
	case isIdentifierStart(ch):
		kind := s.scanIdentifier()
		return s.checkContinuation(s.token(kind, start, startPos), classWhitespace|classSemicolon)
	case isDigit(ch) || (ch == '-' && isDigit(s.peek())):
		s.scanNumeric()
		return s.checkContinuation(s.token(KindNumeric, start, startPos), classWhitespace|classOperator|classSemicolon)
	case isOperatorStart(ch):
		s.scanOperator(oracle)
		tok := s.token(KindOperator, start, startPos)
		if s.cursor == start {
			tok.Err = true
			s.report(source.UnknownOperator{}, source.Range{Start: startPos, End: startPos},
				fmt.Sprintf("no known operator starts with %q", s.src[start:start+1]))
			return tok
		}
		return s.checkContinuation(tok, classWhitespace|classOperator|classDigit|classIdentifier|classSemicolon)
	}

	// Not the start of any token: consume one character so scanning always
	// makes progress.
	_, size := utf8.DecodeRuneInString(s.src[s.cursor:])
	s.cursor += size
	s.pos.Column += size
	tok := s.token(KindUnknown, start, startPos)
	tok.Err = true
	s.report(source.UnexpectedCharacter{}, tok.Range, fmt.Sprintf("remove %q", tok.Text))
	return tok
}

// scanIdentifier reads the alphanumeric body and then, unconditionally, a
// trailing run of operator symbols (commit!, empty?).
func (s *Scanner) scanIdentifier() Kind {
	for s.cursor < len(s.src) && isIdentifierInside(s.src[s.cursor]) {
		s.advance()
	}
	body := s.cursor
	for s.cursor < len(s.src) && isOperatorStart(s.src[s.cursor]) {
		s.advance()
	}
	if s.cursor != body {
		return KindFunctionIdentifier
	}
	return KindIdentifier
}

func (s *Scanner) scanNumeric() {
	if s.src[s.cursor] == '-' {
		s.advance()
	}
	for s.cursor < len(s.src) && isDigit(s.src[s.cursor]) {
		s.advance()
	}
}

// scanOperator extends through operator symbols, then word characters,
// then operator symbols again, as long as the oracle accepts the text
// read so far plus the next character. This admits spellings like :not:.
func (s *Scanner) scanOperator(oracle Oracle) {
	start := s.cursor
	extend := func(in func(byte) bool) {
		for s.cursor < len(s.src) && in(s.src[s.cursor]) && oracle(s.src[start:s.cursor+1]) {
			s.advance()
		}
	}
	extend(isOperatorStart)
	extend(isIdentifierInside)
	extend(isOperatorStart)
}

// checkContinuation flags tok if the character after it is not in allowed.
// End of input is always allowed.
func (s *Scanner) checkContinuation(tok Token, allowed class) Token {
	if s.cursor >= len(s.src) || classOf(s.src[s.cursor])&allowed != 0 {
		return tok
	}
	tok.Err = true
	s.report(source.ContinuationError{}, tok.Range,
		fmt.Sprintf("separate %q from %q with whitespace", tok.Text, s.src[s.cursor:s.cursor+1]))
	return tok
}

func (s *Scanner) token(kind Kind, start int, startPos source.Position) Token {
	return Token{
		Kind:   kind,
		Range:  source.Range{Start: startPos, End: s.pos},
		Offset: start,
		Text:   s.src[start:s.cursor],
	}
}

func (s *Scanner) report(msg source.Message, r source.Range, suggestion string) {
	s.sink.Report(source.Diagnostic{File: s.file, Message: msg, Range: r, Suggestion: suggestion})
}

// advance consumes one byte and keeps the position in step with it.
func (s *Scanner) advance() {
	if s.src[s.cursor] == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column++
	}
	s.cursor++
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cursor+1]
}
