package lexer_test

import (
	"testing"

	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/source"
)

func upToFive(candidate string) bool { return len(candidate) <= 5 }

func TestScannerZeroAlloc(t *testing.T) {
	src := "u8 v = 42;\n commit!? { [ a ] } :not: -7"
	s := lexer.NewScanner("<test>", src, nil)

	allocs := testing.AllocsPerRun(10, func() {
		s.Reset(src)
		for {
			tok := s.Next(lexer.AcceptAll)
			if tok.Kind == lexer.KindEOF {
				break
			}
		}
	})

	if allocs > 0 {
		t.Errorf("expected 0 allocations, got %f", allocs)
	}
}

func TestSingleToken(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
		kind lexer.Kind
		ok   bool
	}{
		{"number", "42", "42", lexer.KindNumeric, true},
		{"negative number", "-42", "-42", lexer.KindNumeric, true},
		{"operator with word", ":not:", ":not:", lexer.KindOperator, true},
		{"name", "commit", "commit", lexer.KindIdentifier, true},
		{"name with symbols", "commit!?", "commit!?", lexer.KindFunctionIdentifier, true},
		{"underscore name", "_tmp_1", "_tmp_1", lexer.KindIdentifier, true},
		{"whitespace", " \t\r\n", " \t\r\n", lexer.KindWhitespace, true},
		{"semicolon", ";", ";", lexer.KindSemicolon, true},
		{"lone minus", "-", "-", lexer.KindOperator, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rep source.Reporter
			s := lexer.NewScanner("<test>", tt.src, &rep)
			tok := s.Next(lexer.AcceptAll)
			if tok.Text != tt.text {
				t.Errorf("text: expected %q, got %q", tt.text, tok.Text)
			}
			if tok.Kind != tt.kind {
				t.Errorf("kind: expected %v, got %v", tt.kind, tok.Kind)
			}
			if tok.Err == tt.ok {
				t.Errorf("error flag: expected %v, got %v", !tt.ok, tok.Err)
			}
			if next := s.Next(lexer.AcceptAll); next.Kind != lexer.KindEOF {
				t.Errorf("expected eof after %q, got %v", tt.text, next)
			}
			if rep.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", rep.Messages())
			}
		})
	}
}

func TestTwoTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		first  string
		kind1  lexer.Kind
		second string
		kind2  lexer.Kind
		ok     bool
	}{
		{"number and whitespace", "42 \t", "42", lexer.KindNumeric, " \t", lexer.KindWhitespace, true},
		{"number then letter", "42a", "42", lexer.KindNumeric, "a", lexer.KindIdentifier, false},
		{"number and semicolon", "42;", "42", lexer.KindNumeric, ";", lexer.KindSemicolon, true},
		{"number and operator", "42+", "42", lexer.KindNumeric, "+", lexer.KindOperator, true},
		{"brackets", "[]", "[", lexer.KindBracket, "]", lexer.KindBracket, true},
		{"non matching brackets", "(}", "(", lexer.KindBracket, "}", lexer.KindBracket, true},
		{"name and semicolon", "x;", "x", lexer.KindIdentifier, ";", lexer.KindSemicolon, true},
		{"operator then name", "=x", "=", lexer.KindOperator, "x", lexer.KindIdentifier, true},
		{"operator then number", "=5", "=", lexer.KindOperator, "5", lexer.KindNumeric, true},
		{"operator then bracket", "=(", "=", lexer.KindOperator, "(", lexer.KindBracket, false},
		{"number then bracket", "5)", "5", lexer.KindNumeric, ")", lexer.KindBracket, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lexer.NewScanner("<test>", tt.src, nil)
			tok1 := s.Next(upToOne)
			if tok1.Text != tt.first || tok1.Kind != tt.kind1 {
				t.Errorf("first: expected %v %q, got %v", tt.kind1, tt.first, tok1)
			}
			if tok1.Err == tt.ok {
				t.Errorf("first error flag: expected %v, got %v", !tt.ok, tok1.Err)
			}

			tok2 := s.Next(upToOne)
			if tok2.Text != tt.second || tok2.Kind != tt.kind2 {
				t.Errorf("second: expected %v %q, got %v", tt.kind2, tt.second, tok2)
			}

			if eof := s.Next(lexer.AcceptAll); eof.Kind != lexer.KindEOF {
				t.Errorf("expected eof, got %v", eof)
			}
		})
	}
}

// upToOne accepts single-character operators only, so adjacent operators
// split into separate tokens.
func upToOne(candidate string) bool { return len(candidate) == 1 }

func TestOperatorRequiresSomeLength(t *testing.T) {
	var rep source.Reporter
	s := lexer.NewScanner("<test>", "::::", &rep)

	tok := s.Next(lexer.RejectAll)
	if tok.Text != "" || tok.Kind != lexer.KindOperator || !tok.Err {
		t.Fatalf("expected empty erroneous operator, got %v", tok)
	}
	if s.Cursor() != 0 || s.Position() != source.Start {
		t.Errorf("cursor moved to %d (%v)", s.Cursor(), s.Position())
	}
	if !tok.Range.Empty() {
		t.Errorf("expected empty range, got %v", tok.Range)
	}
	if !tok.Stalled() {
		t.Errorf("expected %v to report a stalled scan", tok)
	}
	if again := s.Next(lexer.RejectAll); again.Offset != 0 || !again.Stalled() {
		t.Errorf("expected the same empty operator again, got %v", again)
	}

	msgs := rep.Messages()
	if len(msgs) != 2 || msgs[0].Message.Code() != source.CodeUnknownOperator {
		t.Errorf("expected an unknown-operator diagnostic per attempt, got %v", msgs)
	}
}

func TestTwoOperatorsWithoutSeparator(t *testing.T) {
	s := lexer.NewScanner("<test>", ":one:!two", nil)

	tok1 := s.Next(upToFive)
	if tok1.Text != ":one:" || tok1.Kind != lexer.KindOperator || tok1.Err {
		t.Errorf("expected operator :one:, got %v", tok1)
	}

	tok2 := s.Next(upToFive)
	if tok2.Text != "!two" || tok2.Kind != lexer.KindOperator || tok2.Err {
		t.Errorf("expected operator !two, got %v", tok2)
	}

	if eof := s.Next(lexer.AcceptAll); eof.Kind != lexer.KindEOF {
		t.Errorf("expected eof, got %v", eof)
	}
}

func TestOperatorOracleSeesNextCharacter(t *testing.T) {
	var seen []string
	oracle := func(candidate string) bool {
		seen = append(seen, candidate)
		return candidate == "=" || candidate == "=="
	}

	s := lexer.NewScanner("<test>", "===", nil)
	tok := s.Next(oracle)
	if tok.Text != "==" {
		t.Fatalf("expected ==, got %v", tok)
	}

	// "===" is offered again by the trailing operator phase.
	want := []string{"=", "==", "===", "==="}
	if len(seen) != len(want) {
		t.Fatalf("oracle calls: expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("oracle call %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestIdentifierFollowedByBracketIsError(t *testing.T) {
	var rep source.Reporter
	s := lexer.NewScanner("<test>", "name(", &rep)

	tok := s.Next(lexer.AcceptAll)
	if tok.Kind != lexer.KindIdentifier || tok.Text != "name" || !tok.Err {
		t.Fatalf("expected erroneous identifier, got %v", tok)
	}

	msgs := rep.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one diagnostic, got %v", msgs)
	}
	d := msgs[0]
	if d.Message.Code() != source.CodeContinuation || d.Range != tok.Range || d.File != "<test>" {
		t.Errorf("unexpected diagnostic %+v", d)
	}

	if next := s.Next(lexer.AcceptAll); next.Kind != lexer.KindBracket || next.Text != "(" {
		t.Errorf("scanning must continue after the error, got %v", next)
	}
}

func TestValidContinuationsReportNothing(t *testing.T) {
	var rep source.Reporter
	s := lexer.NewScanner("<test>", "a; b\tc\n42+x -1 ok?", &rep)
	for s.Next(lexer.AcceptAll).Kind != lexer.KindEOF {
	}
	if rep.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.Messages())
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	var rep source.Reporter
	s := lexer.NewScanner("<test>", ",é", &rep)

	comma := s.Next(lexer.AcceptAll)
	if comma.Kind != lexer.KindUnknown || comma.Text != "," || !comma.Err {
		t.Errorf("expected unknown ',', got %v", comma)
	}
	accent := s.Next(lexer.AcceptAll)
	if accent.Text != "é" || accent.Range.End.Column != 3 {
		t.Errorf("expected the whole rune to be consumed, got %v ending at %v", accent, accent.Range.End)
	}
	if rep.Len() != 2 || rep.Messages()[0].Message.Code() != source.CodeUnexpectedCharacter {
		t.Errorf("unexpected diagnostics: %v", rep.Messages())
	}
}

func TestEOFRepeats(t *testing.T) {
	s := lexer.NewScanner("<test>", "x ", nil)
	for s.Next(lexer.AcceptAll).Kind != lexer.KindEOF {
	}
	history := len(s.Tokens())
	pos := s.Position()

	for i := 0; i < 3; i++ {
		tok := s.Next(lexer.AcceptAll)
		if tok.Kind != lexer.KindEOF || tok.Range.Start != pos {
			t.Fatalf("pull %d: expected eof at %v, got %v", i, pos, tok)
		}
	}
	if len(s.Tokens()) != history || s.Position() != pos {
		t.Errorf("eof repeat changed the state")
	}
	if _, ok := s.SkipWhitespace(); ok {
		t.Errorf("no whitespace to skip at eof")
	}
}

func TestPositions(t *testing.T) {
	s := lexer.NewScanner("<test>", "int \n\n\na? b", nil)

	want := []struct {
		text       string
		start, end source.Position
	}{
		{"int", source.Position{Line: 1, Column: 0}, source.Position{Line: 1, Column: 3}},
		{" \n\n\n", source.Position{Line: 1, Column: 3}, source.Position{Line: 4, Column: 0}},
		{"a?", source.Position{Line: 4, Column: 0}, source.Position{Line: 4, Column: 2}},
		{" ", source.Position{Line: 4, Column: 2}, source.Position{Line: 4, Column: 3}},
		{"b", source.Position{Line: 4, Column: 3}, source.Position{Line: 4, Column: 4}},
		{"", source.Position{Line: 4, Column: 4}, source.Position{Line: 4, Column: 4}},
	}

	offset := 0
	for i, w := range want {
		tok := s.Next(lexer.AcceptAll)
		if tok.Text != w.text || tok.Range.Start != w.start || tok.Range.End != w.end {
			t.Errorf("token %d: expected %q %v-%v, got %q %v", i, w.text, w.start, w.end, tok.Text, tok.Range)
		}
		if tok.Offset != offset {
			t.Errorf("token %d: expected offset %d, got %d", i, offset, tok.Offset)
		}
		offset += len(tok.Text)
	}
}

func TestWhitespaceCanBeSkipped(t *testing.T) {
	s := lexer.NewScanner("<test>", "\n \na?", nil)

	ws, ok := s.SkipWhitespace()
	if !ok || ws.Text != "\n \n" {
		t.Fatalf("expected the whole whitespace run, got %v", ws)
	}

	history := len(s.Tokens())
	if _, ok := s.SkipWhitespace(); ok {
		t.Fatalf("second skip must find nothing")
	}
	if len(s.Tokens()) != history || s.Cursor() != 3 {
		t.Errorf("second skip changed the state")
	}

	if tok := s.Next(lexer.AcceptAll); tok.Kind != lexer.KindFunctionIdentifier {
		t.Errorf("expected function identifier, got %v", tok)
	}
}

func TestKindString(t *testing.T) {
	if lexer.KindFunctionIdentifier.String() != "function_identifier" || lexer.Kind(200).String() != "unknown" {
		t.Errorf("unexpected kind names")
	}
}

func TestResetReplacesSource(t *testing.T) {
	s := lexer.NewScanner("<test>", "u8 a;", nil)
	for s.Next(lexer.AcceptAll).Kind != lexer.KindEOF {
	}

	s.Reset("b")
	if s.Source() != "b" || s.Cursor() != 0 || s.Position() != source.Start || len(s.Tokens()) != 0 {
		t.Fatalf("reset left state behind: %q, cursor %d, %d tokens", s.Source(), s.Cursor(), len(s.Tokens()))
	}
	if tok := s.Next(lexer.AcceptAll); tok.Text != "b" || tok.Kind != lexer.KindIdentifier {
		t.Errorf("expected identifier b, got %v", tok)
	}
}
