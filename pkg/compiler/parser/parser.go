package parser

import (
	"strings"

	"github.com/dutow/metamorf/pkg/compiler/ast"
	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/symbols"
	"go.uber.org/zap"
)

type Parser struct {
	scanner *lexer.Scanner
	ctx     *symbols.Context
	oracle  lexer.Oracle
	log     *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces recognized statements and failures at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// NewParser returns a parser reading from s. A nil ctx means symbols.New().
func NewParser(s *lexer.Scanner, ctx *symbols.Context, opts ...Option) *Parser {
	if ctx == nil {
		ctx = symbols.New()
	}
	p := &Parser{
		scanner: s,
		ctx:     ctx,
		oracle:  ctx.OperatorOrPrefix,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a whole program: one block, optionally surrounded by
// whitespace, and nothing else.
func (p *Parser) Parse() (*ast.Block, error) {
	if _, err := p.requireText(lexer.KindBracket, "{"); err != nil {
		return nil, err
	}
	block, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(lexer.KindEOF); err != nil {
		return nil, err
	}
	return block, nil
}

// ParseBlock parses statements up to and including the closing bracket.
// The opening bracket must already have been consumed. On failure the
// scanner is left where it was before the call.
func (p *Parser) ParseBlock() (*ast.Block, error) {
	cp := p.scanner.Checkpoint()
	defer cp.Release()

	block := &ast.Block{}
	if history := p.scanner.Tokens(); len(history) > 0 {
		block.Open = history[len(history)-1]
	}

	for {
		p.scanner.SkipWhitespace()
		tok := p.nextToken()

		switch {
		case tok.Kind == lexer.KindBracket && tok.Text == "}":
			block.Close = tok
			cp.Commit()
			p.log.Debug("block closed",
				zap.Stringer("range", block.Range()),
				zap.Int("statements", len(block.Statements)))
			return block, nil
		case tok.Kind == lexer.KindEOF:
			return nil, p.fail(ErrUnterminatedBlock, lexer.KindBracket, "}", tok)
		case tok.Err:
			return nil, p.fail(ErrInvalidToken, tok.Kind, "", tok)
		case isName(tok) && p.ctx.TypeExists(tok.Text):
			stmt, err := p.parseVarDecl(tok)
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)
		default:
			// Function calls and control flow are not recognized yet.
			return nil, p.fail(ErrUnknownStatementStart, tok.Kind, "", tok)
		}
	}
}

// parseVarDecl parses "NAME = NUMBER" after the type token. The statement
// ends at a newline or at an explicit semicolon.
func (p *Parser) parseVarDecl(typ lexer.Token) (*ast.VarDecl, error) {
	cp := p.scanner.Checkpoint()
	defer cp.Release()

	name, err := p.require(lexer.KindIdentifier)
	if err != nil {
		return nil, err
	}
	assign, err := p.requireText(lexer.KindOperator, "=")
	if err != nil {
		return nil, err
	}
	value, err := p.require(lexer.KindNumeric)
	if err != nil {
		return nil, err
	}

	stmt := &ast.VarDecl{Type: typ, Name: name, Assign: assign, Value: value}
	if ws, ok := p.scanner.SkipWhitespace(); ok && strings.Contains(ws.Text, "\n") {
		stmt.Terminator = ws
	} else {
		semi, err := p.require(lexer.KindSemicolon)
		if err != nil {
			return nil, err
		}
		stmt.Terminator = semi
	}

	cp.Commit()
	p.log.Debug("variable declaration",
		zap.String("type", typ.Text),
		zap.String("name", name.Text),
		zap.String("value", value.Text),
		zap.Stringer("pos", typ.Range.Start))
	return stmt, nil
}

func (p *Parser) nextToken() lexer.Token {
	return p.scanner.Next(p.oracle)
}

// require skips whitespace and reads a token of the given kind that is not
// flagged as erroneous.
func (p *Parser) require(kind lexer.Kind) (lexer.Token, error) {
	return p.requireText(kind, "")
}

// requireText is require with an exact spelling. An empty text accepts any.
// An operator the oracle rejected is invalid whatever was expected.
func (p *Parser) requireText(kind lexer.Kind, text string) (lexer.Token, error) {
	p.scanner.SkipWhitespace()
	tok := p.nextToken()
	switch {
	case tok.Stalled():
		return tok, p.fail(ErrInvalidToken, kind, text, tok)
	case tok.Kind != kind:
		return tok, p.fail(ErrExpectedTokenKind, kind, text, tok)
	case tok.Err:
		return tok, p.fail(ErrInvalidToken, kind, text, tok)
	case text != "" && tok.Text != text:
		return tok, p.fail(ErrExpectedTokenText, kind, text, tok)
	}
	return tok, nil
}

func (p *Parser) fail(reason Reason, want lexer.Kind, wantText string, got lexer.Token) *Error {
	err := &Error{
		Reason:   reason,
		File:     p.scanner.File(),
		Want:     want,
		WantText: wantText,
		Got:      got,
	}
	p.log.Debug("parse failed", zap.Error(err))
	return err
}

func isName(tok lexer.Token) bool {
	return tok.Kind == lexer.KindIdentifier || tok.Kind == lexer.KindFunctionIdentifier
}
