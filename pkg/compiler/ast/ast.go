package ast

import (
	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/source"
)

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Range() source.Range
}

// Statement represents a standalone unit inside a block.
type Statement interface {
	Node
	stmtNode()
}

// Block: { STATEMENTS }
type Block struct {
	Open       lexer.Token
	Close      lexer.Token
	Statements []Statement
}

func (b *Block) Range() source.Range {
	return source.Range{Start: b.Open.Range.Start, End: b.Close.Range.End}
}

// VarDecl: TYPE NAME = NUMBER, ended by a newline or ;
type VarDecl struct {
	Type       lexer.Token
	Name       lexer.Token
	Assign     lexer.Token
	Value      lexer.Token
	Terminator lexer.Token // whitespace containing a newline, or the semicolon
}

func (v *VarDecl) Range() source.Range {
	return source.Range{Start: v.Type.Range.Start, End: v.Value.Range.End}
}
func (v *VarDecl) stmtNode() {}
