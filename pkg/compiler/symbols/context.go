// Package symbols holds the names the parser knows about: primitive
// types, operator spellings and variables.
package symbols

import (
	"sort"
	"strings"
)

// PrimitiveTypes are the built-in integer types.
var PrimitiveTypes = []string{"u8", "u16", "u32", "u64", "s8", "s16", "s32", "s64"}

// Context is a flat lookup table. The zero value knows nothing; use New
// for the built-in names.
type Context struct {
	types     map[string]struct{}
	operators []string // sorted, unique
	variables map[string]struct{}
}

// New returns a context seeded with the primitive types and the
// assignment operator.
func New() *Context {
	c := &Context{
		types:     make(map[string]struct{}, len(PrimitiveTypes)),
		variables: make(map[string]struct{}),
	}
	for _, t := range PrimitiveTypes {
		c.types[t] = struct{}{}
	}
	c.DeclareOperator("=")
	return c
}

// TypeExists reports whether name is a known type.
func (c *Context) TypeExists(name string) bool {
	_, ok := c.types[name]
	return ok
}

// VariableExists reports whether name is a declared variable.
func (c *Context) VariableExists(name string) bool {
	_, ok := c.variables[name]
	return ok
}

// OperatorOrPrefix reports whether some known operator equals name or
// starts with it. It has the signature of a lexer.Oracle.
func (c *Context) OperatorOrPrefix(name string) bool {
	i := sort.SearchStrings(c.operators, name)
	return i < len(c.operators) && strings.HasPrefix(c.operators[i], name)
}

// DeclareOperator adds op to the known operator spellings.
func (c *Context) DeclareOperator(op string) {
	i := sort.SearchStrings(c.operators, op)
	if i < len(c.operators) && c.operators[i] == op {
		return
	}
	c.operators = append(c.operators, "")
	copy(c.operators[i+1:], c.operators[i:])
	c.operators[i] = op
}

// Operators returns the known operator spellings in sorted order.
func (c *Context) Operators() []string {
	return append([]string(nil), c.operators...)
}
