package lexer

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isOperatorStart(ch byte) bool {
	switch ch {
	case '-', '+', '?', '!', '*', '/', '\\', '^', '$', '@', '%', '~', '|', '=', '<', '>', ':':
		return true
	}
	return false
}

func isIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentifierInside(ch byte) bool {
	return isDigit(ch) || isIdentifierStart(ch)
}

func isSemicolon(ch byte) bool {
	return ch == ';'
}

func isBracket(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// class is a set of starting character classes, used for continuation
// checks.
type class uint8

const (
	classWhitespace class = 1 << iota
	classSemicolon
	classOperator
	classDigit
	classIdentifier
)

func classOf(ch byte) class {
	switch {
	case isWhitespace(ch):
		return classWhitespace
	case isSemicolon(ch):
		return classSemicolon
	case isOperatorStart(ch):
		return classOperator
	case isDigit(ch):
		return classDigit
	case isIdentifierStart(ch):
		return classIdentifier
	}
	return 0
}
