package calc

import (
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnexpectedChar means a character does not fit the current position.
	UnexpectedChar ErrorKind = iota + 1
	// UnmatchedParens means a ')' without an opening '(', or a '(' left open.
	UnmatchedParens
	// EndOfExpr means the input ended in the middle of a number or an operator.
	EndOfExpr
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case UnmatchedParens:
		return "unmatched parenthesis"
	case EndOfExpr:
		return "unexpected end of expression"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is an error at a known position of the expression.
type ParseError struct {
	Kind ErrorKind
	// Char is the offending character. Zero for EndOfExpr.
	Char rune
	// Index is a zero-based character (not byte) index.
	Index int
}

func newParseError(kind ErrorKind, c rune, index int) *ParseError {
	return &ParseError{Kind: kind, Char: c, Index: index}
}

func (pe *ParseError) Error() string {
	if pe.Kind == EndOfExpr {
		return pe.Kind.String() + fmt.Sprintf(" at pos %d", pe.Index)
	}
	return pe.Kind.String() + fmt.Sprintf(" %q at pos %d", pe.Char, pe.Index)
}
