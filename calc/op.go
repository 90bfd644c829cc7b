// Copyright 2020 Aleksandr Demakin. All rights reserved.

package calc

import (
	"strings"

	"github.com/avdva/qcalc/q32"
)

// Op is a binary operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	And
	Or
	Xor
	Shl
	Shr
)

// opChars are the characters an operator can start with.
const opChars = "+-*/%|&^><"

var (
	opNames = [...]string{
		Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
		And: "&", Or: "|", Xor: "^", Shl: "<<", Shr: ">>",
	}
	opPrecedence = [...]int{
		And: 1, Or: 1, Xor: 1, Shl: 1, Shr: 1,
		Add: 2, Sub: 2,
		Mul: 3, Div: 3, Mod: 3,
	}
)

// Precedence returns the binding power of op. Higher binds tighter.
func (op Op) Precedence() int {
	return opPrecedence[op]
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "Op(?)"
	}
	return opNames[op]
}

// Apply returns a <op> b.
// Returns q32.ErrDivisionByZero if op is Div or Mod and b is zero.
func (op Op) Apply(a, b q32.Fixed) (q32.Fixed, error) {
	switch op {
	case Add:
		return a.Add(b), nil
	case Sub:
		return a.Sub(b), nil
	case Mul:
		return a.Mul(b), nil
	case Div, Mod:
		if b == q32.Zero {
			return q32.Zero, q32.ErrDivisionByZero
		}
		if op == Div {
			return a.Div(b), nil
		}
		return a.Rem(b), nil
	case And:
		return a.And(b), nil
	case Or:
		return a.Or(b), nil
	case Xor:
		return a.Xor(b), nil
	case Shl:
		return a.Shl(b), nil
	default:
		return a.Shr(b), nil
	}
}

func isOpChar(r rune) bool {
	return strings.ContainsRune(opChars, r)
}

// lookupOp resolves an operator from its first character and the character following it.
// twoChars is true if both characters belong to the operator.
func lookupOp(first, next rune) (op Op, twoChars, ok bool) {
	switch first {
	case '+':
		return Add, false, true
	case '-':
		return Sub, false, true
	case '*':
		return Mul, false, true
	case '/':
		return Div, false, true
	case '%':
		return Mod, false, true
	case '&':
		return And, false, true
	case '|':
		return Or, false, true
	case '^':
		return Xor, false, true
	case '<':
		if next == '<' {
			return Shl, true, true
		}
	case '>':
		if next == '>' {
			return Shr, true, true
		}
	}
	return 0, false, false
}
