// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package calc evaluates arithmetic expressions over Q32.32 fixed-point numbers.
//
// An expression consists of numbers, binary operators + - * / % & | ^ << >>,
// parentheses, and whitespace. Numbers may have a sign, a 0b, 0o or 0x base prefix,
// a fractional part, and '_' digit separators, like "-0x1_F.8".
// Operators bind as follows, from the weakest: & | ^ << >>, then + -, then * / %.
// Consecutive operators form a run while each binds tighter than the previous one.
// An operator that does not bind tighter applies the whole run first, from the right,
// so "10-3-2" is 5, "2+3*4" is 14, and "1&2+3*4-5" is (1&(2+3*4))-5.
//
// Whitespace separates tokens and may follow a sign ("- 1" is -1),
// but it cannot split a two-character operator ("1 < 2" is an error).
//
// The expression is evaluated in a single pass, without building a syntax tree.
package calc

import (
	"unicode"

	"github.com/avdva/qcalc/q32"
)

type state int

const (
	expectingNumber state = iota
	expectingOperator
	readingSign
	readingPrefix
	readingWhole
	readingFraction
	// readingOverflow accepts and drops the fractional digits that cannot be represented.
	readingOverflow
	readingOperator
	// skippingChar drops the second character of a two-character operator.
	skippingChar
)

// evaluator is a lexer, a parser, and an evaluator at once.
// Invariants:
//	- len(counts) == len(parens)+1, counts[0] is the top level.
//	- the sum of counts == len(ops).
type evaluator struct {
	state  state
	lit    literal
	opChar rune

	values []q32.Fixed
	ops    []Op
	// counts holds the number of pending operators for each nesting level.
	counts []int
	// parens holds indices of unclosed '('.
	parens []int
}

// Eval evaluates an expression.
// Returns *ParseError for malformed expressions,
// and q32.ErrDivisionByZero if a divisor of / or % is zero.
func Eval(expr string) (q32.Fixed, error) {
	e := newEvaluator()
	index := 0
	for _, r := range expr {
		if err := e.step(index, r); err != nil {
			return q32.Zero, err
		}
		index++
	}
	return e.finish(index)
}

// MustEval calls Eval and panics in case of an error.
func MustEval(expr string) q32.Fixed {
	v, err := Eval(expr)
	if err != nil {
		panic(err)
	}
	return v
}

func newEvaluator() *evaluator {
	return &evaluator{
		state:  expectingNumber,
		lit:    newLiteral(),
		counts: []int{0},
	}
}

// step feeds the character r at index i.
func (e *evaluator) step(i int, r rune) error {
	if consumed, err := e.continueToken(i, r); consumed || err != nil {
		return err
	}
	if unicode.IsSpace(r) {
		return nil
	}
	switch e.state {
	case skippingChar:
		e.state = expectingNumber
	case expectingOperator:
		switch {
		case r == ')':
			return e.closeParen(i, r)
		case isOpChar(r):
			e.opChar = r
			e.state = readingOperator
		default:
			return newParseError(UnexpectedChar, r, i)
		}
	case expectingNumber:
		if r == '(' {
			e.counts = append(e.counts, 0)
			e.parens = append(e.parens, i)
			return nil
		}
		return e.startNumber(i, r)
	}
	return nil
}

// continueToken feeds r to the number or the operator being read.
// If r ends the token, it is not consumed, and the state becomes one of
// expectingOperator, expectingNumber, or skippingChar.
func (e *evaluator) continueToken(i int, r rune) (consumed bool, err error) {
	switch e.state {
	case readingSign:
		if unicode.IsSpace(r) {
			return true, nil
		}
		return true, e.startNumber(i, r)
	case readingPrefix:
		switch r {
		case 'b':
			e.lit.base = 2
		case 'o':
			e.lit.base = 8
		case 'x':
			e.lit.base = 16
		case '_':
		case '.':
			e.state = readingFraction
			return true, nil
		default:
			if !e.lit.addWhole(r) {
				e.endLiteral()
				return false, nil
			}
		}
		e.state = readingWhole
	case readingWhole:
		switch {
		case r == '_':
		case r == '.':
			e.state = readingFraction
		case !e.lit.addWhole(r):
			e.endLiteral()
			return false, nil
		}
	case readingFraction:
		switch {
		case r == '_':
		case !e.lit.addFrac(r):
			e.endLiteral()
			return false, nil
		case e.lit.fracFull():
			e.state = readingOverflow
		}
	case readingOverflow:
		if _, ok := digitValue(r, e.lit.base); !ok && r != '_' {
			e.endLiteral()
			return false, nil
		}
	case readingOperator:
		op, twoChars, ok := lookupOp(e.opChar, r)
		if !ok {
			return true, newParseError(UnexpectedChar, r, i)
		}
		if err := e.pushOp(op); err != nil {
			return true, err
		}
		e.state = expectingNumber
		if twoChars {
			e.state = skippingChar
		}
		return false, nil
	default:
		return false, nil
	}
	return true, nil
}

// startNumber handles the first character of a number, or a sign before it.
func (e *evaluator) startNumber(i int, r rune) error {
	switch {
	case r == '-':
		e.lit.neg = !e.lit.neg
		e.state = readingSign
	case r == '+':
		e.state = readingSign
	case r == '0':
		e.state = readingPrefix
	case r == '.':
		e.state = readingFraction
	case '1' <= r && r <= '9':
		e.lit.addWhole(r)
		e.state = readingWhole
	default:
		return newParseError(UnexpectedChar, r, i)
	}
	return nil
}

func (e *evaluator) endLiteral() {
	e.values = append(e.values, e.lit.value())
	e.lit = newLiteral()
	e.state = expectingOperator
}

// pushOp appends op to the run of operators at the current nesting level
// if the run is empty or op binds tighter than its last operator.
// Otherwise, the whole run is applied, and op starts a new one.
func (e *evaluator) pushOp(op Op) error {
	depth := len(e.counts) - 1
	if e.counts[depth] > 0 && op.Precedence() <= e.ops[len(e.ops)-1].Precedence() {
		if err := e.applyLevel(); err != nil {
			return err
		}
	}
	e.ops = append(e.ops, op)
	e.counts[depth]++
	return nil
}

func (e *evaluator) closeParen(i int, r rune) error {
	if len(e.parens) == 0 {
		return newParseError(UnmatchedParens, r, i)
	}
	if err := e.applyLevel(); err != nil {
		return err
	}
	e.counts = e.counts[:len(e.counts)-1]
	e.parens = e.parens[:len(e.parens)-1]
	return nil
}

// applyLevel applies all pending operators of the current nesting level.
func (e *evaluator) applyLevel() error {
	depth := len(e.counts) - 1
	for ; e.counts[depth] > 0; e.counts[depth]-- {
		if err := e.applyTop(); err != nil {
			return err
		}
	}
	return nil
}

// applyTop pops an operator and two values, and pushes the result.
func (e *evaluator) applyTop() error {
	op := e.ops[len(e.ops)-1]
	e.ops = e.ops[:len(e.ops)-1]
	n := len(e.values)
	v, err := op.Apply(e.values[n-2], e.values[n-1])
	if err != nil {
		return err
	}
	e.values = append(e.values[:n-2], v)
	return nil
}

// finish completes the evaluation of an expression of length n.
func (e *evaluator) finish(n int) (q32.Fixed, error) {
	switch e.state {
	case expectingOperator:
	case readingPrefix, readingWhole, readingFraction, readingOverflow:
		e.endLiteral()
	default:
		return q32.Zero, newParseError(EndOfExpr, 0, n)
	}
	if len(e.parens) > 0 {
		return q32.Zero, newParseError(UnmatchedParens, '(', e.parens[0])
	}
	if err := e.applyLevel(); err != nil {
		return q32.Zero, err
	}
	return e.values[len(e.values)-1], nil
}
