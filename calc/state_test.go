package calc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avdva/qcalc/q32"
)

func TestStepStates(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		input  string
		states []state
	}{
		{"12", []state{readingWhole, readingWhole}},
		{"0x1", []state{readingPrefix, readingWhole, readingWhole}},
		{"-+ 0", []state{readingSign, readingSign, readingSign, readingPrefix}},
		{".5_", []state{readingFraction, readingFraction, readingFraction}},
		{"1 +", []state{readingWhole, expectingOperator, readingOperator}},
		{"1<<", []state{readingWhole, readingOperator, expectingNumber}},
		{"1+(", []state{readingWhole, readingOperator, expectingNumber}},
		{"(1)", []state{expectingNumber, readingWhole, expectingOperator}},
		{"0.12345678901", []state{
			readingPrefix, readingFraction,
			readingFraction, readingFraction, readingFraction, readingFraction, readingFraction,
			readingFraction, readingFraction, readingFraction, readingFraction, readingOverflow,
			readingOverflow,
		}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			e := newEvaluator()
			var states []state
			for idx, r := range []rune(test.input) {
				a.NoError(e.step(idx, r))
				states = append(states, e.state)
			}
			a.Equal(test.states, states)
		})
	}
}

func TestContinueTokenStops(t *testing.T) {
	a := assert.New(t)
	e := newEvaluator()
	a.NoError(e.step(0, '7'))
	consumed, err := e.continueToken(1, '*')
	a.NoError(err)
	a.False(consumed)
	a.Equal(expectingOperator, e.state)
	a.Equal([]q32.Fixed{q32.New(7)}, e.values)
	a.Equal(newLiteral(), e.lit)
}

func TestStackInvariants(t *testing.T) {
	a := assert.New(t)
	exprs := []string{
		"1+2*3-4",
		"1&2+3*4-5",
		"(1+(2*(3-4))/5)|6",
		"((1))+((2)*3)<<1",
		"-1 * -2 + (2)",
	}
	for i, expr := range exprs {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			e := newEvaluator()
			for idx, r := range []rune(expr) {
				if !a.NoError(e.step(idx, r)) {
					return
				}
				sum := 0
				for _, c := range e.counts {
					sum += c
				}
				a.Equal(len(e.ops), sum)
				a.Equal(len(e.parens)+1, len(e.counts))
			}
			_, err := e.finish(len(expr))
			a.NoError(err)
			a.Len(e.values, 1)
			a.Empty(e.ops)
			a.Equal([]int{0}, e.counts)
		})
	}
}

func TestPushOp(t *testing.T) {
	a := assert.New(t)
	e := newEvaluator()
	e.values = []q32.Fixed{q32.New(1), q32.New(2), q32.New(3)}
	a.NoError(e.pushOp(Add))
	a.NoError(e.pushOp(Mul))
	a.Equal([]int{2}, e.counts)
	// a weaker operator applies both pending ones.
	a.NoError(e.pushOp(Sub))
	a.Equal([]q32.Fixed{q32.New(7)}, e.values)
	a.Equal([]Op{Sub}, e.ops)
	a.Equal([]int{1}, e.counts)

	// a run rising through three levels is applied as a whole
	// by an operator of the middle level.
	e = newEvaluator()
	e.values = []q32.Fixed{q32.New(1), q32.New(2), q32.New(3), q32.New(4)}
	a.NoError(e.pushOp(And))
	a.NoError(e.pushOp(Add))
	a.NoError(e.pushOp(Mul))
	a.Equal([]Op{And, Add, Mul}, e.ops)
	a.Equal([]int{3}, e.counts)
	a.NoError(e.pushOp(Sub))
	a.Equal([]q32.Fixed{q32.New(1 & 14)}, e.values)
	a.Equal([]Op{Sub}, e.ops)
	a.Equal([]int{1}, e.counts)

	// only the run of the innermost level is applied.
	e = newEvaluator()
	e.values = []q32.Fixed{q32.New(5), q32.New(2), q32.New(3)}
	a.NoError(e.pushOp(Mul))
	e.counts = append(e.counts, 0)
	e.parens = append(e.parens, 2)
	a.NoError(e.pushOp(Add))
	a.NoError(e.pushOp(Sub))
	a.Equal([]q32.Fixed{q32.New(5), q32.New(5)}, e.values)
	a.Equal([]Op{Mul, Sub}, e.ops)
	a.Equal([]int{1, 1}, e.counts)
}

func TestLiteralValue(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		lit literal
		v   q32.Fixed
	}{
		{literal{base: 10}, q32.Zero},
		{literal{whole: 12, base: 10, neg: true}, q32.New(-12)},
		{literal{frac: 5, fracCount: 1, base: 10}, q32.MustFromFloat64(0.5)},
		{literal{frac: 25, fracCount: 3, base: 10}, q32.FromRaw(107374182)},
		{literal{whole: 3, frac: 1, fracCount: 1, base: 2}, q32.MustFromFloat64(3.5)},
		{literal{frac: 4, fracCount: 1, base: 8}, q32.MustFromFloat64(0.5)},
		{literal{frac: 1<<33 - 1, fracCount: 11, base: 8}, q32.One.Sub(q32.Epsilon)},
		{literal{whole: 0xff, frac: 0xc, fracCount: 1, base: 16, neg: true}, q32.MustFromFloat64(-255.75)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.v, test.lit.value())
		})
	}
}

func TestDigitValue(t *testing.T) {
	a := assert.New(t)
	d, ok := digitValue('7', 8)
	a.True(ok)
	a.Equal(uint32(7), d)
	_, ok = digitValue('8', 8)
	a.False(ok)
	d, ok = digitValue('F', 16)
	a.True(ok)
	a.Equal(uint32(15), d)
	_, ok = digitValue('g', 16)
	a.False(ok)
	_, ok = digitValue('٣', 10)
	a.False(ok)
}

func TestOp(t *testing.T) {
	a := assert.New(t)
	a.Equal(1, Shr.Precedence())
	a.Equal(2, Sub.Precedence())
	a.Equal(3, Mod.Precedence())
	a.Equal("<<", Shl.String())
	a.Equal("Op(?)", Op(42).String())
	_, err := Mod.Apply(q32.One, q32.Zero)
	a.Equal(q32.ErrDivisionByZero, err)
	v, err := Div.Apply(q32.One, q32.New(4))
	a.NoError(err)
	a.Equal(q32.MustFromFloat64(0.25), v)

	for _, r := range opChars {
		op, twoChars, ok := lookupOp(r, '<')
		a.Equal(r != '>', ok, "%c", r)
		if ok {
			a.Equal(r == '<', twoChars)
			a.Equal(r == '<', op == Shl)
		}
	}
}
