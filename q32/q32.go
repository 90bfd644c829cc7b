// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package q32 implements a signed binary fixed-point number with
// 32 bits of integer part and 32 bits of fractional part (Q32.32).
package q32

import (
	"errors"
	"math"

	mu "github.com/avdva/qcalc/internal/mathutil"
)

const (
	fracBits = 32
	shiftMax = 63

	twoTo32 = float64(1 << fracBits)
	twoTo64 = twoTo32 * twoTo32
)

const (
	Zero    = Fixed(0)
	One     = Fixed(1 << fracBits)
	Epsilon = Fixed(1)
	Max     = Fixed(math.MaxInt64)
	Min     = Fixed(math.MinInt64)
)

var (
	// ErrDivisionByZero is the panic value of Div and Rem for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	errBadFloat = errors.New("bad float number")
)

type number = int64

// Fixed is a Q32.32 fixed-point number.
// The value is raw / 2^32: the high 32 bits hold the signed integer part,
// the low 32 bits hold the unsigned fraction.
//   63                             31                              0
//   ________________________________|_______________________________
//   iiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiffffffffffffffffffffffffffffffff
//
// All operations work on the raw representation and wrap around on overflow.
type Fixed number

// New returns x as a fixed-point number.
func New(x int32) Fixed {
	return Fixed(number(x) << fracBits)
}

// FromRaw returns a fixed-point number with the given raw representation.
func FromRaw(raw int64) Fixed {
	return Fixed(raw)
}

// FromFloat64 returns the closest fixed-point number for f.
// f is taken modulo 2^32, so values outside of the range wrap around.
// Returns an error for infinities and not-a-numbers.
func FromFloat64(f float64) (Fixed, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Zero, errBadFloat
	}
	m := math.Mod(f, twoTo32)
	if m < 0 {
		m += twoTo32
	}
	r := math.Round(m * twoTo32)
	if r >= twoTo64 {
		return Zero, nil
	}
	return Fixed(uint64(r)), nil
}

// MustFromFloat64 calls FromFloat64 and panics in case of an error.
func MustFromFloat64(f float64) Fixed {
	v, err := FromFloat64(f)
	if err != nil {
		panic(err)
	}
	return v
}

// Raw returns the underlying 64-bit representation.
func (f Fixed) Raw() int64 {
	return number(f)
}

// Int returns the integer part of f, rounded toward negative infinity.
func (f Fixed) Int() int32 {
	return int32(number(f) >> fracBits)
}

// Float64 returns f as a float64 value.
func (f Fixed) Float64() float64 {
	return float64(f) / twoTo32
}

func (f Fixed) Sign() int {
	return mu.Int64Sign(number(f))
}

// Abs returns |f|. Abs(Min) is Min.
func (f Fixed) Abs() Fixed {
	return Fixed(mu.AbsInt64(number(f)))
}

func (f Fixed) Neg() Fixed {
	return -f
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (f Fixed) Cmp(other Fixed) int {
	if f == other {
		return 0
	}
	if f > other {
		return 1
	}
	return -1
}

func (f Fixed) Add(other Fixed) Fixed {
	return f + other
}

func (f Fixed) Sub(other Fixed) Fixed {
	return f - other
}

// Mul returns f*other.
// The product is calculated on 128 bits, so only the final result may overflow.
func (f Fixed) Mul(other Fixed) Fixed {
	return Fixed(mu.MulShr64(number(f), number(other), fracBits))
}

// Div returns f/other truncated toward zero. If other == 0, Div panics.
func (f Fixed) Div(other Fixed) Fixed {
	if other == Zero {
		panic(ErrDivisionByZero)
	}
	return Fixed(mu.ShlQuo64(number(f), number(other), fracBits))
}

// Rem returns the remainder of the truncated division of raw values.
// If other == 0, Rem panics.
func (f Fixed) Rem(other Fixed) Fixed {
	if other == Zero {
		panic(ErrDivisionByZero)
	}
	return f % other
}

// And, Or and Xor work on the whole raw bit pattern, fractional bits included.

func (f Fixed) And(other Fixed) Fixed {
	return f & other
}

func (f Fixed) Or(other Fixed) Fixed {
	return f | other
}

func (f Fixed) Xor(other Fixed) Fixed {
	return f ^ other
}

// Shl shifts the raw value of f left by the integer part of other.
// Only the low six bits of the shift count are used.
func (f Fixed) Shl(other Fixed) Fixed {
	return f << shiftCount(other)
}

// Shr shifts the raw value of f right by the integer part of other, keeping the sign.
// Only the low six bits of the shift count are used.
func (f Fixed) Shr(other Fixed) Fixed {
	return f >> shiftCount(other)
}

func shiftCount(f Fixed) uint {
	return uint(number(f)>>fracBits) & shiftMax
}
