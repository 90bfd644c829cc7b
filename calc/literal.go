package calc

import (
	"github.com/avdva/qcalc/internal/mathutil"
	"github.com/avdva/qcalc/q32"
)

const (
	// 10^10 == 2^10 * 5^10, so frac * 2^32 / 10^10 == frac * 2^22 / 5^10.
	decimalFracDigits = 10
	pow5to10          = 9765625
)

// maxFracDigits is the largest count of fractional digits of a base
// that fits into 32 fractional bits.
var maxFracDigits = map[uint32]uint{
	2:  32,
	8:  11,
	10: decimalFracDigits,
	16: 8,
}

var bitsPerDigit = map[uint32]uint{
	2:  1,
	8:  3,
	16: 4,
}

// literal accumulates a number while it is being read.
type literal struct {
	whole     uint32
	frac      uint64
	fracCount uint
	base      uint32
	neg       bool
}

func newLiteral() literal {
	return literal{base: 10}
}

// addWhole appends a digit to the whole part.
// Returns false if r is not a digit in the literal's base.
func (l *literal) addWhole(r rune) bool {
	d, ok := digitValue(r, l.base)
	if !ok {
		return false
	}
	l.whole = l.whole*l.base + d
	return true
}

// addFrac appends a digit to the fractional part.
// Returns false if r is not a digit in the literal's base.
func (l *literal) addFrac(r rune) bool {
	d, ok := digitValue(r, l.base)
	if !ok {
		return false
	}
	l.frac = l.frac*uint64(l.base) + uint64(d)
	l.fracCount++
	return true
}

// fracFull returns true if no more fractional digits can be represented.
func (l *literal) fracFull() bool {
	return l.fracCount >= maxFracDigits[l.base]
}

// value converts the literal into a fixed-point number.
// The fractional part is truncated to the nearest representable value below it.
func (l literal) value() q32.Fixed {
	raw := uint64(l.whole) << 32
	if l.base == 10 {
		frac := l.frac * mathutil.Pow10(int(decimalFracDigits-l.fracCount))
		raw += (frac << 22) / pow5to10
	} else {
		// shifting by one more bit and back lets an octal fraction take 33 bits.
		raw += l.frac << (33 - bitsPerDigit[l.base]*l.fracCount) >> 1
	}
	if l.neg {
		return q32.FromRaw(-int64(raw))
	}
	return q32.FromRaw(int64(raw))
}

// digitValue returns the value of r as a digit in base.
func digitValue(r rune, base uint32) (uint32, bool) {
	var d uint32
	switch {
	case '0' <= r && r <= '9':
		d = uint32(r - '0')
	case 'a' <= r && r <= 'z':
		d = uint32(r-'a') + 10
	case 'A' <= r && r <= 'Z':
		d = uint32(r-'A') + 10
	default:
		return 0, false
	}
	return d, d < base
}
