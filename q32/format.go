package q32

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/qcalc/internal/mathutil"
)

const (
	// DefaultPrecision is the number of fractional digits
	// the default format rounds to before trimming trailing zeros.
	DefaultPrecision = 9
)

var (
	// 2^-32 == 5^32 * 10^-32
	pow5to32 = new(big.Int).Exp(big.NewInt(5), big.NewInt(fracBits), nil)
)

// String returns a decimal representation of f, see Text.
func (f Fixed) String() string {
	return f.Text(-1)
}

// Text returns a decimal representation of f.
// If prec >= 0, exactly prec fractional digits are written, rounded half away from zero.
// Otherwise, the value is rounded to DefaultPrecision digits, and trailing zeros are omitted.
// Negative values are always prefixed by '-', even if the rounded magnitude is zero.
func (f Fixed) Text(prec int) string {
	var builder strings.Builder
	f.writeTo(&builder, prec)
	return builder.String()
}

// Format implements fmt.Formatter. All verbs produce a decimal string,
// the precision, if given, is the number of fractional digits.
func (f Fixed) Format(fs fmt.State, c rune) {
	prec, ok := fs.Precision()
	if !ok {
		prec = -1
	}
	f.writeTo(fs, prec)
}

// Decimal returns the exact decimal value of f.
func (f Fixed) Decimal() decimal.Decimal {
	d := magnitude(f)
	if f < 0 {
		return d.Neg()
	}
	return d
}

func (f Fixed) writeTo(w io.Writer, prec int) {
	var s string
	d := magnitude(f)
	if prec >= 0 {
		s = d.StringFixed(int32(prec))
	} else {
		s = d.Round(DefaultPrecision).String()
	}
	if f < 0 {
		io.WriteString(w, "-")
	}
	io.WriteString(w, s)
}

// magnitude returns |f| as an exact decimal.
func magnitude(f Fixed) decimal.Decimal {
	abs := new(big.Int).SetUint64(mu.AbsUint64(number(f)))
	return decimal.NewFromBigInt(abs.Mul(abs, pow5to32), -fracBits)
}
