package q32

import (
	"bytes"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	oneDecimal = decimal.New(int64(One), 0)
	rawMask    = new(big.Int).SetUint64(1<<64 - 1)
)

// FromDecimal returns the fixed-point number closest to d, rounding half away from zero.
// Values outside of the range wrap around.
func FromDecimal(d decimal.Decimal) Fixed {
	raw := d.Mul(oneDecimal).Round(0).Coefficient()
	return Fixed(raw.And(raw, rawMask).Uint64())
}

// FromString parses a decimal number, like "-12.5" or "1e-3".
// See FromDecimal for rounding rules.
func FromString(s string) (Fixed, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return FromDecimal(d), nil
}

func MustFromString(s string) Fixed {
	f, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// MarshalJSON writes the exact decimal value of f as a JSON string.
func (f Fixed) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('"')
	b.WriteString(f.Decimal().String())
	b.WriteByte('"')
	return b.Bytes(), nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (f *Fixed) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	fs, err := FromString(s)
	if err == nil {
		*f = fs
	}
	return err
}
