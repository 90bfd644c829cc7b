package mathutil

import (
	"math/bits"
	"unsafe"
)

var (
	decimalFactorTable = [...]uint64{ // up to 1e19
		1, 10, 100, 1000, 10000,
		100000, 1000000, 10000000, 100000000, 1000000000, 10000000000,
		100000000000, 1000000000000, 10000000000000, 100000000000000,
		1000000000000000, 10000000000000000, 100000000000000000,
		1000000000000000000, 10000000000000000000,
	}
)

// Pow10 returns 10^pow.
func Pow10(pow int) uint64 {
	if pow < 0 || pow >= len(decimalFactorTable) {
		return 0
	}
	return decimalFactorTable[pow]
}

func AbsInt64(val int64) int64 {
	mask := val >> (unsafe.Sizeof(int64(0))*8 - 1)
	return (val + mask) ^ mask
}

// AbsUint64 returns the magnitude of val.
// Unlike AbsInt64, it is exact for math.MinInt64.
func AbsUint64(val int64) uint64 {
	if val < 0 {
		return -uint64(val)
	}
	return uint64(val)
}

func SameSign(a, b int64) bool {
	return (a>>63 ^ b>>63) == 0
}

func Int64Sign(v int64) int {
	if v == 0 {
		return 0
	}
	return [...]int{1, -1}[uint64(v)>>63]
}

// MulSigned128 returns a*b as a signed 128-bit number split into two halves.
func MulSigned128(a, b int64) (hi, lo uint64) {
	hi, lo = bits.Mul64(uint64(a), uint64(b))
	// bits.Mul64 treats both arguments as unsigned,
	// so subtract the extra 2^64 multiples it adds for negative ones.
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return hi, lo
}

// MulShr64 returns the low 64 bits of (a*b) >> shift,
// where the product is calculated on 128 bits. shift must be less than 64.
func MulShr64(a, b int64, shift uint) int64 {
	hi, lo := MulSigned128(a, b)
	if shift == 0 {
		return int64(lo)
	}
	return int64(hi<<(64-shift) | lo>>shift)
}

// ShlQuo64 returns the low 64 bits of (a << shift) / b,
// where the dividend is widened to 128 bits before the division.
// The quotient is truncated toward zero. b must not be zero, shift must be less than 64.
func ShlQuo64(a, b int64, shift uint) int64 {
	ua, ub := AbsUint64(a), AbsUint64(b)
	var hi uint64
	if shift > 0 {
		hi = ua >> (64 - shift)
	}
	lo := ua << shift
	// the high word of the quotient is dropped anyway,
	// only the remainder is needed to continue the long division.
	q, _ := bits.Div64(hi%ub, lo, ub)
	if SameSign(a, b) {
		return int64(q)
	}
	return -int64(q)
}
