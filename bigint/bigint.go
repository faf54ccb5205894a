// Package bigint is the arbitrary-precision arithmetic layer used by the
// ElGamal packages. All integers are GMP integers from github.com/ncw/gmp;
// decimal strings are the only external representation.
package bigint

import (
	"errors"
	"io"
	"strings"

	"github.com/ncw/gmp"
)

var (
	ErrParse = errors.New("bigint: not a non-negative decimal integer")
	ErrRange = errors.New("bigint: sampling bound must be positive")
	ErrBits  = errors.New("bigint: safe prime size must be at least 3 bits")
)

var (
	one = gmp.NewInt(1)
	two = gmp.NewInt(2)
)

// This is just a bitmask with the number of ones starting at 8 then
// incrementing by index. To account for bounds with bitsizes that are not a
// whole number of bytes, we mask off the unnecessary bits.
var mask = []byte{0xff, 0x1, 0x3, 0x7, 0xf, 0x1f, 0x3f, 0x7f}

// FromDecimal parses a canonical non-negative base-10 integer. Signs,
// whitespace and leading zeros (other than "0" itself) are rejected so that
// FromDecimal(s).String() == s for every accepted s.
func FromDecimal(s string) (*gmp.Int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return nil, ErrParse
	}
	if len(s) > 1 && s[0] == '0' {
		return nil, ErrParse
	}
	n, ok := new(gmp.Int).SetString(s, 10)
	if !ok {
		return nil, ErrParse
	}
	return n, nil
}

// ToDecimal returns the base-10 representation of n.
func ToDecimal(n *gmp.Int) string {
	return n.String()
}

// ModExp returns base^exp mod m.
func ModExp(base, exp, m *gmp.Int) *gmp.Int {
	return new(gmp.Int).Exp(base, exp, m)
}

// ModMul returns a*b mod m.
func ModMul(a, b, m *gmp.Int) *gmp.Int {
	z := new(gmp.Int).Mul(a, b)
	return z.Mod(z, m)
}

// ModInverse returns a^(m-2) mod m, the inverse of a when m is prime and
// a is not a multiple of m.
func ModInverse(a, m *gmp.Int) *gmp.Int {
	e := new(gmp.Int).Sub(m, two)
	return new(gmp.Int).Exp(a, e, m)
}

// InRange reports whether lo <= n <= hi.
func InRange(n, lo, hi *gmp.Int) bool {
	return n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0
}

// RandomInt returns a uniform value in [0, max). Bytes are read from rand and
// candidates at or above max are rejected rather than reduced, which would
// bias the result.
func RandomInt(rand io.Reader, max *gmp.Int) (*gmp.Int, error) {
	if max.Sign() <= 0 {
		return nil, ErrRange
	}
	bitLen := max.BitLen()
	byteLen := (bitLen + 7) >> 3
	buf := make([]byte, byteLen)
	n := new(gmp.Int)

	for {
		_, err := io.ReadFull(rand, buf)
		if err != nil {
			return nil, err
		}
		buf[0] &= mask[bitLen%8]
		n.SetBytes(buf)
		if n.Cmp(max) < 0 {
			return n, nil
		}
	}
}

// RandomRange returns a uniform value in [lo, hi).
func RandomRange(rand io.Reader, lo, hi *gmp.Int) (*gmp.Int, error) {
	width := new(gmp.Int).Sub(hi, lo)
	n, err := RandomInt(rand, width)
	if err != nil {
		return nil, err
	}
	return n.Add(n, lo), nil
}
