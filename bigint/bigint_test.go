package bigint

import (
	"bytes"
	crand "crypto/rand"
	"testing"

	"github.com/ncw/gmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "27", "595858478", "179769313486231590772930519078902473361797697894230657273430081157732675805500963132708477322407536021120113879871393357658789768814416622492847430639474124377767893424865485276302219601246094119453082952085005768838150682342462881473913110540827237163350510684586298239947245938479716304835356329624224137859"} {
		n, err := FromDecimal(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ToDecimal(n))
	}
}

func TestDecimalRejectsNonCanonical(t *testing.T) {
	for _, s := range []string{"", "-1", "+1", " 1", "1 ", "0x10", "007", "1e3", "12a"} {
		_, err := FromDecimal(s)
		assert.ErrorIs(t, err, ErrParse, "%q", s)
	}
}

func TestModArithmetic(t *testing.T) {
	p := gmp.NewInt(59)

	assert.Equal(t, "21", ToDecimal(ModExp(gmp.NewInt(2), gmp.NewInt(10), p))) // 1024 mod 59
	assert.Equal(t, "5", ToDecimal(ModMul(gmp.NewInt(8), gmp.NewInt(8), p)))

	for a := int64(1); a < 59; a++ {
		inv := ModInverse(gmp.NewInt(a), p)
		assert.Equal(t, "1", ToDecimal(ModMul(inv, gmp.NewInt(a), p)), "a=%d", a)
	}
}

func TestRandomIntBounds(t *testing.T) {
	max := gmp.NewInt(5)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		n, err := RandomInt(crand.Reader, max)
		require.NoError(t, err)
		require.True(t, InRange(n, gmp.NewInt(0), gmp.NewInt(4)), n.String())
		seen[n.String()] = true
	}
	assert.Len(t, seen, 5)

	_, err := RandomInt(crand.Reader, gmp.NewInt(0))
	assert.ErrorIs(t, err, ErrRange)
}

func TestRandomRange(t *testing.T) {
	lo, hi := gmp.NewInt(2), gmp.NewInt(9)
	for i := 0; i < 200; i++ {
		n, err := RandomRange(crand.Reader, lo, hi)
		require.NoError(t, err)
		require.True(t, InRange(n, lo, gmp.NewInt(8)), n.String())
	}
}

func TestRandomIntShortRead(t *testing.T) {
	_, err := RandomInt(bytes.NewReader(nil), gmp.NewInt(1000))
	assert.Error(t, err)
}

func TestSafePrime(t *testing.T) {
	sizes := []int{3, 6, 8, 16, 47, 64, 65, 128, 256}
	if !testing.Short() {
		sizes = append(sizes, 512)
	}
	for _, bits := range sizes {
		p, err := SafePrime(crand.Reader, bits, 0)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, IsSafePrime(p, DefaultPrimalityRounds), "bits=%d p=%s", bits, p)
	}

	_, err := SafePrime(crand.Reader, 2, 0)
	assert.ErrorIs(t, err, ErrBits)
}

func TestIsSafePrime(t *testing.T) {
	for _, p := range []int64{5, 7, 11, 23, 47, 59, 83, 107, 167, 179, 227} {
		assert.True(t, IsSafePrime(gmp.NewInt(p), 0), "p=%d", p)
	}
	for _, p := range []int64{1, 2, 3, 13, 17, 29, 31, 41, 57, 101} {
		assert.False(t, IsSafePrime(gmp.NewInt(p), 0), "p=%d", p)
	}
}

func TestSieve(t *testing.T) {
	assert.True(t, sieve(227))  // 227 = 2*113+1
	assert.False(t, sieve(15))  // divisible by 3 and 5
	assert.False(t, sieve(3*7)) // divisible by 3
	assert.False(t, sieve(31))  // 31 = 1 mod 3, so (p-1)/2 divisible by 3
}

func BenchmarkSafePrime256(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := SafePrime(crand.Reader, 256, 0); err != nil {
			b.Fatal(err)
		}
	}
}
