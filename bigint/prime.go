package bigint

import (
	"io"

	"github.com/ncw/gmp"
)

// DefaultPrimalityRounds is the number of Miller-Rabin rounds used when the
// caller does not ask for a specific certainty.
const DefaultPrimalityRounds = 20

// smallPrimes are the odd primes whose product still fits in a uint64.
var smallPrimes = []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

var smallPrimesProduct = new(gmp.Int).SetUint64(16294579238595022365)

// SafePrime returns a prime p of exactly bits bits such that (p-1)/2 is also
// prime, each tested with rounds Miller-Rabin iterations.
func SafePrime(rand io.Reader, bits int, rounds int) (*gmp.Int, error) {
	if bits < 3 {
		return nil, ErrBits
	}
	if rounds <= 0 {
		rounds = DefaultPrimalityRounds
	}

	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}

	buf := make([]byte, (bits+7)/8)
	p := new(gmp.Int)
	q := new(gmp.Int)
	r := new(gmp.Int)

	for {
		_, err := io.ReadFull(rand, buf)
		if err != nil {
			return nil, err
		}

		// Clear bits in the first byte so the candidate has at most bits bits,
		// then set the top one so it has exactly that many.
		buf[0] &= uint8(int(1<<b) - 1)
		buf[0] |= 1 << (b - 1)

		// Setting the low two bits makes p odd and p>>1 odd.
		buf[len(buf)-1] |= 3
		p.SetBytes(buf)

		if bits > 64 && !sieve(r.Rem(p, smallPrimesProduct).Uint64()) {
			continue
		}

		if !p.ProbablyPrime(rounds) {
			continue
		}

		// (p-1)/2 == p>>1 since p is odd
		q.Rsh(p, 1)
		if q.ProbablyPrime(rounds) {
			return p, nil
		}
	}
}

// sieve reports whether a candidate with residue mod smallPrimesProduct can
// still be a safe prime: p must not be divisible by a small prime, and
// neither may (p-1)/2, which is the case exactly when p = 1 mod that prime.
func sieve(residue uint64) bool {
	for _, sp := range smallPrimes {
		m := residue % sp
		if m == 0 || m == 1 {
			return false
		}
	}
	return true
}

// IsSafePrime reports whether p and (p-1)/2 are both probably prime.
func IsSafePrime(p *gmp.Int, rounds int) bool {
	if rounds <= 0 {
		rounds = DefaultPrimalityRounds
	}
	if p.Cmp(two) <= 0 || !p.ProbablyPrime(rounds) {
		return false
	}
	q := new(gmp.Int).Sub(p, one)
	q.Rsh(q, 1)
	return q.ProbablyPrime(rounds)
}
