// Package group generates the parameters ElGamal runs over: a safe prime
// p = 2q+1 and a generator g of the subgroup of quadratic residues mod p,
// which has prime order q.
package group

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/ncw/gmp"
	"github.com/sachaservan/elgamal/bigint"
)

const (
	MinBits = 6
	MaxBits = 1024

	// DefaultMaxAttempts bounds the generator search. For a safe prime about
	// half of all candidates qualify, so hitting the bound means the random
	// source is broken.
	DefaultMaxAttempts = 1000
)

var (
	ErrInvalidBits       = fmt.Errorf("group: bit length must be in [%d, %d]", MinBits, MaxBits)
	ErrGeneratorNotFound = errors.New("group: no generator found within attempt limit")
	ErrInvalidParameters = errors.New("group: invalid parameters")
)

var (
	bigOne = gmp.NewInt(1)
	bigTwo = gmp.NewInt(2)
)

// Group holds the public parameters shared by both halves of a key pair.
type Group struct {
	P *gmp.Int // safe prime modulus
	Q *gmp.Int // (P - 1) / 2, the order of G
	G *gmp.Int // generator of the quadratic residues mod P
}

// Generator produces Groups. The zero value uses crypto/rand, the default
// number of primality rounds and DefaultMaxAttempts.
type Generator struct {
	Random      io.Reader
	Rounds      int // Miller-Rabin rounds for the safe prime search
	MaxAttempts int // ceiling on generator candidates per group
}

// NewGenerator returns a Generator with every field set to its default.
func NewGenerator() *Generator {
	return &Generator{
		Random:      crand.Reader,
		Rounds:      bigint.DefaultPrimalityRounds,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Generate builds a new Group of the given size using the default Generator.
func Generate(bits int) (*Group, error) {
	return NewGenerator().Generate(bits)
}

// Generate samples a safe prime of bits bits and a generator of its
// quadratic-residue subgroup.
func (gen *Generator) Generate(bits int) (*Group, error) {
	if bits < MinBits || bits > MaxBits {
		return nil, ErrInvalidBits
	}

	p, err := bigint.SafePrime(gen.random(), bits, gen.Rounds)
	if err != nil {
		return nil, err
	}

	g, err := gen.FindGenerator(p)
	if err != nil {
		return nil, err
	}

	q := new(gmp.Int).Sub(p, bigOne)
	q.Rsh(q, 1)

	return &Group{P: p, Q: q, G: g}, nil
}

// FindGenerator returns a generator of the order (p-1)/2 subgroup of Z_p*
// for a safe prime p.
//
// The only prime divisors of p-1 = 2q are 2 and q, so a candidate c is a
// primitive root iff c^q != 1 and c^2 != 1 (mod p). Squaring a primitive root
// lands in the quadratic residues and generates all of them.
func (gen *Generator) FindGenerator(p *gmp.Int) (*gmp.Int, error) {
	if p.Cmp(bigTwo) == 0 {
		return bigint.ModExp(bigTwo, bigTwo, p), nil
	}
	if p.Cmp(bigTwo) < 0 {
		return nil, ErrInvalidParameters
	}

	q := new(gmp.Int).Sub(p, bigOne)
	q.Rsh(q, 1)

	// candidates are uniform in [2, p-1]
	hi := new(gmp.Int).Set(p)

	attempts := gen.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		c, err := bigint.RandomRange(gen.random(), bigTwo, hi)
		if err != nil {
			return nil, err
		}

		if bigint.ModExp(c, q, p).Cmp(bigOne) == 0 {
			continue
		}

		c2 := bigint.ModExp(c, bigTwo, p)
		if c2.Cmp(bigOne) == 0 {
			continue
		}
		return c2, nil
	}

	return nil, ErrGeneratorNotFound
}

func (gen *Generator) random() io.Reader {
	if gen.Random == nil {
		return crand.Reader
	}
	return gen.Random
}

// Validate checks that P is a safe prime with Q = (P-1)/2 and that G is a
// non-trivial element of the order Q subgroup.
func (grp *Group) Validate(rounds int) error {
	if grp.P == nil || grp.Q == nil || grp.G == nil {
		return fmt.Errorf("%w: missing value", ErrInvalidParameters)
	}
	if !bigint.IsSafePrime(grp.P, rounds) {
		return fmt.Errorf("%w: p is not a safe prime", ErrInvalidParameters)
	}

	q := new(gmp.Int).Sub(grp.P, bigOne)
	q.Rsh(q, 1)
	if q.Cmp(grp.Q) != 0 {
		return fmt.Errorf("%w: q != (p-1)/2", ErrInvalidParameters)
	}

	pMinusOne := new(gmp.Int).Sub(grp.P, bigOne)
	if grp.G.Cmp(bigOne) <= 0 || grp.G.Cmp(pMinusOne) >= 0 {
		return fmt.Errorf("%w: g not in (1, p-1)", ErrInvalidParameters)
	}
	if bigint.ModExp(grp.G, grp.Q, grp.P).Cmp(bigOne) != 0 {
		return fmt.Errorf("%w: g^q != 1 mod p", ErrInvalidParameters)
	}
	return nil
}

func (grp *Group) String() string {
	return fmt.Sprintf("Group[P=%s, G=%s]", grp.P, grp.G)
}
