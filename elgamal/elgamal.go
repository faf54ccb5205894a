// Package elgamal implements ElGamal encryption over the quadratic-residue
// subgroup of Z_p* for a safe prime p. Keys, plaintexts and ciphertexts are
// exchanged as decimal strings; arithmetic is done with GMP.
package elgamal

import (
	crand "crypto/rand"
	"errors"
	"io"

	"github.com/ncw/gmp"
	"github.com/sachaservan/elgamal/bigint"
	"github.com/sachaservan/elgamal/group"
)

var (
	bigOne  = gmp.NewInt(1)
	bigTwo  = gmp.NewInt(2)
	bigFour = gmp.NewInt(4)
)

// KeyPairGenerator creates key pairs. The zero value is ready to use.
type KeyPairGenerator struct {
	Groups *group.Generator // nil means group.NewGenerator()
	Random io.Reader        // source for the secret exponent, nil means crypto/rand
}

// GenerateKeyPair creates a fresh group of the given size and a key pair
// over it.
func GenerateKeyPair(bits int) (*PublicKey, *PrivateKey, error) {
	return (&KeyPairGenerator{}).Generate(bits)
}

// Generate creates a fresh group of the given size and a key pair over it.
func (kg *KeyPairGenerator) Generate(bits int) (*PublicKey, *PrivateKey, error) {
	groups := kg.Groups
	if groups == nil {
		groups = group.NewGenerator()
	}

	grp, err := groups.Generate(bits)
	if errors.Is(err, group.ErrInvalidBits) {
		return nil, nil, invalidArgument("bit length %d outside [%d, %d]", bits, group.MinBits, group.MaxBits)
	}
	if err != nil {
		return nil, nil, arithmeticError("generate group", err)
	}

	return kg.generateFromGroup(grp)
}

// generateFromGroup samples x in [2, p-2] and derives h = g^x mod p.
// Exponents with g^x = x are redrawn so that h never equals x; this only
// happens with noticeable probability for toy-sized groups.
func (kg *KeyPairGenerator) generateFromGroup(grp *group.Group) (*PublicKey, *PrivateKey, error) {
	// x = 2 + r for r uniform in [0, p-4)
	bound := new(gmp.Int).Sub(grp.P, bigFour)

	for i := 0; i < group.DefaultMaxAttempts; i++ {
		x, err := bigint.RandomInt(randomOrDefault(kg.Random), bound)
		if err != nil {
			return nil, nil, arithmeticError("sample secret exponent", err)
		}
		x.Add(x, bigTwo)

		h := bigint.ModExp(grp.G, x, grp.P)
		if h.Cmp(x) == 0 {
			continue
		}

		p := bigint.ToDecimal(grp.P)
		g := bigint.ToDecimal(grp.G)

		return &PublicKey{p: p, g: g, h: bigint.ToDecimal(h)},
			&PrivateKey{p: p, g: g, x: bigint.ToDecimal(x)},
			nil
	}

	return nil, nil, arithmeticError("sample secret exponent", errExponentNotFound)
}

// Cipher encrypts and decrypts. The zero value draws ephemeral randomness
// from crypto/rand.
type Cipher struct {
	Random io.Reader
}

var defaultCipher = &Cipher{}

// Encrypt encrypts message under pk with fresh randomness.
func (pk *PublicKey) Encrypt(message string) (*Ciphertext, error) {
	return defaultCipher.Encrypt(pk, message)
}

// Decrypt recovers the decimal plaintext of ct.
func (sk *PrivateKey) Decrypt(ct *Ciphertext) (string, error) {
	return defaultCipher.Decrypt(sk, ct)
}

// Encrypt encrypts the decimal integer message, which must satisfy
// 1 <= m < p. Every call samples a new ephemeral exponent r in [1, p-1) and
// returns (g^r mod p, h^r * m mod p).
func (c *Cipher) Encrypt(pk *PublicKey, message string) (*Ciphertext, error) {
	if pk == nil {
		return nil, invalidArgument("nil public key")
	}
	p, g, h, err := pk.values()
	if err != nil {
		return nil, err
	}

	m, err := bigint.FromDecimal(message)
	if err != nil {
		return nil, arithmeticError("parse message", err)
	}

	pMinusOne := new(gmp.Int).Sub(p, bigOne)
	if !bigint.InRange(m, bigOne, pMinusOne) {
		return nil, invalidArgument("message must be in [1, p-1]")
	}

	r, err := bigint.RandomRange(randomOrDefault(c.Random), bigOne, pMinusOne)
	if err != nil {
		return nil, arithmeticError("sample ephemeral exponent", err)
	}

	c1 := bigint.ModExp(g, r, p)
	s := bigint.ModExp(h, r, p)
	c2 := bigint.ModMul(s, m, p)

	return &Ciphertext{c1: bigint.ToDecimal(c1), c2: bigint.ToDecimal(c2)}, nil
}

// Decrypt computes s = c1^x mod p and returns c2 * s^(p-2) mod p, which is
// c2 / s since p is prime. Both ciphertext components must lie in [1, p-1].
func (c *Cipher) Decrypt(sk *PrivateKey, ct *Ciphertext) (string, error) {
	if sk == nil || ct == nil {
		return "", invalidArgument("nil private key or ciphertext")
	}
	p, _, x, err := sk.values()
	if err != nil {
		return "", err
	}
	c1, c2, err := ct.values()
	if err != nil {
		return "", err
	}

	pMinusOne := new(gmp.Int).Sub(p, bigOne)
	if !bigint.InRange(c1, bigOne, pMinusOne) || !bigint.InRange(c2, bigOne, pMinusOne) {
		return "", invalidArgument("ciphertext component outside [1, p-1]")
	}

	s := bigint.ModExp(c1, x, p)
	m := bigint.ModMul(c2, bigint.ModInverse(s, p), p)

	return bigint.ToDecimal(m), nil
}

func randomOrDefault(r io.Reader) io.Reader {
	if r == nil {
		return crand.Reader
	}
	return r
}
