package elgamal

import (
	"encoding/json"
	"fmt"

	"github.com/ncw/gmp"
	"github.com/sachaservan/elgamal/bigint"
)

// PublicKey is an ElGamal public key. All values are decimal strings and
// are fixed at construction.
type PublicKey struct {
	p string // safe prime modulus
	g string // generator of the quadratic residues mod p
	h string // g^x mod p
}

// PrivateKey is the secret half of a key pair. It carries the same p and g
// as its PublicKey.
type PrivateKey struct {
	p string
	g string
	x string // secret exponent in [2, p-2]
}

// Ciphertext is the pair (c1, c2) = (g^r, h^r * m) mod p.
type Ciphertext struct {
	c1 string
	c2 string
}

type publicKeyWrapper struct {
	P string `json:"p"`
	G string `json:"g"`
	H string `json:"h"`
}

type privateKeyWrapper struct {
	P string `json:"p"`
	G string `json:"g"`
	X string `json:"x"`
}

type ciphertextWrapper struct {
	C1 string `json:"c1"`
	C2 string `json:"c2"`
}

// NewPublicKey builds a PublicKey from decimal strings.
func NewPublicKey(p, g, h string) (*PublicKey, error) {
	if err := checkDecimal("public key", p, g, h); err != nil {
		return nil, err
	}
	return &PublicKey{p: p, g: g, h: h}, nil
}

// NewPrivateKey builds a PrivateKey from decimal strings.
func NewPrivateKey(p, g, x string) (*PrivateKey, error) {
	if err := checkDecimal("private key", p, g, x); err != nil {
		return nil, err
	}
	return &PrivateKey{p: p, g: g, x: x}, nil
}

// NewCiphertext builds a Ciphertext from decimal strings.
func NewCiphertext(c1, c2 string) (*Ciphertext, error) {
	if err := checkDecimal("ciphertext", c1, c2); err != nil {
		return nil, err
	}
	return &Ciphertext{c1: c1, c2: c2}, nil
}

func checkDecimal(op string, values ...string) error {
	for _, v := range values {
		if _, err := bigint.FromDecimal(v); err != nil {
			return arithmeticError(op, err)
		}
	}
	return nil
}

func (pk *PublicKey) P() string { return pk.p }
func (pk *PublicKey) G() string { return pk.g }
func (pk *PublicKey) H() string { return pk.h }

func (sk *PrivateKey) P() string { return sk.p }
func (sk *PrivateKey) G() string { return sk.g }
func (sk *PrivateKey) X() string { return sk.x }

func (ct *Ciphertext) C1() string { return ct.c1 }
func (ct *Ciphertext) C2() string { return ct.c2 }

// PublicKey recomputes h = g^x mod p and returns the matching public key.
func (sk *PrivateKey) PublicKey() (*PublicKey, error) {
	p, g, x, err := sk.values()
	if err != nil {
		return nil, err
	}
	h := bigint.ModExp(g, x, p)
	return &PublicKey{p: sk.p, g: sk.g, h: bigint.ToDecimal(h)}, nil
}

func (pk *PublicKey) values() (p, g, h *gmp.Int, err error) {
	return parseTriple("public key", pk.p, pk.g, pk.h)
}

func (sk *PrivateKey) values() (p, g, x *gmp.Int, err error) {
	return parseTriple("private key", sk.p, sk.g, sk.x)
}

func (ct *Ciphertext) values() (c1, c2 *gmp.Int, err error) {
	if c1, err = bigint.FromDecimal(ct.c1); err != nil {
		return nil, nil, arithmeticError("ciphertext", err)
	}
	if c2, err = bigint.FromDecimal(ct.c2); err != nil {
		return nil, nil, arithmeticError("ciphertext", err)
	}
	return c1, c2, nil
}

func parseTriple(op, a, b, c string) (x, y, z *gmp.Int, err error) {
	if x, err = bigint.FromDecimal(a); err != nil {
		return nil, nil, nil, arithmeticError(op, err)
	}
	if y, err = bigint.FromDecimal(b); err != nil {
		return nil, nil, nil, arithmeticError(op, err)
	}
	if z, err = bigint.FromDecimal(c); err != nil {
		return nil, nil, nil, arithmeticError(op, err)
	}
	return x, y, z, nil
}

// CheckKeyPair is a quick consistency check: both halves share p and g and
// the public value differs from the secret exponent. It does not prove that
// h = g^x mod p; use VerifyKeyPair for that.
func CheckKeyPair(pk *PublicKey, sk *PrivateKey) bool {
	if pk == nil || sk == nil {
		return false
	}
	return pk.p == sk.p && pk.g == sk.g && pk.h != sk.x
}

// VerifyKeyPair checks everything CheckKeyPair does, and additionally that
// x lies in [2, p-2] and g^x mod p equals h.
func VerifyKeyPair(pk *PublicKey, sk *PrivateKey) error {
	if !CheckKeyPair(pk, sk) {
		return invalidArgument("public and private key do not match")
	}
	p, g, x, err := sk.values()
	if err != nil {
		return err
	}
	_, _, h, err := pk.values()
	if err != nil {
		return err
	}

	pMinusTwo := new(gmp.Int).Sub(p, bigTwo)
	if !bigint.InRange(x, bigTwo, pMinusTwo) {
		return invalidArgument("secret exponent out of range")
	}
	if bigint.ModExp(g, x, p).Cmp(h) != 0 {
		return invalidArgument("h != g^x mod p")
	}
	return nil
}

func (pk *PublicKey) String() string {
	return fmt.Sprintf("PublicKey[p=%s, g=%s, h=%s]", pk.p, pk.g, pk.h)
}

// String never includes the secret exponent.
func (sk *PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey[p=%s, g=%s, x=[redacted]]", sk.p, sk.g)
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("Ciphertext[c1=%s, c2=%s]", ct.c1, ct.c2)
}

func (pk *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(publicKeyWrapper{P: pk.p, G: pk.g, H: pk.h})
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var w publicKeyWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	key, err := NewPublicKey(w.P, w.G, w.H)
	if err != nil {
		return err
	}
	*pk = *key
	return nil
}

func (sk *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(privateKeyWrapper{P: sk.p, G: sk.g, X: sk.x})
}

func (sk *PrivateKey) UnmarshalJSON(data []byte) error {
	var w privateKeyWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	key, err := NewPrivateKey(w.P, w.G, w.X)
	if err != nil {
		return err
	}
	*sk = *key
	return nil
}

func (ct *Ciphertext) MarshalJSON() ([]byte, error) {
	return json.Marshal(ciphertextWrapper{C1: ct.c1, C2: ct.c2})
}

func (ct *Ciphertext) UnmarshalJSON(data []byte) error {
	var w ciphertextWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c, err := NewCiphertext(w.C1, w.C2)
	if err != nil {
		return err
	}
	*ct = *c
	return nil
}
