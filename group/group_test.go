package group

import (
	"bytes"
	"testing"

	"github.com/ncw/gmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSubgroupMembership(t *testing.T) {
	sizes := []int{MinBits, 7, 8, 12, 16, 32, 47, 64, 128}
	if !testing.Short() {
		sizes = append(sizes, 512, MaxBits)
	}

	for _, bits := range sizes {
		grp, err := Generate(bits)
		require.NoError(t, err, "bits=%d", bits)

		assert.Equal(t, bits, grp.P.BitLen())
		require.NoError(t, grp.Validate(0), "bits=%d %s", bits, grp)

		// g^q = 1 mod p
		r := new(gmp.Int).Exp(grp.G, grp.Q, grp.P)
		assert.Equal(t, "1", r.String())
	}
}

func TestGenerateRejectsBits(t *testing.T) {
	for _, bits := range []int{-1, 0, 1, 5, MaxBits + 1, 4096} {
		_, err := Generate(bits)
		assert.ErrorIs(t, err, ErrInvalidBits, "bits=%d", bits)
	}
}

func TestFindGeneratorSmallPrimes(t *testing.T) {
	gen := NewGenerator()

	for _, p := range []int64{5, 7, 11, 23, 47, 59, 83, 107, 167, 227} {
		P := gmp.NewInt(p)
		Q := gmp.NewInt((p - 1) / 2)

		g, err := gen.FindGenerator(P)
		require.NoError(t, err)

		// g generates the q-element subgroup: g^q = 1 and g != 1
		assert.Equal(t, "1", new(gmp.Int).Exp(g, Q, P).String(), "p=%d g=%s", p, g)
		assert.NotEqual(t, "1", g.String(), "p=%d", p)
	}
}

func TestFindGeneratorTwo(t *testing.T) {
	g, err := NewGenerator().FindGenerator(gmp.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "0", g.String())
}

func TestFindGeneratorAttemptCeiling(t *testing.T) {
	// an all-zero source always draws the candidate 2, and 2^3 = 1 mod 7
	gen := &Generator{
		Random:      bytes.NewReader(make([]byte, 64)),
		MaxAttempts: 8,
	}
	_, err := gen.FindGenerator(gmp.NewInt(7))
	assert.ErrorIs(t, err, ErrGeneratorNotFound)
}

func TestValidateRejectsBadGroups(t *testing.T) {
	good, err := Generate(16)
	require.NoError(t, err)

	cases := map[string]*Group{
		"missing":     {P: good.P, Q: good.Q},
		"not safe":    {P: gmp.NewInt(13), Q: gmp.NewInt(6), G: gmp.NewInt(4)},
		"wrong q":     {P: good.P, Q: new(gmp.Int).Add(good.Q, gmp.NewInt(2)), G: good.G},
		"g is one":    {P: good.P, Q: good.Q, G: gmp.NewInt(1)},
		"g = p-1":     {P: good.P, Q: good.Q, G: new(gmp.Int).Sub(good.P, gmp.NewInt(1))},
		"non-residue": {P: gmp.NewInt(23), Q: gmp.NewInt(11), G: gmp.NewInt(5)},
	}
	for name, grp := range cases {
		assert.ErrorIs(t, grp.Validate(0), ErrInvalidParameters, name)
	}
}

func BenchmarkGenerate256(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Generate(256); err != nil {
			b.Fatal(err)
		}
	}
}
