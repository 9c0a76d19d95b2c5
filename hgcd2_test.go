package gcdext

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordMatrixBig(m wordMatrix) [2][2]*big.Int {
	var b [2][2]*big.Int
	for i := range m {
		for j := range m[i] {
			b[i][j] = new(big.Int).SetUint64(uint64(m[i][j]))
		}
	}
	return b
}

// reduceBig returns (m11·a - m01·b, m00·b - m10·a).
func reduceBig(m [2][2]*big.Int, a, b *big.Int) (*big.Int, *big.Int) {
	alpha := new(big.Int).Mul(m[1][1], a)
	alpha.Sub(alpha, new(big.Int).Mul(m[0][1], b))
	beta := new(big.Int).Mul(m[0][0], b)
	beta.Sub(beta, new(big.Int).Mul(m[1][0], a))
	return alpha, beta
}

func det(m [2][2]*big.Int) *big.Int {
	d := new(big.Int).Mul(m[0][0], m[1][1])
	return d.Sub(d, new(big.Int).Mul(m[0][1], m[1][0]))
}

func TestTopWords(t *testing.T) {
	a := nat{0x3, 0x5, 0x1}
	b := nat{0x7, 0x2}
	ah, al, bh, bl := topWords(a, b, 3)
	h := nlz(1)
	assert.Equal(t, Word(1)<<h|Word(5)>>(_W-h), ah)
	assert.Equal(t, Word(5)<<h|Word(3)>>(_W-h), al)
	assert.Equal(t, Word(2)>>(_W-h), bh)
	assert.Equal(t, Word(2)<<h|Word(7)>>(_W-h), bl)

	// A set top bit needs no shift.
	ah, al, _, _ = topWords(nat{9, _M}, nat{1}, 2)
	assert.Equal(t, Word(_M), ah)
	assert.Equal(t, Word(9), al)
}

func TestHgcd2Equal(t *testing.T) {
	_, ok := hgcd2(_M, 17, _M, 17)
	assert.False(t, ok, "equal operands cannot be reduced")
	_, ok = hgcd2(1<<(_W-1), 0, 1<<(_W-1), 1)
	assert.False(t, ok, "operands one apart cannot be reduced")
}

// TestHgcd2Operands checks the leaf step against full operands: the
// matrix has determinant 1 and reduces both operands to at least 2^k,
// where k is the truncation point of the double-word prefixes.
func TestHgcd2Operands(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	reduced := 0
	for i := 0; i < 2000; i++ {
		n := 2 + r.Intn(6)
		a := rndNat(r, n)
		b := rndNat(r, n-r.Intn(2))
		if i%2 == 0 {
			a, b = b, a
		}
		ah, al, bh, bl := topWords(a, b, n)
		m, ok := hgcd2(ah, al, bh, bl)
		if !ok {
			require.Equal(t, identityWords, m)
			continue
		}
		reduced++

		mb := wordMatrixBig(m)
		require.Zero(t, det(mb).Cmp(big.NewInt(1)), "det of %v", m)

		h := int(nlz(word(a, n-1) | word(b, n-1)))
		k := (n-2)*_W - h
		lower := big.NewInt(1)
		if k > 0 {
			lower.Lsh(lower, uint(k))
		}
		alpha, beta := reduceBig(mb, toBig(a), toBig(b))
		require.True(t, alpha.Cmp(lower) >= 0, "alpha = %v below 2^%d", alpha, k)
		require.True(t, beta.Cmp(lower) >= 0, "beta = %v below 2^%d", beta, k)
	}
	assert.Greater(t, reduced, 1000)
}

// On exact two-word operands the leaf step agrees with Euclid as far as it goes.
func TestHgcd2Exact(t *testing.T) {
	a := nat{0, 1} // 2^_W
	b := nat{3}
	ah, al, bh, bl := topWords(a, b, 2)
	m, ok := hgcd2(ah, al, bh, bl)
	require.True(t, ok)
	alpha, beta := reduceBig(wordMatrixBig(m), toBig(a), toBig(b))
	assert.Equal(t, 1, alpha.Sign())
	assert.Equal(t, 1, beta.Sign())
	g := new(big.Int).GCD(nil, nil, alpha, beta)
	assert.Zero(t, g.Cmp(big.NewInt(1)))
}
