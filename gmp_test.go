//go:build gmp

// Cross-checks against libgmp's mpz_gcdext. Requires libgmp:
//
//	go test -tags=gmp -run=GMP

package gcdext

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/ncw/gmp"
	"github.com/stretchr/testify/require"
)

func toGMP(x *big.Int) *gmp.Int {
	return new(gmp.Int).SetBytes(x.Bytes())
}

func fromGMP(t *testing.T, x *gmp.Int) *big.Int {
	z, ok := new(big.Int).SetString(x.String(), 10)
	require.True(t, ok)
	return z
}

func TestGMPGCDExt(t *testing.T) {
	for _, bits := range []int{64, 200, 1000, 10000, 60000} {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		for i := 0; i < 10; i++ {
			a, err := rand.Int(rand.Reader, limit)
			require.NoError(t, err)
			b, err := rand.Int(rand.Reader, limit)
			require.NoError(t, err)
			if a.Sign() == 0 || b.Sign() == 0 {
				continue
			}

			g, s, c := GCDExt(a, b)
			gg, gs, gt := new(gmp.Int), new(gmp.Int), new(gmp.Int)
			gg.GCD(gs, gt, toGMP(a), toGMP(b))

			require.Zero(t, g.Cmp(fromGMP(t, gg)), "g for %d-bit operands", bits)
			require.Zero(t, s.Cmp(fromGMP(t, gs)), "s for %d-bit operands", bits)
			require.Zero(t, c.Cmp(fromGMP(t, gt)), "t for %d-bit operands", bits)
		}
	}
}
