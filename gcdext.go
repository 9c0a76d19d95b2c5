// Package gcdext computes extended greatest common divisors of
// arbitrary-precision integers: g = gcd(a, b) together with Bézout
// coefficients s, t such that a·s + b·t = g.
//
// Small operands are reduced with Lehmer's algorithm on word-pair
// approximations; large operands are first shortened by recursive
// half-GCD reductions, which makes the cost quasi-linear in the operand
// length, in the manner of GMP's mpn_gcdext. The coefficients are the
// minimal ones, with the same normalization GMP uses.
package gcdext

import "math/big"

// Operands shorter than gcdextDCThreshold words go straight to the
// Lehmer driver; longer ones are first reduced with hgcd.
var gcdextDCThreshold = 140 // computed by calibrate_test.go

// gcdextItch returns the stack words needed by gcdext and companion for
// an m-word A and an n-word B. Callers reserve it once up front.
func gcdextItch(m, n int) int {
	base := 2*words(n) + 2*words(n+1)
	pre := 0
	if m > n {
		base += words(m-n+2) + words(m+1)
		pre = divItch(n)
	}
	reduce := 4*words(hgcdMatrixCap(n)) + max(hgcdItch(n), 2*productItch(n+1))
	loop := max(reduce, subdivItch(n), lehmerItch(n))
	return max(base+max(pre, loop), companionItch(m, n))
}

// gcdext returns g = gcd(A, B) and the cofactor s of A with
// g ≡ s·A (mod B) and |s| <= B/(2g); s is zero when B divides A.
// It requires A >= B > 0 and a stack with gcdextItch(len(A), len(B))
// words available.
func gcdext(stk *stack, A, B nat) *result {
	defer stk.restore(stk.save())
	n := len(B)

	r := &reduction{
		a:  stk.nat(n),
		b:  stk.nat(n),
		u0: stk.nat(n + 1)[:0],
		u1: stk.nat(n + 1),
	}
	if len(A) > n {
		_, rem := stk.nat(len(A)-n+2).div(stk, stk.nat(len(A)+1), A, B)
		if len(rem) == 0 {
			return &result{g: nat(nil).set(B)}
		}
		r.a = setInto(r.a, rem)
	} else {
		r.a = setInto(r.a, A)
	}
	r.b = setInto(r.b, B)
	r.u1 = r.u1.setWord(1)

	first := true
	for {
		n := max(len(r.a), len(r.b))
		if n < gcdextDCThreshold {
			break
		}
		// The first reduction takes the top half; later ones take the
		// top two thirds, since the cofactors now cost as much to update
		// as the operands.
		p := n / 3
		if first {
			p = n / 2
			first = false
		}
		mark := stk.save()
		reduced := false
		if min(len(r.a), len(r.b)) > p {
			m := newHgcdMatrix(stk, hgcdMatrixCap(n-p))
			if ah, bh, ok := hgcd(stk, r.a[p:], r.b[p:], m); ok {
				r.a, r.b = m.adjust(stk, r.a, r.b, ah, bh, p)
				r.u0, r.u1 = rowMul(stk, r.u0, r.u1, m)
				reduced = true
			}
		}
		stk.restore(mark)
		if !reduced {
			if res := r.subdiv(stk); res != nil {
				return res
			}
		}
	}
	return r.lehmer(stk)
}

// GCDExt returns g = gcd(a, b) and Bézout coefficients s, t with
// a·s + b·t = g. The result g is never negative.
//
// The operands may have any sign; s and t take the signs that satisfy
// the identity. If a and b are nonzero and differ in magnitude,
// |s| <= |b|/(2g) and |t| <= |a|/(2g). If |b| divides |a|, s is zero.
// In particular
//
//	GCDExt(0, 0) = (0, 0, 0)
//	GCDExt(a, 0) = (|a|, ±1, 0)
//	GCDExt(0, b) = (|b|, 0, ±1)
//	GCDExt(a, a) = (|a|, 0, ±1)
func GCDExt(a, b *big.Int) (g, s, t *big.Int) {
	g, s, t = new(big.Int), new(big.Int), new(big.Int)
	GCDExtInto(g, s, t, a, b)
	return
}

// GCDExtInto sets g to gcd(a, b) and, when they are not nil, s and t to
// the Bézout coefficients of GCDExt. It returns g. The results may alias
// the operands.
func GCDExtInto(g, s, t, a, b *big.Int) *big.Int {
	x, y := newNat(a), newNat(b)
	xneg, yneg := a.Sign() < 0, b.Sign() < 0
	if x.cmp(y) < 0 {
		x, y = y, x
		xneg, yneg = yneg, xneg
		s, t = t, s
	}
	// x >= y

	var gn nat
	var cx, cy cofactor
	if len(y) == 0 {
		gn = x
		if len(x) > 0 {
			cx = cofactor{mag: natOne}
		}
	} else {
		stk := getStack()
		defer stk.free()
		stk.reserve(gcdextItch(len(x), len(y)))
		res := gcdext(stk, x, y)
		gn, cx = res.g, res.s
		if t != nil {
			cy = companion(stk, x, y, gn, cx)
		}
	}

	if s != nil {
		cx.setInt(s, xneg)
	}
	if t != nil {
		cy.setInt(t, yneg)
	}
	return g.SetBits(gn.intBits())
}

// GCD returns gcd(a, b), which is never negative.
func GCD(a, b *big.Int) *big.Int {
	return GCDExtInto(new(big.Int), nil, nil, a, b)
}

// ModInverse returns the inverse of x modulo |m| in [0, |m|), or nil if
// x and m are not relatively prime or m is zero.
func ModInverse(x, m *big.Int) *big.Int {
	if m.Sign() == 0 {
		return nil
	}
	mm := new(big.Int).Abs(m)
	g, s := new(big.Int), new(big.Int)
	GCDExtInto(g, s, nil, x, mm)
	if g.BitLen() != 1 {
		return nil
	}
	return s.Mod(s, mm)
}
