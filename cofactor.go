package gcdext

import "math/big"

// A cofactor is a signed multi-precision integer kept as sign and
// magnitude. Zero is never negative.
type cofactor struct {
	neg bool
	mag nat
}

func newCofactor(neg bool, mag nat) cofactor {
	mag = mag.norm()
	return cofactor{neg: neg && len(mag) > 0, mag: mag}
}

func (c cofactor) sign() int {
	switch {
	case len(c.mag) == 0:
		return 0
	case c.neg:
		return -1
	}
	return 1
}

// setInt sets z to c, negated if flip is set, and returns z.
func (c cofactor) setInt(z *big.Int, flip bool) *big.Int {
	z.SetBits(c.mag.intBits())
	if c.neg != flip {
		z.Neg(z)
	}
	return z
}

// pickCofactor returns the cofactor of A once both reduced operands equal
// g. With a ≡ u1·A and b ≡ -u0·A (mod B), both +u1 and -u0 satisfy
// g ≡ s·A (mod B); the one of smaller magnitude is taken, +u1 on a tie.
// Since u0 + u1 = B/g, the result is at most B/(2g) in magnitude.
// The magnitude is copied out of the cofactor buffers.
func pickCofactor(u0, u1 nat) cofactor {
	if u1.cmp(u0) <= 0 {
		return newCofactor(false, nat(nil).set(u1))
	}
	return newCofactor(true, nat(nil).set(u0))
}

// companionItch bounds the stack words taken by companion for an m-word A
// and an n-word B.
func companionItch(m, n int) int {
	return words(mulLen(n, m)) + max(mulItch(n), words(m+n+1)+words(m+n+2)+divItch(n))
}

// companion returns the cofactor t of B with A·s + B·t = g, that is
// t = (g - s·A)/B. The division must be exact.
func companion(stk *stack, A, B, g nat, s cofactor) cofactor {
	if s.sign() == 0 {
		// g = B
		return cofactor{mag: nat{1}}
	}
	defer stk.restore(stk.save())
	p := stk.nat(mulLen(len(s.mag), len(A)))
	p = p.mul(stk, s.mag, A)
	var num nat
	if s.neg {
		num = stk.nat(len(p)+1).add(p, g)
	} else {
		num = stk.nat(len(p)).sub(p, g)
	}
	return newCofactor(!s.neg, nat(nil).divExact(stk, num, B))
}
