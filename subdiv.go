package gcdext

var natOne = nat{1}

// A reduction is an extended GCD in progress for operands A >= B > 0.
// The current operands a and b are both positive, and the cofactor pair
// satisfies
//
//	a ≡ u1·A,  b ≡ -u0·A  (mod B)
//
// with B = u0·a + u1·b, so neither cofactor exceeds B. All four values
// live in buffers allocated once per call; their capacity is never
// exceeded.
type reduction struct {
	a, b   nat
	u0, u1 nat
}

// A result is a finished reduction: the gcd g and the cofactor s of A.
// Both are independent of the buffers of the reduction.
type result struct {
	g nat
	s cofactor
}

// done finishes a reduction whose operands are both equal to g.
func (r *reduction) done(g nat) *result {
	return &result{g: nat(nil).set(g), s: pickCofactor(r.u0, r.u1)}
}

// subdiv performs one exact Euclidean step on the larger operand. It
// returns nil when the operands were reduced, or the result once they
// are equal.
func (r *reduction) subdiv(stk *stack) *result {
	switch r.a.cmp(r.b) {
	case 1:
		r.a, r.u1 = reduceLarger(stk, r.a, r.b, r.u1, r.u0)
	case -1:
		r.b, r.u0 = reduceLarger(stk, r.b, r.a, r.u0, r.u1)
	}
	if r.a.cmp(r.b) == 0 {
		return r.done(r.a)
	}
	return nil
}

// subdivItch bounds the stack words taken by subdiv on operands of at
// most n words.
func subdivItch(n int) int {
	return words(n+2) + words(n+1) + max(divItch(n), productItch(n+1))
}

// reduceLarger replaces x > y by x - q·y and ux by ux + q·uy. It
// subtracts once, and divides only if the difference still exceeds y.
// An exact multiple is reduced by one less than its quotient, which
// leaves x == y instead of zero.
func reduceLarger(stk *stack, x, y, ux, uy nat) (nat, nat) {
	defer stk.restore(stk.save())
	x = x.sub(x, y)
	ux = addMulTo(stk, ux, uy, natOne)
	if x.cmp(y) <= 0 {
		return x, ux
	}
	q, rem := stk.nat(len(x)-len(y)+2).div(stk, stk.nat(len(x)+1), x, y)
	if len(rem) == 0 {
		subVW(q, q, 1)
		q = q.norm()
		rem = y
	}
	return setInto(x, rem), addMulTo(stk, ux, uy, q)
}

// hgcdSubdiv is the exact step inside hgcd at level s. It accumulates the
// quotient into m and never leaves an operand with s words or fewer; it
// reports false when no step satisfies that bound.
func hgcdSubdiv(stk *stack, a, b nat, s int, m *hgcdMatrix) (nat, nat, bool) {
	var ok bool
	switch a.cmp(b) {
	case 1:
		a, ok = reduceAbove(stk, a, b, s, m, 1, 0)
	case -1:
		b, ok = reduceAbove(stk, b, a, s, m, 0, 1)
	}
	return a, b, ok
}

// hgcdSubdivItch bounds the stack words taken by hgcdSubdiv on operands
// and matrix entries of at most n words.
func hgcdSubdivItch(n int) int {
	return words(n) + words(n+2) + words(n+1) + max(divItch(n), words(n+1)+productItch(n+1))
}

// reduceAbove replaces x > y by x - q·y for the largest q that keeps the
// result longer than s words, and adds q times column src of m to
// column dst.
func reduceAbove(stk *stack, x, y nat, s int, m *hgcdMatrix, dst, src int) (nat, bool) {
	defer stk.restore(stk.save())
	d := stk.nat(len(x)).sub(x, y)
	if len(d) <= s {
		return x, false
	}
	q := natOne
	if d.cmp(y) >= 0 {
		q2, r2 := stk.nat(len(d)-len(y)+2).div(stk, stk.nat(len(d)+1), d, y)
		if len(r2) <= s {
			// Stop one quotient short: r2 + y still has more than s words.
			q = q2
			d = stk.nat(len(y)+1).add(r2, y)
		} else {
			q = stk.nat(len(q2)+1).add(q2, natOne)
			d = r2
		}
	}
	m.addCol(stk, dst, src, q)
	return setInto(x, d), true
}
