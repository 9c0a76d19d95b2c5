package gcdext

// An hgcdMatrix is a reduction matrix with multi-word entries, with the
// same conventions as wordMatrix: det M = 1, non-negative entries and
// (a; b) = M·(α; β). Entries live in fixed buffers and never outgrow them.
type hgcdMatrix [2][2]nat

// hgcdMatrixCap is the entry capacity for a matrix that reduces operands
// of n words. An hgcd result keeps both operands longer than n/2+1 words,
// which bounds every entry by n-(n/2+1) words.
func hgcdMatrixCap(n int) int {
	return (n+1)/2 + 1
}

// newHgcdMatrix returns the identity matrix with entry buffers of c words
// taken from stk.
func newHgcdMatrix(stk *stack, c int) *hgcdMatrix {
	m := new(hgcdMatrix)
	for i := range m {
		for j := range m[i] {
			m[i][j] = stk.nat(c)[:0]
		}
	}
	m.reset()
	return m
}

func (m *hgcdMatrix) reset() {
	m[0][0] = m[0][0].setWord(1)
	m[0][1] = m[0][1][:0]
	m[1][0] = m[1][0][:0]
	m[1][1] = m[1][1].setWord(1)
}

// setInto copies x into the buffer of z and returns the result.
// The buffer must be large enough.
func setInto(z, x nat) nat {
	if cap(z) < len(x) {
		panic("gcdext: buffer too small")
	}
	z = z[:len(x)]
	copy(z, x)
	return z
}

// productItch bounds the stack words taken by addMulTo, dot and combine,
// and so by addCol, adjust and rowMul for each of their calls, when no
// value involved has more than n words.
func productItch(n int) int {
	return words(2*n+1) + words(mulLen(n, n)) + mulItch(n)
}

// addMulTo returns z + q·x, stored in the buffer of z.
func addMulTo(stk *stack, z, x, q nat) nat {
	if len(x) == 0 || len(q) == 0 {
		return z
	}
	defer stk.restore(stk.save())
	t := stk.nat(max(len(z), len(x)+len(q)) + 1)
	copy(t, z)
	t[len(z):].clear()
	if len(q) == 1 {
		c := addMulVVW(t[:len(x)], x, q[0])
		addVW(t[len(x):], t[len(x):], c)
	} else {
		p := stk.nat(mulLen(len(x), len(q)))
		p = p.mul(stk, x, q)
		addAt(t, p, 0)
	}
	return setInto(z, t.norm())
}

// addCol adds q times column src to column dst of m.
func (m *hgcdMatrix) addCol(stk *stack, dst, src int, q nat) {
	for i := range m {
		m[i][dst] = addMulTo(stk, m[i][dst], m[i][src], q)
	}
}

// mulAdd2 sets z = x·p + y·q. z must have room for max(len(x), len(y))+2 words.
func mulAdd2(z, x nat, p Word, y nat, q Word) nat {
	n := max(len(x), len(y))
	z = z[:n+2]
	z[len(x)] = mulAddVWW(z[:len(x)], x, p, 0)
	z[len(x)+1:].clear()
	c := addMulVVW(z[:len(y)], y, q)
	addVW(z[len(y):], z[len(y):], c)
	return z.norm()
}

// mulSub2 sets z = x·p - y·q, which must not be negative.
// z must have room for max(len(x), len(y))+1 words.
func mulSub2(z, x nat, p Word, y nat, q Word) nat {
	n := max(len(x), len(y))
	z = z[:n+1]
	z[len(x)] = mulAddVWW(z[:len(x)], x, p, 0)
	z[len(x)+1:].clear()
	c := subMulVVW(z[:len(y)], y, q)
	if subVW(z[len(y):], z[len(y):], c) != 0 {
		panic("gcdext: negative matrix application")
	}
	return z.norm()
}

// applyWordMatrix replaces (a, b) by (α, β) = (m11·a - m01·b, m00·b - m10·a).
// Both results are no larger than the values they replace and are written
// back into the buffers of a and b.
func applyWordMatrix(stk *stack, a, b nat, m wordMatrix) (nat, nat) {
	defer stk.restore(stk.save())
	n := max(len(a), len(b)) + 1
	ta := mulSub2(stk.nat(n), a, m[1][1], b, m[0][1])
	tb := mulSub2(stk.nat(n), b, m[0][0], a, m[1][0])
	return setInto(a, ta), setInto(b, tb)
}

// rowMulWord replaces the row (r0, r1) by (r0, r1)·m, that is
// (r0·m00 + r1·m10, r0·m01 + r1·m11).
// It serves both cofactor pairs and the rows of an hgcdMatrix.
func rowMulWord(stk *stack, r0, r1 nat, m wordMatrix) (nat, nat) {
	defer stk.restore(stk.save())
	n := max(len(r0), len(r1)) + 2
	t0 := mulAdd2(stk.nat(n), r0, m[0][0], r1, m[1][0])
	t1 := mulAdd2(stk.nat(n), r0, m[0][1], r1, m[1][1])
	return setInto(r0, t0), setInto(r1, t1)
}

// rowMul replaces the row (r0, r1) by (r0, r1)·m for a multi-word matrix.
func rowMul(stk *stack, r0, r1 nat, m *hgcdMatrix) (nat, nat) {
	defer stk.restore(stk.save())
	t0 := dot(stk, r0, m[0][0], r1, m[1][0])
	t1 := dot(stk, r0, m[0][1], r1, m[1][1])
	return setInto(r0, t0), setInto(r1, t1)
}

// dot returns x0·y0 + x1·y1 in a window of stk.
func dot(stk *stack, x0, y0, x1, y1 nat) nat {
	n := max(len(x0)+len(y0), len(x1)+len(y1)) + 1
	z := stk.nat(n)
	z.clear()
	p := stk.nat(max(mulLen(len(x0), len(y0)), mulLen(len(x1), len(y1))))
	addAt(z, p.mul(stk, x0, y0), 0)
	addAt(z, p.mul(stk, x1, y1), 0)
	return z.norm()
}

// mulRight sets m = m·n.
func (m *hgcdMatrix) mulRight(stk *stack, n *hgcdMatrix) {
	for i := range m {
		m[i][0], m[i][1] = rowMul(stk, m[i][0], m[i][1], n)
	}
}

// mulRightWord sets m = m·w.
func (m *hgcdMatrix) mulRightWord(stk *stack, w wordMatrix) {
	for i := range m {
		m[i][0], m[i][1] = rowMulWord(stk, m[i][0], m[i][1], w)
	}
}

// adjust extends a reduction found on the high parts a[p:], b[p:] to the
// full operands. ah and bh are the reduced high parts that m produced,
// a[:p] and b[:p] are the untouched low parts, and the results
//
//	α = ah·2^(p·_W) + m11·a[:p] - m01·b[:p]
//	β = bh·2^(p·_W) + m00·b[:p] - m10·a[:p]
//
// are written back into the buffers of a and b.
func (m *hgcdMatrix) adjust(stk *stack, a, b, ah, bh nat, p int) (nat, nat) {
	defer stk.restore(stk.save())
	al, bl := a[:p].norm(), b[:p].norm()
	ta := combine(stk, ah, p, m[1][1], al, m[0][1], bl)
	tb := combine(stk, bh, p, m[0][0], bl, m[1][0], al)
	return setInto(a, ta), setInto(b, tb)
}

// combine returns h·2^(p·_W) + x·y - u·v, which must not be negative.
func combine(stk *stack, h nat, p int, x, y, u, v nat) nat {
	n := max(p+len(h), len(x)+len(y), len(u)+len(v)) + 1
	z := stk.nat(n)
	z.clear()
	copy(z[p:], h)
	t := stk.nat(max(mulLen(len(x), len(y)), mulLen(len(u), len(v))))
	addAt(z, t.mul(stk, x, y), 0)
	t = t.mul(stk, u, v)
	if c := subVV(z[:len(t)], z, t); c != 0 {
		if subVW(z[len(t):], z[len(t):], c) != 0 {
			panic("gcdext: negative matrix application")
		}
	}
	return z.norm()
}
