package gcdext

// lehmer finishes a reduction with Lehmer's algorithm: word-pair leaf
// steps while the operands have two words or more, falling back to an
// exact step whenever the leaf cannot make progress, and a native-word
// Euclid once both operands fit in a single word.
func (r *reduction) lehmer(stk *stack) *result {
	for {
		n := max(len(r.a), len(r.b))
		if n < 2 {
			return r.finishWord(stk)
		}
		ah, al, bh, bl := topWords(r.a, r.b, n)
		if m, ok := hgcd2(ah, al, bh, bl); ok {
			r.a, r.b = applyWordMatrix(stk, r.a, r.b, m)
			r.u0, r.u1 = rowMulWord(stk, r.u0, r.u1, m)
			continue
		}
		if res := r.subdiv(stk); res != nil {
			return res
		}
	}
}

// lehmerItch bounds the stack words taken by lehmer on operands of at
// most n words.
func lehmerItch(n int) int {
	return max(2*words(n+1), 2*words(n+3), subdivItch(n))
}

// finishWord runs Euclid's algorithm on single-word operands, collecting
// the quotients in a word matrix that is applied to the cofactors once at
// the end. The entries never exceed the operands, so they cannot overflow.
func (r *reduction) finishWord(stk *stack) *result {
	a, b := r.a[0], r.b[0]
	m := identityWords
	for a != b {
		if a > b {
			q, rem := a/b, a%b
			if rem == 0 {
				q, rem = q-1, b
			}
			a = rem
			m[0][1] += q * m[0][0]
			m[1][1] += q * m[1][0]
		} else {
			q, rem := b/a, b%a
			if rem == 0 {
				q, rem = q-1, a
			}
			b = rem
			m[0][0] += q * m[0][1]
			m[1][0] += q * m[1][1]
		}
	}
	r.u0, r.u1 = rowMulWord(stk, r.u0, r.u1, m)
	return r.done(nat{a})
}
