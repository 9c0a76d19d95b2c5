package gcdext

// Operands that are shorter than hgcdThreshold are reduced by hgcd one
// step at a time; for longer operands hgcd recurses on their high halves.
var hgcdThreshold = 60 // computed by calibrate_test.go

// hgcd computes a half-GCD reduction of (a, b). With n the length of the
// longer operand and s = n/2+1, it reduces both operands in place, as far
// as it can while keeping each of them longer than s words, and multiplies
// m (which must hold the identity or an earlier reduction) from the right
// by the matrix that performs the reduction.
//
// It reports false, leaving everything unchanged, when no reduction is
// possible, in particular when an operand has s words or fewer to begin
// with. The entries of the reduction matrix are below 2^((n-s)·_W).
func hgcd(stk *stack, a, b nat, m *hgcdMatrix) (nat, nat, bool) {
	n := max(len(a), len(b))
	s := n/2 + 1
	if len(a) <= s || len(b) <= s {
		return a, b, false
	}
	defer stk.restore(stk.save())

	progress := false
	if n >= hgcdThreshold {
		// Reduce the top half first. Its result stays valid for the full
		// operands and leaves them at about 3n/4 words.
		p := n / 2
		m1 := newHgcdMatrix(stk, hgcdMatrixCap(n-p))
		if ah, bh, ok := hgcd(stk, a[p:], b[p:], m1); ok {
			a, b = m1.adjust(stk, a, b, ah, bh, p)
			m.mulRight(stk, m1)
			progress = true
		}

		n2 := 3*n/4 + 1
		for max(len(a), len(b)) > n2 {
			var ok bool
			if a, b, ok = hgcdStep(stk, a, b, s, m); !ok {
				return a, b, progress
			}
			progress = true
		}

		// Second recursion on the top 2(n-s)-1 words; its matrix keeps the
		// full operands above s words.
		if n := max(len(a), len(b)); n > s+2 {
			p := 2*s - n + 1
			m1.reset()
			if ah, bh, ok := hgcd(stk, a[p:], b[p:], m1); ok {
				a, b = m1.adjust(stk, a, b, ah, bh, p)
				m.mulRight(stk, m1)
				progress = true
			}
		}
	}

	for {
		a2, b2, ok := hgcdStep(stk, a, b, s, m)
		if !ok {
			return a, b, progress
		}
		a, b, progress = a2, b2, true
	}
}

// hgcdItch bounds the stack words taken by hgcd on operands of at most n
// words. The matrix passed in must have entries of at most n words.
func hgcdItch(n int) int {
	step := max(2*words(n+1), 2*words(n+3), hgcdSubdivItch(n))
	if n < hgcdThreshold {
		return step
	}
	// Both recursive calls see at most n-n/2 words.
	h := n - n/2
	return 4*words(hgcdMatrixCap(h)) + max(hgcdItch(h), 2*productItch(n+1), step)
}

// hgcdStep performs one reduction step of hgcd at level s: the word-pair
// leaf step when the operands are long enough for its result to stay
// above s words, the exact step otherwise or when the leaf fails.
func hgcdStep(stk *stack, a, b nat, s int, m *hgcdMatrix) (nat, nat, bool) {
	n := max(len(a), len(b))
	if n >= s+3 {
		ah, al, bh, bl := topWords(a, b, n)
		if w, ok := hgcd2(ah, al, bh, bl); ok {
			a, b = applyWordMatrix(stk, a, b, w)
			m.mulRightWord(stk, w)
			return a, b, true
		}
	}
	return hgcdSubdiv(stk, a, b, s, m)
}
