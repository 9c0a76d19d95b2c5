package gcdext

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// A wordMatrix is a reduction matrix with single-word entries. It relates
// operands (a, b) to their reduced values (α, β) by
//
//	(a; b) = M·(α; β)
//
// with det M = 1 and all entries non-negative, so that
//
//	α = m11·a - m01·b
//	β = m00·b - m10·a
type wordMatrix [2][2]Word

var identityWords = wordMatrix{{1, 0}, {0, 1}}

// word returns x[i], or 0 when i is outside x.
func word(x nat, i int) Word {
	if i < 0 || i >= len(x) {
		return 0
	}
	return x[i]
}

// topWords returns the two most significant words of a and b taken at
// length n, both shifted left by the leading zeros of the larger top word.
// Words beyond the end of an operand read as zero.
func topWords(a, b nat, n int) (ah, al, bh, bl Word) {
	h := nlz(word(a, n-1) | word(b, n-1))
	ah, al = top2(a, n, h)
	bh, bl = top2(b, n, h)
	return
}

func top2(x nat, n int, h uint) (hi, lo Word) {
	hi, lo = word(x, n-1), word(x, n-2)
	if h != 0 {
		hi = hi<<h | lo>>(_W-h)
		lo = lo<<h | word(x, n-3)>>(_W-h)
	}
	return
}

func doubleWord(hi, lo Word) *uint256.Int {
	x := uint256.NewInt(uint64(hi))
	x.Lsh(x, _W)
	return x.Or(x, uint256.NewInt(uint64(lo)))
}

// hgcd2 runs Euclid's algorithm on the double-word prefixes ah:al and
// bh:bl of two operands that share a truncation point k (the operands are
// a = (ah:al)·2^k + a', 0 <= a' < 2^k, likewise b).
//
// A quotient is taken only when the reduced prefix keeps a margin over
// the error the dropped bits can introduce, which guarantees that the
// returned matrix reduces the full operands to values of at least 2^k.
// It stops when an entry would no longer fit in a Word or when neither
// prefix can be reduced with that margin. ok reports whether at least one
// quotient was taken.
func hgcd2(ah, al, bh, bl Word) (m wordMatrix, ok bool) {
	a, b := doubleWord(ah, al), doubleWord(bh, bl)
	m = identityWords

	var q, t uint256.Int
	for {
		// α -= q·β, keeping α' - m01' >= 1.
		if quotientBound(&q, a, b, m[0][1], m[0][0]) {
			if !m.addCol(1, 0, &q) {
				return m, ok
			}
			a.Sub(a, t.Mul(&q, b))
			ok = true
			continue
		}
		// β -= q·α, keeping β' - m10' >= 1.
		if quotientBound(&q, b, a, m[1][0], m[1][1]) {
			if !m.addCol(0, 1, &q) {
				return m, ok
			}
			b.Sub(b, t.Mul(&q, a))
			ok = true
			continue
		}
		return m, ok
	}
}

// quotientBound sets q = ⌊(x - mx - 1)/(y + my)⌋ and reports whether q >= 1.
// my is always at least 1, so the denominator is never zero.
func quotientBound(q, x, y *uint256.Int, mx, my Word) bool {
	var num, den uint256.Int
	den.Add(y, uint256.NewInt(uint64(my)))
	num.Add(&den, uint256.NewInt(uint64(mx)))
	num.Add(&num, uint256.NewInt(1))
	if x.Lt(&num) {
		return false
	}
	num.Sub(x, uint256.NewInt(uint64(mx)))
	num.Sub(&num, uint256.NewInt(1))
	q.Div(&num, &den)
	return true
}

// addCol adds q times column src to column dst. It reports false and
// leaves m unchanged if q or an updated entry does not fit in a Word.
func (m *wordMatrix) addCol(dst, src int, q *uint256.Int) bool {
	if q.BitLen() > _W {
		return false
	}
	qw := uint(q.Uint64())
	var col [2]Word
	for i := range m {
		hi, lo := bits.Mul(qw, uint(m[i][src]))
		sum, c := bits.Add(lo, uint(m[i][dst]), 0)
		if hi != 0 || c != 0 {
			return false
		}
		col[i] = Word(sum)
	}
	m[0][dst], m[1][dst] = col[0], col[1]
	return true
}
