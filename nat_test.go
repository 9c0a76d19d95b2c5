package gcdext

import (
	"math/big"
	"math/rand"
	"testing"
)

func toBig(x nat) *big.Int {
	return new(big.Int).SetBits(x.intBits())
}

// rndNat returns a random normalized nat of exactly n words.
func rndNat(r *rand.Rand, n int) nat {
	x := make(nat, n)
	for i := range x {
		x[i] = Word(r.Uint64())
	}
	for n > 0 && x[n-1] == 0 {
		x[n-1] = Word(r.Uint64())
	}
	return x
}

func TestNewNat(t *testing.T) {
	x := big.NewInt(-12345)
	n := newNat(x)
	if len(n) != 1 || n[0] != 12345 {
		t.Errorf("newNat(%v) = %v, want [12345]", x, n)
	}
	if n := newNat(new(big.Int)); n != nil {
		t.Errorf("newNat(0) = %v, want nil", n)
	}
	y := new(big.Int).Lsh(big.NewInt(1), 300)
	if got := toBig(newNat(y)); got.Cmp(y) != 0 {
		t.Errorf("round trip of %v gave %v", y, got)
	}
}

func TestNatAddSub(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x := rndNat(r, r.Intn(20))
		y := rndNat(r, r.Intn(20))
		sum := nat(nil).add(x, y)
		want := new(big.Int).Add(toBig(x), toBig(y))
		if toBig(sum).Cmp(want) != 0 {
			t.Fatalf("%v + %v = %v, want %v", toBig(x), toBig(y), toBig(sum), want)
		}
		diff := nat(nil).sub(sum, y)
		if diff.cmp(x) != 0 {
			t.Fatalf("(%v + %v) - %v = %v", toBig(x), toBig(y), toBig(y), toBig(diff))
		}
	}
}

func TestNatSubUnderflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("sub did not panic on underflow")
		}
	}()
	nat(nil).sub(nat{1}, nat{2})
}

func TestNatMul(t *testing.T) {
	stk := getStack()
	defer stk.free()
	r := rand.New(rand.NewSource(2))
	sizes := []int{0, 1, 2, 3, karatsubaThreshold - 1, karatsubaThreshold, 2 * karatsubaThreshold, 3*karatsubaThreshold + 7}
	for _, m := range sizes {
		for _, n := range sizes {
			x, y := rndNat(r, m), rndNat(r, n)
			got := nat(nil).mul(stk, x, y)
			want := new(big.Int).Mul(toBig(x), toBig(y))
			if toBig(got).Cmp(want) != 0 {
				t.Fatalf("mul of %d and %d words: wrong product", m, n)
			}
			if stk.save() != 0 {
				t.Fatalf("mul left %d words on the stack", stk.save())
			}
		}
	}
}

func TestStack(t *testing.T) {
	stk := getStack()
	defer stk.free()

	x := stk.nat(3)
	if len(x) != 3 || cap(x) != 3 {
		t.Fatalf("stk.nat(3) has len %d, cap %d", len(x), cap(x))
	}
	mark := stk.save()
	y := stk.nat(5)
	if alias(x, y) {
		t.Errorf("consecutive windows alias")
	}
	for i := range y {
		y[i] = Word(i + 1)
	}
	x.clear()
	for i := range y {
		if y[i] != Word(i+1) {
			t.Fatalf("writing x changed y")
		}
	}
	stk.restore(mark)
	if stk.save() != mark {
		t.Errorf("restore left the stack at %d, want %d", stk.save(), mark)
	}
	z := stk.nat(2)
	if &z[0] != &y[0] {
		t.Errorf("window released by restore was not reused")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("restore past the top did not panic")
		}
	}()
	stk.restore(stk.save() + 4)
}

func TestStackReserve(t *testing.T) {
	stk := getStack()
	defer stk.free()
	stk.reserve(100)
	if stk.save() != 0 {
		t.Fatalf("reserve moved the stack pointer to %d", stk.save())
	}
	x := stk.nat(90)
	if cap(stk.w) < 100 || len(x) != 90 {
		t.Errorf("reserve did not grow the stack")
	}
}

func TestStackBound(t *testing.T) {
	stk := getStack()
	stk.nat(2)
	stk.reserve(16)
	c := cap(stk.w)
	mark := stk.save()
	for i := 0; i < (c-mark)/4; i++ {
		stk.nat(3)
	}
	if cap(stk.w) != c {
		t.Fatalf("bounded stack grew from %d to %d words", c, cap(stk.w))
	}
	stk.restore(mark)
	stk.reserve(8) // still available

	func() {
		defer func() {
			if r := recover(); r != "gcdext: scratch bound exceeded" {
				t.Errorf("window past the bound: recovered %v", r)
			}
		}()
		stk.nat(c - mark + 1)
	}()

	stk.free()
	if stk.bounded {
		t.Errorf("free left the stack bounded")
	}
}
