package gcdext

import (
	"fmt"
	"math/big"
	"math/bits"
)

// GetWidth returns the width of uint in this system
func GetWidth() int {
	return _W
}

// Stats summarizes the shape of an operand. The calibration test logs it
// next to its timings.
type Stats struct {
	Words int    // length in words
	Ones  uint64 // number of set bits
}

func (s Stats) String() string {
	return fmt.Sprintf("%d words, %d bits set", s.Words, s.Ones)
}

// StatforInt returns the Stats of |input|.
func StatforInt(input *big.Int) Stats {
	n := newNat(input)
	var counter uint64
	for i := range n {
		counter += Bit1Counter(n[i])
	}
	return Stats{Words: len(n), Ones: counter}
}

// Bit1Counter returns the number of set bits in input.
func Bit1Counter(input Word) uint64 {
	return uint64(bits.OnesCount(uint(input)))
}
