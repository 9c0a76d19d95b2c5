package gcdext_test

import (
	"fmt"
	"math/big"

	"github.com/jiajunxin/gcdext"
)

func ExampleGCDExt() {
	g, s, t := gcdext.GCDExt(big.NewInt(240), big.NewInt(46))
	fmt.Println(g, s, t)
	// Output: 2 -9 47
}

func ExampleModInverse() {
	fmt.Println(gcdext.ModInverse(big.NewInt(3), big.NewInt(11)))
	fmt.Println(gcdext.ModInverse(big.NewInt(4), big.NewInt(10)))
	// Output:
	// 4
	// <nil>
}
