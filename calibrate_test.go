// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file prints execution times for the karatsuba, hgcd and gcdext
// thresholds over a range of values. The best values are where the times stop
// improving. Run with:
//
//	go test -run=TestCalibrate -v -calibrate

package gcdext

import (
	"crypto/rand"
	"flag"
	"math/big"
	mrand "math/rand"
	"testing"
	"time"
)

var calibrate = flag.Bool("calibrate", false, "run calibration test")

func calibrationOperands(t *testing.T, words int) (*big.Int, *big.Int) {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(words*_W))
	x, err := rand.Int(rand.Reader, limit)
	if err != nil {
		t.Fatal(err)
	}
	y, err := rand.Int(rand.Reader, limit)
	if err != nil {
		t.Fatal(err)
	}
	x.SetBit(x, words*_W-1, 1)
	return x, y
}

func measureGCDExt(x, y *big.Int) time.Duration {
	res := testing.Benchmark(func(b *testing.B) {
		g, s, t := new(big.Int), new(big.Int), new(big.Int)
		for i := 0; i < b.N; i++ {
			GCDExtInto(g, s, t, x, y)
		}
	})
	return time.Duration(res.NsPerOp())
}

func computeHgcdThreshold(t *testing.T, words int) {
	x, y := calibrationOperands(t, words)
	t.Logf("operands: %v and %v", StatforInt(x), StatforInt(y))

	// Force the half-GCD path so only the recursion cutoff varies.
	defer func(dc int) { gcdextDCThreshold = dc }(gcdextDCThreshold)
	gcdextDCThreshold = 8

	var best time.Duration
	bestTh := hgcdThreshold
	for th := 20; th <= 200; th += 10 {
		withThresholds(th, gcdextDCThreshold, func() {
			d := measureGCDExt(x, y)
			t.Logf("hgcdThreshold = %3d: %8d ns/op", th, d)
			if best == 0 || d < best {
				best, bestTh = d, th
			}
		})
	}
	t.Logf("fastest hgcdThreshold at %d words: %d", words, bestTh)
}

func computeDCThreshold(t *testing.T) {
	var best time.Duration
	bestTh := gcdextDCThreshold
	for th := 40; th <= 400; th += 20 {
		x, y := calibrationOperands(t, th+th/2)
		withThresholds(hgcdThreshold, th, func() {
			d := measureGCDExt(x, y)
			withThresholds(hgcdThreshold, 1<<30, func() {
				lehmer := measureGCDExt(x, y)
				t.Logf("%4d words: hgcd %10d ns/op, lehmer %10d ns/op", th+th/2, d, lehmer)
				if best == 0 && d < lehmer {
					best, bestTh = d, th
				}
			})
		})
	}
	t.Logf("hgcd first beats Lehmer near gcdextDCThreshold = %d", bestTh)
}

func computeKaratsubaThreshold(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	x, y := rndNat(r, 300), rndNat(r, 300)
	defer func(th int) { karatsubaThreshold = th }(karatsubaThreshold)
	for th := 10; th <= 100; th += 10 {
		karatsubaThreshold = th
		res := testing.Benchmark(func(b *testing.B) {
			stk := getStack()
			defer stk.free()
			for i := 0; i < b.N; i++ {
				nat(nil).mul(stk, x, y)
			}
		})
		t.Logf("karatsubaThreshold = %3d: %8d ns/op", th, res.NsPerOp())
	}
}

func TestCalibrate(t *testing.T) {
	if !*calibrate {
		return
	}

	computeKaratsubaThreshold(t)
	computeHgcdThreshold(t, 1000)
	computeHgcdThreshold(t, 4000)
	computeDCThreshold(t)
}
