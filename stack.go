// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcdext

import (
	"slices"
	"sync"
)

// A stack provides temporary storage for the extended GCD and the
// multiplications and divisions it performs.
// The stack is a simple slice of words, extended as needed
// to hold all the temporary storage for a calculation.
// A function that takes a *stack expects a non-nil *stack; only the
// exported entry points obtain and release one themselves.
//
// Windows handed out by nat are released in LIFO order, almost always as
//
//	defer stk.restore(stk.save())
//
// A window must not be used after the restore that released it.
//
// Once reserve has run, the stack is bounded: a window that does not fit
// in the reserved capacity panics instead of reallocating.
type stack struct {
	w       []Word
	bounded bool
}

var stackPool sync.Pool

// getStack returns a temporary stack.
// The caller must call [stack.free] to give up use of the stack when finished.
func getStack() *stack {
	s, _ := stackPool.Get().(*stack)
	if s == nil {
		s = new(stack)
	}
	return s
}

// free returns the stack for use by another calculation.
func (s *stack) free() {
	s.w = s.w[:0]
	s.bounded = false
	stackPool.Put(s)
}

// save returns the current stack pointer.
// A future call to restore with the same value
// frees any temporaries allocated on the stack after the call to save.
func (s *stack) save() int {
	return len(s.w)
}

// restore restores the stack pointer to n.
func (s *stack) restore(n int) {
	if n > len(s.w) {
		panic("gcdext: stack restored past its top")
	}
	s.w = s.w[:n]
}

// nat returns a nat of n words, allocated on the stack.
// The contents are not zeroed.
func (s *stack) nat(n int) nat {
	nr := words(n)
	off := len(s.w)
	if off+nr > cap(s.w) {
		if s.bounded {
			panic("gcdext: scratch bound exceeded")
		}
		s.w = slices.Grow(s.w, nr)
	}
	s.w = s.w[:off+nr]
	x := s.w[off : off+n : off+n]
	if n > 0 {
		x[0] = 0xfedcb // break code expecting zero
	}
	return x
}

// reserve grows the stack, such that we can obtain at least n more words
// without reallocation, and bounds it there. A second reserve on a
// bounded stack only checks that n words are still available.
func (s *stack) reserve(n int) {
	if s.bounded {
		if cap(s.w)-len(s.w) < n {
			panic("gcdext: scratch bound exceeded")
		}
		return
	}
	s.w = slices.Grow(s.w, n)
	s.bounded = true
}

// words returns the number of stack words taken by a window of n words.
func words(n int) int {
	return (n + 3) &^ 3 // round up to multiple of 4
}
