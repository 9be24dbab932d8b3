// Copyright 2024 The goevm Authors
// This file is part of the goevm library.
//
// The goevm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The goevm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the goevm library. If not, see <http://www.gnu.org/licenses/>.

// Package stack implements the EVM operand stack: an ordered sequence
// of 256-bit words bounded to 1024 elements.
package stack

import (
	"github.com/holiman/uint256"
)

// MaxDepth is the maximum number of elements the stack may hold at once
// (spec.md §3).
const MaxDepth = 1024

// Stack is a LIFO sequence of uint256.Int values, grown and shrunk by
// append/reslice exactly like the teacher's own register-VM value
// stack (probe-lang/lang/vm/vm.go's vm.stack []uint64), widened to
// 256-bit words.
type Stack struct {
	data []uint256.Int
}

// New returns an empty Stack with room for a handful of pushes before
// its backing array needs to grow.
func New() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

// Len returns the number of elements currently on the stack.
func (s *Stack) Len() int { return len(s.data) }

// Push appends v to the top of the stack. Callers are responsible for
// the MaxDepth check (the interpreter performs it before dispatch, per
// spec.md §4.3 step 2).
func (s *Stack) Push(v *uint256.Int) {
	s.data = append(s.data, *v)
}

// PushN pushes vs in order, so the last element of vs ends up on top.
func (s *Stack) PushN(vs ...uint256.Int) {
	s.data = append(s.data, vs...)
}

// Pop removes and returns the top element. The caller must ensure the
// stack is non-empty.
func (s *Stack) Pop() (ret uint256.Int) {
	last := len(s.data) - 1
	ret = s.data[last]
	s.data = s.data[:last]
	return ret
}

// Peek returns a pointer to the top element without removing it.
func (s *Stack) Peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// Back returns a pointer to the n-th element from the top; Back(0) is
// equivalent to Peek().
func (s *Stack) Back(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

// Dup pushes a copy of the n-th element from the top (1-indexed, so
// Dup(1) duplicates the current top), implementing DUP1..DUP16.
func (s *Stack) Dup(n int) {
	s.data = append(s.data, s.data[len(s.data)-n])
}

// Swap exchanges the top element with the n-th element below it,
// implementing SWAP1..SWAP16 (Swap(1) swaps top and second-from-top).
func (s *Stack) Swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

// Data exposes the underlying slice, bottom-first, for debug snapshots.
func (s *Stack) Data() []uint256.Int { return s.data }

// reset clears the stack for reuse by the pool without releasing the
// backing array.
func (s *Stack) reset() { s.data = s.data[:0] }
