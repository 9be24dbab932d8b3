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

package vm

import (
	"github.com/holiman/uint256"
)

// Memory is the EVM's volatile byte-addressable scratch space. Unlike
// the teacher's probe-lang/lang/vm/memory.go (a malloc-style allocator
// with discrete alloc/free calls and an address table), EVM memory is a
// single contiguous byte slice that only ever grows, always up to the
// next 32-byte word boundary, for the lifetime of one Frame.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the current size of memory in bytes (always a multiple of 32).
func (m *Memory) Len() int { return len(m.store) }

// Data exposes the backing store directly, for debug snapshots.
func (m *Memory) Data() []byte { return m.store }

// roundUpToWord rounds n up to the next multiple of 32.
func roundUpToWord(n uint64) uint64 {
	return (n + 31) / 32 * 32
}

// Resize grows the backing store so it is at least size bytes long,
// rounded up to the next word boundary. It never shrinks memory: EVM
// memory is monotonically non-decreasing within a frame (spec.md §3).
func (m *Memory) Resize(size uint64) {
	if size == 0 {
		return
	}
	words := roundUpToWord(size)
	if uint64(len(m.store)) >= words {
		return
	}
	grown := make([]byte, words)
	copy(grown, m.store)
	m.store = grown
}

// Set writes data into memory starting at offset, growing memory first
// if necessary. The caller is responsible for having already charged
// gas for the resulting size via MemoryGasCost.
func (m *Memory) Set(offset, size uint64, data []byte) {
	if size == 0 {
		return
	}
	m.Resize(offset + size)
	copy(m.store[offset:offset+size], data)
}

// Set32 writes the 32-byte big-endian form of val at offset, as used by
// MSTORE. This is the exact window MSTORE must fill — the original
// evm-rs implementation this engine descends from instead copied val's
// entire byte slice starting at offset regardless of its length, which
// could write fewer or more than 32 bytes depending on val's
// representation; that bug is not reproduced here.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	m.Resize(offset + 32)
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// GetCopy returns a freshly allocated copy of the size bytes starting at
// offset, zero-padded if it reaches past the current memory length.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset >= int64(len(m.store)) {
		return out
	}
	end := offset + size
	if end > int64(len(m.store)) {
		end = int64(len(m.store))
	}
	copy(out, m.store[offset:end])
	return out
}

// GetPtr returns a slice aliasing the backing store directly, for
// callers that only read. The range [offset, offset+size) must already
// lie within memory (i.e. Resize must have been called); out-of-range
// slices are not padded, unlike GetCopy.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Copy moves len bytes from src to dst within memory, growing memory to
// cover whichever of the two ranges extends furthest. It supports
// overlapping ranges, matching MCOPY/identity-precompile semantics.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	end := dst + length
	if srcEnd := src + length; srcEnd > end {
		end = srcEnd
	}
	m.Resize(end)
	copy(m.store[dst:dst+length], m.store[src:src+length])
}

// Reset clears memory back to zero length, for reuse between frames.
func (m *Memory) Reset() {
	m.store = m.store[:0]
}

// MemoryGasCost computes the quadratic memory-expansion cost of growing
// memory to cover size bytes (spec.md §4.4): cost(w) = 3w + floor(w^2/512)
// where w is the size in 32-byte words. Callers charge the delta between
// the cost at the new size and the cost already paid for the current
// size; words(0) costs 0, so the very first expansion is charged in full.
func MemoryGasCost(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	words := roundUpToWord(size) / 32
	return 3*words + (words*words)/512
}

// ExpansionCost returns the incremental gas owed to grow memory to at
// least size bytes, tracking what has already been paid in
// lastGasCost so repeated accesses to the same region are free
// (spec.md §4.4's "dynamic_gas = cost(b) - cost(a)" rule). It does not
// itself grow memory; callers still call Resize/Set/Set32 separately.
func (m *Memory) ExpansionCost(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	cost := MemoryGasCost(size)
	if cost <= m.lastGasCost {
		return 0
	}
	delta := cost - m.lastGasCost
	m.lastGasCost = cost
	return delta
}
