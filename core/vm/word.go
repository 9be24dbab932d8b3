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

// Word is the 256-bit unsigned integer the stack, memory, and storage
// all traffic in. It is the library's own uint256.Int: wrapping
// arithmetic modulo 2**256, two's-complement signed interpretation for
// SDIV/SMOD/SLT/SGT/SIGNEXTEND, and bit-exact 32-byte big-endian
// serialization are already implemented there the way spec.md §4.1
// requires, so this file only adds the handful of conversions spec.md
// names explicitly and that the library does not expose verbatim.
type Word = uint256.Int

// WordFromBytes interprets b as a big-endian integer, left-padding with
// zeros when b is shorter than 32 bytes. Longer inputs are truncated to
// their trailing 32 bytes, matching uint256.Int.SetBytes.
func WordFromBytes(b []byte) *Word {
	return new(Word).SetBytes(b)
}

// ToBytes32 serializes w to its canonical 32-byte big-endian form.
func ToBytes32(w *Word) []byte {
	b := w.Bytes32()
	return b[:]
}

// ToIndex narrows w to a uint64 suitable for indexing into memory or
// code, per spec.md §4.1: it fails (ok=false) if any of the upper 192
// bits are nonzero, rather than silently truncating.
func ToIndex(w *Word) (idx uint64, ok bool) {
	if !w.IsUint64() {
		return 0, false
	}
	return w.Uint64(), true
}

// boolWord returns 1 if b, else 0 — the canonical EVM encoding of a
// boolean result (comparisons, ISZERO, ...).
func boolWord(b bool) *Word {
	if b {
		return new(Word).SetOne()
	}
	return new(Word)
}
