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

// JumpTable is the set of valid JUMPDEST positions within a piece of
// code, precomputed once per frame (spec.md §4.5). The original evm-rs
// implementation this engine descends from let JUMP/JUMPI land on any
// byte equal to 0x5b, including one that falls inside a PUSH's
// immediate data; that is the "no destination validation" bug spec.md
// §9 calls out, and this bitset scan is the fix.
type JumpTable struct {
	valid []bool
}

// NewJumpTable scans code once, skipping over PUSH immediates so a 0x5b
// byte embedded in pushed data is never mistaken for a JUMPDEST.
func NewJumpTable(code []byte) *JumpTable {
	valid := make([]bool, len(code))
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			valid[pc] = true
			pc++
			continue
		}
		if op.IsPush() {
			pc += 1 + op.PushSize()
			continue
		}
		pc++
	}
	return &JumpTable{valid: valid}
}

// IsValid reports whether dest is a JUMPDEST reachable by JUMP/JUMPI.
func (jt *JumpTable) IsValid(dest uint64) bool {
	if dest >= uint64(len(jt.valid)) {
		return false
	}
	return jt.valid[dest]
}
