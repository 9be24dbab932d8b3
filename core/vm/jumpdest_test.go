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

import "testing"

func TestJumpTableValidDest(t *testing.T) {
	code := []byte{byte(PUSH1), 0x03, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	jt := NewJumpTable(code)

	if !jt.IsValid(3) {
		t.Errorf("expected pc 3 (JUMPDEST) to be valid")
	}
}

func TestJumpTableRejectsPushImmediateLookingLikeJumpdest(t *testing.T) {
	// PUSH1 0x5b: the byte 0x5b here is pushed data, not an opcode.
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(STOP)}
	jt := NewJumpTable(code)

	if jt.IsValid(1) {
		t.Errorf("pc 1 is inside a PUSH1 immediate and must not be a valid jump dest")
	}
}

func TestJumpTableRejectsOutOfRange(t *testing.T) {
	jt := NewJumpTable([]byte{byte(STOP)})
	if jt.IsValid(100) {
		t.Errorf("out-of-range destination must be invalid")
	}
}

func TestJumpTableRejectsNonJumpdestByte(t *testing.T) {
	code := []byte{byte(ADD), byte(ADD), byte(JUMPDEST)}
	jt := NewJumpTable(code)
	if jt.IsValid(0) || jt.IsValid(1) {
		t.Errorf("non-JUMPDEST bytes must not be valid destinations")
	}
	if !jt.IsValid(2) {
		t.Errorf("pc 2 is a real JUMPDEST and should be valid")
	}
}
