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
	"errors"
	"testing"
)

func TestGasConsume(t *testing.T) {
	g := NewGas(100)
	if err := g.Consume(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Remaining() != 70 {
		t.Errorf("remaining = %d, want 70", g.Remaining())
	}
}

func TestGasConsumeOutOfGasLeavesPoolUntouched(t *testing.T) {
	g := NewGas(10)
	err := g.Consume(11)
	if !errors.Is(err, ErrOutOfGas) {
		t.Fatalf("err = %v, want ErrOutOfGas", err)
	}
	if g.Remaining() != 10 {
		t.Errorf("remaining after failed Consume = %d, want unchanged 10", g.Remaining())
	}
}

func TestGasConsumeExact(t *testing.T) {
	g := NewGas(5)
	if err := g.Consume(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", g.Remaining())
	}
}

func TestGasRefund(t *testing.T) {
	g := NewGas(0)
	g.Refund(15000)
	if g.Remaining() != 15000 {
		t.Errorf("remaining after refund = %d, want 15000", g.Remaining())
	}
}
