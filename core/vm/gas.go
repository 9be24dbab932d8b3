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

// Gas is the frame's 64-bit gas pool. Every debit goes through Consume,
// which checks for underflow before subtracting (spec.md §9's required
// fix for the original evm-rs's unchecked `self.gas -= cost`, which
// wrapped around to a huge value instead of halting on out-of-gas).
type Gas struct {
	remaining uint64
}

// NewGas returns a Gas pool initialized to limit.
func NewGas(limit uint64) *Gas {
	return &Gas{remaining: limit}
}

// Remaining returns the gas left in the pool.
func (g *Gas) Remaining() uint64 { return g.remaining }

// Consume debits cost from the pool. It returns ErrOutOfGas, leaving the
// pool untouched, if cost exceeds what remains — the checked subtraction
// spec.md §9 requires at every call site, opcode base costs and dynamic
// costs (memory expansion, copy, EXP exponent bytes, SSTORE) alike.
func (g *Gas) Consume(cost uint64) error {
	if cost > g.remaining {
		return ErrOutOfGas
	}
	g.remaining -= cost
	return nil
}

// Refund credits amount back to the pool, used when a Frame finishes
// and the Host applies the accumulated SSTORE refund counter
// (spec.md §4.7); the core engine itself never calls this mid-execution.
func (g *Gas) Refund(amount uint64) {
	g.remaining += amount
}
