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

// Gas costs for SSTORE's tri-state pricing (spec.md §4.7).
const (
	sstoreSetGas    uint64 = 20000 // zero -> non-zero
	sstoreResetGas  uint64 = 5000  // non-zero -> different non-zero, or non-zero -> zero
	sstoreClearRefund uint64 = 15000 // additional refund when killing a slot (non-zero -> zero)
)

// Storage is the persistent key/value store backing SLOAD/SSTORE,
// modeled as two shadow copies of the same map (spec.md §3 and §9):
// committed holds the values as they stood at frame entry, current
// holds the values as of the most recent SSTORE. SSTORE's gas cost and
// refund both depend on comparing a slot's current value against its
// committed value, not just against the immediately prior write.
type Storage struct {
	committed map[uint256.Int]uint256.Int
	current   map[uint256.Int]uint256.Int
	refund    uint64
}

// NewStorage returns an empty Storage, optionally seeded with pre-existing
// committed values (e.g. from a prior transaction in the same account).
func NewStorage(seed map[uint256.Int]uint256.Int) *Storage {
	committed := make(map[uint256.Int]uint256.Int, len(seed))
	current := make(map[uint256.Int]uint256.Int, len(seed))
	for k, v := range seed {
		committed[k] = v
		current[k] = v
	}
	return &Storage{committed: committed, current: current}
}

// Load returns the current value at key, or the zero word if unset.
func (s *Storage) Load(key *uint256.Int) uint256.Int {
	return s.current[*key]
}

// RefundCounter returns the accumulated SSTORE refund.
func (s *Storage) RefundCounter() uint64 { return s.refund }

// Store writes value at key, returning the dynamic gas cost of the
// write per spec.md §4.7's tri-state schedule:
//
//   - no-op (current value already equals value): no price change, 0 gas.
//   - zero -> non-zero: sstoreSetGas (20000), no refund.
//   - non-zero -> zero: sstoreResetGas (5000) plus sstoreClearRefund
//     (15000) added to the refund counter.
//   - non-zero -> different non-zero: sstoreResetGas (5000), no refund.
//
// Store never mutates committed: that shadow copy only changes at frame
// commit, which this engine leaves to the Host (spec.md §6).
func (s *Storage) Store(key, value *uint256.Int) uint64 {
	original := s.committed[*key]
	current := s.current[*key]

	s.current[*key] = *value

	if current.Eq(value) {
		return 0
	}

	wasZero := original.IsZero()
	isZero := value.IsZero()

	switch {
	case wasZero && !isZero:
		return sstoreSetGas
	case !wasZero && isZero:
		s.refund += sstoreClearRefund
		return sstoreResetGas
	default:
		return sstoreResetGas
	}
}

// Snapshot returns a copy of the current shadow map, for debug traces.
func (s *Storage) Snapshot() map[uint256.Int]uint256.Int {
	out := make(map[uint256.Int]uint256.Int, len(s.current))
	for k, v := range s.current {
		out[k] = v
	}
	return out
}
