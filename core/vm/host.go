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
	"github.com/probechain/goevm/common"
)

// Log is one entry emitted by LOG0..LOG4, mirroring the shape the
// teacher's own probe-lang/integration/engine.go uses for its
// ExecutionResult.Logs: an address, the topic words taken off the
// stack, and the memory slice addressed as data.
type Log struct {
	Address common.Address
	Topics  []uint256.Int
	Data    []byte
}

// Host is the engine's sole collaborator boundary (spec.md §6): world
// state, block context and cryptography all live behind this interface
// rather than inside the interpreter, the same separation the teacher
// draws between probe-lang/lang/vm (the bytecode engine) and the
// chain-level execution context that supplies it balances and headers.
type Host interface {
	// Balance returns the wei balance of addr.
	Balance(addr common.Address) *uint256.Int

	// ExtCode returns the deployed code at addr, or nil if addr has none.
	ExtCode(addr common.Address) []byte

	// BlockHash returns the hash of the block at number, or the zero
	// hash if number is out of the retainable range.
	BlockHash(number uint64) common.Hash

	// BlockContext returns the header fields COINBASE, TIMESTAMP,
	// NUMBER, DIFFICULTY and GASLIMIT read from.
	BlockContext() BlockContext

	// Keccak256 hashes data, backing the KECCAK256 opcode.
	Keccak256(data []byte) common.Hash

	// EmitLog records a LOG0..LOG4 entry.
	EmitLog(l Log)
}

// BlockContext groups the header fields the block-context opcodes
// (spec.md §4.2 tier) read, so a Host implementation only needs to
// assemble this struct once per call rather than answer five separate
// methods.
type BlockContext struct {
	Coinbase   common.Address
	Timestamp  uint64
	Number     uint64
	Difficulty uint256.Int
	GasLimit   uint64
}

// NullHost is a zero-value Host for tests and the standalone CLI
// harness, where no real chain state is available: balances and code
// read as empty, KECCAK256 still hashes for real, and logs are
// collected in memory instead of being discarded silently.
type NullHost struct {
	Logs []Log
}

// NewNullHost returns a ready-to-use NullHost.
func NewNullHost() *NullHost { return &NullHost{} }

func (h *NullHost) Balance(common.Address) *uint256.Int { return new(uint256.Int) }

func (h *NullHost) ExtCode(common.Address) []byte { return nil }

func (h *NullHost) BlockHash(uint64) common.Hash { return common.Hash{} }

func (h *NullHost) BlockContext() BlockContext { return BlockContext{} }

func (h *NullHost) Keccak256(data []byte) common.Hash {
	return keccak256(data)
}

func (h *NullHost) EmitLog(l Log) {
	h.Logs = append(h.Logs, l)
}
