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
	"github.com/probechain/goevm/common"
	"golang.org/x/crypto/sha3"
)

// keccak256 hashes data with the Keccak-256 permutation EVM's
// KECCAK256 opcode is named for, which is not the same function as
// NIST SHA3-256 despite the shared family. golang.org/x/crypto/sha3
// exposes the legacy Keccak variant via NewLegacyKeccak256.
func keccak256(data []byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out common.Hash
	h.Sum(out[:0])
	return out
}
