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

// Package common holds the fixed-size value types shared by the Host
// boundary and the CLI harness: Address and Hash. The core execution
// engine itself never needs them on its hot path (it operates on
// *uint256.Int words), but every collaborator around it does.
package common

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the expected length of a Hash, in bytes.
	HashLength = 32
	// AddressLength is the expected length of an Address, in bytes.
	AddressLength = 20
)

// Hash represents a 32 byte value.
type Hash [HashLength]byte

// BytesToHash sets b to Hash, left-padding or cropping from the left
// when b is shorter or longer than HashLength.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// SetBytes sets the hash to the value of b, left-padding if b is
// shorter than HashLength and cropping from the left if longer.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the raw bytes of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hex string representation with a leading 0x.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// IsZero reports whether the hash is the zero value.
func (h Hash) IsZero() bool { return h == Hash{} }

// MarshalText returns the hex representation of h, for encoding/json.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax, with or without 0x prefix.
func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := HexToHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Address represents a 20 byte account address.
type Address [AddressLength]byte

// BytesToAddress sets b to Address, left-padding or cropping from the
// left when b is shorter or longer than AddressLength.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// SetBytes sets the address to the value of b.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the raw bytes of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hash returns the address left-padded to 32 bytes, the form the
// interpreter pushes for opcodes like ADDRESS/CALLER/ORIGIN.
func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Hex returns the hex string representation with a leading 0x.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// MarshalText returns the hex representation of a, for encoding/json.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses an address in hex syntax, with or without 0x prefix.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := HexToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// HexToAddress parses a hex string (with or without 0x prefix) into an
// Address, left-padding short inputs.
func HexToAddress(s string) (Address, error) {
	b, err := decodeHex(s)
	if err != nil {
		return Address{}, err
	}
	return BytesToAddress(b), nil
}

// HexToHash parses a hex string (with or without 0x prefix) into a
// Hash, left-padding short inputs.
func HexToHash(s string) (Hash, error) {
	b, err := decodeHex(s)
	if err != nil {
		return Hash{}, err
	}
	return BytesToHash(b), nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("common: invalid hex string: %w", err)
	}
	return b, nil
}
