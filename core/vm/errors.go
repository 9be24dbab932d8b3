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

import "errors"

// ErrorKind classifies why a frame failed. Every Failure carries one.
type ErrorKind string

const (
	ErrKindInvalidOpcode        ErrorKind = "invalid opcode"
	ErrKindStackUnderflow       ErrorKind = "stack underflow"
	ErrKindStackOverflow        ErrorKind = "stack overflow"
	ErrKindOutOfGas             ErrorKind = "out of gas"
	ErrKindInvalidJumpDest      ErrorKind = "invalid jump destination"
	ErrKindInvalidMemoryAccess  ErrorKind = "invalid memory access"
	ErrKindReturnDataOutOfRange ErrorKind = "return data out of range"
	ErrKindUnimplementedOpcode  ErrorKind = "unimplemented opcode"
)

// Sentinel errors. Handlers return one of these (optionally wrapped
// with fmt.Errorf("%w: ...") for extra context); the interpreter maps
// them to an ErrorKind when building the Failure outcome.
var (
	ErrInvalidOpcode        = errors.New("vm: invalid opcode")
	ErrStackUnderflow       = errors.New("vm: stack underflow")
	ErrStackOverflow        = errors.New("vm: stack overflow")
	ErrOutOfGas             = errors.New("vm: out of gas")
	ErrInvalidJumpDest      = errors.New("vm: invalid jump destination")
	ErrInvalidMemoryAccess  = errors.New("vm: invalid memory access")
	ErrReturnDataOutOfRange = errors.New("vm: return data out of range")
	ErrUnimplementedOpcode  = errors.New("vm: unimplemented opcode")
)

// kindOf maps a sentinel (or a wrapped sentinel) to its ErrorKind, for
// callers (like Frame.Run) that want a stable, serializable failure
// classification instead of matching on error strings.
func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidOpcode):
		return ErrKindInvalidOpcode
	case errors.Is(err, ErrStackUnderflow):
		return ErrKindStackUnderflow
	case errors.Is(err, ErrStackOverflow):
		return ErrKindStackOverflow
	case errors.Is(err, ErrOutOfGas):
		return ErrKindOutOfGas
	case errors.Is(err, ErrInvalidJumpDest):
		return ErrKindInvalidJumpDest
	case errors.Is(err, ErrInvalidMemoryAccess):
		return ErrKindInvalidMemoryAccess
	case errors.Is(err, ErrReturnDataOutOfRange):
		return ErrKindReturnDataOutOfRange
	case errors.Is(err, ErrUnimplementedOpcode):
		return ErrKindUnimplementedOpcode
	default:
		return ErrorKind(err.Error())
	}
}
