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
	"fmt"

	"github.com/holiman/uint256"
	"github.com/probechain/goevm/common"
	vmstack "github.com/probechain/goevm/core/vm/stack"
)

// Frame is one self-contained execution context: a program counter over
// an immutable piece of code, an operand stack, volatile memory,
// persistent storage and a gas pool, plus the immutable calldata and
// sender/contract addresses a Host-backed opcode might need. It is the
// sole unit of state this engine manages; spec.md's Non-goals exclude
// nested frames (CALL/CREATE), so unlike the teacher's own vm.frame
// (probe-lang/lang/vm/vm.go), there is no call stack of these — one
// Frame is the entire execution.
type Frame struct {
	code      []byte
	calldata  []byte
	jumpTable *JumpTable

	pc    uint64
	stack *vmstack.Stack
	mem   *Memory
	store *Storage
	gas   *Gas

	address common.Address
	caller  common.Address
	value   uint256.Int

	host   Host
	tracer Tracer

	returnData []byte
}

// FrameConfig groups the immutable inputs a Frame is constructed from.
type FrameConfig struct {
	Code     []byte
	Calldata []byte
	GasLimit uint64
	Address  common.Address
	Caller   common.Address
	Value    uint256.Int
	Storage  map[uint256.Int]uint256.Int // pre-existing committed slots, may be nil
	Host     Host                        // may be nil, defaults to NullHost
	Tracer   Tracer                      // may be nil, disables tracing
}

// NewFrame builds a ready-to-run Frame from cfg.
func NewFrame(cfg FrameConfig) *Frame {
	host := cfg.Host
	if host == nil {
		host = NewNullHost()
	}
	return &Frame{
		code:      cfg.Code,
		calldata:  cfg.Calldata,
		jumpTable: NewJumpTable(cfg.Code),
		stack:     vmstack.NewNormalStack(),
		mem:       NewMemory(),
		store:     NewStorage(cfg.Storage),
		gas:       NewGas(cfg.GasLimit),
		address:   cfg.Address,
		caller:    cfg.Caller,
		value:     cfg.Value,
		host:      host,
		tracer:    cfg.Tracer,
	}
}

// Release returns the Frame's stack to the shared pool. Callers that are
// done with a Frame after reading its Outcome (the CLI's one-shot run,
// a batch harness replaying many frames back to back) should call this
// to let the next NewFrame reuse the backing array instead of
// allocating a fresh one; it is not required for correctness.
func (f *Frame) Release() {
	if f.stack == nil {
		return
	}
	vmstack.ReturnNormalStack(f.stack)
	f.stack = nil
}

// Outcome is the result of running a Frame to completion (spec.md §6).
// Exactly one of Success, Halted or Failure is reported via Kind.
type Outcome struct {
	Kind         OutcomeKind
	ReturnData   []byte
	GasUsed      uint64
	GasRemaining uint64
	Refund       uint64
	Err          error     // set only when Kind == OutcomeFailure
	ErrKind      ErrorKind // set only when Kind == OutcomeFailure, for stable serialization
}

// OutcomeKind distinguishes why a Frame stopped running.
type OutcomeKind int

const (
	// OutcomeSuccess: a RETURN opcode ended execution and produced return
	// data; ReturnData is valid and Err is nil.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeHalted: a STOP or implicit end-of-code halt with no error.
	OutcomeHalted
	// OutcomeFailure: an opcode returned an error (out of gas, invalid
	// opcode, stack under/overflow, invalid jump, invalid memory
	// access, or return-data out of range). No partial effects from the
	// failing opcode survive; Err identifies the cause.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeHalted:
		return "halted"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Run executes code from pc=0 until a halting opcode, an implicit
// end-of-code STOP, or an error (spec.md §4.3). It drives the dispatch
// loop step-by-step via Step so a single Step can also be used directly
// by callers that want fine-grained control between steps.
func (f *Frame) Run() Outcome {
	startGas := f.gas.Remaining()
	for {
		halt, err := f.Step()
		if err != nil {
			return Outcome{
				Kind:         OutcomeFailure,
				GasUsed:      startGas - f.gas.Remaining(),
				GasRemaining: f.gas.Remaining(),
				Err:          err,
				ErrKind:      kindOf(err),
			}
		}
		if halt {
			kind := OutcomeHalted
			if f.returnData != nil {
				kind = OutcomeSuccess
			}
			return Outcome{
				Kind:         kind,
				ReturnData:   f.returnData,
				GasUsed:      startGas - f.gas.Remaining(),
				GasRemaining: f.gas.Remaining(),
				Refund:       f.store.RefundCounter(),
			}
		}
	}
}

// Step executes exactly one opcode at the current pc, advancing pc and
// mutating stack/memory/storage/gas as appropriate (spec.md §4.3's
// per-step algorithm: fetch, validate, trace, dispatch, advance). It
// reports halt=true once code has no more instructions to run.
func (f *Frame) Step() (halt bool, err error) {
	if f.pc >= uint64(len(f.code)) {
		return true, nil
	}

	op := OpCode(f.code[f.pc])
	if !op.IsDefined() {
		return false, fmt.Errorf("%w: 0x%02x at pc=%d", ErrInvalidOpcode, byte(op), f.pc)
	}
	info := opCodeTable[op]

	if f.tracer != nil {
		f.tracer.CaptureStep(TraceStep{
			PC:        f.pc,
			Op:        op,
			GasLeft:   f.gas.Remaining(),
			StackSize: f.stack.Len(),
			MemSize:   f.mem.Len(),
			Stack:     stackTop(f.stack.Data(), 4),
		})
	}

	if f.stack.Len() < info.ins {
		return false, fmt.Errorf("%w: %s needs %d operands, have %d", ErrStackUnderflow, op, info.ins, f.stack.Len())
	}
	grow := info.outs - info.ins
	if grow > 0 && f.stack.Len()+grow > vmstack.MaxDepth {
		return false, fmt.Errorf("%w: %s would grow stack past %d", ErrStackOverflow, op, vmstack.MaxDepth)
	}

	if err := f.gas.Consume(info.baseGas); err != nil {
		return false, fmt.Errorf("%w: %s base cost %d", ErrOutOfGas, op, info.baseGas)
	}

	var immediate []byte
	next := f.pc + 1
	if op.IsPush() {
		size := op.PushSize()
		end := next + uint64(size)
		if end > uint64(len(f.code)) {
			end = uint64(len(f.code))
		}
		immediate = f.code[next:end]
		next += uint64(size)
	}

	if op == STOP || op == RETURN {
		if err := info.execute(f, immediate); err != nil {
			return false, err
		}
		return true, nil
	}

	savedPC := f.pc
	f.pc = next
	if err := info.execute(f, immediate); err != nil {
		f.pc = savedPC
		return false, err
	}
	return false, nil
}

// Disassemble renders code as a flat sequence of mnemonics, one per
// line, decoding PUSH immediates inline. It performs no validation: an
// undefined byte prints as UNKNOWN rather than erroring, which is what
// makes it safe to run against arbitrary or even malformed bytecode for
// inspection purposes.
func Disassemble(code []byte) []string {
	var lines []string
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op.IsPush() {
			size := op.PushSize()
			end := pc + 1 + size
			if end > len(code) {
				end = len(code)
			}
			lines = append(lines, fmt.Sprintf("%04d %s 0x%x", pc, op, code[pc+1:end]))
			pc = end
			continue
		}
		line := fmt.Sprintf("%04d %s", pc, op)
		if op.IsDefined() && opCodeTable[op].delegate {
			line += " [host]"
		}
		lines = append(lines, line)
		pc++
	}
	return lines
}
