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
	"math"

	"github.com/holiman/uint256"
	"github.com/probechain/goevm/common"
)

// Gas tier constants, named the way the teacher's own gas tables are
// (see go-probe's params package lineage): grouping opcodes that share
// a base cost under one symbol instead of repeating magic numbers.
const (
	gasZero      uint64 = 0
	gasBase      uint64 = 2
	gasVeryLow   uint64 = 3
	gasLow       uint64 = 5
	gasMid       uint64 = 8
	gasHigh      uint64 = 10
	gasJumpdest  uint64 = 1
	gasExtcode   uint64 = 700
	gasBalance   uint64 = 700
	gasBlockhash uint64 = 20
	gasSload     uint64 = 200
	gasExp       uint64 = 10
	gasExpByte   uint64 = 50
	gasKeccak    uint64 = 30
	gasKeccakWord uint64 = 6
	gasCopyWord  uint64 = 3
	gasLogBase   uint64 = 375
	gasLogTopic  uint64 = 375
	gasLogByte   uint64 = 8
)

func init() {
	registerArithmetic()
	registerComparisonAndBitwise()
	registerKeccak()
	registerEnvironment()
	registerBlockContext()
	registerStackMemoryStorageJump()
	registerPushDupSwap()
	registerLog()
	registerUnimplemented()
}

// wordsFor returns ceil(n/32), the word count copy and hashing costs
// are priced in (spec.md §4.8).
func wordsFor(n uint64) uint64 {
	return (n + 31) / 32
}

// popIndex pops the top of the stack and narrows it to a usable index,
// failing with ErrInvalidMemoryAccess if it does not fit in 64 bits
// (spec.md §4.1's ToIndex narrowing rule).
func popIndex(f *Frame) (uint64, error) {
	v := f.stack.Pop()
	idx, ok := ToIndex(&v)
	if !ok {
		return 0, fmt.Errorf("%w: value %s does not fit in 64 bits", ErrInvalidMemoryAccess, v.String())
	}
	return idx, nil
}

// chargeMemory debits the incremental quadratic cost of growing memory
// to cover [offset, offset+size) and then actually grows it, so a
// caller that only reads (KECCAK256, LOG, RETURN) still leaves memory
// at the size MSIZE should subsequently report.
func (f *Frame) chargeMemory(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	if size > math.MaxUint64-offset {
		return fmt.Errorf("%w: offset %d + size %d overflows uint64", ErrInvalidMemoryAccess, offset, size)
	}
	cost := f.mem.ExpansionCost(offset + size)
	if err := f.gas.Consume(cost); err != nil {
		return err
	}
	f.mem.Resize(offset + size)
	return nil
}

// ---- 4.1 Arithmetic ----

func registerArithmetic() {
	register(ADD, "ADD", 2, 1, gasVeryLow, opAdd)
	register(MUL, "MUL", 2, 1, gasLow, opMul)
	register(SUB, "SUB", 2, 1, gasVeryLow, opSub)
	register(DIV, "DIV", 2, 1, gasLow, opDiv)
	register(SDIV, "SDIV", 2, 1, gasLow, opSdiv)
	register(MOD, "MOD", 2, 1, gasLow, opMod)
	register(SMOD, "SMOD", 2, 1, gasLow, opSmod)
	register(ADDMOD, "ADDMOD", 3, 1, gasMid, opAddmod)
	register(MULMOD, "MULMOD", 3, 1, gasMid, opMulmod)
	register(EXP, "EXP", 2, 1, gasExp, opExp)
	register(SIGNEXTEND, "SIGNEXTEND", 2, 1, gasLow, opSignextend)
}

func opAdd(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Add(&a, &b))
	return nil
}

func opMul(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Mul(&a, &b))
	return nil
}

func opSub(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Sub(&a, &b))
	return nil
}

func opDiv(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Div(&a, &b)) // uint256.Div defines x/0 == 0
	return nil
}

// opSdiv implements signed division with the EVM's Python-style
// truncation-toward-zero semantics, including the overflow special
// case (-2**255) / (-1) == -2**255 (spec.md §4.1). uint256.Int.SDiv
// already implements exactly this rule.
func opSdiv(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).SDiv(&a, &b))
	return nil
}

func opMod(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Mod(&a, &b))
	return nil
}

func opSmod(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).SMod(&a, &b))
	return nil
}

// opAddmod computes (a + b) mod n without the addition itself
// overflowing a 256-bit register (spec.md §4.1 — the original evm-rs's
// bug here evaluated operator precedence wrong, effectively computing
// a + (b mod n) instead of (a + b) mod n; uint256.Int.AddMod does the
// correct wide computation internally).
func opAddmod(f *Frame, _ []byte) error {
	a, b, n := f.stack.Pop(), f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).AddMod(&a, &b, &n))
	return nil
}

func opMulmod(f *Frame, _ []byte) error {
	a, b, n := f.stack.Pop(), f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).MulMod(&a, &b, &n))
	return nil
}

// opExp implements square-and-multiply exponentiation and charges the
// canonical per-exponent-byte dynamic gas rule from spec.md §4.1/§9:
// 10 + 50*byteLen(exponent). The original evm-rs this engine descends
// from added an extra flat "EXP_SUPPLEMENTAL_GAS" term on top of the
// per-byte cost; that extra term is not reproduced here.
func opExp(f *Frame, _ []byte) error {
	base, exp := f.stack.Pop(), f.stack.Pop()
	byteLen := uint64((exp.BitLen() + 7) / 8)
	if err := f.gas.Consume(gasExpByte * byteLen); err != nil {
		return err
	}
	f.stack.Push(new(uint256.Int).Exp(&base, &exp))
	return nil
}

// opSignextend sign-extends the low (b+1) bytes of x, treating byte
// position 0 as the least significant byte, per spec.md §4.1.
func opSignextend(f *Frame, _ []byte) error {
	b, x := f.stack.Pop(), f.stack.Pop()
	if b.LtUint64(32) {
		f.stack.Push(new(uint256.Int).ExtendSign(&x, &b))
		return nil
	}
	f.stack.Push(&x)
	return nil
}

// ---- 4.1 Comparisons and bitwise ----

func registerComparisonAndBitwise() {
	register(LT, "LT", 2, 1, gasVeryLow, opLt)
	register(GT, "GT", 2, 1, gasVeryLow, opGt)
	register(SLT, "SLT", 2, 1, gasVeryLow, opSlt)
	register(SGT, "SGT", 2, 1, gasVeryLow, opSgt)
	register(EQ, "EQ", 2, 1, gasVeryLow, opEq)
	register(ISZERO, "ISZERO", 1, 1, gasVeryLow, opIszero)
	register(AND, "AND", 2, 1, gasVeryLow, opAnd)
	register(OR, "OR", 2, 1, gasVeryLow, opOr)
	register(XOR, "XOR", 2, 1, gasVeryLow, opXor)
	register(NOT, "NOT", 1, 1, gasVeryLow, opNot)
	register(BYTE, "BYTE", 2, 1, gasVeryLow, opByte)
}

func opLt(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(boolWord(a.Lt(&b)))
	return nil
}

func opGt(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(boolWord(a.Gt(&b)))
	return nil
}

func opSlt(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(boolWord(a.Slt(&b)))
	return nil
}

func opSgt(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(boolWord(a.Sgt(&b)))
	return nil
}

func opEq(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(boolWord(a.Eq(&b)))
	return nil
}

func opIszero(f *Frame, _ []byte) error {
	a := f.stack.Pop()
	f.stack.Push(boolWord(a.IsZero()))
	return nil
}

func opAnd(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).And(&a, &b))
	return nil
}

func opOr(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Or(&a, &b))
	return nil
}

func opXor(f *Frame, _ []byte) error {
	a, b := f.stack.Pop(), f.stack.Pop()
	f.stack.Push(new(uint256.Int).Xor(&a, &b))
	return nil
}

func opNot(f *Frame, _ []byte) error {
	a := f.stack.Pop()
	f.stack.Push(new(uint256.Int).Not(&a))
	return nil
}

// opByte returns the i-th byte of x counting from the most significant
// byte (byte 0), or zero if i >= 32, per spec.md §4.1.
func opByte(f *Frame, _ []byte) error {
	i, x := f.stack.Pop(), f.stack.Pop()
	if !i.LtUint64(32) {
		f.stack.Push(new(uint256.Int))
		return nil
	}
	b := x.Bytes32()
	f.stack.Push(uint256.NewInt(uint64(b[i.Uint64()])))
	return nil
}

// ---- KECCAK256 ----

func registerKeccak() {
	register(KECCAK256, "KECCAK256", 2, 1, gasKeccak, opKeccak256)
}

func opKeccak256(f *Frame, _ []byte) error {
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	size, err := popIndex(f)
	if err != nil {
		return err
	}
	if err := f.chargeMemory(offset, size); err != nil {
		return err
	}
	if err := f.gas.Consume(gasKeccakWord * wordsFor(size)); err != nil {
		return err
	}
	data := f.mem.GetCopy(int64(offset), int64(size))
	h := f.host.Keccak256(data)
	f.stack.Push(WordFromBytes(h.Bytes()))
	return nil
}

// ---- Environment ----

func registerEnvironment() {
	register(ADDRESS, "ADDRESS", 0, 1, gasBase, opAddress)
	registerDelegated(BALANCE, "BALANCE", 1, 1, gasBalance, opBalance)
	register(ORIGIN, "ORIGIN", 0, 1, gasBase, opOrigin)
	register(CALLER, "CALLER", 0, 1, gasBase, opCaller)
	register(CALLVALUE, "CALLVALUE", 0, 1, gasBase, opCallvalue)
	register(CALLDATALOAD, "CALLDATALOAD", 1, 1, gasVeryLow, opCalldataload)
	register(CALLDATASIZE, "CALLDATASIZE", 0, 1, gasBase, opCalldatasize)
	register(CALLDATACOPY, "CALLDATACOPY", 3, 0, gasVeryLow, opCalldatacopy)
	register(CODESIZE, "CODESIZE", 0, 1, gasBase, opCodesize)
	register(CODECOPY, "CODECOPY", 3, 0, gasVeryLow, opCodecopy)
	register(GASPRICE, "GASPRICE", 0, 1, gasBase, opGasprice)
	registerDelegated(EXTCODESIZE, "EXTCODESIZE", 1, 1, gasExtcode, opExtcodesize)
	registerDelegated(EXTCODECOPY, "EXTCODECOPY", 4, 0, gasExtcode, opExtcodecopy)
	register(RETURNDATASIZE, "RETURNDATASIZE", 0, 1, gasBase, opReturndatasize)
	register(RETURNDATACOPY, "RETURNDATACOPY", 3, 0, gasVeryLow, opReturndatacopy)
	registerDelegated(EXTCODEHASH, "EXTCODEHASH", 1, 1, gasExtcode, opExtcodehash)
}

func opAddress(f *Frame, _ []byte) error {
	f.stack.Push(WordFromBytes(f.address.Bytes()))
	return nil
}

func opBalance(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	addr := common256ToAddress(&v)
	f.stack.Push(f.host.Balance(addr))
	return nil
}

func opOrigin(f *Frame, _ []byte) error {
	f.stack.Push(WordFromBytes(f.caller.Bytes()))
	return nil
}

func opCaller(f *Frame, _ []byte) error {
	f.stack.Push(WordFromBytes(f.caller.Bytes()))
	return nil
}

func opCallvalue(f *Frame, _ []byte) error {
	f.stack.Push(&f.value)
	return nil
}

func opCalldataload(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	offset, ok := ToIndex(&v)
	if !ok {
		f.stack.Push(new(uint256.Int))
		return nil
	}
	f.stack.Push(WordFromBytes(paddedSlice(f.calldata, offset, 32)))
	return nil
}

func opCalldatasize(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(uint64(len(f.calldata))))
	return nil
}

func opCalldatacopy(f *Frame, _ []byte) error {
	return copyToMemory(f, f.calldata)
}

func opCodesize(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(uint64(len(f.code))))
	return nil
}

func opCodecopy(f *Frame, _ []byte) error {
	return copyToMemory(f, f.code)
}

func opGasprice(f *Frame, _ []byte) error {
	f.stack.Push(new(uint256.Int))
	return nil
}

func opExtcodesize(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	addr := common256ToAddress(&v)
	f.stack.Push(uint256.NewInt(uint64(len(f.host.ExtCode(addr)))))
	return nil
}

func opExtcodecopy(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	addr := common256ToAddress(&v)
	return copyToMemory(f, f.host.ExtCode(addr))
}

func opReturndatasize(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(uint64(len(f.returnData))))
	return nil
}

func opReturndatacopy(f *Frame, _ []byte) error {
	destOffset, err := popIndex(f)
	if err != nil {
		return err
	}
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	size, err := popIndex(f)
	if err != nil {
		return err
	}
	if offset+size > uint64(len(f.returnData)) {
		return fmt.Errorf("%w: [%d,%d) exceeds return data of length %d", ErrReturnDataOutOfRange, offset, offset+size, len(f.returnData))
	}
	if err := f.chargeMemory(destOffset, size); err != nil {
		return err
	}
	if err := f.gas.Consume(gasCopyWord * wordsFor(size)); err != nil {
		return err
	}
	f.mem.Set(destOffset, size, f.returnData[offset:offset+size])
	return nil
}

func opExtcodehash(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	addr := common256ToAddress(&v)
	code := f.host.ExtCode(addr)
	if len(code) == 0 {
		f.stack.Push(new(uint256.Int))
		return nil
	}
	h := f.host.Keccak256(code)
	f.stack.Push(WordFromBytes(h.Bytes()))
	return nil
}

// ---- Block context ----

func registerBlockContext() {
	registerDelegated(BLOCKHASH, "BLOCKHASH", 1, 1, gasBlockhash, opBlockhash)
	registerDelegated(COINBASE, "COINBASE", 0, 1, gasBase, opCoinbase)
	registerDelegated(TIMESTAMP, "TIMESTAMP", 0, 1, gasBase, opTimestamp)
	registerDelegated(NUMBER, "NUMBER", 0, 1, gasBase, opNumber)
	registerDelegated(DIFFICULTY, "DIFFICULTY", 0, 1, gasBase, opDifficulty)
	registerDelegated(GASLIMIT, "GASLIMIT", 0, 1, gasBase, opGaslimit)
}

func opBlockhash(f *Frame, _ []byte) error {
	v := f.stack.Pop()
	num, ok := ToIndex(&v)
	if !ok {
		f.stack.Push(new(uint256.Int))
		return nil
	}
	h := f.host.BlockHash(num)
	f.stack.Push(WordFromBytes(h.Bytes()))
	return nil
}

func opCoinbase(f *Frame, _ []byte) error {
	f.stack.Push(WordFromBytes(f.host.BlockContext().Coinbase.Bytes()))
	return nil
}

func opTimestamp(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(f.host.BlockContext().Timestamp))
	return nil
}

func opNumber(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(f.host.BlockContext().Number))
	return nil
}

func opDifficulty(f *Frame, _ []byte) error {
	d := f.host.BlockContext().Difficulty
	f.stack.Push(&d)
	return nil
}

func opGaslimit(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(f.host.BlockContext().GasLimit))
	return nil
}

// ---- 4.4/4.6/4.7 Stack, memory, storage, jump ----

func registerStackMemoryStorageJump() {
	register(POP, "POP", 1, 0, gasBase, opPop)
	register(MLOAD, "MLOAD", 1, 1, gasVeryLow, opMload)
	register(MSTORE, "MSTORE", 2, 0, gasVeryLow, opMstore)
	register(MSTORE8, "MSTORE8", 2, 0, gasVeryLow, opMstore8)
	register(SLOAD, "SLOAD", 1, 1, gasSload, opSload)
	register(SSTORE, "SSTORE", 2, 0, gasZero, opSstore)
	register(JUMP, "JUMP", 1, 0, gasMid, opJump)
	register(JUMPI, "JUMPI", 2, 0, gasHigh, opJumpi)
	register(PC, "PC", 0, 1, gasBase, opPc)
	register(MSIZE, "MSIZE", 0, 1, gasBase, opMsize)
	register(GAS, "GAS", 0, 1, gasBase, opGas)
	register(JUMPDEST, "JUMPDEST", 0, 0, gasJumpdest, opJumpdest)
	register(STOP, "STOP", 0, 0, gasZero, opStop)
	register(RETURN, "RETURN", 2, 0, gasZero, opReturn)
}

func opPop(f *Frame, _ []byte) error {
	f.stack.Pop()
	return nil
}

// opMload reads the full 32-byte window starting at the popped offset,
// per spec.md §4.4.
func opMload(f *Frame, _ []byte) error {
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	if err := f.chargeMemory(offset, 32); err != nil {
		return err
	}
	f.stack.Push(WordFromBytes(f.mem.GetPtr(int64(offset), 32)))
	return nil
}

// opMstore writes the full 32-byte big-endian form of value at offset.
// spec.md §9 calls this out explicitly: the original evm-rs copied
// value's raw byte representation (whose length depends on its
// internal limb layout) into memory starting at offset, which could
// write short of or past the 32-byte window a correct MSTORE must
// fill. Memory.Set32 always writes exactly 32 bytes.
func opMstore(f *Frame, _ []byte) error {
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	value := f.stack.Pop()
	if err := f.chargeMemory(offset, 32); err != nil {
		return err
	}
	f.mem.Set32(offset, &value)
	return nil
}

func opMstore8(f *Frame, _ []byte) error {
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	value := f.stack.Pop()
	if err := f.chargeMemory(offset, 1); err != nil {
		return err
	}
	f.mem.Set(offset, 1, []byte{byte(value.Uint64())})
	return nil
}

func opSload(f *Frame, _ []byte) error {
	key := f.stack.Pop()
	v := f.store.Load(&key)
	f.stack.Push(&v)
	return nil
}

func opSstore(f *Frame, _ []byte) error {
	key, value := f.stack.Pop(), f.stack.Pop()
	prev, hadPrev := f.store.current[key]
	prevRefund := f.store.refund
	cost := f.store.Store(&key, &value)
	if err := f.gas.Consume(cost); err != nil {
		// undo the write so a failed debit leaves storage unchanged
		if hadPrev {
			f.store.current[key] = prev
		} else {
			delete(f.store.current, key)
		}
		f.store.refund = prevRefund
		return err
	}
	return nil
}

// opJump validates its destination against the precomputed JumpTable
// before moving pc there (spec.md §4.5); Step() has already advanced pc
// past this instruction, so a successful jump overwrites that advance.
func opJump(f *Frame, _ []byte) error {
	dest := f.stack.Pop()
	idx, ok := ToIndex(&dest)
	if !ok || !f.jumpTable.IsValid(idx) {
		return fmt.Errorf("%w: %s", ErrInvalidJumpDest, dest.String())
	}
	f.pc = idx
	return nil
}

func opJumpi(f *Frame, _ []byte) error {
	dest, cond := f.stack.Pop(), f.stack.Pop()
	if cond.IsZero() {
		return nil
	}
	idx, ok := ToIndex(&dest)
	if !ok || !f.jumpTable.IsValid(idx) {
		return fmt.Errorf("%w: %s", ErrInvalidJumpDest, dest.String())
	}
	f.pc = idx
	return nil
}

// opPc pushes the pc of the PC instruction itself, not the advanced
// value Step() already wrote into f.pc — hence the -1.
func opPc(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(f.pc - 1))
	return nil
}

func opMsize(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(uint64(f.mem.Len())))
	return nil
}

func opGas(f *Frame, _ []byte) error {
	f.stack.Push(uint256.NewInt(f.gas.Remaining()))
	return nil
}

func opJumpdest(f *Frame, _ []byte) error { return nil }

func opStop(f *Frame, _ []byte) error { return nil }

func opReturn(f *Frame, _ []byte) error {
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	size, err := popIndex(f)
	if err != nil {
		return err
	}
	if err := f.chargeMemory(offset, size); err != nil {
		return err
	}
	f.returnData = f.mem.GetCopy(int64(offset), int64(size))
	if f.returnData == nil {
		f.returnData = []byte{}
	}
	return nil
}

// ---- PUSH/DUP/SWAP ----

// registerPushDupSwap deliberately does not register PUSH0 (0x5f):
// this engine targets the pre-Shanghai opcode set the teacher's own
// lineage and the original source both predate, where 0x5f has no
// defined meaning.
func registerPushDupSwap() {
	for op := PUSH1; op <= PUSH32; op++ {
		register(op, pushName(op), 0, 1, gasVeryLow, opPush)
	}
	for op := DUP1; op <= DUP16; op++ {
		n := int(op-DUP1) + 1
		register(op, dupName(op), n, n+1, gasVeryLow, opDup)
	}
	for op := SWAP1; op <= SWAP16; op++ {
		n := int(op-SWAP1) + 1
		register(op, swapName(op), n+1, n+1, gasVeryLow, opSwap)
	}
}

func pushName(op OpCode) string { return fmt.Sprintf("PUSH%d", op.PushSize()) }
func dupName(op OpCode) string  { return fmt.Sprintf("DUP%d", op.DupN()) }
func swapName(op OpCode) string { return fmt.Sprintf("SWAP%d", op.SwapN()) }

func opPush(f *Frame, immediate []byte) error {
	f.stack.Push(WordFromBytes(immediate))
	return nil
}

func opDup(f *Frame, _ []byte) error {
	op := OpCode(f.code[f.pc-1])
	f.stack.Dup(op.DupN())
	return nil
}

func opSwap(f *Frame, _ []byte) error {
	op := OpCode(f.code[f.pc-1])
	f.stack.Swap(op.SwapN())
	return nil
}

// ---- LOG0..LOG4 ----

func registerLog() {
	for op := LOG0; op <= LOG4; op++ {
		n := int(op - LOG0)
		registerDelegated(op, fmt.Sprintf("LOG%d", n), n+2, 0, gasLogBase, opLog)
	}
}

func opLog(f *Frame, _ []byte) error {
	op := OpCode(f.code[f.pc-1])
	n := op.LogN()

	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	size, err := popIndex(f)
	if err != nil {
		return err
	}
	topics := make([]uint256.Int, n)
	for i := 0; i < n; i++ {
		topics[i] = f.stack.Pop()
	}

	if err := f.chargeMemory(offset, size); err != nil {
		return err
	}
	dynamicGas := gasLogTopic*uint64(n) + gasLogByte*size
	if err := f.gas.Consume(dynamicGas); err != nil {
		return err
	}

	data := f.mem.GetCopy(int64(offset), int64(size))
	f.host.EmitLog(Log{Address: f.address, Topics: topics, Data: data})
	return nil
}

// ---- Unimplemented: contract creation and nested calls ----

func registerUnimplemented() {
	for _, op := range []OpCode{CREATE, CALL, CALLCODE, DELEGATECALL, CREATE2, STATICCALL, SELFDESTRUCT} {
		register(op, op.tableName(), 0, 0, gasZero, opUnimplemented)
	}
}

// tableName returns the mnemonic to register an opcode under before its
// own String() method (which reads from the table this populates) is
// available; used only during registerUnimplemented's bootstrapping.
func (op OpCode) tableName() string {
	switch op {
	case CREATE:
		return "CREATE"
	case CALL:
		return "CALL"
	case CALLCODE:
		return "CALLCODE"
	case DELEGATECALL:
		return "DELEGATECALL"
	case CREATE2:
		return "CREATE2"
	case STATICCALL:
		return "STATICCALL"
	case SELFDESTRUCT:
		return "SELFDESTRUCT"
	default:
		return "UNKNOWN"
	}
}

func opUnimplemented(f *Frame, _ []byte) error {
	op := OpCode(f.code[f.pc-1])
	return fmt.Errorf("%w: %s", ErrUnimplementedOpcode, op)
}

// ---- shared helpers ----

// copyToMemory implements the *COPY family: pop destOffset/offset/size,
// charge the 3-gas-per-word copy cost plus memory expansion, then copy
// a zero-padded slice of src into memory (spec.md §4.8).
func copyToMemory(f *Frame, src []byte) error {
	destOffset, err := popIndex(f)
	if err != nil {
		return err
	}
	offset, err := popIndex(f)
	if err != nil {
		return err
	}
	size, err := popIndex(f)
	if err != nil {
		return err
	}
	if err := f.chargeMemory(destOffset, size); err != nil {
		return err
	}
	if err := f.gas.Consume(gasCopyWord * wordsFor(size)); err != nil {
		return err
	}
	f.mem.Set(destOffset, size, paddedSlice(src, offset, size))
	return nil
}

// paddedSlice returns length bytes of src starting at offset, zero
// padded past the end of src, without ever indexing out of range.
func paddedSlice(src []byte, offset, length uint64) []byte {
	out := make([]byte, length)
	if offset >= uint64(len(src)) {
		return out
	}
	end := offset + length
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	copy(out, src[offset:end])
	return out
}

// common256ToAddress narrows a stack word to the low 20 bytes, the way
// ADDRESS-shaped operands are always encoded on the stack.
func common256ToAddress(w *uint256.Int) common.Address {
	b := w.Bytes32()
	return common.BytesToAddress(b[12:])
}
