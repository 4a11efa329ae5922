package vm

import "github.com/evmkit/coreevm/int256"

// tableForRules returns the jump table for the highest fork rules enables.
// Each fork's builder starts from the previous fork's table and overlays
// only what that fork added or repriced, mirroring how the upgrade was
// actually specified.
func tableForRules(rules ChainRules) *JumpTable {
	switch {
	case rules.IsCancun:
		return newCancunJumpTable()
	case rules.IsShanghai:
		return newShanghaiJumpTable()
	case rules.IsLondon:
		return newLondonJumpTable()
	case rules.IsBerlin:
		return newBerlinJumpTable()
	case rules.IsIstanbul:
		return newIstanbulJumpTable()
	case rules.IsConstantinople:
		return newConstantinopleJumpTable()
	case rules.IsByzantium:
		return newByzantiumJumpTable()
	case rules.IsHomestead:
		return newHomesteadJumpTable()
	default:
		return newFrontierJumpTable()
	}
}

func newFrontierJumpTable() *JumpTable {
	tbl := &JumpTable{}
	for i := range tbl {
		tbl[i] = &operation{execute: opUndefined, minStack: minStackFor(0, 0), maxStack: maxStackFor(0, 0)}
	}

	set := func(op OpCode, o *operation) { tbl[op] = o }

	set(STOP, &operation{execute: opStop, constantGas: GasStop, minStack: minStackFor(0, 0), maxStack: maxStackFor(0, 0), halts: true})
	set(ADD, &operation{execute: opAdd, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(MUL, &operation{execute: opMul, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SUB, &operation{execute: opSub, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(DIV, &operation{execute: opDiv, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SDIV, &operation{execute: opSdiv, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(MOD, &operation{execute: opMod, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SMOD, &operation{execute: opSmod, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(ADDMOD, &operation{execute: opAddmod, constantGas: GasMid, minStack: minStackFor(3, 1), maxStack: maxStackFor(3, 1)})
	set(MULMOD, &operation{execute: opMulmod, constantGas: GasMid, minStack: minStackFor(3, 1), maxStack: maxStackFor(3, 1)})
	set(EXP, &operation{execute: opExp, constantGas: GasHigh, dynamicGas: gasExp, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SIGNEXTEND, &operation{execute: opSignExtend, constantGas: GasLow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})

	set(LT, &operation{execute: opLt, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(GT, &operation{execute: opGt, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SLT, &operation{execute: opSlt, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(SGT, &operation{execute: opSgt, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(EQ, &operation{execute: opEq, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(ISZERO, &operation{execute: opIsZero, constantGas: GasVerylow, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(AND, &operation{execute: opAnd, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(OR, &operation{execute: opOr, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(XOR, &operation{execute: opXor, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})
	set(NOT, &operation{execute: opNot, constantGas: GasVerylow, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(BYTE, &operation{execute: opByte, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})

	set(KECCAK256, &operation{execute: opKeccak256, constantGas: GasKeccak256, dynamicGas: gasKeccak256, memorySize: memoryKeccak256, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)})

	set(ADDRESS, &operation{execute: opAddress, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(BALANCE, &operation{execute: opBalance, dynamicGas: gasBalance, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(ORIGIN, &operation{execute: opOrigin, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(CALLER, &operation{execute: opCaller, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(CALLVALUE, &operation{execute: opCallValue, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(CALLDATALOAD, &operation{execute: opCalldataLoad, constantGas: GasVerylow, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(CALLDATASIZE, &operation{execute: opCalldataSize, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(CALLDATACOPY, &operation{execute: opCalldataCopy, constantGas: GasVerylow, dynamicGas: gasCalldataCopy, memorySize: memoryCalldataCopy, minStack: minStackFor(3, 0), maxStack: maxStackFor(3, 0)})
	set(CODESIZE, &operation{execute: opCodeSize, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(CODECOPY, &operation{execute: opCodeCopy, constantGas: GasVerylow, dynamicGas: gasCodeCopy, memorySize: memoryCodeCopy, minStack: minStackFor(3, 0), maxStack: maxStackFor(3, 0)})
	set(GASPRICE, &operation{execute: opGasPrice, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(EXTCODESIZE, &operation{execute: opExtcodesize, dynamicGas: gasExtCodeSize, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(EXTCODECOPY, &operation{execute: opExtcodecopy, dynamicGas: gasExtCodeCopy, memorySize: memoryExtCodeCopy, minStack: minStackFor(4, 0), maxStack: maxStackFor(4, 0)})

	set(BLOCKHASH, &operation{execute: opBlockhash, constantGas: GasExt, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(COINBASE, &operation{execute: opCoinbase, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(TIMESTAMP, &operation{execute: opTimestamp, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(NUMBER, &operation{execute: opNumber, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(PREVRANDAO, &operation{execute: opDifficulty, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(GASLIMIT, &operation{execute: opGasLimit, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})

	set(POP, &operation{execute: opPop, constantGas: GasPop, minStack: minStackFor(1, 0), maxStack: maxStackFor(1, 0)})
	set(MLOAD, &operation{execute: opMload, constantGas: GasMload, dynamicGas: gasMemExpansion, memorySize: memoryMload, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(MSTORE, &operation{execute: opMstore, constantGas: GasMstore, dynamicGas: gasMemExpansion, memorySize: memoryMstore, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0)})
	set(MSTORE8, &operation{execute: opMstore8, constantGas: GasMstore8, dynamicGas: gasMemExpansion, memorySize: memoryMstore8, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0)})
	set(SLOAD, &operation{execute: opSload, dynamicGas: gasSload, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)})
	set(SSTORE, &operation{execute: opSstore, dynamicGas: gasSstore, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0), writes: true})
	set(JUMP, &operation{execute: opJump, constantGas: GasJump, minStack: minStackFor(1, 0), maxStack: maxStackFor(1, 0), jumps: true})
	set(JUMPI, &operation{execute: opJumpi, constantGas: GasJumpi, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0), jumps: true})
	set(PC, &operation{execute: opPc, constantGas: GasPc, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(MSIZE, &operation{execute: opMsize, constantGas: GasMsize, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(GAS, &operation{execute: opGas, constantGas: GasGas, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	set(JUMPDEST, &operation{execute: opJumpdest, constantGas: GasJumpDest, minStack: minStackFor(0, 0), maxStack: maxStackFor(0, 0)})

	for i := 0; i < 32; i++ {
		op := PUSH1 + OpCode(i)
		size := i + 1
		set(op, &operation{execute: makePush(size), constantGas: GasPush, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)})
	}
	for i := 1; i <= 16; i++ {
		op := DUP1 + OpCode(i-1)
		set(op, &operation{execute: makeDup(i), constantGas: GasDup, minStack: minStackFor(i, i+1), maxStack: maxStackFor(i, i+1)})
		sop := SWAP1 + OpCode(i-1)
		set(sop, &operation{execute: makeSwap(i), constantGas: GasSwap, minStack: minStackFor(i+1, i+1), maxStack: maxStackFor(i+1, i+1)})
	}
	for i := 0; i <= 4; i++ {
		op := LOG0 + OpCode(i)
		set(op, &operation{execute: makeLog(i), constantGas: GasLog, dynamicGas: gasLog(i), memorySize: memoryLog, minStack: minStackFor(2+i, 0), maxStack: maxStackFor(2+i, 0), writes: true})
	}

	set(CREATE, &operation{execute: opCreate, constantGas: GasCreate, dynamicGas: gasCreate, memorySize: memoryCreate, minStack: minStackFor(3, 1), maxStack: maxStackFor(3, 1), writes: true})
	set(CALL, &operation{execute: opCall, dynamicGas: gasCall, memorySize: memoryCall, minStack: minStackFor(7, 1), maxStack: maxStackFor(7, 1)})
	set(CALLCODE, &operation{execute: opCallCode, dynamicGas: gasCallCode, memorySize: memoryCall, minStack: minStackFor(7, 1), maxStack: maxStackFor(7, 1)})
	set(RETURN, &operation{execute: opReturn, constantGas: GasReturn, dynamicGas: gasMemExpansion, memorySize: memoryReturn, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0), halts: true})
	set(INVALID, &operation{execute: opInvalid, minStack: minStackFor(0, 0), maxStack: maxStackFor(0, 0), halts: true})
	set(SELFDESTRUCT, &operation{execute: opSelfdestruct, dynamicGas: gasSelfdestruct, minStack: minStackFor(1, 0), maxStack: maxStackFor(1, 0), halts: true, writes: true})

	tbl.Validate()
	return tbl
}

// gasExp implements the per-byte EXP surcharge: 10 gas/byte of the exponent
// pre-Spurious-Dragon, 50 gas/byte from Spurious Dragon on (EIP-160). Every
// fork table shares this one function; the rate is picked at execution
// time from evm.Rules.IsEIP158.
func gasExp(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	exponent := back1(stack)
	if int256.IsZero(exponent) {
		return 0, nil
	}
	byteLen := (exponent.BitLen() + 7) / 8
	rate := uint64(10)
	if evm.Rules.IsEIP158 {
		rate = 50
	}
	return uint64(byteLen) * rate, nil
}

func newHomesteadJumpTable() *JumpTable {
	tbl := newFrontierJumpTable()
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, dynamicGas: gasDelegateOrStaticCall, memorySize: memoryDelegateOrStaticCall, minStack: minStackFor(6, 1), maxStack: maxStackFor(6, 1)}
	tbl.Validate()
	return tbl
}

func newByzantiumJumpTable() *JumpTable {
	tbl := newHomesteadJumpTable()
	tbl[REVERT] = &operation{execute: opRevert, dynamicGas: gasMemExpansion, memorySize: memoryReturn, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0), halts: true}
	tbl[STATICCALL] = &operation{execute: opStaticCall, dynamicGas: gasDelegateOrStaticCall, memorySize: memoryDelegateOrStaticCall, minStack: minStackFor(6, 1), maxStack: maxStackFor(6, 1)}
	tbl[RETURNDATASIZE] = &operation{execute: opReturndataSize, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturndataCopy, constantGas: GasVerylow, dynamicGas: gasReturndataCopy, memorySize: memoryReturndataCopy, minStack: minStackFor(3, 0), maxStack: maxStackFor(3, 0)}
	tbl.Validate()
	return tbl
}

func newConstantinopleJumpTable() *JumpTable {
	tbl := newByzantiumJumpTable()
	tbl[SHL] = &operation{execute: opSHL, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)}
	tbl[SHR] = &operation{execute: opSHR, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)}
	tbl[SAR] = &operation{execute: opSAR, constantGas: GasVerylow, minStack: minStackFor(2, 1), maxStack: maxStackFor(2, 1)}
	tbl[EXTCODEHASH] = &operation{execute: opExtcodehash, dynamicGas: gasExtCodeHash, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: GasCreate, dynamicGas: gasCreate2, memorySize: memoryCreate, minStack: minStackFor(4, 1), maxStack: maxStackFor(4, 1), writes: true}
	tbl.Validate()
	return tbl
}

func newIstanbulJumpTable() *JumpTable {
	tbl := newConstantinopleJumpTable()
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: GasLow, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl[CHAINID] = &operation{execute: opChainID, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl.Validate()
	return tbl
}

// newBerlinJumpTable needs no overlay at all: BALANCE, EXTCODESIZE,
// EXTCODECOPY, EXTCODEHASH, SLOAD, SSTORE, SELFDESTRUCT, and the CALL
// family all already dispatch to dynamicGas functions that branch on
// evm.Rules.IsBerlin themselves (accessListAddressCost, accessListSlotCost,
// gasSstore, gasSelfdestruct, gasCall, gasDelegateOrStaticCall). EIP-2929
// is a rule flag read at execution time, not a new jump-table generation.
func newBerlinJumpTable() *JumpTable {
	tbl := newIstanbulJumpTable()
	tbl.Validate()
	return tbl
}

func newLondonJumpTable() *JumpTable {
	tbl := newBerlinJumpTable()
	tbl[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasBase, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl.Validate()
	return tbl
}

func newShanghaiJumpTable() *JumpTable {
	tbl := newLondonJumpTable()
	tbl[PUSH0] = &operation{execute: opPush0, constantGas: GasPush0, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl.Validate()
	return tbl
}

func newCancunJumpTable() *JumpTable {
	tbl := newShanghaiJumpTable()
	tbl[TLOAD] = &operation{execute: opTload, constantGas: GasTload, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)}
	tbl[TSTORE] = &operation{execute: opTstore, constantGas: GasTstore, minStack: minStackFor(2, 0), maxStack: maxStackFor(2, 0), writes: true}
	tbl[MCOPY] = &operation{execute: opMcopy, dynamicGas: gasMcopy, memorySize: memoryMcopy, minStack: minStackFor(3, 0), maxStack: maxStackFor(3, 0)}
	tbl[BLOBHASH] = &operation{execute: opBlobHash, constantGas: GasBlobHash, minStack: minStackFor(1, 1), maxStack: maxStackFor(1, 1)}
	tbl[BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: GasBlobBaseFee, minStack: minStackFor(0, 1), maxStack: maxStackFor(0, 1)}
	tbl.Validate()
	return tbl
}
