package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// memoryGasCost computes the marginal Yellow Paper quadratic memory
// expansion cost of growing memory from currentLen bytes to newSize bytes.
// newSize is already word-aligned by the interpreter loop before this is
// called. Shrinking (newSize <= currentLen) costs nothing.
func memoryGasCost(currentLen, newSize uint64) uint64 {
	if newSize <= currentLen {
		return 0
	}
	newWords := newSize / 32
	newCost := newWords*GasMemory + (newWords*newWords)/512
	oldWords := currentLen / 32
	oldCost := oldWords*GasMemory + (oldWords*oldWords)/512
	if newCost <= oldCost {
		return 0
	}
	return newCost - oldCost
}

// gasMemExpansion is the dynamicGas hook shared by every opcode whose only
// dynamic cost is memory expansion (MLOAD, MSTORE, KECCAK256, RETURN, ...).
func gasMemExpansion(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(uint64(mem.Len()), memorySize), nil
}

// back0 reads stack.Back(0) for use inside memorySize/dynamicGas hooks,
// which the interpreter only calls once min_stack has already validated
// there are enough items present.
func back0(stack *Stack) *int256.Int {
	v, _ := stack.Back(0)
	return v
}
func back1(stack *Stack) *int256.Int { v, _ := stack.Back(1); return v }
func back2(stack *Stack) *int256.Int { v, _ := stack.Back(2); return v }
func back3(stack *Stack) *int256.Int { v, _ := stack.Back(3); return v }
func back4(stack *Stack) *int256.Int { v, _ := stack.Back(4); return v }
func back5(stack *Stack) *int256.Int { v, _ := stack.Back(5); return v }
func back6(stack *Stack) *int256.Int { v, _ := stack.Back(6); return v }

func memSizeForRange(offset, size *int256.Int) (uint64, bool) {
	if int256.IsZero(size) {
		return 0, false
	}
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return 0, true
	}
	sz, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return 0, true
	}
	end := off + sz
	if end < off {
		return 0, true
	}
	return end, false
}

func memoryMload(stack *Stack) (uint64, bool)  { return memSizeForRange(back0(stack), int256.FromUint64(32)) }
func memoryMstore(stack *Stack) (uint64, bool) { return memSizeForRange(back0(stack), int256.FromUint64(32)) }
func memoryMstore8(stack *Stack) (uint64, bool) {
	return memSizeForRange(back0(stack), int256.FromUint64(1))
}
func memoryReturn(stack *Stack) (uint64, bool)     { return memSizeForRange(back0(stack), back1(stack)) }
func memoryKeccak256(stack *Stack) (uint64, bool)  { return memSizeForRange(back0(stack), back1(stack)) }
func memoryCalldataCopy(stack *Stack) (uint64, bool) {
	return memSizeForRange(back0(stack), back2(stack))
}
func memoryCodeCopy(stack *Stack) (uint64, bool) { return memSizeForRange(back0(stack), back2(stack)) }
func memoryExtCodeCopy(stack *Stack) (uint64, bool) {
	return memSizeForRange(back1(stack), back3(stack))
}
func memoryReturndataCopy(stack *Stack) (uint64, bool) {
	return memSizeForRange(back0(stack), back2(stack))
}
func memoryLog(stack *Stack) (uint64, bool) { return memSizeForRange(back0(stack), back1(stack)) }
func memoryMcopy(stack *Stack) (uint64, bool) {
	dst, src, size := back0(stack), back1(stack), back2(stack)
	dstEnd, overflow := memSizeForRange(dst, size)
	if overflow {
		return 0, true
	}
	srcEnd, overflow := memSizeForRange(src, size)
	if overflow {
		return 0, true
	}
	if srcEnd > dstEnd {
		return srcEnd, false
	}
	return dstEnd, false
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func memoryCall(stack *Stack) (uint64, bool) {
	argsEnd, overflow := memSizeForRange(back3(stack), back4(stack))
	if overflow {
		return 0, true
	}
	retEnd, overflow := memSizeForRange(back5(stack), back6(stack))
	if overflow {
		return 0, true
	}
	return maxU64(argsEnd, retEnd), false
}

func memoryDelegateOrStaticCall(stack *Stack) (uint64, bool) {
	argsEnd, overflow := memSizeForRange(back2(stack), back3(stack))
	if overflow {
		return 0, true
	}
	retEnd, overflow := memSizeForRange(back4(stack), back5(stack))
	if overflow {
		return 0, true
	}
	return maxU64(argsEnd, retEnd), false
}

func memoryCreate(stack *Stack) (uint64, bool) { return memSizeForRange(back1(stack), back2(stack)) }

// --- account/storage access gas, flat pre-EIP-2929 or cold/warm from
// Berlin on. These own the opcode's entire access cost (not just a
// surcharge) since the jump table leaves constantGas at 0 for all of
// BALANCE/EXTCODESIZE/EXTCODECOPY/EXTCODEHASH/SLOAD. ---

func accessListAddressCost(evm *EVM, addr types.Address) uint64 {
	if !evm.Rules.IsBerlin {
		if evm.Rules.IsEIP150 {
			return GasExtAccountEIP150
		}
		return GasExtAccountFrontier
	}
	if evm.StateDB.AddressInAccessList(addr) {
		return GasBalanceWarm
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return GasBalanceCold
}

func accessListSlotCost(evm *EVM, addr types.Address, slot types.Hash) uint64 {
	if !evm.Rules.IsBerlin {
		if evm.Rules.IsIstanbul {
			return GasSloadIstanbul
		}
		if evm.Rules.IsEIP150 {
			return GasSloadEIP150
		}
		return GasSloadFrontier
	}
	addrWarm, slotWarm := evm.StateDB.SlotInAccessList(addr, slot)
	if !addrWarm {
		evm.StateDB.AddAddressToAccessList(addr)
	}
	if slotWarm {
		return GasSloadWarm
	}
	evm.StateDB.AddSlotToAccessList(addr, slot)
	return GasSloadCold
}

func gasBalance(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := int256.ToAddress(back0(stack))
	return accessListAddressCost(evm, addr), nil
}

func gasExtCodeSize(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasBalance(evm, contract, stack, mem, memorySize)
}

func gasExtCodeHash(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasBalance(evm, contract, stack, mem, memorySize)
}

func gasExtCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost, _ := gasMemExpansion(evm, contract, stack, mem, memorySize)
	addr := int256.ToAddress(back0(stack))
	return memCost + accessListAddressCost(evm, addr), nil
}

func gasSload(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	key := types.BytesToHash(int256.ToBytes32(back0(stack))[:])
	return accessListSlotCost(evm, contract.Address, key), nil
}

// gasSstore prices SSTORE by comparing the slot's current value with the new
// value: GasSloadWarm when unchanged, GasSstoreSet when a zero slot becomes
// non-zero, GasSstoreReset otherwise (crediting the EIP-3529-aware clear
// refund when the new value is zero), plus an EIP-2929 cold-slot surcharge
// under Berlin+. The slot's original (start-of-transaction) value is not
// consulted, so EIP-2200 net metering across repeated writes is not applied.
func gasSstore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	key := types.BytesToHash(int256.ToBytes32(back0(stack))[:])
	newVal := types.BytesToHash(int256.ToBytes32(back1(stack))[:])
	current := evm.StateDB.GetState(contract.Address, key)

	var cost uint64
	if evm.Rules.IsBerlin {
		_, slotWarm := evm.StateDB.SlotInAccessList(contract.Address, key)
		if !slotWarm {
			evm.StateDB.AddSlotToAccessList(contract.Address, key)
			cost += GasSloadCold
		}
	}

	if current == newVal {
		return cost + GasSloadWarm, nil
	}
	if current == (types.Hash{}) {
		return cost + GasSstoreSet, nil
	}
	if newVal == (types.Hash{}) {
		evm.StateDB.AddRefund(sstoreClearRefund(evm.Rules))
	}
	return cost + GasSstoreReset, nil
}

func sstoreClearRefund(rules ChainRules) uint64 {
	if rules.IsLondon {
		return SstoreRefundEIP3529
	}
	return SstoreRefund
}

// --- Call-family dynamic gas: computes base surcharge, reserves
// evm.callGasTemp via the EIP-150 rule, and leaves the surcharge to be
// charged as this opcode's dynamicGas return value. ---

// callBaseCost is the flat (pre-EIP-2929) CALL-family base cost: Frontier's
// original 40, repriced to 700 by EIP-150. Berlin replaces it entirely with
// cold/warm access accounting, handled by accessListAddressCost.
func callBaseCost(rules ChainRules) uint64 {
	if rules.IsEIP150 {
		return GasExtAccountEIP150
	}
	return GasCallFrontier
}

func gasCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)

	addr := int256.ToAddress(back1(stack))
	value := back2(stack)

	var accessCost uint64
	if evm.Rules.IsBerlin {
		accessCost = accessListAddressCost(evm, addr)
	} else {
		accessCost = callBaseCost(evm.Rules)
	}

	var valueCost uint64
	transfersValue := !int256.IsZero(value)
	if transfersValue {
		valueCost = 9000
		if !evm.StateDB.Exist(addr) {
			valueCost += 25000
		}
	}

	requested := back0(stack)
	childGas, err := callGas(evm.Rules, contract.Gas, memCost+accessCost+valueCost, requested)
	if err != nil {
		return 0, err
	}
	// evm.callGasTemp holds the amount charged to the caller; the CALL
	// handler adds the value-transfer stipend on top of this when handing
	// gas to the callee, since the stipend is not paid for by the caller.
	evm.callGasTemp = childGas
	return memCost + accessCost + valueCost, nil
}

func gasCallCode(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCall(evm, contract, stack, mem, memorySize)
}

func gasDelegateOrStaticCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)
	addr := int256.ToAddress(back1(stack))

	var accessCost uint64
	if evm.Rules.IsBerlin {
		accessCost = accessListAddressCost(evm, addr)
	} else {
		accessCost = callBaseCost(evm.Rules)
	}

	requested := back0(stack)
	childGas, err := callGas(evm.Rules, contract.Gas, memCost+accessCost, requested)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp = childGas
	return memCost + accessCost, nil
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func gasCreate(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasMemExpansion(evm, contract, stack, mem, memorySize)
}

func gasCreate2(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)
	size, _ := stack.Back(2)
	words, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	hashCost := ((words + 31) / 32) * GasKeccak256Word
	return memCost + hashCost, nil
}

func gasSelfdestruct(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if !evm.Rules.IsEIP150 {
		return 0, nil
	}
	beneficiary := int256.ToAddress(back0(stack))
	var cost uint64 = GasSelfdestruct
	if evm.Rules.IsBerlin && !evm.StateDB.AddressInAccessList(beneficiary) {
		evm.StateDB.AddAddressToAccessList(beneficiary)
		cost += GasBalanceCold
	}
	if evm.Rules.IsEIP158 {
		if evm.StateDB.Empty(beneficiary) && !int256.IsZero(evm.StateDB.GetBalance(contract.Address)) {
			cost += 25000
		}
	} else if !evm.StateDB.Exist(beneficiary) {
		cost += 25000
	}
	if !evm.Rules.IsLondon && !evm.StateDB.HasSuicided(contract.Address) {
		evm.StateDB.AddRefund(SelfdestructRefund)
	}
	return cost, nil
}

func gasKeccak256(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)
	size, _ := stack.Back(1)
	words, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return memCost + ((words+31)/32)*GasKeccak256Word, nil
}

func gasCopyWords(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64, sizeBack int) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)
	size, _ := stack.Back(sizeBack)
	words, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return memCost + ((words+31)/32)*GasCopy, nil
}

func gasCalldataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(evm, contract, stack, mem, memorySize, 2)
}
func gasCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(evm, contract, stack, mem, memorySize, 2)
}
func gasReturndataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return gasCopyWords(evm, contract, stack, mem, memorySize, 2)
}
func gasMcopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memCost := memoryGasCost(uint64(mem.Len()), memorySize)
	size, _ := stack.Back(2)
	words, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return memCost + GasMcopyBase + ((words+31)/32)*GasCopy, nil
}

func gasLog(n int) dynamicGasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		memCost := memoryGasCost(uint64(mem.Len()), memorySize)
		size, _ := stack.Back(1)
		dataLen, overflow := int256.Uint64WithOverflow(size)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return memCost + uint64(n)*GasLogTopic + dataLen*GasLogData, nil
	}
}
