package vm

import (
	"testing"

	"github.com/evmkit/coreevm/crypto"
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func TestMstoreThenMload(t *testing.T) {
	f := newTestFrame(nil)
	f.Memory.Resize(32)

	f.Stack.Push(int256.FromUint64(0xDEAD))
	f.Stack.Push(int256.FromUint64(0)) // offset (top)
	var pc uint64
	if _, err := opMstore(&pc, nil, f); err != nil {
		t.Fatalf("mstore: %v", err)
	}

	f.Stack.Push(int256.FromUint64(0))
	if _, err := opMload(&pc, nil, f); err != nil {
		t.Fatalf("mload: %v", err)
	}
	v, _ := f.Stack.Pop()
	if got, _ := int256.Uint64WithOverflow(v); got != 0xDEAD {
		t.Fatalf("mload got %#x, want 0xDEAD", got)
	}
}

func TestSstoreWriteProtected(t *testing.T) {
	evm, state := newTestEVM()
	callee := types.BytesToAddress([]byte{0x05})
	state.CreateAccount(callee)
	state.SetCode(callee, []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x00,
		byte(SSTORE),
		byte(STOP),
	})

	_, _, err := evm.StaticCall(types.BytesToAddress([]byte{0x01}), callee, nil, 100_000)
	if err != ErrWriteProtection {
		t.Fatalf("expected ErrWriteProtection, got %v", err)
	}
}

func TestTstoreWriteProtected(t *testing.T) {
	evm, state := newTestEVM()
	evm.Rules.IsCancun = true // TSTORE only exists from Cancun on
	evm.table = tableForRules(evm.Rules)
	callee := types.BytesToAddress([]byte{0x06})
	state.CreateAccount(callee)
	state.SetCode(callee, []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x00,
		byte(TSTORE),
		byte(STOP),
	})

	_, _, err := evm.StaticCall(types.BytesToAddress([]byte{0x01}), callee, nil, 100_000)
	if err != ErrWriteProtection {
		t.Fatalf("expected ErrWriteProtection, got %v", err)
	}
}

func TestSloadRoundTrip(t *testing.T) {
	evm, state := newTestEVM()
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	f.Stack.Push(int256.FromUint64(9)) // value
	f.Stack.Push(int256.FromUint64(3)) // key (top)
	var pc uint64
	if _, err := opSstore(&pc, in, f); err != nil {
		t.Fatalf("sstore: %v", err)
	}
	_ = state

	f.Stack.Push(int256.FromUint64(3))
	if _, err := opSload(&pc, in, f); err != nil {
		t.Fatalf("sload: %v", err)
	}
	v, _ := f.Stack.Pop()
	if got, _ := int256.Uint64WithOverflow(v); got != 9 {
		t.Fatalf("sload got %d, want 9", got)
	}
}

func TestOpJumpValidatesDestination(t *testing.T) {
	code := []byte{byte(PUSH1), 0x03, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	evm, _ := newTestEVM()
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(code)
	f.Contract.Code = code
	f.Contract.CodeHash = crypto.Keccak256Hash(code)

	f.Stack.Push(int256.FromUint64(3))
	var pc uint64
	if _, err := opJump(&pc, in, f); err != nil {
		t.Fatalf("jump to valid dest: %v", err)
	}
	if pc != 3 {
		t.Fatalf("pc = %d, want 3", pc)
	}
}

func TestOpJumpRejectsNonJumpdest(t *testing.T) {
	code := []byte{byte(PUSH1), 0x02, byte(JUMP), byte(STOP)}
	evm, _ := newTestEVM()
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(code)
	f.Contract.Code = code
	f.Contract.CodeHash = crypto.Keccak256Hash(code)

	f.Stack.Push(int256.FromUint64(2)) // STOP, not JUMPDEST
	var pc uint64
	if _, err := opJump(&pc, in, f); err != ErrInvalidJump {
		t.Fatalf("expected ErrInvalidJump, got %v", err)
	}
}

func TestOpJumpiSkipsOnZeroCondition(t *testing.T) {
	evm, _ := newTestEVM()
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	f.Stack.Push(int256.FromUint64(99)) // dest (unreachable, never validated)
	f.Stack.Push(int256.FromUint64(0))  // cond = false (top)
	pc := uint64(5)
	if _, err := opJumpi(&pc, in, f); err != nil {
		t.Fatalf("jumpi: %v", err)
	}
	if pc != 6 {
		t.Fatalf("pc = %d, want 6 (fallthrough)", pc)
	}
}
