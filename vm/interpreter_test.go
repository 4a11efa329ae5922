package vm

import (
	"testing"

	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func deployAndCall(t *testing.T, evm *EVM, state *memStateDB, code []byte, gas uint64) ([]byte, uint64, error) {
	t.Helper()
	caller := types.BytesToAddress([]byte{0x01})
	target := types.BytesToAddress([]byte{0x02})
	state.CreateAccount(caller)
	state.AddBalance(caller, int256.FromUint64(1_000_000))
	state.CreateAccount(target)
	state.SetCode(target, code)
	return evm.Call(caller, target, nil, gas, int256.New(), false)
}

func TestInterpreterAddsTwoOperands(t *testing.T) {
	evm, state := newTestEVM()
	code := []byte{
		byte(PUSH1), 0x02,
		byte(PUSH1), 0x03,
		byte(ADD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	ret, _, err := deployAndCall(t, evm, state, code, 100_000)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	v := int256.FromBytes(ret)
	if got, _ := int256.Uint64WithOverflow(v); got != 5 {
		t.Fatalf("result = %d, want 5", got)
	}
}

func TestInterpreterDivByZeroYieldsZero(t *testing.T) {
	evm, state := newTestEVM()
	code := []byte{
		byte(PUSH1), 0x00, // divisor
		byte(PUSH1), 0x05, // dividend
		byte(DIV),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	ret, _, err := deployAndCall(t, evm, state, code, 100_000)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	v := int256.FromBytes(ret)
	if !int256.IsZero(v) {
		t.Fatalf("div by zero should yield 0, got %v", v)
	}
}

func TestInterpreterInvalidJumpFails(t *testing.T) {
	evm, state := newTestEVM()
	code := []byte{
		byte(PUSH1), 0xFF, // not a valid jumpdest
		byte(JUMP),
	}
	_, _, err := deployAndCall(t, evm, state, code, 100_000)
	if err == nil {
		t.Fatalf("expected invalid-jump failure, got success")
	}
}

func TestInterpreterValidConditionalJumpTaken(t *testing.T) {
	evm, state := newTestEVM()
	// PUSH1 1; PUSH1 <dest>; JUMPI; INVALID; JUMPDEST; PUSH1 0x2a; PUSH1 0; MSTORE; PUSH1 32; PUSH1 0; RETURN
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x06, // dest = index of JUMPDEST below
		byte(JUMPI),
		byte(INVALID),
		byte(JUMPDEST),
		byte(PUSH1), 0x2a,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	ret, _, err := deployAndCall(t, evm, state, code, 100_000)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	v := int256.FromBytes(ret)
	if got, _ := int256.Uint64WithOverflow(v); got != 0x2a {
		t.Fatalf("result = %#x, want 0x2a", got)
	}
}

func TestStaticCallRejectsStorageWrite(t *testing.T) {
	evm, state := newTestEVM()
	callee := types.BytesToAddress([]byte{0x03})
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

func TestRevertPreservesLeftoverGas(t *testing.T) {
	evm, state := newTestEVM()
	code := []byte{
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(REVERT),
	}
	gas := uint64(100_000)
	_, leftOver, err := deployAndCall(t, evm, state, code, gas)
	if err != ErrExecutionReverted {
		t.Fatalf("expected ErrExecutionReverted, got %v", err)
	}
	if leftOver == 0 || leftOver >= gas {
		t.Fatalf("leftover gas = %d, want a non-zero amount less than %d", leftOver, gas)
	}
}
