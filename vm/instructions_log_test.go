package vm

import (
	"testing"

	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func TestMakeLogEmitsTopicsAndData(t *testing.T) {
	evm, state := newTestEVM()
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	data := []byte("hello")
	f.Memory.Resize(32)
	f.Memory.Set(0, uint64(len(data)), data)

	f.Stack.Push(int256.FromUint64(0xCAFE))            // topic0
	f.Stack.Push(int256.FromUint64(uint64(len(data)))) // size
	f.Stack.Push(int256.FromUint64(0))                 // offset (top)

	log1 := makeLog(1)
	var pc uint64
	if _, err := log1(&pc, in, f); err != nil {
		t.Fatalf("log1: %v", err)
	}
	if len(state.logs) != 1 {
		t.Fatalf("logs recorded = %d, want 1", len(state.logs))
	}
	got := state.logs[0]
	if len(got.Topics) != 1 {
		t.Fatalf("topics = %d, want 1", len(got.Topics))
	}
	if string(got.Data) != "hello" {
		t.Fatalf("data = %q, want %q", got.Data, "hello")
	}
}

func TestMakeLogRejectedInReadOnlyFrame(t *testing.T) {
	evm, state := newTestEVM()
	callee := types.BytesToAddress([]byte{0x04})
	state.CreateAccount(callee)
	state.SetCode(callee, []byte{
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(LOG0),
		byte(STOP),
	})

	_, _, err := evm.StaticCall(types.BytesToAddress([]byte{0x01}), callee, nil, 100_000)
	if err != ErrWriteProtection {
		t.Fatalf("expected ErrWriteProtection, got %v", err)
	}
}
