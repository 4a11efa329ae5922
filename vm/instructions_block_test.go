package vm

import (
	"testing"

	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func TestOpBlockhashWindowBounds(t *testing.T) {
	evm, _ := newTestEVM()
	evm.BlockNumber = 300
	evm.GetHash = func(n uint64) types.Hash { return types.BytesToHash([]byte{byte(n)}) }
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	// Within the 256-block window: resolves via GetHash.
	f.Stack.Push(int256.FromUint64(299))
	var pc uint64
	if _, err := opBlockhash(&pc, in, f); err != nil {
		t.Fatalf("blockhash: %v", err)
	}
	v, _ := f.Stack.Pop()
	if int256.IsZero(v) {
		t.Fatalf("expected non-zero hash for recent block")
	}

	// At or past the current block: zero.
	f.Stack.Push(int256.FromUint64(300))
	if _, err := opBlockhash(&pc, in, f); err != nil {
		t.Fatalf("blockhash: %v", err)
	}
	v, _ = f.Stack.Pop()
	if !int256.IsZero(v) {
		t.Fatalf("blockhash of current block should be zero")
	}

	// More than 256 blocks back: zero.
	f.Stack.Push(int256.FromUint64(10))
	if _, err := opBlockhash(&pc, in, f); err != nil {
		t.Fatalf("blockhash: %v", err)
	}
	v, _ = f.Stack.Pop()
	if !int256.IsZero(v) {
		t.Fatalf("blockhash older than 256 blocks should be zero")
	}
}

func TestOpChainIDPushesConfiguredValue(t *testing.T) {
	evm, _ := newTestEVM()
	evm.ChainID = int256.FromUint64(1337)
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	var pc uint64
	if _, err := opChainID(&pc, in, f); err != nil {
		t.Fatalf("chainid: %v", err)
	}
	v, _ := f.Stack.Pop()
	if got, _ := int256.Uint64WithOverflow(v); got != 1337 {
		t.Fatalf("chainid = %d, want 1337", got)
	}
}

func TestOpBlobHashOutOfRangeIsZero(t *testing.T) {
	evm, _ := newTestEVM()
	evm.BlobHashes = []types.Hash{types.BytesToHash([]byte{0x42})}
	in := NewInterpreter(evm, evm.table)
	f := newTestFrame(nil)

	f.Stack.Push(int256.FromUint64(5))
	var pc uint64
	if _, err := opBlobHash(&pc, in, f); err != nil {
		t.Fatalf("blobhash: %v", err)
	}
	v, _ := f.Stack.Pop()
	if !int256.IsZero(v) {
		t.Fatalf("out-of-range blobhash should be zero")
	}
}
