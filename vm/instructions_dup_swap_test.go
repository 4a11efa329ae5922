package vm

import (
	"testing"

	"github.com/evmkit/coreevm/int256"
)

func TestMakeDup(t *testing.T) {
	f := newTestFrame(nil)
	f.Stack.Push(int256.FromUint64(10))
	f.Stack.Push(int256.FromUint64(20))

	dup2 := makeDup(2)
	var pc uint64
	if _, err := dup2(&pc, nil, f); err != nil {
		t.Fatalf("dup2: %v", err)
	}
	if f.Stack.Len() != 3 {
		t.Fatalf("len = %d, want 3", f.Stack.Len())
	}
	top, _ := f.Stack.Peek()
	if got, _ := int256.Uint64WithOverflow(top); got != 10 {
		t.Fatalf("dup2 top = %d, want 10", got)
	}
}

func TestMakeSwap(t *testing.T) {
	f := newTestFrame(nil)
	f.Stack.Push(int256.FromUint64(1))
	f.Stack.Push(int256.FromUint64(2))
	f.Stack.Push(int256.FromUint64(3))

	swap2 := makeSwap(2)
	var pc uint64
	if _, err := swap2(&pc, nil, f); err != nil {
		t.Fatalf("swap2: %v", err)
	}
	top, _ := f.Stack.Peek()
	if got, _ := int256.Uint64WithOverflow(top); got != 1 {
		t.Fatalf("after swap2, top = %d, want 1", got)
	}
	bottom, _ := f.Stack.Back(2)
	if got, _ := int256.Uint64WithOverflow(bottom); got != 3 {
		t.Fatalf("after swap2, back(2) = %d, want 3", got)
	}
}
