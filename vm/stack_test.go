package vm

import (
	"errors"
	"testing"

	"github.com/evmkit/coreevm/int256"
)

func TestStackPushPop(t *testing.T) {
	st := NewStack()
	defer ReturnStack(st)

	if err := st.Push(int256.FromUint64(1)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := st.Push(int256.FromUint64(2)); err != nil {
		t.Fatalf("push: %v", err)
	}
	v, err := st.Pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if got, _ := int256.Uint64WithOverflow(v); got != 2 {
		t.Fatalf("pop got %d, want 2", got)
	}
	if st.Len() != 1 {
		t.Fatalf("len = %d, want 1", st.Len())
	}
}

func TestStackUnderflow(t *testing.T) {
	st := NewStack()
	defer ReturnStack(st)

	if _, err := st.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}
	if _, err := st.Peek(); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}
}

func TestStackOverflow(t *testing.T) {
	st := NewStack()
	defer ReturnStack(st)

	for i := 0; i < stackLimit; i++ {
		if err := st.Push(int256.FromUint64(uint64(i))); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := st.Push(int256.FromUint64(0)); !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
}

func TestStackSwapAndDup(t *testing.T) {
	st := NewStack()
	defer ReturnStack(st)

	st.Push(int256.FromUint64(1))
	st.Push(int256.FromUint64(2))
	st.Push(int256.FromUint64(3))

	if err := st.Swap(2); err != nil {
		t.Fatalf("swap: %v", err)
	}
	top, _ := st.Peek()
	if got, _ := int256.Uint64WithOverflow(top); got != 1 {
		t.Fatalf("after swap2, top = %d, want 1", got)
	}

	if err := st.Dup(1); err != nil {
		t.Fatalf("dup: %v", err)
	}
	if st.Len() != 4 {
		t.Fatalf("len after dup = %d, want 4", st.Len())
	}
	top, _ = st.Peek()
	if got, _ := int256.Uint64WithOverflow(top); got != 1 {
		t.Fatalf("after dup1, top = %d, want 1", got)
	}
}

func TestStackBack(t *testing.T) {
	st := NewStack()
	defer ReturnStack(st)

	st.Push(int256.FromUint64(10))
	st.Push(int256.FromUint64(20))

	v, err := st.Back(1)
	if err != nil {
		t.Fatalf("back(1): %v", err)
	}
	if got, _ := int256.Uint64WithOverflow(v); got != 10 {
		t.Fatalf("back(1) = %d, want 10", got)
	}
}

func TestReturnStackResetsContents(t *testing.T) {
	st := NewStack()
	st.Push(int256.FromUint64(99))
	ReturnStack(st)

	st2 := NewStack()
	defer ReturnStack(st2)
	if st2.Len() != 0 {
		t.Fatalf("pooled stack should be reset to empty, got len=%d", st2.Len())
	}
}
