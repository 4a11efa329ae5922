package vm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/evmkit/coreevm/int256"
)

// stackLimit is the maximum depth of the EVM operand stack.
const stackLimit = 1024

// Stack errors.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is the EVM operand stack: up to 1024 256-bit words. It is backed by
// a fixed array rather than a growable slice so that Stack instances can be
// pooled and reused across call frames without per-frame allocation.
type Stack struct {
	data [stackLimit]*int256.Int
	top  int
}

// stackPool backs NewStack/ReturnStack; pooling avoids allocating a fresh
// 1024-word array (and its contents) on every CALL/CREATE frame.
var stackPool = sync.Pool{
	New: func() interface{} { return &Stack{} },
}

// NewStack retrieves a clean Stack from the shared pool, allocating a new
// one only when the pool is empty.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack clears s and returns it to the shared pool for reuse by a
// later call frame.
func ReturnStack(s *Stack) {
	s.reset()
	stackPool.Put(s)
}

func (st *Stack) reset() {
	for i := 0; i < st.top; i++ {
		st.data[i] = nil
	}
	st.top = 0
}

// Len returns the number of items currently on the stack.
func (st *Stack) Len() int { return st.top }

// Push pushes val onto the stack. val is retained by reference: callers must
// not mutate it afterwards.
func (st *Stack) Push(val *int256.Int) error {
	if st.top >= stackLimit {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, st.top)
	}
	st.data[st.top] = val
	st.top++
	return nil
}

// Pop removes and returns the top element.
func (st *Stack) Pop() (*int256.Int, error) {
	if st.top == 0 {
		return nil, ErrStackUnderflow
	}
	st.top--
	v := st.data[st.top]
	st.data[st.top] = nil
	return v, nil
}

// Peek returns the top element without removing it.
func (st *Stack) Peek() (*int256.Int, error) {
	if st.top == 0 {
		return nil, ErrStackUnderflow
	}
	return st.data[st.top-1], nil
}

// Back returns the n-th element from the top without removing it (0 = top).
// Used by instructions that need to read below the top of the stack, such
// as the second operand of a binary op after peeking the first.
func (st *Stack) Back(n int) (*int256.Int, error) {
	if n < 0 || st.top-1-n < 0 {
		return nil, fmt.Errorf("%w: back(%d) with depth %d", ErrStackUnderflow, n, st.top)
	}
	return st.data[st.top-1-n], nil
}

// Swap exchanges the top element with the n-th element below it (n=1..16,
// matching SWAP1..SWAP16).
func (st *Stack) Swap(n int) error {
	if st.top < n+1 {
		return fmt.Errorf("%w: swap%d needs %d items, have %d", ErrStackUnderflow, n, n+1, st.top)
	}
	top := st.top - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
	return nil
}

// Dup duplicates the n-th element from the top (n=1..16, matching
// DUP1..DUP16) and pushes the copy.
func (st *Stack) Dup(n int) error {
	if st.top < n {
		return fmt.Errorf("%w: dup%d needs %d items, have %d", ErrStackUnderflow, n, n, st.top)
	}
	if st.top >= stackLimit {
		return fmt.Errorf("%w: dup%d at depth %d", ErrStackOverflow, n, st.top)
	}
	src := st.data[st.top-n]
	st.data[st.top] = new(int256.Int).Set(src)
	st.top++
	return nil
}

// Data returns the underlying contents, bottom to top. Callers must treat
// the returned slice as read-only; it aliases the stack's internal storage.
func (st *Stack) Data() []*int256.Int {
	return st.data[:st.top]
}
