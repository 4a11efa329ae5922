package vm

// makeDup returns a DUP1..DUP16 handler that duplicates the n-th item from
// the top of the stack onto the top.
func makeDup(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
		return nil, f.Stack.Dup(n)
	}
}

// makeSwap returns a SWAP1..SWAP16 handler that exchanges the top of the
// stack with the item n positions below it.
func makeSwap(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
		return nil, f.Stack.Swap(n)
	}
}
