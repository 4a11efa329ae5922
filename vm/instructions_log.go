package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// makeLog returns a LOG0..LOG4 handler emitting n indexed topics.
func makeLog(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
		mStart, _ := f.Stack.Pop()
		mSize, _ := f.Stack.Pop()

		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			t, _ := f.Stack.Pop()
			topics[i] = types.BytesToHash(t.Bytes())
		}

		off, overflow := int256.Uint64WithOverflow(mStart)
		if overflow {
			return nil, ErrGasUintOverflow
		}
		sz, overflow := int256.Uint64WithOverflow(mSize)
		if overflow {
			return nil, ErrGasUintOverflow
		}
		data := f.Memory.GetCopy(off, sz)

		in.evm.StateDB.AddLog(&types.Log{
			Address: f.Contract.Address,
			Topics:  topics,
			Data:    data,
		})
		return nil, nil
	}
}
