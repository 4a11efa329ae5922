package vm

import "github.com/evmkit/coreevm/int256"

// makePush returns a PUSH1..PUSH32 handler that reads size immediate bytes
// following the opcode, zero-padded if they run past the end of code, and
// advances pc past them.
func makePush(size int) executionFunc {
	return func(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
		codeLen := uint64(len(f.Contract.Code))
		start := *pc + 1
		var buf [32]byte
		if start < codeLen {
			end := start + uint64(size)
			if end > codeLen {
				end = codeLen
			}
			copy(buf[32-size:32-size+int(end-start)], f.Contract.Code[start:end])
		}
		if err := f.Stack.Push(int256.FromBytes(buf[32-size:])); err != nil {
			return nil, err
		}
		*pc += uint64(size)
		return nil, nil
	}
}
