package vm

import "github.com/evmkit/coreevm/int256"

func opKeccak256(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Peek()
	off, _ := int256.Uint64WithOverflow(offset)
	sz, _ := int256.Uint64WithOverflow(size)
	data := f.Memory.GetPtr(off, sz)
	hash := in.hasher.Sum256(data)
	size.SetBytes(hash)
	return nil, nil
}
