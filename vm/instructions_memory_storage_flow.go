package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func opPop(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	_, err := f.Stack.Pop()
	return nil, err
}

func opMload(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Peek()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	offset.SetBytes(f.Memory.GetPtr(off, 32))
	return nil, nil
}

func opMstore(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	f.Memory.Set32(off, val)
	return nil, nil
}

func opMstore8(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	f.Memory.Set(off, 1, []byte{byte(val.Uint64())})
	return nil, nil
}

func opSload(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	loc, _ := f.Stack.Peek()
	key := types.BytesToHash(loc.Bytes())
	val := in.evm.StateDB.GetState(f.Contract.Address, key)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	loc, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	key := types.BytesToHash(loc.Bytes())
	value := types.BytesToHash(val.Bytes())
	in.evm.StateDB.SetState(f.Contract.Address, key, value)
	return nil, nil
}

func opTload(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	loc, _ := f.Stack.Peek()
	key := types.BytesToHash(loc.Bytes())
	val := in.evm.StateDB.GetTransientState(f.Contract.Address, key)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opTstore(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	loc, _ := f.Stack.Pop()
	val, _ := f.Stack.Pop()
	key := types.BytesToHash(loc.Bytes())
	value := types.BytesToHash(val.Bytes())
	in.evm.StateDB.SetTransientState(f.Contract.Address, key, value)
	return nil, nil
}

func opMcopy(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	dst, _ := f.Stack.Pop()
	src, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()
	sz, overflow := int256.Uint64WithOverflow(length)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	if sz == 0 {
		return nil, nil
	}
	d, overflow := int256.Uint64WithOverflow(dst)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	s, overflow := int256.Uint64WithOverflow(src)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	f.Memory.Set(d, sz, f.Memory.GetCopy(s, sz))
	return nil, nil
}

func opJump(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	dest, _ := f.Stack.Pop()
	if !f.Contract.ValidJumpdest(in.evm.jdCache, dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpi(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	dest, _ := f.Stack.Pop()
	cond, _ := f.Stack.Pop()
	if cond.IsZero() {
		*pc++
		return nil, nil
	}
	if !f.Contract.ValidJumpdest(in.evm.jdCache, dest) {
		return nil, ErrInvalidJump
	}
	*pc = dest.Uint64()
	return nil, nil
}

func opJumpdest(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, nil
}

func opPc(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(*pc))
}

func opMsize(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(uint64(f.Memory.Len())))
}

func opGas(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(f.Contract.Gas))
}

func opPush0(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.New())
}

func opStop(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, nil
}

func opInvalid(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, ErrInvalidOpCode
}

func opUndefined(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, ErrInvalidOpCode
}
