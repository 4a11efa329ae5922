package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

func pushAddress(f *callFrame, addr types.Address) error {
	v := int256.FromBytes(addr.Bytes())
	return f.Stack.Push(v)
}

func opAddress(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, pushAddress(f, f.Contract.Address)
}

func opBalance(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	slot, _ := f.Stack.Peek()
	addr := int256.ToAddress(slot)
	bal := in.evm.StateDB.GetBalance(addr)
	slot.Set(bal)
	return nil, nil
}

func opOrigin(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, pushAddress(f, in.evm.Origin)
}

func opCaller(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, pushAddress(f, f.Contract.CallerAddress)
}

func opCallValue(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(f.Contract.Value))
}

func opCalldataLoad(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Peek()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		offset.Clear()
		return nil, nil
	}
	var buf [32]byte
	input := f.Contract.Input
	if off < uint64(len(input)) {
		end := off + 32
		if end > uint64(len(input)) {
			end = uint64(len(input))
		}
		copy(buf[:end-off], input[off:end])
	}
	offset.SetBytes(buf[:])
	return nil, nil
}

func opCalldataSize(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(uint64(len(f.Contract.Input))))
}

func opCalldataCopy(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	memOffset, _ := f.Stack.Pop()
	dataOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()
	return nil, copyToMemory(f, memOffset, dataOffset, length, f.Contract.Input)
}

func opCodeSize(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(uint64(len(f.Contract.Code))))
}

func opCodeCopy(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	memOffset, _ := f.Stack.Pop()
	codeOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()
	return nil, copyToMemory(f, memOffset, codeOffset, length, f.Contract.Code)
}

func opGasPrice(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(in.evm.GasPrice))
}

func opExtcodesize(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	slot, _ := f.Stack.Peek()
	addr := int256.ToAddress(slot)
	slot.SetUint64(uint64(in.evm.StateDB.GetCodeSize(addr)))
	return nil, nil
}

func opExtcodecopy(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	addrWord, _ := f.Stack.Pop()
	memOffset, _ := f.Stack.Pop()
	codeOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()
	addr := int256.ToAddress(addrWord)
	code := in.evm.StateDB.GetCode(addr)
	return nil, copyToMemory(f, memOffset, codeOffset, length, code)
}

func opExtcodehash(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	slot, _ := f.Stack.Peek()
	addr := int256.ToAddress(slot)
	if !in.evm.StateDB.Exist(addr) || in.evm.StateDB.Empty(addr) {
		slot.Clear()
		return nil, nil
	}
	hash := in.evm.StateDB.GetCodeHash(addr)
	slot.SetBytes(hash.Bytes())
	return nil, nil
}

func opReturndataSize(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(uint64(len(in.returnData))))
}

func opReturndataCopy(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	memOffset, _ := f.Stack.Pop()
	dataOffset, _ := f.Stack.Pop()
	length, _ := f.Stack.Pop()

	off, overflow1 := int256.Uint64WithOverflow(dataOffset)
	sz, overflow2 := int256.Uint64WithOverflow(length)
	if overflow1 || overflow2 || off+sz > uint64(len(in.returnData)) || off+sz < off {
		return nil, ErrReturnDataOutOfBounds
	}
	return nil, copyToMemory(f, memOffset, dataOffset, length, in.returnData)
}

// copyToMemory writes length bytes of src starting at srcOffset (which may
// run past the end of src, zero-padded) into memory at memOffset.
func copyToMemory(f *callFrame, memOffset, srcOffset, length *int256.Int, src []byte) error {
	sz, overflow := int256.Uint64WithOverflow(length)
	if overflow {
		return ErrGasUintOverflow
	}
	if sz == 0 {
		return nil
	}
	mOff, overflow := int256.Uint64WithOverflow(memOffset)
	if overflow {
		return ErrGasUintOverflow
	}
	sOff, overflow := int256.Uint64WithOverflow(srcOffset)
	if overflow {
		sOff = uint64(len(src))
	}
	data := make([]byte, sz)
	if sOff < uint64(len(src)) {
		end := sOff + sz
		if end > uint64(len(src)) {
			end = uint64(len(src))
		}
		copy(data, src[sOff:end])
	}
	f.Memory.Set(mOff, sz, data)
	return nil
}
