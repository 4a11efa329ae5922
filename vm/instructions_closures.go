package vm

import (
	"github.com/evmkit/coreevm/int256"
)

func pushCallStatus(f *callFrame, ok bool) error {
	if ok {
		return f.Stack.Push(int256.FromUint64(1))
	}
	return f.Stack.Push(int256.New())
}

// setCallReturnData copies ret into memory at retOffset, writing the smaller
// of retSize and len(ret) bytes (memory past that is left unchanged), and
// records it as the frame's return data, visible to a subsequent
// RETURNDATACOPY/RETURNDATASIZE.
func setCallReturnData(in *Interpreter, f *callFrame, ret []byte, retOffset, retSize *int256.Int, err error) error {
	in.returnData = ret
	if err == nil || err == ErrExecutionReverted {
		off, overflow := int256.Uint64WithOverflow(retOffset)
		if overflow {
			return ErrGasUintOverflow
		}
		sz, overflow := int256.Uint64WithOverflow(retSize)
		if overflow {
			return ErrGasUintOverflow
		}
		if sz > uint64(len(ret)) {
			sz = uint64(len(ret))
		}
		f.Memory.Set(off, sz, ret[:sz])
	}
	return nil
}

func opCall(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	gasWord, _ := f.Stack.Pop()
	addrWord, _ := f.Stack.Pop()
	value, _ := f.Stack.Pop()
	if in.readOnly && !int256.IsZero(value) {
		return nil, ErrWriteProtection
	}
	argsOffset, _ := f.Stack.Pop()
	argsSize, _ := f.Stack.Pop()
	retOffset, _ := f.Stack.Pop()
	retSize, _ := f.Stack.Pop()
	_ = gasWord

	addr := int256.ToAddress(addrWord)
	argOff, overflow := int256.Uint64WithOverflow(argsOffset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	argSz, overflow := int256.Uint64WithOverflow(argsSize)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	args := f.Memory.GetCopy(argOff, argSz)

	gas := in.evm.callGasTemp
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}
	if !int256.IsZero(value) {
		gas += CallStipend
	}

	ret, returnGas, err := in.evm.Call(f.Contract.Address, addr, args, gas, value, in.readOnly)
	f.Contract.Gas += returnGas

	if perr := pushCallStatus(f, err == nil); perr != nil {
		return nil, perr
	}
	if serr := setCallReturnData(in, f, ret, retOffset, retSize, err); serr != nil {
		return nil, serr
	}
	return nil, nil
}

func opCallCode(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	gasWord, _ := f.Stack.Pop()
	addrWord, _ := f.Stack.Pop()
	value, _ := f.Stack.Pop()
	argsOffset, _ := f.Stack.Pop()
	argsSize, _ := f.Stack.Pop()
	retOffset, _ := f.Stack.Pop()
	retSize, _ := f.Stack.Pop()
	_ = gasWord

	addr := int256.ToAddress(addrWord)
	argOff, overflow := int256.Uint64WithOverflow(argsOffset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	argSz, overflow := int256.Uint64WithOverflow(argsSize)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	args := f.Memory.GetCopy(argOff, argSz)

	gas := in.evm.callGasTemp
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}
	if !int256.IsZero(value) {
		gas += CallStipend
	}

	ret, returnGas, err := in.evm.CallCode(f.Contract.Address, addr, args, gas, value)
	f.Contract.Gas += returnGas

	if perr := pushCallStatus(f, err == nil); perr != nil {
		return nil, perr
	}
	if serr := setCallReturnData(in, f, ret, retOffset, retSize, err); serr != nil {
		return nil, serr
	}
	return nil, nil
}

func opDelegateCall(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	gasWord, _ := f.Stack.Pop()
	addrWord, _ := f.Stack.Pop()
	argsOffset, _ := f.Stack.Pop()
	argsSize, _ := f.Stack.Pop()
	retOffset, _ := f.Stack.Pop()
	retSize, _ := f.Stack.Pop()
	_ = gasWord

	addr := int256.ToAddress(addrWord)
	argOff, overflow := int256.Uint64WithOverflow(argsOffset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	argSz, overflow := int256.Uint64WithOverflow(argsSize)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	args := f.Memory.GetCopy(argOff, argSz)

	gas := in.evm.callGasTemp
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	ret, returnGas, err := in.evm.DelegateCall(f.Contract.CallerAddress, addr, args, gas)
	f.Contract.Gas += returnGas

	if perr := pushCallStatus(f, err == nil); perr != nil {
		return nil, perr
	}
	if serr := setCallReturnData(in, f, ret, retOffset, retSize, err); serr != nil {
		return nil, serr
	}
	return nil, nil
}

func opStaticCall(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	gasWord, _ := f.Stack.Pop()
	addrWord, _ := f.Stack.Pop()
	argsOffset, _ := f.Stack.Pop()
	argsSize, _ := f.Stack.Pop()
	retOffset, _ := f.Stack.Pop()
	retSize, _ := f.Stack.Pop()
	_ = gasWord

	addr := int256.ToAddress(addrWord)
	argOff, overflow := int256.Uint64WithOverflow(argsOffset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	argSz, overflow := int256.Uint64WithOverflow(argsSize)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	args := f.Memory.GetCopy(argOff, argSz)

	gas := in.evm.callGasTemp
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	ret, returnGas, err := in.evm.StaticCall(f.Contract.Address, addr, args, gas)
	f.Contract.Gas += returnGas

	if perr := pushCallStatus(f, err == nil); perr != nil {
		return nil, perr
	}
	if serr := setCallReturnData(in, f, ret, retOffset, retSize, err); serr != nil {
		return nil, serr
	}
	return nil, nil
}

func opCreate(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	value, _ := f.Stack.Pop()
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()

	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	sz, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	initCode := f.Memory.GetCopy(off, sz)

	gas := f.Contract.Gas - f.Contract.Gas/callGasFraction
	if !in.evm.Rules.IsEIP150 {
		gas = f.Contract.Gas
	}
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	ret, addr, returnGas, err := in.evm.Create(f.Contract.Address, initCode, gas, value)
	f.Contract.Gas += returnGas

	if err != nil && err != ErrExecutionReverted {
		if perr := f.Stack.Push(int256.New()); perr != nil {
			return nil, perr
		}
	} else {
		if perr := pushAddress(f, addr); perr != nil {
			return nil, perr
		}
	}
	in.returnData = nil
	if err == ErrExecutionReverted {
		in.returnData = ret
	}
	return nil, nil
}

func opCreate2(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	value, _ := f.Stack.Pop()
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()
	salt, _ := f.Stack.Pop()

	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	sz, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	initCode := f.Memory.GetCopy(off, sz)

	gas := f.Contract.Gas - f.Contract.Gas/callGasFraction
	if !f.Contract.UseGas(gas) {
		return nil, ErrOutOfGas
	}

	ret, addr, returnGas, err := in.evm.Create2(f.Contract.Address, initCode, gas, value, salt)
	f.Contract.Gas += returnGas

	if err != nil && err != ErrExecutionReverted {
		if perr := f.Stack.Push(int256.New()); perr != nil {
			return nil, perr
		}
	} else {
		if perr := pushAddress(f, addr); perr != nil {
			return nil, perr
		}
	}
	in.returnData = nil
	if err == ErrExecutionReverted {
		in.returnData = ret
	}
	return nil, nil
}

func opReturn(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	sz, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	return f.Memory.GetCopy(off, sz), nil
}

func opRevert(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	offset, _ := f.Stack.Pop()
	size, _ := f.Stack.Pop()
	off, overflow := int256.Uint64WithOverflow(offset)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	sz, overflow := int256.Uint64WithOverflow(size)
	if overflow {
		return nil, ErrGasUintOverflow
	}
	ret := f.Memory.GetCopy(off, sz)
	in.returnData = ret
	return ret, ErrExecutionReverted
}

func opSelfdestruct(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	beneficiary, _ := f.Stack.Pop()
	addr := int256.ToAddress(beneficiary)
	balance := in.evm.StateDB.GetBalance(f.Contract.Address)
	in.evm.StateDB.AddBalance(addr, balance)
	in.evm.StateDB.Suicide(f.Contract.Address)
	return nil, nil
}
