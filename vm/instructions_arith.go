package vm

import (
	"github.com/evmkit/coreevm/int256"
)

func opAdd(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Add(x, y)
	return nil, nil
}

func opMul(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Mul(x, y)
	return nil, nil
}

func opSub(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Sub(x, y)
	return nil, nil
}

func opDiv(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Div(x, y)
	return nil, nil
}

func opSdiv(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.SDiv(x, y)
	return nil, nil
}

func opMod(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Mod(x, y)
	return nil, nil
}

func opSmod(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.SMod(x, y)
	return nil, nil
}

func opAddmod(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Pop()
	z, _ := f.Stack.Peek()
	int256.AddMod(z, x, y, z)
	return nil, nil
}

func opMulmod(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Pop()
	z, _ := f.Stack.Peek()
	int256.MulMod(z, x, y, z)
	return nil, nil
}

func opExp(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	base, _ := f.Stack.Pop()
	exponent, _ := f.Stack.Peek()
	exponent.Exp(base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	back, _ := f.Stack.Pop()
	num, _ := f.Stack.Peek()
	int256.SignExtend(num, back, num)
	return nil, nil
}
