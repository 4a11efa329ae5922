package vm

import "github.com/evmkit/coreevm/int256"

func opLt(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	if int256.SignedLt(x, y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	if int256.SignedGt(x, y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIsZero(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.And(x, y)
	return nil, nil
}

func opOr(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Or(x, y)
	return nil, nil
}

func opXor(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Pop()
	y, _ := f.Stack.Peek()
	y.Xor(x, y)
	return nil, nil
}

func opNot(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	x, _ := f.Stack.Peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	th, _ := f.Stack.Pop()
	val, _ := f.Stack.Peek()
	int256.Byte(val, th, val)
	return nil, nil
}

func opSHL(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	shift, _ := f.Stack.Pop()
	val, _ := f.Stack.Peek()
	if shift.GtUint64(255) {
		val.Clear()
	} else {
		val.Lsh(val, uint(shift.Uint64()))
	}
	return nil, nil
}

func opSHR(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	shift, _ := f.Stack.Pop()
	val, _ := f.Stack.Peek()
	if shift.GtUint64(255) {
		val.Clear()
	} else {
		val.Rsh(val, uint(shift.Uint64()))
	}
	return nil, nil
}

func opSAR(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	shift, _ := f.Stack.Pop()
	val, _ := f.Stack.Peek()
	int256.Sar(val, shift, val)
	return nil, nil
}
