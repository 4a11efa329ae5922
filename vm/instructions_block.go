package vm

import "github.com/evmkit/coreevm/int256"

func opBlockhash(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	num, _ := f.Stack.Peek()
	if !num.IsUint64() {
		num.Clear()
		return nil, nil
	}
	n := num.Uint64()
	var upper uint64
	if in.evm.BlockNumber > 256 {
		upper = in.evm.BlockNumber - 257
	}
	if n <= upper || n >= in.evm.BlockNumber {
		num.Clear()
		return nil, nil
	}
	hash := in.evm.GetHash(n)
	num.SetBytes(hash.Bytes())
	return nil, nil
}

func opCoinbase(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, pushAddress(f, in.evm.Coinbase)
}

func opTimestamp(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(in.evm.Time))
}

func opNumber(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(in.evm.BlockNumber))
}

// opDifficulty covers PREVRANDAO/DIFFICULTY: both occupy opcode 0x44. It
// pushes BlockContext.Difficulty whatever the fork rules; the host fills that
// field with the difficulty pre-Merge and the beacon-chain randomness value
// post-Merge.
func opDifficulty(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(in.evm.Difficulty))
}

func opGasLimit(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(int256.FromUint64(in.evm.GasLimit))
}

func opChainID(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(in.evm.ChainID))
}

func opSelfBalance(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	bal := in.evm.StateDB.GetBalance(f.Contract.Address)
	return nil, f.Stack.Push(new(int256.Int).Set(bal))
}

func opBaseFee(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(in.evm.BaseFee))
}

func opBlobHash(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	idx, _ := f.Stack.Peek()
	if !idx.IsUint64() || idx.Uint64() >= uint64(len(in.evm.BlobHashes)) {
		idx.Clear()
		return nil, nil
	}
	h := in.evm.BlobHashes[idx.Uint64()]
	idx.SetBytes(h.Bytes())
	return nil, nil
}

func opBlobBaseFee(pc *uint64, in *Interpreter, f *callFrame) ([]byte, error) {
	return nil, f.Stack.Push(new(int256.Int).Set(in.evm.BlobBaseFee))
}
