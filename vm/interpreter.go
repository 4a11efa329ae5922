package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/evmkit/coreevm/crypto"
)

// callFrame bundles the three pieces of a running call frame handlers need
// direct, disjoint access to. Passing it as a single owning structure (per
// opcode handlers taking *callFrame) avoids a ScopeContext with stack,
// memory, and contract fields simultaneously aliased by separate borrows.
type callFrame struct {
	Stack    *Stack
	Memory   *Memory
	Contract *Contract
}

// Interpreter executes one EVM call frame's bytecode against an EVM
// context. It is reentrant: a CALL/CREATE opcode handler constructs a new
// Interpreter (sharing the EVM) and calls Run recursively.
type Interpreter struct {
	evm    *EVM
	table  *JumpTable
	hasher *crypto.KeccakState

	readOnly   bool
	returnData []byte
}

// NewInterpreter returns an Interpreter bound to evm and dispatching
// through table.
func NewInterpreter(evm *EVM, table *JumpTable) *Interpreter {
	return &Interpreter{
		evm:    evm,
		table:  table,
		hasher: crypto.NewKeccakState(),
	}
}

// Run executes contract's code with the given input. readOnly, once true
// for this frame (either passed in or already set from an enclosing
// STATICCALL), stays true for the remainder of the frame: state-mutating
// opcodes fail with ErrWriteProtection.
//
// Run increments evm.depth on entry and decrements it on every exit path,
// including the error paths below, so depth_out == depth_in regardless of
// outcome.
func (in *Interpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	if in.evm.depth > maxCallDepth {
		return nil, ErrDepthLimit
	}
	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	in.returnData = nil
	contract.Input = input

	if len(contract.Code) == 0 {
		return nil, nil
	}

	stack := NewStack()
	mem := NewMemory()
	defer ReturnStack(stack)

	frame := &callFrame{Stack: stack, Memory: mem, Contract: contract}

	var (
		pc            uint64
		op            OpCode
		memorySize    uint64
		cost          uint64
		dynamicCost   uint64
		tracer        = in.evm.Config.Tracer
	)

	for {
		if in.evm.abort {
			return nil, nil
		}

		op = contract.GetOp(pc)
		opDef := in.table[op]
		if opDef == nil || opDef.execute == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOpCode, op)
		}

		if sLen := stack.Len(); sLen < opDef.minStack {
			return nil, fmt.Errorf("%w: have %d, want %d", ErrStackUnderflowOp, sLen, opDef.minStack)
		} else if sLen > opDef.maxStack {
			return nil, fmt.Errorf("%w: have %d, want at most %d", ErrStackOverflowOp, sLen, opDef.maxStack)
		}

		if in.readOnly && opDef.writes {
			return nil, ErrWriteProtection
		}

		if in.evm.Config.TraceLogging {
			in.evm.Config.Logger.WithFields(logrus.Fields{
				"depth": in.evm.depth, "pc": pc, "op": op, "gas": contract.Gas,
			}).Debug("dispatching opcode")
		}

		cost = opDef.constantGas
		if !contract.UseGas(cost) {
			in.evm.Config.Logger.WithFields(logrus.Fields{"depth": in.evm.depth, "pc": pc, "op": op}).Debug("out of gas")
			return nil, ErrOutOfGas
		}

		if opDef.memorySize != nil {
			size, overflow := opDef.memorySize(stack)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			memorySize, overflow = wordAlign(size)
			if overflow {
				return nil, ErrGasUintOverflow
			}
		} else {
			memorySize = 0
		}

		if opDef.dynamicGas != nil {
			dynamicCost, err = opDef.dynamicGas(in.evm, contract, stack, mem, memorySize)
			if err != nil {
				return nil, err
			}
			if !contract.UseGas(dynamicCost) {
				return nil, ErrOutOfGas
			}
			cost += dynamicCost
		}

		if memorySize > uint64(mem.Len()) {
			mem.Resize(memorySize)
		}

		if tracer != nil {
			tracer.CaptureState(pc, op, contract.Gas+cost, cost, stack, mem, in.evm.depth-1, nil)
		}

		ret, err = opDef.execute(&pc, in, frame)
		if err != nil {
			if err == errStopToken {
				return ret, nil
			}
			if tracer != nil {
				tracer.CaptureFault(pc, op, contract.Gas, cost, in.evm.depth-1, err)
			}
			return ret, err
		}
		if opDef.halts {
			return ret, nil
		}
		if !opDef.jumps {
			pc++
		}
	}
}

// wordAlign rounds size up to the next multiple of 32, reporting overflow.
func wordAlign(size uint64) (uint64, bool) {
	if size == 0 {
		return 0, false
	}
	if size > (1<<64-1)-31 {
		return 0, true
	}
	return (size + 31) / 32 * 32, false
}
