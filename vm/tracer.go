package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// EVMLogger observes execution without influencing it: every method here is
// called purely for its side effects on the logger, never to alter the
// interpreter's control flow or gas accounting.
type EVMLogger interface {
	CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *int256.Int)
	CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, depth int, err error)
	CaptureFault(pc uint64, op OpCode, gas, cost uint64, depth int, err error)
	CaptureEnter(typ string, from, to types.Address, input []byte, gas uint64, value *int256.Int)
	CaptureExit(output []byte, gasUsed uint64, err error)
	CaptureEnd(output []byte, gasUsed uint64, err error)
}

// NoopTracer implements EVMLogger with no-op methods, the default when no
// tracer is configured (EVM checks evm.Config.Tracer != nil before calling
// through, so NoopTracer mainly exists for callers that want a concrete
// always-present logger rather than a nil check).
type NoopTracer struct{}

func (NoopTracer) CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *int256.Int) {
}
func (NoopTracer) CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, depth int, err error) {
}
func (NoopTracer) CaptureFault(pc uint64, op OpCode, gas, cost uint64, depth int, err error) {}
func (NoopTracer) CaptureEnter(typ string, from, to types.Address, input []byte, gas uint64, value *int256.Int) {
}
func (NoopTracer) CaptureExit(output []byte, gasUsed uint64, err error)              {}
func (NoopTracer) CaptureEnd(output []byte, gasUsed uint64, err error)               {}

// StructLogEntry is one opcode step recorded by StructLogger.
type StructLogEntry struct {
	Pc      uint64
	Op      OpCode
	Gas     uint64
	GasCost uint64
	Depth   int
	Stack   []*int256.Int
	Err     error
}

// StructLogger accumulates a full step-by-step execution trace, in the
// style of go-ethereum's struct logger: useful for debug_traceTransaction-
// shaped tooling and for asserting exact execution traces in tests.
type StructLogger struct {
	Logs    []StructLogEntry
	output  []byte
	err     error
	gasUsed uint64
}

// NewStructLogger returns an empty StructLogger.
func NewStructLogger() *StructLogger { return &StructLogger{} }

func (t *StructLogger) CaptureStart(from, to types.Address, create bool, input []byte, gas uint64, value *int256.Int) {
}

func (t *StructLogger) CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, depth int, err error) {
	data := stack.Data()
	stackCopy := make([]*int256.Int, len(data))
	for i, v := range data {
		stackCopy[i] = new(int256.Int).Set(v)
	}
	t.Logs = append(t.Logs, StructLogEntry{
		Pc: pc, Op: op, Gas: gas, GasCost: cost, Depth: depth, Stack: stackCopy, Err: err,
	})
}

func (t *StructLogger) CaptureFault(pc uint64, op OpCode, gas, cost uint64, depth int, err error) {
	t.Logs = append(t.Logs, StructLogEntry{Pc: pc, Op: op, Gas: gas, GasCost: cost, Depth: depth, Err: err})
}

func (t *StructLogger) CaptureEnter(typ string, from, to types.Address, input []byte, gas uint64, value *int256.Int) {
}

func (t *StructLogger) CaptureExit(output []byte, gasUsed uint64, err error) {}

func (t *StructLogger) CaptureEnd(output []byte, gasUsed uint64, err error) {
	t.output, t.gasUsed, t.err = output, gasUsed, err
}

// Output returns the top-level call's return data.
func (t *StructLogger) Output() []byte { return t.output }

// GasUsed returns the top-level call's total gas consumption.
func (t *StructLogger) GasUsed() uint64 { return t.gasUsed }

// Error returns the top-level call's terminal error, if any.
func (t *StructLogger) Error() error { return t.err }
