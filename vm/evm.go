package vm

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/evmkit/coreevm/crypto"
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// maxCallDepth is the maximum nested call depth (CALL/CALLCODE/
// DELEGATECALL/STATICCALL/CREATE/CREATE2).
const maxCallDepth = 1024

// callGasFraction is the EIP-150 "all but one 64th" divisor.
const callGasFraction = 64

// BlockContext carries the per-block data exposed to opcodes such as
// COINBASE, TIMESTAMP, NUMBER, PREVRANDAO, GASLIMIT, BASEFEE, BLOCKHASH.
type BlockContext struct {
	GetHash func(blockNumber uint64) types.Hash

	Coinbase    types.Address
	GasLimit    uint64
	BlockNumber uint64
	Time        uint64
	Difficulty  *int256.Int // pre-merge DIFFICULTY / post-merge PREVRANDAO
	BaseFee     *int256.Int
	BlobBaseFee *int256.Int
}

// TxContext carries the per-transaction data exposed to ORIGIN, GASPRICE,
// and BLOBHASH.
type TxContext struct {
	Origin     types.Address
	GasPrice   *int256.Int
	BlobHashes []types.Hash
}

// ChainRules is a snapshot of which fork-gated behaviors are active. It is
// computed once per block by the host and passed in; this module never
// decides fork activation from a block number itself.
type ChainRules struct {
	IsHomestead      bool
	IsEIP150         bool
	IsEIP158         bool
	IsByzantium      bool
	IsConstantinople bool
	IsPetersburg     bool
	IsIstanbul       bool
	IsBerlin         bool
	IsLondon         bool
	IsMerge          bool
	IsShanghai       bool
	IsCancun         bool
}

// Config bundles the ambient, non-consensus-critical execution options: an
// optional tracer, a logger, a NoBaseFee flag, and an overridable max call
// depth. NoBaseFee is carried for the host; nothing in this package reads it.
type Config struct {
	Tracer       EVMLogger
	Logger       logrus.FieldLogger
	NoBaseFee    bool
	MaxCallDepth int
	// TraceLogging emits a Debug-level log line per dispatched opcode. Off
	// by default: even at Debug level this is too noisy for anything but
	// interactive debugging of a single call.
	TraceLogging bool
}

// EVM is the execution context shared by every frame of one call tree: the
// block and transaction context, the active chain rules, the external
// state, and the mutable scratch fields (depth, abort, callGasTemp) that
// the interpreter and call-family opcodes coordinate through.
type EVM struct {
	BlockContext
	TxContext
	Rules   ChainRules
	Config  Config
	ChainID *int256.Int

	StateDB ExternalState
	table   *JumpTable
	jdCache *JumpdestCache

	depth       int
	abort       bool
	callGasTemp uint64
}

// NewEVM returns an EVM ready to execute at the top level (depth 0).
func NewEVM(blockCtx BlockContext, txCtx TxContext, state ExternalState, rules ChainRules, chainID *int256.Int, config Config) *EVM {
	if config.MaxCallDepth == 0 {
		config.MaxCallDepth = maxCallDepth
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger().WithField("component", "vm")
	}
	if chainID == nil {
		chainID = int256.New()
	}
	return &EVM{
		BlockContext: blockCtx,
		TxContext:    txCtx,
		Rules:        rules,
		Config:       config,
		ChainID:      chainID,
		StateDB:      state,
		table:        tableForRules(rules),
		jdCache:      NewJumpdestCache(),
	}
}

// Abort requests that the currently running interpreter stop at the next
// step boundary. Safe to call from another goroutine; the interpreter only
// observes it at the top of its loop, so there is no mid-opcode
// cancellation.
func (evm *EVM) Abort() { evm.abort = true }

// Depth returns the current call nesting depth.
func (evm *EVM) Depth() int { return evm.depth }

// callKind distinguishes the CALL-family opcodes for the shared call path.
type callKind int

const (
	callKindCall callKind = iota
	callKindCallCode
	callKindDelegateCall
	callKindStaticCall
)

// Call executes the code at addr as CALL: value is transferred, and the
// callee executes with addr as both its storage context and its Address.
func (evm *EVM) Call(caller types.Address, addr types.Address, input []byte, gas uint64, value *int256.Int, readOnly bool) (ret []byte, leftOverGas uint64, err error) {
	return evm.call(callKindCall, caller, addr, input, gas, value, readOnly)
}

// CallCode executes the code at addr, but the storage context (Address) is
// the caller's own account, as with DELEGATECALL except that CALLVALUE and
// CALLER are taken from this call, not inherited.
func (evm *EVM) CallCode(caller types.Address, addr types.Address, input []byte, gas uint64, value *int256.Int) (ret []byte, leftOverGas uint64, err error) {
	return evm.call(callKindCallCode, caller, addr, input, gas, value, false)
}

// DelegateCall executes the code at addr in the caller's own storage
// context, inheriting CALLVALUE and CALLER from the parent frame (no value
// is transferred by a DELEGATECALL itself).
func (evm *EVM) DelegateCall(caller types.Address, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	return evm.call(callKindDelegateCall, caller, addr, input, gas, nil, false)
}

// StaticCall executes the code at addr with read_only forced true: any
// state-mutating opcode in the callee (or anything it calls) fails with
// ErrWriteProtection.
func (evm *EVM) StaticCall(caller types.Address, addr types.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	return evm.call(callKindStaticCall, caller, addr, input, gas, nil, true)
}

func (evm *EVM) call(kind callKind, caller, addr types.Address, input []byte, gas uint64, value *int256.Int, readOnly bool) ([]byte, uint64, error) {
	if evm.depth > evm.Config.MaxCallDepth {
		evm.Config.Logger.WithFields(logrus.Fields{"depth": evm.depth, "kind": callTypeName(kind)}).Warn("call depth limit exceeded")
		return nil, gas, ErrDepthLimit
	}
	transfersValue := kind == callKindCall && value != nil && !int256.IsZero(value)
	if readOnly && transfersValue {
		return nil, gas, ErrWriteProtection
	}
	if kind == callKindCall && transfersValue {
		if evm.StateDB.GetBalance(caller).Cmp(value) < 0 {
			return nil, gas, ErrInsufficientBalance
		}
	}

	snapshot := evm.StateDB.Snapshot()

	if kind == callKindCall {
		if !evm.StateDB.Exist(addr) {
			evm.StateDB.CreateAccount(addr)
		}
		if transfersValue {
			evm.StateDB.SubBalance(caller, value)
			evm.StateDB.AddBalance(addr, value)
		}
	}

	code := evm.StateDB.GetCode(addr)

	var contractAddr types.Address
	var contractValue *int256.Int
	switch kind {
	case callKindCall, callKindStaticCall:
		contractAddr = addr
		contractValue = value
	case callKindCallCode:
		contractAddr = caller
		contractValue = value
	case callKindDelegateCall:
		contractAddr = caller
		contractValue = nil
	}
	if contractValue == nil {
		contractValue = int256.New()
	}

	if tracer := evm.Config.Tracer; tracer != nil {
		tracer.CaptureEnter(callTypeName(kind), caller, addr, input, gas, contractValue)
		defer func() { tracer.CaptureExit(nil, gas, nil) }()
	}

	if len(code) == 0 {
		return nil, gas, nil
	}

	contract := NewContract(caller, contractAddr, contractValue, gas)
	contract.SetCallCode(code, evm.StateDB.GetCodeHash(addr))

	in := NewInterpreter(evm, evm.table)
	ret, err := in.Run(contract, input, readOnly)
	leftOverGas := contract.Gas

	if err != nil {
		if !errors.Is(err, ErrExecutionReverted) {
			leftOverGas = 0
		}
		evm.Config.Logger.WithFields(logrus.Fields{"depth": evm.depth, "addr": addr, "err": err}).Debug("call frame reverted")
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, leftOverGas, err
}

func callTypeName(kind callKind) string {
	switch kind {
	case callKindCall:
		return "CALL"
	case callKindCallCode:
		return "CALLCODE"
	case callKindDelegateCall:
		return "DELEGATECALL"
	case callKindStaticCall:
		return "STATICCALL"
	default:
		return "CALL"
	}
}

// callGas implements the EIP-150 "all but one 64th" forwarding rule: the
// gas reserved for the call is capped at available - available/64, then
// further capped by the caller-requested amount (if it fits in a uint64).
func callGas(rules ChainRules, availableGas, base uint64, requested *int256.Int) (uint64, error) {
	if availableGas < base {
		return 0, ErrGasUintOverflow
	}
	available := availableGas - base
	if rules.IsEIP150 {
		capped := available - available/callGasFraction
		if requested == nil {
			return capped, nil
		}
		if v, overflow := int256.Uint64WithOverflow(requested); !overflow && v < capped {
			return v, nil
		}
		return capped, nil
	}
	if requested == nil {
		return available, nil
	}
	v, overflow := int256.Uint64WithOverflow(requested)
	if overflow || v > available {
		return available, nil
	}
	return v, nil
}

// Create deploys new code produced by running initCode, deriving the new
// account's address as keccak256(rlp(sender, nonce))[12:].
func (evm *EVM) Create(caller types.Address, initCode []byte, gas uint64, value *int256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	nonce := evm.StateDB.GetNonce(caller)
	contractAddr = createAddress(caller, nonce)
	return evm.create(caller, initCode, gas, value, contractAddr)
}

// Create2 deploys new code at a salt-derived, pre-computable address:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initCode))[12:].
func (evm *EVM) Create2(caller types.Address, initCode []byte, gas uint64, value *int256.Int, salt *int256.Int) (ret []byte, contractAddr types.Address, leftOverGas uint64, err error) {
	contractAddr = createAddress2(caller, salt, crypto.Keccak256(initCode))
	return evm.create(caller, initCode, gas, value, contractAddr)
}

func (evm *EVM) create(caller types.Address, initCode []byte, gas uint64, value *int256.Int, contractAddr types.Address) ([]byte, types.Address, uint64, error) {
	if evm.depth > evm.Config.MaxCallDepth {
		evm.Config.Logger.WithField("depth", evm.depth).Warn("create depth limit exceeded")
		return nil, contractAddr, gas, ErrDepthLimit
	}
	if evm.Rules.IsShanghai && len(initCode) > MaxInitCodeSize {
		return nil, contractAddr, 0, ErrMaxInitCodeSizeExceeded
	}
	if value != nil && !int256.IsZero(value) {
		if evm.StateDB.GetBalance(caller).Cmp(value) < 0 {
			return nil, contractAddr, gas, ErrInsufficientBalance
		}
	}

	if evm.StateDB.Exist(contractAddr) && !evm.StateDB.Empty(contractAddr) {
		return nil, contractAddr, 0, ErrContractAddressCollision
	}

	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(contractAddr)
	evm.StateDB.SetNonce(contractAddr, 1)
	if value != nil && !int256.IsZero(value) {
		evm.StateDB.SubBalance(caller, value)
		evm.StateDB.AddBalance(contractAddr, value)
	}

	contract := NewContract(caller, contractAddr, value, gas)
	contract.SetCallCode(initCode, crypto.Keccak256Hash(initCode))

	in := NewInterpreter(evm, evm.table)
	ret, err := in.Run(contract, nil, false)

	if err == nil {
		if evm.Rules.IsEIP158 && len(ret) > MaxCodeSize {
			err = ErrMaxCodeSizeExceeded
		}
	}
	if err == nil {
		createCost := uint64(len(ret)) * 200 // Gcodedeposit per byte
		if !contract.UseGas(createCost) {
			if evm.Rules.IsHomestead {
				err = ErrCodeStoreOutOfGas
			} else {
				ret = nil
			}
		} else {
			evm.StateDB.SetCode(contractAddr, ret)
		}
	}

	leftOverGas := contract.Gas
	if err != nil && !errors.Is(err, ErrExecutionReverted) {
		leftOverGas = 0
		evm.StateDB.RevertToSnapshot(snapshot)
	} else if errors.Is(err, ErrExecutionReverted) {
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, contractAddr, leftOverGas, err
}
