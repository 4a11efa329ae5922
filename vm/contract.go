package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// Contract is one call frame's immutable bytecode and execution-local
// state: the executing account, its caller, the call value and input, and
// the gas meter. A JUMPDEST analysis of Code is computed lazily and cached
// by code hash in the EVM's JumpdestCache.
type Contract struct {
	CallerAddress types.Address
	Address       types.Address
	Code          []byte
	CodeHash      types.Hash
	Input         []byte
	Gas           uint64
	Value         *int256.Int

	jumpdests jumpdestAnalysis
}

// NewContract returns a new call frame for executing code at addr, called
// by caller with the given value and starting gas.
func NewContract(caller, addr types.Address, value *int256.Int, gas uint64) *Contract {
	return &Contract{
		CallerAddress: caller,
		Address:       addr,
		Value:         value,
		Gas:           gas,
	}
}

// SetCallCode binds the code to be executed (and its hash, used for the
// jumpdest analysis cache key) for a CALL/DELEGATECALL/CALLCODE-type frame.
func (c *Contract) SetCallCode(code []byte, hash types.Hash) {
	c.Code = code
	c.CodeHash = hash
}

// GetOp returns the opcode at position n, or STOP if n is past the end of
// code (the EVM treats bytecode as implicitly STOP-padded).
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// UseGas attempts to deduct gas from the remaining balance. It returns false
// (deducting nothing) if the contract does not have enough gas.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// ValidJumpdest reports whether dest is both within code bounds and a
// JUMPDEST opcode that is not itself inside a PUSH immediate. The analysis
// is computed once per distinct code hash and shared via the given jumpdest
// cache (one per EVM).
func (c *Contract) ValidJumpdest(cache *JumpdestCache, dest *int256.Int) bool {
	udest, overflow := int256.Uint64WithOverflow(dest)
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	if c.jumpdests == nil {
		c.jumpdests = cache.analysis(c.CodeHash, c.Code)
	}
	return c.jumpdests.isValid(udest)
}
