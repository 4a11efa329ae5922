package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// ExternalState is the host-provided world-state the interpreter reads and
// mutates as it executes. It is the one boundary across which this module
// never reaches directly: account balances, code, storage, logs, and the
// Merkle state trie that backs them all live on the other side of it.
type ExternalState interface {
	GetBalance(addr types.Address) *int256.Int
	AddBalance(addr types.Address, amount *int256.Int)
	SubBalance(addr types.Address, amount *int256.Int)

	GetCode(addr types.Address) []byte
	GetCodeSize(addr types.Address) int
	GetCodeHash(addr types.Address) types.Hash
	SetCode(addr types.Address, code []byte)

	GetState(addr types.Address, key types.Hash) types.Hash
	SetState(addr types.Address, key, value types.Hash)

	GetTransientState(addr types.Address, key types.Hash) types.Hash
	SetTransientState(addr types.Address, key, value types.Hash)

	HasSuicided(addr types.Address) bool
	Suicide(addr types.Address) bool

	Exist(addr types.Address) bool
	Empty(addr types.Address) bool
	CreateAccount(addr types.Address)

	AddRefund(gas uint64)
	SubRefund(gas uint64)
	GetRefund() uint64

	AddLog(log *types.Log)
	AddPreimage(hash types.Hash, preimage []byte)

	// AddressInAccessList and SlotInAccessList report EIP-2929 warmth.
	AddressInAccessList(addr types.Address) bool
	SlotInAccessList(addr types.Address, slot types.Hash) (addressPresent, slotPresent bool)
	AddAddressToAccessList(addr types.Address)
	AddSlotToAccessList(addr types.Address, slot types.Hash)

	GetNonce(addr types.Address) uint64
	SetNonce(addr types.Address, nonce uint64)

	Snapshot() int
	RevertToSnapshot(id int)
}
