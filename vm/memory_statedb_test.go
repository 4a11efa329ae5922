package vm

import (
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// memStateObject is one account's balance, nonce, code, and storage; balance
// and storage changes are journaled so a snapshot can roll them back.
type memStateObject struct {
	balance   *int256.Int
	nonce     uint64
	code      []byte
	codeHash  types.Hash
	storage   map[types.Hash]types.Hash
	transient map[types.Hash]types.Hash
	suicided  bool
}

func newMemStateObject() *memStateObject {
	return &memStateObject{
		balance:   int256.New(),
		storage:   make(map[types.Hash]types.Hash),
		transient: make(map[types.Hash]types.Hash),
	}
}

// memStateDB is a minimal in-memory ExternalState used only by this
// package's tests. It journals balance and storage mutations as undo
// closures, the way the teacher's MemoryStateDB journals typed change
// records, but without that implementation's trie/RLP commit machinery
// (state persistence is out of scope here). Account creation, code, nonce,
// transient storage, the suicide flag, logs, refunds, and the access list
// are not journaled, so RevertToSnapshot leaves them as they are.
type memStateDB struct {
	objects    map[types.Address]*memStateObject
	logs       []*types.Log
	refund     uint64
	accessList *AccessList
	journal    []func()
}

func newMemStateDB() *memStateDB {
	return &memStateDB{
		objects:    make(map[types.Address]*memStateObject),
		accessList: NewAccessList(),
	}
}

func (s *memStateDB) obj(addr types.Address) *memStateObject {
	o, ok := s.objects[addr]
	if !ok {
		o = newMemStateObject()
		s.objects[addr] = o
	}
	return o
}

func (s *memStateDB) GetBalance(addr types.Address) *int256.Int {
	return s.obj(addr).balance.Clone()
}

func (s *memStateDB) AddBalance(addr types.Address, amount *int256.Int) {
	o := s.obj(addr)
	prev := o.balance.Clone()
	s.journal = append(s.journal, func() { o.balance = prev })
	o.balance = new(int256.Int).Add(o.balance, amount)
}

func (s *memStateDB) SubBalance(addr types.Address, amount *int256.Int) {
	o := s.obj(addr)
	prev := o.balance.Clone()
	s.journal = append(s.journal, func() { o.balance = prev })
	o.balance = new(int256.Int).Sub(o.balance, amount)
}

func (s *memStateDB) GetCode(addr types.Address) []byte { return s.obj(addr).code }

func (s *memStateDB) GetCodeSize(addr types.Address) int { return len(s.obj(addr).code) }

func (s *memStateDB) GetCodeHash(addr types.Address) types.Hash { return s.obj(addr).codeHash }

func (s *memStateDB) SetCode(addr types.Address, code []byte) {
	o := s.obj(addr)
	o.code = code
	o.codeHash = types.BytesToHash(code) // test double only; not a real keccak
}

func (s *memStateDB) GetState(addr types.Address, key types.Hash) types.Hash {
	return s.obj(addr).storage[key]
}

func (s *memStateDB) SetState(addr types.Address, key, value types.Hash) {
	o := s.obj(addr)
	prev, existed := o.storage[key]
	s.journal = append(s.journal, func() {
		if existed {
			o.storage[key] = prev
		} else {
			delete(o.storage, key)
		}
	})
	o.storage[key] = value
}

func (s *memStateDB) GetTransientState(addr types.Address, key types.Hash) types.Hash {
	return s.obj(addr).transient[key]
}

func (s *memStateDB) SetTransientState(addr types.Address, key, value types.Hash) {
	s.obj(addr).transient[key] = value
}

func (s *memStateDB) HasSuicided(addr types.Address) bool { return s.obj(addr).suicided }

func (s *memStateDB) Suicide(addr types.Address) bool {
	o := s.obj(addr)
	if o.suicided {
		return false
	}
	o.suicided = true
	o.balance = int256.New()
	return true
}

func (s *memStateDB) Exist(addr types.Address) bool {
	_, ok := s.objects[addr]
	return ok
}

func (s *memStateDB) Empty(addr types.Address) bool {
	o, ok := s.objects[addr]
	if !ok {
		return true
	}
	return o.nonce == 0 && int256.IsZero(o.balance) && len(o.code) == 0
}

func (s *memStateDB) CreateAccount(addr types.Address) {
	if _, ok := s.objects[addr]; !ok {
		s.objects[addr] = newMemStateObject()
	}
}

func (s *memStateDB) AddRefund(gas uint64) { s.refund += gas }
func (s *memStateDB) SubRefund(gas uint64) { s.refund -= gas }
func (s *memStateDB) GetRefund() uint64    { return s.refund }

func (s *memStateDB) AddLog(log *types.Log) { s.logs = append(s.logs, log) }

func (s *memStateDB) AddPreimage(hash types.Hash, preimage []byte) {}

func (s *memStateDB) AddressInAccessList(addr types.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *memStateDB) SlotInAccessList(addr types.Address, slot types.Hash) (bool, bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *memStateDB) AddAddressToAccessList(addr types.Address) { s.accessList.AddAddress(addr) }

func (s *memStateDB) AddSlotToAccessList(addr types.Address, slot types.Hash) {
	s.accessList.AddSlot(addr, slot)
}

func (s *memStateDB) GetNonce(addr types.Address) uint64 { return s.obj(addr).nonce }

func (s *memStateDB) SetNonce(addr types.Address, nonce uint64) { s.obj(addr).nonce = nonce }

// Snapshot returns the journal length as a snapshot id: reverting just
// replays undo closures appended after that point, in reverse order.
func (s *memStateDB) Snapshot() int { return len(s.journal) }

func (s *memStateDB) RevertToSnapshot(id int) {
	for i := len(s.journal) - 1; i >= id; i-- {
		s.journal[i]()
	}
	s.journal = s.journal[:id]
}

var _ ExternalState = (*memStateDB)(nil)

// newTestEVM returns an EVM wired to a fresh memStateDB, with Byzantium-level
// rules active (past EIP-150/EIP-158, pre-Constantinople) unless the caller
// overrides Rules afterward.
func newTestEVM() (*EVM, *memStateDB) {
	state := newMemStateDB()
	rules := ChainRules{IsHomestead: true, IsEIP150: true, IsEIP158: true, IsByzantium: true}
	evm := NewEVM(BlockContext{
		GetHash:     func(uint64) types.Hash { return types.Hash{} },
		BlockNumber: 100,
		GasLimit:    30_000_000,
		Difficulty:  int256.New(),
		BaseFee:     int256.New(),
	}, TxContext{
		GasPrice: int256.New(),
	}, state, rules, int256.FromUint64(1), Config{})
	return evm, state
}
