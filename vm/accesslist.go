package vm

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/evmkit/coreevm/types"
)

// slotKey identifies one storage slot within one account for the purposes
// of EIP-2929 warm/cold tracking.
type slotKey struct {
	addr types.Address
	slot types.Hash
}

// AccessList tracks the EIP-2929 "warm" set of addresses and storage slots
// touched by the current transaction. A host's ExternalState implementation
// embeds one (or an equivalent) and resets it at the start of each
// transaction; this module only reads and mutates it through the
// ExternalState interface, never owns its lifecycle directly.
type AccessList struct {
	addresses mapset.Set[types.Address]
	slots     mapset.Set[slotKey]
}

// NewAccessList returns an empty AccessList.
func NewAccessList() *AccessList {
	return &AccessList{
		addresses: mapset.NewThreadUnsafeSet[types.Address](),
		slots:     mapset.NewThreadUnsafeSet[slotKey](),
	}
}

// AddAddress marks addr as warm. Returns true if it was previously cold.
func (al *AccessList) AddAddress(addr types.Address) bool {
	if al.addresses.Contains(addr) {
		return false
	}
	al.addresses.Add(addr)
	return true
}

// ContainsAddress reports whether addr is warm.
func (al *AccessList) ContainsAddress(addr types.Address) bool {
	return al.addresses.Contains(addr)
}

// AddSlot marks (addr, slot) as warm, implicitly warming addr as well (an
// accessed slot's account is always itself accessed). Returns whether the
// address and the slot were each previously cold.
func (al *AccessList) AddSlot(addr types.Address, slot types.Hash) (addrWasCold, slotWasCold bool) {
	addrWasCold = al.AddAddress(addr)
	key := slotKey{addr: addr, slot: slot}
	if al.slots.Contains(key) {
		return addrWasCold, false
	}
	al.slots.Add(key)
	return addrWasCold, true
}

// Contains reports whether addr and, independently, (addr, slot) are warm.
func (al *AccessList) Contains(addr types.Address, slot types.Hash) (addressPresent, slotPresent bool) {
	addressPresent = al.addresses.Contains(addr)
	slotPresent = al.slots.Contains(slotKey{addr: addr, slot: slot})
	return addressPresent, slotPresent
}

// Copy returns an independent copy of the access list, used to snapshot and
// restore warm/cold state around a reverted nested call (EIP-2929 specifies
// that warmth accrued by a reverted subcall persists, so hosts that want
// that behavior should NOT roll this back on ordinary revert; Copy exists
// for hosts implementing full snapshot/revert symmetry instead).
func (al *AccessList) Copy() *AccessList {
	return &AccessList{
		addresses: al.addresses.Clone(),
		slots:     al.slots.Clone(),
	}
}
