package vm

import (
	"github.com/evmkit/coreevm/int256"
)

// Memory implements the EVM's byte-addressable, word-aligned linear memory.
// It grows on demand and never shrinks within a call frame; the cost of
// growth is billed separately by the gas calculator (memoryGasCost), which
// recomputes the baseline from Len() on every call.
type Memory struct {
	store []byte
}

// NewMemory returns a new, empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Set copies value into memory at [offset, offset+size). The caller must
// have already grown memory to cover the range via Resize.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val's 32-byte big-endian representation at offset.
func (m *Memory) Set32(offset uint64, val *int256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	b := int256.ToBytes32(val)
	copy(m.store[offset:offset+32], b[:])
}

// Resize grows memory so it is at least size bytes long. size must already
// be rounded up to a whole number of 32-byte words by the caller (the
// interpreter loop word-aligns the size it bills for); Resize itself performs
// no rounding so that it can be driven directly by that computation.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// GetCopy returns an independent copy of the memory contents at
// [offset, offset+size). The returned slice may be mutated freely by the
// caller without affecting memory.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}

// GetPtr returns a slice aliasing memory's backing storage at
// [offset, offset+size). Callers must not retain it past the next mutation
// of memory.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the current length of memory in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the full backing slice (aliased, not a copy).
func (m *Memory) Data() []byte { return m.store }
