package vm

import (
	"bytes"
	"testing"

	"github.com/evmkit/coreevm/int256"
)

func TestMemoryResizeAndSet(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	if m.Len() != 32 {
		t.Fatalf("len = %d, want 32", m.Len())
	}
	m.Set(0, 4, []byte{1, 2, 3, 4})
	if got := m.GetCopy(0, 4); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("got %x", got)
	}
}

func TestMemoryResizeNoShrink(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Resize(32)
	if m.Len() != 64 {
		t.Fatalf("memory should never shrink, len = %d", m.Len())
	}
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set32(0, int256.FromUint64(0x2a))
	got := m.GetCopy(0, 32)
	if got[31] != 0x2a {
		t.Fatalf("low byte = %x, want 0x2a", got[31])
	}
	for i := 0; i < 31; i++ {
		if got[i] != 0 {
			t.Fatalf("expected zero padding at byte %d, got %x", i, got[i])
		}
	}
}

func TestMemoryGetPtrAliases(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 4, []byte{9, 9, 9, 9})
	ptr := m.GetPtr(0, 4)
	ptr[0] = 0
	if m.GetCopy(0, 1)[0] != 0 {
		t.Fatalf("GetPtr should alias the backing store")
	}
}

func TestMemoryGetCopyIndependent(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 4, []byte{1, 2, 3, 4})
	cp := m.GetCopy(0, 4)
	cp[0] = 0xff
	if m.GetCopy(0, 1)[0] == 0xff {
		t.Fatalf("GetCopy should return an independent copy")
	}
}
