package types

import "testing"

func TestHashRoundTrip(t *testing.T) {
	h := HexToHash("0x2a")
	if BytesToHash(h.Bytes()) != h {
		t.Fatalf("hash round trip failed")
	}
	if h[31] != 0x2a {
		t.Fatalf("expected low byte 0x2a, got %x", h[31])
	}
}

func TestAddressRoundTrip(t *testing.T) {
	a := HexToAddress("0x000000000000000000000000000000000000ff")
	if a[19] != 0xff {
		t.Fatalf("expected low byte 0xff, got %x", a[19])
	}
	if BytesToAddress(a.Bytes()) != a {
		t.Fatalf("address round trip failed")
	}
}

func TestZeroValues(t *testing.T) {
	var h Hash
	if !h.IsZero() {
		t.Fatalf("zero Hash should report IsZero")
	}
	var a Address
	if !a.IsZero() {
		t.Fatalf("zero Address should report IsZero")
	}
}

func TestSetBytesTruncatesLeft(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 0x7
	a := BytesToAddress(long)
	if a[19] != 0x7 {
		t.Fatalf("expected low-order truncation, got %x", a)
	}
}
