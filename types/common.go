// Package types defines the small set of value types the interpreter core
// needs to talk about accounts and hashes, independent of any state trie
// or RLP encoding concerns (those live outside this module's scope).
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash is a 32-byte Keccak256 digest.
type Hash [HashLength]byte

// Address is a 20-byte account address.
type Address [AddressLength]byte

// BytesToHash converts b to a Hash, left-padding (or truncating from the
// left) to fit.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash parses a hex string (with or without "0x") into a Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the hash's big-endian byte representation.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the "0x"-prefixed hex representation.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from b, left-padding if b is shorter than 32 bytes
// and keeping only the low-order 32 bytes if it is longer.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool { return h == Hash{} }

func (h Hash) String() string { return h.Hex() }

// BytesToAddress converts b to an Address, left-padding (or truncating from
// the left) to fit.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses a hex string (with or without "0x") into an Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the address's big-endian byte representation.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the "0x"-prefixed hex representation.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the address from b, left-padding if b is shorter than 20
// bytes and keeping only the low-order 20 bytes if it is longer.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool { return a == Address{} }

func (a Address) String() string { return a.Hex() }

// EmptyCodeHash is keccak256("") — the code hash of an externally owned
// account (no code).
var EmptyCodeHash = HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
