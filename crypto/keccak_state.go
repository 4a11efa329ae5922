package crypto

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// KeccakState is a reusable Keccak-256 hasher paired with a fixed 32-byte
// output buffer, so the interpreter's KECCAK256 opcode handler can hash
// repeatedly within one frame without reallocating a hash.Hash per call.
type KeccakState struct {
	h   hash.Hash
	out [32]byte
}

// NewKeccakState returns a ready-to-use KeccakState.
func NewKeccakState() *KeccakState {
	return &KeccakState{h: sha3.NewLegacyKeccak256()}
}

// Sum256 hashes data and returns the digest as a slice over the state's
// internal buffer. The slice is only valid until the next call to Sum256.
func (k *KeccakState) Sum256(data []byte) []byte {
	k.h.Reset()
	k.h.Write(data)
	k.out = [32]byte{}
	k.h.Sum(k.out[:0])
	return k.out[:]
}
