// Package crypto provides the one cryptographic primitive the interpreter
// core depends on directly: Keccak-256. Everything else (signature
// recovery, precompile cryptography) is out of this module's scope.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/evmkit/coreevm/types"
)

// Keccak256 returns the Keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash is Keccak256 with the result wrapped as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}
