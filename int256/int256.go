// Package int256 is the 256-bit integer core the interpreter builds its
// arithmetic, comparison, and bitwise opcodes on. It is a thin layer over
// github.com/holiman/uint256's fixed-width Int, adding the EVM-specific
// semantic operations (signed comparison, SIGNEXTEND, SAR, byte extraction,
// modular add/multiply, address truncation) under the names the interpreter
// calls them by. Signed division and modulo are not wrapped here: handlers
// call Int's own SDiv/SMod methods. Borrowing the magnitude
// representation from an established library avoids hand-rolling a bignum
// type for what is, in the end, the highest-traffic code in the whole
// interpreter.
package int256

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/evmkit/coreevm/types"
)

// Int is a 256-bit unsigned magnitude with an implied two's-complement
// signed interpretation used by the S* opcodes.
type Int = uint256.Int

// New returns a new zero-valued Int.
func New() *Int { return new(uint256.Int) }

// FromUint64 returns an Int set to v.
func FromUint64(v uint64) *Int { return uint256.NewInt(v) }

// FromBig converts a *big.Int to an Int, reducing modulo 2^256. The second
// return value reports whether the conversion overflowed 256 bits.
func FromBig(b *big.Int) (*Int, bool) {
	z, overflow := uint256.FromBig(b)
	return z, overflow
}

// FromBytes32 interprets b as a big-endian 256-bit unsigned integer.
func FromBytes32(b [32]byte) *Int {
	z := new(uint256.Int)
	z.SetBytes32(b[:])
	return z
}

// FromBytes interprets b (any length, most significant byte first) as an
// unsigned integer, truncating to the low-order 32 bytes if longer.
func FromBytes(b []byte) *Int {
	z := new(uint256.Int)
	z.SetBytes(b)
	return z
}

// ToBig converts x to a *big.Int (unsigned magnitude).
func ToBig(x *Int) *big.Int { return x.ToBig() }

// ToBytes32 returns x's big-endian 32-byte representation.
func ToBytes32(x *Int) [32]byte { return x.Bytes32() }

// ToAddress extracts the low-order 20 bytes of x, big-endian, as an
// Ethereum address (used by ADDRESS-producing opcodes like CREATE/CREATE2
// and by callers truncating a stack word to an address argument).
func ToAddress(x *Int) types.Address {
	b := x.Bytes20()
	return types.Address(b)
}

// Uint64WithOverflow returns the low 64 bits of x and whether any of the
// upper 192 bits were non-zero (the spec's "truncation to u64 with an
// overflow flag").
func Uint64WithOverflow(x *Int) (uint64, bool) {
	return x.Uint64(), !x.IsUint64()
}

// IsZero reports whether x is the zero value.
func IsZero(x *Int) bool { return x.IsZero() }

// SignedLt reports x < y interpreting both as two's-complement signed
// 256-bit integers (the SLT opcode).
func SignedLt(x, y *Int) bool { return x.Slt(y) }

// SignedGt reports x > y interpreting both as two's-complement signed
// 256-bit integers (the SGT opcode).
func SignedGt(x, y *Int) bool { return x.Sgt(y) }

// Sar computes the arithmetic (sign-preserving) right shift of x by shift
// bits. Per the EVM spec: a shift of 256 or more yields 0 if x is
// non-negative (top bit clear) and all-ones (-1) if x is negative.
func Sar(z *Int, shift, x *Int) *Int {
	if shift.GtUint64(255) {
		if isNegative(x) {
			return z.SetAllOne()
		}
		return z.Clear()
	}
	n := uint(shift.Uint64())
	return z.SRsh(x, n)
}

// isNegative reports whether x's top bit is set, i.e. whether x is negative
// under a two's-complement 256-bit signed interpretation.
func isNegative(x *Int) bool {
	b := x.Bytes32()
	return b[0]&0x80 != 0
}

// SignExtend extends the byte at position k (0-indexed from the least
// significant byte) of x as a sign bit, per SIGNEXTEND. k >= 31 is a no-op.
func SignExtend(z *Int, k, x *Int) *Int {
	if k.GtUint64(31) {
		return z.Set(x)
	}
	return z.ExtendSign(x, k)
}

// Byte returns the i-th most-significant byte of x (i=0 is the highest
// order byte); 0 when i >= 32.
func Byte(z *Int, i, x *Int) *Int {
	if z != x {
		z.Set(x)
	}
	return z.Byte(i)
}

// AddMod computes (x + y) mod m. Per EVM semantics, a zero modulus yields 0
// rather than a division-by-zero condition.
func AddMod(z, x, y, m *Int) *Int { return z.AddMod(x, y, m) }

// MulMod computes (x * y) mod m. Per EVM semantics, a zero modulus yields 0.
func MulMod(z, x, y, m *Int) *Int { return z.MulMod(x, y, m) }
