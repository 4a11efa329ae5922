package vm

import (
	"github.com/evmkit/coreevm/crypto"
	"github.com/evmkit/coreevm/int256"
	"github.com/evmkit/coreevm/types"
)

// createAddress derives a CREATE-style contract address: the low 20 bytes
// of keccak256(rlp([sender, nonce])). No RLP library appears anywhere in
// the retrieval pack, so the two-element list encoding needed here (an
// address and a small integer) is hand-written rather than pulling in a
// whole RLP codec for one call site.
func createAddress(sender types.Address, nonce uint64) types.Address {
	encoded := rlpEncodeList(rlpEncodeBytes(sender.Bytes()), rlpEncodeUint64(nonce))
	return types.BytesToAddress(crypto.Keccak256(encoded)[12:])
}

// createAddress2 derives a CREATE2-style contract address: the low 20 bytes
// of keccak256(0xff ++ sender ++ salt ++ keccak256(initCode)).
func createAddress2(sender types.Address, salt *int256.Int, initCodeHash []byte) types.Address {
	saltBytes := int256.ToBytes32(salt)
	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, saltBytes[:]...)
	buf = append(buf, initCodeHash...)
	return types.BytesToAddress(crypto.Keccak256(buf)[12:])
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(rlpEncodeLength(len(b), 0x80), b...)
}

func rlpEncodeUint64(v uint64) []byte {
	if v == 0 {
		return []byte{0x80}
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte(v)}, b...)
		v >>= 8
	}
	return rlpEncodeBytes(b)
}

func rlpEncodeLength(l int, offset byte) []byte {
	if l < 56 {
		return []byte{byte(l) + offset}
	}
	var lenBytes []byte
	n := l
	for n > 0 {
		lenBytes = append([]byte{byte(n)}, lenBytes...)
		n >>= 8
	}
	return append([]byte{offset + 55 + byte(len(lenBytes))}, lenBytes...)
}

func rlpEncodeList(items ...[]byte) []byte {
	var payload []byte
	for _, it := range items {
		payload = append(payload, it...)
	}
	return append(rlpEncodeLength(len(payload), 0xc0), payload...)
}
