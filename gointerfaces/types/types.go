// Package types holds the wire-level bigint container messages exchanged
// with the remote node, and the conversion helpers that turn them into
// native Go types. It mirrors the generated `typesproto` package the
// teacher repo builds from interfaces.git (see erigon-lib/gointerfaces),
// hand-approximated here since no protoc step runs in this build: message
// shapes are plain structs rather than protobuf-reflected types. See
// DESIGN.md for the rationale.
package types

import (
	"math/big"

	"github.com/holiman/uint256"
)

// H128 is the wire container for the high/low halves of a 256-bit value,
// or the low 128 bits of a 160-bit address.
type H128 struct {
	Hi uint64
	Lo uint64
}

// H160 is a 160-bit address: a 128-bit message plus a 32-bit tail.
type H160 struct {
	Hi *H128
	Lo uint32
}

// H256 is a 256-bit word: two 128-bit messages, big-endian halves.
type H256 struct {
	Hi *H128
	Lo *H128
}

// H512 is a 512-bit value: two H256 halves (used for BLS/secp compressed points
// elsewhere in the wire protocol; unused by this gateway's core but kept for
// symmetry with the teacher's typesproto package).
type H512 struct {
	Hi *H256
	Lo *H256
}

// H2048 is a 2048-bit bloom filter: eight 256-bit messages, big-endian.
type H2048 struct {
	Parts [8]*H256
}

// VersionReply is returned by every service's Version unary RPC.
type VersionReply struct {
	Major uint32
	Minor uint32
	Patch uint32
}

const (
	AddressLength = 20
	HashLength    = 32
	BloomLength   = 256
)

type Address [AddressLength]byte
type Hash [HashLength]byte
type Bloom [BloomLength]byte

func ConvertH256ToHash(h *H256) Hash {
	var out Hash
	if h == nil {
		return out
	}
	if h.Hi != nil {
		putUint64(out[0:8], h.Hi.Hi)
		putUint64(out[8:16], h.Hi.Lo)
	}
	if h.Lo != nil {
		putUint64(out[16:24], h.Lo.Hi)
		putUint64(out[24:32], h.Lo.Lo)
	}
	return out
}

func ConvertHashToH256(h Hash) *H256 {
	return &H256{
		Hi: &H128{Hi: getUint64(h[0:8]), Lo: getUint64(h[8:16])},
		Lo: &H128{Hi: getUint64(h[16:24]), Lo: getUint64(h[24:32])},
	}
}

func ConvertH160toAddress(h *H160) Address {
	var out Address
	if h == nil {
		return out
	}
	if h.Hi != nil {
		putUint64(out[0:8], h.Hi.Hi)
		putUint64(out[8:16], h.Hi.Lo)
	}
	putUint32(out[16:20], h.Lo)
	return out
}

func ConvertAddressToH160(a Address) *H160 {
	return &H160{
		Hi: &H128{Hi: getUint64(a[0:8]), Lo: getUint64(a[8:16])},
		Lo: getUint32(a[16:20]),
	}
}

func ConvertH2048ToBloom(h *H2048) Bloom {
	var out Bloom
	if h == nil {
		return out
	}
	for i, part := range h.Parts {
		if part == nil {
			continue
		}
		copy(out[i*32:(i+1)*32], ConvertH256ToHash(part)[:])
	}
	return out
}

func ConvertBloomToH2048(b Bloom) *H2048 {
	var out H2048
	for i := 0; i < 8; i++ {
		var h Hash
		copy(h[:], b[i*32:(i+1)*32])
		out.Parts[i] = ConvertHashToH256(h)
	}
	return &out
}

func ConvertH256ToUint256Int(h *H256) *uint256.Int {
	hash := ConvertH256ToHash(h)
	return new(uint256.Int).SetBytes(hash[:])
}

func ConvertUint256IntToH256(v *uint256.Int) *H256 {
	if v == nil {
		return ConvertHashToH256(Hash{})
	}
	var b [32]byte
	v.WriteToSlice(b[:])
	var h Hash
	copy(h[:], b[:])
	return ConvertHashToH256(h)
}

func ConvertH256ToBigInt(h *H256) *big.Int {
	return ConvertH256ToUint256Int(h).ToBig()
}

func putUint64(dst []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}

func getUint64(src []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(src[i])
	}
	return v
}

func putUint32(dst []byte, v uint32) {
	for i := 3; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}

func getUint32(src []byte) uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(src[i])
	}
	return v
}
