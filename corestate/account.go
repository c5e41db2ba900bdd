package corestate

import (
	"encoding/binary"
	"fmt"

	"github.com/erigontech/rpcgate/common/crypto"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

// Keccak256Empty is the hash of the empty byte string, the code hash every
// externally owned account carries.
func Keccak256Empty() [32]byte {
	return crypto.Keccak256()
}

// Account is the decoded form of one PlainState account record.
type Account struct {
	Nonce       uint64
	Balance     []byte // big-endian, variable width, nil means zero
	Incarnation uint64
	CodeHash    types.Hash
}

// DecodeAccount parses erigon's compact account-for-storage encoding: a
// leading fieldset byte whose low nibble flags which of
// nonce/balance/incarnation/codehash are present, each present field then
// stored length-prefixed in that fixed order. An empty encoding (the
// account has no PlainState row) decodes to the zero Account with no
// error, matching ReadAccountData's "nil means account did not exist"
// convention at the caller.
func DecodeAccount(enc []byte) (*Account, error) {
	var a Account
	if len(enc) == 0 {
		return &a, nil
	}
	fieldSet := enc[0]
	pos := 1

	readField := func(name string) ([]byte, error) {
		if pos >= len(enc) {
			return nil, fmt.Errorf("account encoding truncated reading %s length", name)
		}
		n := int(enc[pos])
		pos++
		if pos+n > len(enc) {
			return nil, fmt.Errorf("account encoding truncated reading %s value", name)
		}
		v := enc[pos : pos+n]
		pos += n
		return v, nil
	}

	if fieldSet&1 != 0 {
		v, err := readField("nonce")
		if err != nil {
			return nil, err
		}
		a.Nonce = decodeBigEndianUint64(v)
	}
	if fieldSet&2 != 0 {
		v, err := readField("balance")
		if err != nil {
			return nil, err
		}
		a.Balance = append([]byte(nil), v...)
	}
	if fieldSet&4 != 0 {
		v, err := readField("incarnation")
		if err != nil {
			return nil, err
		}
		a.Incarnation = decodeBigEndianUint64(v)
	}
	if fieldSet&8 != 0 {
		v, err := readField("codeHash")
		if err != nil {
			return nil, err
		}
		if len(v) != len(a.CodeHash) {
			return nil, fmt.Errorf("account encoding: code hash is %d bytes, want %d", len(v), len(a.CodeHash))
		}
		copy(a.CodeHash[:], v)
	}
	return &a, nil
}

func decodeBigEndianUint64(b []byte) uint64 {
	var padded [8]byte
	copy(padded[8-len(b):], b)
	return binary.BigEndian.Uint64(padded[:])
}
