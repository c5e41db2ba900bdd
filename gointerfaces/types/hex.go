package types

import (
	"encoding/hex"
	"fmt"
)

// Hash/Address/Bloom marshal to and from the "0x"-prefixed hex strings the
// JSON-RPC wire protocol uses everywhere (spec.md §6), matching
// go-ethereum/Erigon's common.Hash/common.Address hex codec. The gRPC
// wire types (H256/H160/H2048) are a separate, fixed-width-message
// encoding used only on the remote-KV/backend connection; these methods
// apply only at the JSON-RPC boundary.

func (h Hash) MarshalText() ([]byte, error) { return marshalHex(h[:]), nil }

func (h *Hash) UnmarshalText(text []byte) error {
	b, err := unmarshalHex(text, HashLength)
	if err != nil {
		return fmt.Errorf("invalid hash: %w", err)
	}
	copy(h[:], b)
	return nil
}

func (a Address) MarshalText() ([]byte, error) { return marshalHex(a[:]), nil }

func (a *Address) UnmarshalText(text []byte) error {
	b, err := unmarshalHex(text, AddressLength)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	copy(a[:], b)
	return nil
}

func (b Bloom) MarshalText() ([]byte, error) { return marshalHex(b[:]), nil }

func (b *Bloom) UnmarshalText(text []byte) error {
	raw, err := unmarshalHex(text, BloomLength)
	if err != nil {
		return fmt.Errorf("invalid bloom: %w", err)
	}
	copy(b[:], raw)
	return nil
}

func marshalHex(b []byte) []byte {
	out := make([]byte, 2+hex.EncodedLen(len(b)))
	out[0], out[1] = '0', 'x'
	hex.Encode(out[2:], b)
	return out
}

func unmarshalHex(text []byte, wantLen int) ([]byte, error) {
	s := string(text)
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return nil, fmt.Errorf("missing 0x prefix")
	}
	s = s[2:]
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != wantLen {
		return nil, fmt.Errorf("expected %d bytes, got %d", wantLen, len(b))
	}
	return b, nil
}
