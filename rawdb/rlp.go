package rawdb

import (
	"errors"
	"fmt"
)

// Item is one decoded RLP item: either a raw byte string, or a list of
// sub-items. Headers/bodies/difficulty values are small enough that a
// simple decode-to-tree reader is adequate; this gateway's direct
// dependencies don't include an RLP library (see DESIGN.md), so this reader
// stays intentionally minimal rather than reimplementing a general-purpose
// codec.
type Item struct {
	IsList bool
	Bytes  []byte
	List   []Item
}

var errTruncatedRLP = errors.New("rawdb: truncated rlp")

// DecodeItem decodes exactly one RLP item from the front of b and returns
// the remaining bytes.
func DecodeItem(b []byte) (Item, []byte, error) {
	if len(b) == 0 {
		return Item{}, nil, errTruncatedRLP
	}
	tag := b[0]
	switch {
	case tag < 0x80:
		return Item{Bytes: b[:1]}, b[1:], nil

	case tag < 0xB8:
		size := int(tag - 0x80)
		if len(b) < 1+size {
			return Item{}, nil, errTruncatedRLP
		}
		return Item{Bytes: b[1 : 1+size]}, b[1+size:], nil

	case tag < 0xC0:
		lenOfLen := int(tag - 0xB7)
		if len(b) < 1+lenOfLen {
			return Item{}, nil, errTruncatedRLP
		}
		size := decodeLength(b[1 : 1+lenOfLen])
		start := 1 + lenOfLen
		if len(b) < start+size {
			return Item{}, nil, errTruncatedRLP
		}
		return Item{Bytes: b[start : start+size]}, b[start+size:], nil

	case tag < 0xF8:
		size := int(tag - 0xC0)
		if len(b) < 1+size {
			return Item{}, nil, errTruncatedRLP
		}
		items, err := decodeList(b[1 : 1+size])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{IsList: true, List: items}, b[1+size:], nil

	default:
		lenOfLen := int(tag - 0xF7)
		if len(b) < 1+lenOfLen {
			return Item{}, nil, errTruncatedRLP
		}
		size := decodeLength(b[1 : 1+lenOfLen])
		start := 1 + lenOfLen
		if len(b) < start+size {
			return Item{}, nil, errTruncatedRLP
		}
		items, err := decodeList(b[start : start+size])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{IsList: true, List: items}, b[start+size:], nil
	}
}

func decodeLength(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}

func decodeList(b []byte) ([]Item, error) {
	var items []Item
	for len(b) > 0 {
		item, rest, err := DecodeItem(b)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		b = rest
	}
	return items, nil
}

// DecodeList decodes b as a single top-level list and returns its elements.
func DecodeList(b []byte) ([]Item, error) {
	item, rest, err := DecodeItem(b)
	if err != nil {
		return nil, fmt.Errorf("rawdb: decode failed: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("rawdb: decode failed: %d trailing bytes", len(rest))
	}
	if !item.IsList {
		return nil, fmt.Errorf("rawdb: decode failed: expected list")
	}
	return item.List, nil
}

// Uint64 interprets a byte-string item as a big-endian unsigned integer.
func (it Item) Uint64() uint64 {
	var v uint64
	for _, c := range it.Bytes {
		v = v<<8 | uint64(c)
	}
	return v
}
