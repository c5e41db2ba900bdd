package rawdb

import "fmt"

// DecodeHeader decodes an RLP-encoded block header. Malformed input is
// reported as a decode error per spec.md §7's "decode failed" taxonomy.
func DecodeHeader(raw []byte) (*Header, error) {
	items, err := DecodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("rawdb: header decode failed: %w", err)
	}
	return decodeHeaderItems(items)
}

func decodeHeaderItems(items []Item) (*Header, error) {
	if len(items) < 15 {
		return nil, fmt.Errorf("rawdb: header decode failed: got %d fields, want at least 15", len(items))
	}

	h := &Header{
		ParentHash:  hashOf(items[0]),
		UncleHash:   hashOf(items[1]),
		Coinbase:    addressOf(items[2]),
		Root:        hashOf(items[3]),
		TxHash:      hashOf(items[4]),
		ReceiptHash: hashOf(items[5]),
		Bloom:       bloomOf(items[6]),
		Difficulty:  items[7].Bytes,
		Number:      items[8].Uint64(),
		GasLimit:    items[9].Uint64(),
		GasUsed:     items[10].Uint64(),
		Time:        items[11].Uint64(),
		Extra:       items[12].Bytes,
		MixDigest:   hashOf(items[13]),
		Nonce:       items[14].Uint64(),
	}

	rest := items[15:]
	if len(rest) > 0 {
		h.BaseFee = rest[0].Bytes
		rest = rest[1:]
	}
	if len(rest) > 0 {
		wh := hashOf(rest[0])
		h.WithdrawalsHash = &wh
		rest = rest[1:]
	}
	if len(rest) > 0 {
		v := rest[0].Uint64()
		h.BlobGasUsed = &v
		rest = rest[1:]
	}
	if len(rest) > 0 {
		v := rest[0].Uint64()
		h.ExcessBlobGas = &v
		rest = rest[1:]
	}
	if len(rest) > 0 {
		pbr := hashOf(rest[0])
		h.ParentBeaconRoot = &pbr
	}

	return h, nil
}

func hashOf(it Item) (h [32]byte) {
	b := it.Bytes
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(h[32-len(b):], b)
	return h
}

func addressOf(it Item) (a [20]byte) {
	b := it.Bytes
	if len(b) > 20 {
		b = b[len(b)-20:]
	}
	copy(a[20-len(b):], b)
	return a
}

func bloomOf(it Item) (b [256]byte) {
	raw := it.Bytes
	if len(raw) > 256 {
		raw = raw[len(raw)-256:]
	}
	copy(b[256-len(raw):], raw)
	return b
}

// DecodeDifficulty decodes the RLP-encoded 256-bit difficulty value stored
// in the Difficulty table.
func DecodeDifficulty(raw []byte) ([]byte, error) {
	item, rest, err := DecodeItem(raw)
	if err != nil {
		return nil, fmt.Errorf("rawdb: difficulty decode failed: %w", err)
	}
	if len(rest) != 0 || item.IsList {
		return nil, fmt.Errorf("rawdb: difficulty decode failed: malformed item")
	}
	return item.Bytes, nil
}
