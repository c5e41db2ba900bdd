package rawdb

import (
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
)

// DecodeBody decodes a stored block body: [base-tx-id, tx-amount, uncles].
func DecodeBody(raw []byte) (*Body, error) {
	items, err := DecodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("rawdb: body decode failed: %w", err)
	}
	if len(items) != 3 {
		return nil, fmt.Errorf("rawdb: body decode failed: got %d fields, want 3", len(items))
	}
	body := &Body{
		BaseTxID: items[0].Uint64(),
		TxAmount: uint32(items[1].Uint64()),
	}
	for _, u := range items[2].List {
		header, err := decodeHeaderItems(u.List)
		if err != nil {
			return nil, fmt.Errorf("rawdb: body decode failed: uncle header: %w", err)
		}
		body.Uncles = append(body.Uncles, *header)
	}
	return body, nil
}

// ReadBody reads and decodes the body at (number, hash).
func ReadBody(tx kv.Tx, number uint64, hash types.Hash) (*Body, error) {
	raw, err := ReadBodyRLP(tx, number, hash)
	if err != nil {
		return nil, err
	}
	return DecodeBody(raw)
}
