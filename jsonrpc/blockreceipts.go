package jsonrpc

import (
	"github.com/erigontech/rpcgate/corestate"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
	"github.com/erigontech/rpcgate/rawdb"
)

// blockReceipts assembles every field DeriveReceipts needs for one block:
// its canonical hash, the transaction RLPs and senders in order, and the
// stored raw receipts, then derives the per-transaction/per-log fields
// spec.md §4.8 requires.
func blockReceipts(tx kv.Tx, number uint64) ([]corestate.DerivedReceipt, []corestate.DerivedLog, error) {
	hash, err := rawdb.ReadCanonicalHash(tx, number)
	if err != nil {
		return nil, nil, err
	}
	body, err := rawdb.ReadBody(tx, number, hash)
	if err != nil {
		return nil, nil, err
	}
	senders, err := rawdb.ReadSenders(tx, number, hash)
	if err != nil {
		return nil, nil, err
	}
	receipts, err := rawdb.ReadReceipts(tx, number)
	if err != nil {
		return nil, nil, err
	}
	txRLPs := make([][]byte, body.TxAmount)
	for i := uint32(0); i < body.TxAmount; i++ {
		raw, err := rawdb.ReadTransactionRLP(tx, body.BaseTxID+uint64(i))
		if err != nil {
			return nil, nil, err
		}
		txRLPs[i] = raw
	}
	return corestate.DeriveReceipts(receipts, txRLPs, senders, hash, number)
}

// filterLogs matches a single derived log against an eth_getLogs-style
// address/topic filter. A nil/empty addresses list matches every address;
// each topics[i] is an OR-set matched positionally against log.Topics[i],
// a nil entry meaning "any topic in that position" (per the standard
// Ethereum JSON-RPC eth_getLogs filter semantics).
func filterLogs(l corestate.DerivedLog, addresses []types.Address, topics [][]types.Hash) bool {
	if len(addresses) > 0 {
		match := false
		for _, a := range addresses {
			if a == l.Address {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	if len(topics) > len(l.Topics) {
		return false
	}
	for i, set := range topics {
		if len(set) == 0 {
			continue
		}
		match := false
		for _, t := range set {
			if t == l.Topics[i] {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}
