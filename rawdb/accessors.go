// Package rawdb implements the read-only block/receipt/chain accessors
// (C10): each maps a well-defined key derivation (spec.md §6's table
// schema) onto a decoded structure, distinguishing "empty value" (missing
// data) from "decode failed" (malformed data) per spec.md §7. Grounded in
// Erigon's core/rawdb naming; the blob-gas helpers in blobgas.go are
// adapted from the teacher's consensus/misc/eip4844.go (not kept in this
// repository).
package rawdb

import (
	"encoding/binary"
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
)

// ErrNotFound marks an "empty value" result: the key schema is satisfied
// but no entry is stored.
type ErrNotFound struct{ What string }

func (e ErrNotFound) Error() string { return "rawdb: not found: " + e.What }

func numberKey(number uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, number)
	return k
}

// ReadCanonicalHash returns the canonical block hash at number.
func ReadCanonicalHash(tx kv.Tx, number uint64) (types.Hash, error) {
	v, err := tx.GetOne(kv.CanonicalHashes, numberKey(number))
	if err != nil {
		return types.Hash{}, err
	}
	if len(v) == 0 {
		return types.Hash{}, ErrNotFound{What: fmt.Sprintf("canonical hash at %d", number)}
	}
	var h types.Hash
	copy(h[:], v)
	return h, nil
}

// ReadHeaderNumber resolves a block hash to its number, false if absent.
func ReadHeaderNumber(tx kv.Tx, hash types.Hash) (uint64, bool, error) {
	v, err := tx.GetOne(kv.HeaderNumbers, hash[:])
	if err != nil {
		return 0, false, err
	}
	if len(v) != 8 {
		return 0, false, nil
	}
	return binary.BigEndian.Uint64(v), true, nil
}

// ReadTxLookupEntry resolves a transaction hash to the number of the block
// that contains it, false if the hash is unknown.
func ReadTxLookupEntry(tx kv.Tx, txHash types.Hash) (uint64, bool, error) {
	v, err := tx.GetOne(kv.TxLookup, txHash[:])
	if err != nil {
		return 0, false, err
	}
	if len(v) != 8 {
		return 0, false, nil
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func headerBodyKey(number uint64, hash types.Hash) []byte {
	k := make([]byte, 8+32)
	binary.BigEndian.PutUint64(k, number)
	copy(k[8:], hash[:])
	return k
}

// ReadHeaderRLP returns the raw RLP-encoded header at (number, hash).
func ReadHeaderRLP(tx kv.Tx, number uint64, hash types.Hash) ([]byte, error) {
	v, err := tx.GetOne(kv.Headers, headerBodyKey(number, hash))
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("header at %d/%x", number, hash)}
	}
	return v, nil
}

// ReadHeader reads and decodes the header at (number, hash).
func ReadHeader(tx kv.Tx, number uint64, hash types.Hash) (*Header, error) {
	raw, err := ReadHeaderRLP(tx, number, hash)
	if err != nil {
		return nil, err
	}
	return DecodeHeader(raw)
}

// ReadDifficulty reads and decodes the RLP difficulty at (number, hash).
func ReadDifficulty(tx kv.Tx, number uint64, hash types.Hash) ([]byte, error) {
	v, err := tx.GetOne(kv.Difficulty, headerBodyKey(number, hash))
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("difficulty at %d/%x", number, hash)}
	}
	return DecodeDifficulty(v)
}

// ReadBodyRLP returns the raw stored body at (number, hash).
func ReadBodyRLP(tx kv.Tx, number uint64, hash types.Hash) ([]byte, error) {
	v, err := tx.GetOne(kv.BlockBodies, headerBodyKey(number, hash))
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("body at %d/%x", number, hash)}
	}
	return v, nil
}

// ReadSenders returns the per-transaction sender addresses stored
// alongside the block body, in transaction order.
func ReadSenders(tx kv.Tx, number uint64, hash types.Hash) ([]types.Address, error) {
	v, err := tx.GetOne(kv.Senders, headerBodyKey(number, hash))
	if err != nil {
		return nil, err
	}
	if len(v)%types.AddressLength != 0 {
		return nil, fmt.Errorf("rawdb: senders decode failed: length %d not a multiple of %d", len(v), types.AddressLength)
	}
	out := make([]types.Address, len(v)/types.AddressLength)
	for i := range out {
		copy(out[i][:], v[i*types.AddressLength:(i+1)*types.AddressLength])
	}
	return out, nil
}

// ReadTransactionRLP returns the raw RLP transaction stored under txID.
func ReadTransactionRLP(tx kv.Tx, txID uint64) ([]byte, error) {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, txID)
	v, err := tx.GetOne(kv.EthTx, k)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("transaction %d", txID)}
	}
	return v, nil
}

// ReadSyncStageProgress returns the highest block number a named sync stage
// has processed, 0 if the stage has not run yet. Accepts any kv.Getter so
// callers bound to the cached-database facade (cacheddb.Reader) can resolve
// the tip without a full kv.Tx.
func ReadSyncStageProgress(getter kv.Getter, stage string) (uint64, error) {
	v, err := getter.GetOne(kv.SyncStageProgress, []byte(stage))
	if err != nil {
		return 0, err
	}
	if len(v) != 8 {
		return 0, nil
	}
	return binary.BigEndian.Uint64(v), nil
}

// ReadChainConfig returns the raw JSON chain config stored under genesisHash.
func ReadChainConfig(tx kv.Tx, genesisHash types.Hash) ([]byte, error) {
	v, err := tx.GetOne(kv.Config, genesisHash[:])
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("chain config for genesis %x", genesisHash)}
	}
	return v, nil
}
