// Package cacheddb is the cached-database facade (C8): a kv.Getter-shaped
// reader bound, once at construction, to a block identifier and an open
// transaction, consulting the coherent state cache for tip reads before
// falling through to the transaction. Grounded in spec.md §4.7 and the
// teacher's reduced kv.Tx-as-DatabaseReader convention.
package cacheddb

import (
	"github.com/erigontech/rpcgate/kv"
	"github.com/erigontech/rpcgate/kvcache"
	"github.com/erigontech/rpcgate/rawdb"
)

// Reader implements kv.Getter, consulting cache only when boundToTip is
// true and the table is PlainState or Code; every other read (and every
// read once not bound to tip) delegates straight to tx.
type Reader struct {
	tx         kv.Tx
	cache      *kvcache.Cache
	view       *kvcache.View // nil if not bound to tip or the cache missed
	boundToTip bool
}

var _ kv.Getter = (*Reader)(nil)

// New builds a Reader bound to requestedBlock against currentTip, resolved
// once and frozen for the facade's lifetime (spec.md §4.7).
func New(tx kv.Tx, cache *kvcache.Cache, requestedBlock, currentTip uint64, isHash bool) *Reader {
	boundToTip := !isHash && requestedBlock == currentTip
	r := &Reader{tx: tx, cache: cache, boundToTip: boundToTip}
	if boundToTip && cache != nil {
		r.view = cache.GetView(tx)
	}
	return r
}

// NewBoundToTip resolves tip from rawdb.ReadSyncStageProgress(tx, kv.StageExecution)
// and builds a Reader bound against it.
func NewBoundToTip(tx kv.Tx, cache *kvcache.Cache, requestedBlock uint64, isHash bool) (*Reader, error) {
	tip, err := rawdb.ReadSyncStageProgress(tx, kv.StageExecution)
	if err != nil {
		return nil, err
	}
	return New(tx, cache, requestedBlock, tip, isHash), nil
}

func (r *Reader) cacheable(table string) bool {
	return r.boundToTip && r.view != nil && (table == kv.PlainState || table == kv.Code)
}

// Get always delegates to the transaction: spec.md §4.7 only routes
// get_one through the cache.
func (r *Reader) Get(table string, key []byte) (k, v []byte, err error) {
	return r.tx.Get(table, key)
}

// GetOne consults the cache first when bound to tip and the table is
// cacheable; otherwise delegates straight to the transaction.
func (r *Reader) GetOne(table string, key []byte) ([]byte, error) {
	if !r.cacheable(table) {
		return r.tx.GetOne(table, key)
	}
	if table == kv.Code {
		return r.view.GetCode(key)
	}
	return r.view.Get(key)
}

func (r *Reader) GetBothRange(table string, key, subkey []byte) ([]byte, error) {
	return r.tx.GetBothRange(table, key, subkey)
}

func (r *Reader) Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error {
	return r.tx.Walk(table, fromPrefix, fixedBits, walker)
}

func (r *Reader) ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error {
	return r.tx.ForPrefix(table, prefix, walker)
}
