package cacheddb

import (
	"testing"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
	"github.com/erigontech/rpcgate/kvcache"
)

type fakeTx struct {
	viewID uint64
	tables map[string]map[string][]byte
}

func newFakeTx(viewID uint64) *fakeTx {
	return &fakeTx{viewID: viewID, tables: map[string]map[string][]byte{}}
}

func (f *fakeTx) set(table string, key, val []byte) {
	if f.tables[table] == nil {
		f.tables[table] = map[string][]byte{}
	}
	f.tables[table][string(key)] = val
}

func (f *fakeTx) Get(table string, key []byte) ([]byte, []byte, error) {
	v, ok := f.tables[table][string(key)]
	if !ok {
		return nil, nil, nil
	}
	return key, v, nil
}
func (f *fakeTx) GetOne(table string, key []byte) ([]byte, error) {
	return f.tables[table][string(key)], nil
}
func (f *fakeTx) GetBothRange(table string, key, subkey []byte) ([]byte, error) { return nil, nil }
func (f *fakeTx) Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error {
	return nil
}
func (f *fakeTx) ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error {
	return nil
}
func (f *fakeTx) ViewID() uint64                                       { return f.viewID }
func (f *fakeTx) Cursor(table string) (kv.Cursor, error)               { return nil, nil }
func (f *fakeTx) CursorDupSort(table string) (kv.CursorDupSort, error) { return nil, nil }
func (f *fakeTx) Rollback()                                            {}

var _ kv.Tx = (*fakeTx)(nil)

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestReaderRoutesThroughCacheWhenBoundToTip(t *testing.T) {
	cache := kvcache.New(kvcache.DefaultConfig())
	a := addr(0x01)
	cache.OnNewBlock(&remote.StateChangeBatch{
		StateVersionID: 1,
		ChangeBatch: []remote.StateChange{{
			BlockHeight: 10,
			Changes: []remote.AccountChange{{
				Address: a,
				Kind:    remote.ChangeUpsert,
				Data:    []byte("account-data"),
			}},
		}},
	})

	tx := newFakeTx(1)
	tx.set(kv.PlainState, kv.AccountKey(a), []byte("from-tx-not-cache"))

	r := New(tx, cache, 10, 10, false)
	v, err := r.GetOne(kv.PlainState, kv.AccountKey(a))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != "account-data" {
		t.Fatalf("expected cache hit, got %q", v)
	}
}

func TestReaderFallsThroughToTxWhenNotBoundToTip(t *testing.T) {
	cache := kvcache.New(kvcache.DefaultConfig())
	tx := newFakeTx(1)
	a := addr(0x02)
	tx.set(kv.PlainState, kv.AccountKey(a), []byte("historical-value"))

	r := New(tx, cache, 5, 10, false)
	v, err := r.GetOne(kv.PlainState, kv.AccountKey(a))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != "historical-value" {
		t.Fatalf("expected tx fallthrough, got %q", v)
	}
}

func TestReaderFallsThroughWhenRequestIsByHash(t *testing.T) {
	cache := kvcache.New(kvcache.DefaultConfig())
	tx := newFakeTx(1)
	a := addr(0x03)
	tx.set(kv.PlainState, kv.AccountKey(a), []byte("by-hash-value"))

	r := New(tx, cache, 10, 10, true)
	v, err := r.GetOne(kv.PlainState, kv.AccountKey(a))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != "by-hash-value" {
		t.Fatalf("expected tx fallthrough for hash-addressed request, got %q", v)
	}
}

func TestReaderOtherTablesAlwaysHitTx(t *testing.T) {
	cache := kvcache.New(kvcache.DefaultConfig())
	tx := newFakeTx(1)
	tx.set(kv.Headers, []byte("k"), []byte("header-bytes"))

	r := New(tx, cache, 10, 10, false)
	v, err := r.GetOne(kv.Headers, []byte("k"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != "header-bytes" {
		t.Fatalf("expected tx value for non-cacheable table, got %q", v)
	}
}
