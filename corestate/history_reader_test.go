package corestate

import (
	"bytes"
	"sort"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
)

// fakeGetter is a minimal in-memory kv.Getter, keyed by table then by the
// raw key bytes, sufficient to exercise HistoryReader's Walk-then-GetOne
// pattern without a real remote transaction.
type fakeGetter struct {
	data map[string]map[string][]byte
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{data: map[string]map[string][]byte{}}
}

func (f *fakeGetter) put(table string, key, val []byte) {
	if f.data[table] == nil {
		f.data[table] = map[string][]byte{}
	}
	f.data[table][string(key)] = val
}

func (f *fakeGetter) Get(table string, key []byte) ([]byte, []byte, error) {
	return nil, nil, nil
}

func (f *fakeGetter) GetOne(table string, key []byte) ([]byte, error) {
	return f.data[table][string(key)], nil
}

func (f *fakeGetter) GetBothRange(table string, key, subkey []byte) ([]byte, error) {
	return nil, nil
}

func (f *fakeGetter) Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error {
	prefixLen := fixedBits / 8
	var keys []string
	for k := range f.data[table] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(k) < prefixLen || !bytes.Equal([]byte(k)[:prefixLen], fromPrefix[:prefixLen]) {
			continue
		}
		if k < string(fromPrefix) {
			continue
		}
		cont, err := walker([]byte(k), f.data[table][k])
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

func (f *fakeGetter) ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error {
	return nil
}

var _ kv.Getter = (*fakeGetter)(nil)

func bitmapBytes(t *testing.T, values ...uint32) []byte {
	t.Helper()
	bm := roaring.New()
	bm.AddMany(values)
	buf, err := bm.ToBytes()
	if err != nil {
		t.Fatalf("encode bitmap: %v", err)
	}
	return buf
}

func TestReadAccountDataFallsThroughToLiveStateWithNoHistory(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0xAA
	g.put(kv.PlainState, kv.AccountKey(addr), []byte("live-account"))

	hr := NewHistoryReader(g, 100)
	v, err := hr.ReadAccountData(addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "live-account" {
		t.Fatalf("expected live-account, got %q", v)
	}
}

func TestReadAccountDataUsesHistoryWhenBitSetAtOrAfterBlock(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0xBB

	// shard stored at key address‖200 (the shard's own boundary block),
	// containing the bitmap of blocks at which the account changed.
	shardKey := kv.AccountHistoryKey(addr, 200)
	g.put(kv.AccountHistory, shardKey, bitmapBytes(t, 150, 180, 200))

	g.put(kv.PlainAccountChangeSet, kv.AccountChangeSetKey(180, addr), []byte("as-of-180"))
	g.put(kv.PlainState, kv.AccountKey(addr), []byte("live-account"))

	hr := NewHistoryReader(g, 170)
	v, err := hr.ReadAccountData(addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "as-of-180" {
		t.Fatalf("expected as-of-180 changeset value, got %q", v)
	}
}

func TestReadAccountDataNoBitAtOrAfterBlockUsesLiveState(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0xCC

	shardKey := kv.AccountHistoryKey(addr, 200)
	g.put(kv.AccountHistory, shardKey, bitmapBytes(t, 50, 90))
	g.put(kv.PlainState, kv.AccountKey(addr), []byte("live-account"))

	hr := NewHistoryReader(g, 150)
	v, err := hr.ReadAccountData(addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "live-account" {
		t.Fatalf("expected fallback to live state, got %q", v)
	}
}

func TestReadAccountStorageUsesHistory(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0xDD
	var loc types.Hash
	loc[0] = 0x01

	shardKey := kv.StorageHistoryKey(addr, loc, 300)
	g.put(kv.StorageHistory, shardKey, bitmapBytes(t, 250, 290))
	g.put(kv.PlainStorageChangeSet, kv.StorageChangeSetKey(290, addr, 1, loc), []byte("storage-as-of-290"))
	g.put(kv.PlainState, kv.StorageKey(addr, 1, loc), []byte("live-storage"))

	hr := NewHistoryReader(g, 260)
	v, err := hr.ReadAccountStorage(addr, 1, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "storage-as-of-290" {
		t.Fatalf("expected storage-as-of-290, got %q", v)
	}
}

func TestReadAccountCodeIgnoresBlock(t *testing.T) {
	g := newFakeGetter()
	var codeHash types.Hash
	codeHash[0] = 0xEE
	g.put(kv.Code, codeHash[:], []byte("bytecode"))

	hr := NewHistoryReader(g, 1)
	v, err := hr.ReadAccountCode(codeHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(v) != "bytecode" {
		t.Fatalf("expected bytecode, got %q", v)
	}
}

func TestReadContractCodeHashResolvesFromPlainContractCode(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0xFF
	var codeHash types.Hash
	codeHash[0] = 0x42
	g.put(kv.PlainContractCode, kv.PlainContractCodeKey(addr, 2), codeHash[:])

	hr := NewHistoryReader(g, 1)
	h, ok, err := hr.ReadContractCodeHash(addr, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a resolved code hash")
	}
	if h != codeHash {
		t.Fatalf("got %x, want %x", h, codeHash)
	}
}

func TestReadContractCodeHashMissingIsNotFound(t *testing.T) {
	g := newFakeGetter()
	var addr types.Address
	addr[0] = 0x99

	hr := NewHistoryReader(g, 1)
	_, ok, err := hr.ReadContractCodeHash(addr, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no code hash for an address/incarnation with no PlainContractCode row")
	}
}
