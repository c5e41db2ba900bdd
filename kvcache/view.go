package kvcache

import "github.com/erigontech/rpcgate/kv"

// View is a read-only handle bound to one resident root, returned by
// Cache.GetView. Get/GetCode implement the read-through semantics from
// spec.md §4.6: consult the root's cache, and on miss read through tx,
// populate the cache, and return the fetched value.
type View struct {
	cache *Cache
	root  *root
	tx    kv.Tx
}

// Get resolves a PlainState key (account or storage, per the composite-key
// builders in package kv), promoting on hit and populating on miss.
func (v *View) Get(key []byte) ([]byte, error) {
	k := string(key)

	v.cache.mu.Lock()
	if val, ok := v.root.state.get(k); ok {
		v.cache.mu.Unlock()
		v.cache.hits.Inc()
		return val, nil
	}
	v.cache.mu.Unlock()
	v.cache.misses.Inc()

	val, err := v.tx.GetOne(kv.PlainState, key)
	if err != nil {
		return nil, err
	}

	v.cache.mu.Lock()
	v.root.state.put(k, val)
	v.cache.mu.Unlock()
	return val, nil
}

// GetCode resolves contract bytecode by its Keccak-256 hash.
func (v *View) GetCode(hash []byte) ([]byte, error) {
	k := string(hash)

	v.cache.mu.Lock()
	if val, ok := v.root.code.get(k); ok {
		v.cache.mu.Unlock()
		v.cache.hits.Inc()
		return val, nil
	}
	v.cache.mu.Unlock()
	v.cache.misses.Inc()

	val, err := v.tx.GetOne(kv.Code, hash)
	if err != nil {
		return nil, err
	}

	v.cache.mu.Lock()
	v.root.code.put(k, val)
	v.cache.mu.Unlock()
	return val, nil
}
