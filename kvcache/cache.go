package kvcache

import (
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/erigontech/rpcgate/common/crypto"
	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/kv"
)

// Cache is the coherent state cache (C7): a bounded set of view roots kept
// current by Cache.OnNewBlock, consulted by handlers through GetView.
// All mutation happens under mu (the ingester is the only writer); reads
// take the same lock, matching the single-lock model in spec.md §4.6.
type Cache struct {
	cfg   Config
	mu    sync.Mutex
	cond  *sync.Cond
	roots map[uint64]*root
	order []uint64 // insertion order, oldest first

	hits      *metrics.Counter
	misses    *metrics.Counter
	evictions *metrics.Counter
}

// New builds a Cache per cfg. Metrics are registered under the cfg.Label.
func New(cfg Config) *Cache {
	c := &Cache{
		cfg:       cfg,
		roots:     make(map[uint64]*root),
		hits:      metrics.NewCounter(`kvcache_hits{label="` + cfg.Label + `"}`),
		misses:    metrics.NewCounter(`kvcache_misses{label="` + cfg.Label + `"}`),
		evictions: metrics.NewCounter(`kvcache_evictions{label="` + cfg.Label + `"}`),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// GetView resolves the root matching tx's view id, waiting up to
// cfg.NewBlockTimeout for it to appear if the ingester hasn't caught up yet.
// A nil return means the caller must read through tx directly.
func (c *Cache) GetView(tx kv.Tx) *View {
	viewID := tx.ViewID()
	deadline := time.Now().Add(c.cfg.NewBlockTimeout)

	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if r, ok := c.roots[viewID]; ok && r.isReady() {
			return &View{cache: c, root: r, tx: tx}
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		c.waitWithTimeoutLocked(remaining)
	}
}

// waitWithTimeoutLocked blocks on c.cond until woken by a new root or by the
// timer, whichever comes first. Must be called with c.mu held; cond.Wait
// releases it for the duration of the wait.
func (c *Cache) waitWithTimeoutLocked(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()
	c.cond.Wait()
}

// OnNewBlock applies one StateChangeBatch, producing a new root that
// extends the current newest root (if any) with the batch's diffs, evicting
// roots beyond cfg.MaxViews. The new root is ready the instant this returns.
func (c *Cache) OnNewBlock(batch *remote.StateChangeBatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nr := newRoot(batch.StateVersionID, c.cfg.MaxStateKeys, c.cfg.MaxCodeKeys)
	if prev := c.latestRootLocked(); prev != nil {
		nr.state = prev.state.clone()
		nr.code = prev.code.clone()
	}

	for _, sc := range batch.ChangeBatch {
		for _, ac := range sc.Changes {
			c.applyAccountChangeLocked(nr, ac)
		}
	}

	c.roots[nr.viewID] = nr
	c.order = append(c.order, nr.viewID)
	c.evictViewsOverCapLocked()
	nr.markReady()
	c.cond.Broadcast()
}

func (c *Cache) latestRootLocked() *root {
	if len(c.order) == 0 {
		return nil
	}
	return c.roots[c.order[len(c.order)-1]]
}

func (c *Cache) applyAccountChangeLocked(r *root, ac remote.AccountChange) {
	key := string(kv.AccountKey(ac.Address))
	switch ac.Kind {
	case remote.ChangeUpsert:
		r.state.put(key, ac.Data)
		c.applyStorageLocked(r, ac)
	case remote.ChangeUpsertCode:
		r.state.put(key, ac.Data)
		hash := crypto.Keccak256(ac.Code)
		r.code.put(string(hash[:]), ac.Code)
		c.applyStorageLocked(r, ac)
	case remote.ChangeDelete:
		r.state.put(key, []byte{}) // tombstone, not a miss
	case remote.ChangeStorageOnly:
		c.applyStorageLocked(r, ac)
	case remote.ChangeCodeOnly:
		hash := crypto.Keccak256(ac.Code)
		r.code.put(string(hash[:]), ac.Code)
	}
}

func (c *Cache) applyStorageLocked(r *root, ac remote.AccountChange) {
	if !c.cfg.WithStorage {
		return
	}
	for _, sc := range ac.Storage {
		key := kv.StorageKey(ac.Address, ac.Incarnation, sc.LocationHash)
		r.state.put(string(key), sc.Value)
	}
}

func (c *Cache) evictViewsOverCapLocked() {
	for len(c.order) > c.cfg.MaxViews {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.roots, oldest)
		c.evictions.Inc()
	}
}

// Size returns the total resident state+code entries across all roots, for metrics.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, r := range c.roots {
		total += r.state.len() + r.code.len()
	}
	return total
}
