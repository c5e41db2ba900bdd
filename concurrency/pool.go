package concurrency

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/erigontech/rpcgate/concurrency/waitstrategy"
	"github.com/erigontech/rpcgate/kvcache"
	"github.com/erigontech/rpcgate/log"
	"github.com/erigontech/rpcgate/rawdb"
)

// ContextPool is a fixed-size round-robin collection of Contexts. Once
// RunWorkers is called, each Context also has its own pinned goroutine
// idling per the configured waitstrategy.Mode. The pool does not run the
// state-changes ingester; that loop is started separately.
type ContextPool struct {
	contexts []*Context
	next     atomic.Uint64
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewPool builds size Contexts sharing clients, cache, and blockCache,
// deriving every Context's lifetime from a single pool-wide cancelable
// parent context.
func NewPool(parent context.Context, size int, clients Clients, cache *kvcache.Cache, blockCache *rawdb.BlockCache, logger log.Logger) *ContextPool {
	poolCtx, cancel := context.WithCancel(parent)
	p := &ContextPool{cancel: cancel}
	p.contexts = make([]*Context, size)
	for i := 0; i < size; i++ {
		p.contexts[i] = NewContext(poolCtx, clients, cache, blockCache, logger)
	}
	return p
}

// Next returns the next Context in round-robin order.
func (p *ContextPool) Next() *Context {
	i := p.next.Add(1) - 1
	return p.contexts[i%uint64(len(p.contexts))]
}

// Len reports the pool size.
func (p *ContextPool) Len() int { return len(p.contexts) }

// RunWorkers starts one pinned-goroutine idle loop per Context, each
// calling poll once per tick and feeding the result count to its
// wait.Strategy, until the pool is stopped. mode selects the strategy
// shared by every worker; poll should perform one non-blocking unit of
// work (e.g. drain a completion queue) and return how many items it
// processed.
func (p *ContextPool) RunWorkers(mode waitstrategy.Mode, poll func(c *Context) int) {
	for _, c := range p.contexts {
		c := c
		strategy := waitstrategy.New(mode)
		p.wg.Add(1)
		RunPinned(func() {
			defer p.wg.Done()
			for {
				select {
				case <-c.Done():
					return
				default:
				}
				n := poll(c)
				strategy.Idle(n)
			}
		})
	}
}

// Stop cancels every Context in the pool.
func (p *ContextPool) Stop() {
	p.cancel()
}

// Join blocks until every pinned goroutine started by RunWorkers has
// returned, matching silkrpc's context_pool.hpp join() in the teacher's
// original source: Stop alone only signals shutdown, Join waits for it to
// actually finish. Safe to call whether or not RunWorkers was ever used.
func (p *ContextPool) Join() {
	p.wg.Wait()
}
