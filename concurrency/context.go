// Package concurrency implements the per-connection execution context and
// the fixed-size round-robin pool of contexts that back the gateway's
// request handlers, grounded in the teacher's one-reactor-per-thread
// design and adapted to Go goroutines plus a single shared gRPC connection.
package concurrency

import (
	"context"
	"runtime"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/kvcache"
	"github.com/erigontech/rpcgate/log"
	"github.com/erigontech/rpcgate/rawdb"
	"github.com/erigontech/rpcgate/remotedb"
	"github.com/erigontech/rpcgate/remotedb/splitcursor"
)

// Clients bundles the four memoized service stubs a Context needs. Every
// Context in a pool is handed the same Clients value: they are generated
// (in a real deployment) from one shared *grpc.ClientConn, exactly as the
// teacher's rpcdaemon hands the same connection's stubs to every worker.
type Clients struct {
	KV      remote.KVClient
	Backend remote.ETHBACKENDClient
	Txpool  txpool.TxpoolClient
	Mining  txpool.MiningClient
}

// Context bundles everything one reactor slot needs to serve requests: its
// own cancelable lifetime, the shared service clients, the shared
// coherent-state cache, and a shared block-by-hash LRU. Multiple Contexts
// in a pool share the clients and the cache; only the cancellation scope
// is per-Context.
type Context struct {
	ctx    context.Context
	cancel context.CancelFunc

	Clients

	Cache      *kvcache.Cache
	BlockCache *rawdb.BlockCache

	logger log.Logger
}

// NewContext builds a Context sharing clients, cache, and blockCache with
// its siblings in a pool, deriving its own cancelable lifetime from parent.
func NewContext(parent context.Context, clients Clients, cache *kvcache.Cache, blockCache *rawdb.BlockCache, logger log.Logger) *Context {
	ctx, cancel := context.WithCancel(parent)
	return &Context{
		ctx:        ctx,
		cancel:     cancel,
		Clients:    clients,
		Cache:      cache,
		BlockCache: blockCache,
		logger:     logger,
	}
}

func (c *Context) Done() <-chan struct{} { return c.ctx.Done() }

func (c *Context) Cancel() { c.cancel() }

// BeginRo opens a new read-only remote transaction against this Context's
// shared connection.
func (c *Context) BeginRo(ctx context.Context) (*remotedb.Tx, error) {
	return remotedb.Open(ctx, c.KV)
}

// NewSplitCursor is a convenience re-export so callers that hold a Context
// don't need a second import for the composite-key cursor helper.
var NewSplitCursor = splitcursor.New

// RunPinned runs fn on a goroutine pinned to its own OS thread for its
// entire lifetime, mirroring the one-thread-per-reactor model of the
// teacher's single-threaded loop variant (and erigon-lib/kv/mdbx's
// goroutine pinning for MDBX read-only transactions).
func RunPinned(fn func()) {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		fn()
	}()
}
