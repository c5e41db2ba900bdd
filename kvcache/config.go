// Package kvcache is the coherent state cache: a bounded set of per-view
// roots kept current by a background ingester consuming the remote node's
// StateChanges stream. Grounded in the teacher's own package naming
// ("github.com/ledgerwatch/erigon-lib/kv/kvcache", seen wired into
// jsonrpc.NewBaseApi in other_examples/2373e8a0_..._engine_server.go.go).
package kvcache

import "time"

// Config mirrors the tunables spec.md §4.6 lists for the coherent cache.
type Config struct {
	MaxViews        int           // hard cap on retained view roots
	WithStorage     bool          // apply storage sub-changes into the cache
	MaxStateKeys    int           // LRU cap on account/storage entries per root
	MaxCodeKeys     int           // LRU cap on code entries per root
	NewBlockTimeout time.Duration // how long GetView waits for a matching root
	Label           string        // metrics label only
}

// DefaultConfig matches the defaults table in spec.md §4.6.
func DefaultConfig() Config {
	return Config{
		MaxViews:        5,
		WithStorage:     true,
		MaxStateKeys:    1_000_000,
		MaxCodeKeys:     10_000,
		NewBlockTimeout: 50 * time.Millisecond,
		Label:           "default",
	}
}
