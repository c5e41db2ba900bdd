package concurrency

import (
	"context"
	"testing"
	"time"

	"github.com/erigontech/rpcgate/concurrency/waitstrategy"
	"github.com/erigontech/rpcgate/kvcache"
	"github.com/erigontech/rpcgate/log"
	"github.com/erigontech/rpcgate/rawdb"
)

func TestPoolNextRoundRobins(t *testing.T) {
	p := NewPool(context.Background(), 3, Clients{}, kvcache.New(kvcache.DefaultConfig()), rawdb.NewBlockCache(10), log.Nop())
	defer p.Stop()

	seen := map[*Context]int{}
	for i := 0; i < 9; i++ {
		seen[p.Next()]++
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct contexts visited, got %d", len(seen))
	}
	for c, count := range seen {
		if count != 3 {
			t.Fatalf("expected each context visited 3 times, got %d for %p", count, c)
		}
	}
}

func TestPoolStopCancelsEveryContext(t *testing.T) {
	p := NewPool(context.Background(), 2, Clients{}, kvcache.New(kvcache.DefaultConfig()), rawdb.NewBlockCache(10), log.Nop())
	c0 := p.Next()
	c1 := p.Next()
	p.Stop()

	select {
	case <-c0.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected context 0 cancelled")
	}
	select {
	case <-c1.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected context 1 cancelled")
	}
}

func TestRunWorkersDrivesWaitStrategyIdle(t *testing.T) {
	p := NewPool(context.Background(), 1, Clients{}, kvcache.New(kvcache.DefaultConfig()), rawdb.NewBlockCache(10), log.Nop())
	polls := make(chan struct{}, 10)
	p.RunWorkers(waitstrategy.ModeBusySpin, func(c *Context) int {
		select {
		case polls <- struct{}{}:
		default:
		}
		return 0
	})
	defer p.Stop()

	select {
	case <-polls:
	case <-time.After(time.Second):
		t.Fatalf("expected at least one poll tick")
	}
}
