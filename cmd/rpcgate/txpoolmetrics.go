package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"

	cc "github.com/erigontech/rpcgate/concurrency"
	"github.com/erigontech/rpcgate/gointerfaces/txpool"
)

// txpoolGauges exports the remote node's tx-pool status as Prometheus
// gauges, refreshed by one poll call per ContextPool.RunWorkers tick per
// spec.md §8's observability scenario and Erigon's txpoolcfg status
// metrics. The gauge callbacks read the atomics poll writes, so scraping
// never blocks on the gRPC round trip.
type txpoolGauges struct {
	pending atomic.Uint32
	queued  atomic.Uint32
	baseFee atomic.Uint32
}

func newTxpoolGauges() *txpoolGauges {
	g := &txpoolGauges{}
	metrics.NewGauge(`txpool_pending`, func() float64 { return float64(g.pending.Load()) })
	metrics.NewGauge(`txpool_queued`, func() float64 { return float64(g.queued.Load()) })
	metrics.NewGauge(`txpool_basefee`, func() float64 { return float64(g.baseFee.Load()) })
	return g
}

// poll fetches one tx-pool status snapshot through c's stub and stores it,
// returning the total count (0 when the call fails), so the caller's
// wait.Strategy backs off only while that count is zero. Matches
// ContextPool.RunWorkers' poll contract: one non-blocking unit of work,
// no long-lived state held across calls.
func (g *txpoolGauges) poll(c *cc.Context) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := c.Txpool.Status(ctx, &txpool.StatusRequest{})
	if err != nil {
		return 0
	}
	g.pending.Store(status.PendingCount)
	g.queued.Store(status.QueuedCount)
	g.baseFee.Store(status.BaseFeeCount)
	return int(status.PendingCount + status.QueuedCount + status.BaseFeeCount)
}
