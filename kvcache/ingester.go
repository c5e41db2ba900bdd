package kvcache

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/log"
)

// StateChangesIngester is the sole writer of a Cache: it subscribes to the
// remote node's StateChanges stream and feeds every batch to
// Cache.OnNewBlock, reconnecting with backoff on transport failure. Runs on
// its own context so cache updates never share a reactor with request
// handlers (spec.md §4.5).
type StateChangesIngester struct {
	cache  *Cache
	client remote.KVClient
	logger log.Logger
}

// NewStateChangesIngester builds an ingester feeding cache from client.
func NewStateChangesIngester(cache *Cache, client remote.KVClient, logger log.Logger) *StateChangesIngester {
	return &StateChangesIngester{cache: cache, client: client, logger: logger}
}

// Run subscribes and processes batches until ctx is cancelled, reconnecting
// with exponential backoff whenever the stream breaks.
func (ing *StateChangesIngester) Run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	for ctx.Err() == nil {
		if err := ing.runOnce(ctx); err != nil {
			ing.logger.Warn("state-changes stream disconnected", "err", err)
			wait := bo.NextBackOff()
			if wait == backoff.Stop {
				bo.Reset()
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		bo.Reset()
	}
}

func (ing *StateChangesIngester) runOnce(ctx context.Context) error {
	stream, err := ing.client.StateChanges(ctx, &remote.StateChangeRequest{WithStorage: ing.cache.cfg.WithStorage})
	if err != nil {
		return err
	}
	for {
		batch, err := stream.Recv()
		if err != nil {
			return err
		}
		ing.cache.OnNewBlock(batch)
	}
}
