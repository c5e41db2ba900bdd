package remoteclients

import (
	"context"
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

// Txpool is the Go-native surface this gateway calls for txpool_*-namespace
// methods (and eth_sendRawTransaction/eth_getTransactionByHash pending-pool
// lookups).
type Txpool struct {
	client txpool.TxpoolClient
}

func NewTxpool(client txpool.TxpoolClient) *Txpool {
	return &Txpool{client: client}
}

// Add submits raw transactions and returns one ImportResult per input, in
// order.
func (t *Txpool) Add(ctx context.Context, rlpTxs [][]byte) ([]txpool.ImportResult, error) {
	reply, err := t.client.Add(ctx, &txpool.AddRequest{RlpTxs: rlpTxs})
	if err != nil {
		return nil, fmt.Errorf("tx pool add: %w", err)
	}
	return reply.Imported, nil
}

// Transactions returns the raw RLP for each hash present in the pool; a
// missing hash yields a nil entry at its index.
func (t *Txpool) Transactions(ctx context.Context, hashes []types.Hash) ([][]byte, error) {
	reply, err := t.client.Transactions(ctx, &txpool.TransactionsRequest{Hashes: hashes})
	if err != nil {
		return nil, fmt.Errorf("tx pool transactions: %w", err)
	}
	return reply.RlpTxs, nil
}

// Nonce returns the highest pending nonce for address, if the pool tracks
// one.
func (t *Txpool) Nonce(ctx context.Context, address types.Address) (nonce uint64, found bool, err error) {
	reply, err := t.client.Nonce(ctx, &txpool.NonceRequest{Address: address})
	if err != nil {
		return 0, false, fmt.Errorf("tx pool nonce: %w", err)
	}
	return reply.Nonce, reply.Found, nil
}

// Status returns the pool's pending/queued/base-fee counts for
// txpool_status.
func (t *Txpool) Status(ctx context.Context) (*txpool.StatusReply, error) {
	reply, err := t.client.Status(ctx, &txpool.StatusRequest{})
	if err != nil {
		return nil, fmt.Errorf("tx pool status: %w", err)
	}
	return reply, nil
}

// Content returns every pooled transaction for txpool_content, grouped by
// Status on the caller's side.
func (t *Txpool) Content(ctx context.Context) ([]txpool.PoolTransaction, error) {
	reply, err := t.client.All(ctx, &txpool.AllRequest{})
	if err != nil {
		return nil, fmt.Errorf("tx pool content: %w", err)
	}
	return reply.Txs, nil
}
