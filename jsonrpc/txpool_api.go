package jsonrpc

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/remoteclients"
	"github.com/erigontech/rpcgate/rpc"
)

// TxpoolNamespace returns the txpool_* handler table, backed by
// remoteclients.Txpool's Status/Content calls.
func (a *API) TxpoolNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "txpool",
		Methods: map[string]rpc.HandlerFunc{
			"txpool_status":  a.txpoolStatus,
			"txpool_content": a.txpoolContent,
		},
	}
}

func (a *API) txpoolStatus(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	status, err := remoteclients.NewTxpool(rctx.Txpool).Status(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	return map[string]interface{}{
		"pending": hexutilUint64(uint64(status.PendingCount)),
		"queued":  hexutilUint64(uint64(status.QueuedCount)),
		"baseFee": hexutilUint64(uint64(status.BaseFeeCount)),
	}, nil
}

func (a *API) txpoolContent(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	txs, err := remoteclients.NewTxpool(rctx.Txpool).Content(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	pending := map[string][]string{}
	queued := map[string][]string{}
	for _, tx := range txs {
		bucket := pending
		if tx.Status == txpool.TxQueued {
			bucket = queued
		}
		sender := hexutilBytes(tx.Sender[:])
		bucket[sender] = append(bucket[sender], hexutilBytes(tx.RlpTx))
	}
	return map[string]interface{}{"pending": pending, "queued": queued}, nil
}
