package remoteclients

import (
	"context"
	"testing"

	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

type fakeTxpoolClient struct{}

func (f *fakeTxpoolClient) Add(ctx context.Context, in *txpool.AddRequest, opts ...grpc.CallOption) (*txpool.AddReply, error) {
	results := make([]txpool.ImportResult, len(in.RlpTxs))
	for i := range results {
		results[i] = txpool.ImportSuccess
	}
	return &txpool.AddReply{Imported: results}, nil
}
func (f *fakeTxpoolClient) Transactions(ctx context.Context, in *txpool.TransactionsRequest, opts ...grpc.CallOption) (*txpool.TransactionsReply, error) {
	out := make([][]byte, len(in.Hashes))
	for i := range in.Hashes {
		out[i] = []byte("rlp")
	}
	return &txpool.TransactionsReply{RlpTxs: out}, nil
}
func (f *fakeTxpoolClient) Nonce(ctx context.Context, in *txpool.NonceRequest, opts ...grpc.CallOption) (*txpool.NonceReply, error) {
	return &txpool.NonceReply{Found: true, Nonce: 7}, nil
}
func (f *fakeTxpoolClient) Status(ctx context.Context, in *txpool.StatusRequest, opts ...grpc.CallOption) (*txpool.StatusReply, error) {
	return &txpool.StatusReply{PendingCount: 3, QueuedCount: 1}, nil
}
func (f *fakeTxpoolClient) All(ctx context.Context, in *txpool.AllRequest, opts ...grpc.CallOption) (*txpool.AllReply, error) {
	return &txpool.AllReply{Txs: []txpool.PoolTransaction{{Status: txpool.TxPending, RlpTx: []byte("rlp")}}}, nil
}

var _ txpool.TxpoolClient = (*fakeTxpoolClient)(nil)

func TestTxpoolAddReturnsOneResultPerInput(t *testing.T) {
	p := NewTxpool(&fakeTxpoolClient{})
	results, err := p.Add(context.Background(), [][]byte{{0x01}, {0x02}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestTxpoolNonce(t *testing.T) {
	p := NewTxpool(&fakeTxpoolClient{})
	nonce, found, err := p.Nonce(context.Background(), types.Address{})
	if err != nil || !found || nonce != 7 {
		t.Fatalf("nonce: %v found=%v nonce=%d", err, found, nonce)
	}
}

func TestTxpoolStatusAndContent(t *testing.T) {
	p := NewTxpool(&fakeTxpoolClient{})
	status, err := p.Status(context.Background())
	if err != nil || status.PendingCount != 3 {
		t.Fatalf("status: %v %+v", err, status)
	}
	txs, err := p.Content(context.Background())
	if err != nil || len(txs) != 1 {
		t.Fatalf("content: %v %+v", err, txs)
	}
}
