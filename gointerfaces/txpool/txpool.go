// Package txpool holds the wire messages and client interfaces for the
// tx-pool and mining gRPC services, hand-approximated the same way
// gointerfaces/remote is (see that package's doc comment).
package txpool

import (
	"context"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

type AddRequest struct{ RlpTxs [][]byte }
type AddReply struct{ Imported []ImportResult }

type ImportResult int32

const (
	ImportSuccess ImportResult = iota
	ImportAlreadyExists
	ImportFeeTooLow
	ImportStale
	ImportInvalid
	ImportInternalError
)

type TransactionsRequest struct{ Hashes []types.Hash }
type TransactionsReply struct{ RlpTxs [][]byte }

type NonceRequest struct{ Address types.Address }
type NonceReply struct {
	Found bool
	Nonce uint64
}

type StatusRequest struct{}
type StatusReply struct {
	PendingCount   uint32
	QueuedCount    uint32
	BaseFeeCount   uint32
}

type AllRequest struct{}
type AllReply struct {
	Txs []PoolTransaction
}

type TxPoolStatus int32

const (
	TxPending TxPoolStatus = iota
	TxQueued
	TxBaseFee
)

type PoolTransaction struct {
	Status TxPoolStatus
	RlpTx  []byte
	Sender types.Address
}

// TxpoolClient is the client stub surface for the tx-pool service.
type TxpoolClient interface {
	Add(ctx context.Context, in *AddRequest, opts ...grpc.CallOption) (*AddReply, error)
	Transactions(ctx context.Context, in *TransactionsRequest, opts ...grpc.CallOption) (*TransactionsReply, error)
	Nonce(ctx context.Context, in *NonceRequest, opts ...grpc.CallOption) (*NonceReply, error)
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusReply, error)
	All(ctx context.Context, in *AllRequest, opts ...grpc.CallOption) (*AllReply, error)
}

type GetWorkRequest struct{}
type GetWorkReply struct{ HeaderHash, SeedHash, Target, BlockNumber []byte }

type SubmitWorkRequest struct {
	Nonce  uint64
	Digest types.Hash
	Header types.Hash
}
type SubmitWorkReply struct{ Ok bool }

type SubmitHashRateRequest struct {
	Rate uint64
	ID   types.Hash
}
type SubmitHashRateReply struct{ Ok bool }

type HashRateRequest struct{}
type HashRateReply struct{ Rate uint64 }

type MiningRequest struct{}
type MiningReply struct {
	Enabled bool
	Running bool
}

// MiningClient is the client stub surface for the mining service.
type MiningClient interface {
	GetWork(ctx context.Context, in *GetWorkRequest, opts ...grpc.CallOption) (*GetWorkReply, error)
	SubmitWork(ctx context.Context, in *SubmitWorkRequest, opts ...grpc.CallOption) (*SubmitWorkReply, error)
	SubmitHashRate(ctx context.Context, in *SubmitHashRateRequest, opts ...grpc.CallOption) (*SubmitHashRateReply, error)
	HashRate(ctx context.Context, in *HashRateRequest, opts ...grpc.CallOption) (*HashRateReply, error)
	Mining(ctx context.Context, in *MiningRequest, opts ...grpc.CallOption) (*MiningReply, error)
}
