package txpool

import (
	"context"

	"google.golang.org/grpc"
)

// grpcTxpoolClient is the concrete TxpoolClient wired against a real
// grpc.ClientConnInterface, one Invoke per unary RPC. See
// gointerfaces/remote/client.go for the matching KV/ETHBACKEND adapters
// and the shared limitation they document.
type grpcTxpoolClient struct {
	cc grpc.ClientConnInterface
}

// NewTxpoolClient wraps cc as a TxpoolClient against the remote node's
// tx-pool service.
func NewTxpoolClient(cc grpc.ClientConnInterface) TxpoolClient {
	return &grpcTxpoolClient{cc: cc}
}

func (c *grpcTxpoolClient) Add(ctx context.Context, in *AddRequest, opts ...grpc.CallOption) (*AddReply, error) {
	out := new(AddReply)
	return out, c.cc.Invoke(ctx, "/txpool.Txpool/Add", in, out, opts...)
}

func (c *grpcTxpoolClient) Transactions(ctx context.Context, in *TransactionsRequest, opts ...grpc.CallOption) (*TransactionsReply, error) {
	out := new(TransactionsReply)
	return out, c.cc.Invoke(ctx, "/txpool.Txpool/Transactions", in, out, opts...)
}

func (c *grpcTxpoolClient) Nonce(ctx context.Context, in *NonceRequest, opts ...grpc.CallOption) (*NonceReply, error) {
	out := new(NonceReply)
	return out, c.cc.Invoke(ctx, "/txpool.Txpool/Nonce", in, out, opts...)
}

func (c *grpcTxpoolClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusReply, error) {
	out := new(StatusReply)
	return out, c.cc.Invoke(ctx, "/txpool.Txpool/Status", in, out, opts...)
}

func (c *grpcTxpoolClient) All(ctx context.Context, in *AllRequest, opts ...grpc.CallOption) (*AllReply, error) {
	out := new(AllReply)
	return out, c.cc.Invoke(ctx, "/txpool.Txpool/All", in, out, opts...)
}

// grpcMiningClient is the concrete MiningClient, grounded the same way.
type grpcMiningClient struct {
	cc grpc.ClientConnInterface
}

// NewMiningClient wraps cc as a MiningClient against the remote node's
// mining service.
func NewMiningClient(cc grpc.ClientConnInterface) MiningClient {
	return &grpcMiningClient{cc: cc}
}

func (c *grpcMiningClient) GetWork(ctx context.Context, in *GetWorkRequest, opts ...grpc.CallOption) (*GetWorkReply, error) {
	out := new(GetWorkReply)
	return out, c.cc.Invoke(ctx, "/txpool.Mining/GetWork", in, out, opts...)
}

func (c *grpcMiningClient) SubmitWork(ctx context.Context, in *SubmitWorkRequest, opts ...grpc.CallOption) (*SubmitWorkReply, error) {
	out := new(SubmitWorkReply)
	return out, c.cc.Invoke(ctx, "/txpool.Mining/SubmitWork", in, out, opts...)
}

func (c *grpcMiningClient) SubmitHashRate(ctx context.Context, in *SubmitHashRateRequest, opts ...grpc.CallOption) (*SubmitHashRateReply, error) {
	out := new(SubmitHashRateReply)
	return out, c.cc.Invoke(ctx, "/txpool.Mining/SubmitHashRate", in, out, opts...)
}

func (c *grpcMiningClient) HashRate(ctx context.Context, in *HashRateRequest, opts ...grpc.CallOption) (*HashRateReply, error) {
	out := new(HashRateReply)
	return out, c.cc.Invoke(ctx, "/txpool.Mining/HashRate", in, out, opts...)
}

func (c *grpcMiningClient) Mining(ctx context.Context, in *MiningRequest, opts ...grpc.CallOption) (*MiningReply, error) {
	out := new(MiningReply)
	return out, c.cc.Invoke(ctx, "/txpool.Mining/Mining", in, out, opts...)
}
