package remote

import (
	"context"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

// grpcKVClient is the concrete KVClient wired against a real
// grpc.ClientConnInterface, shaped the way protoc-gen-go-grpc would emit
// it for the KV service. The request/reply structs in this package stand
// in for generated protobuf messages (see the package doc comment); a
// production build substitutes the real erigon-lib/gointerfaces/remote
// package, which these adapters otherwise match call-for-call.
type grpcKVClient struct {
	cc grpc.ClientConnInterface
}

// NewKVClient wraps cc as a KVClient against the remote node's KV service.
func NewKVClient(cc grpc.ClientConnInterface) KVClient {
	return &grpcKVClient{cc: cc}
}

func (c *grpcKVClient) Version(ctx context.Context, in *VersionRequest, opts ...grpc.CallOption) (*types.VersionReply, error) {
	out := new(types.VersionReply)
	if err := c.cc.Invoke(ctx, "/remote.KV/Version", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *grpcKVClient) Tx(ctx context.Context, opts ...grpc.CallOption) (KV_TxClient, error) {
	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{StreamName: "Tx", ServerStreams: true, ClientStreams: true}, "/remote.KV/Tx", opts...)
	if err != nil {
		return nil, err
	}
	return &grpcKVTxClient{stream}, nil
}

func (c *grpcKVClient) StateChanges(ctx context.Context, in *StateChangeRequest, opts ...grpc.CallOption) (KV_StateChangesClient, error) {
	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{StreamName: "StateChanges", ServerStreams: true}, "/remote.KV/StateChanges", opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &grpcKVStateChangesClient{stream}, nil
}

type grpcKVTxClient struct{ grpc.ClientStream }

func (x *grpcKVTxClient) Send(m *Cursor) error { return x.ClientStream.SendMsg(m) }
func (x *grpcKVTxClient) Recv() (*Pair, error) {
	m := new(Pair)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type grpcKVStateChangesClient struct{ grpc.ClientStream }

func (x *grpcKVStateChangesClient) Recv() (*StateChangeBatch, error) {
	m := new(StateChangeBatch)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// grpcETHBACKENDClient is the concrete ETHBACKENDClient, one Invoke per
// unary RPC, grounded the same way as grpcKVClient above.
type grpcETHBACKENDClient struct {
	cc grpc.ClientConnInterface
}

// NewETHBACKENDClient wraps cc as an ETHBACKENDClient.
func NewETHBACKENDClient(cc grpc.ClientConnInterface) ETHBACKENDClient {
	return &grpcETHBACKENDClient{cc: cc}
}

func (c *grpcETHBACKENDClient) Etherbase(ctx context.Context, in *EtherbaseRequest, opts ...grpc.CallOption) (*EtherbaseReply, error) {
	out := new(EtherbaseReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/Etherbase", in, out, opts...)
}

func (c *grpcETHBACKENDClient) NetVersion(ctx context.Context, in *NetVersionRequest, opts ...grpc.CallOption) (*NetVersionReply, error) {
	out := new(NetVersionReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/NetVersion", in, out, opts...)
}

func (c *grpcETHBACKENDClient) NetPeerCount(ctx context.Context, in *NetPeerCountRequest, opts ...grpc.CallOption) (*NetPeerCountReply, error) {
	out := new(NetPeerCountReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/NetPeerCount", in, out, opts...)
}

func (c *grpcETHBACKENDClient) ProtocolVersion(ctx context.Context, in *ProtocolVersionRequest, opts ...grpc.CallOption) (*ProtocolVersionReply, error) {
	out := new(ProtocolVersionReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/ProtocolVersion", in, out, opts...)
}

func (c *grpcETHBACKENDClient) ClientVersion(ctx context.Context, in *ClientVersionRequest, opts ...grpc.CallOption) (*ClientVersionReply, error) {
	out := new(ClientVersionReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/ClientVersion", in, out, opts...)
}

func (c *grpcETHBACKENDClient) EngineGetPayloadV1(ctx context.Context, in *EngineGetPayloadRequest, opts ...grpc.CallOption) (*ExecutionPayload, error) {
	out := new(ExecutionPayload)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/EngineGetPayloadV1", in, out, opts...)
}

func (c *grpcETHBACKENDClient) EngineNewPayloadV1(ctx context.Context, in *EngineNewPayloadRequest, opts ...grpc.CallOption) (*EnginePayloadStatus, error) {
	out := new(EnginePayloadStatus)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/EngineNewPayloadV1", in, out, opts...)
}

func (c *grpcETHBACKENDClient) EngineForkChoiceUpdatedV1(ctx context.Context, in *EngineForkChoiceUpdatedRequest, opts ...grpc.CallOption) (*EngineForkChoiceUpdatedReply, error) {
	out := new(EngineForkChoiceUpdatedReply)
	return out, c.cc.Invoke(ctx, "/remote.ETHBACKEND/EngineForkChoiceUpdatedV1", in, out, opts...)
}
