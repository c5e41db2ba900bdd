package remoteclients

import (
	"context"
	"testing"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

type fakeEthBackendClient struct {
	etherbase types.Address
}

func (f *fakeEthBackendClient) Etherbase(ctx context.Context, in *remote.EtherbaseRequest, opts ...grpc.CallOption) (*remote.EtherbaseReply, error) {
	return &remote.EtherbaseReply{Address: types.ConvertAddressToH160(f.etherbase)}, nil
}
func (f *fakeEthBackendClient) NetVersion(ctx context.Context, in *remote.NetVersionRequest, opts ...grpc.CallOption) (*remote.NetVersionReply, error) {
	return &remote.NetVersionReply{ID: 1}, nil
}
func (f *fakeEthBackendClient) NetPeerCount(ctx context.Context, in *remote.NetPeerCountRequest, opts ...grpc.CallOption) (*remote.NetPeerCountReply, error) {
	return &remote.NetPeerCountReply{Count: 5}, nil
}
func (f *fakeEthBackendClient) ProtocolVersion(ctx context.Context, in *remote.ProtocolVersionRequest, opts ...grpc.CallOption) (*remote.ProtocolVersionReply, error) {
	return &remote.ProtocolVersionReply{ID: 66}, nil
}
func (f *fakeEthBackendClient) ClientVersion(ctx context.Context, in *remote.ClientVersionRequest, opts ...grpc.CallOption) (*remote.ClientVersionReply, error) {
	return &remote.ClientVersionReply{NodeName: "rpcgate/test"}, nil
}
func (f *fakeEthBackendClient) EngineGetPayloadV1(ctx context.Context, in *remote.EngineGetPayloadRequest, opts ...grpc.CallOption) (*remote.ExecutionPayload, error) {
	return &remote.ExecutionPayload{BlockNumber: in.PayloadID}, nil
}
func (f *fakeEthBackendClient) EngineNewPayloadV1(ctx context.Context, in *remote.EngineNewPayloadRequest, opts ...grpc.CallOption) (*remote.EnginePayloadStatus, error) {
	return &remote.EnginePayloadStatus{Status: remote.EngineStatusValid, LatestValidHash: types.ConvertHashToH256(types.Hash{0xAA})}, nil
}
func (f *fakeEthBackendClient) EngineForkChoiceUpdatedV1(ctx context.Context, in *remote.EngineForkChoiceUpdatedRequest, opts ...grpc.CallOption) (*remote.EngineForkChoiceUpdatedReply, error) {
	return &remote.EngineForkChoiceUpdatedReply{
		PayloadStatus: &remote.EnginePayloadStatus{Status: remote.EngineStatusSyncing, LatestValidHash: in.ForkchoiceState.HeadBlockHash},
	}, nil
}

var _ remote.ETHBACKENDClient = (*fakeEthBackendClient)(nil)

func TestEthBackendEtherbaseConvertsAddress(t *testing.T) {
	want := types.Address{0x01, 0x02}
	e := NewEthBackend(&fakeEthBackendClient{etherbase: want})
	got, err := e.Etherbase(context.Background())
	if err != nil {
		t.Fatalf("etherbase: %v", err)
	}
	if got != want {
		t.Fatalf("expected %x, got %x", want, got)
	}
}

func TestEthBackendNetVersionAndPeerCount(t *testing.T) {
	e := NewEthBackend(&fakeEthBackendClient{})
	v, err := e.NetVersion(context.Background())
	if err != nil || v != 1 {
		t.Fatalf("net_version: %v %d", err, v)
	}
	p, err := e.NetPeerCount(context.Background())
	if err != nil || p != 5 {
		t.Fatalf("net_peerCount: %v %d", err, p)
	}
}

func TestEthBackendClientVersion(t *testing.T) {
	e := NewEthBackend(&fakeEthBackendClient{})
	v, err := e.ClientVersion(context.Background())
	if err != nil || v != "rpcgate/test" {
		t.Fatalf("client_version: %v %q", err, v)
	}
}
