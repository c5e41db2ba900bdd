// Package remoteclients wraps the generated gRPC client stubs for the
// execution-backend, tx-pool, and mining services in small Go-native
// method sets, converting wire H160/H256/H2048 messages to the gateway's
// own address/hash/bloom types at the call boundary. Grounded on
// other_examples/dbb8ba21_..._ethbackend.go.go (the server side of this
// same RPC surface, studied from the client's perspective) and
// other_examples/2373e8a0_..._engine_server.go.go for the Engine-API
// subset.
package remoteclients

import (
	"context"
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

// EthBackend is the Go-native surface this gateway calls against the
// remote node's execution-backend service.
type EthBackend struct {
	client remote.ETHBACKENDClient
}

func NewEthBackend(client remote.ETHBACKENDClient) *EthBackend {
	return &EthBackend{client: client}
}

func (e *EthBackend) Etherbase(ctx context.Context) (types.Address, error) {
	reply, err := e.client.Etherbase(ctx, &remote.EtherbaseRequest{})
	if err != nil {
		return types.Address{}, fmt.Errorf("etherbase: %w", err)
	}
	return types.ConvertH160toAddress(reply.Address), nil
}

func (e *EthBackend) NetVersion(ctx context.Context) (uint64, error) {
	reply, err := e.client.NetVersion(ctx, &remote.NetVersionRequest{})
	if err != nil {
		return 0, fmt.Errorf("net_version: %w", err)
	}
	return reply.ID, nil
}

func (e *EthBackend) NetPeerCount(ctx context.Context) (uint64, error) {
	reply, err := e.client.NetPeerCount(ctx, &remote.NetPeerCountRequest{})
	if err != nil {
		return 0, fmt.Errorf("net_peerCount: %w", err)
	}
	return reply.Count, nil
}

func (e *EthBackend) ProtocolVersion(ctx context.Context) (uint64, error) {
	reply, err := e.client.ProtocolVersion(ctx, &remote.ProtocolVersionRequest{})
	if err != nil {
		return 0, fmt.Errorf("protocol_version: %w", err)
	}
	return reply.ID, nil
}

func (e *EthBackend) ClientVersion(ctx context.Context) (string, error) {
	reply, err := e.client.ClientVersion(ctx, &remote.ClientVersionRequest{})
	if err != nil {
		return "", fmt.Errorf("client_version: %w", err)
	}
	return reply.NodeName, nil
}
