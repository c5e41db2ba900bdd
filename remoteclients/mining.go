package remoteclients

import (
	"context"
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

// Mining is the Go-native surface this gateway calls for the eth_
// namespace's PoW-mining leftovers (getWork/submitWork/submitHashrate) and
// eth_mining/eth_hashrate.
type Mining struct {
	client txpool.MiningClient
}

func NewMining(client txpool.MiningClient) *Mining {
	return &Mining{client: client}
}

func (m *Mining) GetWork(ctx context.Context) (headerHash, seedHash, target, blockNumber []byte, err error) {
	reply, err := m.client.GetWork(ctx, &txpool.GetWorkRequest{})
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("mining getWork: %w", err)
	}
	return reply.HeaderHash, reply.SeedHash, reply.Target, reply.BlockNumber, nil
}

func (m *Mining) SubmitWork(ctx context.Context, nonce uint64, digest, header types.Hash) (bool, error) {
	reply, err := m.client.SubmitWork(ctx, &txpool.SubmitWorkRequest{Nonce: nonce, Digest: digest, Header: header})
	if err != nil {
		return false, fmt.Errorf("mining submitWork: %w", err)
	}
	return reply.Ok, nil
}

func (m *Mining) SubmitHashRate(ctx context.Context, rate uint64, id types.Hash) (bool, error) {
	reply, err := m.client.SubmitHashRate(ctx, &txpool.SubmitHashRateRequest{Rate: rate, ID: id})
	if err != nil {
		return false, fmt.Errorf("mining submitHashrate: %w", err)
	}
	return reply.Ok, nil
}

func (m *Mining) HashRate(ctx context.Context) (uint64, error) {
	reply, err := m.client.HashRate(ctx, &txpool.HashRateRequest{})
	if err != nil {
		return 0, fmt.Errorf("mining hashrate: %w", err)
	}
	return reply.Rate, nil
}

// Status returns whether mining is configured and currently running, for
// eth_mining.
func (m *Mining) Status(ctx context.Context) (enabled, running bool, err error) {
	reply, err := m.client.Mining(ctx, &txpool.MiningRequest{})
	if err != nil {
		return false, false, fmt.Errorf("mining status: %w", err)
	}
	return reply.Enabled, reply.Running, nil
}
