package jsonrpc

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/remoteclients"
	"github.com/erigontech/rpcgate/rpc"
)

// NetNamespace returns the net_* handler table, backed by the remote
// node's ETHBACKEND service (remoteclients.EthBackend), per
// other_examples/dbb8ba21_..._ethbackend.go.go's NetVersion/NetPeerCount.
func (a *API) NetNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "net",
		Methods: map[string]rpc.HandlerFunc{
			"net_version":   a.netVersion,
			"net_peerCount": a.netPeerCount,
			"net_listening": a.netListening,
		},
	}
}

func (a *API) netVersion(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	id, err := remoteclients.NewEthBackend(rctx.Backend).NetVersion(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	return strconv.FormatUint(id, 10), nil
}

func (a *API) netPeerCount(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	count, err := remoteclients.NewEthBackend(rctx.Backend).NetPeerCount(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	return hexutilUint64(count), nil
}

func (a *API) netListening(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	return true, nil
}
