package jsonrpc

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/common/crypto"
	"github.com/erigontech/rpcgate/remoteclients"
	"github.com/erigontech/rpcgate/rpc"
)

// Web3Namespace returns the web3_* handler table.
func (a *API) Web3Namespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "web3",
		Methods: map[string]rpc.HandlerFunc{
			"web3_clientVersion": a.web3ClientVersion,
			"web3_sha3":          a.web3Sha3,
		},
	}
}

func (a *API) web3ClientVersion(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	version, err := remoteclients.NewEthBackend(rctx.Backend).ClientVersion(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	return version, nil
}

func (a *API) web3Sha3(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []string
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 1 {
		return nil, rpc.NewInvalidParamsError("web3_sha3 requires a data argument")
	}
	data, err := decodeHexString(args[0])
	if err != nil {
		return nil, rpc.NewInvalidParamsError("invalid data: " + err.Error())
	}
	hash := crypto.Keccak256(data)
	return hexutilBytes(hash[:]), nil
}
